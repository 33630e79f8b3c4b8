package emx

// RecordType identifies the EMX datagram_type byte. The set below mirrors
// the full EMX_DATAGRAM_* table; types this package does not decode into a
// typed payload still frame correctly and are exposed via EMXRecord.Raw.
type RecordType byte

const (
	RecordTypeDepth               RecordType = 'D'
	RecordTypeDepthNominal        RecordType = 'Q' // undocumented
	RecordTypeXYZ                 RecordType = 'X'
	RecordTypeExtraDetections     RecordType = 'l'
	RecordTypeCentralBeams        RecordType = 'K'
	RecordTypeRRA101              RecordType = 'e' // undocumented
	RecordTypeRRA70               RecordType = 'F'
	RecordTypeRRA102              RecordType = 'f'
	RecordTypeRRA78               RecordType = 'N'
	RecordTypeSeabedImage83       RecordType = 'S'
	RecordTypeSeabedImage89       RecordType = 'Y'
	RecordTypeWaterColumn         RecordType = 'k'
	RecordTypeQualityFactor       RecordType = 'O'
	RecordTypeAttitude            RecordType = 'A'
	RecordTypeAttitudeNetwork     RecordType = 'n'
	RecordTypeClock               RecordType = 'C'
	RecordTypeHeight              RecordType = 'h'
	RecordTypeHeading             RecordType = 'H'
	RecordTypePosition            RecordType = 'P'
	RecordTypeSingleBeamDepth     RecordType = 'E'
	RecordTypeTide                RecordType = 'T'
	RecordTypeSSSV                RecordType = 'G'
	RecordTypeSVP                 RecordType = 'U'
	RecordTypeSVPEM3000           RecordType = 'V' // undocumented, deprecated
	RecordTypeKMSSPOutput         RecordType = 'W'
	RecordTypeInstallParams       RecordType = 'I'
	RecordTypeInstallParamsStop   RecordType = 'i'
	RecordTypeInstallParamsRemote RecordType = 'j'
	RecordTypeRemoteParamsInfo    RecordType = 'r'
	RecordTypeRuntimeParams       RecordType = 'R'
	RecordTypeExtraParams         RecordType = '3'
	RecordTypePUOutput            RecordType = '0'
	RecordTypePUStatus            RecordType = '1'
	RecordTypePUBISTResult        RecordType = 'B'
	RecordTypeTransducerTilt      RecordType = 'J'
	RecordTypeSystemStatus        RecordType = 'o' // undocumented
	RecordTypeStave               RecordType = 'm' // undocumented
	RecordTypeUnknown1            RecordType = 's' // undocumented: deprecated surface sound speed
	RecordTypeDirectory           RecordType = 't' // undocumented, exempt from time/date/checksum checks
	RecordTypeUnknown3            RecordType = 'v' // undocumented: input SSP
	RecordTypeHISASStatus         RecordType = '2'
	RecordTypeNavigationOutput    RecordType = '>'
	RecordTypeSidescanStatus      RecordType = '"'
	RecordTypeHISAS1032Sidescan   RecordType = '%'
	RecordTypeRRA123              RecordType = '{'
)

// datagramNames maps each RecordType to the descriptive name a caller-facing
// DatagramName lookup returns (§6 external interface `datagram_name`).
var datagramNames = map[RecordType]string{
	RecordTypeDepth:               "depth",
	RecordTypeDepthNominal:        "depth (nominal)",
	RecordTypeXYZ:                 "xyz 88",
	RecordTypeExtraDetections:     "extra detections",
	RecordTypeCentralBeams:        "central beams echogram",
	RecordTypeRRA101:              "raw range and beam angle (101)",
	RecordTypeRRA70:               "raw range and beam angle (70)",
	RecordTypeRRA102:              "raw range and beam angle (102)",
	RecordTypeRRA78:               "raw range and beam angle (78)",
	RecordTypeSeabedImage83:       "seabed image",
	RecordTypeSeabedImage89:       "seabed image 89",
	RecordTypeWaterColumn:         "water column",
	RecordTypeQualityFactor:       "quality factor",
	RecordTypeAttitude:            "attitude",
	RecordTypeAttitudeNetwork:     "network attitude velocity",
	RecordTypeClock:               "clock",
	RecordTypeHeight:              "height",
	RecordTypeHeading:             "heading",
	RecordTypePosition:            "position",
	RecordTypeSingleBeamDepth:     "single beam echo sounder depth",
	RecordTypeTide:                "tide",
	RecordTypeSSSV:                "surface sound speed",
	RecordTypeSVP:                 "sound velocity profile",
	RecordTypeSVPEM3000:           "sound velocity profile (EM3000, deprecated)",
	RecordTypeKMSSPOutput:         "Kongsberg Maritime SSP output",
	RecordTypeInstallParams:       "installation parameters - start",
	RecordTypeInstallParamsStop:   "installation parameters - stop",
	RecordTypeInstallParamsRemote: "installation parameters - remote",
	RecordTypeRemoteParamsInfo:    "remote parameters info",
	RecordTypeRuntimeParams:       "runtime parameters",
	RecordTypeExtraParams:         "extra parameters",
	RecordTypePUOutput:            "PU ID output",
	RecordTypePUStatus:            "PU status output",
	RecordTypePUBISTResult:        "PU BIST result",
	RecordTypeTransducerTilt:      "transducer tilt",
	RecordTypeSystemStatus:        "system status",
	RecordTypeStave:               "stave data",
	RecordTypeUnknown1:            "surface sound speed (deprecated)",
	RecordTypeDirectory:           "directory (undocumented)",
	RecordTypeUnknown3:            "input sound speed profile",
	RecordTypeHISASStatus:         "HISAS status",
	RecordTypeNavigationOutput:    "navigation output",
	RecordTypeSidescanStatus:      "sidescan status",
	RecordTypeHISAS1032Sidescan:   "HISAS 1032 sidescan data",
	RecordTypeRRA123:              "raw range and beam angle 123",
}

// DatagramName returns a human-readable name for t, or "unknown" if t is not
// in the documented EMX set. Mirrors the source's datagram_name lookup used
// for log messages rather than any decoding decision.
func DatagramName(t RecordType) string {
	if name, ok := datagramNames[t]; ok {
		return name
	}
	return "unknown"
}

// EMXRecord is one decoded EMX datagram: the validated header, the typed
// payload if this package decodes that record type, and the raw body bytes
// (post-header, pre-checksum/ETX) for every record regardless of whether a
// typed payload was produced.
type EMXRecord struct {
	Header  Header
	Type    RecordType
	Raw     []byte
	Payload any
}
