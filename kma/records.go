package kma

// RecordType identifies a KMA datagram kind by its 4-byte little-endian
// packed ASCII tag, e.g. reading "#MRZ" off the wire yields
// RecordTypeMRZ. Grounded byte-for-byte on the KMA_DATAGRAM_* table.
type RecordType uint32

const (
	RecordTypeIIP RecordType = 0x50494923 // Installation parameters
	RecordTypeIOP RecordType = 0x504F4923 // Runtime parameters
	RecordTypeIBE RecordType = 0x45424923 // BIST error report
	RecordTypeIBR RecordType = 0x22544923 // BIST reply
	RecordTypeIBS RecordType = 0x53424923 // BIST short reply
	RecordTypeMRZ RecordType = 0x5A524D23 // Multibeam raw range and depth
	RecordTypeMWC RecordType = 0x43574D23 // Water column
	RecordTypeSPO RecordType = 0x4F505323 // Position
	RecordTypeSKM RecordType = 0x4D4B5323 // KM binary sensor data
	RecordTypeSVP RecordType = 0x50565323 // Sound velocity profile
	RecordTypeSVT RecordType = 0x54565323 // Sound velocity at transducer
	RecordTypeSCL RecordType = 0x4C435323 // Sensor clock
	RecordTypeSDE RecordType = 0x45445323 // Sensor depth
	RecordTypeSHI RecordType = 0x49485323 // Sensor height
	RecordTypeSHA RecordType = 0x41485323 // Sensor heading, removed in Format Rev. C
	RecordTypeCPO RecordType = 0x4F504323 // Compatibility position sensor
	RecordTypeCHE RecordType = 0x45484323 // Compatibility heave
	RecordTypeFCF RecordType = 0x46434623 // Calibration file, added in Rev G
)

var datagramNames = map[RecordType]string{
	RecordTypeIIP: "installation-parameters",
	RecordTypeIOP: "runtime-parameters",
	RecordTypeIBE: "bist-error-report",
	RecordTypeIBR: "bist-reply",
	RecordTypeIBS: "bist-short-reply",
	RecordTypeMRZ: "raw-range-and-depth",
	RecordTypeMWC: "water-column",
	RecordTypeSPO: "position",
	RecordTypeSKM: "km-binary-sensor",
	RecordTypeSVP: "sound-velocity-profile",
	RecordTypeSVT: "sound-velocity-transducer",
	RecordTypeSCL: "sensor-clock",
	RecordTypeSDE: "sensor-depth",
	RecordTypeSHI: "sensor-height",
	RecordTypeSHA: "sensor-heading",
	RecordTypeCPO: "compatibility-position",
	RecordTypeCHE: "compatibility-heave",
	RecordTypeFCF: "calibration-file",
}

// DatagramName returns a short descriptive name for t, or "unknown" if t is
// not a recognized KMA record type.
func DatagramName(t RecordType) string {
	if name, ok := datagramNames[t]; ok {
		return name
	}
	return "unknown"
}

// KMARecord is the decoded-record tagged union returned by KMAStream.Read.
// Raw is a copy owned by the record. Untyped byte-slice fields reachable
// through Payload (text tails, DataFromSensor, SeabedImageRaw) alias the
// stream's shared frame buffer and are only valid until the next Read or
// Close; decoded sample arrays are freshly allocated.
type KMARecord struct {
	Header  Header
	Type    RecordType
	Raw     []byte
	Payload any
}
