package emx

import (
	"math"

	"github.com/fathomsonar/dgram/endian"
	"github.com/fathomsonar/dgram/errs"
)

// decodePayload dispatches body (the record's bytes after the header, before
// the trailing [ETX, checksum lo, checksum hi]) to a typed decoder by record
// type. body has already been byte-swapped in place if the stream is
// swapped. sidescanCal is the stream's per-channel bytes-per-sample cache
// (§3 data model): sidescan-status records write into it, sidescan-data
// records read from it. A handful of record types still return (nil, nil) —
// the caller gets the raw body via EMXRecord.Raw regardless; DESIGN.md lists
// each omitted type against the reader source it is grounded on.
func decodePayload(t RecordType, body []byte, sidescanCal *[6]uint16) (any, error) {
	switch t {
	case RecordTypeClock:
		return decodeClock(body)
	case RecordTypeHeight:
		return decodeHeight(body)
	case RecordTypeHeading:
		return decodeHeading(body)
	case RecordTypePosition:
		return decodePosition(body)
	case RecordTypeSingleBeamDepth:
		return decodeSingleBeamDepth(body)
	case RecordTypeTide:
		return decodeTide(body)
	case RecordTypeSSSV:
		return decodeSSSV(body)
	case RecordTypeDepth:
		return decodeDepth(body)
	case RecordTypeXYZ:
		return decodeXYZ(body)
	case RecordTypeAttitude:
		return decodeAttitude(body)
	case RecordTypeAttitudeNetwork:
		return decodeAttitudeNetwork(body)
	case RecordTypeQualityFactor:
		return decodeQualityFactor(body)
	case RecordTypeWaterColumn:
		return decodeWaterColumn(body)
	case RecordTypeRRA70:
		return decodeRawRange70(body)
	case RecordTypeRRA101:
		return decodeRawRange101(body)
	case RecordTypeRRA102:
		return decodeRawRange102(body)
	case RecordTypeRRA78:
		return decodeRawRange78(body)
	case RecordTypeSidescanStatus:
		return decodeSidescanStatus(body, sidescanCal)
	case RecordTypeHISAS1032Sidescan:
		return decodeSidescanData(body, sidescanCal)
	case RecordTypeCentralBeams:
		return decodeCentralBeams(body)
	case RecordTypeSeabedImage83:
		return decodeSeabedImage83(body)
	case RecordTypeSeabedImage89:
		return decodeSeabedImage89(body)
	case RecordTypeSVP:
		return decodeSVP(body)
	case RecordTypeSVPEM3000:
		return decodeSVPEM3000(body)
	case RecordTypeExtraParams:
		return decodeExtraParams(body)
	case RecordTypeInstallParams, RecordTypeInstallParamsStop, RecordTypeInstallParamsRemote:
		return decodeInstallParams(body)
	case RecordTypeRuntimeParams:
		return decodeRuntimeParams(body)
	case RecordTypePUOutput:
		return decodePUOutput(body)
	case RecordTypePUStatus:
		return decodePUStatus(body)
	case RecordTypePUBISTResult:
		return decodePUBISTResult(body)
	case RecordTypeTransducerTilt:
		return decodeTransducerTilt(body)
	default:
		return nil, nil
	}
}

func need(body []byte, n int) error {
	if len(body) < n {
		return errs.ErrRegionOverflow
	}
	return nil
}

// math32/math64 read an IEEE-754 float of the given width via the supplied
// engine's byte order.
func math32(le endian.EndianEngine, b []byte) float32 {
	return math.Float32frombits(le.Uint32(b))
}

func math64(le endian.EndianEngine, b []byte) float64 {
	return math.Float64frombits(le.Uint64(b))
}

// Clock is the external-clock time report (§4.5 clock datagram, 9-byte info).
type Clock struct {
	Date   uint32
	TimeMS uint32
	PPS    uint8
}

func decodeClock(body []byte) (Clock, error) {
	if err := need(body, 9); err != nil {
		return Clock{}, err
	}
	return Clock{
		Date:   endian.GetLittleEndianEngine().Uint32(body[0:4]),
		TimeMS: endian.GetLittleEndianEngine().Uint32(body[4:8]),
		PPS:    body[8],
	}, nil
}

// Height is the water-level/depth-sensor height report.
type Height struct {
	HeightCM   int32
	HeightType uint8
}

func decodeHeight(body []byte) (Height, error) {
	if err := need(body, 5); err != nil {
		return Height{}, err
	}
	return Height{
		HeightCM:   int32(endian.GetLittleEndianEngine().Uint32(body[0:4])),
		HeightType: body[4],
	}, nil
}

// HeadingSample is one entry of a Heading record's data array.
type HeadingSample struct {
	RecordTimeMS uint16
	HeadingDeg   uint16 // 0.01 degree units
}

// Heading is the external heading sensor report: a variable-length array of
// timestamped heading samples plus an activity indicator.
type Heading struct {
	Samples          []HeadingSample
	HeadingIndicator uint8
}

func decodeHeading(body []byte) (Heading, error) {
	if err := need(body, 2); err != nil {
		return Heading{}, err
	}
	le := endian.GetLittleEndianEngine()
	n := int(le.Uint16(body[0:2]))
	off := 2
	samples := make([]HeadingSample, 0, n)
	for i := 0; i < n; i++ {
		if err := need(body, off+4); err != nil {
			return Heading{}, err
		}
		samples = append(samples, HeadingSample{
			RecordTimeMS: le.Uint16(body[off : off+2]),
			HeadingDeg:   le.Uint16(body[off+2 : off+4]),
		})
		off += 4
	}
	var indicator uint8
	if off < len(body) {
		indicator = body[off]
	}
	return Heading{Samples: samples, HeadingIndicator: indicator}, nil
}

// Position is the external navigation position report plus its raw input
// sentence (e.g. the originating NMEA/GGA message), carried opaque.
type Position struct {
	LatitudeE7         int32
	LongitudeE7        int32
	PositionFixQuality uint16
	VesselSpeedCMPS    uint16
	VesselCourseDeg    uint16
	VesselHeadingDeg   uint16
	PositionSystem     uint8
	Message            []byte
}

func decodePosition(body []byte) (Position, error) {
	if err := need(body, 18); err != nil {
		return Position{}, err
	}
	le := endian.GetLittleEndianEngine()
	bytesInInput := int(body[17])
	p := Position{
		LatitudeE7:         int32(le.Uint32(body[0:4])),
		LongitudeE7:        int32(le.Uint32(body[4:8])),
		PositionFixQuality: le.Uint16(body[8:10]),
		VesselSpeedCMPS:    le.Uint16(body[10:12]),
		VesselCourseDeg:    le.Uint16(body[12:14]),
		VesselHeadingDeg:   le.Uint16(body[14:16]),
		PositionSystem:     body[16],
	}
	if bytesInInput > 0 && len(body) >= 18+bytesInInput {
		p.Message = append([]byte(nil), body[18:18+bytesInInput]...)
	}
	return p, nil
}

// SingleBeamDepth is the single-beam echosounder depth report.
type SingleBeamDepth struct {
	Date     uint32
	TimeMS   uint32
	DepthCM  uint32
	Source   byte
}

func decodeSingleBeamDepth(body []byte) (SingleBeamDepth, error) {
	if err := need(body, 13); err != nil {
		return SingleBeamDepth{}, err
	}
	le := endian.GetLittleEndianEngine()
	return SingleBeamDepth{
		Date:    le.Uint32(body[0:4]),
		TimeMS:  le.Uint32(body[4:8]),
		DepthCM: le.Uint32(body[8:12]),
		Source:  body[12],
	}, nil
}

// Tide is the external tide-gauge offset report.
type Tide struct {
	Date        uint32
	TimeMS      uint32
	TideOffsetCM int16
}

func decodeTide(body []byte) (Tide, error) {
	if err := need(body, 10); err != nil {
		return Tide{}, err
	}
	le := endian.GetLittleEndianEngine()
	return Tide{
		Date:         le.Uint32(body[0:4]),
		TimeMS:       le.Uint32(body[4:8]),
		TideOffsetCM: int16(le.Uint16(body[8:10])),
	}, nil
}

// SSSVSample is one entry of an SSSV record's data array.
type SSSVSample struct {
	RecordTimeSec uint16
	SoundSpeedDMPS uint16
}

// SSSV is the surface sound-speed sensor report: a variable-length array of
// timestamped sound-speed samples.
type SSSV struct {
	Samples []SSSVSample
}

func decodeSSSV(body []byte) (SSSV, error) {
	if err := need(body, 2); err != nil {
		return SSSV{}, err
	}
	le := endian.GetLittleEndianEngine()
	n := int(le.Uint16(body[0:2]))
	off := 2
	samples := make([]SSSVSample, 0, n)
	for i := 0; i < n; i++ {
		if err := need(body, off+4); err != nil {
			return SSSV{}, err
		}
		samples = append(samples, SSSVSample{
			RecordTimeSec:  le.Uint16(body[off : off+2]),
			SoundSpeedDMPS: le.Uint16(body[off+2 : off+4]),
		})
		off += 4
	}
	return SSSV{Samples: samples}, nil
}

// DepthInfo is the fixed 12-byte header of a legacy Depth datagram.
type DepthInfo struct {
	VesselHeadingDeg      uint16
	SoundSpeedDMPS        uint16
	TransducerDepthCM     uint16
	MaxBeams              uint8
	NumBeams              uint8
	DepthResolutionCM     uint8
	HorizontalResolutionCM uint8
	SampleRateHz          uint16
}

// DepthBeam is one beam of a legacy Depth datagram's variable beam array.
type DepthBeam struct {
	DepthMM              int16
	AcrossTrack          int16
	AlongTrack           int16
	BeamDepressionAngle  int16
	BeamAzimuthAngle     uint16
	RangeSamples         uint16
	QualityFactor        uint8
	DetectWindowLength   uint8
	BackscatterHalfDB    int8
	BeamNumber           uint8
}

// Depth is the legacy (EM120/EM300/EM3000-class) per-swath depth datagram:
// a fixed info block, an array of per-beam results, and a trailing
// depth-offset multiplier byte.
type Depth struct {
	Info                    DepthInfo
	Beams                   []DepthBeam
	DepthOffsetMultiplier   int8
}

func decodeDepth(body []byte) (Depth, error) {
	if err := need(body, 12); err != nil {
		return Depth{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := DepthInfo{
		VesselHeadingDeg:       le.Uint16(body[0:2]),
		SoundSpeedDMPS:         le.Uint16(body[2:4]),
		TransducerDepthCM:      le.Uint16(body[4:6]),
		MaxBeams:               body[6],
		NumBeams:               body[7],
		DepthResolutionCM:      body[8],
		HorizontalResolutionCM: body[9],
		SampleRateHz:           le.Uint16(body[10:12]),
	}
	off := 12
	beams := make([]DepthBeam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+16); err != nil {
			return Depth{}, err
		}
		b := body[off : off+16]
		beams = append(beams, DepthBeam{
			DepthMM:             int16(le.Uint16(b[0:2])),
			AcrossTrack:         int16(le.Uint16(b[2:4])),
			AlongTrack:          int16(le.Uint16(b[4:6])),
			BeamDepressionAngle: int16(le.Uint16(b[6:8])),
			BeamAzimuthAngle:    le.Uint16(b[8:10]),
			RangeSamples:        le.Uint16(b[10:12]),
			QualityFactor:       b[12],
			DetectWindowLength:  b[13],
			BackscatterHalfDB:   int8(b[14]),
			BeamNumber:          b[15],
		})
		off += 16
	}
	var mult int8
	if off < len(body) {
		mult = int8(body[off])
	}
	return Depth{Info: info, Beams: beams, DepthOffsetMultiplier: mult}, nil
}

// XYZInfo is the fixed 20-byte header of an XYZ88 datagram.
type XYZInfo struct {
	VesselHeadingDeg  uint16
	SoundSpeedDMPS    uint16
	TransducerDepthM  float32
	NumBeams          uint16
	ValidBeams        uint16
	SampleRateHz      float32
	ScanningInfo      uint8
}

// XYZBeam is one beam of an XYZ88 datagram's variable beam array.
type XYZBeam struct {
	DepthM              float32
	AcrossTrackM        float32
	AlongTrackM         float32
	DetectWindowLength  uint16
	QualityFactor       uint8
	BeamAdjustmentTenthDeg int8
	DetectionInfo       uint8
	SystemCleaning      int8
	BackscatterTenthDB  int16
}

// XYZ is the per-swath geo-referenced sounding datagram (EM710/EM122/EM302/
// EM2040-class): a fixed info block plus an array of per-beam results.
type XYZ struct {
	Info  XYZInfo
	Beams []XYZBeam
}

func decodeXYZ(body []byte) (XYZ, error) {
	if err := need(body, 20); err != nil {
		return XYZ{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := XYZInfo{
		VesselHeadingDeg: le.Uint16(body[0:2]),
		SoundSpeedDMPS:   le.Uint16(body[2:4]),
		TransducerDepthM: math.Float32frombits(le.Uint32(body[4:8])),
		NumBeams:         le.Uint16(body[8:10]),
		ValidBeams:       le.Uint16(body[10:12]),
		SampleRateHz:     math.Float32frombits(le.Uint32(body[12:16])),
		ScanningInfo:     body[16],
	}
	off := 20
	beams := make([]XYZBeam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+20); err != nil {
			return XYZ{}, err
		}
		b := body[off : off+20]
		beams = append(beams, XYZBeam{
			DepthM:                 math.Float32frombits(le.Uint32(b[0:4])),
			AcrossTrackM:           math.Float32frombits(le.Uint32(b[4:8])),
			AlongTrackM:            math.Float32frombits(le.Uint32(b[8:12])),
			DetectWindowLength:     le.Uint16(b[12:14]),
			QualityFactor:          b[14],
			BeamAdjustmentTenthDeg: int8(b[15]),
			DetectionInfo:          b[16],
			SystemCleaning:         int8(b[17]),
			BackscatterTenthDB:     int16(le.Uint16(b[18:20])),
		})
		off += 20
	}
	return XYZ{Info: info, Beams: beams}, nil
}

// AttitudeSample is one entry of an Attitude record's data array.
type AttitudeSample struct {
	RecordTimeMS uint16
	Status       uint16
	RollDeg      int16 // 0.01 degree units
	PitchDeg     int16
	HeaveCM      int16
	HeadingDeg   uint16
}

// Attitude is the motion sensor report: a variable-length array of
// timestamped roll/pitch/heave/heading samples.
type Attitude struct {
	Samples                []AttitudeSample
	SensorSystemDescriptor int8
}

func decodeAttitude(body []byte) (Attitude, error) {
	if err := need(body, 2); err != nil {
		return Attitude{}, err
	}
	le := endian.GetLittleEndianEngine()
	n := int(le.Uint16(body[0:2]))
	off := 2
	samples := make([]AttitudeSample, 0, n)
	for i := 0; i < n; i++ {
		if err := need(body, off+12); err != nil {
			return Attitude{}, err
		}
		b := body[off : off+12]
		samples = append(samples, AttitudeSample{
			RecordTimeMS: le.Uint16(b[0:2]),
			Status:       le.Uint16(b[2:4]),
			RollDeg:      int16(le.Uint16(b[4:6])),
			PitchDeg:     int16(le.Uint16(b[6:8])),
			HeaveCM:      int16(le.Uint16(b[8:10])),
			HeadingDeg:   le.Uint16(b[10:12]),
		})
		off += 12
	}
	var descriptor int8
	if off < len(body) {
		descriptor = int8(body[off])
	}
	return Attitude{Samples: samples, SensorSystemDescriptor: descriptor}, nil
}

// AttitudeNetworkSample is one entry of a Network Attitude Velocity
// record's data array, followed by its own variable-length raw message.
type AttitudeNetworkSample struct {
	RecordTimeMS uint16
	RollDeg      int16
	PitchDeg     int16
	HeaveCM      int16
	HeadingDeg   uint16
	Message      []byte
}

// AttitudeNetwork is the networked motion/velocity sensor report: a
// variable number of timestamped samples, each carrying its own trailing
// raw input message (the cursor moves by a field read from each sample,
// not a fixed stride, so NextNetworkAttitudeEntry is the intended way to
// walk it).
type AttitudeNetwork struct {
	NumEntries             uint16
	SensorSystemDescriptor int8
	body                   []byte
}

func decodeAttitudeNetwork(body []byte) (AttitudeNetwork, error) {
	if err := need(body, 4); err != nil {
		return AttitudeNetwork{}, err
	}
	le := endian.GetLittleEndianEngine()
	return AttitudeNetwork{
		NumEntries:             le.Uint16(body[0:2]),
		SensorSystemDescriptor: int8(body[2]),
		body:                   body[4:],
	}, nil
}

// NextNetworkAttitudeEntry advances cursor (an offset into the record's
// entry stream, starting at 0) and returns the decoded sample there plus
// the next cursor to pass in. ok is false once the entries are exhausted.
// This mirrors the source's pointer-walking accessor: the per-sample
// message length is only known after reading that sample's fixed fields,
// so entries cannot be indexed directly.
func (a AttitudeNetwork) NextNetworkAttitudeEntry(cursor int) (sample AttitudeNetworkSample, next int, ok bool) {
	if cursor < 0 || cursor+11 > len(a.body) {
		return AttitudeNetworkSample{}, cursor, false
	}
	le := endian.GetLittleEndianEngine()
	b := a.body[cursor : cursor+11]
	n := int(b[10])
	sample = AttitudeNetworkSample{
		RecordTimeMS: le.Uint16(b[0:2]),
		RollDeg:      int16(le.Uint16(b[2:4])),
		PitchDeg:     int16(le.Uint16(b[4:6])),
		HeaveCM:      int16(le.Uint16(b[6:8])),
		HeadingDeg:   le.Uint16(b[8:10]),
	}
	msgStart := cursor + 11
	msgEnd := msgStart + n
	if msgEnd > len(a.body) {
		return AttitudeNetworkSample{}, cursor, false
	}
	sample.Message = a.body[msgStart:msgEnd]
	return sample, msgEnd, true
}

// QualityFactor is the per-beam IFREMER quality factor report, layout-wise
// a fixed 4-byte info block followed by NumBeams little-endian float32s.
type QualityFactor struct {
	NumBeams uint16
	NumParams uint8
	Values    []float32
}

func decodeQualityFactor(body []byte) (QualityFactor, error) {
	if err := need(body, 4); err != nil {
		return QualityFactor{}, err
	}
	le := endian.GetLittleEndianEngine()
	numBeams := le.Uint16(body[0:2])
	npar := body[2]
	off := 4
	values := make([]float32, 0, numBeams)
	for i := 0; i < int(numBeams); i++ {
		if err := need(body, off+4); err != nil {
			return QualityFactor{}, err
		}
		values = append(values, math.Float32frombits(le.Uint32(body[off:off+4])))
		off += 4
	}
	return QualityFactor{NumBeams: numBeams, NumParams: npar, Values: values}, nil
}

// WaterColumnInfo is the fixed 28-byte header of a Water Column datagram.
type WaterColumnInfo struct {
	NumDatagrams    uint16
	DatagramNumber  uint16
	TXSectors       uint16
	NumBeams        uint16
	DatagramBeams   uint16
	SoundSpeedDMPS  uint16
	SampleRateHz1e2 uint32
	TXHeaveCM       int16
	TVGFunction     uint8
	TVGOffsetDB     int8
	ScanningInfo    uint8
}

// WaterColumnRXBeam is one receive beam of a Water Column datagram: its
// fixed 10-byte info plus NumSamples signed amplitude bytes.
type WaterColumnRXBeam struct {
	BeamAngle      int16
	StartRange     uint16
	NumSamples     uint16
	DetectedRange  uint16
	TXSector       uint8
	BeamIndex      uint8
	Amplitude      []int8
}

// WaterColumn is the raw backscatter-vs-range datagram (§6
// next_water_column_rx_beam). Its RX beam array is heterogeneous (each
// beam carries its own NumSamples-length amplitude tail), so beams are
// walked with NextWaterColumnRXBeam rather than indexed.
type WaterColumn struct {
	Info        WaterColumnInfo
	TXSectorRaw []byte
	rxBody      []byte
}

func decodeWaterColumn(body []byte) (WaterColumn, error) {
	if err := need(body, 28); err != nil {
		return WaterColumn{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := WaterColumnInfo{
		NumDatagrams:    le.Uint16(body[0:2]),
		DatagramNumber:  le.Uint16(body[2:4]),
		TXSectors:       le.Uint16(body[4:6]),
		NumBeams:        le.Uint16(body[6:8]),
		DatagramBeams:   le.Uint16(body[8:10]),
		SoundSpeedDMPS:  le.Uint16(body[10:12]),
		SampleRateHz1e2: le.Uint32(body[12:16]),
		TXHeaveCM:       int16(le.Uint16(body[16:18])),
		TVGFunction:     body[18],
		TVGOffsetDB:     int8(body[19]),
		ScanningInfo:    body[20],
	}
	if info.TXSectors > maxTXSectors {
		return WaterColumn{}, errs.ErrTooManySectors
	}
	off := 28
	txLen := int(info.TXSectors) * 6
	if err := need(body, off+txLen); err != nil {
		return WaterColumn{}, err
	}
	txRaw := body[off : off+txLen]
	off += txLen
	return WaterColumn{Info: info, TXSectorRaw: txRaw, rxBody: body[off:]}, nil
}

// NextWaterColumnRXBeam advances cursor (an offset into the beam stream,
// starting at 0) and returns the decoded beam there plus the next cursor.
// ok is false once the remaining bytes cannot hold another complete beam;
// the Info.DatagramBeams count is not consulted.
func (wc WaterColumn) NextWaterColumnRXBeam(cursor int) (beam WaterColumnRXBeam, next int, ok bool) {
	if cursor < 0 || cursor+10 > len(wc.rxBody) {
		return WaterColumnRXBeam{}, cursor, false
	}
	le := endian.GetLittleEndianEngine()
	b := wc.rxBody[cursor : cursor+10]
	beam = WaterColumnRXBeam{
		BeamAngle:     int16(le.Uint16(b[0:2])),
		StartRange:    le.Uint16(b[2:4]),
		NumSamples:    le.Uint16(b[4:6]),
		DetectedRange: le.Uint16(b[6:8]),
		TXSector:      b[8],
		BeamIndex:     b[9],
	}
	ampStart := cursor + 10
	ampEnd := ampStart + int(beam.NumSamples)
	if ampEnd > len(wc.rxBody) {
		return WaterColumnRXBeam{}, cursor, false
	}
	amp := make([]int8, beam.NumSamples)
	for i, v := range wc.rxBody[ampStart:ampEnd] {
		amp[i] = int8(v)
	}
	beam.Amplitude = amp
	return beam, ampEnd, true
}
