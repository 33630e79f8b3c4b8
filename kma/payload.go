package kma

import "github.com/fathomsonar/dgram/errs"

// Partition is the KMA M-partition prefix (§4.9): the number of datagram
// parts a UDP-fragmented datagram was split into, and this part's index.
// This decoder does not reassemble multi-part datagrams, so Read rejects
// anything other than the single-part case (1 of 1) as ErrPartitionNotSingle.
type Partition struct {
	NumOfDgms uint16
	DgmNum    uint16
}

func decodePartition(body []byte) (Partition, int, error) {
	if err := need(body, 4); err != nil {
		return Partition{}, 0, err
	}
	c := newCursor(body[:4])
	return Partition{NumOfDgms: c.u16(), DgmNum: c.u16()}, 4, nil
}

func (p Partition) validateSingle() error {
	if p.NumOfDgms != 1 || p.DgmNum != 1 {
		return errs.ErrPartitionNotSingle
	}
	return nil
}

// MCommon is the KMA M-common sub-header shared by MRZ, MWC, and CHE.
type MCommon struct {
	PingCnt            uint16
	RxFansPerPing      uint8
	RxFanIndex         uint8
	SwathsPerPing      uint8
	SwathAlongPosition uint8
	TxTransducerInd    uint8
	RxTransducerInd    uint8
	NumRxTransducers   uint8
	AlgorithmType      uint8
}

func decodeMCommon(block []byte) MCommon {
	c := newCursor(block)
	c.skip(2) // numBytesCmnPart, already consumed by readSubBlock
	return MCommon{
		PingCnt:            c.u16(),
		RxFansPerPing:      c.u8(),
		RxFanIndex:         c.u8(),
		SwathsPerPing:      c.u8(),
		SwathAlongPosition: c.u8(),
		TxTransducerInd:    c.u8(),
		RxTransducerInd:    c.u8(),
		NumRxTransducers:   c.u8(),
		AlgorithmType:      c.u8(),
	}
}

// SCommon is the KMA S-common sub-header shared by SPO, SCL, SDE, SHI, and
// CPO. SKM, SVP, and SVT begin with their own info blocks instead.
type SCommon struct {
	SensorSystem uint16
	SensorStatus uint16
}

func decodeSCommon(block []byte) SCommon {
	c := newCursor(block)
	c.skip(2) // numBytesCmnPart
	return SCommon{SensorSystem: c.u16(), SensorStatus: c.u16()}
}

// InstallParamsInfo is the 6-byte info sub-header of IIP and IOP.
type InstallParamsInfo struct {
	Info   uint16
	Status uint16
}

func decodeInstallParamsInfo(block []byte) InstallParamsInfo {
	c := newCursor(block)
	c.skip(2) // numBytesCmnPart
	return InstallParamsInfo{Info: c.u16(), Status: c.u16()}
}

// InstallationParameters decodes #IIP: the installation settings text blob,
// semicolon/comma delimited, not nul-terminated.
type InstallationParameters struct {
	Info        InstallParamsInfo
	InstallText []byte
}

func decodeIIP(body []byte) (InstallationParameters, error) {
	block, next, err := readSubBlock(body, 0)
	if err != nil {
		return InstallationParameters{}, err
	}
	return InstallationParameters{Info: decodeInstallParamsInfo(block), InstallText: body[next:]}, nil
}

// RuntimeParameters decodes #IOP, the live-settable counterpart to IIP.
type RuntimeParameters struct {
	Info        InstallParamsInfo
	RuntimeText []byte
}

func decodeIOP(body []byte) (RuntimeParameters, error) {
	block, next, err := readSubBlock(body, 0)
	if err != nil {
		return RuntimeParameters{}, err
	}
	return RuntimeParameters{Info: decodeInstallParamsInfo(block), RuntimeText: body[next:]}, nil
}

// BISTInfo is the 6-byte fixed part of a BIST-family datagram.
type BISTInfo struct {
	BISTInfo   uint8
	BISTStyle  uint8
	BISTNumber uint8
	BISTStatus int8
}

// BIST decodes #IBE, #IBR, and #IBS, which share one on-wire layout: a
// fixed info block followed by an un-terminated text report.
type BIST struct {
	Info BISTInfo
	Text []byte
}

func decodeBIST(body []byte) (BIST, error) {
	block, next, err := readSubBlock(body, 0)
	if err != nil {
		return BIST{}, err
	}
	c := newCursor(block)
	c.skip(2) // numBytesCmnPart
	return BIST{
		Info: BISTInfo{BISTInfo: c.u8(), BISTStyle: c.u8(), BISTNumber: c.u8(), BISTStatus: c.i8()},
		Text: body[next:],
	}, nil
}

// SPOData is the 40-byte fixed position block shared by #SPO and #CPO.
type SPOData struct {
	TimeFromSensorSec    uint32
	TimeFromSensorNanoS  uint32
	PosFixQualityM       float32
	CorrectedLatDeg      float64
	CorrectedLongDeg     float64
	SpeedOverGroundMPS   float32
	CourseOverGroundDeg  float32
	EllipsoidHeightReRef float32
}

// CPOData is bit-for-bit identical to SPOData; #CPO is the legacy
// compatibility counterpart to #SPO.
type CPOData = SPOData

func decodeSPOData(block []byte) SPOData {
	c := newCursor(block)
	return SPOData{
		TimeFromSensorSec:   c.u32(),
		TimeFromSensorNanoS: c.u32(),
		PosFixQualityM:      c.f32(),
		CorrectedLatDeg:     c.f64(),
		CorrectedLongDeg:    c.f64(),
		SpeedOverGroundMPS:  c.f32(),
		CourseOverGroundDeg: c.f32(),
		EllipsoidHeightReRef: c.f32(),
	}
}

// Position decodes #SPO.
type Position struct {
	Common         SCommon
	Data           SPOData
	DataFromSensor []byte
}

func decodeSPO(body []byte) (Position, error) {
	cBlock, next, err := readSubBlock(body, 0)
	if err != nil {
		return Position{}, err
	}
	if err := need(body[next:], 40); err != nil {
		return Position{}, err
	}
	return Position{
		Common:         decodeSCommon(cBlock),
		Data:           decodeSPOData(body[next : next+40]),
		DataFromSensor: body[next+40:],
	}, nil
}

// CompatPosition decodes #CPO.
type CompatPosition struct {
	Common         SCommon
	Data           CPOData
	DataFromSensor []byte
}

func decodeCPO(body []byte) (CompatPosition, error) {
	p, err := decodeSPO(body)
	if err != nil {
		return CompatPosition{}, err
	}
	return CompatPosition{Common: p.Common, Data: p.Data, DataFromSensor: p.DataFromSensor}, nil
}

// ClockData is the 8-byte fixed part of #SCL.
type ClockData struct {
	OffsetSec         float32
	ClockDevPUNanosec int32
}

// Clock decodes #SCL.
type Clock struct {
	Common         SCommon
	Data           ClockData
	DataFromSensor []byte
}

func decodeSCL(body []byte) (Clock, error) {
	cBlock, next, err := readSubBlock(body, 0)
	if err != nil {
		return Clock{}, err
	}
	if err := need(body[next:], 8); err != nil {
		return Clock{}, err
	}
	c := newCursor(body[next : next+8])
	return Clock{
		Common:         decodeSCommon(cBlock),
		Data:           ClockData{OffsetSec: c.f32(), ClockDevPUNanosec: c.i32()},
		DataFromSensor: body[next+8:],
	}, nil
}

// DepthDataV0 is the pre-Rev-I #SDE sample layout.
type DepthDataV0 struct {
	DepthUsedM  float32
	Offset      float32
	Scale       float32
	LatitudeDeg float64
	LongitudeDeg float64
}

// DepthDataV1 adds DepthRawM (Rev I).
type DepthDataV1 struct {
	DepthUsedM   float32
	DepthRawM    float32
	Offset       float32
	Scale        float32
	LatitudeDeg  float64
	LongitudeDeg float64
}

// Depth decodes #SDE. Exactly one of V0/V1 is set, selected by the
// datagram header's DgmVersion field, per §4.9's version-select rule.
type Depth struct {
	Common         SCommon
	V0             *DepthDataV0
	V1             *DepthDataV1
	DataFromSensor []byte
}

func decodeSDE(body []byte, version uint8) (Depth, error) {
	cBlock, next, err := readSubBlock(body, 0)
	if err != nil {
		return Depth{}, err
	}
	out := Depth{Common: decodeSCommon(cBlock)}
	if version == 0 {
		if err := need(body[next:], 28); err != nil {
			return Depth{}, err
		}
		c := newCursor(body[next : next+28])
		v0 := DepthDataV0{DepthUsedM: c.f32(), Offset: c.f32(), Scale: c.f32(), LatitudeDeg: c.f64(), LongitudeDeg: c.f64()}
		out.V0 = &v0
		out.DataFromSensor = body[next+28:]
		return out, nil
	}
	if err := need(body[next:], 32); err != nil {
		return Depth{}, err
	}
	c := newCursor(body[next : next+32])
	v1 := DepthDataV1{DepthUsedM: c.f32(), DepthRawM: c.f32(), Offset: c.f32(), Scale: c.f32(), LatitudeDeg: c.f64(), LongitudeDeg: c.f64()}
	out.V1 = &v1
	out.DataFromSensor = body[next+32:]
	return out, nil
}

// HeightData is the 6-byte fixed part of #SHI.
type HeightData struct {
	SensorType  uint16
	HeightUsedM float32
}

// Height decodes #SHI.
type Height struct {
	Common         SCommon
	Data           HeightData
	DataFromSensor []byte
}

func decodeSHI(body []byte) (Height, error) {
	cBlock, next, err := readSubBlock(body, 0)
	if err != nil {
		return Height{}, err
	}
	if err := need(body[next:], 6); err != nil {
		return Height{}, err
	}
	c := newCursor(body[next : next+6])
	return Height{
		Common:         decodeSCommon(cBlock),
		Data:           HeightData{SensorType: c.u16(), HeightUsedM: c.f32()},
		DataFromSensor: body[next+6:],
	}, nil
}

// Heave decodes #CHE, the compatibility heave datagram. Unlike the other
// sensor-compatibility datagrams it is keyed off an M-common, not an
// S-common, block.
type Heave struct {
	Common  MCommon
	HeaveM  float32
}

func decodeCHE(body []byte) (Heave, error) {
	cBlock, next, err := readSubBlock(body, 0)
	if err != nil {
		return Heave{}, err
	}
	if err := need(body[next:], 4); err != nil {
		return Heave{}, err
	}
	c := newCursor(body[next : next+4])
	return Heave{Common: decodeMCommon(cBlock), HeaveM: c.f32()}, nil
}

// SoundVelocityProfileInfo is the fixed portion of #SVP preceding the
// sample array.
type SoundVelocityProfileInfo struct {
	NumSamples   uint16
	SensorFormat [4]byte
	TimeSec      uint32
	LatitudeDeg  float64
	LongitudeDeg float64
}

// SoundVelocityProfileSample is one depth/velocity pair in a #SVP profile.
// The wire entry reserves 4 bytes between SoundVelocityMPerSec and TempC
// for a field no shipped format revision populates.
type SoundVelocityProfileSample struct {
	DepthM               float32
	SoundVelocityMPerSec float32
	TempC                float32
	Salinity             float32
}

// SoundVelocityProfile decodes #SVP.
type SoundVelocityProfile struct {
	Info    SoundVelocityProfileInfo
	Samples []SoundVelocityProfileSample
}

func decodeSVP(body []byte) (SoundVelocityProfile, error) {
	block, next, err := readSubBlock(body, 0)
	if err != nil {
		return SoundVelocityProfile{}, err
	}
	c := newCursor(block)
	c.skip(2) // numBytesInfoPart
	numSamples := c.u16()
	var format [4]byte
	copy(format[:], c.bytes(4))
	info := SoundVelocityProfileInfo{
		NumSamples:   numSamples,
		SensorFormat: format,
		TimeSec:      c.u32(),
		LatitudeDeg:  c.f64(),
		LongitudeDeg: c.f64(),
	}

	samples := make([]SoundVelocityProfileSample, 0, numSamples)
	pos := next
	const sampleSize = 20
	for i := 0; i < int(numSamples) && pos+sampleSize <= len(body); i++ {
		sc := newCursor(body[pos : pos+sampleSize])
		depthM := sc.f32()
		soundVelocity := sc.f32()
		sc.skip(4) // reserved
		samples = append(samples, SoundVelocityProfileSample{
			DepthM:               depthM,
			SoundVelocityMPerSec: soundVelocity,
			TempC:                sc.f32(),
			Salinity:             sc.f32(),
		})
		pos += sampleSize
	}
	return SoundVelocityProfile{Info: info, Samples: samples}, nil
}

// SoundVelocityAtTransducerInfo is the fixed portion of #SVT preceding its
// sample array.
type SoundVelocityAtTransducerInfo struct {
	SensorStatus               uint16
	SensorInputFormat          uint16
	NumSamples                 uint16
	NumBytesPerSample          uint16
	SensorDataContents         uint16
	FilterTimeSec              float32
	SoundVelocityOffsetMPerSec float32
}

// SoundVelocityAtTransducerSample is one #SVT reading.
type SoundVelocityAtTransducerSample struct {
	TimeSec              uint32
	TimeNanosec          uint32
	SoundVelocityMPerSec float32
	TempC                float32
	PressurePa           float32
	Salinity             float32
}

// SoundVelocityAtTransducer decodes #SVT.
type SoundVelocityAtTransducer struct {
	Info    SoundVelocityAtTransducerInfo
	Samples []SoundVelocityAtTransducerSample
}

func decodeSVT(body []byte) (SoundVelocityAtTransducer, error) {
	block, next, err := readSubBlock(body, 0)
	if err != nil {
		return SoundVelocityAtTransducer{}, err
	}
	c := newCursor(block)
	c.skip(2) // numBytesInfoPart
	info := SoundVelocityAtTransducerInfo{
		SensorStatus:       c.u16(),
		SensorInputFormat:  c.u16(),
		NumSamples:         c.u16(),
		NumBytesPerSample:  c.u16(),
		SensorDataContents: c.u16(),
	}
	info.FilterTimeSec = c.f32()
	info.SoundVelocityOffsetMPerSec = c.f32()

	stride := int(info.NumBytesPerSample)
	if stride <= 0 {
		stride = 24
	}
	samples := make([]SoundVelocityAtTransducerSample, 0, info.NumSamples)
	pos := next
	for i := 0; i < int(info.NumSamples) && pos+24 <= len(body); i++ {
		sc := newCursor(body[pos : pos+24])
		samples = append(samples, SoundVelocityAtTransducerSample{
			TimeSec:              sc.u32(),
			TimeNanosec:          sc.u32(),
			SoundVelocityMPerSec: sc.f32(),
			TempC:                sc.f32(),
			PressurePa:           sc.f32(),
			Salinity:             sc.f32(),
		})
		pos += stride
	}
	return SoundVelocityAtTransducer{Info: info, Samples: samples}, nil
}

// SKMInfo is the 12-byte fixed header preceding a #SKM sample array.
type SKMInfo struct {
	SensorSystem       uint8
	SensorStatus       uint8
	SensorInputFormat  uint16
	NumSamples         uint16
	NumBytesPerSample  uint16
	SensorDataContents uint16
}

// SKMSample is one binary attitude/position sample plus its delayed-heave
// tail. The delayed-heave bits are left as documented in their raw source
// fields (the DelayedHeave* fields) rather than interpreted, matching the
// "carried through unresolved" design note on KMA SKM delayed-heave bits.
type SKMSample struct {
	TimeSec     uint32
	TimeNanosec uint32
	Status      uint32

	LatitudeDeg      float64
	LongitudeDeg     float64
	EllipsoidHeightM float32

	RollDeg  float32
	PitchDeg float32
	HeadingDeg float32
	HeaveM   float32

	RollRateDegPerSec  float32
	PitchRateDegPerSec float32
	YawRateDegPerSec   float32

	VelNorthMPerSec float32
	VelEastMPerSec  float32
	VelDownMPerSec  float32

	DelayedHeaveTimeSec     uint32
	DelayedHeaveTimeNanosec uint32
	DelayedHeaveM           float32
}

// KMBinarySensor decodes #SKM.
type KMBinarySensor struct {
	Info    SKMInfo
	Samples []SKMSample
}

func decodeSKM(body []byte) (KMBinarySensor, error) {
	block, next, err := readSubBlock(body, 0)
	if err != nil {
		return KMBinarySensor{}, err
	}
	c := newCursor(block)
	c.skip(2) // numBytesInfoPart
	info := SKMInfo{
		SensorSystem:      c.u8(),
		SensorStatus:      c.u8(),
		SensorInputFormat: c.u16(),
		NumSamples:        c.u16(),
		NumBytesPerSample: c.u16(),
	}
	info.SensorDataContents = c.u16()

	stride := int(info.NumBytesPerSample)
	if stride <= 0 {
		stride = 132
	}
	samples := make([]SKMSample, 0, info.NumSamples)
	pos := next
	for i := 0; i < int(info.NumSamples) && pos+132 <= len(body); i++ {
		sc := newCursor(body[pos : pos+132])
		sc.skip(4) // dgmType
		sc.skip(2) // numBytesDgm
		sc.skip(2) // dgmVersion
		s := SKMSample{
			TimeSec:     sc.u32(),
			TimeNanosec: sc.u32(),
			Status:      sc.u32(),
		}
		s.LatitudeDeg = sc.f64()
		s.LongitudeDeg = sc.f64()
		s.EllipsoidHeightM = sc.f32()
		s.RollDeg = sc.f32()
		s.PitchDeg = sc.f32()
		s.HeadingDeg = sc.f32()
		s.HeaveM = sc.f32()
		s.RollRateDegPerSec = sc.f32()
		s.PitchRateDegPerSec = sc.f32()
		s.YawRateDegPerSec = sc.f32()
		s.VelNorthMPerSec = sc.f32()
		s.VelEastMPerSec = sc.f32()
		s.VelDownMPerSec = sc.f32()
		// remaining fixed-layout fields (position/error/acceleration) carry
		// through to offset 120 and are intentionally left undecoded here.
		dh := newCursor(body[pos+120 : pos+132])
		s.DelayedHeaveTimeSec = dh.u32()
		s.DelayedHeaveTimeNanosec = dh.u32()
		s.DelayedHeaveM = dh.f32()

		samples = append(samples, s)
		pos += stride
	}
	return KMBinarySensor{Info: info, Samples: samples}, nil
}
