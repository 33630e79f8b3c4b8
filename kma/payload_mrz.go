package kma

// PingInfo is the MRZ ping-level info sub-header (§4.9's "info sub-header
// of declared size"). Every field is read in wire order; fields added in
// later format revisions simply read as zero on an older, shorter block
// because cursor reads are bounds-safe past the declared length.
type PingInfo struct {
	PingRateHz              float32
	BeamSpacing             uint8
	DepthMode               uint8
	SubDepthMode            uint8
	DistanceBtwSwath        uint8
	DetectionMode           uint8
	PulseForm               uint8
	FrequencyModeHz         float32
	FreqRangeLowLimHz       float32
	FreqRangeHighLimHz      float32
	MaxTotalTxPulseLenSec   float32
	MaxEffTxPulseLenSec     float32
	MaxEffTxBandwidthHz     float32
	AbsCoeffDBPerKm         float32
	PortSectorEdgeDeg       float32
	StarbSectorEdgeDeg      float32
	PortMeanCovDeg          float32
	StarbMeanCovDeg         float32
	PortMeanCovM            int16
	StarbMeanCovM           int16
	ModeAndStabilization    uint8
	RuntimeFilter1          uint8
	RuntimeFilter2          uint16
	PipeTrackingStatus      uint32
	TransmitArraySizeDeg    float32
	ReceiveArraySizeDeg     float32
	TransmitPowerDB         float32
	SLRampUpTimeRemaining   uint16
	YawAngleDeg             float32
	NumTxSectors            uint16
	NumBytesPerTxSector     uint16
	HeadingVesselDeg        float32
	SoundSpeedAtTxDepthMPS  float32
	TxTransducerDepthM      float32
	ZWaterLevelReRefPointM  float32
	XKmallToallM            float32
	YKmallToallM            float32
	LatLongInfo             uint8
	PosSensorStatus         uint8
	AttitudeSensorStatus    uint8
	LatitudeDeg             float64
	LongitudeDeg            float64
	EllipsoidHeightReRefM   float32
	BSCorrectionOffsetDB    float32
	LambertsLawApplied      uint8
	IceWindow               uint8
	ActiveModes             uint16
}

func decodePingInfo(block []byte) PingInfo {
	c := newCursor(block)
	c.skip(2) // numBytesInfoData, consumed by readSubBlock
	c.skip(2) // padding0
	var p PingInfo
	p.PingRateHz = c.f32()
	p.BeamSpacing = c.u8()
	p.DepthMode = c.u8()
	p.SubDepthMode = c.u8()
	p.DistanceBtwSwath = c.u8()
	p.DetectionMode = c.u8()
	p.PulseForm = c.u8()
	c.skip(2) // padding1
	p.FrequencyModeHz = c.f32()
	p.FreqRangeLowLimHz = c.f32()
	p.FreqRangeHighLimHz = c.f32()
	p.MaxTotalTxPulseLenSec = c.f32()
	p.MaxEffTxPulseLenSec = c.f32()
	p.MaxEffTxBandwidthHz = c.f32()
	p.AbsCoeffDBPerKm = c.f32()
	p.PortSectorEdgeDeg = c.f32()
	p.StarbSectorEdgeDeg = c.f32()
	p.PortMeanCovDeg = c.f32()
	p.StarbMeanCovDeg = c.f32()
	p.PortMeanCovM = int16(c.u16())
	p.StarbMeanCovM = int16(c.u16())
	p.ModeAndStabilization = c.u8()
	p.RuntimeFilter1 = c.u8()
	p.RuntimeFilter2 = c.u16()
	p.PipeTrackingStatus = c.u32()
	p.TransmitArraySizeDeg = c.f32()
	p.ReceiveArraySizeDeg = c.f32()
	p.TransmitPowerDB = c.f32()
	p.SLRampUpTimeRemaining = c.u16()
	c.skip(2) // padding2
	p.YawAngleDeg = c.f32()
	p.NumTxSectors = c.u16()
	p.NumBytesPerTxSector = c.u16()
	p.HeadingVesselDeg = c.f32()
	p.SoundSpeedAtTxDepthMPS = c.f32()
	p.TxTransducerDepthM = c.f32()
	p.ZWaterLevelReRefPointM = c.f32()
	p.XKmallToallM = c.f32()
	p.YKmallToallM = c.f32()
	p.LatLongInfo = c.u8()
	p.PosSensorStatus = c.u8()
	p.AttitudeSensorStatus = c.u8()
	c.skip(1) // padding3
	p.LatitudeDeg = c.f64()
	p.LongitudeDeg = c.f64()
	p.EllipsoidHeightReRefM = c.f32()
	p.BSCorrectionOffsetDB = c.f32()
	p.LambertsLawApplied = c.u8()
	p.IceWindow = c.u8()
	p.ActiveModes = c.u16()
	return p
}

// TxSectorInfo is one MRZ transmit-sector descriptor. HighVoltageLevelDB,
// SectorTrackingCorrDB, and EffectiveSignalLenSec are only populated when
// the ping's DgmVersion selects the Version 1 (Rev G) layout; PingInfo's
// NumBytesPerTxSector is what actually drives how far the cursor advances
// between elements, not the Go struct's size.
type TxSectorInfo struct {
	TxSectorNum           uint8
	TxArrNum              uint8
	TxSubArray            uint8
	SectorTransmitDelaySec float32
	TiltAngleReTxDeg      float32
	TxNominalSourceLevelDB float32
	TxFocusRangeM         float32
	CentreFreqHz          float32
	SignalBandWidthHz     float32
	TotalSignalLengthSec  float32
	PulseShading          uint8
	SignalWaveForm        uint8

	HighVoltageLevelDB    float32
	SectorTrackingCorrDB  float32
	EffectiveSignalLenSec float32
}

func decodeTxSectorInfo(elem []byte, version uint8) TxSectorInfo {
	c := newCursor(elem)
	var t TxSectorInfo
	t.TxSectorNum = c.u8()
	t.TxArrNum = c.u8()
	t.TxSubArray = c.u8()
	c.skip(1) // padding0
	t.SectorTransmitDelaySec = c.f32()
	t.TiltAngleReTxDeg = c.f32()
	t.TxNominalSourceLevelDB = c.f32()
	t.TxFocusRangeM = c.f32()
	t.CentreFreqHz = c.f32()
	t.SignalBandWidthHz = c.f32()
	t.TotalSignalLengthSec = c.f32()
	t.PulseShading = c.u8()
	t.SignalWaveForm = c.u8()
	c.skip(2) // padding1
	if version >= 1 {
		t.HighVoltageLevelDB = c.f32()
		t.SectorTrackingCorrDB = c.f32()
		t.EffectiveSignalLenSec = c.f32()
	}
	return t
}

// RxInfo is the MRZ receiver-side info sub-header, and the source of the
// declared strides for the extra-detection-class and sounding arrays that
// follow it.
type RxInfo struct {
	NumSoundingsMaxMain     uint16
	NumSoundingsValidMain   uint16
	NumBytesPerSounding     uint16
	WCSampleRateHz          float32
	SeabedImageSampleRateHz float32
	BSNormalDB              float32
	BSObliqueDB             float32
	ExtraDetectionAlarmFlag uint16
	NumExtraDetections      uint16
	NumExtraDetectionClasses uint16
	NumBytesPerClass        uint16
}

func decodeRxInfo(block []byte) RxInfo {
	c := newCursor(block)
	c.skip(2) // numBytesRxInfo
	return RxInfo{
		NumSoundingsMaxMain:      c.u16(),
		NumSoundingsValidMain:    c.u16(),
		NumBytesPerSounding:      c.u16(),
		WCSampleRateHz:           c.f32(),
		SeabedImageSampleRateHz:  c.f32(),
		BSNormalDB:               c.f32(),
		BSObliqueDB:              c.f32(),
		ExtraDetectionAlarmFlag:  c.u16(),
		NumExtraDetections:       c.u16(),
		NumExtraDetectionClasses: c.u16(),
		NumBytesPerClass:         c.u16(),
	}
}

// ExtraDetClassInfo describes one extra-detection class bucket.
type ExtraDetClassInfo struct {
	NumExtraDetInClass uint16
	AlarmFlag          uint8
}

func decodeExtraDetClassInfo(elem []byte) ExtraDetClassInfo {
	c := newCursor(elem)
	n := c.u16()
	c.skip(1) // padding
	return ExtraDetClassInfo{NumExtraDetInClass: n, AlarmFlag: c.u8()}
}

// Sounding is one MRZ bottom-detection point. Decoded in full: at 120
// bytes per element it is the single largest fixed-size record in either
// format, and every field maps to a concrete field described by RxInfo's
// numBytesPerSounding stride.
type Sounding struct {
	SoundingIndex   uint16
	TxSectorNum     uint8
	DetectionType   uint8
	DetectionMethod uint8

	RangeFactor               float32
	QualityFactor             float32
	DetectionUncertaintyVerM  float32
	DetectionUncertaintyHorM  float32
	DetectionWindowLengthSec  float32
	EchoLengthSec             float32

	WCBeamNum            uint16
	WCRangeSamples       uint16
	WCNomBeamAngleAcross float32

	MeanAbsCoeffDBPerKm float32
	Reflectivity1DB     float32
	Reflectivity2DB     float32
	ReceiverSensitivityAppliedDB float32
	SourceLevelAppliedDB float32
	BSCalibrationDB      float32
	TVGDB                float32

	BeamAngleReRxDeg            float32
	BeamAngleCorrectionDeg      float32
	TwoWayTravelTimeSec         float32
	TwoWayTravelTimeCorrSec     float32

	DeltaLatitudeDeg  float32
	DeltaLongitudeDeg float32
	ZReRefPointM      float32
	YReRefPointM      float32
	XReRefPointM      float32
	BeamIncAngleAdjDeg float32

	SIStartRangeSamples uint16
	SICentreSample      uint16
	SINumSamples        uint16
}

func decodeSounding(elem []byte) Sounding {
	c := newCursor(elem)
	var s Sounding
	s.SoundingIndex = c.u16()
	s.TxSectorNum = c.u8()
	s.DetectionType = c.u8()
	s.DetectionMethod = c.u8()
	c.skip(5) // rejectionInfo1/2, postProcessingInfo, detectionClass, detectionConfidenceLevel
	c.skip(2) // padding
	s.RangeFactor = c.f32()
	s.QualityFactor = c.f32()
	s.DetectionUncertaintyVerM = c.f32()
	s.DetectionUncertaintyHorM = c.f32()
	s.DetectionWindowLengthSec = c.f32()
	s.EchoLengthSec = c.f32()
	s.WCBeamNum = c.u16()
	s.WCRangeSamples = c.u16()
	s.WCNomBeamAngleAcross = c.f32()
	s.MeanAbsCoeffDBPerKm = c.f32()
	s.Reflectivity1DB = c.f32()
	s.Reflectivity2DB = c.f32()
	s.ReceiverSensitivityAppliedDB = c.f32()
	s.SourceLevelAppliedDB = c.f32()
	s.BSCalibrationDB = c.f32()
	s.TVGDB = c.f32()
	s.BeamAngleReRxDeg = c.f32()
	s.BeamAngleCorrectionDeg = c.f32()
	s.TwoWayTravelTimeSec = c.f32()
	s.TwoWayTravelTimeCorrSec = c.f32()
	s.DeltaLatitudeDeg = c.f32()
	s.DeltaLongitudeDeg = c.f32()
	s.ZReRefPointM = c.f32()
	s.YReRefPointM = c.f32()
	s.XReRefPointM = c.f32()
	s.BeamIncAngleAdjDeg = c.f32()
	c.skip(2) // realTimeCleanInfo
	s.SIStartRangeSamples = c.u16()
	s.SICentreSample = c.u16()
	s.SINumSamples = c.u16()
	return s
}

// RawRangeAndDepth decodes #MRZ. SeabedImageRaw is left as raw int16 sample
// bytes rather than split per-beam: doing so correctly requires summing
// SInumSamples across every decoded sounding first, and the source itself
// treats it as a flat trailing blob, so this mirrors that rather than
// inventing a per-beam slicing convention the wire format doesn't state.
type RawRangeAndDepth struct {
	Partition      Partition
	Common         MCommon
	PingInfo       PingInfo
	TxSectors      []TxSectorInfo
	RxInfo         RxInfo
	ExtraDetClasses []ExtraDetClassInfo
	Soundings      []Sounding
	SeabedImageRaw []byte
}

func decodeMRZ(body []byte, dgmVersion uint8) (RawRangeAndDepth, error) {
	partition, pos, err := decodePartition(body)
	if err != nil {
		return RawRangeAndDepth{}, err
	}
	if err := partition.validateSingle(); err != nil {
		return RawRangeAndDepth{}, err
	}

	commonBlock, pos, err := readSubBlock(body, pos)
	if err != nil {
		return RawRangeAndDepth{}, err
	}
	common := decodeMCommon(commonBlock)

	pingBlock, pos, err := readSubBlock(body, pos)
	if err != nil {
		return RawRangeAndDepth{}, err
	}
	pingInfo := decodePingInfo(pingBlock)

	stride := int(pingInfo.NumBytesPerTxSector)
	if stride <= 0 {
		stride = 36
	}
	txSectors := make([]TxSectorInfo, 0, pingInfo.NumTxSectors)
	for i := 0; i < int(pingInfo.NumTxSectors) && pos+stride <= len(body); i++ {
		txSectors = append(txSectors, decodeTxSectorInfo(body[pos:pos+stride], dgmVersion))
		pos += stride
	}

	rxBlock, pos, err := readSubBlock(body, pos)
	if err != nil {
		return RawRangeAndDepth{}, err
	}
	rxInfo := decodeRxInfo(rxBlock)

	classStride := int(rxInfo.NumBytesPerClass)
	if classStride <= 0 {
		classStride = 4
	}
	classes := make([]ExtraDetClassInfo, 0, rxInfo.NumExtraDetectionClasses)
	for i := 0; i < int(rxInfo.NumExtraDetectionClasses) && pos+classStride <= len(body); i++ {
		classes = append(classes, decodeExtraDetClassInfo(body[pos:pos+classStride]))
		pos += classStride
	}

	soundingStride := int(rxInfo.NumBytesPerSounding)
	if soundingStride <= 0 {
		soundingStride = 120
	}
	numSoundings := int(rxInfo.NumSoundingsMaxMain) + int(rxInfo.NumExtraDetections)
	soundings := make([]Sounding, 0, numSoundings)
	for i := 0; i < numSoundings && pos+soundingStride <= len(body); i++ {
		soundings = append(soundings, decodeSounding(body[pos:pos+soundingStride]))
		pos += soundingStride
	}

	return RawRangeAndDepth{
		Partition:       partition,
		Common:          common,
		PingInfo:        pingInfo,
		TxSectors:       txSectors,
		RxInfo:          rxInfo,
		ExtraDetClasses: classes,
		Soundings:       soundings,
		SeabedImageRaw:  body[pos:],
	}, nil
}
