package emx

import "github.com/fathomsonar/dgram/endian"

// InstallParams is the installation-parameters record family (start, stop,
// and remote variants share this layout in the source): a serial-number
// field followed by an ASCII key=value text blob whose length is implied
// by the datagram size rather than wire-encoded.
type InstallParams struct {
	SerialNumber2 uint16
	Text          string
}

func decodeInstallParams(body []byte) (InstallParams, error) {
	if err := need(body, 2); err != nil {
		return InstallParams{}, err
	}
	le := endian.GetLittleEndianEngine()
	return InstallParams{
		SerialNumber2: le.Uint16(body[0:2]),
		Text:          string(body[2:]),
	}, nil
}

// RuntimeParams is the sounder's current runtime configuration, a fixed
// 33-byte info block with no trailing array.
type RuntimeParams struct {
	OperatorStationStatus uint8
	PUStatus              uint8
	BSPStatus             uint8
	HeadOrTXStatus        uint8
	Mode                  uint8
	FilterID              uint8
	MinDepthM             uint16
	MaxDepthM             uint16
	AbsorptionDB          uint16
	TXPulseLengthUS       uint16
	TXBeamwidthTenthDeg   uint16
	TXPowerDB             int8
	RXBeamwidthTenthDeg   uint8
	RXBandwidthHz50       uint8
	RXFixedGainDB         uint8
	TVGCrossoverDB        uint8
	SoundSpeedSource      uint8
	MaxPortSwathM         uint16
	BeamSpacing           uint8
	MaxPortCoverageDeg    uint8
	YawPitchMode          uint8
	MaxStbdCoverageDeg    uint8
	MaxStbdSwathM         uint16
	TXAlongTiltTenthDeg   int16
	FilterID2             uint8
}

func decodeRuntimeParams(body []byte) (RuntimeParams, error) {
	if err := need(body, 33); err != nil {
		return RuntimeParams{}, err
	}
	le := endian.GetLittleEndianEngine()
	return RuntimeParams{
		OperatorStationStatus: body[0],
		PUStatus:              body[1],
		BSPStatus:             body[2],
		HeadOrTXStatus:        body[3],
		Mode:                  body[4],
		FilterID:              body[5],
		MinDepthM:             le.Uint16(body[6:8]),
		MaxDepthM:             le.Uint16(body[8:10]),
		AbsorptionDB:          le.Uint16(body[10:12]),
		TXPulseLengthUS:       le.Uint16(body[12:14]),
		TXBeamwidthTenthDeg:   le.Uint16(body[14:16]),
		TXPowerDB:             int8(body[16]),
		RXBeamwidthTenthDeg:   body[17],
		RXBandwidthHz50:       body[18],
		RXFixedGainDB:         body[19],
		TVGCrossoverDB:        body[20],
		SoundSpeedSource:      body[21],
		MaxPortSwathM:         le.Uint16(body[22:24]),
		BeamSpacing:           body[24],
		MaxPortCoverageDeg:    body[25],
		YawPitchMode:          body[26],
		MaxStbdCoverageDeg:    body[27],
		MaxStbdSwathM:         le.Uint16(body[28:30]),
		TXAlongTiltTenthDeg:   int16(le.Uint16(body[30:32])),
		FilterID2:             body[32],
	}, nil
}

// ExtraParams is the extra-parameters datagram: a content discriminator
// followed by a content-specific payload. Only content 6 (Bscorr.txt) is
// decoded — contents 1-5 have no decode logic in the reference reader
// either (DESIGN.md).
type ExtraParams struct {
	Content uint16
	BSCorr  *BSCorr
}

// BSCorr is extra-parameters content 6: a length-prefixed backscatter
// correction text blob.
type BSCorr struct {
	Text string
}

func decodeExtraParams(body []byte) (ExtraParams, error) {
	if err := need(body, 2); err != nil {
		return ExtraParams{}, err
	}
	le := endian.GetLittleEndianEngine()
	p := ExtraParams{Content: le.Uint16(body[0:2])}
	if p.Content != 6 {
		return p, nil
	}
	if err := need(body, 4); err != nil {
		return ExtraParams{}, err
	}
	numChars := int(le.Uint16(body[2:4]))
	if err := need(body, 4+numChars); err != nil {
		return ExtraParams{}, err
	}
	p.BSCorr = &BSCorr{Text: string(body[4 : 4+numChars])}
	return p, nil
}

// PUOutput is the processing-unit identification/version record.
type PUOutput struct {
	UDPPort1            uint16
	UDPPort2            uint16
	UDPPort3            uint16
	UDPPort4            uint16
	SystemDescriptor    uint32
	PUSoftwareVersion   string
	BSPSoftwareVersion  string
	Transceiver1Version string
	Transceiver2Version string
	HostIPAddress       uint32
	TXOpeningAngleDeg   uint8
	RXOpeningAngleDeg   uint8
}

func decodePUOutput(body []byte) (PUOutput, error) {
	if err := need(body, 88); err != nil {
		return PUOutput{}, err
	}
	le := endian.GetLittleEndianEngine()
	return PUOutput{
		UDPPort1:            le.Uint16(body[0:2]),
		UDPPort2:            le.Uint16(body[2:4]),
		UDPPort3:            le.Uint16(body[4:6]),
		UDPPort4:            le.Uint16(body[6:8]),
		SystemDescriptor:    le.Uint32(body[8:12]),
		PUSoftwareVersion:   cString(body[12:28]),
		BSPSoftwareVersion:  cString(body[28:44]),
		Transceiver1Version: cString(body[44:60]),
		Transceiver2Version: cString(body[60:76]),
		HostIPAddress:       le.Uint32(body[76:80]),
		TXOpeningAngleDeg:   body[80],
		RXOpeningAngleDeg:   body[81],
	}, nil
}

// PUStatus is the processing-unit runtime health/sensor-status record.
type PUStatus struct {
	PingRateCentiHz uint16
	PingCounter     uint16
	SwathDistanceM  uint32
	PPSStatus       int8
	PositionStatus  int8
	AttitudeStatus  int8
	ClockStatus     int8
	HeadingStatus   int8
	PUStatusByte    uint8
	HeadingDeg      uint16
	Roll            int16
	Pitch           int16
	Heave           int16
	SoundSpeedDMPS  uint16
	DepthCM         uint32
	CPUTempC        int8
}

func decodePUStatus(body []byte) (PUStatus, error) {
	if err := need(body, 69); err != nil {
		return PUStatus{}, err
	}
	le := endian.GetLittleEndianEngine()
	return PUStatus{
		PingRateCentiHz: le.Uint16(body[0:2]),
		PingCounter:     le.Uint16(body[2:4]),
		SwathDistanceM:  le.Uint32(body[4:8]),
		PPSStatus:       int8(body[28]),
		PositionStatus:  int8(body[29]),
		AttitudeStatus:  int8(body[30]),
		ClockStatus:     int8(body[31]),
		HeadingStatus:   int8(body[32]),
		PUStatusByte:    body[33],
		HeadingDeg:      le.Uint16(body[34:36]),
		Roll:            int16(le.Uint16(body[36:38])),
		Pitch:           int16(le.Uint16(body[38:40])),
		Heave:           int16(le.Uint16(body[40:42])),
		SoundSpeedDMPS:  le.Uint16(body[42:44]),
		DepthCM:         le.Uint32(body[44:48]),
		CPUTempC:        int8(body[68]),
	}, nil
}

// PUBISTResult is a processing-unit built-in self-test result: a test
// identifier/status pair followed by a free-form result text blob.
type PUBISTResult struct {
	TestNumber      uint16
	TestResultStatus int16
	Text            string
}

func decodePUBISTResult(body []byte) (PUBISTResult, error) {
	if err := need(body, 4); err != nil {
		return PUBISTResult{}, err
	}
	le := endian.GetLittleEndianEngine()
	return PUBISTResult{
		TestNumber:       le.Uint16(body[0:2]),
		TestResultStatus: int16(le.Uint16(body[2:4])),
		Text:             string(body[4:]),
	}, nil
}

// TransducerTiltEntry is one timestamped mechanical-tilt sample.
type TransducerTiltEntry struct {
	RecordTimeMS uint16
	TiltHundredthDeg int16
}

// TransducerTilt is the mechanical transducer tilt report: a variable-length
// array of timestamped tilt samples.
type TransducerTilt struct {
	Entries []TransducerTiltEntry
}

func decodeTransducerTilt(body []byte) (TransducerTilt, error) {
	if err := need(body, 2); err != nil {
		return TransducerTilt{}, err
	}
	le := endian.GetLittleEndianEngine()
	n := int(le.Uint16(body[0:2]))
	off := 2
	entries := make([]TransducerTiltEntry, 0, n)
	for i := 0; i < n; i++ {
		if err := need(body, off+4); err != nil {
			return TransducerTilt{}, err
		}
		entries = append(entries, TransducerTiltEntry{
			RecordTimeMS:     le.Uint16(body[off : off+2]),
			TiltHundredthDeg: int16(le.Uint16(body[off+2 : off+4])),
		})
		off += 4
	}
	return TransducerTilt{Entries: entries}, nil
}

// cString trims a fixed-width field at its first NUL, or returns it intact
// if the field fills the whole width.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
