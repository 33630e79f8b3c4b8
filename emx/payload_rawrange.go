package emx

import (
	"github.com/fathomsonar/dgram/endian"
	"github.com/fathomsonar/dgram/errs"
)

// maxTXSectors bounds the transmit-sector count carried by the raw-range
// and water-column info sub-headers, matching the source's EMX_MAX_TX_SECTORS.
const maxTXSectors = 20

// RawRange70Info is the fixed 4-byte header of a raw-range-and-angle 70
// datagram, the oldest of the four raw-range shapes (info + N RX beams,
// with no TX-sector array).
type RawRange70Info struct {
	MaxBeams       uint8
	NumBeams       uint8
	SoundSpeedDMPS uint16
}

// RawRange70Beam is one RX beam of a raw-range 70 datagram.
type RawRange70Beam struct {
	BeamAngle      int16
	TXTiltAngle    uint16
	Range          uint16
	BackscatterHalfDB int8
	BeamNumber     uint8
}

// RawRange70 is the "info + N RX beam" raw-range-and-angle datagram.
type RawRange70 struct {
	Info  RawRange70Info
	Beams []RawRange70Beam
}

func decodeRawRange70(body []byte) (RawRange70, error) {
	if err := need(body, 4); err != nil {
		return RawRange70{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := RawRange70Info{
		MaxBeams:       body[0],
		NumBeams:       body[1],
		SoundSpeedDMPS: le.Uint16(body[2:4]),
	}
	off := 4
	beams := make([]RawRange70Beam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+8); err != nil {
			return RawRange70{}, err
		}
		b := body[off : off+8]
		beams = append(beams, RawRange70Beam{
			BeamAngle:         int16(le.Uint16(b[0:2])),
			TXTiltAngle:       le.Uint16(b[2:4]),
			Range:             le.Uint16(b[4:6]),
			BackscatterHalfDB: int8(b[6]),
			BeamNumber:        b[7],
		})
		off += 8
	}
	return RawRange70{Info: info, Beams: beams}, nil
}

// RawRange101Info is the fixed 30-byte header of a raw-range-and-angle 101
// datagram.
type RawRange101Info struct {
	VesselHeadingDeg      uint16
	SoundSpeedDMPS        uint16
	TransducerDepthCM     uint16
	MaxBeams              uint8
	NumBeams              uint8
	DepthResolutionCM     uint8
	HorizontalResolutionCM uint8
	SampleRateHz          uint16
	Status                int32
	RangeNorm             uint16
	NormalIncidenceBSTenthDB int8
	ObliqueBSTenthDB      int8
	FixedGain             uint8
	TXPowerDB             int8
	Mode                  uint8
	Coverage              uint8
	YawStabHeadingDeg     uint16
	TXSectors             uint16
}

// RawRange101TXBeam is one transmit sector of a raw-range 101 datagram.
type RawRange101TXBeam struct {
	LastBeam    uint16
	TXTiltAngle int16
	Heading     uint16
	Roll        int16
	Pitch       int16
	Heave       int16
}

// RawRange101Beam is one RX beam of a raw-range 101 datagram.
type RawRange101Beam struct {
	Range              uint16
	QualityFactor      uint8
	DetectWindowLength uint8
	BackscatterHalfDB  int8
	BeamNumber         uint8
	RXBeamAngle        int16
	RXHeadingDeg       uint16
	Roll               int16
	Pitch              int16
	Heave              int16
}

// RawRange101 is the "info + N TX sector + M RX beam" raw-range-and-angle
// 101 datagram.
type RawRange101 struct {
	Info     RawRange101Info
	TXBeams  []RawRange101TXBeam
	RXBeams  []RawRange101Beam
}

func decodeRawRange101(body []byte) (RawRange101, error) {
	if err := need(body, 30); err != nil {
		return RawRange101{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := RawRange101Info{
		VesselHeadingDeg:         le.Uint16(body[0:2]),
		SoundSpeedDMPS:           le.Uint16(body[2:4]),
		TransducerDepthCM:        le.Uint16(body[4:6]),
		MaxBeams:                 body[6],
		NumBeams:                 body[7],
		DepthResolutionCM:        body[8],
		HorizontalResolutionCM:   body[9],
		SampleRateHz:             le.Uint16(body[10:12]),
		Status:                   int32(le.Uint32(body[12:16])),
		RangeNorm:                le.Uint16(body[16:18]),
		NormalIncidenceBSTenthDB: int8(body[18]),
		ObliqueBSTenthDB:         int8(body[19]),
		FixedGain:                body[20],
		TXPowerDB:                int8(body[21]),
		Mode:                     body[22],
		Coverage:                 body[23],
		YawStabHeadingDeg:        le.Uint16(body[24:26]),
		TXSectors:                le.Uint16(body[26:28]),
	}
	if info.TXSectors > maxTXSectors {
		return RawRange101{}, errs.ErrTooManySectors
	}
	off := 30
	txBeams := make([]RawRange101TXBeam, 0, info.TXSectors)
	for i := 0; i < int(info.TXSectors); i++ {
		if err := need(body, off+12); err != nil {
			return RawRange101{}, err
		}
		b := body[off : off+12]
		txBeams = append(txBeams, RawRange101TXBeam{
			LastBeam:    le.Uint16(b[0:2]),
			TXTiltAngle: int16(le.Uint16(b[2:4])),
			Heading:     le.Uint16(b[4:6]),
			Roll:        int16(le.Uint16(b[6:8])),
			Pitch:       int16(le.Uint16(b[8:10])),
			Heave:       int16(le.Uint16(b[10:12])),
		})
		off += 12
	}
	rxBeams := make([]RawRange101Beam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+16); err != nil {
			return RawRange101{}, err
		}
		b := body[off : off+16]
		rxBeams = append(rxBeams, RawRange101Beam{
			Range:              le.Uint16(b[0:2]),
			QualityFactor:      b[2],
			DetectWindowLength: b[3],
			BackscatterHalfDB:  int8(b[4]),
			BeamNumber:         b[5],
			RXBeamAngle:        int16(le.Uint16(b[6:8])),
			RXHeadingDeg:       le.Uint16(b[8:10]),
			Roll:               int16(le.Uint16(b[10:12])),
			Pitch:              int16(le.Uint16(b[12:14])),
			Heave:              int16(le.Uint16(b[14:16])),
		})
		off += 16
	}
	return RawRange101{Info: info, TXBeams: txBeams, RXBeams: rxBeams}, nil
}

// RawRange102Info is the fixed 20-byte header of a raw-range-and-angle 102
// datagram.
type RawRange102Info struct {
	TXSectors      uint16
	NumBeams       uint16
	SampleRateHz1e2 uint32
	ROVDepthCM     int32
	SoundSpeedDMPS uint16
	MaxBeams       uint16
}

// RawRange102TXBeam is one transmit sector of a raw-range 102 datagram.
type RawRange102TXBeam struct {
	TXTiltAngle      int16
	FocusRangeTenthM uint16
	SignalLengthUS   uint32
	TXOffsetUS       uint32
	CenterFreqHz     uint32
	SignalBandwidth10Hz uint16
	SignalWaveformID uint8
	TXSector         uint8
}

// RawRange102Beam is one RX beam of a raw-range 102 datagram.
type RawRange102Beam struct {
	RXBeamAngle        int16
	RangeQuarterSamples uint16
	TXSectorNumber     uint8
	BackscatterHalfDB  int8
	QualityFactor      uint8
	DetectWindowLength uint8
	BeamNumber         int16
}

// RawRange102 is the "info + N TX sector + M RX beam" raw-range-and-angle
// 102 datagram.
type RawRange102 struct {
	Info    RawRange102Info
	TXBeams []RawRange102TXBeam
	RXBeams []RawRange102Beam
}

func decodeRawRange102(body []byte) (RawRange102, error) {
	if err := need(body, 20); err != nil {
		return RawRange102{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := RawRange102Info{
		TXSectors:       le.Uint16(body[0:2]),
		NumBeams:        le.Uint16(body[2:4]),
		SampleRateHz1e2: le.Uint32(body[4:8]),
		ROVDepthCM:      int32(le.Uint32(body[8:12])),
		SoundSpeedDMPS:  le.Uint16(body[12:14]),
		MaxBeams:        le.Uint16(body[14:16]),
	}
	if info.TXSectors > maxTXSectors {
		return RawRange102{}, errs.ErrTooManySectors
	}
	off := 20
	txBeams := make([]RawRange102TXBeam, 0, info.TXSectors)
	for i := 0; i < int(info.TXSectors); i++ {
		if err := need(body, off+20); err != nil {
			return RawRange102{}, err
		}
		b := body[off : off+20]
		txBeams = append(txBeams, RawRange102TXBeam{
			TXTiltAngle:         int16(le.Uint16(b[0:2])),
			FocusRangeTenthM:    le.Uint16(b[2:4]),
			SignalLengthUS:      le.Uint32(b[4:8]),
			TXOffsetUS:          le.Uint32(b[8:12]),
			CenterFreqHz:        le.Uint32(b[12:16]),
			SignalBandwidth10Hz: le.Uint16(b[16:18]),
			SignalWaveformID:    b[18],
			TXSector:            b[19],
		})
		off += 20
	}
	rxBeams := make([]RawRange102Beam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+12); err != nil {
			return RawRange102{}, err
		}
		b := body[off : off+12]
		rxBeams = append(rxBeams, RawRange102Beam{
			RXBeamAngle:         int16(le.Uint16(b[0:2])),
			RangeQuarterSamples: le.Uint16(b[2:4]),
			TXSectorNumber:      b[4],
			BackscatterHalfDB:   int8(b[5]),
			QualityFactor:       b[6],
			DetectWindowLength:  b[7],
			BeamNumber:          int16(le.Uint16(b[8:10])),
		})
		off += 12
	}
	return RawRange102{Info: info, TXBeams: txBeams, RXBeams: rxBeams}, nil
}

// RawRange78Info is the fixed 16-byte header of a raw-range-and-angle 78
// datagram.
type RawRange78Info struct {
	SoundSpeedDMPS uint16
	TXSectors      uint16
	NumBeams       uint16
	ValidBeams     uint16
	SampleRateHz   float32
	DScale         uint32
}

// RawRange78TXBeam is one transmit sector of a raw-range 78 datagram.
type RawRange78TXBeam struct {
	TXTiltAngle      int16
	FocusRangeTenthM uint16
	SignalLengthSec  float32
	SectorTXDelaySec float32
	CenterFreqHz     float32
	MeanAbsorption   uint16
	SignalWaveformID uint8
	TXSector         uint8
	SignalBandwidthHz float32
}

// RawRange78Beam is one RX beam of a raw-range 78 datagram.
type RawRange78Beam struct {
	RXBeamAngle        int16
	TXSectorNumber     uint8
	DetectionInfo      uint8
	DetectWindowLength uint16
	QualityFactor      uint8
	DopplerCorrection  int8
	TwoWayTravelTimeSec float32
	BackscatterTenthDB int16
	SystemCleaning     int8
}

// RawRange78 is the "info + N TX sector + M RX beam" raw-range-and-angle 78
// datagram, the format used by the EM122/EM302/EM710/EM2040 family.
type RawRange78 struct {
	Info    RawRange78Info
	TXBeams []RawRange78TXBeam
	RXBeams []RawRange78Beam
}

func decodeRawRange78(body []byte) (RawRange78, error) {
	if err := need(body, 16); err != nil {
		return RawRange78{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := RawRange78Info{
		SoundSpeedDMPS: le.Uint16(body[0:2]),
		TXSectors:      le.Uint16(body[2:4]),
		NumBeams:       le.Uint16(body[4:6]),
		ValidBeams:     le.Uint16(body[6:8]),
		SampleRateHz:   math32(le, body[8:12]),
		DScale:         le.Uint32(body[12:16]),
	}
	if info.TXSectors > maxTXSectors {
		return RawRange78{}, errs.ErrTooManySectors
	}
	off := 16
	txBeams := make([]RawRange78TXBeam, 0, info.TXSectors)
	for i := 0; i < int(info.TXSectors); i++ {
		if err := need(body, off+24); err != nil {
			return RawRange78{}, err
		}
		b := body[off : off+24]
		txBeams = append(txBeams, RawRange78TXBeam{
			TXTiltAngle:       int16(le.Uint16(b[0:2])),
			FocusRangeTenthM:  le.Uint16(b[2:4]),
			SignalLengthSec:   math32(le, b[4:8]),
			SectorTXDelaySec:  math32(le, b[8:12]),
			CenterFreqHz:      math32(le, b[12:16]),
			MeanAbsorption:    le.Uint16(b[16:18]),
			SignalWaveformID:  b[18],
			TXSector:          b[19],
			SignalBandwidthHz: math32(le, b[20:24]),
		})
		off += 24
	}
	rxBeams := make([]RawRange78Beam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+16); err != nil {
			return RawRange78{}, err
		}
		b := body[off : off+16]
		rxBeams = append(rxBeams, RawRange78Beam{
			RXBeamAngle:         int16(le.Uint16(b[0:2])),
			TXSectorNumber:      b[2],
			DetectionInfo:       b[3],
			DetectWindowLength:  le.Uint16(b[4:6]),
			QualityFactor:       b[6],
			DopplerCorrection:   int8(b[7]),
			TwoWayTravelTimeSec: math32(le, b[8:12]),
			BackscatterTenthDB:  int16(le.Uint16(b[12:14])),
			SystemCleaning:      int8(b[14]),
		})
		off += 16
	}
	return RawRange78{Info: info, TXBeams: txBeams, RXBeams: rxBeams}, nil
}
