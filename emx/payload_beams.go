package emx

import "github.com/fathomsonar/dgram/endian"

// CentralBeamsInfo is the fixed 16-byte header shared by the central-beams
// echogram datagram.
type CentralBeamsInfo struct {
	MeanAbsCoefDBPerKM uint16
	PulseLengthUS      uint16
	RangeNorm          uint16
	StartRangeSamples  uint16
	StopRangeSamples   uint16
	NormalIncidenceBSHalfDB int8
	ObliqueBSHalfDB    int8
	TXBeamwidthTenthDeg uint16
	TVGCrossoverDB     uint8
	NumBeams           uint8
}

// CentralBeamsBeam is one beam descriptor of a central-beams datagram.
type CentralBeamsBeam struct {
	BeamIndex   uint8
	NumSamples  uint16
	StartRange  uint16
}

// CentralBeams is the central-beams echogram datagram: a fixed info block,
// an array of per-beam descriptors, and a trailing amplitude sample blob
// whose layout is described by those descriptors.
//
// The beam array here is walked at its documented 6-byte stride
// (beam_index, spare, num_samples, start_range), not the 16-byte
// emx_datagram_central_beams_info stride the reference C reader's cursor
// arithmetic actually uses — see DESIGN.md for why the 16-byte stride is
// treated as a source bug rather than reproduced.
type CentralBeams struct {
	Info      CentralBeamsInfo
	Beams     []CentralBeamsBeam
	Amplitude []int8
}

func decodeCentralBeams(body []byte) (CentralBeams, error) {
	if err := need(body, 16); err != nil {
		return CentralBeams{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := CentralBeamsInfo{
		MeanAbsCoefDBPerKM:      le.Uint16(body[0:2]),
		PulseLengthUS:           le.Uint16(body[2:4]),
		RangeNorm:               le.Uint16(body[4:6]),
		StartRangeSamples:       le.Uint16(body[6:8]),
		StopRangeSamples:        le.Uint16(body[8:10]),
		NormalIncidenceBSHalfDB: int8(body[10]),
		ObliqueBSHalfDB:         int8(body[11]),
		TXBeamwidthTenthDeg:     le.Uint16(body[12:14]),
		TVGCrossoverDB:          body[14],
		NumBeams:                body[15],
	}
	off := 16
	beams := make([]CentralBeamsBeam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+6); err != nil {
			return CentralBeams{}, err
		}
		b := body[off : off+6]
		beams = append(beams, CentralBeamsBeam{
			BeamIndex:  b[0],
			NumSamples: le.Uint16(b[2:4]),
			StartRange: le.Uint16(b[4:6]),
		})
		off += 6
	}
	amp := make([]int8, len(body)-off)
	for i, v := range body[off:] {
		amp[i] = int8(v)
	}
	return CentralBeams{Info: info, Beams: beams, Amplitude: amp}, nil
}

// SeabedImage83Info is the fixed 16-byte header of a seabed-image-83
// datagram (EM2000/EM3000/EM3002/EM1002/EM300/EM120).
type SeabedImage83Info struct {
	MeanAbsCoefDBPerKM uint16
	PulseLengthUS      uint16
	RangeNorm          uint16
	StartRangeSamples  uint16
	StopRangeSamples   uint16
	NormalIncidenceBSHalfDB int8
	ObliqueBSHalfDB    int8
	TXBeamwidthTenthDeg uint16
	TVGCrossoverDB     uint8
	NumBeams           uint8
}

// SeabedImage83Beam is one beam descriptor of a seabed-image-83 datagram.
type SeabedImage83Beam struct {
	BeamIndex        uint8
	SortingDirection int8
	NumSamples       uint16
	DetectSample     uint16
}

// SeabedImage83 is the seabed-image datagram: a fixed info block, an array
// of per-beam descriptors, and a trailing 8-bit amplitude sample blob.
type SeabedImage83 struct {
	Info      SeabedImage83Info
	Beams     []SeabedImage83Beam
	Amplitude []int8
}

func decodeSeabedImage83(body []byte) (SeabedImage83, error) {
	if err := need(body, 16); err != nil {
		return SeabedImage83{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := SeabedImage83Info{
		MeanAbsCoefDBPerKM:      le.Uint16(body[0:2]),
		PulseLengthUS:           le.Uint16(body[2:4]),
		RangeNorm:               le.Uint16(body[4:6]),
		StartRangeSamples:       le.Uint16(body[6:8]),
		StopRangeSamples:        le.Uint16(body[8:10]),
		NormalIncidenceBSHalfDB: int8(body[10]),
		ObliqueBSHalfDB:         int8(body[11]),
		TXBeamwidthTenthDeg:     le.Uint16(body[12:14]),
		TVGCrossoverDB:          body[14],
		NumBeams:                body[15],
	}
	off := 16
	beams := make([]SeabedImage83Beam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+6); err != nil {
			return SeabedImage83{}, err
		}
		b := body[off : off+6]
		beams = append(beams, SeabedImage83Beam{
			BeamIndex:        b[0],
			SortingDirection: int8(b[1]),
			NumSamples:       le.Uint16(b[2:4]),
			DetectSample:     le.Uint16(b[4:6]),
		})
		off += 6
	}
	amp := make([]int8, len(body)-off)
	for i, v := range body[off:] {
		amp[i] = int8(v)
	}
	return SeabedImage83{Info: info, Beams: beams, Amplitude: amp}, nil
}

// SeabedImage89Info is the fixed 16-byte header of a seabed-image-89
// datagram.
type SeabedImage89Info struct {
	SampleRateHz       float32
	RangeNorm          uint16
	NormalIncidenceBSTenthDB int16
	ObliqueBSTenthDB   int16
	TXBeamwidthTenthDeg uint16
	TVGCrossoverTenthDB uint16
	NumBeams           uint16
}

// SeabedImage89Beam is one beam descriptor of a seabed-image-89 datagram.
type SeabedImage89Beam struct {
	SortingDirection int8
	DetectionInfo    uint8
	NumSamples       uint16
	DetectSample     uint16
}

// SeabedImage89 is the newer seabed-image datagram: a fixed info block, an
// array of per-beam descriptors, and a trailing 16-bit amplitude sample
// blob (wider samples than SeabedImage83).
type SeabedImage89 struct {
	Info      SeabedImage89Info
	Beams     []SeabedImage89Beam
	Amplitude []int16
}

func decodeSeabedImage89(body []byte) (SeabedImage89, error) {
	if err := need(body, 16); err != nil {
		return SeabedImage89{}, err
	}
	le := endian.GetLittleEndianEngine()
	info := SeabedImage89Info{
		SampleRateHz:             math32(le, body[0:4]),
		RangeNorm:                le.Uint16(body[4:6]),
		NormalIncidenceBSTenthDB: int16(le.Uint16(body[6:8])),
		ObliqueBSTenthDB:         int16(le.Uint16(body[8:10])),
		TXBeamwidthTenthDeg:      le.Uint16(body[10:12]),
		TVGCrossoverTenthDB:      le.Uint16(body[12:14]),
		NumBeams:                 le.Uint16(body[14:16]),
	}
	off := 16
	beams := make([]SeabedImage89Beam, 0, info.NumBeams)
	for i := 0; i < int(info.NumBeams); i++ {
		if err := need(body, off+6); err != nil {
			return SeabedImage89{}, err
		}
		b := body[off : off+6]
		beams = append(beams, SeabedImage89Beam{
			SortingDirection: int8(b[0]),
			DetectionInfo:    b[1],
			NumSamples:       le.Uint16(b[2:4]),
			DetectSample:     le.Uint16(b[4:6]),
		})
		off += 6
	}
	ampLen := (len(body) - off) / 2
	amp := make([]int16, ampLen)
	for i := 0; i < ampLen; i++ {
		amp[i] = int16(le.Uint16(body[off+i*2 : off+i*2+2]))
	}
	return SeabedImage89{Info: info, Beams: beams, Amplitude: amp}, nil
}

// SVPInfo is the fixed 12-byte header shared by the EMX sound-velocity
// profile datagram and its deprecated EM3000 variant.
type SVPInfo struct {
	Date              uint32
	TimeMS            uint32
	NumSamples        uint16
	DepthResolutionCM uint16
}

// SVPSample is one depth/sound-speed pair of an EMX sound-velocity profile.
type SVPSample struct {
	DepthUnits      uint32
	SoundSpeedDMPS  uint32
}

// SVP is the EMX sound-velocity profile datagram (distinct from KMA's SVP):
// a fixed info block plus an array of depth/sound-speed pairs, each in
// Info.DepthResolutionCM units.
type SVP struct {
	Info    SVPInfo
	Samples []SVPSample
}

func decodeSVPInfo(body []byte) (SVPInfo, error) {
	if err := need(body, 12); err != nil {
		return SVPInfo{}, err
	}
	le := endian.GetLittleEndianEngine()
	return SVPInfo{
		Date:              le.Uint32(body[0:4]),
		TimeMS:            le.Uint32(body[4:8]),
		NumSamples:        le.Uint16(body[8:10]),
		DepthResolutionCM: le.Uint16(body[10:12]),
	}, nil
}

func decodeSVP(body []byte) (SVP, error) {
	info, err := decodeSVPInfo(body)
	if err != nil {
		return SVP{}, err
	}
	le := endian.GetLittleEndianEngine()
	off := 12
	samples := make([]SVPSample, 0, info.NumSamples)
	for i := 0; i < int(info.NumSamples); i++ {
		if err := need(body, off+8); err != nil {
			return SVP{}, err
		}
		samples = append(samples, SVPSample{
			DepthUnits:     le.Uint32(body[off : off+4]),
			SoundSpeedDMPS: le.Uint32(body[off+4 : off+8]),
		})
		off += 8
	}
	return SVP{Info: info, Samples: samples}, nil
}

// SVPEM3000Sample is one depth/sound-speed pair of the deprecated EM3000
// sound-velocity profile variant, narrower than SVPSample.
type SVPEM3000Sample struct {
	DepthUnits     uint16
	SoundSpeedDMPS uint16
}

// SVPEM3000 is the deprecated EM3000-era sound-velocity profile datagram:
// same 12-byte info block as SVP, but 4-byte rather than 8-byte samples.
type SVPEM3000 struct {
	Info    SVPInfo
	Samples []SVPEM3000Sample
}

func decodeSVPEM3000(body []byte) (SVPEM3000, error) {
	info, err := decodeSVPInfo(body)
	if err != nil {
		return SVPEM3000{}, err
	}
	le := endian.GetLittleEndianEngine()
	off := 12
	samples := make([]SVPEM3000Sample, 0, info.NumSamples)
	for i := 0; i < int(info.NumSamples); i++ {
		if err := need(body, off+4); err != nil {
			return SVPEM3000{}, err
		}
		samples = append(samples, SVPEM3000Sample{
			DepthUnits:     le.Uint16(body[off : off+2]),
			SoundSpeedDMPS: le.Uint16(body[off+2 : off+4]),
		})
		off += 4
	}
	return SVPEM3000{Info: info, Samples: samples}, nil
}
