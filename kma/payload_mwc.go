package kma

import "github.com/fathomsonar/dgram/errs"

// PhaseFlag selects how much per-sample phase data trails each MWC RX
// beam's amplitude array.
type PhaseFlag uint8

const (
	PhaseOff  PhaseFlag = 0 // no phase data
	PhaseLow  PhaseFlag = 1 // 1 byte/sample, 180/128 degree resolution
	PhaseHigh PhaseFlag = 2 // 2 bytes/sample, 0.01 degree resolution
)

// TxInfo is the MWC transmit-side info sub-header.
type TxInfo struct {
	NumTxSectors        uint16
	NumBytesPerTxSector uint16
	HeaveM              float32
}

func decodeMWCTxInfo(block []byte) TxInfo {
	c := newCursor(block)
	c.skip(2) // numBytesTxInfo
	t := TxInfo{NumTxSectors: c.u16(), NumBytesPerTxSector: c.u16()}
	c.skip(2) // padding
	t.HeaveM = c.f32()
	return t
}

// MWCTxSectorInfo is one MWC transmit-sector descriptor, distinct from
// MRZ's TxSectorInfo (no version variants, no source-level field).
type MWCTxSectorInfo struct {
	TiltAngleReTxDeg  float32
	CentreFreqHz      float32
	TxBeamWidthAlong  float32
	TxSectorNum       uint16
}

func decodeMWCTxSectorInfo(elem []byte) MWCTxSectorInfo {
	c := newCursor(elem)
	return MWCTxSectorInfo{
		TiltAngleReTxDeg: c.f32(),
		CentreFreqHz:     c.f32(),
		TxBeamWidthAlong: c.f32(),
		TxSectorNum:      c.u16(),
	}
}

// MWCRxInfo is the MWC receiver-side info sub-header, and the source of
// the beam-entry stride and phase-resolution flag used to walk the RX beam
// array that follows it.
type MWCRxInfo struct {
	NumBeams             uint16
	NumBytesPerBeamEntry uint8
	PhaseFlag            PhaseFlag
	TVGFunctionApplied   uint8
	TVGOffsetDB          int8
	SampleFreqHz         float32
	SoundVelocityMPerSec float32
}

func decodeMWCRxInfo(block []byte) MWCRxInfo {
	c := newCursor(block)
	c.skip(2) // numBytesRxInfo
	return MWCRxInfo{
		NumBeams:             c.u16(),
		NumBytesPerBeamEntry: c.u8(),
		PhaseFlag:            PhaseFlag(c.u8()),
		TVGFunctionApplied:   c.u8(),
		TVGOffsetDB:          c.i8(),
		SampleFreqHz:         c.f32(),
		SoundVelocityMPerSec: c.f32(),
	}
}

// WCBeamKMA is one decoded MWC RX beam: a fixed header plus three
// variable-length sample arrays whose presence depends on PhaseFlag.
// DetectedRangeInSamplesHighResolution is zero unless the beam entry is
// long enough to carry the Version 1 (Rev G) field.
type WCBeamKMA struct {
	BeamPointAngReVerticalDeg            float32
	StartRangeSampleNum                  uint16
	DetectedRangeInSamples               uint16
	BeamTxSectorNum                      uint16
	NumSamples                           uint16
	DetectedRangeInSamplesHighResolution float32

	Amplitude []int8
	PhaseLow  []int8
	PhaseHigh []int16
}

const mwcBeamFixedSize = 12

// NextWaterColumnRXBeamKMA reads one MWC RX beam entry from the front of
// cursor: a fixed-size header of entrySize bytes (as declared by the
// datagram's numBytesPerBeamEntry), then NumSamples amplitude bytes, then
// zero, NumSamples, or 2*NumSamples bytes of phase data depending on
// phase. It reports ok=false once cursor is exhausted.
func NextWaterColumnRXBeamKMA(cursor []byte, phase PhaseFlag, entrySize int) (beam WCBeamKMA, rest []byte, ok bool, err error) {
	if len(cursor) == 0 {
		return WCBeamKMA{}, cursor, false, nil
	}
	if entrySize < mwcBeamFixedSize || len(cursor) < entrySize {
		return WCBeamKMA{}, cursor, false, errs.ErrRegionOverflow
	}

	hc := newCursor(cursor[:entrySize])
	beam.BeamPointAngReVerticalDeg = hc.f32()
	beam.StartRangeSampleNum = hc.u16()
	beam.DetectedRangeInSamples = hc.u16()
	beam.BeamTxSectorNum = hc.u16()
	beam.NumSamples = hc.u16()
	if entrySize >= mwcBeamFixedSize+4 {
		beam.DetectedRangeInSamplesHighResolution = hc.f32()
	}

	pos := entrySize
	n := int(beam.NumSamples)

	if len(cursor) < pos+n {
		return WCBeamKMA{}, cursor, false, errs.ErrRegionOverflow
	}
	amp := make([]int8, n)
	for i, v := range cursor[pos : pos+n] {
		amp[i] = int8(v)
	}
	beam.Amplitude = amp
	pos += n

	switch phase {
	case PhaseLow:
		if len(cursor) < pos+n {
			return WCBeamKMA{}, cursor, false, errs.ErrRegionOverflow
		}
		ph := make([]int8, n)
		for i, v := range cursor[pos : pos+n] {
			ph[i] = int8(v)
		}
		beam.PhaseLow = ph
		pos += n
	case PhaseHigh:
		if len(cursor) < pos+2*n {
			return WCBeamKMA{}, cursor, false, errs.ErrRegionOverflow
		}
		ph := make([]int16, n)
		pc := newCursor(cursor[pos : pos+2*n])
		for i := 0; i < n; i++ {
			ph[i] = int16(pc.u16())
		}
		beam.PhaseHigh = ph
		pos += 2 * n
	}

	return beam, cursor[pos:], true, nil
}

// WaterColumn decodes #MWC.
type WaterColumn struct {
	Partition Partition
	Common    MCommon
	TxInfo    TxInfo
	TxSectors []MWCTxSectorInfo
	RxInfo    MWCRxInfo
	Beams     []WCBeamKMA
}

func decodeMWC(body []byte) (WaterColumn, error) {
	partition, pos, err := decodePartition(body)
	if err != nil {
		return WaterColumn{}, err
	}
	if err := partition.validateSingle(); err != nil {
		return WaterColumn{}, err
	}

	commonBlock, pos, err := readSubBlock(body, pos)
	if err != nil {
		return WaterColumn{}, err
	}
	common := decodeMCommon(commonBlock)

	txInfoBlock, pos, err := readSubBlock(body, pos)
	if err != nil {
		return WaterColumn{}, err
	}
	txInfo := decodeMWCTxInfo(txInfoBlock)

	txStride := int(txInfo.NumBytesPerTxSector)
	if txStride <= 0 {
		txStride = 16
	}
	txSectors := make([]MWCTxSectorInfo, 0, txInfo.NumTxSectors)
	for i := 0; i < int(txInfo.NumTxSectors) && pos+txStride <= len(body); i++ {
		txSectors = append(txSectors, decodeMWCTxSectorInfo(body[pos:pos+txStride]))
		pos += txStride
	}

	rxBlock, pos, err := readSubBlock(body, pos)
	if err != nil {
		return WaterColumn{}, err
	}
	rxInfo := decodeMWCRxInfo(rxBlock)

	entrySize := int(rxInfo.NumBytesPerBeamEntry)
	beams := make([]WCBeamKMA, 0, rxInfo.NumBeams)
	cur := body[pos:]
	for i := 0; i < int(rxInfo.NumBeams); i++ {
		beam, rest, ok, err := NextWaterColumnRXBeamKMA(cur, rxInfo.PhaseFlag, entrySize)
		if err != nil {
			return WaterColumn{}, err
		}
		if !ok {
			break
		}
		beams = append(beams, beam)
		cur = rest
	}

	return WaterColumn{
		Partition: partition,
		Common:    common,
		TxInfo:    txInfo,
		TxSectors: txSectors,
		RxInfo:    rxInfo,
		Beams:     beams,
	}, nil
}
