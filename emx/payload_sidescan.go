package emx

import (
	"github.com/fathomsonar/dgram/endian"
	"github.com/fathomsonar/dgram/errs"
)

// maxSidescanChannels bounds the HISAS channel count carried by the
// sidescan status/data pair, matching the source's fixed channel[6] arrays.
const maxSidescanChannels = 6

// SidescanStatusChannel is one HISAS channel descriptor of a sidescan
// status record. BytesPerSample (2, 4, or 8) is cached on the owning
// stream so the matching HISAS 1032 Sidescan data record can size its
// per-channel sample array.
type SidescanStatusChannel struct {
	TypeOfChannel     uint8
	SubChannelNumber  uint8
	CorrectionFlags   uint16
	UniPolar          uint16
	BytesPerSample    uint16
	ChannelName       string
	FrequencyHz       float32
	HorizBeamAngleDeg float32
	TiltAngleDeg      float32
	BeamWidthDeg      float32
	OffsetXM          float32
	OffsetYM          float32
	OffsetZM          float32
	OffsetYawDeg      float32
	OffsetPitchDeg    float32
	OffsetRollDeg     float32
}

// SidescanStatus is the HISAS sidescan channel configuration record. It
// establishes, per channel, the sample width that HISAS 1032 Sidescan data
// records rely on to size their trailing sample arrays.
type SidescanStatus struct {
	FileFormat   uint8
	SystemType   uint8
	SonarType    uint16
	NavUnits     uint16
	NumChannels  uint16
	Channels     []SidescanStatusChannel
}

func decodeSidescanStatus(body []byte, cal *[6]uint16) (SidescanStatus, error) {
	const infoSize = 1 + 1 + 32 + 2 + 128 + 2 + 2 + 88
	if err := need(body, infoSize); err != nil {
		return SidescanStatus{}, err
	}
	le := endian.GetLittleEndianEngine()
	s := SidescanStatus{
		FileFormat:  body[0],
		SystemType:  body[1],
		SonarType:   le.Uint16(body[34:36]),
		NavUnits:    le.Uint16(body[164:166]),
		NumChannels: le.Uint16(body[166:168]),
	}
	if s.NumChannels > maxSidescanChannels {
		return SidescanStatus{}, errs.ErrTooManyChannels
	}

	const channelSize = 128
	off := infoSize
	channels := make([]SidescanStatusChannel, 0, s.NumChannels)
	for i := 0; i < int(s.NumChannels); i++ {
		if err := need(body, off+channelSize); err != nil {
			return SidescanStatus{}, err
		}
		c := body[off : off+channelSize]
		bps := le.Uint16(c[6:8])
		if bps != 2 && bps != 4 && bps != 8 {
			return SidescanStatus{}, errs.ErrBadData
		}
		name := c[12:28]
		nameEnd := len(name)
		for j, b := range name {
			if b == 0 {
				nameEnd = j
				break
			}
		}
		channels = append(channels, SidescanStatusChannel{
			TypeOfChannel:     c[0],
			SubChannelNumber:  c[1],
			CorrectionFlags:   le.Uint16(c[2:4]),
			UniPolar:          le.Uint16(c[4:6]),
			BytesPerSample:    bps,
			ChannelName:       string(name[:nameEnd]),
			FrequencyHz:       math32(le, c[32:36]),
			HorizBeamAngleDeg: math32(le, c[36:40]),
			TiltAngleDeg:      math32(le, c[40:44]),
			BeamWidthDeg:      math32(le, c[44:48]),
			OffsetXM:          math32(le, c[48:52]),
			OffsetYM:          math32(le, c[52:56]),
			OffsetZM:          math32(le, c[56:60]),
			OffsetYawDeg:      math32(le, c[60:64]),
			OffsetPitchDeg:    math32(le, c[64:68]),
			OffsetRollDeg:     math32(le, c[68:72]),
		})
		cal[i] = bps
		off += channelSize
	}
	s.Channels = channels
	return s, nil
}

// SidescanDataChannel is one channel's slant-range sample block of a HISAS
// 1032 Sidescan data record. Samples is populated according to the
// channel's cached BytesPerSample: 2 => uint16 amplitude, 4 => float32,
// any other cached width is carried in Raw only (§9, no consumer decodes
// 8-byte complex samples).
type SidescanDataChannel struct {
	ChannelNumber   uint16
	SlantRangeM     float32
	TimeDurationSec float32
	SecondsPerPing  float32
	NumSamples      uint16
	Weight          int16
	SamplesU16      []uint16
	SamplesF32      []float32
	Raw             []byte
}

// SidescanData is the HISAS 1032 Sidescan sample record (§3, §4.5): a fixed
// ping-level info block followed by one variable-length sample block per
// channel, each sized by the bytes-per-sample a prior SidescanStatus
// record cached for that channel index.
type SidescanData struct {
	MagicNumber   uint16
	HeaderType    uint8
	BeamNumber    uint8
	NumChannels   uint16
	PingNumber    uint32
	SensorLat     float64
	SensorLon     float64
	SensorDepthM  float32
	SensorHeadingDeg float32
	Channels      []SidescanDataChannel
}

func decodeSidescanData(body []byte, cal *[6]uint16) (SidescanData, error) {
	const infoSize = 256
	if err := need(body, infoSize); err != nil {
		return SidescanData{}, err
	}
	le := endian.GetLittleEndianEngine()
	d := SidescanData{
		MagicNumber: le.Uint16(body[0:2]),
		HeaderType:  body[2],
		BeamNumber:  body[3],
		NumChannels: le.Uint16(body[4:6]),
		PingNumber:  le.Uint32(body[28:32]),
		SensorLat:   math64(le, body[160:168]),
		SensorLon:   math64(le, body[168:176]),
		SensorDepthM:     math32(le, body[192:196]),
		SensorHeadingDeg: math32(le, body[212:216]),
	}
	if d.NumChannels > maxSidescanChannels {
		return SidescanData{}, errs.ErrTooManyChannels
	}

	const channelInfoSize = 64
	off := infoSize
	channels := make([]SidescanDataChannel, 0, d.NumChannels)
	for i := 0; i < int(d.NumChannels); i++ {
		if err := need(body, off+channelInfoSize); err != nil {
			return SidescanData{}, err
		}
		c := body[off : off+channelInfoSize]
		ch := SidescanDataChannel{
			ChannelNumber:   le.Uint16(c[0:2]),
			SlantRangeM:     math32(le, c[4:8]),
			TimeDurationSec: math32(le, c[16:20]),
			SecondsPerPing:  math32(le, c[20:24]),
			NumSamples:      le.Uint16(c[42:44]),
			Weight:          int16(le.Uint16(c[58:60])),
		}
		off += channelInfoSize

		bps := cal[i]
		if bps == 0 {
			return SidescanData{}, errs.ErrMissingSidescanCal
		}
		sampleBytes := int(bps) * int(ch.NumSamples)
		if err := need(body, off+sampleBytes); err != nil {
			return SidescanData{}, err
		}
		raw := body[off : off+sampleBytes]
		switch bps {
		case 2:
			vals := make([]uint16, ch.NumSamples)
			for j := range vals {
				vals[j] = le.Uint16(raw[j*2 : j*2+2])
			}
			ch.SamplesU16 = vals
		case 4:
			vals := make([]float32, ch.NumSamples)
			for j := range vals {
				vals[j] = math32(le, raw[j*4:j*4+4])
			}
			ch.SamplesF32 = vals
		default:
			ch.Raw = append([]byte(nil), raw...)
		}
		off += sampleBytes
		channels = append(channels, ch)
	}
	d.Channels = channels
	return d, nil
}
