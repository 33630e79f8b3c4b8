// Package kma decodes Kongsberg KMALL ("KMA") multibeam datagram streams.
//
// Unlike emx, KMA is always little-endian and self-delimiting: every
// datagram carries its own length at both the front and the back, so there
// is no byte-order auto-detection step and no checksum trailer to verify.
package kma

import (
	"encoding/binary"

	"github.com/fathomsonar/dgram/errs"
)

const (
	headerSize   = 20
	trailerSize  = 4
	hashMark     = '#'
	minDatagram  = headerSize + trailerSize // header + trailing length duplicate
	maxDatagram  = 1 << 30
	maxTimeNanos = 1_000_000_000
)

// Header is the 20-byte datagram header common to every KMA record.
type Header struct {
	NumBytesDgm   uint32 // total datagram length, including this field and the trailing duplicate
	DgmType       uint32 // 4-byte ASCII tag packed little-endian, e.g. '#MRZ'
	DgmVersion    uint8
	SystemID      uint8
	EchoSounderID uint16
	TimeSec       uint32
	TimeNanosec   uint32
}

func parseHeader(b []byte) Header {
	return Header{
		NumBytesDgm:   binary.LittleEndian.Uint32(b[0:4]),
		DgmType:       binary.LittleEndian.Uint32(b[4:8]),
		DgmVersion:    b[8],
		SystemID:      b[9],
		EchoSounderID: binary.LittleEndian.Uint16(b[10:12]),
		TimeSec:       binary.LittleEndian.Uint32(b[12:16]),
		TimeNanosec:   binary.LittleEndian.Uint32(b[16:20]),
	}
}

// validate implements §4.8 step 2: size bounds, the '#' sentinel as the
// first wire byte of dgmType, and a sane nanosecond remainder.
func (h Header) validate() error {
	if h.NumBytesDgm < minDatagram {
		return errs.ErrHeaderTooSmall
	}
	if h.NumBytesDgm > maxDatagram {
		return errs.ErrHeaderTooLarge
	}
	if byte(h.DgmType) != hashMark {
		return errs.ErrInvalidStartByte
	}
	if h.TimeNanosec >= maxTimeNanos {
		return errs.ErrInvalidTimeOfDay
	}
	return nil
}

// bodySize returns the number of bytes following the header, including the
// trailing duplicate length field.
func (h Header) bodySize() int {
	return int(h.NumBytesDgm) - headerSize
}

// verifyTrailer checks that the last 4 bytes of body equal NumBytesDgm, the
// self-delimiting framing invariant KMA relies on in place of a checksum.
func (h Header) verifyTrailer(body []byte) bool {
	if len(body) < trailerSize {
		return false
	}
	trailer := binary.LittleEndian.Uint32(body[len(body)-trailerSize:])
	return trailer == h.NumBytesDgm
}
