// Package emx decodes the legacy Kongsberg EM-series multibeam datagram
// stream: STX-delimited, length-prefixed records whose byte order is not
// carried in-band and must be inferred from the first header read.
package emx

import (
	"encoding/binary"

	"github.com/fathomsonar/dgram/endian"
	"github.com/fathomsonar/dgram/errs"
)

const (
	headerSize    = 20
	startByte     = 0x02
	endByte       = 0x03
	minDatagram   = 16
	maxDatagram   = 1 << 27
	palindrome1   = 20001025
	palindrome2   = 20790529
)

// Header is the fixed 20-byte EMX datagram header, decoded in native
// (post-swap, if applicable) byte order.
type Header struct {
	BytesInDatagram uint32
	StartIdentifier  uint8
	DatagramType     uint8
	EMModelNumber    uint16
	Date             uint32
	TimeMS           uint32
	Counter          uint16
	SerialNumber     uint16
}

// parseHeader reads Header fields from a 20-byte buffer without swapping;
// callers decide whether to swap based on the stream's detected endianness.
func parseHeader(b []byte) Header {
	return Header{
		BytesInDatagram: binary.LittleEndian.Uint32(b[0:4]),
		StartIdentifier: b[4],
		DatagramType:    b[5],
		EMModelNumber:   binary.LittleEndian.Uint16(b[6:8]),
		Date:            binary.LittleEndian.Uint32(b[8:12]),
		TimeMS:          binary.LittleEndian.Uint32(b[12:16]),
		Counter:         binary.LittleEndian.Uint16(b[16:18]),
		SerialNumber:    binary.LittleEndian.Uint16(b[18:20]),
	}
}

func (h *Header) swap() {
	h.BytesInDatagram = endian.Swap32(h.BytesInDatagram)
	h.EMModelNumber = endian.Swap16(h.EMModelNumber)
	h.Date = endian.Swap32(h.Date)
	h.TimeMS = endian.Swap32(h.TimeMS)
	h.Counter = endian.Swap16(h.Counter)
	h.SerialNumber = endian.Swap16(h.SerialNumber)
}

// bodySize returns the number of bytes that follow the 20-byte header:
// bytes_in_datagram counts everything after its own 4-byte field, and this
// decoder's 20-byte header read already consumed 16 of those bytes (start
// through serial_number), so the body is bytes_in_datagram + 4 - 20 bytes,
// ending with the ETX byte and the 16-bit checksum.
func (h Header) bodySize() int {
	return int(h.BytesInDatagram) + 4 - headerSize
}

// isValidDate reports whether date decodes to year*10000+month*100+day in
// a plausible Gregorian range. Mirrors the source's generous year bound
// (1970-2100) and per-month day counts, including leap years.
func isValidDate(date uint32) bool {
	if date < 19700000 || date > 21001231 {
		return false
	}
	year := date / 10000
	month := (date / 100) % 100
	day := date % 100
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth(year, month)
}

func daysInMonth(year, month uint32) uint32 {
	days := [...]uint32{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return days[month-1]
}

func isLeapYear(year uint32) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// knownModel reports whether number is a documented EM/HISAS model code.
func knownModel(number uint16) bool {
	switch number {
	case 120, 121, 122, 124, 300, 302, 710, 712, 850, 1002, 2000, 2040, 2045,
		3000, 3002, 3003, 3004, 3005, 3006, 3007, 3008, 3020,
		11032, 11034, 12040:
		return true
	default:
		return false
	}
}

// detectByteOrder implements §4.4 step 2: a two-way validity test on the
// date field, falling back to the model-number field when the date is
// zero or one of the two dates that are palindromic under byte-swapping.
// Returns swapped=true if the header needs swapping, or an error if
// neither orientation is valid.
func detectByteOrder(h Header) (swapped bool, err error) {
	if h.Date != 0 && h.Date != palindrome1 && h.Date != palindrome2 {
		if isValidDate(h.Date) {
			return false, nil
		}
		if isValidDate(endian.Swap32(h.Date)) {
			return true, nil
		}
		return false, errs.ErrUnknownEndianness
	}

	if knownModel(h.EMModelNumber) {
		return false, nil
	}
	if knownModel(endian.Swap16(h.EMModelNumber)) {
		return true, nil
	}
	return false, errs.ErrUnknownEndianness
}

// validate checks the header invariants from §3 (I1, I2, I3, I4, I5) that
// do not depend on the record type. The "0x74" directory record is exempt
// from the time/date checks, matching the source's special-case for an
// undocumented, occasionally malformed record type.
func (h Header) validate() error {
	if h.StartIdentifier != startByte {
		return errs.ErrInvalidStartByte
	}
	if h.BytesInDatagram < minDatagram {
		return errs.ErrHeaderTooSmall
	}
	if h.BytesInDatagram > maxDatagram {
		return errs.ErrHeaderTooLarge
	}
	if RecordType(h.DatagramType) == RecordTypeDirectory {
		return nil
	}
	if h.TimeMS > 86_399_999 {
		return errs.ErrInvalidTimeOfDay
	}
	if h.Date != 0 && !isValidDate(h.Date) {
		return errs.ErrInvalidDate
	}
	return nil
}
