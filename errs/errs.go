// Package errs defines the sentinel errors shared by the emx and kma
// decoders. Call sites wrap these with fmt.Errorf("...: %w", sentinel) so
// callers can test with errors.Is instead of matching a closed error-code
// enum.
package errs

import "errors"

// Top-level kinds, one per closed error kind described by the decoders'
// error handling design.
var (
	// ErrOpenFailed is returned when a stream's backing file could not be opened.
	ErrOpenFailed = errors.New("dgram: open failed")
	// ErrReadFailed is returned on an I/O-level read failure distinct from EOF.
	ErrReadFailed = errors.New("dgram: read failed")
	// ErrCloseFailed is returned when closing a stream's backing file failed.
	ErrCloseFailed = errors.New("dgram: close failed")
	// ErrSeekFailed is returned when a forward seek used to skip a filtered body failed.
	ErrSeekFailed = errors.New("dgram: seek failed")
	// ErrBadData is returned when a header or body fails a structural invariant.
	ErrBadData = errors.New("dgram: bad data")
	// ErrOutOfMemory names a frame buffer that could not be grown. The frame
	// buffer grows with a plain make and does not convert an allocation
	// failure into this error, so no code path in this module returns it.
	ErrOutOfMemory = errors.New("dgram: out of memory")
	// ErrUnsupported names a record that requests a feature the decoder does
	// not implement. No code path in this module returns it.
	ErrUnsupported = errors.New("dgram: unsupported")
	// ErrShortRead names a bounded read that returned strictly fewer bytes
	// than requested but more than zero. bio.ReadExact reports that case as
	// io.ErrUnexpectedEOF rather than as ErrShortRead, and the streams wrap
	// it as ErrBadData.
	ErrShortRead = errors.New("dgram: short read")
)

// Narrower sentinels for specific invariant violations, wrapped under
// ErrBadData at call sites (fmt.Errorf("%w: %w", ErrBadData, ErrInvalidStartByte)
// style callers can match either the broad or the narrow sentinel).
var (
	ErrHeaderTooSmall     = errors.New("dgram: header shorter than minimum size")
	ErrHeaderTooLarge     = errors.New("dgram: header length exceeds sanity ceiling")
	ErrInvalidStartByte   = errors.New("dgram: invalid start byte")
	ErrInvalidTimeOfDay   = errors.New("dgram: time-of-day field out of range")
	ErrInvalidDate        = errors.New("dgram: date field is not a valid Gregorian date")
	ErrUnknownEndianness  = errors.New("dgram: could not determine stream byte order")
	ErrChecksumMismatch   = errors.New("dgram: checksum mismatch")
	ErrTooManySectors     = errors.New("dgram: transmit sector count exceeds limit")
	ErrTooManyChannels    = errors.New("dgram: sonar channel count exceeds limit")
	ErrPartitionNotSingle = errors.New("dgram: multi-part partition not supported")
	ErrRegionOverflow     = errors.New("dgram: record layout overruns body length")
	ErrMissingSidescanCal = errors.New("dgram: sidescan sample width not established by a prior status record")
)
