package emx

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fathomsonar/dgram/errs"
	"github.com/fathomsonar/dgram/internal/bio"
	"github.com/fathomsonar/dgram/internal/iobuf"
	"github.com/fathomsonar/dgram/internal/options"
)

// EMXOption configures an EMXStream at construction time.
type EMXOption = options.Option[*EMXStream]

// WithIgnoreWaterColumn skips water column records, which are by far the
// largest EMX record type: their bodies are seeked past unread and Read
// never returns them.
func WithIgnoreWaterColumn(ignore bool) EMXOption {
	return options.NoError[*EMXStream](func(s *EMXStream) { s.ignoreWaterColumn = ignore })
}

// WithIgnoreChecksum causes a checksum-mismatched record to be returned to
// the caller instead of silently discarded and re-read.
func WithIgnoreChecksum(ignore bool) EMXOption {
	return options.NoError[*EMXStream](func(s *EMXStream) { s.ignoreChecksum = ignore })
}

// WithDebugLevel sets the verbosity of internal diagnostic logging.
func WithDebugLevel(level int) EMXOption {
	return options.NoError[*EMXStream](func(s *EMXStream) { s.debugLevel = level })
}

// EMXStream is an open EMX datagram stream. Call Read repeatedly until it
// returns io.EOF, then Close. Not safe for concurrent use.
type EMXStream struct {
	r      io.ReadSeeker
	closer io.Closer
	buf    *iobuf.FrameBuffer

	swapDetermined bool
	swapped        bool

	ignoreWaterColumn bool
	ignoreChecksum    bool
	debugLevel        int

	// sidescanBytesPerSample caches each HISAS channel's sample width, set by
	// the most recent sidescan-status record and consumed by the sidescan
	// sample record that follows it (emx_reader.c hisas_bytes_per_sample).
	sidescanBytesPerSample [6]uint16

	lastError error
}

// OpenEMX opens the file at path as an EMX stream.
func OpenEMX(path string, opts ...EMXOption) (*EMXStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailed, err)
	}

	s, err := NewEMXStream(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.closer = f

	return s, nil
}

// NewEMXStream wraps an already-open io.ReadSeeker as an EMX stream. Used
// directly by tests and by callers reading from an in-memory buffer.
func NewEMXStream(r io.ReadSeeker, opts ...EMXOption) (*EMXStream, error) {
	s := &EMXStream{
		r:   r,
		buf: iobuf.NewFrameBuffer(iobuf.DefaultCapacity),
	}
	if err := options.Apply[*EMXStream](s, opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the stream's backing file, if OpenEMX opened one.
func (s *EMXStream) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		s.lastError = fmt.Errorf("%w: %w", errs.ErrCloseFailed, err)
		return s.lastError
	}
	return nil
}

// LastError returns the most recent non-EOF error encountered by Read.
func (s *EMXStream) LastError() error {
	return s.lastError
}

// SetIgnoreWaterColumn toggles water-column skipping after the stream is
// already open.
func (s *EMXStream) SetIgnoreWaterColumn(ignore bool) { s.ignoreWaterColumn = ignore }

// SetIgnoreChecksum toggles checksum-failure tolerance after the stream is
// already open.
func (s *EMXStream) SetIgnoreChecksum(ignore bool) { s.ignoreChecksum = ignore }

// SetDebugLevel adjusts diagnostic verbosity after the stream is already
// open.
func (s *EMXStream) SetDebugLevel(level int) { s.debugLevel = level }

// IdentifyEMX reports whether a candidate header buffer (at least
// headerSize bytes) looks like a valid EMX datagram header in either byte
// order, without consuming a stream. Used by format auto-detection to
// choose between an EMX and KMA decoder for an unknown file.
func IdentifyEMX(header []byte) bool {
	if len(header) < headerSize {
		return false
	}
	h := parseHeader(header)
	if h.StartIdentifier != startByte {
		return false
	}
	_, err := detectByteOrder(h)
	return err == nil
}

// Read frames, validates, and decodes the next datagram. It returns io.EOF
// once the stream is cleanly exhausted. A checksum-failed record is
// discarded and the next one is read transparently, unless
// WithIgnoreChecksum(true) is set, in which case it is returned like any
// other record; the returned record carries no mark of the mismatch (Raw
// excludes the ETX byte and the checksum).
func (s *EMXStream) Read() (*EMXRecord, error) {
	for {
		var headerBytes [headerSize]byte
		if err := bio.ReadExact(s.r, headerBytes[:]); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				s.lastError = fmt.Errorf("%w: truncated header: %w", errs.ErrBadData, err)
				return nil, s.lastError
			}
			s.lastError = fmt.Errorf("%w: %w", errs.ErrReadFailed, err)
			return nil, s.lastError
		}

		hdr := parseHeader(headerBytes[:])

		if !s.swapDetermined {
			swapped, err := detectByteOrder(hdr)
			if err != nil {
				s.lastError = fmt.Errorf("%w: %w", errs.ErrBadData, err)
				return nil, s.lastError
			}
			s.swapped = swapped
			s.swapDetermined = true
		}

		if s.swapped {
			hdr.swap()
		}

		if err := hdr.validate(); err != nil {
			s.lastError = fmt.Errorf("%w: %w", errs.ErrBadData, err)
			return nil, s.lastError
		}

		bodyLen := hdr.bodySize()
		if bodyLen < 0 {
			s.lastError = fmt.Errorf("%w: negative body length", errs.ErrBadData)
			return nil, s.lastError
		}

		recType := RecordType(hdr.DatagramType)

		if recType == RecordTypeWaterColumn && s.ignoreWaterColumn {
			if err := bio.SeekForward(s.r, int64(bodyLen)); err != nil {
				s.lastError = fmt.Errorf("%w: %w", errs.ErrSeekFailed, err)
				return nil, s.lastError
			}
			continue
		}

		s.buf.EnsureCapacity(bodyLen)
		s.buf.SetLength(bodyLen)
		body := s.buf.Bytes()
		if err := bio.ReadExact(s.r, body); err != nil {
			s.lastError = fmt.Errorf("%w: %w", errs.ErrBadData, err)
			return nil, s.lastError
		}

		if s.swapped {
			swapBody(recType, body)
		}

		ok := recType == RecordTypeDirectory || verifyChecksum(hdr, headerBytes, body, s.swapped)
		if !ok && !s.ignoreChecksum {
			continue
		}

		payloadEnd := len(body)
		if payloadEnd >= 3 {
			payloadEnd -= 3 // drop the trailing [ETX, checksum lo, checksum hi]
		}
		payload, err := decodePayload(recType, body[:payloadEnd], &s.sidescanBytesPerSample)
		if err != nil {
			s.lastError = fmt.Errorf("%w: %w", errs.ErrBadData, err)
			return nil, s.lastError
		}

		raw := append([]byte(nil), body[:payloadEnd]...)
		return &EMXRecord{Header: hdr, Type: recType, Raw: raw, Payload: payload}, nil
	}
}
