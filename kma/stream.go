package kma

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

// KMAOption configures a KMAStream at construction time.
type KMAOption = options.Option[*KMAStream]

// WithIgnoreWaterColumn skips #MWC records, KMA's water column datagram:
// their bodies are seeked past unread and Read never returns them.
func WithIgnoreWaterColumn(ignore bool) KMAOption {
	return options.NoError[*KMAStream](func(s *KMAStream) { s.ignoreWaterColumn = ignore })
}

// WithIgnoreSoundings skips #MRZ records, KMA's raw-range-and-depth
// datagram: their bodies are seeked past unread and Read never returns them.
func WithIgnoreSoundings(ignore bool) KMAOption {
	return options.NoError[*KMAStream](func(s *KMAStream) { s.ignoreSoundings = ignore })
}

// WithDebugLevel sets the verbosity of internal diagnostic logging.
func WithDebugLevel(level int) KMAOption {
	return options.NoError[*KMAStream](func(s *KMAStream) { s.debugLevel = level })
}

// KMAStream is an open KMA datagram stream. Call Read repeatedly until it
// returns io.EOF, then Close. Not safe for concurrent use.
type KMAStream struct {
	r      io.ReadSeeker
	closer io.Closer
	buf    *iobuf.FrameBuffer

	ignoreWaterColumn bool
	ignoreSoundings   bool
	debugLevel        int

	lastError error
}

// OpenKMA opens the file at path as a KMA stream.
func OpenKMA(path string, opts ...KMAOption) (*KMAStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailed, err)
	}

	s, err := NewKMAStream(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.closer = f

	return s, nil
}

// NewKMAStream wraps an already-open io.ReadSeeker as a KMA stream.
func NewKMAStream(r io.ReadSeeker, opts ...KMAOption) (*KMAStream, error) {
	s := &KMAStream{
		r:   r,
		buf: iobuf.NewFrameBuffer(iobuf.DefaultCapacity),
	}
	if err := options.Apply[*KMAStream](s, opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the stream's backing file, if OpenKMA opened one.
func (s *KMAStream) Close() error {
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
func (s *KMAStream) LastError() error { return s.lastError }

// SetIgnoreWaterColumn toggles #MWC skipping after the stream is already open.
func (s *KMAStream) SetIgnoreWaterColumn(ignore bool) { s.ignoreWaterColumn = ignore }

// SetIgnoreSoundings toggles #MRZ skipping after the stream is already open.
func (s *KMAStream) SetIgnoreSoundings(ignore bool) { s.ignoreSoundings = ignore }

// SetDebugLevel adjusts diagnostic verbosity after the stream is already open.
func (s *KMAStream) SetDebugLevel(level int) { s.debugLevel = level }

// IdentifyKMA reports whether a candidate header buffer (at least
// headerSize bytes) looks like a valid KMA datagram header, without
// consuming a stream. Used by format auto-detection alongside IdentifyEMX.
func IdentifyKMA(header []byte) bool {
	if len(header) < headerSize {
		return false
	}
	h := parseHeader(header)
	return h.validate() == nil
}

// Read frames, validates, and decodes the next datagram. It returns
// io.EOF once the stream is cleanly exhausted. #MWC/#MRZ records skipped
// via WithIgnoreWaterColumn/WithIgnoreSoundings are framed and seeked
// past transparently; the caller never observes them.
func (s *KMAStream) Read() (*KMARecord, error) {
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
		if err := hdr.validate(); err != nil {
			s.lastError = fmt.Errorf("%w: %w", errs.ErrBadData, err)
			return nil, s.lastError
		}

		bodyLen := hdr.bodySize()
		if bodyLen < trailerSize {
			s.lastError = fmt.Errorf("%w: body shorter than trailing length field", errs.ErrBadData)
			return nil, s.lastError
		}

		recType := RecordType(hdr.DgmType)

		skip := (recType == RecordTypeMWC && s.ignoreWaterColumn) ||
			(recType == RecordTypeMRZ && s.ignoreSoundings)
		if skip {
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

		if !hdr.verifyTrailer(body) {
			s.lastError = fmt.Errorf("%w: trailing length field does not match header", errs.ErrBadData)
			return nil, s.lastError
		}

		payloadBody := body[:len(body)-trailerSize]
		payload, err := decodePayload(recType, hdr.DgmVersion, payloadBody)
		if err != nil {
			s.lastError = fmt.Errorf("%w: %w", errs.ErrBadData, err)
			return nil, s.lastError
		}

		raw := append([]byte(nil), payloadBody...)
		return &KMARecord{Header: hdr, Type: recType, Raw: raw, Payload: payload}, nil
	}
}
