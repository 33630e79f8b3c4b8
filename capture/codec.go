// Package capture implements an opt-in session-capture/replay format: a way
// to snapshot every frame a stream yields into a single file for offline bug
// reports, and to replay that file without re-opening the original source.
//
// A capture file is a sequence of entries, each holding one frame's raw
// body bytes (compressed), its record-type code, and its diagnostics
// fingerprint. It has nothing to do with decoding the wire formats
// themselves; a capture is built from records a stream has already parsed.
package capture

import "fmt"

// CodecID identifies one of the four supported compression algorithms for
// a capture file's frame bodies.
type CodecID byte

const (
	CodecNone CodecID = iota
	CodecLZ4
	CodecS2
	CodecZstd
)

func (c CodecID) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecS2:
		return "s2"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", byte(c))
	}
}

// Compressor compresses a frame body before it is written to a capture file.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor for a capture file being replayed.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Every capture entry is written and read
// with the same codec, selected once per session.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the built-in Codec for id.
func NewCodec(id CodecID) (Codec, error) {
	switch id {
	case CodecNone:
		return NoOpCodec{}, nil
	case CodecLZ4:
		return LZ4Codec{}, nil
	case CodecS2:
		return S2Codec{}, nil
	case CodecZstd:
		return ZstdCodec{}, nil
	default:
		return nil, fmt.Errorf("capture: unsupported codec id %d", byte(id))
	}
}
