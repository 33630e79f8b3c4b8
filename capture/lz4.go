package capture

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; they carry an internal
// hash table that is wasteful to allocate per frame.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec favors fast replay over capture-file size, the right trade-off
// for a capture taken on a field laptop and replayed on the same machine.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// lz4 signals an incompressible block by writing nothing; store raw.
		return append([]byte{0}, data...), nil
	}

	return append([]byte{1}, dst[:n]...), nil
}

// Decompress adaptively grows its output buffer since it is handed only the
// compressed bytes, not the original size.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	raw, payload := data[0], data[1:]
	if raw == 0 {
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	}

	bufSize := len(payload) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		dst := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}
			return nil, err
		}
		return dst[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
