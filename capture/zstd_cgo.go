//go:build nobuild

package capture

import "github.com/valyala/gozstd"

// Kept behind a permanently-off build tag, same as upstream: gozstd's
// cgo binding to libzstd outperforms the pure-Go decoder on large
// captures, but pulling in a C toolchain dependency by default is not
// worth it for a debugging tool. Flip the tag to enable it locally.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return gozstd.Decompress(nil, data)
}
