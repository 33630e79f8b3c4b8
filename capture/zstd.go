package capture

// ZstdCodec gives the best compression ratio of the four, at the cost of
// being the slowest to both write and replay. Appropriate for captures that
// will sit in a bug tracker rather than be replayed interactively.
//
// Its Compress/Decompress methods live in zstd_pure.go (klauspost/compress,
// pure Go, used by default) or zstd_cgo.go (valyala/gozstd, disabled by a
// permanently-off build tag unless flipped locally).
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
