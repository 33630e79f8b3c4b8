package capture

// NoOpCodec stores frame bodies uncompressed. Useful when a capture is
// about to be fed straight back into a diff tool and recompression would
// only cost time.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func (NoOpCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
