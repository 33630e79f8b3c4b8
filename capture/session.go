package capture

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fathomsonar/dgram/diagnostics"
)

// magic identifies a capture file. version allows the entry layout to
// change without breaking CodecID interpretation of old files.
const (
	magic   uint32 = 0x44474d43 // "DGMC"
	version uint8  = 1
)

// Entry is one captured frame: its record-type code (as the owning stream's
// RecordType/KMARecordType defines it), the raw decoded body bytes, and
// their diagnostics fingerprint.
type Entry struct {
	RecordType  byte
	Fingerprint uint64
	Body        []byte
}

// Writer appends Entry values to a capture file using a single codec for
// the whole session.
type Writer struct {
	w     *bufio.Writer
	codec Codec
	id    CodecID
}

// NewWriter writes the capture header and returns a Writer using codec id.
func NewWriter(w io.Writer, id CodecID) (*Writer, error) {
	codec, err := NewCodec(id)
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriter(w)
	var hdr [6]byte
	binary.LittleEndian.PutUint32(hdr[0:4], magic)
	hdr[4] = version
	hdr[5] = byte(id)
	if _, err := bw.Write(hdr[:]); err != nil {
		return nil, fmt.Errorf("capture: write header: %w", err)
	}

	return &Writer{w: bw, codec: codec, id: id}, nil
}

// Put compresses body and appends it as a new Entry. The fingerprint is
// computed from the uncompressed body so it matches what a live stream
// would report via diagnostics.Fingerprint.
func (w *Writer) Put(recordType byte, body []byte) error {
	compressed, err := w.codec.Compress(body)
	if err != nil {
		return fmt.Errorf("capture: compress: %w", err)
	}

	var hdr [21]byte
	hdr[0] = recordType
	binary.LittleEndian.PutUint64(hdr[1:9], diagnostics.Fingerprint(body))
	binary.LittleEndian.PutUint32(hdr[9:13], uint32(len(body)))
	binary.LittleEndian.PutUint32(hdr[13:17], uint32(len(compressed)))
	_ = hdr[17:21] // reserved

	if _, err := w.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("capture: write entry header: %w", err)
	}
	if _, err := w.w.Write(compressed); err != nil {
		return fmt.Errorf("capture: write entry body: %w", err)
	}

	return nil
}

// Flush commits buffered writes to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Reader replays a capture file written by Writer.
type Reader struct {
	r     *bufio.Reader
	codec Codec
	id    CodecID
}

// NewReader reads and validates the capture header, returning a Reader
// configured with the codec the file was written with.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	var hdr [6]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("capture: read header: %w", err)
	}
	if binary.LittleEndian.Uint32(hdr[0:4]) != magic {
		return nil, fmt.Errorf("capture: not a capture file")
	}
	if hdr[4] != version {
		return nil, fmt.Errorf("capture: unsupported capture version %d", hdr[4])
	}

	id := CodecID(hdr[5])
	codec, err := NewCodec(id)
	if err != nil {
		return nil, err
	}

	return &Reader{r: br, codec: codec, id: id}, nil
}

// Codec reports which CodecID the file was written with.
func (r *Reader) Codec() CodecID { return r.id }

// Next returns the next Entry, decompressing its body. It returns io.EOF
// once the file is exhausted.
func (r *Reader) Next() (Entry, error) {
	var hdr [21]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Entry{}, fmt.Errorf("capture: truncated entry header: %w", err)
		}
		return Entry{}, err
	}

	recordType := hdr[0]
	fingerprint := binary.LittleEndian.Uint64(hdr[1:9])
	origLen := binary.LittleEndian.Uint32(hdr[9:13])
	compLen := binary.LittleEndian.Uint32(hdr[13:17])

	compressed := make([]byte, compLen)
	if _, err := io.ReadFull(r.r, compressed); err != nil {
		return Entry{}, fmt.Errorf("capture: truncated entry body: %w", err)
	}

	body, err := r.codec.Decompress(compressed)
	if err != nil {
		return Entry{}, fmt.Errorf("capture: decompress: %w", err)
	}
	if body == nil {
		body = []byte{}
	}
	if uint32(len(body)) != origLen {
		return Entry{}, fmt.Errorf("capture: decompressed length %d does not match recorded length %d", len(body), origLen)
	}

	return Entry{RecordType: recordType, Fingerprint: fingerprint, Body: body}, nil
}
