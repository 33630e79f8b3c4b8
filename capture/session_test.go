package capture

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	for _, id := range []CodecID{CodecNone, CodecLZ4, CodecS2, CodecZstd} {
		t.Run(id.String(), func(t *testing.T) {
			var buf bytes.Buffer

			w, err := NewWriter(&buf, id)
			require.NoError(t, err)

			frames := [][]byte{
				[]byte("clock datagram body"),
				bytes.Repeat([]byte{0xAB, 0xCD}, 200),
				[]byte{},
			}
			for i, body := range frames {
				require.NoError(t, w.Put(byte(i+1), body))
			}
			require.NoError(t, w.Flush())

			r, err := NewReader(&buf)
			require.NoError(t, err)
			require.Equal(t, id, r.Codec())

			for i, body := range frames {
				entry, err := r.Next()
				require.NoError(t, err)
				require.Equal(t, byte(i+1), entry.RecordType)
				require.Equal(t, body, entry.Body)
			}

			_, err = r.Next()
			require.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestReaderRejectsBadMagic(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0, 0, 0, 0, 1, 0}))
	require.Error(t, err)
}

func TestReaderRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, CodecNone)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	raw := buf.Bytes()
	raw[4] = 0xFF

	_, err = NewReader(bytes.NewReader(raw))
	require.Error(t, err)
}
