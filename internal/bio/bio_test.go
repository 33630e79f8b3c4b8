package bio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadExactSuccess(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3, 4})
	dst := make([]byte, 4)

	err := ReadExact(r, dst)

	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, dst)
}

func TestReadExactCleanEOF(t *testing.T) {
	r := bytes.NewReader(nil)
	dst := make([]byte, 4)

	err := ReadExact(r, dst)

	require.ErrorIs(t, err, io.EOF)
}

func TestReadExactTruncated(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2})
	dst := make([]byte, 4)

	err := ReadExact(r, dst)

	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}

func TestSeekForward(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3, 4, 5})

	err := SeekForward(r, 3)
	require.NoError(t, err)

	rest := make([]byte, 2)
	_, err = io.ReadFull(r, rest)
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5}, rest)
}
