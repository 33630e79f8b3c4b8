package iobuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFrameBufferDefaultsOnNonPositiveSize(t *testing.T) {
	fb := NewFrameBuffer(0)
	require.Equal(t, DefaultCapacity, fb.Cap())

	fb = NewFrameBuffer(-5)
	require.Equal(t, DefaultCapacity, fb.Cap())
}

func TestEnsureCapacityNoopWhenAlreadyLargeEnough(t *testing.T) {
	fb := NewFrameBuffer(1024)
	before := fb.Cap()

	fb.EnsureCapacity(100)

	require.Equal(t, before, fb.Cap())
}

func TestEnsureCapacityGrowsByOnePointFive(t *testing.T) {
	fb := NewFrameBuffer(16)

	fb.EnsureCapacity(100)

	require.Equal(t, 150, fb.Cap()) // ceil(1.5 * 100)
}

func TestEnsureCapacityDiscardsOldContents(t *testing.T) {
	fb := NewFrameBuffer(16)
	fb.EnsureCapacity(8)
	fb.SetLength(8)
	copy(fb.Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8})

	fb.EnsureCapacity(1000)
	fb.SetLength(8)

	require.NotEqual(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, fb.Bytes())
}

func TestSetLengthAndBytes(t *testing.T) {
	fb := NewFrameBuffer(32)
	fb.EnsureCapacity(20)
	fb.SetLength(20)
	require.Len(t, fb.Bytes(), 20)
	require.Equal(t, 20, fb.Len())
}
