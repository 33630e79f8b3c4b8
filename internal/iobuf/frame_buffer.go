// Package iobuf provides the reusable frame buffer shared by a single open
// decoder stream.
//
// Each EMX or KMA stream owns exactly one FrameBuffer for its entire
// lifetime: it is allocated when the stream is constructed, grown as
// records demand more space, and discarded with the stream.
// Unlike a general-purpose byte buffer, FrameBuffer never needs to preserve
// its contents across a grow — the next Read is about to overwrite the
// whole thing — so growth is implemented as a fresh allocation rather than
// a copy.
package iobuf

// DefaultCapacity is the initial allocation size the streams use when they
// construct their buffer. Chosen to comfortably hold the common small EMX/KMA
// records (clock, position, attitude, IIP, IOP) without a grow.
const DefaultCapacity = 1024 * 8

// FrameBuffer is a growable byte buffer with an "at-least-N, grow by 1.5x"
// policy. It is not safe for concurrent use; a stream handle owns exactly
// one FrameBuffer.
type FrameBuffer struct {
	buf []byte
}

// NewFrameBuffer creates a FrameBuffer with the given initial capacity. A
// non-positive size falls back to DefaultCapacity.
func NewFrameBuffer(initialCapacity int) *FrameBuffer {
	if initialCapacity <= 0 {
		initialCapacity = DefaultCapacity
	}

	return &FrameBuffer{buf: make([]byte, 0, initialCapacity)}
}

// EnsureCapacity grows the buffer so it can hold at least required bytes.
//
// If the buffer is already large enough, EnsureCapacity is a no-op. Otherwise
// the old backing array is released (not copied — a grow always precedes a
// fresh Read that will overwrite the full buffer) and a new one of
// ceil(1.5 * required) bytes is allocated.
func (fb *FrameBuffer) EnsureCapacity(required int) {
	if required <= cap(fb.buf) {
		return
	}

	newCap := required + (required+1)/2 // ceil(1.5 * required)
	fb.buf = make([]byte, 0, newCap)
}

// SetLength sets the buffer's logical length to n, which must not exceed its
// current capacity. Callers call EnsureCapacity(n) first.
func (fb *FrameBuffer) SetLength(n int) {
	fb.buf = fb.buf[:n]
}

// Bytes returns the buffer's current contents. The returned slice is only
// valid until the next EnsureCapacity call.
func (fb *FrameBuffer) Bytes() []byte {
	return fb.buf
}

// Len returns the buffer's current logical length.
func (fb *FrameBuffer) Len() int {
	return len(fb.buf)
}

// Cap returns the buffer's current allocated capacity.
func (fb *FrameBuffer) Cap() int {
	return cap(fb.buf)
}
