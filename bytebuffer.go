package buffer

import (
	"bytes"
	"fmt"
)

// DefaultCapacity is the capacity used by constructors when callers have no
// better estimate. It counts bytes for ByteBuffer, faces for FaceBuffer and
// records for RecordBuffer.
const DefaultCapacity = 16

// ByteBuffer is a growable binary buffer with separate size and capacity.
//
// Bytes in [0, Size) are the content. Bytes in [Size, Capacity) are backing
// memory with no guaranteed value; shrinking the size leaves previously
// written bytes there.
//
// Growth is exact-fit: whenever an operation needs more room than the
// current capacity, the backing region is reallocated to exactly the
// required length. Pushing one value at a time past capacity therefore
// reallocates on every push; callers that know the final size should set
// the capacity first.
//
// A ByteBuffer has a single owner and is not safe for concurrent use.
type ByteBuffer struct {
	data    []byte // len(data) is the capacity
	size    int
	version uint64
}

// NewByteBuffer returns an empty buffer with the given capacity in bytes.
// It panics if capacity is negative, like make.
func NewByteBuffer(capacity int) *ByteBuffer {
	if capacity < 0 {
		panic(fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, capacity))
	}
	return &ByteBuffer{data: make([]byte, capacity)}
}

// Capacity returns the length of the backing region in bytes.
func (b *ByteBuffer) Capacity() int { return len(b.data) }

// Size returns the number of bytes in use.
func (b *ByteBuffer) Size() int { return b.size }

// Version returns a counter that changes whenever content or size changes.
func (b *ByteBuffer) Version() uint64 { return b.version }

// Commit marks the content as changed. Call it after writing through the
// slice returned by Bytes.
func (b *ByteBuffer) Commit() { b.version++ }

// Bytes returns the whole backing region, Capacity bytes long. The slice
// aliases the buffer until the next reallocation.
func (b *ByteBuffer) Bytes() []byte { return b.data }

// Data returns the bytes in use, [0, Size).
func (b *ByteBuffer) Data() []byte { return b.data[:b.size] }

// ByteLength returns Size. It lets ByteBuffer stand in for the byte view
// of a Descriptor.
func (b *ByteBuffer) ByteLength() int { return b.size }

// SetCapacity reallocates the backing region to exactly n bytes. Content
// beyond n is dropped and the size is truncated to n. Setting the current
// capacity keeps the backing region.
func (b *ByteBuffer) SetCapacity(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, n)
	}
	if n == len(b.data) {
		return nil
	}
	b.realloc(n)
	if b.size > n {
		b.size = n
	}
	b.version++
	return nil
}

// SetSize changes the number of bytes in use. Growing past the capacity
// reallocates to exactly n bytes; newly exposed bytes are zeroed.
// Shrinking neither reallocates nor clears memory.
func (b *ByteBuffer) SetSize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidArgument, n)
	}
	b.resize(n)
	return nil
}

// Clear sets the size to 0 without reallocating or zeroing memory.
func (b *ByteBuffer) Clear() {
	b.size = 0
	b.version++
}

// realloc replaces the backing region with one of exactly n bytes,
// preserving the leading min(n, Capacity) bytes.
func (b *ByteBuffer) realloc(n int) {
	Logger().Debug("buffer: reallocate", "from", len(b.data), "to", n)
	data := make([]byte, n)
	copy(data, b.data)
	b.data = data
}

// reserve grows the capacity to exactly n if it is smaller.
func (b *ByteBuffer) reserve(n int) {
	if n > len(b.data) {
		b.realloc(n)
	}
}

// resize sets the size to n >= 0, zeroing newly exposed bytes.
func (b *ByteBuffer) resize(n int) {
	b.reserve(n)
	if n > b.size {
		clear(b.data[b.size:n])
	}
	b.size = n
	b.version++
}

// extend appends n bytes to the content and returns them for writing.
// The returned bytes may hold stale data.
func (b *ByteBuffer) extend(n int) []byte {
	end := b.size + n
	b.reserve(end)
	w := b.data[b.size:end]
	b.size = end
	b.version++
	return w
}

// window returns the n bytes at offset for reading. It panics if the
// window leaves the backing region.
func (b *ByteBuffer) window(offset, n int) []byte {
	if offset < 0 || offset+n > len(b.data) {
		panic(fmt.Errorf("%w: read of %d bytes at offset %d, capacity %d", ErrOutOfRange, n, offset, len(b.data)))
	}
	return b.data[offset : offset+n]
}

// writable returns the n bytes at offset for writing, growing the size
// exact-fit when the window ends past it.
func (b *ByteBuffer) writable(offset, n int) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: write at negative offset %d", ErrOutOfRange, offset)
	}
	end := offset + n
	if end > b.size {
		b.resize(end)
	} else {
		b.version++
	}
	return b.data[offset:end], nil
}

// DeleteRange removes the n bytes at offset, shifting all following bytes
// left by n and shrinking the size by n.
func (b *ByteBuffer) DeleteRange(offset, n int) error {
	if offset < 0 || n < 0 || offset+n > b.size {
		return fmt.Errorf("%w: delete of %d bytes at offset %d, size %d", ErrOutOfRange, n, offset, b.size)
	}
	copy(b.data[offset:], b.data[offset+n:b.size])
	b.size -= n
	b.version++
	return nil
}

// Delete removes one value of type t at offset. See DeleteRange.
func (b *ByteBuffer) Delete(offset int, t Type) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: type %s", ErrInvalidArgument, t)
	}
	return b.DeleteRange(offset, t.Size())
}

// Copy overwrites the start of b with the content of src.
// See CopyRange.
func (b *ByteBuffer) Copy(src *ByteBuffer) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	return b.CopyRange(src, 0, src.size)
}

// CopyRange writes the length bytes of src starting at start into b
// starting at byte 0. The capacity grows exact-fit when length exceeds it;
// the size is never changed.
func (b *ByteBuffer) CopyRange(src *ByteBuffer, start, length int) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	if start < 0 || length < 0 || start+length > len(src.data) {
		return fmt.Errorf("%w: copy of %d bytes at %d from capacity %d", ErrOutOfRange, length, start, len(src.data))
	}
	// realloc preserves existing bytes, so src may be b itself.
	b.reserve(length)
	copy(b.data[:length], src.data[start:start+length])
	b.version++
	return nil
}

// Concat appends the content of each buffer in order. The capacity grows
// once, exactly to the combined size. b may appear among others; it
// contributes its content as it was before the call.
func (b *ByteBuffer) Concat(others ...*ByteBuffer) *ByteBuffer {
	sizes := make([]int, len(others))
	total := 0
	for i, o := range others {
		if o != nil {
			sizes[i] = o.size
			total += o.size
		}
	}
	b.reserve(b.size + total)
	for i, o := range others {
		if o == nil {
			continue
		}
		n := sizes[i]
		copy(b.data[b.size:b.size+n], o.data[:n])
		b.size += n
	}
	b.version++
	return b
}

// CopyWithin copies the bytes in [start, end) to target, all within the
// content. Negative indices count back from Size; all three are clamped to
// [0, Size]. Size and capacity are unchanged.
func (b *ByteBuffer) CopyWithin(target, start, end int) {
	to := normalize(target, b.size)
	from := normalize(start, b.size)
	final := normalize(end, b.size)
	count := min(final-from, b.size-to)
	if count <= 0 {
		return
	}
	copy(b.data[to:to+count], b.data[from:from+count])
	b.version++
}

// Fill sets the bytes in [start, end) to value, with the same index
// normalization as CopyWithin.
func (b *ByteBuffer) Fill(value byte, start, end int) {
	from := normalize(start, b.size)
	final := normalize(end, b.size)
	if from >= final {
		return
	}
	w := b.data[from:final]
	for i := range w {
		w[i] = value
	}
	b.version++
}

// Equal reports whether o has the same size and the same content as b.
// Capacity and bytes beyond the size are ignored.
func (b *ByteBuffer) Equal(o *ByteBuffer) bool {
	if b == o {
		return true
	}
	if b == nil || o == nil {
		return false
	}
	return b.size == o.size && bytes.Equal(b.data[:b.size], o.data[:o.size])
}

// Clone returns an independent buffer with the same capacity, size and
// backing content.
func (b *ByteBuffer) Clone() *ByteBuffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &ByteBuffer{data: data, size: b.size}
}

// String returns a short description, not the content.
func (b *ByteBuffer) String() string {
	return fmt.Sprintf("ByteBuffer[size=%d capacity=%d]", b.size, len(b.data))
}
