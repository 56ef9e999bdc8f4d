package buffer

import (
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/gogpu/gputypes"
)

// FaceSize is the byte width of one face.
const FaceSize = 3 * 2

// Face is one triangle: three unsigned 16-bit vertex indices.
type Face [3]uint16

// FaceBuffer is a growable buffer of faces. It follows the same size and
// capacity discipline as ByteBuffer, counted in faces instead of bytes:
// capacity changes are exact-fit and faces in [Size, Capacity) have no
// guaranteed value.
//
// A FaceBuffer has a single owner and is not safe for concurrent use.
type FaceBuffer struct {
	data    []uint16 // len(data) == 3 * capacity
	size    int
	usage   Usage
	version uint64
}

// NewFaceBuffer returns an empty buffer able to hold capacity faces.
// It panics if capacity is negative, like make.
func NewFaceBuffer(capacity int) *FaceBuffer {
	if capacity < 0 {
		panic(fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, capacity))
	}
	return &FaceBuffer{data: make([]uint16, 3*capacity)}
}

// EmptyFaceBuffer returns an empty buffer with DefaultCapacity faces, or
// the given capacity when one is passed.
func EmptyFaceBuffer(capacity ...int) *FaceBuffer {
	if len(capacity) > 0 {
		return NewFaceBuffer(capacity[0])
	}
	return NewFaceBuffer(DefaultCapacity)
}

// CopyFaceBuffer returns a clone of f, or nil when f is nil.
func CopyFaceBuffer(f *FaceBuffer) *FaceBuffer {
	if f == nil {
		return nil
	}
	return f.Clone()
}

// FaceCount returns how many whole faces fit in byteLength bytes.
func FaceCount(byteLength int) int {
	if byteLength <= 0 {
		return 0
	}
	return byteLength / FaceSize
}

// Capacity returns the number of faces the backing region holds.
func (f *FaceBuffer) Capacity() int { return len(f.data) / 3 }

// Size returns the number of faces in use.
func (f *FaceBuffer) Size() int { return f.size }

// Usage returns the usage hint forwarded to the device layer.
func (f *FaceBuffer) Usage() Usage { return f.usage }

// SetUsage changes the usage hint.
func (f *FaceBuffer) SetUsage(u Usage) { f.usage = u }

// Target returns ElementArrayBuffer.
func (f *FaceBuffer) Target() Target { return ElementArrayBuffer }

// IndexFormat returns the WebGPU format of the stored indices.
func (f *FaceBuffer) IndexFormat() gputypes.IndexFormat { return gputypes.IndexFormatUint16 }

// Version returns a counter that changes whenever content or size changes.
func (f *FaceBuffer) Version() uint64 { return f.version }

// Commit marks the content as changed.
func (f *FaceBuffer) Commit() { f.version++ }

// Indices returns the indices of the faces in use, three per face.
func (f *FaceBuffer) Indices() []uint16 { return f.data[:3*f.size] }

// Bytes returns the whole backing region as bytes in native byte order.
// The slice aliases the buffer until the next reallocation.
func (f *FaceBuffer) Bytes() []byte {
	if len(f.data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(f.data))), 2*len(f.data)) //nolint:gosec // uint16 backing viewed as bytes
}

// ByteLength returns the number of bytes in use.
func (f *FaceBuffer) ByteLength() int { return FaceSize * f.size }

// SetCapacity reallocates the backing region to exactly n faces,
// truncating the size when it exceeds n.
func (f *FaceBuffer) SetCapacity(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, n)
	}
	if n == f.Capacity() {
		return nil
	}
	f.realloc(n)
	if f.size > n {
		f.size = n
	}
	f.version++
	return nil
}

// SetSize changes the number of faces in use. Growing past the capacity
// reallocates to exactly n faces; newly exposed faces are zeroed.
func (f *FaceBuffer) SetSize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidArgument, n)
	}
	f.resize(n)
	return nil
}

// Clear sets the size to 0 without reallocating or zeroing memory.
func (f *FaceBuffer) Clear() {
	f.size = 0
	f.version++
}

// Wrap makes f use data as its backing region, without copying, with size
// faces in use. The capacity becomes the number of whole faces in data.
func (f *FaceBuffer) Wrap(data []uint16, size int) error {
	capacity := len(data) / 3
	if size < 0 || size > capacity {
		return fmt.Errorf("%w: size %d for %d faces", ErrOutOfRange, size, capacity)
	}
	f.data = data[:3*capacity]
	f.size = size
	f.version++
	return nil
}

func (f *FaceBuffer) realloc(n int) {
	Logger().Debug("buffer: reallocate faces", "from", f.Capacity(), "to", n)
	data := make([]uint16, 3*n)
	copy(data, f.data)
	f.data = data
}

func (f *FaceBuffer) reserve(n int) {
	if n > f.Capacity() {
		f.realloc(n)
	}
}

func (f *FaceBuffer) resize(n int) {
	f.reserve(n)
	if n > f.size {
		clear(f.data[3*f.size : 3*n])
	}
	f.size = n
	f.version++
}

// Push appends one face and returns f.
func (f *FaceBuffer) Push(a, b, c uint16) *FaceBuffer {
	return f.PushFace(Face{a, b, c})
}

// PushFace appends faces and returns f.
func (f *FaceBuffer) PushFace(faces ...Face) *FaceBuffer {
	start := f.size
	f.reserve(start + len(faces))
	for i, face := range faces {
		copy(f.data[3*(start+i):], face[:])
	}
	f.size += len(faces)
	f.version++
	return f
}

// Set overwrites the face at index. When index is past the end, the size
// first grows to index+1 with zeroed faces in between.
func (f *FaceBuffer) Set(index int, a, b, c uint16) error {
	if index < 0 {
		return fmt.Errorf("%w: face index %d", ErrOutOfRange, index)
	}
	if index+1 > f.size {
		f.resize(index + 1)
	} else {
		f.version++
	}
	f.data[3*index] = a
	f.data[3*index+1] = b
	f.data[3*index+2] = c
	return nil
}

// Has reports whether index addresses a face in use.
func (f *FaceBuffer) Has(index int) bool {
	return index >= 0 && index < f.size
}

// Face returns the face at index. Faces in [Size, Capacity) can be read;
// indices outside the backing region panic.
func (f *FaceBuffer) Face(index int) Face {
	return Face(f.faceWindow(index))
}

// faceWindow returns the three indices of face index, panicking with
// ErrOutOfRange outside the backing region.
func (f *FaceBuffer) faceWindow(index int) []uint16 {
	if index < 0 || 3*index+3 > len(f.data) {
		panic(fmt.Errorf("%w: face %d of %d", ErrOutOfRange, index, len(f.data)/3))
	}
	return f.data[3*index : 3*index+3]
}

// FaceInto copies the face at index into out and returns it. out is
// reused when it has room for three values, so a caller iterating many
// faces can avoid allocations.
func (f *FaceBuffer) FaceInto(index int, out []uint16) []uint16 {
	if cap(out) < 3 {
		out = make([]uint16, 3)
	}
	out = out[:3]
	copy(out, f.faceWindow(index))
	return out
}

// Vertex returns the vertex-th index (0, 1 or 2) of the face at index.
func (f *FaceBuffer) Vertex(index, vertex int) uint16 {
	if vertex < 0 || vertex > 2 {
		panic(fmt.Errorf("%w: vertex %d of a face", ErrOutOfRange, vertex))
	}
	return f.faceWindow(index)[vertex]
}

// All iterates over the faces in use.
func (f *FaceBuffer) All() iter.Seq2[int, Face] {
	return func(yield func(int, Face) bool) {
		for i := range f.size {
			if !yield(i, f.Face(i)) {
				return
			}
		}
	}
}

// Delete removes count faces starting at index, shifting the following
// faces left.
func (f *FaceBuffer) Delete(index, count int) error {
	if index < 0 || count < 0 || index+count > f.size {
		return fmt.Errorf("%w: delete of %d faces at %d, size %d", ErrOutOfRange, count, index, f.size)
	}
	copy(f.data[3*index:], f.data[3*(index+count):3*f.size])
	f.size -= count
	f.version++
	return nil
}

// Concat appends the faces in use of each buffer in order, growing the
// capacity once to exactly the combined size. f may appear among others.
func (f *FaceBuffer) Concat(others ...*FaceBuffer) *FaceBuffer {
	sizes := make([]int, len(others))
	total := 0
	for i, o := range others {
		if o != nil {
			sizes[i] = o.size
			total += o.size
		}
	}
	f.reserve(f.size + total)
	for i, o := range others {
		if o == nil {
			continue
		}
		n := sizes[i]
		copy(f.data[3*f.size:3*(f.size+n)], o.data[:3*n])
		f.size += n
	}
	f.version++
	return f
}

// Copy overwrites the first faces of f with the faces in use of src.
func (f *FaceBuffer) Copy(src *FaceBuffer) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	return f.CopyRange(src, 0, src.size)
}

// CopyRange writes length faces of src starting at face start into f
// starting at face 0. The capacity grows exact-fit when needed; the size
// is never changed.
func (f *FaceBuffer) CopyRange(src *FaceBuffer, start, length int) error {
	if src == nil {
		return fmt.Errorf("%w: nil source", ErrInvalidArgument)
	}
	if start < 0 || length < 0 || start+length > src.Capacity() {
		return fmt.Errorf("%w: copy of %d faces at %d from capacity %d", ErrOutOfRange, length, start, src.Capacity())
	}
	f.reserve(length)
	copy(f.data[:3*length], src.data[3*start:3*(start+length)])
	f.version++
	return nil
}

// CopyWithin copies the faces in [start, end) to target. Negative indices
// count back from Size and all bounds are clamped to [0, Size].
func (f *FaceBuffer) CopyWithin(target, start, end int) {
	to := normalize(target, f.size)
	from := normalize(start, f.size)
	final := normalize(end, f.size)
	count := min(final-from, f.size-to)
	if count <= 0 {
		return
	}
	copy(f.data[3*to:3*(to+count)], f.data[3*from:3*(from+count)])
	f.version++
}

// Fill sets the faces in [start, end) to face, with the same index
// normalization as CopyWithin.
func (f *FaceBuffer) Fill(face Face, start, end int) {
	from := normalize(start, f.size)
	final := normalize(end, f.size)
	if from >= final {
		return
	}
	for i := from; i < final; i++ {
		copy(f.data[3*i:], face[:])
	}
	f.version++
}

// Equal reports whether o has the same size and faces in use as f.
func (f *FaceBuffer) Equal(o *FaceBuffer) bool {
	if f == o {
		return true
	}
	if f == nil || o == nil {
		return false
	}
	return f.size == o.size && slices.Equal(f.data[:3*f.size], o.data[:3*o.size])
}

// Clone returns an independent buffer with the same capacity, size, usage
// and backing content.
func (f *FaceBuffer) Clone() *FaceBuffer {
	return &FaceBuffer{data: slices.Clone(f.data), size: f.size, usage: f.usage}
}

// String returns a short description, not the content.
func (f *FaceBuffer) String() string {
	return fmt.Sprintf("FaceBuffer[size=%d capacity=%d]", f.size, f.Capacity())
}
