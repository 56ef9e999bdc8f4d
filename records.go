package buffer

import (
	"fmt"

	"golang.org/x/image/math/f32"
)

// RecordBuffer stores records described by a Layout in a ByteBuffer. It
// translates record indices and field names into byte offsets,
//
//	offset = record*stride + field.Offset
//
// and delegates storage, growth and shifting to the ByteBuffer. Capacity
// and size are counted in records; the byte capacity is always a multiple
// of the stride.
//
// A RecordBuffer has a single owner and is not safe for concurrent use.
type RecordBuffer struct {
	layout *Layout
	bytes  *ByteBuffer
	usage  Usage
}

// NewRecordBuffer returns an empty record buffer for layout. By default it
// holds DefaultCapacity records with the StaticDraw usage hint.
func NewRecordBuffer(layout *Layout, opts ...RecordOption) *RecordBuffer {
	if layout == nil {
		panic(fmt.Errorf("%w: nil layout", ErrInvalidArgument))
	}
	o := defaultRecordOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RecordBuffer{
		layout: layout,
		bytes:  NewByteBuffer(layout.Size() * o.capacity),
		usage:  o.usage,
	}
}

// Layout returns the shared record layout.
func (r *RecordBuffer) Layout() *Layout { return r.layout }

// Stride returns the byte width of one record.
func (r *RecordBuffer) Stride() int { return r.layout.size }

// ByteBuffer returns the underlying byte storage. Writes through it must
// keep the size a multiple of the stride.
func (r *RecordBuffer) ByteBuffer() *ByteBuffer { return r.bytes }

// Capacity returns the number of records the backing region holds.
func (r *RecordBuffer) Capacity() int { return r.bytes.Capacity() / r.layout.size }

// Size returns the number of records in use.
func (r *RecordBuffer) Size() int { return r.bytes.Size() / r.layout.size }

// Usage returns the usage hint forwarded to the device layer.
func (r *RecordBuffer) Usage() Usage { return r.usage }

// SetUsage changes the usage hint.
func (r *RecordBuffer) SetUsage(u Usage) { r.usage = u }

// Target returns ArrayBuffer.
func (r *RecordBuffer) Target() Target { return ArrayBuffer }

// Bytes returns the whole backing region.
func (r *RecordBuffer) Bytes() []byte { return r.bytes.Bytes() }

// ByteLength returns the number of bytes in use.
func (r *RecordBuffer) ByteLength() int { return r.bytes.Size() }

// Version returns a counter that changes whenever content or size changes.
func (r *RecordBuffer) Version() uint64 { return r.bytes.Version() }

// Commit marks the content as changed.
func (r *RecordBuffer) Commit() { r.bytes.Commit() }

// SetCapacity reallocates storage to exactly n records.
func (r *RecordBuffer) SetCapacity(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, n)
	}
	return r.bytes.SetCapacity(n * r.layout.size)
}

// SetSize changes the number of records in use; new records are zeroed.
func (r *RecordBuffer) SetSize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidArgument, n)
	}
	return r.bytes.SetSize(n * r.layout.size)
}

// Clear sets the size to 0 without releasing memory.
func (r *RecordBuffer) Clear() { r.bytes.Clear() }

// Push appends one zeroed record and returns its index.
func (r *RecordBuffer) Push() int {
	i := r.Size()
	r.bytes.resize((i + 1) * r.layout.size)
	return i
}

// Delete removes count records starting at index.
func (r *RecordBuffer) Delete(index, count int) error {
	if index < 0 || count < 0 || index+count > r.Size() {
		return fmt.Errorf("%w: delete of %d records at %d, size %d", ErrOutOfRange, count, index, r.Size())
	}
	return r.bytes.DeleteRange(index*r.layout.size, count*r.layout.size)
}

// Offset returns the byte offset of the named field of a record.
func (r *RecordBuffer) Offset(record int, name string) (int, error) {
	f, err := r.layout.Get(name)
	if err != nil {
		return 0, err
	}
	return record*r.layout.size + f.Offset, nil
}

// writeField resolves a field for writing, growing the size so that the
// record exists.
func (r *RecordBuffer) writeField(record int, name string, t Type) (int, Field, error) {
	if record < 0 {
		return 0, Field{}, fmt.Errorf("%w: record %d", ErrOutOfRange, record)
	}
	f, err := r.layout.Get(name)
	if err != nil {
		return 0, Field{}, err
	}
	if t != InvalidType && f.Type != t {
		return 0, Field{}, fmt.Errorf("%w: field %q is %s, not %s", ErrTypeMismatch, name, f.Type, t)
	}
	if record >= r.Size() {
		r.bytes.resize((record + 1) * r.layout.size)
	}
	return record*r.layout.size + f.Offset, f, nil
}

// readField resolves a field for reading; the record must be in use.
func (r *RecordBuffer) readField(record int, name string, t Type) (int, Field, error) {
	if record < 0 || record >= r.Size() {
		return 0, Field{}, fmt.Errorf("%w: record %d, size %d", ErrOutOfRange, record, r.Size())
	}
	f, err := r.layout.Get(name)
	if err != nil {
		return 0, Field{}, err
	}
	if t != InvalidType && f.Type != t {
		return 0, Field{}, fmt.Errorf("%w: field %q is %s, not %s", ErrTypeMismatch, name, f.Type, t)
	}
	return record*r.layout.size + f.Offset, f, nil
}

// Set writes the named field of a record from its components in row-major
// traversal order, whatever the field type.
func (r *RecordBuffer) Set(record int, name string, components ...float64) error {
	f, err := r.layout.Get(name)
	if err != nil {
		return err
	}
	if err := checkComponents(f.Type, components); err != nil {
		return err
	}
	off, _, err := r.writeField(record, name, InvalidType)
	if err != nil {
		return err
	}
	return r.bytes.SetComponents(off, f.Type, components...)
}

// Get reads the named field of a record as components in row-major
// traversal order.
func (r *RecordBuffer) Get(record int, name string) ([]float64, error) {
	off, f, err := r.readField(record, name, InvalidType)
	if err != nil {
		return nil, err
	}
	return r.bytes.Components(off, f.Type), nil
}

// SetFloat32 writes a FLOAT field.
func (r *RecordBuffer) SetFloat32(record int, name string, v float32) error {
	off, _, err := r.writeField(record, name, Float32)
	if err != nil {
		return err
	}
	return r.bytes.SetFloat32(off, v)
}

// Float32 reads a FLOAT field.
func (r *RecordBuffer) Float32(record int, name string) (float32, error) {
	off, _, err := r.readField(record, name, Float32)
	if err != nil {
		return 0, err
	}
	return r.bytes.GetFloat32(off), nil
}

// SetInt32 writes an INT field.
func (r *RecordBuffer) SetInt32(record int, name string, v int32) error {
	off, _, err := r.writeField(record, name, Int32)
	if err != nil {
		return err
	}
	return r.bytes.SetInt32(off, v)
}

// Int32 reads an INT field.
func (r *RecordBuffer) Int32(record int, name string) (int32, error) {
	off, _, err := r.readField(record, name, Int32)
	if err != nil {
		return 0, err
	}
	return r.bytes.GetInt32(off), nil
}

// SetUint32 writes an UNSIGNED_INT field.
func (r *RecordBuffer) SetUint32(record int, name string, v uint32) error {
	off, _, err := r.writeField(record, name, Uint32)
	if err != nil {
		return err
	}
	return r.bytes.SetUint32(off, v)
}

// Uint32 reads an UNSIGNED_INT field.
func (r *RecordBuffer) Uint32(record int, name string) (uint32, error) {
	off, _, err := r.readField(record, name, Uint32)
	if err != nil {
		return 0, err
	}
	return r.bytes.GetUint32(off), nil
}

// SetVec2 writes a FLOAT_VEC2 field.
func (r *RecordBuffer) SetVec2(record int, name string, v f32.Vec2) error {
	off, _, err := r.writeField(record, name, Float32Vec2)
	if err != nil {
		return err
	}
	return r.bytes.SetVec2(off, v)
}

// Vec2 reads a FLOAT_VEC2 field.
func (r *RecordBuffer) Vec2(record int, name string) (f32.Vec2, error) {
	off, _, err := r.readField(record, name, Float32Vec2)
	if err != nil {
		return f32.Vec2{}, err
	}
	return r.bytes.GetVec2(off), nil
}

// SetVec3 writes a FLOAT_VEC3 field.
func (r *RecordBuffer) SetVec3(record int, name string, v f32.Vec3) error {
	off, _, err := r.writeField(record, name, Float32Vec3)
	if err != nil {
		return err
	}
	return r.bytes.SetVec3(off, v)
}

// Vec3 reads a FLOAT_VEC3 field.
func (r *RecordBuffer) Vec3(record int, name string) (f32.Vec3, error) {
	off, _, err := r.readField(record, name, Float32Vec3)
	if err != nil {
		return f32.Vec3{}, err
	}
	return r.bytes.GetVec3(off), nil
}

// SetVec4 writes a FLOAT_VEC4 field.
func (r *RecordBuffer) SetVec4(record int, name string, v f32.Vec4) error {
	off, _, err := r.writeField(record, name, Float32Vec4)
	if err != nil {
		return err
	}
	return r.bytes.SetVec4(off, v)
}

// Vec4 reads a FLOAT_VEC4 field.
func (r *RecordBuffer) Vec4(record int, name string) (f32.Vec4, error) {
	off, _, err := r.readField(record, name, Float32Vec4)
	if err != nil {
		return f32.Vec4{}, err
	}
	return r.bytes.GetVec4(off), nil
}

// SetMat4 writes a FLOAT_MAT4 field from a row-major matrix.
func (r *RecordBuffer) SetMat4(record int, name string, m f32.Mat4) error {
	off, _, err := r.writeField(record, name, Float32Mat4)
	if err != nil {
		return err
	}
	return r.bytes.SetMat4(off, m)
}

// Mat4 reads a FLOAT_MAT4 field as a row-major matrix.
func (r *RecordBuffer) Mat4(record int, name string) (f32.Mat4, error) {
	off, _, err := r.readField(record, name, Float32Mat4)
	if err != nil {
		return f32.Mat4{}, err
	}
	return r.bytes.GetMat4(off), nil
}

func (r *RecordBuffer) compatible(o *RecordBuffer) error {
	if o == nil {
		return fmt.Errorf("%w: nil record buffer", ErrInvalidArgument)
	}
	if !r.layout.Equal(o.layout) {
		return fmt.Errorf("%w: %s and %s differ", ErrTypeMismatch, r.layout, o.layout)
	}
	return nil
}

// Copy overwrites the first records of r with length records of src
// starting at record start. The size is never changed.
func (r *RecordBuffer) Copy(src *RecordBuffer, start, length int) error {
	if err := r.compatible(src); err != nil {
		return err
	}
	if start < 0 || length < 0 {
		return fmt.Errorf("%w: copy of %d records at %d", ErrOutOfRange, length, start)
	}
	stride := r.layout.size
	return r.bytes.CopyRange(src.bytes, start*stride, length*stride)
}

// Concat appends the records in use of each buffer in order. All buffers
// must share an equal layout; nothing is appended otherwise.
func (r *RecordBuffer) Concat(others ...*RecordBuffer) error {
	raw := make([]*ByteBuffer, 0, len(others))
	for _, o := range others {
		if err := r.compatible(o); err != nil {
			return err
		}
		raw = append(raw, o.bytes)
	}
	r.bytes.Concat(raw...)
	return nil
}

// CopyWithin copies the records in [start, end) to target. Indices are
// normalized in record units, see ByteBuffer.CopyWithin.
func (r *RecordBuffer) CopyWithin(target, start, end int) {
	n := r.Size()
	stride := r.layout.size
	r.bytes.CopyWithin(normalize(target, n)*stride, normalize(start, n)*stride, normalize(end, n)*stride)
}

// Fill sets every byte of the records in [start, end) to value.
func (r *RecordBuffer) Fill(value byte, start, end int) {
	n := r.Size()
	stride := r.layout.size
	r.bytes.Fill(value, normalize(start, n)*stride, normalize(end, n)*stride)
}

// Equal reports whether o has an equal layout and the same records in use.
func (r *RecordBuffer) Equal(o *RecordBuffer) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	return r.layout.Equal(o.layout) && r.bytes.Equal(o.bytes)
}

// Clone returns an independent buffer sharing the same layout.
func (r *RecordBuffer) Clone() *RecordBuffer {
	return &RecordBuffer{layout: r.layout, bytes: r.bytes.Clone(), usage: r.usage}
}

// String returns a short description, not the content.
func (r *RecordBuffer) String() string {
	return fmt.Sprintf("RecordBuffer[size=%d capacity=%d stride=%d usage=%s]", r.Size(), r.Capacity(), r.layout.size, r.usage)
}
