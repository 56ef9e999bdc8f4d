package buffer

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/f64"
)

// Mat2 is a 2x2 float32 matrix in row-major order, completing the f32
// matrix family from golang.org/x/image/math/f32.
type Mat2 [4]float32

// DMat2 is a 2x2 float64 matrix in row-major order.
type DMat2 [4]float64

// Push* methods append values at the end of the content and return b so
// calls can be chained. Get* methods read the value at a byte offset and
// panic if it falls outside the backing region; bytes past Size can be read.
// Set* methods overwrite the value at a byte offset, growing the size to
// cover it.
//
// Matrix values are passed in row-major order and stored column by column.

// PushInt8 appends BYTE values.
func (b *ByteBuffer) PushInt8(values ...int8) *ByteBuffer {
	w := b.extend(len(values))
	for i, v := range values {
		w[i] = byte(v)
	}
	return b
}

// GetInt8 reads a BYTE value at offset.
func (b *ByteBuffer) GetInt8(offset int) int8 {
	return int8(b.window(offset, 1)[0])
}

// SetInt8 writes a BYTE value at offset.
func (b *ByteBuffer) SetInt8(offset int, v int8) error {
	w, err := b.writable(offset, 1)
	if err != nil {
		return err
	}
	w[0] = byte(v)
	return nil
}

// PushUint8 appends UNSIGNED_BYTE values.
func (b *ByteBuffer) PushUint8(values ...uint8) *ByteBuffer {
	copy(b.extend(len(values)), values)
	return b
}

// GetUint8 reads an UNSIGNED_BYTE value at offset.
func (b *ByteBuffer) GetUint8(offset int) uint8 {
	return b.window(offset, 1)[0]
}

// SetUint8 writes an UNSIGNED_BYTE value at offset.
func (b *ByteBuffer) SetUint8(offset int, v uint8) error {
	w, err := b.writable(offset, 1)
	if err != nil {
		return err
	}
	w[0] = v
	return nil
}

// PushInt16 appends SHORT values.
func (b *ByteBuffer) PushInt16(values ...int16) *ByteBuffer {
	w := b.extend(2 * len(values))
	for i, v := range values {
		ne.PutUint16(w[i*2:], uint16(v))
	}
	return b
}

// GetInt16 reads a SHORT value at offset.
func (b *ByteBuffer) GetInt16(offset int) int16 {
	return int16(ne.Uint16(b.window(offset, 2)))
}

// SetInt16 writes a SHORT value at offset.
func (b *ByteBuffer) SetInt16(offset int, v int16) error {
	w, err := b.writable(offset, 2)
	if err != nil {
		return err
	}
	ne.PutUint16(w, uint16(v))
	return nil
}

// PushUint16 appends UNSIGNED_SHORT values.
func (b *ByteBuffer) PushUint16(values ...uint16) *ByteBuffer {
	w := b.extend(2 * len(values))
	for i, v := range values {
		ne.PutUint16(w[i*2:], v)
	}
	return b
}

// GetUint16 reads an UNSIGNED_SHORT value at offset.
func (b *ByteBuffer) GetUint16(offset int) uint16 {
	return ne.Uint16(b.window(offset, 2))
}

// SetUint16 writes an UNSIGNED_SHORT value at offset.
func (b *ByteBuffer) SetUint16(offset int, v uint16) error {
	w, err := b.writable(offset, 2)
	if err != nil {
		return err
	}
	ne.PutUint16(w, v)
	return nil
}

// PushInt32 appends INT values.
func (b *ByteBuffer) PushInt32(values ...int32) *ByteBuffer {
	putInt32s(b.extend(4*len(values)), values)
	return b
}

// GetInt32 reads an INT value at offset.
func (b *ByteBuffer) GetInt32(offset int) int32 {
	return int32(ne.Uint32(b.window(offset, 4)))
}

// SetInt32 writes an INT value at offset.
func (b *ByteBuffer) SetInt32(offset int, v int32) error {
	w, err := b.writable(offset, 4)
	if err != nil {
		return err
	}
	ne.PutUint32(w, uint32(v))
	return nil
}

// PushUint32 appends UNSIGNED_INT values.
func (b *ByteBuffer) PushUint32(values ...uint32) *ByteBuffer {
	putUint32s(b.extend(4*len(values)), values)
	return b
}

// GetUint32 reads an UNSIGNED_INT value at offset.
func (b *ByteBuffer) GetUint32(offset int) uint32 {
	return ne.Uint32(b.window(offset, 4))
}

// SetUint32 writes an UNSIGNED_INT value at offset.
func (b *ByteBuffer) SetUint32(offset int, v uint32) error {
	w, err := b.writable(offset, 4)
	if err != nil {
		return err
	}
	ne.PutUint32(w, v)
	return nil
}

// PushFloat32 appends FLOAT values.
func (b *ByteBuffer) PushFloat32(values ...float32) *ByteBuffer {
	putFloat32s(b.extend(4*len(values)), values)
	return b
}

// GetFloat32 reads a FLOAT value at offset.
func (b *ByteBuffer) GetFloat32(offset int) float32 {
	return math.Float32frombits(ne.Uint32(b.window(offset, 4)))
}

// SetFloat32 writes a FLOAT value at offset.
func (b *ByteBuffer) SetFloat32(offset int, v float32) error {
	w, err := b.writable(offset, 4)
	if err != nil {
		return err
	}
	ne.PutUint32(w, math.Float32bits(v))
	return nil
}

// PushFloat64 appends DOUBLE values.
func (b *ByteBuffer) PushFloat64(values ...float64) *ByteBuffer {
	putFloat64s(b.extend(8*len(values)), values)
	return b
}

// GetFloat64 reads a DOUBLE value at offset.
func (b *ByteBuffer) GetFloat64(offset int) float64 {
	return math.Float64frombits(ne.Uint64(b.window(offset, 8)))
}

// SetFloat64 writes a DOUBLE value at offset.
func (b *ByteBuffer) SetFloat64(offset int, v float64) error {
	w, err := b.writable(offset, 8)
	if err != nil {
		return err
	}
	ne.PutUint64(w, math.Float64bits(v))
	return nil
}

// PushVec2 appends FLOAT_VEC2 values.
func (b *ByteBuffer) PushVec2(values ...f32.Vec2) *ByteBuffer {
	w := b.extend(8 * len(values))
	for i, v := range values {
		putFloat32s(w[i*8:], v[:])
	}
	return b
}

// GetVec2 reads a FLOAT_VEC2 value at offset.
func (b *ByteBuffer) GetVec2(offset int) (v f32.Vec2) {
	getFloat32s(b.window(offset, 8), v[:])
	return v
}

// SetVec2 writes a FLOAT_VEC2 value at offset.
func (b *ByteBuffer) SetVec2(offset int, v f32.Vec2) error {
	w, err := b.writable(offset, 8)
	if err != nil {
		return err
	}
	putFloat32s(w, v[:])
	return nil
}

// PushVec3 appends FLOAT_VEC3 values.
func (b *ByteBuffer) PushVec3(values ...f32.Vec3) *ByteBuffer {
	w := b.extend(12 * len(values))
	for i, v := range values {
		putFloat32s(w[i*12:], v[:])
	}
	return b
}

// GetVec3 reads a FLOAT_VEC3 value at offset.
func (b *ByteBuffer) GetVec3(offset int) (v f32.Vec3) {
	getFloat32s(b.window(offset, 12), v[:])
	return v
}

// SetVec3 writes a FLOAT_VEC3 value at offset.
func (b *ByteBuffer) SetVec3(offset int, v f32.Vec3) error {
	w, err := b.writable(offset, 12)
	if err != nil {
		return err
	}
	putFloat32s(w, v[:])
	return nil
}

// PushVec4 appends FLOAT_VEC4 values.
func (b *ByteBuffer) PushVec4(values ...f32.Vec4) *ByteBuffer {
	w := b.extend(16 * len(values))
	for i, v := range values {
		putFloat32s(w[i*16:], v[:])
	}
	return b
}

// GetVec4 reads a FLOAT_VEC4 value at offset.
func (b *ByteBuffer) GetVec4(offset int) (v f32.Vec4) {
	getFloat32s(b.window(offset, 16), v[:])
	return v
}

// SetVec4 writes a FLOAT_VEC4 value at offset.
func (b *ByteBuffer) SetVec4(offset int, v f32.Vec4) error {
	w, err := b.writable(offset, 16)
	if err != nil {
		return err
	}
	putFloat32s(w, v[:])
	return nil
}

// PushDVec2 appends DOUBLE_VEC2 values.
func (b *ByteBuffer) PushDVec2(values ...f64.Vec2) *ByteBuffer {
	w := b.extend(16 * len(values))
	for i, v := range values {
		putFloat64s(w[i*16:], v[:])
	}
	return b
}

// GetDVec2 reads a DOUBLE_VEC2 value at offset.
func (b *ByteBuffer) GetDVec2(offset int) (v f64.Vec2) {
	getFloat64s(b.window(offset, 16), v[:])
	return v
}

// SetDVec2 writes a DOUBLE_VEC2 value at offset.
func (b *ByteBuffer) SetDVec2(offset int, v f64.Vec2) error {
	w, err := b.writable(offset, 16)
	if err != nil {
		return err
	}
	putFloat64s(w, v[:])
	return nil
}

// PushDVec3 appends DOUBLE_VEC3 values.
func (b *ByteBuffer) PushDVec3(values ...f64.Vec3) *ByteBuffer {
	w := b.extend(24 * len(values))
	for i, v := range values {
		putFloat64s(w[i*24:], v[:])
	}
	return b
}

// GetDVec3 reads a DOUBLE_VEC3 value at offset.
func (b *ByteBuffer) GetDVec3(offset int) (v f64.Vec3) {
	getFloat64s(b.window(offset, 24), v[:])
	return v
}

// SetDVec3 writes a DOUBLE_VEC3 value at offset.
func (b *ByteBuffer) SetDVec3(offset int, v f64.Vec3) error {
	w, err := b.writable(offset, 24)
	if err != nil {
		return err
	}
	putFloat64s(w, v[:])
	return nil
}

// PushDVec4 appends DOUBLE_VEC4 values.
func (b *ByteBuffer) PushDVec4(values ...f64.Vec4) *ByteBuffer {
	w := b.extend(32 * len(values))
	for i, v := range values {
		putFloat64s(w[i*32:], v[:])
	}
	return b
}

// GetDVec4 reads a DOUBLE_VEC4 value at offset.
func (b *ByteBuffer) GetDVec4(offset int) (v f64.Vec4) {
	getFloat64s(b.window(offset, 32), v[:])
	return v
}

// SetDVec4 writes a DOUBLE_VEC4 value at offset.
func (b *ByteBuffer) SetDVec4(offset int, v f64.Vec4) error {
	w, err := b.writable(offset, 32)
	if err != nil {
		return err
	}
	putFloat64s(w, v[:])
	return nil
}

// PushIVec2 appends INT_VEC2 values.
func (b *ByteBuffer) PushIVec2(values ...[2]int32) *ByteBuffer {
	w := b.extend(8 * len(values))
	for i, v := range values {
		putInt32s(w[i*8:], v[:])
	}
	return b
}

// GetIVec2 reads an INT_VEC2 value at offset.
func (b *ByteBuffer) GetIVec2(offset int) (v [2]int32) {
	getInt32s(b.window(offset, 8), v[:])
	return v
}

// SetIVec2 writes an INT_VEC2 value at offset.
func (b *ByteBuffer) SetIVec2(offset int, v [2]int32) error {
	w, err := b.writable(offset, 8)
	if err != nil {
		return err
	}
	putInt32s(w, v[:])
	return nil
}

// PushIVec3 appends INT_VEC3 values.
func (b *ByteBuffer) PushIVec3(values ...[3]int32) *ByteBuffer {
	w := b.extend(12 * len(values))
	for i, v := range values {
		putInt32s(w[i*12:], v[:])
	}
	return b
}

// GetIVec3 reads an INT_VEC3 value at offset.
func (b *ByteBuffer) GetIVec3(offset int) (v [3]int32) {
	getInt32s(b.window(offset, 12), v[:])
	return v
}

// SetIVec3 writes an INT_VEC3 value at offset.
func (b *ByteBuffer) SetIVec3(offset int, v [3]int32) error {
	w, err := b.writable(offset, 12)
	if err != nil {
		return err
	}
	putInt32s(w, v[:])
	return nil
}

// PushIVec4 appends INT_VEC4 values.
func (b *ByteBuffer) PushIVec4(values ...[4]int32) *ByteBuffer {
	w := b.extend(16 * len(values))
	for i, v := range values {
		putInt32s(w[i*16:], v[:])
	}
	return b
}

// GetIVec4 reads an INT_VEC4 value at offset.
func (b *ByteBuffer) GetIVec4(offset int) (v [4]int32) {
	getInt32s(b.window(offset, 16), v[:])
	return v
}

// SetIVec4 writes an INT_VEC4 value at offset.
func (b *ByteBuffer) SetIVec4(offset int, v [4]int32) error {
	w, err := b.writable(offset, 16)
	if err != nil {
		return err
	}
	putInt32s(w, v[:])
	return nil
}

// PushUVec2 appends UNSIGNED_INT_VEC2 values.
func (b *ByteBuffer) PushUVec2(values ...[2]uint32) *ByteBuffer {
	w := b.extend(8 * len(values))
	for i, v := range values {
		putUint32s(w[i*8:], v[:])
	}
	return b
}

// GetUVec2 reads an UNSIGNED_INT_VEC2 value at offset.
func (b *ByteBuffer) GetUVec2(offset int) (v [2]uint32) {
	getUint32s(b.window(offset, 8), v[:])
	return v
}

// SetUVec2 writes an UNSIGNED_INT_VEC2 value at offset.
func (b *ByteBuffer) SetUVec2(offset int, v [2]uint32) error {
	w, err := b.writable(offset, 8)
	if err != nil {
		return err
	}
	putUint32s(w, v[:])
	return nil
}

// PushUVec3 appends UNSIGNED_INT_VEC3 values.
func (b *ByteBuffer) PushUVec3(values ...[3]uint32) *ByteBuffer {
	w := b.extend(12 * len(values))
	for i, v := range values {
		putUint32s(w[i*12:], v[:])
	}
	return b
}

// GetUVec3 reads an UNSIGNED_INT_VEC3 value at offset.
func (b *ByteBuffer) GetUVec3(offset int) (v [3]uint32) {
	getUint32s(b.window(offset, 12), v[:])
	return v
}

// SetUVec3 writes an UNSIGNED_INT_VEC3 value at offset.
func (b *ByteBuffer) SetUVec3(offset int, v [3]uint32) error {
	w, err := b.writable(offset, 12)
	if err != nil {
		return err
	}
	putUint32s(w, v[:])
	return nil
}

// PushUVec4 appends UNSIGNED_INT_VEC4 values.
func (b *ByteBuffer) PushUVec4(values ...[4]uint32) *ByteBuffer {
	w := b.extend(16 * len(values))
	for i, v := range values {
		putUint32s(w[i*16:], v[:])
	}
	return b
}

// GetUVec4 reads an UNSIGNED_INT_VEC4 value at offset.
func (b *ByteBuffer) GetUVec4(offset int) (v [4]uint32) {
	getUint32s(b.window(offset, 16), v[:])
	return v
}

// SetUVec4 writes an UNSIGNED_INT_VEC4 value at offset.
func (b *ByteBuffer) SetUVec4(offset int, v [4]uint32) error {
	w, err := b.writable(offset, 16)
	if err != nil {
		return err
	}
	putUint32s(w, v[:])
	return nil
}

// PushMat2 appends FLOAT_MAT2 values.
func (b *ByteBuffer) PushMat2(values ...Mat2) *ByteBuffer {
	w := b.extend(16 * len(values))
	var col [4]float32
	for i, m := range values {
		transpose(m[:], col[:], 2)
		putFloat32s(w[i*16:], col[:])
	}
	return b
}

// GetMat2 reads a FLOAT_MAT2 value at offset.
func (b *ByteBuffer) GetMat2(offset int) (m Mat2) {
	var col [4]float32
	getFloat32s(b.window(offset, 16), col[:])
	transpose(col[:], m[:], 2)
	return m
}

// SetMat2 writes a FLOAT_MAT2 value at offset.
func (b *ByteBuffer) SetMat2(offset int, m Mat2) error {
	w, err := b.writable(offset, 16)
	if err != nil {
		return err
	}
	var col [4]float32
	transpose(m[:], col[:], 2)
	putFloat32s(w, col[:])
	return nil
}

// PushMat3 appends FLOAT_MAT3 values.
func (b *ByteBuffer) PushMat3(values ...f32.Mat3) *ByteBuffer {
	w := b.extend(36 * len(values))
	var col [9]float32
	for i, m := range values {
		transpose(m[:], col[:], 3)
		putFloat32s(w[i*36:], col[:])
	}
	return b
}

// GetMat3 reads a FLOAT_MAT3 value at offset.
func (b *ByteBuffer) GetMat3(offset int) (m f32.Mat3) {
	var col [9]float32
	getFloat32s(b.window(offset, 36), col[:])
	transpose(col[:], m[:], 3)
	return m
}

// SetMat3 writes a FLOAT_MAT3 value at offset.
func (b *ByteBuffer) SetMat3(offset int, m f32.Mat3) error {
	w, err := b.writable(offset, 36)
	if err != nil {
		return err
	}
	var col [9]float32
	transpose(m[:], col[:], 3)
	putFloat32s(w, col[:])
	return nil
}

// PushMat4 appends FLOAT_MAT4 values.
func (b *ByteBuffer) PushMat4(values ...f32.Mat4) *ByteBuffer {
	w := b.extend(64 * len(values))
	var col [16]float32
	for i, m := range values {
		transpose(m[:], col[:], 4)
		putFloat32s(w[i*64:], col[:])
	}
	return b
}

// GetMat4 reads a FLOAT_MAT4 value at offset.
func (b *ByteBuffer) GetMat4(offset int) (m f32.Mat4) {
	var col [16]float32
	getFloat32s(b.window(offset, 64), col[:])
	transpose(col[:], m[:], 4)
	return m
}

// SetMat4 writes a FLOAT_MAT4 value at offset.
func (b *ByteBuffer) SetMat4(offset int, m f32.Mat4) error {
	w, err := b.writable(offset, 64)
	if err != nil {
		return err
	}
	var col [16]float32
	transpose(m[:], col[:], 4)
	putFloat32s(w, col[:])
	return nil
}

// PushDMat2 appends DOUBLE_MAT2 values.
func (b *ByteBuffer) PushDMat2(values ...DMat2) *ByteBuffer {
	w := b.extend(32 * len(values))
	var col [4]float64
	for i, m := range values {
		transpose(m[:], col[:], 2)
		putFloat64s(w[i*32:], col[:])
	}
	return b
}

// GetDMat2 reads a DOUBLE_MAT2 value at offset.
func (b *ByteBuffer) GetDMat2(offset int) (m DMat2) {
	var col [4]float64
	getFloat64s(b.window(offset, 32), col[:])
	transpose(col[:], m[:], 2)
	return m
}

// SetDMat2 writes a DOUBLE_MAT2 value at offset.
func (b *ByteBuffer) SetDMat2(offset int, m DMat2) error {
	w, err := b.writable(offset, 32)
	if err != nil {
		return err
	}
	var col [4]float64
	transpose(m[:], col[:], 2)
	putFloat64s(w, col[:])
	return nil
}

// PushDMat3 appends DOUBLE_MAT3 values.
func (b *ByteBuffer) PushDMat3(values ...f64.Mat3) *ByteBuffer {
	w := b.extend(72 * len(values))
	var col [9]float64
	for i, m := range values {
		transpose(m[:], col[:], 3)
		putFloat64s(w[i*72:], col[:])
	}
	return b
}

// GetDMat3 reads a DOUBLE_MAT3 value at offset.
func (b *ByteBuffer) GetDMat3(offset int) (m f64.Mat3) {
	var col [9]float64
	getFloat64s(b.window(offset, 72), col[:])
	transpose(col[:], m[:], 3)
	return m
}

// SetDMat3 writes a DOUBLE_MAT3 value at offset.
func (b *ByteBuffer) SetDMat3(offset int, m f64.Mat3) error {
	w, err := b.writable(offset, 72)
	if err != nil {
		return err
	}
	var col [9]float64
	transpose(m[:], col[:], 3)
	putFloat64s(w, col[:])
	return nil
}

// PushDMat4 appends DOUBLE_MAT4 values.
func (b *ByteBuffer) PushDMat4(values ...f64.Mat4) *ByteBuffer {
	w := b.extend(128 * len(values))
	var col [16]float64
	for i, m := range values {
		transpose(m[:], col[:], 4)
		putFloat64s(w[i*128:], col[:])
	}
	return b
}

// GetDMat4 reads a DOUBLE_MAT4 value at offset.
func (b *ByteBuffer) GetDMat4(offset int) (m f64.Mat4) {
	var col [16]float64
	getFloat64s(b.window(offset, 128), col[:])
	transpose(col[:], m[:], 4)
	return m
}

// SetDMat4 writes a DOUBLE_MAT4 value at offset.
func (b *ByteBuffer) SetDMat4(offset int, m f64.Mat4) error {
	w, err := b.writable(offset, 128)
	if err != nil {
		return err
	}
	var col [16]float64
	transpose(m[:], col[:], 4)
	putFloat64s(w, col[:])
	return nil
}

// Push appends one value of type t given as components in row-major
// traversal order. Integer types truncate the given components.
func (b *ByteBuffer) Push(t Type, components ...float64) error {
	if err := checkComponents(t, components); err != nil {
		return err
	}
	encode(b.extend(t.Size()), t, components)
	return nil
}

// Components reads the value of type t at offset and returns its
// components in row-major traversal order. It panics if the value lies
// outside the backing region.
func (b *ByteBuffer) Components(offset int, t Type) []float64 {
	out := make([]float64, t.Components())
	decode(b.window(offset, t.Size()), t, out)
	return out
}

// SetComponents writes one value of type t at offset, see Push.
func (b *ByteBuffer) SetComponents(offset int, t Type, components ...float64) error {
	if err := checkComponents(t, components); err != nil {
		return err
	}
	w, err := b.writable(offset, t.Size())
	if err != nil {
		return err
	}
	encode(w, t, components)
	return nil
}

// MatrixAt reads the component at (column, row) of the value of type t
// stored at offset. Vectors have a single column.
func (b *ByteBuffer) MatrixAt(offset int, t Type, column, row int) float64 {
	if column < 0 || column >= t.Columns() || row < 0 || row >= t.Rows() {
		panic(fmt.Errorf("%w: component (%d, %d) of %s", ErrOutOfRange, column, row, t))
	}
	comp := t.Component()
	cs := scalarSizes[comp]
	return scalar(b.window(offset+componentIndex(column, row, t.Rows())*cs, cs), comp)
}

func checkComponents(t Type, components []float64) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: type %s", ErrInvalidArgument, t)
	}
	if len(components) != t.Components() {
		return fmt.Errorf("%w: %s takes %d components, got %d", ErrInvalidArgument, t, t.Components(), len(components))
	}
	return nil
}
