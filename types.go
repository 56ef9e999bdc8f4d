package buffer

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Type identifies the binary representation of one field value: a scalar,
// a fixed-length vector or a square matrix of scalars.
//
// Vectors are stored as consecutive components. Matrices are stored
// column by column, each column being a vector of Rows components.
type Type uint8

// Supported types. Labels and numeric codes follow the OpenGL names.
const (
	InvalidType Type = iota

	Int8    // BYTE
	Uint8   // UNSIGNED_BYTE
	Int16   // SHORT
	Uint16  // UNSIGNED_SHORT
	Int32   // INT
	Uint32  // UNSIGNED_INT
	Float32 // FLOAT
	Float64 // DOUBLE

	Float32Vec2
	Float32Vec3
	Float32Vec4

	Float64Vec2
	Float64Vec3
	Float64Vec4

	Int32Vec2
	Int32Vec3
	Int32Vec4

	Uint32Vec2
	Uint32Vec3
	Uint32Vec4

	Float32Mat2
	Float32Mat3
	Float32Mat4

	Float64Mat2
	Float64Mat3
	Float64Mat4

	typeCount
)

type typeInfo struct {
	label     string
	glEnum    uint32
	component Type
	columns   int
	rows      int
	format    gputypes.VertexFormat // format of one column
	hasFormat bool
}

// scalarSizes gives the byte width of each scalar component type.
var scalarSizes = [typeCount]int{
	Int8: 1, Uint8: 1,
	Int16: 2, Uint16: 2,
	Int32: 4, Uint32: 4,
	Float32: 4,
	Float64: 8,
}

var typeInfos = [typeCount]typeInfo{
	InvalidType: {label: "INVALID"},

	Int8:    {label: "BYTE", glEnum: 0x1400, component: Int8, columns: 1, rows: 1},
	Uint8:   {label: "UNSIGNED_BYTE", glEnum: 0x1401, component: Uint8, columns: 1, rows: 1},
	Int16:   {label: "SHORT", glEnum: 0x1402, component: Int16, columns: 1, rows: 1},
	Uint16:  {label: "UNSIGNED_SHORT", glEnum: 0x1403, component: Uint16, columns: 1, rows: 1},
	Int32:   {label: "INT", glEnum: 0x1404, component: Int32, columns: 1, rows: 1, format: gputypes.VertexFormatSint32, hasFormat: true},
	Uint32:  {label: "UNSIGNED_INT", glEnum: 0x1405, component: Uint32, columns: 1, rows: 1, format: gputypes.VertexFormatUint32, hasFormat: true},
	Float32: {label: "FLOAT", glEnum: 0x1406, component: Float32, columns: 1, rows: 1, format: gputypes.VertexFormatFloat32, hasFormat: true},
	Float64: {label: "DOUBLE", glEnum: 0x140A, component: Float64, columns: 1, rows: 1},

	Float32Vec2: {label: "FLOAT_VEC2", glEnum: 0x8B50, component: Float32, columns: 1, rows: 2, format: gputypes.VertexFormatFloat32x2, hasFormat: true},
	Float32Vec3: {label: "FLOAT_VEC3", glEnum: 0x8B51, component: Float32, columns: 1, rows: 3, format: gputypes.VertexFormatFloat32x3, hasFormat: true},
	Float32Vec4: {label: "FLOAT_VEC4", glEnum: 0x8B52, component: Float32, columns: 1, rows: 4, format: gputypes.VertexFormatFloat32x4, hasFormat: true},

	Float64Vec2: {label: "DOUBLE_VEC2", glEnum: 0x8FFC, component: Float64, columns: 1, rows: 2},
	Float64Vec3: {label: "DOUBLE_VEC3", glEnum: 0x8FFD, component: Float64, columns: 1, rows: 3},
	Float64Vec4: {label: "DOUBLE_VEC4", glEnum: 0x8FFE, component: Float64, columns: 1, rows: 4},

	Int32Vec2: {label: "INT_VEC2", glEnum: 0x8B53, component: Int32, columns: 1, rows: 2, format: gputypes.VertexFormatSint32x2, hasFormat: true},
	Int32Vec3: {label: "INT_VEC3", glEnum: 0x8B54, component: Int32, columns: 1, rows: 3, format: gputypes.VertexFormatSint32x3, hasFormat: true},
	Int32Vec4: {label: "INT_VEC4", glEnum: 0x8B55, component: Int32, columns: 1, rows: 4, format: gputypes.VertexFormatSint32x4, hasFormat: true},

	Uint32Vec2: {label: "UNSIGNED_INT_VEC2", glEnum: 0x8DC6, component: Uint32, columns: 1, rows: 2, format: gputypes.VertexFormatUint32x2, hasFormat: true},
	Uint32Vec3: {label: "UNSIGNED_INT_VEC3", glEnum: 0x8DC7, component: Uint32, columns: 1, rows: 3, format: gputypes.VertexFormatUint32x3, hasFormat: true},
	Uint32Vec4: {label: "UNSIGNED_INT_VEC4", glEnum: 0x8DC8, component: Uint32, columns: 1, rows: 4, format: gputypes.VertexFormatUint32x4, hasFormat: true},

	Float32Mat2: {label: "FLOAT_MAT2", glEnum: 0x8B5A, component: Float32, columns: 2, rows: 2, format: gputypes.VertexFormatFloat32x2, hasFormat: true},
	Float32Mat3: {label: "FLOAT_MAT3", glEnum: 0x8B5B, component: Float32, columns: 3, rows: 3, format: gputypes.VertexFormatFloat32x3, hasFormat: true},
	Float32Mat4: {label: "FLOAT_MAT4", glEnum: 0x8B5C, component: Float32, columns: 4, rows: 4, format: gputypes.VertexFormatFloat32x4, hasFormat: true},

	Float64Mat2: {label: "DOUBLE_MAT2", glEnum: 0x8F46, component: Float64, columns: 2, rows: 2},
	Float64Mat3: {label: "DOUBLE_MAT3", glEnum: 0x8F47, component: Float64, columns: 3, rows: 3},
	Float64Mat4: {label: "DOUBLE_MAT4", glEnum: 0x8F48, component: Float64, columns: 4, rows: 4},
}

// Types returns every valid type in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount-1)
	for t := Int8; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}

// ParseType returns the type with the given label, such as "FLOAT_VEC3".
func ParseType(label string) (Type, error) {
	for t := Int8; t < typeCount; t++ {
		if typeInfos[t].label == label {
			return t, nil
		}
	}
	return InvalidType, fmt.Errorf("%w: type %q", ErrNotFound, label)
}

// IsValid reports whether t is one of the declared types.
func (t Type) IsValid() bool {
	return t > InvalidType && t < typeCount
}

// String returns the stable label of t.
func (t Type) String() string {
	if t >= typeCount {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeInfos[t].label
}

// GLEnum returns the stable numeric code of t, 0 for invalid types.
func (t Type) GLEnum() uint32 {
	if !t.IsValid() {
		return 0
	}
	return typeInfos[t].glEnum
}

// Component returns the scalar type of each component of t.
// For scalars it returns t itself.
func (t Type) Component() Type {
	if !t.IsValid() {
		return InvalidType
	}
	return typeInfos[t].component
}

// Columns returns the number of columns: 1 for scalars and vectors.
func (t Type) Columns() int {
	if !t.IsValid() {
		return 0
	}
	return typeInfos[t].columns
}

// Rows returns the number of rows: 1 for scalars, the length for vectors.
func (t Type) Rows() int {
	if !t.IsValid() {
		return 0
	}
	return typeInfos[t].rows
}

// Components returns the total number of scalar components.
func (t Type) Components() int {
	return t.Columns() * t.Rows()
}

// IsMatrix reports whether t is a square matrix type.
func (t Type) IsMatrix() bool {
	return t.Columns() > 1
}

// Size returns the packed byte width of t.
func (t Type) Size() int {
	if !t.IsValid() {
		return 0
	}
	return scalarSizes[typeInfos[t].component] * t.Components()
}

// ColumnSize returns the byte width of one column of t.
func (t Type) ColumnSize() int {
	if !t.IsValid() {
		return 0
	}
	return scalarSizes[typeInfos[t].component] * t.Rows()
}

// VertexFormat returns the WebGPU vertex format of one column of t.
// Matrices map to one attribute per column. The second result is false
// for types WebGPU cannot fetch as vertex attributes (8/16-bit scalars and
// every float64 kind).
func (t Type) VertexFormat() (gputypes.VertexFormat, bool) {
	if !t.IsValid() {
		return 0, false
	}
	info := typeInfos[t]
	return info.format, info.hasFormat
}
