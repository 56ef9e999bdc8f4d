package buffer

import (
	"encoding/binary"
	"math"
)

// ne is the byte order of packed values: the native order of the host,
// which is the order device uploads expect.
var ne = binary.NativeEndian

// normalize maps an array-style index into [0, size]. Negative values
// count back from size.
func normalize(i, size int) int {
	if i < 0 {
		return max(i+size, 0)
	}
	return min(i, size)
}

// putScalar encodes v as the scalar type t at the start of dst.
func putScalar(dst []byte, t Type, v float64) {
	switch t {
	case Int8:
		dst[0] = byte(int8(v))
	case Uint8:
		dst[0] = uint8(v)
	case Int16:
		ne.PutUint16(dst, uint16(int16(v)))
	case Uint16:
		ne.PutUint16(dst, uint16(v))
	case Int32:
		ne.PutUint32(dst, uint32(int32(v)))
	case Uint32:
		ne.PutUint32(dst, uint32(v))
	case Float32:
		ne.PutUint32(dst, math.Float32bits(float32(v)))
	case Float64:
		ne.PutUint64(dst, math.Float64bits(v))
	}
}

// scalar decodes the scalar type t from the start of src.
func scalar(src []byte, t Type) float64 {
	switch t {
	case Int8:
		return float64(int8(src[0]))
	case Uint8:
		return float64(src[0])
	case Int16:
		return float64(int16(ne.Uint16(src)))
	case Uint16:
		return float64(ne.Uint16(src))
	case Int32:
		return float64(int32(ne.Uint32(src)))
	case Uint32:
		return float64(ne.Uint32(src))
	case Float32:
		return float64(math.Float32frombits(ne.Uint32(src)))
	case Float64:
		return math.Float64frombits(ne.Uint64(src))
	}
	return 0
}

// componentIndex returns the storage position of the component at
// (column, row) in a column-major value with the given number of rows.
func componentIndex(column, row, rows int) int {
	return column*rows + row
}

// encode writes values, given in row-major traversal order, into dst using
// the column-major storage of t.
func encode(dst []byte, t Type, values []float64) {
	comp := t.Component()
	cs := scalarSizes[comp]
	cols, rows := t.Columns(), t.Rows()
	for r := range rows {
		for c := range cols {
			putScalar(dst[componentIndex(c, r, rows)*cs:], comp, values[r*cols+c])
		}
	}
}

// decode reads the value of type t from src into out, in row-major
// traversal order.
func decode(src []byte, t Type, out []float64) {
	comp := t.Component()
	cs := scalarSizes[comp]
	cols, rows := t.Columns(), t.Rows()
	for r := range rows {
		for c := range cols {
			out[r*cols+c] = scalar(src[componentIndex(c, r, rows)*cs:], comp)
		}
	}
}

func putFloat32s(dst []byte, values []float32) {
	for i, v := range values {
		ne.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

func getFloat32s(src []byte, out []float32) {
	for i := range out {
		out[i] = math.Float32frombits(ne.Uint32(src[i*4:]))
	}
}

func putFloat64s(dst []byte, values []float64) {
	for i, v := range values {
		ne.PutUint64(dst[i*8:], math.Float64bits(v))
	}
}

func getFloat64s(src []byte, out []float64) {
	for i := range out {
		out[i] = math.Float64frombits(ne.Uint64(src[i*8:]))
	}
}

func putInt32s(dst []byte, values []int32) {
	for i, v := range values {
		ne.PutUint32(dst[i*4:], uint32(v))
	}
}

func getInt32s(src []byte, out []int32) {
	for i := range out {
		out[i] = int32(ne.Uint32(src[i*4:]))
	}
}

func putUint32s(dst []byte, values []uint32) {
	for i, v := range values {
		ne.PutUint32(dst[i*4:], v)
	}
}

func getUint32s(src []byte, out []uint32) {
	for i := range out {
		out[i] = ne.Uint32(src[i*4:])
	}
}

// transpose copies the n×n matrix m into out with rows and columns
// swapped. It converts between row-major values and column-major storage.
func transpose[T float32 | float64](m []T, out []T, n int) {
	for r := range n {
		for c := range n {
			out[c*n+r] = m[r*n+c]
		}
	}
}
