package buffer_test

import (
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/buffer"
)

func ExampleRecordBuffer() {
	layout := buffer.MustLayout(
		buffer.F("position", buffer.Float32Vec3),
		buffer.F("color", buffer.Float32Vec4),
	)
	vertices := buffer.NewRecordBuffer(layout, buffer.WithCapacity(3))
	for i, p := range []f32.Vec3{{0, 1, 0}, {-1, -1, 0}, {1, -1, 0}} {
		_ = vertices.SetVec3(i, "position", p)
		_ = vertices.SetVec4(i, "color", f32.Vec4{1, 1, 1, 1})
	}
	fmt.Println(layout)
	fmt.Println(vertices.Size(), vertices.ByteLength())
	// Output:
	// Layout{position:FLOAT_VEC3@0, color:FLOAT_VEC4@12; size=28}
	// 3 84
}

func ExampleFaceBuffer() {
	faces := buffer.NewFaceBuffer(2).Push(0, 1, 2).Push(2, 1, 3)
	for i, f := range faces.All() {
		fmt.Println(i, f)
	}
	fmt.Println(faces.ByteLength(), "bytes")
	// Output:
	// 0 [0 1 2]
	// 1 [2 1 3]
	// 12 bytes
}

func ExampleByteBuffer_CopyWithin() {
	b := buffer.NewByteBuffer(5).PushUint8(1, 2, 3, 4, 5)
	b.CopyWithin(-2, 0, 2)
	fmt.Println(b.Data())
	// Output: [1 2 3 1 2]
}
