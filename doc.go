// Package buffer packs vertex attribute records and triangle indices into
// tightly laid-out, growable binary buffers ready for upload to a GPU.
//
// # Overview
//
// The package has four building blocks:
//
//   - [Type]: the closed set of scalar, vector and matrix types with their
//     byte widths, labels and WebGPU vertex formats.
//   - [ByteBuffer]: a growable byte buffer with typed push/get/set/delete
//     accessors and array-style bulk operations.
//   - [FaceBuffer]: a growable buffer of triangles, three uint16 indices each.
//   - [Layout] and [RecordBuffer]: named typed fields packed into records,
//     stored in a ByteBuffer and addressed by record index and field name.
//
// # Quick Start
//
//	layout := buffer.MustLayout(
//	    buffer.F("position", buffer.Float32Vec3),
//	    buffer.F("color", buffer.Float32Vec4),
//	)
//	vertices := buffer.NewRecordBuffer(layout, buffer.WithCapacity(3))
//	for i, p := range []f32.Vec3{{0, 1, 0}, {-1, -1, 0}, {1, -1, 0}} {
//	    _ = vertices.SetVec3(i, "position", p)
//	    _ = vertices.SetVec4(i, "color", f32.Vec4{1, 1, 1, 1})
//	}
//
//	faces := buffer.NewFaceBuffer(1).Push(0, 1, 2)
//
// # Size and Capacity
//
// Every buffer keeps a size (the part in use) separate from its capacity
// (the backing region). Growth is exact-fit: when an operation needs more
// room, the backing region is reallocated to exactly the required length,
// never more. Capacity values are therefore predictable, at the cost of a
// reallocation per push once the buffer is full. Set the capacity up front
// when the final size is known.
//
// # Byte Layout
//
// Values are packed without padding in the native byte order of the host.
// Matrices are stored column by column; accessors take and return them in
// row-major order, as the f32/f64 matrix types of golang.org/x/image do.
//
// # Device Upload
//
// [RecordBuffer] and [FaceBuffer] implement [Descriptor], the view consumed
// by package device, which creates device buffers and re-uploads them when
// [Descriptor.Version] changes.
//
// # Logging
//
// The package is silent by default; see [SetLogger].
package buffer
