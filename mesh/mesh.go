// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh builds indexed triangle meshes into buffer record and face
// buffers.
//
// Every mesh uses StandardLayout: a position, a normal and a texture
// coordinate per vertex. Faces index vertices with uint16, so a mesh holds
// at most MaxVertices vertices.
package mesh

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/buffer"
)

// Field names of StandardLayout.
const (
	Position = "position"
	Normal   = "normal"
	UV       = "uv"
)

// MaxVertices is the number of vertices addressable by a uint16 face index.
const MaxVertices = 1 << 16

// ErrTooManyVertices is returned when a mesh would need more than
// MaxVertices vertices.
var ErrTooManyVertices = errors.New("mesh: too many vertices for 16-bit indices")

// StandardLayout is the vertex layout of every generated mesh: 32 bytes
// per vertex.
var StandardLayout = buffer.MustLayout(
	buffer.F(Position, buffer.Float32Vec3),
	buffer.F(Normal, buffer.Float32Vec3),
	buffer.F(UV, buffer.Float32Vec2),
)

// Builder accumulates vertices and faces.
type Builder struct {
	vertices *buffer.RecordBuffer
	faces    *buffer.FaceBuffer
}

// NewBuilder returns an empty builder sized for the given number of
// vertices and faces. Growing past them is allowed.
func NewBuilder(vertices, faces int) *Builder {
	return &Builder{
		vertices: buffer.NewRecordBuffer(StandardLayout, buffer.WithCapacity(vertices)),
		faces:    buffer.NewFaceBuffer(max(faces, 0)),
	}
}

// Vertices returns the vertex records.
func (b *Builder) Vertices() *buffer.RecordBuffer { return b.vertices }

// Faces returns the triangle faces.
func (b *Builder) Faces() *buffer.FaceBuffer { return b.faces }

// VertexCount returns the number of vertices added.
func (b *Builder) VertexCount() int { return b.vertices.Size() }

// FaceCount returns the number of faces added.
func (b *Builder) FaceCount() int { return b.faces.Size() }

// AddVertex appends a vertex and returns its index.
func (b *Builder) AddVertex(position, normal f32.Vec3, uv f32.Vec2) (uint16, error) {
	i := b.vertices.Size()
	if i >= MaxVertices {
		return 0, ErrTooManyVertices
	}
	if err := b.vertices.SetVec3(i, Position, position); err != nil {
		return 0, err
	}
	if err := b.vertices.SetVec3(i, Normal, normal); err != nil {
		return 0, err
	}
	if err := b.vertices.SetVec2(i, UV, uv); err != nil {
		return 0, err
	}
	return uint16(i), nil //nolint:gosec // bounded by MaxVertices
}

// AddTriangle appends a face. Indices must refer to added vertices.
func (b *Builder) AddTriangle(v0, v1, v2 uint16) error {
	n := b.vertices.Size()
	for _, v := range [3]uint16{v0, v1, v2} {
		if int(v) >= n {
			return fmt.Errorf("%w: vertex %d of %d", buffer.ErrOutOfRange, v, n)
		}
	}
	b.faces.Push(v0, v1, v2)
	return nil
}

// AddQuad appends the two triangles (v0, v1, v2) and (v0, v2, v3) of a
// counter-clockwise quad.
func (b *Builder) AddQuad(v0, v1, v2, v3 uint16) error {
	if err := b.AddTriangle(v0, v1, v2); err != nil {
		return err
	}
	return b.AddTriangle(v0, v2, v3)
}

// Quad returns a unit quad in the z=0 plane spanning [-1, 1] on x and y,
// facing +z.
func Quad() *Builder {
	b, err := Grid(1, 1)
	if err != nil {
		panic(err) // unreachable: a 1x1 grid has 4 vertices
	}
	return b
}

// Grid returns a plane subdivided into cols x rows cells, in the z=0 plane
// spanning [-1, 1] on x and y, facing +z. Texture coordinates run from
// (0, 0) at the top-left to (1, 1) at the bottom-right.
func Grid(cols, rows int) (*Builder, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: grid %dx%d", buffer.ErrInvalidArgument, cols, rows)
	}
	nv := (cols + 1) * (rows + 1)
	if nv > MaxVertices {
		return nil, fmt.Errorf("%w: grid %dx%d needs %d", ErrTooManyVertices, cols, rows, nv)
	}
	b := NewBuilder(nv, 2*cols*rows)
	up := f32.Vec3{0, 0, 1}
	for r := 0; r <= rows; r++ {
		v := float32(r) / float32(rows)
		for c := 0; c <= cols; c++ {
			u := float32(c) / float32(cols)
			if _, err := b.AddVertex(f32.Vec3{2*u - 1, 1 - 2*v, 0}, up, f32.Vec2{u, v}); err != nil {
				return nil, err
			}
		}
	}
	stride := cols + 1
	for r := range rows {
		for c := range cols {
			tl := uint16(r*stride + c) //nolint:gosec // bounded by MaxVertices
			tr := tl + 1
			bl := tl + uint16(stride) //nolint:gosec // bounded by MaxVertices
			br := bl + 1
			if err := b.AddQuad(bl, br, tr, tl); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// cubeSides lists the outward normal and the in-plane axes of each side.
var cubeSides = [6]struct {
	normal, right, up f32.Vec3
}{
	{f32.Vec3{0, 0, 1}, f32.Vec3{1, 0, 0}, f32.Vec3{0, 1, 0}},   // front
	{f32.Vec3{0, 0, -1}, f32.Vec3{-1, 0, 0}, f32.Vec3{0, 1, 0}}, // back
	{f32.Vec3{1, 0, 0}, f32.Vec3{0, 0, -1}, f32.Vec3{0, 1, 0}},  // right
	{f32.Vec3{-1, 0, 0}, f32.Vec3{0, 0, 1}, f32.Vec3{0, 1, 0}},  // left
	{f32.Vec3{0, 1, 0}, f32.Vec3{1, 0, 0}, f32.Vec3{0, 0, -1}},  // top
	{f32.Vec3{0, -1, 0}, f32.Vec3{1, 0, 0}, f32.Vec3{0, 0, 1}},  // bottom
}

// Cube returns the cube [-1, 1]^3 with 4 vertices per side, so that each
// side has its own flat normal: 24 vertices and 12 faces.
func Cube() *Builder {
	b := NewBuilder(24, 12)
	corners := [4]struct{ x, y float32 }{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, s := range cubeSides {
		var idx [4]uint16
		for i, c := range corners {
			p := f32.Vec3{
				s.normal[0] + c.x*s.right[0] + c.y*s.up[0],
				s.normal[1] + c.x*s.right[1] + c.y*s.up[1],
				s.normal[2] + c.x*s.right[2] + c.y*s.up[2],
			}
			uv := f32.Vec2{(c.x + 1) / 2, (1 - c.y) / 2}
			v, err := b.AddVertex(p, s.normal, uv)
			if err != nil {
				panic(err) // unreachable: 24 vertices
			}
			idx[i] = v
		}
		if err := b.AddQuad(idx[0], idx[1], idx[2], idx[3]); err != nil {
			panic(err)
		}
	}
	return b
}
