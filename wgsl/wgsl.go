// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgsl generates WGSL vertex shader inputs matching a record
// layout, so that shader locations, types and the vertex buffer layout
// returned by [buffer.Layout.VertexBufferLayout] always agree.
//
// Matrix fields take one location per column and appear as one member
// per column, named after the field with a _c0, _c1, ... suffix.
package wgsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/buffer"
)

// ErrInvalidIdentifier is returned when a struct or field name cannot be
// used as a WGSL identifier.
var ErrInvalidIdentifier = errors.New("wgsl: invalid identifier")

// ClipPosition is the name of the clip-space position member of the
// VertexOutput struct emitted by PassThrough.
const ClipPosition = "clip_position"

// member is one struct member of a vertex input.
type member struct {
	name     string
	wgslType string
	location uint32
	integer  bool
	field    buffer.Field
	column   int // -1 for non-matrix fields
}

// scalarName maps component types to WGSL scalar type names.
var scalarName = map[buffer.Type]string{
	buffer.Float32: "f32",
	buffer.Int32:   "i32",
	buffer.Uint32:  "u32",
}

// typeName returns the WGSL type of one column of t.
func typeName(t buffer.Type) (string, error) {
	s, ok := scalarName[t.Component()]
	if !ok {
		return "", fmt.Errorf("%w: %s has no WGSL vertex input type", buffer.ErrUnsupported, t)
	}
	if t.Rows() == 1 {
		return s, nil
	}
	return fmt.Sprintf("vec%d<%s>", t.Rows(), s), nil
}

func members(layout *buffer.Layout, firstLocation uint32) ([]member, error) {
	var out []member
	seen := make(map[string]bool)
	location := firstLocation
	for _, f := range layout.All() {
		if err := checkIdentifier(f.Name); err != nil {
			return nil, err
		}
		wt, err := typeName(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		integer := f.Type.Component() != buffer.Float32
		if !f.Type.IsMatrix() {
			out = append(out, member{name: f.Name, wgslType: wt, location: location, integer: integer, field: f, column: -1})
			location++
		} else {
			for c := range f.Type.Columns() {
				out = append(out, member{
					name:     fmt.Sprintf("%s_c%d", f.Name, c),
					wgslType: wt,
					location: location,
					integer:  integer,
					field:    f,
					column:   c,
				})
				location++
			}
		}
	}
	for _, m := range out {
		if seen[m.name] {
			return nil, fmt.Errorf("%w: duplicate member %q", ErrInvalidIdentifier, m.name)
		}
		seen[m.name] = true
	}
	return out, nil
}

// VertexInput returns a WGSL struct declaration named structName with one
// @location member per field column of layout, numbering locations from
// firstLocation.
func VertexInput(layout *buffer.Layout, structName string, firstLocation uint32) (string, error) {
	if layout == nil {
		return "", fmt.Errorf("%w: nil layout", buffer.ErrInvalidArgument)
	}
	if err := checkIdentifier(structName); err != nil {
		return "", err
	}
	ms, err := members(layout, firstLocation)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	writeStruct(&sb, structName, ms)
	return sb.String(), nil
}

func writeStruct(sb *strings.Builder, name string, ms []member) {
	fmt.Fprintf(sb, "struct %s {\n", name)
	for _, m := range ms {
		fmt.Fprintf(sb, "    @location(%d) %s: %s,\n", m.location, m.name, m.wgslType)
	}
	sb.WriteString("}\n")
}

// PassThrough returns a complete vertex shader, entry point vs_main, that
// reads records of layout from locations 0.. and forwards every field
// unchanged to the same output locations. The first float vector or
// scalar field, if any, also becomes the clip-space position.
func PassThrough(layout *buffer.Layout) (string, error) {
	if layout == nil {
		return "", fmt.Errorf("%w: nil layout", buffer.ErrInvalidArgument)
	}
	ms, err := members(layout, 0)
	if err != nil {
		return "", err
	}
	for _, m := range ms {
		if m.name == ClipPosition {
			return "", fmt.Errorf("%w: %q is reserved for the output position", ErrInvalidIdentifier, m.name)
		}
	}

	var sb strings.Builder
	writeStruct(&sb, "VertexInput", ms)
	sb.WriteString("\nstruct VertexOutput {\n")
	fmt.Fprintf(&sb, "    @builtin(position) %s: vec4<f32>,\n", ClipPosition)
	for _, m := range ms {
		interp := ""
		if m.integer {
			interp = " @interpolate(flat)"
		}
		fmt.Fprintf(&sb, "    @location(%d)%s %s: %s,\n", m.location, interp, m.name, m.wgslType)
	}
	sb.WriteString("}\n\n")

	sb.WriteString("@vertex\nfn vs_main(in: VertexInput) -> VertexOutput {\n")
	sb.WriteString("    var out: VertexOutput;\n")
	fmt.Fprintf(&sb, "    out.%s = %s;\n", ClipPosition, clipExpression(ms))
	for _, m := range ms {
		fmt.Fprintf(&sb, "    out.%s = in.%s;\n", m.name, m.name)
	}
	sb.WriteString("    return out;\n}\n")
	return sb.String(), nil
}

// clipExpression builds a vec4<f32> from the first float non-matrix member.
func clipExpression(ms []member) string {
	for _, m := range ms {
		if m.integer || m.column >= 0 {
			continue
		}
		ref := "in." + m.name
		switch m.field.Type.Rows() {
		case 1:
			return fmt.Sprintf("vec4<f32>(%s, 0.0, 0.0, 1.0)", ref)
		case 2:
			return fmt.Sprintf("vec4<f32>(%s, 0.0, 1.0)", ref)
		case 3:
			return fmt.Sprintf("vec4<f32>(%s, 1.0)", ref)
		default:
			return ref
		}
	}
	return "vec4<f32>(0.0, 0.0, 0.0, 1.0)"
}

// Validate compiles source with naga and returns the SPIR-V binary.
func Validate(source string) ([]byte, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("wgsl: failed to compile shader: %w", err)
	}
	return spirv, nil
}

// reserved holds WGSL keywords and reserved words that commonly collide
// with field names.
var reserved = map[string]bool{
	"alias": true, "array": true, "bool": true, "break": true, "case": true,
	"const": true, "continue": true, "default": true, "discard": true,
	"else": true, "enable": true, "f16": true, "f32": true, "false": true,
	"fn": true, "for": true, "i32": true, "if": true, "let": true,
	"loop": true, "mat2x2": true, "mat3x3": true, "mat4x4": true,
	"override": true, "ptr": true, "return": true, "sampler": true,
	"struct": true, "switch": true, "true": true, "u32": true, "var": true,
	"vec2": true, "vec3": true, "vec4": true, "while": true,
}

// checkIdentifier accepts ASCII WGSL identifiers: a letter or underscore
// followed by letters, digits or underscores, excluding "_", names
// starting with "__" and reserved words.
func checkIdentifier(name string) error {
	if name == "" || name == "_" || strings.HasPrefix(name, "__") || reserved[name] {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}
