package buffer

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// VertexAttributes returns the WebGPU vertex attributes describing one
// record of l, numbering shader locations from firstLocation in field
// order. Matrix fields occupy one location per column.
func (l *Layout) VertexAttributes(firstLocation uint32) ([]gputypes.VertexAttribute, error) {
	attrs := make([]gputypes.VertexAttribute, 0, len(l.fields))
	location := firstLocation
	for _, f := range l.fields {
		format, ok := f.Type.VertexFormat()
		if !ok {
			return nil, fmt.Errorf("%w: field %q of type %s has no vertex format", ErrUnsupported, f.Name, f.Type)
		}
		for c := range f.Type.Columns() {
			attrs = append(attrs, gputypes.VertexAttribute{
				Format:         format,
				Offset:         uint64(f.Offset + c*f.Type.ColumnSize()),
				ShaderLocation: location,
			})
			location++
		}
	}
	return attrs, nil
}

// VertexBufferLayout returns the WebGPU vertex buffer layout for records
// of l: the array stride is the layout size.
func (l *Layout) VertexBufferLayout(stepMode gputypes.VertexStepMode, firstLocation uint32) (gputypes.VertexBufferLayout, error) {
	attrs, err := l.VertexAttributes(firstLocation)
	if err != nil {
		return gputypes.VertexBufferLayout{}, err
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(l.size),
		StepMode:    stepMode,
		Attributes:  attrs,
	}, nil
}

// Locations returns how many shader locations the layout occupies.
func (l *Layout) Locations() int {
	n := 0
	for _, f := range l.fields {
		n += f.Type.Columns()
	}
	return n
}
