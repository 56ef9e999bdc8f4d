package buffer

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Usage is an opaque hint describing how often buffer content changes and
// how the device uses it. It is forwarded unchanged to the device layer and
// has no effect on buffer algorithms. The zero value is StaticDraw.
type Usage uint8

// Usage hints.
const (
	StaticDraw Usage = iota
	StaticRead
	StaticCopy
	DynamicDraw
	DynamicRead
	DynamicCopy
	StreamDraw
	StreamRead
	StreamCopy

	usageCount
)

var usageLabels = [usageCount]string{
	StaticDraw:  "STATIC_DRAW",
	StaticRead:  "STATIC_READ",
	StaticCopy:  "STATIC_COPY",
	DynamicDraw: "DYNAMIC_DRAW",
	DynamicRead: "DYNAMIC_READ",
	DynamicCopy: "DYNAMIC_COPY",
	StreamDraw:  "STREAM_DRAW",
	StreamRead:  "STREAM_READ",
	StreamCopy:  "STREAM_COPY",
}

var usageEnums = [usageCount]uint32{
	StaticDraw:  0x88E4,
	StaticRead:  0x88E5,
	StaticCopy:  0x88E6,
	DynamicDraw: 0x88E8,
	DynamicRead: 0x88E9,
	DynamicCopy: 0x88EA,
	StreamDraw:  0x88E0,
	StreamRead:  0x88E1,
	StreamCopy:  0x88E2,
}

// Usages returns all usage hints in declaration order.
func Usages() []Usage {
	out := make([]Usage, usageCount)
	for i := range out {
		out[i] = Usage(i)
	}
	return out
}

// ParseUsage returns the usage with the given label, such as "DYNAMIC_DRAW".
func ParseUsage(label string) (Usage, error) {
	for u, l := range usageLabels {
		if l == label {
			return Usage(u), nil
		}
	}
	return StaticDraw, fmt.Errorf("%w: usage %q", ErrNotFound, label)
}

// IsValid reports whether u is one of the nine declared hints.
func (u Usage) IsValid() bool {
	return u < usageCount
}

// String returns the stable label of u.
func (u Usage) String() string {
	if !u.IsValid() {
		return fmt.Sprintf("Usage(%d)", uint8(u))
	}
	return usageLabels[u]
}

// GLEnum returns the stable numeric code of u, 0 for invalid values.
func (u Usage) GLEnum() uint32 {
	if !u.IsValid() {
		return 0
	}
	return usageEnums[u]
}

// Target identifies what kind of data a descriptor holds.
type Target uint8

const (
	// ArrayBuffer holds vertex attribute records.
	ArrayBuffer Target = iota
	// ElementArrayBuffer holds vertex indices.
	ElementArrayBuffer
)

// String returns the stable label of t.
func (t Target) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	default:
		return fmt.Sprintf("Target(%d)", uint8(t))
	}
}

// GLEnum returns the stable numeric code of t.
func (t Target) GLEnum() uint32 {
	switch t {
	case ArrayBuffer:
		return 0x8892
	case ElementArrayBuffer:
		return 0x8893
	default:
		return 0
	}
}

// BufferUsage returns the WebGPU usage flags a device buffer needs to hold
// data of this target and receive uploads.
func (t Target) BufferUsage() gputypes.BufferUsage {
	if t == ElementArrayBuffer {
		return gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
	}
	return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
}
