package buffer

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

// instanceLayout mixes every kind of field: byte, vector, matrix, scalar.
func instanceLayout() *Layout {
	return MustLayout(
		F("id", Int8),
		F("color", Float32Vec3),
		F("xf", Float32Mat4),
		F("t", Float32),
	)
}

func TestLayoutOffsets(t *testing.T) {
	l := instanceLayout()
	if l.Size() != 81 {
		t.Errorf("stride = %d, want 81", l.Size())
	}
	if l.Len() != 4 {
		t.Errorf("Len = %d, want 4", l.Len())
	}
	tests := []struct {
		name   string
		offset int
		end    int
		index  int
	}{
		{"id", 0, 1, 0},
		{"color", 1, 13, 1},
		{"xf", 13, 77, 2},
		{"t", 77, 81, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := l.Get(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if f.Offset != tt.offset || f.End() != tt.end || f.Index != tt.index {
				t.Errorf("offset %d end %d index %d, want %d %d %d", f.Offset, f.End(), f.Index, tt.offset, tt.end, tt.index)
			}
			byIndex, err := l.Field(tt.index)
			if err != nil || byIndex != f {
				t.Errorf("Field(%d) = %v, %v", tt.index, byIndex, err)
			}
		})
	}
}

func TestLayoutLookupErrors(t *testing.T) {
	l := instanceLayout()
	if _, err := l.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing): err = %v, want ErrNotFound", err)
	}
	if l.Has("missing") || !l.Has("xf") {
		t.Error("Has reports wrong membership")
	}
	for _, i := range []int{-1, 4} {
		if _, err := l.Field(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Field(%d): err = %v, want ErrOutOfRange", i, err)
		}
	}
}

func TestNewLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		specs []FieldSpec
	}{
		{"no fields", nil},
		{"empty name", []FieldSpec{F("", Float32)}},
		{"invalid type", []FieldSpec{F("p", InvalidType)}},
		{"out of range type", []FieldSpec{F("p", Type(200))}},
		{"duplicate", []FieldSpec{F("p", Float32), F("p", Int8)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLayout(tt.specs...); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}

	defer func() {
		if recover() == nil {
			t.Error("MustLayout() should panic")
		}
	}()
	MustLayout()
}

func TestLayoutImmutable(t *testing.T) {
	l := instanceLayout()
	fields := l.Fields()
	fields[0].Offset = 99
	if f, _ := l.Field(0); f.Offset != 0 {
		t.Error("Fields returned the internal slice")
	}
}

func TestLayoutEqual(t *testing.T) {
	a, b := instanceLayout(), instanceLayout()
	if !a.Equal(b) || !a.Equal(a) {
		t.Error("identical layouts should be equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
	reordered := MustLayout(F("color", Float32Vec3), F("id", Int8), F("xf", Float32Mat4), F("t", Float32))
	if a.Equal(reordered) {
		t.Error("field order should matter")
	}
}

func TestLayoutString(t *testing.T) {
	l := MustLayout(F("p", Float32Vec2), F("c", Uint8))
	want := "Layout{p:FLOAT_VEC2@0, c:UNSIGNED_BYTE@8; size=9}"
	if got := l.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLayoutVertexAttributes(t *testing.T) {
	l := MustLayout(
		F("position", Float32Vec3),
		F("xf", Float32Mat2),
		F("id", Uint32),
	)
	attrs, err := l.VertexAttributes(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
		{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 2},
		{Format: gputypes.VertexFormatFloat32x2, Offset: 20, ShaderLocation: 3},
		{Format: gputypes.VertexFormatUint32, Offset: 28, ShaderLocation: 4},
	}
	if len(attrs) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(attrs), len(want))
	}
	for i := range want {
		if attrs[i] != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, attrs[i], want[i])
		}
	}
	if l.Locations() != 4 {
		t.Errorf("Locations = %d, want 4", l.Locations())
	}

	vbl, err := l.VertexBufferLayout(gputypes.VertexStepModeInstance, 1)
	if err != nil {
		t.Fatal(err)
	}
	if vbl.ArrayStride != 32 || vbl.StepMode != gputypes.VertexStepModeInstance || len(vbl.Attributes) != 4 {
		t.Errorf("VertexBufferLayout = %+v", vbl)
	}
}

func TestLayoutVertexAttributesUnsupported(t *testing.T) {
	for _, typ := range []Type{Int8, Uint16, Float64, Float64Vec3, Float64Mat4} {
		l := MustLayout(F("p", Float32), F("x", typ))
		if _, err := l.VertexAttributes(0); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: err = %v, want ErrUnsupported", typ, err)
		}
		if _, err := l.VertexBufferLayout(gputypes.VertexStepModeVertex, 0); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: VertexBufferLayout err = %v", typ, err)
		}
	}
}
