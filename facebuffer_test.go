package buffer

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
)

func faces(fs ...Face) *FaceBuffer {
	return NewFaceBuffer(len(fs)).PushFace(fs...)
}

func TestFaceBufferPushExactFit(t *testing.T) {
	f := NewFaceBuffer(1)
	f.Push(0, 1, 2)
	if f.Capacity() != 1 || f.Size() != 1 {
		t.Errorf("capacity %d size %d, want 1 and 1", f.Capacity(), f.Size())
	}
	f.Push(2, 1, 3)
	if f.Capacity() != 2 || f.Size() != 2 {
		t.Errorf("capacity %d size %d, want 2 and 2", f.Capacity(), f.Size())
	}
	if f.ByteLength() != 12 || len(f.Bytes()) != 12 {
		t.Errorf("ByteLength %d, len(Bytes) %d, want 12", f.ByteLength(), len(f.Bytes()))
	}
	if got := f.Indices(); !slices.Equal(got, []uint16{0, 1, 2, 2, 1, 3}) {
		t.Errorf("Indices = %v", got)
	}
}

func TestFaceBufferEqualAfterDelete(t *testing.T) {
	a := NewFaceBuffer(3).Push(1, 2, 3).Push(5, 6, 7)
	b := NewFaceBuffer(3).Push(1, 2, 3).Push(3, 4, 5).Push(5, 6, 7)
	if err := b.Delete(1, 1); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("buffers with the same faces in use should be equal")
	}
	if !a.Equal(a) {
		t.Error("Equal is not reflexive")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
}

func TestFaceBufferDelete(t *testing.T) {
	f := faces(Face{1, 1, 1}, Face{2, 2, 2}, Face{3, 3, 3}, Face{4, 4, 4})
	if err := f.Delete(1, 2); err != nil {
		t.Fatal(err)
	}
	if f.Size() != 2 {
		t.Fatalf("size = %d, want 2", f.Size())
	}
	if f.Face(0) != (Face{1, 1, 1}) || f.Face(1) != (Face{4, 4, 4}) {
		t.Errorf("faces = %v, %v", f.Face(0), f.Face(1))
	}

	tests := []struct {
		name         string
		index, count int
	}{
		{"past end", 1, 2},
		{"negative index", -1, 1},
		{"negative count", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.Delete(tt.index, tt.count); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("err = %v, want ErrOutOfRange", err)
			}
		})
	}
}

func TestFaceBufferCapacityTruncatesSize(t *testing.T) {
	f := NewFaceBuffer(3).Push(1, 2, 3).Push(4, 5, 6).Push(7, 8, 9)
	if err := f.SetCapacity(1); err != nil {
		t.Fatal(err)
	}
	if f.Size() != 1 || f.Capacity() != 1 || f.Face(0) != (Face{1, 2, 3}) {
		t.Errorf("size %d capacity %d face %v", f.Size(), f.Capacity(), f.Face(0))
	}
	if err := f.SetCapacity(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetCapacity(-1): err = %v", err)
	}
}

func TestFaceBufferSetPastEnd(t *testing.T) {
	f := NewFaceBuffer(2)
	if err := f.Set(3, 3, 2, 1); err != nil {
		t.Fatal(err)
	}
	if f.Size() != 4 || f.Capacity() != 4 {
		t.Fatalf("size %d capacity %d, want 4", f.Size(), f.Capacity())
	}
	for i := range 3 {
		if f.Face(i) != (Face{}) {
			t.Errorf("face %d = %v, want zero", i, f.Face(i))
		}
	}
	if f.Face(3) != (Face{3, 2, 1}) {
		t.Errorf("face 3 = %v, want [3 2 1]", f.Face(3))
	}

	if err := f.Set(0, 9, 9, 9); err != nil || f.Size() != 4 {
		t.Errorf("Set(0): err %v size %d", err, f.Size())
	}
	if err := f.Set(-1, 0, 0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Set(-1): err = %v", err)
	}
}

func TestFaceBufferSetSizeZeroFills(t *testing.T) {
	f := faces(Face{1, 2, 3}, Face{4, 5, 6})
	_ = f.SetSize(1)
	_ = f.SetSize(2)
	if f.Face(1) != (Face{}) {
		t.Errorf("regrown face = %v, want zero", f.Face(1))
	}
	if err := f.SetSize(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetSize(-1): err = %v", err)
	}
}

func TestFaceBufferAccessors(t *testing.T) {
	f := faces(Face{1, 2, 3}, Face{4, 5, 6})
	if !f.Has(1) || f.Has(2) || f.Has(-1) {
		t.Error("Has reports wrong bounds")
	}
	if f.Vertex(1, 2) != 6 {
		t.Errorf("Vertex(1, 2) = %d, want 6", f.Vertex(1, 2))
	}

	out := make([]uint16, 3)
	got := f.FaceInto(0, out)
	if &got[0] != &out[0] || !slices.Equal(got, []uint16{1, 2, 3}) {
		t.Errorf("FaceInto did not reuse the output: %v", got)
	}
	if got := f.FaceInto(1, nil); !slices.Equal(got, []uint16{4, 5, 6}) {
		t.Errorf("FaceInto(1, nil) = %v", got)
	}

	var seen []Face
	for i, face := range f.All() {
		if i != len(seen) {
			t.Errorf("index %d out of order", i)
		}
		seen = append(seen, face)
	}
	if !slices.Equal(seen, []Face{{1, 2, 3}, {4, 5, 6}}) {
		t.Errorf("All = %v", seen)
	}

	if f.Target() != ElementArrayBuffer || f.IndexFormat() != gputypes.IndexFormatUint16 {
		t.Error("wrong target or index format")
	}
	f.SetUsage(DynamicDraw)
	if f.Usage() != DynamicDraw {
		t.Errorf("Usage = %v", f.Usage())
	}

	defer func() {
		if recover() == nil {
			t.Error("Vertex(0, 3) should panic")
		}
	}()
	f.Vertex(0, 3)
}

func TestFaceBufferCopy(t *testing.T) {
	dst := NewFaceBuffer(1).Push(9, 9, 9)
	src := faces(Face{1, 2, 3}, Face{4, 5, 6}, Face{7, 8, 9})

	if err := dst.Copy(src); err != nil {
		t.Fatal(err)
	}
	if dst.Size() != 1 || dst.Capacity() != 3 {
		t.Errorf("size %d capacity %d, want 1 and 3", dst.Size(), dst.Capacity())
	}
	if err := dst.SetSize(3); err != nil {
		t.Fatal(err)
	}
	// SetSize zeroes only faces past the old size.
	if dst.Face(0) != (Face{1, 2, 3}) {
		t.Errorf("face 0 = %v", dst.Face(0))
	}

	if err := dst.CopyRange(src, 1, 2); err != nil {
		t.Fatal(err)
	}
	if dst.Face(0) != (Face{4, 5, 6}) || dst.Face(1) != (Face{7, 8, 9}) {
		t.Errorf("CopyRange = %v, %v", dst.Face(0), dst.Face(1))
	}
	if err := dst.CopyRange(src, 2, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("CopyRange past end: err = %v", err)
	}
	if err := dst.Copy(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Copy(nil): err = %v", err)
	}
}

func TestFaceBufferConcat(t *testing.T) {
	a := faces(Face{1, 1, 1})
	b := faces(Face{2, 2, 2}, Face{3, 3, 3})
	a.Concat(b, nil)
	if a.Size() != 3 || a.Capacity() != 3 {
		t.Errorf("size %d capacity %d, want 3", a.Size(), a.Capacity())
	}
	a.Concat(a)
	want := []uint16{1, 1, 1, 2, 2, 2, 3, 3, 3, 1, 1, 1, 2, 2, 2, 3, 3, 3}
	if !slices.Equal(a.Indices(), want) {
		t.Errorf("self concat = %v", a.Indices())
	}
}

func TestFaceBufferReadOutOfRange(t *testing.T) {
	f := NewFaceBuffer(1).Push(1, 2, 3)
	tests := []struct {
		name string
		read func()
	}{
		{"Face past capacity", func() { f.Face(5) }},
		{"Face negative", func() { f.Face(-1) }},
		{"FaceInto past capacity", func() { f.FaceInto(1, nil) }},
		{"Vertex negative face", func() { f.Vertex(-1, 0) }},
		{"Vertex past capacity", func() { f.Vertex(1, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errors.Is(err, ErrOutOfRange) {
					t.Errorf("recovered %v, want an error wrapping ErrOutOfRange", err)
				}
			}()
			tt.read()
		})
	}
}

func TestFaceBufferCopyWithinAndFill(t *testing.T) {
	f0, f1, f2, f3 := Face{0, 0, 0}, Face{1, 1, 1}, Face{2, 2, 2}, Face{3, 3, 3}
	x := Face{9, 9, 9}
	tests := []struct {
		name string
		op   func(*FaceBuffer)
		want []Face
	}{
		{"copyWithin", func(f *FaceBuffer) { f.CopyWithin(0, 2, 4) }, []Face{f2, f3, f2, f3}},
		{"copyWithin negative", func(f *FaceBuffer) { f.CopyWithin(-1, 0, 1) }, []Face{f0, f1, f2, f0}},
		{"copyWithin clamped", func(f *FaceBuffer) { f.CopyWithin(2, 0, 100) }, []Face{f0, f1, f0, f1}},
		{"fill", func(f *FaceBuffer) { f.Fill(x, 1, 3) }, []Face{f0, x, x, f3}},
		{"fill negative", func(f *FaceBuffer) { f.Fill(x, -2, 100) }, []Face{f0, f1, x, x}},
		{"fill empty", func(f *FaceBuffer) { f.Fill(x, 3, 1) }, []Face{f0, f1, f2, f3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := faces(f0, f1, f2, f3)
			tt.op(f)
			var got []Face
			for _, face := range f.All() {
				got = append(got, face)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if f.Size() != 4 || f.Capacity() != 4 {
				t.Errorf("size %d capacity %d changed", f.Size(), f.Capacity())
			}
		})
	}
}

func TestFaceBufferWrap(t *testing.T) {
	data := []uint16{1, 2, 3, 4, 5, 6, 7}
	var f FaceBuffer
	if err := f.Wrap(data, 1); err != nil {
		t.Fatal(err)
	}
	if f.Capacity() != 2 || f.Size() != 1 {
		t.Errorf("capacity %d size %d, want 2 and 1", f.Capacity(), f.Size())
	}
	// No copy: writes are visible in data.
	_ = f.Set(0, 9, 9, 9)
	if data[0] != 9 {
		t.Error("Wrap copied the backing array")
	}
	if err := f.Wrap(data, 3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Wrap with size past capacity: err = %v", err)
	}
}

func TestFaceBufferHelpers(t *testing.T) {
	if f := EmptyFaceBuffer(); f.Capacity() != DefaultCapacity || f.Size() != 0 {
		t.Errorf("EmptyFaceBuffer() capacity %d size %d", f.Capacity(), f.Size())
	}
	if f := EmptyFaceBuffer(4); f.Capacity() != 4 {
		t.Errorf("EmptyFaceBuffer(4) capacity %d", f.Capacity())
	}
	if CopyFaceBuffer(nil) != nil {
		t.Error("CopyFaceBuffer(nil) should be nil")
	}

	orig := faces(Face{1, 2, 3})
	orig.SetUsage(StreamDraw)
	c := CopyFaceBuffer(orig)
	if c == orig || !c.Equal(orig) || c.Usage() != StreamDraw {
		t.Error("CopyFaceBuffer should return an equal, independent clone")
	}
	_ = c.Set(0, 0, 0, 0)
	if orig.Face(0) != (Face{1, 2, 3}) {
		t.Error("clone shares memory with the original")
	}

	tests := []struct{ bytes, want int }{
		{0, 0}, {5, 0}, {6, 1}, {13, 2}, {-6, 0},
	}
	for _, tt := range tests {
		if got := FaceCount(tt.bytes); got != tt.want {
			t.Errorf("FaceCount(%d) = %d, want %d", tt.bytes, got, tt.want)
		}
	}
}

func TestFaceBufferBytesNativeOrder(t *testing.T) {
	f := faces(Face{0x0102, 0, 0})
	if got := ne.Uint16(f.Bytes()); got != 0x0102 {
		t.Errorf("first index through Bytes = %#x, want 0x0102", got)
	}
	if NewFaceBuffer(0).Bytes() != nil {
		t.Error("Bytes of an empty backing region should be nil")
	}
}

func TestFaceBufferVersion(t *testing.T) {
	f := NewFaceBuffer(2)
	v := f.Version()
	f.Push(0, 1, 2)
	if f.Version() == v {
		t.Error("Push did not change the version")
	}
	v = f.Version()
	f.Commit()
	if f.Version() == v {
		t.Error("Commit did not change the version")
	}
}
