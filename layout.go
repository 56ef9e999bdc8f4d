package buffer

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// FieldSpec names a field and its type, as passed to NewLayout.
type FieldSpec struct {
	Name string
	Type Type
}

// F is shorthand for FieldSpec{Name: name, Type: t}.
func F(name string, t Type) FieldSpec {
	return FieldSpec{Name: name, Type: t}
}

// Field is one resolved field of a Layout.
type Field struct {
	Name string
	Type Type
	// Offset is the byte offset of the field within a record.
	Offset int
	// Index is the ordinal position of the field in its layout.
	Index int
}

// Size returns the byte width of the field.
func (f Field) Size() int { return f.Type.Size() }

// End returns the byte offset just past the field.
func (f Field) End() int { return f.Offset + f.Type.Size() }

// Layout is an immutable, ordered set of named typed fields packed without
// padding. Each field starts where the previous one ends; the layout size
// (the stride of one record) is the sum of all field sizes.
//
// A Layout can be shared by any number of RecordBuffers and goroutines.
type Layout struct {
	fields []Field
	byName map[string]int
	size   int
}

// NewLayout computes field offsets and the record stride in field order.
// Names must be unique and non-empty, types valid, and at least one field
// given.
func NewLayout(specs ...FieldSpec) (*Layout, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: layout has no fields", ErrInvalidArgument)
	}
	l := &Layout{
		fields: make([]Field, len(specs)),
		byName: make(map[string]int, len(specs)),
	}
	offset := 0
	for i, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidArgument, i)
		}
		if !s.Type.IsValid() {
			return nil, fmt.Errorf("%w: field %q has type %s", ErrInvalidArgument, s.Name, s.Type)
		}
		if _, dup := l.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidArgument, s.Name)
		}
		l.fields[i] = Field{Name: s.Name, Type: s.Type, Offset: offset, Index: i}
		l.byName[s.Name] = i
		offset += s.Type.Size()
	}
	l.size = offset
	return l, nil
}

// MustLayout is like NewLayout but panics on error. It is intended for
// package-level layout variables.
func MustLayout(specs ...FieldSpec) *Layout {
	l, err := NewLayout(specs...)
	if err != nil {
		panic(err)
	}
	return l
}

// Size returns the byte width of one record.
func (l *Layout) Size() int { return l.size }

// Len returns the number of fields.
func (l *Layout) Len() int { return len(l.fields) }

// Field returns the field at ordinal position i.
func (l *Layout) Field(i int) (Field, error) {
	if i < 0 || i >= len(l.fields) {
		return Field{}, fmt.Errorf("%w: field index %d of %d", ErrOutOfRange, i, len(l.fields))
	}
	return l.fields[i], nil
}

// Get returns the field with the given name.
func (l *Layout) Get(name string) (Field, error) {
	i, ok := l.byName[name]
	if !ok {
		return Field{}, fmt.Errorf("%w: field %q", ErrNotFound, name)
	}
	return l.fields[i], nil
}

// Has reports whether the layout has a field with the given name.
func (l *Layout) Has(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// Fields returns a copy of the fields in order.
func (l *Layout) Fields() []Field {
	return slices.Clone(l.fields)
}

// All iterates over the fields in order.
func (l *Layout) All() iter.Seq2[int, Field] {
	return func(yield func(int, Field) bool) {
		for i, f := range l.fields {
			if !yield(i, f) {
				return
			}
		}
	}
}

// Equal reports whether o has the same fields, in the same order, as l.
func (l *Layout) Equal(o *Layout) bool {
	if l == o {
		return true
	}
	if l == nil || o == nil {
		return false
	}
	return slices.Equal(l.fields, o.fields)
}

// String lists the fields as name:TYPE@offset.
func (l *Layout) String() string {
	var sb strings.Builder
	sb.WriteString("Layout{")
	for i, f := range l.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s:%s@%d", f.Name, f.Type, f.Offset)
	}
	fmt.Fprintf(&sb, "; size=%d}", l.size)
	return sb.String()
}
