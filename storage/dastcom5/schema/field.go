package schema

import (
	"fmt"

	"github.com/Trinoooo/dastcom/errs"
)

// Kind is the primitive type of a field as stored on disk.
type Kind int8

const (
	KindInvalid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindFloat32
	KindFloat64
	KindBytes // fixed width byte string
)

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBytes:
		return "bytes"
	default:
		return "invalid"
	}
}

// IsInt reports whether values of the kind decode to a signed integer.
func (k Kind) IsInt() bool {
	return k == KindInt8 || k == KindInt16 || k == KindInt32
}

// IsFloat reports whether values of the kind decode to a float.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k Kind) width() int {
	switch k {
	case KindInt8:
		return 1
	case KindInt16:
		return 2
	case KindInt32, KindFloat32:
		return 4
	case KindFloat64:
		return 8
	default:
		return 0
	}
}

// Field describes one fixed width slot of a record.
type Field struct {
	Name  string
	Kind  Kind
	Width int
}

func (f Field) String() string {
	if f.Kind == KindBytes {
		return fmt.Sprintf("%s|S%d", f.Name, f.Width)
	}
	return fmt.Sprintf("%s|%s", f.Name, f.Kind)
}

func i8(name string) Field  { return Field{Name: name, Kind: KindInt8, Width: 1} }
func i16(name string) Field { return Field{Name: name, Kind: KindInt16, Width: 2} }
func i32(name string) Field { return Field{Name: name, Kind: KindInt32, Width: 4} }
func f32(name string) Field { return Field{Name: name, Kind: KindFloat32, Width: 4} }
func f64(name string) Field { return Field{Name: name, Kind: KindFloat64, Width: 8} }

func str(name string, width int) Field {
	return Field{Name: name, Kind: KindBytes, Width: width}
}

// Schema is an ordered, fixed layout of fields. Offsets are computed once
// when the schema is built; a schema is immutable afterwards.
type Schema struct {
	name    string
	fields  []Field
	offsets []int
	index   map[string]int
	size    int
}

// New builds a schema from field descriptors. Names must be unique and
// numeric fields must carry the width of their kind.
func New(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:    name,
		fields:  make([]Field, len(fields)),
		offsets: make([]int, len(fields)),
		index:   make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)

	for i, f := range s.fields {
		if f.Name == "" {
			return nil, errs.NewInvalidParamErr().WithMsg("schema %s: field #%d has no name", name, i)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, errs.NewInvalidParamErr().WithMsg("schema %s: duplicate field %s", name, f.Name)
		}
		switch {
		case f.Kind == KindBytes && f.Width <= 0:
			return nil, errs.NewInvalidParamErr().WithMsg("schema %s: field %s has width %d", name, f.Name, f.Width)
		case f.Kind != KindBytes && (f.Kind.width() == 0 || f.Kind.width() != f.Width):
			return nil, errs.NewInvalidParamErr().WithMsg("schema %s: field %s kind %s width %d", name, f.Name, f.Kind, f.Width)
		}
		s.index[f.Name] = i
		s.offsets[i] = s.size
		s.size += f.Width
	}
	return s, nil
}

func mustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	return s.name
}

// Size is the record stride in bytes.
func (s *Schema) Size() int {
	return s.size
}

// Len is the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the field list in layout order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s *Schema) FieldAt(i int) Field {
	return s.fields[i]
}

func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Offset returns the byte offset of a field from the start of the record.
func (s *Schema) Offset(name string) (int, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.offsets[i], true
}

func (s *Schema) indexOf(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, errs.NewFieldNotFoundErr().WithMsg("%s.%s", s.name, name)
	}
	return i, nil
}
