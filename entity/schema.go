// Package entity holds the consolidated person, benefit unit and household
// records, and the engine that builds them up one survey extract at a time.
package entity

import (
	"fmt"
	"strconv"

	"github.com/carbocation/frs2csv/numeric"
)

// Kind is the type of value a field holds.
type Kind int

const (
	Number Kind = iota
	Bool
	Label
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Label:
		return "label"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Field declares one column of an entity type.
type Field struct {
	Name    string
	Kind    Kind
	Default string // initial value of a Label field
}

// Value is one field's content.
type Value struct {
	Kind  Kind
	Num   float64
	Bool  bool
	Label string
}

// String renders the value for a delimited output file.
func (v Value) String() string {
	switch v.Kind {
	case Bool:
		if v.Bool {
			return "True"
		}
		return "False"
	case Label:
		return v.Label
	}
	return numeric.Format(v.Num)
}

// Schema is the fixed, ordered field set of one entity type. Declare every
// field before creating records; a Schema must not change once records exist.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema returns an empty schema.
func NewSchema(name string) *Schema {
	return &Schema{name: name, index: make(map[string]int)}
}

// Name of the entity type.
func (s *Schema) Name() string {
	return s.name
}

func (s *Schema) declare(f Field) int {
	if _, exists := s.index[f.Name]; exists {
		panic(fmt.Sprintf("entity: %s field %q declared twice", s.name, f.Name))
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
	return len(s.fields) - 1
}

// Number declares a numeric field, initially 0.
func (s *Schema) Number(name string) NumberField {
	return NumberField{handle{s, s.declare(Field{Name: name, Kind: Number})}}
}

// Bool declares a boolean field, initially false.
func (s *Schema) Bool(name string) BoolField {
	return BoolField{handle{s, s.declare(Field{Name: name, Kind: Bool})}}
}

// Label declares a categorical or identifier field, initially dflt.
func (s *Schema) Label(name, dflt string) LabelField {
	return LabelField{handle{s, s.declare(Field{Name: name, Kind: Label, Default: dflt})}}
}

// Fields returns the declared fields in order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Columns returns the declared field names in order.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Lookup finds a field by name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, exists := s.index[name]
	if !exists {
		return Field{}, false
	}
	return s.fields[i], true
}

// NewRecord returns a record with every field at its initial value.
func (s *Schema) NewRecord() *Record {
	rec := &Record{
		schema: s,
		values: make([]Value, len(s.fields)),
		set:    make([]bool, len(s.fields)),
	}
	for i, f := range s.fields {
		rec.values[i] = Value{Kind: f.Kind, Label: f.Default}
	}
	return rec
}

// Handle identifies a declared field.
type Handle interface {
	Name() string
	position() (*Schema, int)
}

type handle struct {
	schema *Schema
	i      int
}

func (h handle) Name() string {
	if h.schema == nil {
		return ""
	}
	return h.schema.fields[h.i].Name
}

// Valid is false for the zero handle.
func (h handle) Valid() bool {
	return h.schema != nil
}

func (h handle) position() (*Schema, int) {
	return h.schema, h.i
}

// NumberField is a handle to a numeric field.
type NumberField struct{ handle }

// BoolField is a handle to a boolean field.
type BoolField struct{ handle }

// LabelField is a handle to a label field.
type LabelField struct{ handle }
