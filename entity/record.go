package entity

import "fmt"

// Record is one person, benefit unit or household. It always carries every
// field its schema declares.
type Record struct {
	schema *Schema
	values []Value
	set    []bool
}

// Schema returns the record's entity type.
func (r *Record) Schema() *Schema {
	return r.schema
}

func (r *Record) slot(h Handle) int {
	s, i := h.position()
	if s != r.schema {
		panic(fmt.Sprintf("entity: field %q does not belong to %s", h.Name(), r.schema.name))
	}
	return i
}

// Num returns a numeric field.
func (r *Record) Num(f NumberField) float64 {
	return r.values[r.slot(f)].Num
}

// SetNum overwrites a numeric field.
func (r *Record) SetNum(f NumberField, v float64) {
	i := r.slot(f)
	r.values[i].Num = v
	r.set[i] = true
}

// Add accumulates into a numeric field.
func (r *Record) Add(f NumberField, v float64) {
	i := r.slot(f)
	r.values[i].Num += v
	r.set[i] = true
}

// Bool returns a boolean field.
func (r *Record) Bool(f BoolField) bool {
	return r.values[r.slot(f)].Bool
}

// SetBool overwrites a boolean field.
func (r *Record) SetBool(f BoolField, v bool) {
	i := r.slot(f)
	r.values[i].Bool = v
	r.set[i] = true
}

// Label returns a label field.
func (r *Record) Label(f LabelField) string {
	return r.values[r.slot(f)].Label
}

// SetLabel overwrites a label field.
func (r *Record) SetLabel(f LabelField, v string) {
	i := r.slot(f)
	r.values[i].Label = v
	r.set[i] = true
}

// IsSet reports whether any merge has written the field since the record was
// created.
func (r *Record) IsSet(h Handle) bool {
	return r.set[r.slot(h)]
}

// Get returns a field by column name.
func (r *Record) Get(column string) (Value, bool) {
	i, exists := r.schema.index[column]
	if !exists {
		return Value{}, false
	}
	return r.values[i], true
}
