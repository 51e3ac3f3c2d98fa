package entity

// Table maps identity keys to records and remembers the order in which keys
// were first seen. Output follows that order.
type Table struct {
	schema  *Schema
	keys    []string
	records map[string]*Record
}

// NewTable returns an empty table for the schema.
func NewTable(s *Schema) *Table {
	return &Table{schema: s, records: make(map[string]*Record)}
}

// Schema returns the table's entity type.
func (t *Table) Schema() *Schema {
	return t.schema
}

// Len is the number of keys, including reserved ones.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the keys in first-seen order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Reserve claims a position for key without creating its record. The first
// merge that touches key creates the record in that position.
func (t *Table) Reserve(key string) {
	if _, exists := t.records[key]; exists {
		return
	}
	t.keys = append(t.keys, key)
	t.records[key] = nil
}

// Get returns the record for key. A reserved key has no record yet.
func (t *Table) Get(key string) (*Record, bool) {
	rec := t.records[key]
	return rec, rec != nil
}

// Put stores rec under key.
func (t *Table) Put(key string, rec *Record) {
	if _, exists := t.records[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.records[key] = rec
}

// FetchOrCreate returns the record for key, creating a fresh one if the key
// is absent or only reserved.
func (t *Table) FetchOrCreate(key string) *Record {
	if rec, exists := t.Get(key); exists {
		return rec
	}
	rec := t.schema.NewRecord()
	t.Put(key, rec)
	return rec
}

// Each calls fn for every key in order. Reserved keys that never received a
// record are given one at their initial values first. Iteration stops at the
// first error.
func (t *Table) Each(fn func(key string, rec *Record) error) error {
	for _, key := range t.keys {
		if err := fn(key, t.FetchOrCreate(key)); err != nil {
			return err
		}
	}
	return nil
}
