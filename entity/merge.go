package entity

import (
	"fmt"
	"io"
	"log"
)

// Row is one raw observation from a survey extract, addressed by column name.
type Row interface {
	Get(column string) string
}

// RowSource yields rows until it returns io.EOF.
type RowSource interface {
	Next() (Row, error)
}

// IdentityFunc derives the key of the entity a row describes.
type IdentityFunc func(Row) string

// MergeFunc folds one row into an entity and returns the entity. It may only
// depend on its arguments.
type MergeFunc func(Row, *Record) (*Record, error)

// MergeSource folds every row of one extract into t. Each row's entity is
// fetched, or created with all fields at their initial values, then passed
// through merge and stored back. Rows sharing a key are merged in the order
// they arrive, so accumulating fields sum and overwriting fields keep the
// last value.
//
// An error from merge is returned as is and leaves the table partially
// updated; callers must treat it as fatal for the whole entity type.
func MergeSource(t *Table, rows RowSource, identity IdentityFunc, merge MergeFunc) (int, error) {
	var n int
	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return n, err
		}
		n++

		if n%100000 == 0 {
			log.Println("Saw row", n)
		}

		key := identity(row)
		rec, err := merge(row, t.FetchOrCreate(key))
		if err != nil {
			return n, err
		}
		if rec == nil || rec.schema != t.schema {
			return n, fmt.Errorf("merge for %s %q returned a record of the wrong type", t.schema.name, key)
		}

		t.Put(key, rec)
	}

	return n, nil
}

// MapRow is a Row backed by a map; missing columns read as "".
type MapRow map[string]string

// Get satisfies Row.
func (m MapRow) Get(column string) string {
	return m[column]
}

// SliceSource is a RowSource over rows already in memory.
type SliceSource struct {
	rows []Row
	next int
}

// NewSliceSource returns a RowSource yielding rows in order.
func NewSliceSource(rows ...Row) *SliceSource {
	return &SliceSource{rows: rows}
}

// Next satisfies RowSource.
func (s *SliceSource) Next() (Row, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	s.next++
	return s.rows[s.next-1], nil
}
