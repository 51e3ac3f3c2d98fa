// Package tabular flattens an entity table into delimited text.
package tabular

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/pfx"
)

// Missing is written for a column the record does not carry.
const Missing = "0"

// Enums is satisfied by *enum.Codec.
type Enums interface {
	Has(field string) bool
	Encode(field, label string) (int, error)
}

// Options controls the output format.
type Options struct {
	// Comma defaults to ','.
	Comma rune

	// If set, label columns with an enum table are written as their integer
	// encoding rather than the label itself.
	Enums Enums
}

// Write emits a header of columns and then one line per record in t's
// insertion order. It returns the number of records written.
func Write(w io.Writer, t *entity.Table, columns []string, opts Options) (int, error) {
	cw := csv.NewWriter(w)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}

	if err := cw.Write(columns); err != nil {
		return 0, pfx.Err(err)
	}

	var n int
	line := make([]string, len(columns))
	err := t.Each(func(key string, rec *entity.Record) error {
		for i, column := range columns {
			cell, err := format(rec, column, opts.Enums)
			if err != nil {
				return pfx.Err(err)
			}
			line[i] = cell
		}

		if err := cw.Write(line); err != nil {
			return pfx.Err(err)
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, pfx.Err(err)
	}

	return n, nil
}

func format(rec *entity.Record, column string, enums Enums) (string, error) {
	v, exists := rec.Get(column)
	if !exists {
		return Missing, nil
	}

	if enums != nil && v.Kind == entity.Label && enums.Has(column) {
		i, err := enums.Encode(column, v.Label)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(i), nil
	}

	return v.String(), nil
}
