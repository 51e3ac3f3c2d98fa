// Package tabfile reads survey extracts: delimited text whose first line names
// the columns.
package tabfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/carbocation/frs2csv"
	"github.com/carbocation/pfx"
)

// sniffSize bounds how much of the extract is inspected to find its delimiter.
const sniffSize = 64 * 1024

// Row is one observation. Columns are matched case-insensitively; a column
// the extract does not have reads as "".
type Row struct {
	columns map[string]int
	fields  []string
}

// Get returns the raw text of column.
func (r *Row) Get(column string) string {
	i, exists := r.columns[strings.ToUpper(column)]
	if !exists || i >= len(r.fields) {
		return ""
	}

	return r.fields[i]
}

// Reader yields the rows of one extract.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
	header  []string
	line    int
}

// NewReader reads the header of an extract. If comma is 0 the delimiter is
// sniffed from the start of the stream, defaulting to tab.
func NewReader(in io.Reader, comma rune) (*Reader, error) {
	br := bufio.NewReaderSize(in, sniffSize)

	if comma == 0 {
		head, _ := br.Peek(sniffSize)
		comma = frs2csv.DetermineDelimiter(bytes.NewReader(head), '\t')
	}

	r := csv.NewReader(br)
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, pfx.Err(io.ErrUnexpectedEOF)
	} else if err != nil {
		return nil, pfx.Err(err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		header[i] = name
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	return &Reader{csv: r, columns: columns, header: header, line: 1}, nil
}

// Header returns the column names, upper-cased.
func (r *Reader) Header() []string {
	return append([]string(nil), r.header...)
}

// Next returns the next row, or io.EOF after the last one.
func (r *Reader) Next() (*Row, error) {
	fields, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	r.line++

	return &Row{columns: r.columns, fields: fields}, nil
}

// Line is the number of lines read so far, including the header.
func (r *Reader) Line() int {
	return r.line
}
