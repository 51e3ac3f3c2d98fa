package enum

import (
	"encoding/csv"
	"io"
	"log"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// CodingRow is one line of a coding file: a tab-delimited table with the
// header topic, field, code, label. A blank code denotes NoData.
type CodingRow struct {
	Topic string `csv:"topic"`
	Field string `csv:"field"`
	Code  string `csv:"code"`
	Label string `csv:"label"`
}

// ImportDecode reads decode tables from a coding file. Topics, and each
// field's entries, keep the order in which they appear in the file.
func ImportDecode(in io.Reader) ([]Topic, error) {
	r := csv.NewReader(in)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.Comment = '#'

	records := []*CodingRow{}
	if err := gocsv.UnmarshalCSV(r, &records); err != nil {
		return nil, pfx.Err(err)
	}

	topics := make([]Topic, 0)
	index := make(map[string]int)

	for _, rec := range records {
		code := NoData
		if rec.Code != "" {
			v, err := strconv.Atoi(rec.Code)
			if err != nil {
				return nil, pfx.Err(err)
			}
			code = Code(v)
		}

		i, exists := index[rec.Topic]
		if !exists {
			i = len(topics)
			index[rec.Topic] = i
			topics = append(topics, Topic{Name: rec.Topic, Fields: make(map[string]Mapping)})
		}

		topics[i].Fields[rec.Field] = append(topics[i].Fields[rec.Field], Entry{Code: code, Label: rec.Label})
	}

	log.Printf("Imported %d codings across %d topics\n", len(records), len(topics))

	return topics, nil
}
