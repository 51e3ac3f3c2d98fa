package tabular

import (
	"bytes"
	"errors"
	"testing"

	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/frs2csv/enum"
)

type household struct {
	schema *entity.Schema
	id     entity.LabelField
	weight entity.NumberField
	social entity.BoolField
	tenure entity.LabelField
}

func newHousehold() household {
	s := entity.NewSchema("household")
	return household{
		schema: s,
		id:     s.Label("household_id", ""),
		weight: s.Number("household_weight"),
		social: s.Bool("is_social"),
		tenure: s.Label("tenure", "owned"),
	}
}

func TestWriteDefaultsMissingColumns(t *testing.T) {
	h := newHousehold()
	table := entity.NewTable(h.schema)

	a := table.FetchOrCreate("2")
	a.SetLabel(h.id, "2")
	a.SetNum(h.weight, 1520.5)
	a.SetBool(h.social, true)
	a.SetLabel(h.tenure, "rented")

	b := table.FetchOrCreate("1")
	b.SetLabel(h.id, "1")

	var buf bytes.Buffer
	columns := append(h.schema.Columns(), "council_tax")
	n, err := Write(&buf, table, columns, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Expected 2 records, got %d", n)
	}

	expected := "household_id,household_weight,is_social,tenure,council_tax\n" +
		"2,1520.5,True,rented,0\n" +
		"1,0,False,owned,0\n"
	if buf.String() != expected {
		t.Errorf("Expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestWriteEncodedEnums(t *testing.T) {
	h := newHousehold()
	table := entity.NewTable(h.schema)
	rec := table.FetchOrCreate("1")
	rec.SetLabel(h.id, "1")
	rec.SetLabel(h.tenure, "rented")

	codec, err := enum.NewCodec(enum.Topic{Name: "househol", Fields: map[string]enum.Mapping{
		"tenure": {{Code: enum.NoData, Label: "owned"}, {Code: 1, Label: "owned"}, {Code: 2, Label: "mortgage"}, {Code: 4, Label: "rented"}},
	}})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := Write(&buf, table, []string{"household_id", "tenure"}, Options{Comma: '\t', Enums: codec}); err != nil {
		t.Fatal(err)
	}

	if expected := "household_id\ttenure\n1\t2\n"; buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestWriteUnknownLabelFails(t *testing.T) {
	h := newHousehold()
	table := entity.NewTable(h.schema)
	table.FetchOrCreate("1").SetLabel(h.tenure, "castle")

	codec, _ := enum.NewCodec(enum.Topic{Name: "househol", Fields: map[string]enum.Mapping{
		"tenure": {{Code: 1, Label: "owned"}},
	}})

	var buf bytes.Buffer
	if _, err := Write(&buf, table, []string{"tenure"}, Options{Enums: codec}); err == nil {
		t.Error("Expected an error for a label outside the enum")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteIOErrorIsFatal(t *testing.T) {
	h := newHousehold()
	table := entity.NewTable(h.schema)
	table.FetchOrCreate("1")

	if _, err := Write(failingWriter{}, table, h.schema.Columns(), Options{}); err == nil {
		t.Error("Expected the write error to surface")
	}
}
