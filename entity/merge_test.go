package entity

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testPerson struct {
	schema     *Schema
	id         LabelField
	benunit    LabelField
	age        NumberField
	deductions NumberField
	interest   NumberField
	head       BoolField
}

func newTestPerson() testPerson {
	s := NewSchema("person")
	return testPerson{
		schema:     s,
		id:         s.Label("person_id", ""),
		benunit:    s.Label("benunit_id", ""),
		age:        s.Number("age"),
		deductions: s.Number("deductions"),
		interest:   s.Number("interest"),
		head:       s.Bool("is_head"),
	}
}

func personKey(row Row) string {
	return row.Get("sernum") + "p" + row.Get("PERSON")
}

func (p testPerson) addDeductions(row Row, rec *Record) (*Record, error) {
	var amount float64
	switch row.Get("DED") {
	case "50":
		amount = 50
	case "30":
		amount = 30
	}
	rec.Add(p.deductions, amount)
	return rec, nil
}

func TestMergeAccumulatesAcrossRows(t *testing.T) {
	p := newTestPerson()
	table := NewTable(p.schema)

	rows := NewSliceSource(
		MapRow{"sernum": "1", "PERSON": "1", "DED": "50"},
		MapRow{"sernum": "1", "PERSON": "1", "DED": "30"},
	)

	n, err := MergeSource(table, rows, personKey, p.addDeductions)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows, got %d", n)
	}

	rec, exists := table.Get("1p1")
	if !exists {
		t.Fatal("Person 1p1 was not created")
	}
	if got := rec.Num(p.deductions); got != 80 {
		t.Errorf("Expected deductions of 80, got %v", got)
	}
	if table.Len() != 1 {
		t.Errorf("Expected 1 person, got %d", table.Len())
	}
}

func TestAccumulationCommutesAcrossFiles(t *testing.T) {
	p := newTestPerson()

	addInterest := func(amount float64) MergeFunc {
		return func(_ Row, rec *Record) (*Record, error) {
			rec.Add(p.interest, amount)
			return rec, nil
		}
	}

	row := MapRow{"sernum": "7", "PERSON": "2"}
	run := func(amounts ...float64) float64 {
		table := NewTable(p.schema)
		for _, a := range amounts {
			if _, err := MergeSource(table, NewSliceSource(row), personKey, addInterest(a)); err != nil {
				t.Fatal(err)
			}
		}
		rec, _ := table.Get("7p2")
		return rec.Num(p.interest)
	}

	if a, b := run(1.5, 2, 4), run(4, 1.5, 2); a != b {
		t.Errorf("Accumulation depended on file order: %v vs %v", a, b)
	}
}

func TestOverwriteLastCallWins(t *testing.T) {
	p := newTestPerson()

	setAge := func(age float64) MergeFunc {
		return func(_ Row, rec *Record) (*Record, error) {
			rec.SetNum(p.age, age)
			return rec, nil
		}
	}

	row := MapRow{"sernum": "7", "PERSON": "2"}
	table := NewTable(p.schema)
	for _, age := range []float64{30, 41} {
		if _, err := MergeSource(table, NewSliceSource(row), personKey, setAge(age)); err != nil {
			t.Fatal(err)
		}
	}

	rec, _ := table.Get("7p2")
	if rec.Num(p.age) != 41 {
		t.Errorf("Expected the last file's age 41, got %v", rec.Num(p.age))
	}
}

func TestEveryKeyHasCompleteRecord(t *testing.T) {
	p := newTestPerson()
	table := NewTable(p.schema)

	noop := func(_ Row, rec *Record) (*Record, error) { return rec, nil }
	rows := NewSliceSource(
		MapRow{"sernum": "1", "PERSON": "1"},
		MapRow{"sernum": "2", "PERSON": "1"},
		MapRow{"sernum": "1", "PERSON": "2"},
	)
	if _, err := MergeSource(table, rows, personKey, noop); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"1p1", "2p1", "1p2"}, table.Keys()); diff != "" {
		t.Error(diff)
	}

	for _, key := range table.Keys() {
		rec, exists := table.Get(key)
		if !exists {
			t.Fatalf("%s has no record", key)
		}
		for _, column := range p.schema.Columns() {
			if _, ok := rec.Get(column); !ok {
				t.Errorf("%s is missing %s", key, column)
			}
		}
	}
}

func TestMergeErrorPropagatesUnchanged(t *testing.T) {
	p := newTestPerson()
	table := NewTable(p.schema)

	sentinel := errors.New("bad unit")
	calls := 0
	failing := func(_ Row, rec *Record) (*Record, error) {
		calls++
		if calls == 2 {
			return nil, sentinel
		}
		return rec, nil
	}

	rows := NewSliceSource(
		MapRow{"sernum": "1", "PERSON": "1"},
		MapRow{"sernum": "1", "PERSON": "2"},
		MapRow{"sernum": "1", "PERSON": "3"},
	)

	_, err := MergeSource(table, rows, personKey, failing)
	if err != sentinel {
		t.Errorf("Expected the merge error itself, got %v", err)
	}
	if calls != 2 {
		t.Errorf("Merging should stop at the first error, made %d calls", calls)
	}
}

func TestMergeRejectsForeignRecord(t *testing.T) {
	p := newTestPerson()
	other := NewSchema("household")
	table := NewTable(p.schema)

	swap := func(_ Row, _ *Record) (*Record, error) { return other.NewRecord(), nil }
	if _, err := MergeSource(table, NewSliceSource(MapRow{"sernum": "1"}), personKey, swap); err == nil {
		t.Error("Expected an error when merge returns a record of another type")
	}
}

func TestReservedKeyIsCreatedInPlace(t *testing.T) {
	p := newTestPerson()
	table := NewTable(p.schema)
	table.Reserve("9p1")

	if _, exists := table.Get("9p1"); exists {
		t.Fatal("A reserved key should not have a record yet")
	}

	setAge := func(_ Row, rec *Record) (*Record, error) {
		rec.SetNum(p.age, 50)
		return rec, nil
	}
	rows := NewSliceSource(MapRow{"sernum": "1", "PERSON": "1"}, MapRow{"sernum": "9", "PERSON": "1"})
	if _, err := MergeSource(table, rows, personKey, setAge); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"9p1", "1p1"}, table.Keys()); diff != "" {
		t.Error(diff)
	}
	if rec, _ := table.Get("9p1"); rec.Num(p.age) != 50 {
		t.Errorf("Expected age 50, got %v", rec.Num(p.age))
	}
}

func TestDuplicateFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Declaring a field twice should panic")
		}
	}()

	s := NewSchema("x")
	s.Number("a")
	s.Bool("a")
}

func TestValueString(t *testing.T) {
	cases := map[string]Value{
		"80":     {Kind: Number, Num: 80},
		"7.5":    {Kind: Number, Num: 7.5},
		"True":   {Kind: Bool, Bool: true},
		"False":  {Kind: Bool},
		"rented": {Kind: Label, Label: "rented"},
	}
	for expected, v := range cases {
		if v.String() != expected {
			t.Errorf("Expected %s, got %s", expected, v.String())
		}
	}
}
