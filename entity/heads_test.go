package entity

import "testing"

func TestAssignGroupHeads(t *testing.T) {
	p := newTestPerson()
	table := NewTable(p.schema)

	members := []struct{ key, benunit string }{
		{"1p1", "1b1"},
		{"1p2", "1b1"},
		{"1p3", "1b2"},
		{"2p1", "2b1"},
		{"1p4", "1b1"},
	}
	for _, m := range members {
		rec := table.FetchOrCreate(m.key)
		rec.SetLabel(p.benunit, m.benunit)
	}
	// Never assigned to a benefit unit.
	table.FetchOrCreate("3p1")

	heads := AssignGroupHeads(table, p.benunit, p.head)
	if heads != 3 {
		t.Errorf("Expected 3 heads, got %d", heads)
	}

	expected := map[string]bool{"1p1": true, "1p2": false, "1p3": true, "2p1": true, "1p4": false, "3p1": false}
	for key, isHead := range expected {
		rec, _ := table.Get(key)
		if rec.Bool(p.head) != isHead {
			t.Errorf("%s: expected head=%v", key, isHead)
		}
	}

	perGroup := make(map[string]int)
	table.Each(func(_ string, rec *Record) error {
		if rec.Bool(p.head) {
			perGroup[rec.Label(p.benunit)]++
		}
		return nil
	})
	for group, n := range perGroup {
		if n != 1 {
			t.Errorf("%s has %d heads", group, n)
		}
	}
}

func TestAssignGroupHeadsOverwritesStaleFlags(t *testing.T) {
	p := newTestPerson()
	table := NewTable(p.schema)

	a := table.FetchOrCreate("1p1")
	a.SetLabel(p.benunit, "1b1")
	b := table.FetchOrCreate("1p2")
	b.SetLabel(p.benunit, "1b1")
	b.SetBool(p.head, true)

	AssignGroupHeads(table, p.benunit, p.head)

	if !a.Bool(p.head) || b.Bool(p.head) {
		t.Error("Only the first member in insertion order should be head")
	}
}
