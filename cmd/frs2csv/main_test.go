package main

import "testing"

func TestParseComma(t *testing.T) {
	for input, want := range map[string]rune{
		"":   0,
		",":  ',',
		"|":  '|',
		"\t": '\t',
		`\t`: '\t',
	} {
		got, err := parseComma(input)
		if err != nil {
			t.Errorf("%q: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("%q: expected %q, got %q", input, want, got)
		}
	}

	if _, err := parseComma(",;"); err == nil {
		t.Error("Expected two characters to be rejected")
	}
}
