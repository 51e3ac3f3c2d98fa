package period

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestWeeklyMatchesDivisor(t *testing.T) {
	table := DefaultTable()
	weekly := NewWeekly(table)

	for code, divisor := range table {
		got, err := weekly.Normalize("364", strconv.Itoa(code))
		if err != nil {
			t.Fatalf("Code %d: %v", code, err)
		}
		if expected := 364 / divisor; math.Abs(got-expected) > 1e-9 {
			t.Errorf("Code %d: expected %v, got %v", code, expected, got)
		}
	}
}

func TestYearlySharesTable(t *testing.T) {
	table := DefaultTable()
	weekly, yearly := NewWeekly(table), NewYearly(table)

	for code := range table {
		w, err := weekly.Normalize("100", strconv.Itoa(code))
		if err != nil {
			t.Fatal(err)
		}
		y, err := yearly.Normalize("100", strconv.Itoa(code))
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(y-w*WeeksPerYear) > 1e-9 {
			t.Errorf("Code %d: yearly %v is not 52 x weekly %v", code, y, w)
		}
	}
}

func TestMonthlyCode(t *testing.T) {
	got, err := NewWeekly(DefaultTable()).Normalize("435", "5")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-100) > 1e-9 {
		t.Errorf("Expected 100, got %v", got)
	}
}

func TestUnknownCodeFails(t *testing.T) {
	weekly := NewWeekly(DefaultTable())

	for _, code := range []string{"6", "51", "1.5", "-1"} {
		_, err := weekly.Normalize("10", code)

		var unitErr *InvalidUnitError
		if !errors.As(err, &unitErr) {
			t.Errorf("Code %s: expected InvalidUnitError, got %v", code, err)
			continue
		}
		if unitErr.Code != code {
			t.Errorf("Expected code %s in error, got %s", code, unitErr.Code)
		}
	}
}

func TestMissingValuesAreZero(t *testing.T) {
	weekly := NewWeekly(DefaultTable())

	for _, pair := range [][2]string{{"", "1"}, {"abc", "5"}, {"10", ""}, {"10", " "}} {
		got, err := weekly.Normalize(pair[0], pair[1])
		if err != nil {
			t.Errorf("%q: unexpected error %v", pair, err)
		}
		if got != 0 {
			t.Errorf("%q: expected 0, got %v", pair, got)
		}
	}
}

func TestAlternateTable(t *testing.T) {
	weekly := NewWeekly(Table{1: 1, 4: 4})

	if _, err := weekly.Normalize("10", "5"); err == nil {
		t.Error("Code 5 is not in the substituted table and should fail")
	}
	if got, _ := weekly.Normalize("10", "4"); got != 2.5 {
		t.Errorf("Expected 2.5, got %v", got)
	}
}

func TestNormalizeValueAndRate(t *testing.T) {
	weekly := NewWeekly(DefaultTable())
	got, err := weekly.NormalizeValue(80, "1")
	if err != nil || got != 80 {
		t.Errorf("Expected 80, got %v (%v)", got, err)
	}

	if got := NewYearly(DefaultTable()).Rate("10"); got != 520 {
		t.Errorf("Expected 520, got %v", got)
	}
}
