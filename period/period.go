// Package period converts survey amounts reported over arbitrary periods into
// a canonical weekly or yearly rate.
package period

import (
	"fmt"
	"math"

	"github.com/carbocation/frs2csv/numeric"
)

// WeeksPerYear scales a weekly rate to a yearly one.
const WeeksPerYear = 52

// Weekly is the period code for an amount that is already weekly.
const Weekly = 1

// Table maps a survey period code to the number of weeks the reported amount
// covers. The table is never modified after construction.
type Table map[int]float64

// DefaultTable returns the period codes used by the Family Resources Survey.
// Codes 95 and 97 ("one off" and "none of these") are spread across a very long
// period so that they contribute almost nothing to a weekly rate.
func DefaultTable() Table {
	return Table{
		1:  1,
		2:  2,
		3:  3,
		4:  4,
		5:  4.35,
		7:  8.7,
		8:  6.52,
		9:  5.8,
		10: 5.22,
		13: 13,
		17: 17.4,
		26: 26,
		52: 52,
		90: 0.5,
		95: 1000,
		97: 1000,
	}
}

// InvalidUnitError is returned when a period code is not in the table. Unlike
// a missing amount, an unknown period cannot be silently coerced: guessing the
// unit would corrupt every aggregate the amount contributes to.
type InvalidUnitError struct {
	Code string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("unrecognized period code %q", e.Code)
}

// Normalizer converts (amount, period code) pairs to a rate. Weekly and yearly
// normalizers built from the same Table share its divisors.
type Normalizer struct {
	divisors Table
	scale    float64
}

// NewWeekly returns a Normalizer producing weekly rates.
func NewWeekly(t Table) *Normalizer {
	return &Normalizer{divisors: t, scale: 1}
}

// NewYearly returns a Normalizer producing yearly rates.
func NewYearly(t Table) *Normalizer {
	return &Normalizer{divisors: t, scale: WeeksPerYear}
}

// Divisor returns the number of weeks covered by the period code.
func (n *Normalizer) Divisor(code int) (float64, bool) {
	d, ok := n.divisors[code]
	return d, ok
}

// Normalize returns amount expressed at the normalizer's canonical rate. If
// either amount or periodCode is not numeric, the result is 0 with no error.
// A numeric periodCode that is not in the table yields *InvalidUnitError.
func (n *Normalizer) Normalize(amount, periodCode string) (float64, error) {
	value, ok := numeric.Parse(amount)
	if !ok {
		return 0, nil
	}

	return n.NormalizeValue(value, periodCode)
}

// NormalizeValue is Normalize for an amount that has already been coerced.
func (n *Normalizer) NormalizeValue(amount float64, periodCode string) (float64, error) {
	rawCode, ok := numeric.Parse(periodCode)
	if !ok {
		return 0, nil
	}

	if rawCode != math.Trunc(rawCode) {
		return 0, &InvalidUnitError{Code: periodCode}
	}

	divisor, exists := n.divisors[int(rawCode)]
	if !exists || divisor == 0 {
		return 0, &InvalidUnitError{Code: periodCode}
	}

	return amount / divisor * n.scale, nil
}

// Rate treats amount as weekly and returns it at the canonical rate.
func (n *Normalizer) Rate(amount string) float64 {
	return numeric.Safe(amount) * n.scale
}
