package entity

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultReconcileThreshold is the absolute gap between simulated and reported
// values below which no adjustment is made.
const DefaultReconcileThreshold = 200

// Reconciliation compares an externally simulated value against a reported
// field and stores a correction alongside it.
type Reconciliation struct {
	Reported   NumberField
	Adjustment NumberField

	// Weight is optional. When valid, the summary carries a weighted mean
	// error.
	Weight NumberField

	Threshold float64
}

// ReconcileSummary describes one reconciliation pass.
type ReconcileSummary struct {
	Entities          int
	Adjusted          int
	MeanAbsError      float64
	P95AbsError       float64
	WeightedMeanError float64
}

// Apply sets Adjustment = -(simulated - reported) on every record where the
// gap exceeds Threshold, and 0 elsewhere. simulated must be aligned with t's
// iteration order. Reported is never modified.
func (r Reconciliation) Apply(t *Table, simulated []float64) (ReconcileSummary, error) {
	summary := ReconcileSummary{Entities: t.Len()}

	if len(simulated) != t.Len() {
		return summary, fmt.Errorf("got %d simulated values for %d %s records", len(simulated), t.Len(), t.schema.name)
	}

	reported := make([]float64, 0, t.Len())
	weights := make([]float64, 0, t.Len())
	records := make([]*Record, 0, t.Len())
	t.Each(func(_ string, rec *Record) error {
		reported = append(reported, rec.Num(r.Reported))
		if r.Weight.Valid() {
			weights = append(weights, rec.Num(r.Weight))
		}
		records = append(records, rec)
		return nil
	})

	errs := make([]float64, len(simulated))
	floats.SubTo(errs, simulated, reported)

	absErrs := make(stats.Float64Data, len(errs))
	for i, e := range errs {
		absErrs[i] = math.Abs(e)

		if absErrs[i] > r.Threshold {
			records[i].SetNum(r.Adjustment, -e)
			summary.Adjusted++
		} else {
			records[i].SetNum(r.Adjustment, 0)
		}
	}

	if len(absErrs) == 0 {
		return summary, nil
	}

	summary.MeanAbsError, _ = stats.Mean(absErrs)
	summary.P95AbsError, _ = stats.Percentile(absErrs, 95)

	if r.Weight.Valid() && floats.Sum(weights) > 0 {
		summary.WeightedMeanError = stat.Mean(errs, weights)
	}

	return summary, nil
}
