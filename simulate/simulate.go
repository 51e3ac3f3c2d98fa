// Package simulate fetches simulated values for the reconciliation step from
// an external tax-benefit model.
package simulate

import (
	"context"
	"fmt"

	"github.com/carbocation/frs2csv/entity"
	"gopkg.in/guregu/null.v3"
)

// Dataset is what a simulator may consult: the written tables on disk and the
// same tables in memory.
type Dataset struct {
	OutputDir string
	Person    *entity.Table
	Benunit   *entity.Table
	Household *entity.Table
}

// Simulator returns one simulated value per person, in the person table's
// iteration order, for the given period label (e.g. "2020-10").
type Simulator interface {
	Simulate(ctx context.Context, data Dataset, period string) ([]float64, error)
}

// align orders values to match keys. If no ids were supplied, values are
// taken to already be in key order. Null values are an error: a missing
// simulation cannot be told apart from a zero one.
func align(keys, ids []string, values []null.Float) ([]float64, error) {
	if len(values) != len(keys) {
		return nil, fmt.Errorf("got %d simulated values for %d people", len(values), len(keys))
	}

	positional := true
	for _, id := range ids {
		if id != "" {
			positional = false
			break
		}
	}

	out := make([]float64, len(keys))

	if positional {
		for i, v := range values {
			if !v.Valid {
				return nil, fmt.Errorf("simulated value %d is missing", i)
			}
			out[i] = v.Float64
		}
		return out, nil
	}

	byID := make(map[string]null.Float, len(ids))
	for i, id := range ids {
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("person %s was simulated twice", id)
		}
		byID[id] = values[i]
	}

	for i, key := range keys {
		v, exists := byID[key]
		if !exists {
			return nil, fmt.Errorf("no simulated value for person %s", key)
		}
		if !v.Valid {
			return nil, fmt.Errorf("simulated value for person %s is missing", key)
		}
		out[i] = v.Float64
	}

	return out, nil
}
