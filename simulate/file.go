package simulate

import (
	"context"
	"encoding/csv"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/frs2csv"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"
)

// SimulatedValue is one line of a simulated values file: a tab-delimited
// table with a value column and an optional person_id column.
type SimulatedValue struct {
	PersonID string    `csv:"person_id"`
	Value    nullFloat `csv:"value"`
}

type nullFloat struct {
	null.Float
}

// UnmarshalCSV reads a blank or "null" cell as a missing value.
func (n *nullFloat) UnmarshalCSV(s string) error {
	return n.Float.UnmarshalText([]byte(s))
}

// File reads simulated values that were produced ahead of time.
type File struct {
	Location string
	Client   *storage.Client
}

// Simulate satisfies Simulator. The period is not consulted: the file is
// assumed to have been simulated for the requested period.
func (f File) Simulate(ctx context.Context, data Dataset, period string) ([]float64, error) {
	log.Printf("Reading simulated values for %s from %s\n", period, f.Location)

	rc, err := frs2csv.OpenSource(ctx, f.Location, f.Client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.Comma = '\t'
	r.LazyQuotes = true

	records := []*SimulatedValue{}
	if err := gocsv.UnmarshalCSV(r, &records); err != nil {
		return nil, pfx.Err(err)
	}

	ids := make([]string, len(records))
	values := make([]null.Float, len(records))
	for i, rec := range records {
		ids[i] = rec.PersonID
		values[i] = rec.Value.Float
	}

	out, err := align(data.Person.Keys(), ids, values)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
