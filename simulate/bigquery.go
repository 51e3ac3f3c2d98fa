package simulate

import (
	"context"
	"log"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
	"gopkg.in/guregu/null.v3"
)

// BigQuery reads simulated values from a query. The query may refer to the
// period as @period and must return person_id and value columns.
type BigQuery struct {
	Project string
	Query   string
}

type bigQueryValue struct {
	PersonID string               `bigquery:"person_id"`
	Value    bigquery.NullFloat64 `bigquery:"value"`
}

// Simulate satisfies Simulator.
func (b BigQuery) Simulate(ctx context.Context, data Dataset, period string) ([]float64, error) {
	client, err := bigquery.NewClient(ctx, b.Project)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer client.Close()

	q := client.Query(b.Query)
	q.Parameters = []bigquery.QueryParameter{{Name: "period", Value: period}}

	log.Printf("Querying simulated values for %s from BigQuery project %s\n", period, b.Project)

	it, err := q.Read(ctx)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var (
		ids    []string
		values []null.Float
	)
	for {
		var row bigQueryValue
		err := it.Next(&row)
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		ids = append(ids, row.PersonID)
		values = append(values, null.NewFloat(row.Value.Float64, row.Value.Valid))
	}

	out, err := align(data.Person.Keys(), ids, values)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
