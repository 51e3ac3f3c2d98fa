// Package convert builds the person, benefit unit and household tables from a
// directory of survey extracts.
package convert

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/frs2csv"
	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/frs2csv/enum"
	"github.com/carbocation/frs2csv/frs"
	"github.com/carbocation/frs2csv/period"
	"github.com/carbocation/frs2csv/simulate"
	"github.com/carbocation/frs2csv/tabfile"
	"github.com/carbocation/frs2csv/tabular"
	"github.com/carbocation/pfx"
)

// Config describes one conversion run.
type Config struct {
	// Input and Output are local directories or gs:// prefixes.
	Input  string
	Output string

	// Plan defaults to frs.DefaultPlan.
	Plan []frs.Step

	// Codec defaults to the built-in enum tables.
	Codec *enum.Codec

	// EncodeEnums writes enum fields as integers.
	EncodeEnums bool

	// Comma is the extract delimiter; 0 sniffs it from each file.
	Comma rune

	// Simulator, if set, drives the net income reconciliation for Period.
	Simulator simulate.Simulator
	Period    string
	Threshold float64

	Storage *storage.Client
}

// Result holds the finished tables.
type Result struct {
	Tables    map[string]*entity.Table
	Reconcile *entity.ReconcileSummary
}

// Run merges every extract in the plan, runs the post-processors, writes the
// three tables and, if a simulator is configured, reconciles net income and
// rewrites the person table. Any error aborts the run.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	c, err := newConverter(cfg.Codec)
	if err != nil {
		return nil, pfx.Err(err)
	}

	plan := cfg.Plan
	if plan == nil {
		plan = frs.DefaultPlan()
	}

	if err := checkPlan(c, plan); err != nil {
		return nil, pfx.Err(err)
	}

	opts := tabular.Options{}
	if cfg.EncodeEnums {
		opts.Enums = c.Codec()
	}

	result := &Result{Tables: make(map[string]*entity.Table)}

	for _, entityType := range frs.Entities() {
		table := entity.NewTable(c.Schema(entityType))

		for _, step := range plan {
			if step.Entity != entityType {
				continue
			}
			if err := mergeStep(ctx, cfg, c, table, step); err != nil {
				return nil, pfx.Err(err)
			}
		}

		if entityType == frs.PersonEntity {
			heads := entity.AssignGroupHeads(table, c.Person.BenunitID, c.Person.IsBenunitHead)
			log.Printf("Assigned %d benefit unit heads among %d people\n", heads, table.Len())
		}

		if err := writeTable(ctx, cfg, table, opts); err != nil {
			return nil, pfx.Err(err)
		}

		result.Tables[entityType] = table
	}

	if cfg.Simulator == nil {
		return result, nil
	}

	summary, err := reconcile(ctx, cfg, c, result.Tables)
	if err != nil {
		return nil, pfx.Err(err)
	}
	result.Reconcile = &summary

	if err := writeTable(ctx, cfg, result.Tables[frs.PersonEntity], opts); err != nil {
		return nil, pfx.Err(err)
	}

	return result, nil
}

func newConverter(codec *enum.Codec) (*frs.Converter, error) {
	if codec == nil {
		return frs.NewDefaultConverter()
	}

	return frs.NewConverter(period.DefaultTable(), codec), nil
}

func mergeStep(ctx context.Context, cfg Config, c *frs.Converter, table *entity.Table, step frs.Step) error {
	topic, err := c.Topic(step.Topic)
	if err != nil {
		return err
	}

	location := frs2csv.JoinPath(cfg.Input, step.File)
	log.Printf("Reading %s into %s records\n", location, step.Entity)

	rc, err := frs2csv.OpenSource(ctx, location, cfg.Storage)
	if err != nil {
		return err
	}
	defer rc.Close()

	r, err := tabfile.NewReader(rc, cfg.Comma)
	if err != nil {
		return fmt.Errorf("%s: %v", location, err)
	}

	before := table.Len()
	n, err := entity.MergeSource(table, rows{r}, topic.Identity, topic.Merge)
	if err != nil {
		return fmt.Errorf("%s line %d: %w", location, r.Line(), err)
	}

	log.Printf("Merged %d rows from %s (%d new %s records)\n", n, step.File, table.Len()-before, step.Entity)

	return nil
}

func writeTable(ctx context.Context, cfg Config, table *entity.Table, opts tabular.Options) error {
	location := frs2csv.JoinPath(cfg.Output, table.Schema().Name()+".csv")

	w, err := frs2csv.CreateSink(ctx, location, cfg.Storage)
	if err != nil {
		return err
	}

	n, err := tabular.Write(w, table, table.Schema().Columns(), opts)
	if err != nil {
		w.Abort()
		return err
	}

	if err := w.Close(); err != nil {
		return pfx.Err(err)
	}

	log.Printf("Wrote %d records to %s\n", n, location)

	return nil
}

func reconcile(ctx context.Context, cfg Config, c *frs.Converter, tables map[string]*entity.Table) (entity.ReconcileSummary, error) {
	label, err := NormalizePeriod(cfg.Period)
	if err != nil {
		return entity.ReconcileSummary{}, err
	}

	data := simulate.Dataset{
		OutputDir: cfg.Output,
		Person:    tables[frs.PersonEntity],
		Benunit:   tables[frs.BenunitEntity],
		Household: tables[frs.HouseholdEntity],
	}

	simulated, err := cfg.Simulator.Simulate(ctx, data, label)
	if err != nil {
		return entity.ReconcileSummary{}, err
	}

	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = entity.DefaultReconcileThreshold
	}

	r := entity.Reconciliation{
		Reported:   c.Person.ActualNetIncome,
		Adjustment: c.Person.NetIncomeAdjustment,
		Weight:     c.Person.AdultWeight,
		Threshold:  threshold,
	}

	summary, err := r.Apply(data.Person, simulated)
	if err != nil {
		return summary, err
	}

	log.Printf("Adjusted net income for %d of %d people (mean absolute error %.2f, 95th percentile %.2f, weighted mean error %.2f)\n",
		summary.Adjusted, summary.Entities, summary.MeanAbsError, summary.P95AbsError, summary.WeightedMeanError)

	return summary, nil
}

// rows adapts a tabfile.Reader to entity.RowSource.
type rows struct {
	r *tabfile.Reader
}

func (s rows) Next() (entity.Row, error) {
	row, err := s.r.Next()
	if err != nil {
		return nil, err
	}
	return row, nil
}
