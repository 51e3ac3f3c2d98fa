package convert

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/frs2csv"
	"github.com/carbocation/frs2csv/frs"
	"github.com/carbocation/pfx"
)

// ReadPlan parses a processing plan: one step per line, tab-delimited as
// entity, topic and (optionally) file name. There is no header; lines
// starting with # are ignored. Steps run in the order listed.
func ReadPlan(in io.Reader) ([]frs.Step, error) {
	r := csv.NewReader(in)
	r.Comma = '\t'
	r.Comment = '#'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	output := make([]frs.Step, 0, len(records))
	for i, row := range records {
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("plan line %d: expected entity and topic, got %q", i+1, row)
		}

		step := frs.Step{
			Entity: strings.TrimSpace(row[0]),
			Topic:  strings.TrimSpace(row[1]),
		}
		if len(row) > 2 {
			step.File = strings.TrimSpace(row[2])
		}
		if step.File == "" {
			step.File = step.Topic + ".tab"
		}

		output = append(output, step)
	}

	return output, nil
}

// ReadPlanFile reads a plan from a local or gs:// location.
func ReadPlanFile(ctx context.Context, location string, client *storage.Client) ([]frs.Step, error) {
	rc, err := frs2csv.OpenSource(ctx, location, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rc.Close()

	return ReadPlan(rc)
}

// checkPlan makes sure every step names a known topic feeding the stated
// entity, before any extract is opened.
func checkPlan(c *frs.Converter, plan []frs.Step) error {
	if len(plan) == 0 {
		return fmt.Errorf("the processing plan is empty")
	}

	for i, step := range plan {
		topic, err := c.Topic(step.Topic)
		if err != nil {
			return fmt.Errorf("plan step %d: %v", i+1, err)
		}
		if topic.Entity != step.Entity {
			return fmt.Errorf("plan step %d: topic %s builds %s records, not %s", i+1, step.Topic, topic.Entity, step.Entity)
		}
	}

	return nil
}
