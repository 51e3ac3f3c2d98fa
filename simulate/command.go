package simulate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

// Command runs an external model against the written tables. It is invoked
// as `Path Args... <output dir> <period>` and must print one value per person
// to stdout, either alone or as "person_id<TAB>value".
type Command struct {
	Path string
	Args []string
}

// Simulate satisfies Simulator.
func (c Command) Simulate(ctx context.Context, data Dataset, period string) ([]float64, error) {
	args := append(append([]string(nil), c.Args...), data.OutputDir, period)
	log.Printf("Running %s %s\n", c.Path, strings.Join(args, " "))

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return nil, pfx.Err(err)
	}

	ids, values, err := parseValues(&stdout)
	if err != nil {
		return nil, pfx.Err(err)
	}

	out, err := align(data.Person.Keys(), ids, values)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

func parseValues(in *bytes.Buffer) ([]string, []null.Float, error) {
	var (
		ids    []string
		values []null.Float
	)

	scanner := bufio.NewScanner(in)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var id string
		if parts := strings.SplitN(text, "\t", 2); len(parts) == 2 {
			id, text = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}

		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %v", line, err)
		}

		ids = append(ids, id)
		values = append(values, null.FloatFrom(v))
	}

	return ids, values, scanner.Err()
}
