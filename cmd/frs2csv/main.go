package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/frs2csv"
	"github.com/carbocation/frs2csv/buildinfo"
	"github.com/carbocation/frs2csv/convert"
	"github.com/carbocation/frs2csv/entity"
	"github.com/carbocation/frs2csv/enum"
	"github.com/carbocation/frs2csv/frs"
	"github.com/carbocation/frs2csv/simulate"
)

func main() {
	var (
		cfg        convert.Config
		planFile   string
		codingFile string
		comma      string
		method     string
		simulated  string
		simulator  string
		project    string
		query      string
		version    bool
	)
	flag.StringVar(&cfg.Input, "input", "", "Directory (local or gs://bucket/prefix) holding the tab-delimited survey extracts")
	flag.StringVar(&cfg.Output, "output", "", "Directory (local or gs://bucket/prefix) that will receive person.csv, benunit.csv and household.csv")
	flag.StringVar(&planFile, "plan", "", "(Optional) Tab-delimited file of entity, topic and file name, one step per line. Defaults to the standard extract set.")
	flag.StringVar(&codingFile, "coding", "", "(Optional) Tab-delimited file of topic, field, code and label that replaces the built-in enum tables")
	flag.StringVar(&comma, "comma", "", "(Optional) Delimiter of the extracts. If unset, it is detected from each file.")
	flag.BoolVar(&cfg.EncodeEnums, "encode-enums", false, "Write enum fields as integers instead of labels")
	flag.StringVar(&method, "simulate", "none", "Source of simulated net income for reconciliation. Options: none, file, command, bigquery")
	flag.StringVar(&cfg.Period, "period", "2020-10", "Period label passed to the simulator")
	flag.Float64Var(&cfg.Threshold, "threshold", entity.DefaultReconcileThreshold, "Absolute gap between simulated and reported net income above which an adjustment is recorded")
	flag.StringVar(&simulated, "simulated", "", "Tab-delimited file with person_id and value columns (only if simulate == 'file')")
	flag.StringVar(&simulator, "simulator", "", "Executable that is passed the output directory and period and prints one value per person (only if simulate == 'command')")
	flag.StringVar(&project, "project", "", "Google Cloud project to bill the query to (only if simulate == 'bigquery')")
	flag.StringVar(&query, "query", "", "Query returning person_id and value, which may reference @period (only if simulate == 'bigquery')")
	flag.BoolVar(&version, "version", false, "Print build information and exit")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Read())
		return
	}

	log.Println(buildinfo.Read())

	if cfg.Input == "" || cfg.Output == "" {
		log.Println("Please pass both --input and --output")
		flag.PrintDefaults()
		os.Exit(1)
	}

	delim, err := parseComma(comma)
	if err != nil {
		log.Fatalln(err)
	}
	cfg.Comma = delim

	ctx := context.Background()

	for _, location := range []string{cfg.Input, cfg.Output, planFile, codingFile, simulated} {
		if !frs2csv.IsGoogleStorage(location) {
			continue
		}

		client, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
		cfg.Storage = client
		break
	}

	switch method {
	case "none":
	case "file":
		if simulated == "" {
			log.Fatalln("--simulate file requires --simulated")
		}
		cfg.Simulator = simulate.File{Location: simulated, Client: cfg.Storage}
	case "command":
		if simulator == "" {
			log.Fatalln("--simulate command requires --simulator")
		}
		fields := strings.Fields(simulator)
		cfg.Simulator = simulate.Command{Path: fields[0], Args: fields[1:]}
	case "bigquery":
		if project == "" || query == "" {
			log.Fatalln("--simulate bigquery requires --project and --query")
		}
		cfg.Simulator = simulate.BigQuery{Project: project, Query: query}
	default:
		log.Println("Valid --simulate options include none, file, command and bigquery")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if planFile != "" {
		plan, err := convert.ReadPlanFile(ctx, planFile, cfg.Storage)
		if err != nil {
			log.Fatalln(err)
		}
		cfg.Plan = plan
	} else {
		cfg.Plan = frs.DefaultPlan()
	}

	if codingFile != "" {
		codec, err := readCodec(ctx, codingFile, cfg.Storage)
		if err != nil {
			log.Fatalln(err)
		}
		cfg.Codec = codec
	}

	log.Println("Processing", len(cfg.Plan), "extracts from", cfg.Input)

	if _, err := convert.Run(ctx, cfg); err != nil {
		log.Fatalln(err)
	}

	log.Println("Wrote tables to", cfg.Output)
}

func readCodec(ctx context.Context, location string, client *storage.Client) (*enum.Codec, error) {
	rc, err := frs2csv.OpenSource(ctx, location, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	topics, err := enum.ImportDecode(rc)
	if err != nil {
		return nil, err
	}

	return enum.NewCodec(topics...)
}

// parseComma reads the --comma flag. The escape \t is accepted for a tab;
// an empty value means the delimiter is detected.
func parseComma(value string) (rune, error) {
	if value == `\t` {
		return '\t', nil
	}

	runes := []rune(value)
	switch len(runes) {
	case 0:
		return 0, nil
	case 1:
		return runes[0], nil
	}

	return 0, fmt.Errorf("--comma must be a single character or \\t, got %q", value)
}
