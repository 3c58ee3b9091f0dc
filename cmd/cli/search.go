package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dsjohal14/quickspot/internal/libs/obs"
	"github.com/dsjohal14/quickspot/internal/loader"
	"github.com/dsjohal14/quickspot/internal/scope/db"
	"github.com/dsjohal14/quickspot/internal/scope/record"
	"github.com/dsjohal14/quickspot/internal/scope/textnorm"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	data          string
	querySQL      string
	key           string
	searchOn      []string
	filter        string
	filterColumn  string
	limit         int
	noOccurrences bool
	normalizer    string
	asJSON        bool
	logLevel      string
	timeout       time.Duration
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "quickspot",
		Short:        "Quickspot CLI",
		SilenceUsage: true,
	}
	root.AddCommand(newSearchCmd())
	return root
}

func newSearchCmd() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search a dataset and print ranked matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.data, "data", "d", "data.json", "dataset file (.json, .yaml) or postgres:// URL")
	f.StringVar(&opts.querySQL, "query-sql", loader.DefaultQuery, "SQL used when --data is a postgres URL")
	f.StringVarP(&opts.key, "key", "k", "name", "key field used for title scoring")
	f.StringSliceVar(&opts.searchOn, "search-on", nil, "fields to search (default all)")
	f.StringVar(&opts.filter, "filter", "", "narrow the dataset to records matching this text before searching")
	f.StringVar(&opts.filterColumn, "filter-column", "", "field the filter is applied to (default the search blob)")
	f.IntVarP(&opts.limit, "limit", "n", 10, "maximum results to print (0 for all)")
	f.BoolVar(&opts.noOccurrences, "no-occurrence-weighting", false, "do not score repeated matches")
	f.StringVar(&opts.normalizer, "normalizer", "simplify", "text normalizer: simplify, fold or none")
	f.BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "dataset load timeout")

	return cmd
}

func runSearch(ctx context.Context, out, errOut io.Writer, opts *searchOptions, query string) error {
	obs.InitLogger(opts.logLevel)
	obs.UseConsole(errOut)
	logger := obs.Logger("cli")

	if opts.limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	normalizer, err := textnorm.ByName(opts.normalizer)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	src := loader.Open(opts.data, opts.querySQL)
	data, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", src.Name(), err)
	}

	cfg := db.Config{
		KeyValue:                   db.Literal(opts.key),
		DisableOccurrenceWeighting: opts.noOccurrences,
		Normalizer:                 normalizer,
		Logger:                     &logger,
	}
	if len(opts.searchOn) > 0 {
		cfg.SearchOn = db.Literal(opts.searchOn)
	}

	store, err := db.New(data, cfg)
	if err != nil {
		return err
	}

	if opts.filter != "" {
		var column []string
		if opts.filterColumn != "" {
			column = append(column, opts.filterColumn)
		}
		store.Filter(opts.filter, column...)
		logger.Debug().Int("scope", store.FilteredLen()).Msg("filter applied")
	}

	results, err := store.Search(query)
	if err != nil {
		return err
	}
	total := len(results)
	if opts.limit > 0 && len(results) > opts.limit {
		results = results[:opts.limit]
	}

	if opts.asJSON {
		return writeJSON(out, results)
	}
	return writeTable(out, results, store.KeyField(), total)
}

type jsonResult struct {
	Record      *record.Record `json:"record"`
	Score       float64        `json:"score"`
	LengthDelta int            `json:"length_delta"`
}

func writeJSON(w io.Writer, results []*record.Record) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{Record: r, Score: r.Score, LengthDelta: r.LengthDelta}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTable(w io.Writer, results []*record.Record, keyField string, total int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SCORE\t%s\n", keyField)
	for _, r := range results {
		fmt.Fprintf(tw, "%g\t%s\n", r.Score, r.GetString(keyField))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d matches\n", len(results), total)
	return err
}
