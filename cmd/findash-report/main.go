package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/GiGurra/boa/pkg/boa"

	"findash/internal/chart"
	"findash/internal/cli"
	"findash/internal/config"
	"findash/internal/dashboard"
	"findash/internal/export"
	"findash/internal/ledger"
	"findash/internal/log"
	"findash/internal/report"
	"findash/internal/store/memory"
)

type Params struct {
	Search   string `descr:"Case-insensitive text matched against description and category" optional:"true"`
	Category string `descr:"Category to filter by" default:"all"`
	Sort     string `descr:"Column to sort by" default:"date" alts:"date,description,amount,category"`
	Dir      string `descr:"Sort direction" default:"desc" alts:"asc,desc"`
	Fixture  string `descr:"YAML fixture file to read instead of the configured backend" optional:"true"`
	Slice    int    `descr:"Index of the category slice to highlight" default:"0"`
	Xlsx     string `descr:"Also write the view to this XLSX file" optional:"true"`
	Color    bool   `descr:"Colorize amounts" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("findash-report").
		WithShort("Print the dashboard transaction table in the terminal").
		WithLong("Filters and sorts the dashboard transactions the same way the web table does, prints them with the net total and optionally exports the view to an XLSX workbook.").
		WithRunFunc(func(params *Params) {
			cli.LoadEnvFile()
			if err := run(context.Background(), params, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(ctx context.Context, p *Params, stdout, stderr io.Writer) error {
	logger := log.New(log.Config{
		Handler:   slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
		Component: log.ComponentReport,
	})

	data, cleanup, err := loadData(ctx, logger, p.Fixture)
	if err != nil {
		return err
	}
	defer cleanup()

	q, fixes := data.Query(ledger.Params{
		Search:    p.Search,
		Category:  p.Category,
		Column:    p.Sort,
		Direction: p.Dir,
	})
	structured := log.NewStructuredLogger(logger)
	for _, f := range fixes {
		structured.LogCorrection(ctx, f.Field, f.Got, f.Used)
	}

	view := ledger.NewView(data.Transactions)
	view.SetSearch(q.Search)
	view.SetCategory(q.Category)
	view.SortBy(q.Sort)
	if p.Slice < 0 || (p.Slice > 0 && p.Slice >= len(data.Aggregates.Categories)) {
		structured.LogCorrection(ctx, "slice", strconv.Itoa(p.Slice), "0")
	} else {
		view.SetActiveSlice(p.Slice)
	}
	txs := view.Transactions()

	report.PrintTransactions(stdout, txs, len(data.Transactions), view.Query(), view.Options(), report.Options{Color: p.Color})

	if pie := chart.BuildPie(data.Aggregates.Categories, view.ActiveSlice()); pie.Label != nil {
		fmt.Fprintf(stdout, "Highlighted slice: %s %s %s\n",
			pie.Label.Name.Content, pie.Label.Value.Content, pie.Label.Percent.Content)
	}

	if p.Xlsx != "" {
		if err := export.SaveAs(p.Xlsx, txs, view.Query(), data.Aggregates); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nWrote %d transactions to %s\n", len(txs), p.Xlsx)
	}
	return nil
}

// loadData reads a fixture file when given, the configured backend otherwise.
func loadData(ctx context.Context, logger *log.Logger, fixture string) (*dashboard.Data, func() error, error) {
	if fixture != "" {
		store, err := memory.NewFromFile(fixture)
		if err != nil {
			return nil, nil, err
		}
		data, err := dashboard.Load(ctx, store, config.AggregatesFixture, logger.Logger)
		if err != nil {
			return nil, nil, err
		}
		return data, func() error { return nil }, nil
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	data, cleanup, err := cli.LoadDashboard(ctx, logger, cfg)
	if err != nil {
		return nil, nil, err
	}
	return data, cleanup, nil
}
