// Package dashboard assembles the read-only data set the dashboard and the
// report render: transactions, category options, chart aggregates and the
// summary panel.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"findash/internal/config"
	"findash/internal/core"
	"findash/internal/ledger"
	"findash/internal/store"
)

// Source is what a backend must provide.
type Source interface {
	store.TransactionReader
	store.AggregateReader
}

// Data is loaded once and never mutated afterwards.
type Data struct {
	Transactions []core.Transaction
	Options      []ledger.Option
	Aggregates   core.Aggregates
	Summary      core.Summary
	Mode         string
	Mismatches   []core.Mismatch
}

// Load reads the backend and resolves the aggregates for mode. In fixture
// mode stored aggregates are used as is and disagreements with the
// transactions are reported; in derived mode they are recomputed.
func Load(ctx context.Context, src Source, mode string, logger *slog.Logger) (*Data, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		txs    []core.Transaction
		stored core.Aggregates
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if txs, err = src.ListTransactions(gctx); err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if stored, err = src.ReadAggregates(gctx); err != nil {
			return fmt.Errorf("read aggregates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := core.ValidateTransactions(txs); err != nil {
		return nil, fmt.Errorf("validate transactions: %w", err)
	}

	d := &Data{
		Transactions: txs,
		Options:      ledger.CategoryOptions(txs),
		Mode:         mode,
	}

	derived := core.DeriveAggregates(txs)
	switch mode {
	case config.AggregatesDerived:
		d.Aggregates = derived
	case config.AggregatesFixture, "":
		d.Mode = config.AggregatesFixture
		d.Aggregates = stored
		d.Mismatches = core.CompareAggregates(stored, derived)
		if len(d.Mismatches) > 0 {
			details := make([]string, 0, len(d.Mismatches))
			for _, m := range d.Mismatches {
				details = append(details, fmt.Sprintf("%s %s: stored %s, derived %s", m.Kind, m.Name, m.Stored, m.Derived))
			}
			logger.WarnContext(ctx, "Stored aggregates disagree with transactions",
				"count", len(d.Mismatches),
				"mismatches", details)
		}
	default:
		return nil, fmt.Errorf("unknown aggregates mode %q", mode)
	}

	d.Summary = core.Summarize(d.Aggregates.Monthly)

	logger.InfoContext(ctx, "Dashboard data ready",
		"transactions", len(d.Transactions),
		"categories", len(d.Aggregates.Categories),
		"months", len(d.Aggregates.Monthly),
		"aggregates_mode", d.Mode)
	return d, nil
}

// Query normalizes raw params against the loaded category options.
func (d *Data) Query(p ledger.Params) (ledger.Query, []ledger.Correction) {
	return ledger.Normalize(p, d.Options)
}
