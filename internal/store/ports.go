package store

import (
	"context"

	"findash/internal/core"
)

// Ports for data backends. Both return data fixed at load time.
type (
	// TransactionReader returns the full transaction set in stored order.
	TransactionReader interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// AggregateReader returns the stored chart projections.
	AggregateReader interface {
		ReadAggregates(ctx context.Context) (core.Aggregates, error)
	}
)
