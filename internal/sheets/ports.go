// Package sheets defines the ports the ledger uses to persist and export
// transactions. Implementations live in the sqlite storage layer, the
// in-memory store and the Google Sheets client.
package sheets

import (
	"context"

	"ledger/internal/core"
)

// TransactionWriter appends a transaction and returns an opaque row
// reference (database id, sheet row, ...).
type TransactionWriter interface {
	Append(ctx context.Context, t core.Transaction) (string, error)
}

// TransactionLister returns every transaction recorded in a year, in the
// order they were recorded.
type TransactionLister interface {
	ListYear(ctx context.Context, year int) ([]core.Transaction, error)
}

// ReportReader computes the yearly overview, including the largest expense.
type ReportReader interface {
	ReadYearOverview(ctx context.Context, year int) (core.YearOverview, error)
}

// TransactionDeleter removes a previously exported transaction.
type TransactionDeleter interface {
	Delete(ctx context.Context, ref string) error
}
