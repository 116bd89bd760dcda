// Package adapters bridges the service layer to the sheets ports used by
// the HTTP server.
package adapters

import (
	"context"
	"fmt"
	"strconv"

	"ledger/internal/core"
	"ledger/internal/services"
	ports "ledger/internal/sheets"
)

// SQLiteAdapter exposes a LedgerService through the sheets ports.
type SQLiteAdapter struct {
	service *services.LedgerService
}

var (
	_ ports.TransactionWriter  = (*SQLiteAdapter)(nil)
	_ ports.TransactionLister  = (*SQLiteAdapter)(nil)
	_ ports.ReportReader       = (*SQLiteAdapter)(nil)
	_ ports.TransactionDeleter = (*SQLiteAdapter)(nil)
)

func NewSQLiteAdapter(service *services.LedgerService) *SQLiteAdapter {
	return &SQLiteAdapter{service: service}
}

// Append implements sheets.TransactionWriter.
func (a *SQLiteAdapter) Append(ctx context.Context, t core.Transaction) (string, error) {
	return a.service.RecordTransaction(ctx, t)
}

// ListYear implements sheets.TransactionLister.
func (a *SQLiteAdapter) ListYear(ctx context.Context, year int) ([]core.Transaction, error) {
	return a.service.ListYear(ctx, year)
}

// ReadYearOverview implements sheets.ReportReader.
func (a *SQLiteAdapter) ReadYearOverview(ctx context.Context, year int) (core.YearOverview, error) {
	return a.service.ReadYearOverview(ctx, year)
}

// Delete implements sheets.TransactionDeleter. The SQLite backend hands out
// row ids as references, so the ref must parse back into one.
func (a *SQLiteAdapter) Delete(ctx context.Context, ref string) error {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed transaction reference %q: %w", ref, err)
	}
	return a.service.DeleteTransaction(ctx, id)
}
