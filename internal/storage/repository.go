package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"ledger/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a transaction id does not exist or was deleted.
var ErrNotFound = errors.New("transaction not found")

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements sheets.TransactionWriter.
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) (string, error) {
	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		Year:        int64(t.Date.Year),
		Month:       int64(t.Date.Month),
		Day:         int64(t.Date.Day),
		Description: t.Description,
		AmountCents: t.Amount.Cents,
	})
	if err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", row.ID,
		"description", row.Description,
		"amount_cents", row.AmountCents,
		"year", row.Year)

	return strconv.FormatInt(row.ID, 10), nil
}

// GetTransaction returns a single transaction by id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, ErrNotFound
		}
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return toCore(row), nil
}

// ListYear implements sheets.TransactionLister.
func (r *SQLiteRepository) ListYear(ctx context.Context, year int) ([]core.Transaction, error) {
	rows, err := r.queries.GetTransactionsByYear(ctx, int64(year))
	if err != nil {
		return nil, fmt.Errorf("get transactions by year: %w", err)
	}

	txs := make([]core.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = toCore(row)
	}
	return txs, nil
}

// PendingSync returns up to limit transactions not yet exported.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.queries.GetPendingSync(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending sync: %w", err)
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// MarkSynced records that a transaction reached the export target and
// remembers its sheet reference for later deletes.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64, sheetsRef string) error {
	if err := r.queries.MarkSynced(ctx, id, sheetsRef); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return nil
}

// SheetsRef returns the export reference stored for a transaction, empty
// when it was never exported. Soft-deleted rows are included.
func (r *SQLiteRepository) SheetsRef(ctx context.Context, id int64) (string, error) {
	ref, err := r.queries.GetSheetsRef(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get sheets ref: %w", err)
	}
	return ref, nil
}

// SoftDelete hides a transaction without losing the row.
func (r *SQLiteRepository) SoftDelete(ctx context.Context, id int64) error {
	if err := r.queries.SoftDeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	return nil
}

// YearTotal returns the summed amount for a year straight from SQL.
func (r *SQLiteRepository) YearTotal(ctx context.Context, year int) (core.Money, error) {
	total, err := r.queries.GetYearTotal(ctx, int64(year))
	if err != nil {
		return core.Money{}, fmt.Errorf("get year total: %w", err)
	}
	return core.FromCents(total), nil
}

func toCore(row DBTransaction) core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(int(row.Year), int(row.Month), int(row.Day)),
		Description: row.Description,
		Amount:      core.FromCents(row.AmountCents),
	}
}
