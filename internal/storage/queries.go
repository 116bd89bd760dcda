package storage

import (
	"context"
	"database/sql"
	"time"
)

// Queries wraps the raw SQL statements against the transactions table.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// DBTransaction is a transactions table row.
type DBTransaction struct {
	ID          int64
	Year        int64
	Month       int64
	Day         int64
	Description string
	AmountCents int64
	Synced      bool
	SheetsRef   string
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTransactionParams struct {
	Year        int64
	Month       int64
	Day         int64
	Description string
	AmountCents int64
}

const createTransaction = `
INSERT INTO transactions (year, month, day, description, amount_cents)
VALUES (?, ?, ?, ?, ?)
RETURNING id, year, month, day, description, amount_cents, synced, sheets_ref, deleted, created_at, updated_at
`

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (DBTransaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.Year, arg.Month, arg.Day, arg.Description, arg.AmountCents)
	return scanTransaction(row)
}

const getTransaction = `
SELECT id, year, month, day, description, amount_cents, synced, sheets_ref, deleted, created_at, updated_at
FROM transactions
WHERE id = ? AND deleted = 0
`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (DBTransaction, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, id)
	return scanTransaction(row)
}

const getTransactionsByYear = `
SELECT id, year, month, day, description, amount_cents, synced, sheets_ref, deleted, created_at, updated_at
FROM transactions
WHERE year = ? AND deleted = 0
ORDER BY month, day, id
`

func (q *Queries) GetTransactionsByYear(ctx context.Context, year int64) ([]DBTransaction, error) {
	rows, err := q.db.QueryContext(ctx, getTransactionsByYear, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DBTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

const getPendingSync = `
SELECT id, year, month, day, description, amount_cents, synced, sheets_ref, deleted, created_at, updated_at
FROM transactions
WHERE synced = 0 AND deleted = 0
ORDER BY id
LIMIT ?
`

func (q *Queries) GetPendingSync(ctx context.Context, limit int64) ([]DBTransaction, error) {
	rows, err := q.db.QueryContext(ctx, getPendingSync, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DBTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

const markSynced = `
UPDATE transactions
SET synced = 1, sheets_ref = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

func (q *Queries) MarkSynced(ctx context.Context, id int64, sheetsRef string) error {
	_, err := q.db.ExecContext(ctx, markSynced, sheetsRef, id)
	return err
}

const getSheetsRef = `
SELECT sheets_ref
FROM transactions
WHERE id = ?
`

// GetSheetsRef also returns refs of soft-deleted rows so their exported
// copies can still be cleaned up.
func (q *Queries) GetSheetsRef(ctx context.Context, id int64) (string, error) {
	var ref string
	err := q.db.QueryRowContext(ctx, getSheetsRef, id).Scan(&ref)
	return ref, err
}

const softDeleteTransaction = `
UPDATE transactions
SET deleted = 1, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

func (q *Queries) SoftDeleteTransaction(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, softDeleteTransaction, id)
	return err
}

const getYearTotal = `
SELECT COALESCE(SUM(amount_cents), 0)
FROM transactions
WHERE year = ? AND deleted = 0
`

func (q *Queries) GetYearTotal(ctx context.Context, year int64) (int64, error) {
	var total int64
	err := q.db.QueryRowContext(ctx, getYearTotal, year).Scan(&total)
	return total, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (DBTransaction, error) {
	var tx DBTransaction
	err := row.Scan(
		&tx.ID,
		&tx.Year,
		&tx.Month,
		&tx.Day,
		&tx.Description,
		&tx.AmountCents,
		&tx.Synced,
		&tx.SheetsRef,
		&tx.Deleted,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	return tx, err
}
