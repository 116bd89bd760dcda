package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/storage"
)

// LedgerService orchestrates transaction recording across SQLite and AMQP
// and computes the yearly reports.
type LedgerService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewLedgerService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// RecordTransaction saves a transaction locally and publishes a sync message.
// A failed publish does not fail the request; the periodic worker sweep
// picks the row up later.
func (s *LedgerService) RecordTransaction(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validate transaction: %w", err)
	}

	ref, err := s.storage.Append(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to parse transaction ID", "ref", ref, "error", err)
		return ref, nil // SQLite save succeeded
	}

	if err := s.publishSyncMessage(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
	}

	return ref, nil
}

// DeleteTransaction soft deletes a transaction locally and publishes a
// delete message.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.storage.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}

	if err := s.publishDeleteMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
	}

	return nil
}

// ListYear returns every transaction recorded in a year.
func (s *LedgerService) ListYear(ctx context.Context, year int) ([]core.Transaction, error) {
	return s.storage.ListYear(ctx, year)
}

// LargestExpense returns the most negative amount of a year, with ok false
// when the year holds no expense.
func (s *LedgerService) LargestExpense(ctx context.Context, year int) (core.Transaction, bool, error) {
	txs, err := s.storage.ListYear(ctx, year)
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("list year: %w", err)
	}
	best, ok := core.LargestExpenseTransaction(txs, year)
	return best, ok, nil
}

// ReadYearOverview aggregates a full year.
func (s *LedgerService) ReadYearOverview(ctx context.Context, year int) (core.YearOverview, error) {
	txs, err := s.storage.ListYear(ctx, year)
	if err != nil {
		return core.YearOverview{}, fmt.Errorf("list year: %w", err)
	}
	return core.Overview(txs, year), nil
}

func (s *LedgerService) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, id, version)
}

func (s *LedgerService) publishDeleteMessage(ctx context.Context, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}
	return s.amqpClient.PublishTransactionDelete(ctx, id)
}

// Close closes both storage and AMQP connections
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
