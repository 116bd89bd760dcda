package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledger/internal/amqp"
	"ledger/internal/sheets"
	"ledger/internal/storage"
)

// SyncWorker exports recorded transactions from SQLite to Google Sheets.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.TransactionWriter
	deleter   sheets.TransactionDeleter
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, writer sheets.TransactionWriter, deleter sheets.TransactionDeleter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		writer:    writer,
		deleter:   deleter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	return w.exportTransaction(ctx, msg.ID)
}

// HandleDeleteMessage processes a single transaction delete message from AMQP.
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.TransactionDeleteMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "id", msg.ID)

	if w.deleter == nil {
		slog.WarnContext(ctx, "No transaction deleter configured, skipping sheet deletion",
			"id", msg.ID)
		return nil
	}

	ref, err := w.storage.SheetsRef(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get sheets ref: %w", err)
	}
	if ref == "" {
		// Never exported, nothing to clean up.
		slog.InfoContext(ctx, "Transaction was never exported, nothing to delete", "id", msg.ID)
		return nil
	}

	if err := w.deleter.Delete(ctx, ref); err != nil {
		return fmt.Errorf("delete exported transaction: %w", err)
	}

	slog.InfoContext(ctx, "Exported transaction deleted", "id", msg.ID, "sheets_ref", ref)
	return nil
}

// ProcessPendingTransactions exports transactions the AMQP path missed.
// Runs periodically and once at startup.
func (w *SyncWorker) ProcessPendingTransactions(ctx context.Context) error {
	ids, err := w.storage.PendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("load pending transactions: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.exportTransaction(ctx, id); err != nil {
			// Keep going; the next sweep retries this row.
			slog.ErrorContext(ctx, "Failed to export pending transaction",
				"id", id, "error", err)
		}
	}

	return nil
}

// StartupSyncCheck processes any rows left unsynced by a previous run.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	slog.InfoContext(ctx, "Running startup sync check")
	return w.ProcessPendingTransactions(ctx)
}

func (w *SyncWorker) exportTransaction(ctx context.Context, id int64) error {
	t, err := w.storage.GetTransaction(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		// The row was deleted before the export ran. Returning an error
		// here would requeue the message forever, so ack it as done.
		slog.InfoContext(ctx, "Transaction no longer exists, skipping export", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.writer.Append(ctx, t)
	if err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id, ref); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction exported",
		"id", id,
		"sheets_ref", ref,
		"amount_cents", t.Amount.Cents)

	return nil
}
