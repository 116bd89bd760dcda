package worker

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"ledger/internal/amqp"
	"ledger/internal/core"
	"ledger/internal/storage"
)

type recordingWriter struct {
	appends int
}

func (w *recordingWriter) Append(_ context.Context, _ core.Transaction) (string, error) {
	w.appends++
	return "2023 Transactions!" + strconv.Itoa(w.appends), nil
}

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedTransaction(t *testing.T, repo *storage.SQLiteRepository) int64 {
	t.Helper()
	ref, err := repo.Append(context.Background(), core.Transaction{
		Date:        core.NewDate(2023, 1, 10),
		Description: "groceries",
		Amount:      core.FromCents(-5530),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		t.Fatalf("parse ref %q: %v", ref, err)
	}
	return id
}

func TestHandleSyncMessageExports(t *testing.T) {
	repo := newTestRepo(t)
	writer := &recordingWriter{}
	w := NewSyncWorker(repo, writer, nil, 10)

	id := seedTransaction(t, repo)
	if err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage(id, 1)); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}
	if writer.appends != 1 {
		t.Fatalf("appends = %d, want 1", writer.appends)
	}

	ref, err := repo.SheetsRef(context.Background(), id)
	if err != nil || ref == "" {
		t.Fatalf("SheetsRef after export = %q, %v", ref, err)
	}
}

func TestHandleSyncMessageMissingRow(t *testing.T) {
	repo := newTestRepo(t)
	writer := &recordingWriter{}
	w := NewSyncWorker(repo, writer, nil, 10)

	// A message for an id that never existed must be acked, not requeued.
	if err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage(999, 1)); err != nil {
		t.Fatalf("missing row must not be an error, got %v", err)
	}
	if writer.appends != 0 {
		t.Errorf("appends = %d, want 0", writer.appends)
	}
}

func TestHandleSyncMessageSoftDeletedRow(t *testing.T) {
	repo := newTestRepo(t)
	writer := &recordingWriter{}
	w := NewSyncWorker(repo, writer, nil, 10)
	ctx := context.Background()

	// Record, then delete before the worker sees the sync message. The
	// message must be dropped cleanly or it blocks the queue and the
	// trailing delete message behind it.
	id := seedTransaction(t, repo)
	if err := repo.SoftDelete(ctx, id); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if err := w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(id, 1)); err != nil {
		t.Fatalf("soft-deleted row must not be an error, got %v", err)
	}
	if writer.appends != 0 {
		t.Errorf("appends = %d, want 0", writer.appends)
	}
}
