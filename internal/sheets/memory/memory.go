package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"ledger/internal/core"
)

// Store keeps transactions in memory. It is the default backend for local
// development and the test double for everything that talks to a
// TransactionWriter or lister.
type Store struct {
	mu     sync.Mutex
	nextID int
	items  []entry
}

// entry pairs a transaction with the id its reference was minted from.
// Ids are never reused, so references stay valid across deletes.
type entry struct {
	id int
	tx core.Transaction
}

func New() *Store {
	return &Store{}
}

// Append stores the transaction and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.items = append(s.items, entry{id: s.nextID, tx: t})
	return fmt.Sprintf("mem:%d", s.nextID), nil
}

// ListYear returns the transactions of a year in insertion order.
func (s *Store) ListYear(_ context.Context, year int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, e := range s.items {
		if e.tx.Date.Year == year {
			out = append(out, e.tx)
		}
	}
	return out, nil
}

// ReadYearOverview aggregates the stored transactions for a year.
func (s *Store) ReadYearOverview(_ context.Context, year int) (core.YearOverview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := make([]core.Transaction, len(s.items))
	for i, e := range s.items {
		txs[i] = e.tx
	}
	return core.Overview(txs, year), nil
}

// Delete removes the transaction behind a "mem:N" reference.
func (s *Store) Delete(_ context.Context, ref string) error {
	id, err := parseRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.id == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown reference %q", ref)
}

func parseRef(ref string) (int, error) {
	raw, ok := strings.CutPrefix(ref, "mem:")
	if !ok {
		return 0, fmt.Errorf("malformed reference %q", ref)
	}
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("malformed reference %q: %w", ref, err)
	}
	return idx, nil
}
