package memory

import (
	"context"
	"testing"

	"ledger/internal/core"
)

func tx(year, month, day int, cents int64, desc string) core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(year, month, day),
		Description: desc,
		Amount:      core.FromCents(cents),
	}
}

func TestAppendAndListYear(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, tx(2023, 1, 10, -5530, "groceries"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}
	if _, err := s.Append(ctx, tx(2024, 1, 8, -15075, "insurance")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.ListYear(ctx, 2023)
	if err != nil {
		t.Fatalf("ListYear: %v", err)
	}
	if len(got) != 1 || got[0].Description != "groceries" {
		t.Fatalf("ListYear(2023) = %+v", got)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()
	bad := tx(2023, 13, 1, 100, "bad month")
	if _, err := s.Append(context.Background(), bad); err != core.ErrInvalidMonth {
		t.Fatalf("Append invalid = %v, want ErrInvalidMonth", err)
	}
}

func TestReadYearOverview(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, entry := range []core.Transaction{
		tx(2023, 1, 5, 250000, "salary"),
		tx(2023, 1, 15, -120000, "rent"),
		tx(2023, 2, 1, -4500, "utilities"),
	} {
		if _, err := s.Append(ctx, entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	ov, err := s.ReadYearOverview(ctx, 2023)
	if err != nil {
		t.Fatalf("ReadYearOverview: %v", err)
	}
	if ov.Count != 3 || !ov.HasExpense || ov.Largest.Cents != -120000 {
		t.Fatalf("overview = %+v", ov)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, _ := s.Append(ctx, tx(2023, 1, 1, -100, "one"))
	if err := s.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := s.ListYear(ctx, 2023)
	if len(got) != 0 {
		t.Fatalf("ListYear after delete = %+v", got)
	}

	if err := s.Delete(ctx, "mem:99"); err == nil {
		t.Fatal("deleting unknown reference should fail")
	}
	if err := s.Delete(ctx, "bogus"); err == nil {
		t.Fatal("malformed reference should fail")
	}
}

func TestDeleteKeepsReferencesStable(t *testing.T) {
	s := New()
	ctx := context.Background()

	refA, _ := s.Append(ctx, tx(2023, 1, 1, -100, "a"))
	refB, _ := s.Append(ctx, tx(2023, 1, 2, -200, "b"))
	refC, _ := s.Append(ctx, tx(2023, 1, 3, -300, "c"))

	// Deleting from the middle must not invalidate later references.
	if err := s.Delete(ctx, refB); err != nil {
		t.Fatalf("Delete(%s): %v", refB, err)
	}
	if err := s.Delete(ctx, refC); err != nil {
		t.Fatalf("Delete(%s) after earlier delete: %v", refC, err)
	}

	got, _ := s.ListYear(ctx, 2023)
	if len(got) != 1 || got[0].Description != "a" {
		t.Fatalf("ListYear = %+v, want only a", got)
	}
	if err := s.Delete(ctx, refA); err != nil {
		t.Fatalf("Delete(%s): %v", refA, err)
	}

	// A spent reference stays spent; the id is never reissued.
	if err := s.Delete(ctx, refB); err == nil {
		t.Fatal("reusing a deleted reference should fail")
	}
	refD, _ := s.Append(ctx, tx(2023, 2, 1, -400, "d"))
	if refD == refA || refD == refB || refD == refC {
		t.Fatalf("new reference %s collides with an old one", refD)
	}
}
