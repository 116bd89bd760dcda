package core

import "testing"

func tx(year, month, day int, cents int64, desc string) Transaction {
	return Transaction{
		Date:        NewDate(year, month, day),
		Description: desc,
		Amount:      FromCents(cents),
	}
}

func TestLargestExpense(t *testing.T) {
	txs2023 := []Transaction{
		tx(2023, 1, 5, 250000, "salary"),
		tx(2023, 1, 10, -5530, "groceries"),
		tx(2023, 1, 15, -120000, "rent"),
		tx(2023, 2, 1, -4500, "utilities"),
		tx(2023, 3, 5, -80050, "car repair"),
		tx(2023, 3, 10, 10000, "refund"),
	}

	got, ok := LargestExpense(txs2023, 2023)
	if !ok {
		t.Fatal("expected an expense for 2023")
	}
	if got.Cents != -120000 {
		t.Fatalf("largest 2023 expense = %s, want -1200.00", got)
	}

	// A year nothing was recorded in yields no value.
	if _, ok := LargestExpense(txs2023, 2020); ok {
		t.Fatal("expected no expense for 2020")
	}
}

func TestLargestExpenseZeroNotAnExpense(t *testing.T) {
	txs := []Transaction{
		tx(2024, 1, 8, -15075, "insurance"),
		tx(2024, 1, 15, -200000, "tuition"),
		tx(2024, 2, 5, 300000, "bonus"),
		tx(2024, 2, 10, -1000, "coffee"),
		tx(2024, 2, 15, 0, "voided payment"),
	}

	got, ok := LargestExpense(txs, 2024)
	if !ok || got.Cents != -200000 {
		t.Fatalf("largest 2024 expense = %v (ok=%v), want -2000.00", got, ok)
	}
}

func TestLargestExpenseNoNegatives(t *testing.T) {
	txs := []Transaction{
		tx(2025, 1, 1, 100, "deposit"),
		tx(2025, 6, 1, 0, "noop"),
	}
	if _, ok := LargestExpense(txs, 2025); ok {
		t.Fatal("year with only non-negative amounts must yield no value")
	}
	if _, ok := LargestExpense(nil, 2025); ok {
		t.Fatal("empty input must yield no value")
	}
}

func TestLargestExpenseTies(t *testing.T) {
	txs := []Transaction{
		tx(2023, 1, 1, -500, "first"),
		tx(2023, 2, 1, -500, "second"),
	}
	best, ok := LargestExpenseTransaction(txs, 2023)
	if !ok || best.Description != "first" {
		t.Fatalf("tie should keep the earlier transaction, got %+v", best)
	}
}

func TestOverview(t *testing.T) {
	txs := []Transaction{
		tx(2023, 1, 5, 250000, "salary"),
		tx(2023, 1, 10, -5530, "groceries"),
		tx(2023, 1, 15, -120000, "rent"),
		tx(2022, 12, 31, -999999, "last year"),
	}

	ov := Overview(txs, 2023)
	if ov.Count != 3 {
		t.Errorf("Count = %d, want 3", ov.Count)
	}
	if ov.Total.Cents != 124470 {
		t.Errorf("Total = %d, want 124470", ov.Total.Cents)
	}
	if ov.Expenses.Cents != -125530 {
		t.Errorf("Expenses = %d, want -125530", ov.Expenses.Cents)
	}
	if ov.Income.Cents != 250000 {
		t.Errorf("Income = %d, want 250000", ov.Income.Cents)
	}
	if !ov.HasExpense || ov.Largest.Cents != -120000 {
		t.Errorf("Largest = %v (ok=%v), want -120000", ov.Largest.Cents, ov.HasExpense)
	}
}
