package core

// YearOverview is a compact summary for a specific year.
type YearOverview struct {
	Year       int
	Count      int
	Total      Money
	Expenses   Money // sum of negative amounts
	Income     Money // sum of positive amounts
	Largest    Money // most negative amount of the year
	HasExpense bool  // false when no transaction of the year was negative
}

// LargestExpense scans transactions in a single forward pass and returns
// the most negative amount recorded in the given year. The second return
// is false when no transaction of that year had a negative amount.
//
// Ties keep the earlier element because only a strictly smaller amount
// replaces the current minimum.
func LargestExpense(txs []Transaction, year int) (Money, bool) {
	var min Money
	found := false
	for _, t := range txs {
		if t.Date.Year != year || !t.Amount.IsNegative() {
			continue
		}
		if !found || t.Amount.Less(min) {
			min = t.Amount
			found = true
		}
	}
	return min, found
}

// LargestExpenseTransaction is LargestExpense returning the full
// transaction, so reports can show the description alongside the amount.
func LargestExpenseTransaction(txs []Transaction, year int) (Transaction, bool) {
	var best Transaction
	found := false
	for _, t := range txs {
		if t.Date.Year != year || !t.Amount.IsNegative() {
			continue
		}
		if !found || t.Amount.Less(best.Amount) {
			best = t
			found = true
		}
	}
	return best, found
}

// Overview aggregates all transactions of the given year.
func Overview(txs []Transaction, year int) YearOverview {
	ov := YearOverview{Year: year}
	for _, t := range txs {
		if t.Date.Year != year {
			continue
		}
		ov.Count++
		ov.Total = ov.Total.Add(t.Amount)
		if t.Amount.IsNegative() {
			ov.Expenses = ov.Expenses.Add(t.Amount)
		} else {
			ov.Income = ov.Income.Add(t.Amount)
		}
	}
	ov.Largest, ov.HasExpense = LargestExpense(txs, year)
	return ov
}
