// Command ledger-report prints the largest expense of a year from the
// local SQLite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ledger/internal/cli"
	"ledger/internal/core"
)

func main() {
	year := flag.Int("year", time.Now().Year(), "year to report on")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx := context.Background()
	txs, err := repo.ListYear(ctx, *year)
	if err != nil {
		logger.Error("Failed to load transactions", "error", err, "year", *year)
		os.Exit(1)
	}

	best, ok := core.LargestExpenseTransaction(txs, *year)
	if !ok {
		fmt.Printf("No expenses recorded in %d\n", *year)
		return
	}

	fmt.Printf("Largest expense in %d: %s (%s, %04d-%02d-%02d)\n",
		*year, best.Amount, best.Description,
		best.Date.Year, best.Date.Month, best.Date.Day)

	ov := core.Overview(txs, *year)
	fmt.Printf("Transactions: %d, total %s, expenses %s, income %s\n",
		ov.Count, ov.Total, ov.Expenses, ov.Income)

	// Cross-check the scan against the SQL-side sum.
	total, err := repo.YearTotal(ctx, *year)
	if err != nil {
		logger.Error("Failed to compute year total", "error", err, "year", *year)
		os.Exit(1)
	}
	if !total.Equal(ov.Total) {
		fmt.Printf("Warning: stored total %s disagrees with scan total %s\n", total, ov.Total)
	}
}
