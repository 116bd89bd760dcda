// Package google exports ledger transactions to a Google Sheets
// spreadsheet using a service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"ledger/internal/core"
	ports "ledger/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Base sheet name without year; rows for a year land on "<year> <base>".
	sheetBase string
}

// Ensure interface conformance
var (
	_ ports.TransactionWriter  = (*Client)(nil)
	_ ports.TransactionLister  = (*Client)(nil)
	_ ports.TransactionDeleter = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "Transactions") and service account
// credentials via GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetBase := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetBase == "" {
		sheetBase = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
	}, nil
}

// newSheetsService initializes a Sheets Service using service account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// Append writes one transaction row and returns "<sheet>!<row>" as ref.
func (c *Client) Append(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	sheet := c.sheetName(t.Date.Year)

	// Find the next empty row from the current sheet dimensions
	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read sheet dimensions: %w", err)
	}
	row := len(resp.Values) + 1

	values := &gsheet.ValueRange{
		Values: [][]interface{}{{
			fmt.Sprintf("%04d-%02d-%02d", t.Date.Year, t.Date.Month, t.Date.Day),
			t.Description,
			t.Amount.String(),
		}},
	}

	writeRange := fmt.Sprintf("%s!A%d:C%d", sheet, row, row)
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, writeRange, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append transaction row: %w", err)
	}

	slog.InfoContext(ctx, "Transaction exported to sheet",
		"sheet", sheet,
		"row", row,
		"amount_cents", t.Amount.Cents)

	return fmt.Sprintf("%s!%d", sheet, row), nil
}

// ListYear reads back the transaction rows of a year's sheet.
func (c *Client) ListYear(ctx context.Context, year int) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:C", c.sheetName(year))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read transaction rows: %w", err)
	}

	var out []core.Transaction
	for i, row := range resp.Values {
		t, err := parseRow(row)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed sheet row", "row", i+1, "error", err)
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// ReadYearOverview aggregates the exported rows of a year.
func (c *Client) ReadYearOverview(ctx context.Context, year int) (core.YearOverview, error) {
	txs, err := c.ListYear(ctx, year)
	if err != nil {
		return core.YearOverview{}, err
	}
	return core.Overview(txs, year), nil
}

// Delete blanks the row behind a "<sheet>!<row>" reference. Blanking keeps
// later references stable, unlike removing the row.
func (c *Client) Delete(ctx context.Context, ref string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	sheet, row, err := parseRef(ref)
	if err != nil {
		return err
	}

	rng := fmt.Sprintf("%s!A%d:C%d", sheet, row, row)
	req := &gsheet.ClearValuesRequest{}
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear transaction row: %w", err)
	}

	slog.InfoContext(ctx, "Transaction row cleared", "sheet", sheet, "row", row)
	return nil
}

func (c *Client) sheetName(year int) string {
	return fmt.Sprintf("%d %s", year, c.sheetBase)
}

func parseRow(row []interface{}) (core.Transaction, error) {
	if len(row) < 3 {
		return core.Transaction{}, fmt.Errorf("row has %d cells, want 3", len(row))
	}

	dateStr, _ := row[0].(string)
	desc, _ := row[1].(string)
	amountStr, _ := row[2].(string)

	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", dateStr, err)
	}

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amountStr, err)
	}

	return core.Transaction{
		Date:        core.NewDate(date.Year(), int(date.Month()), date.Day()),
		Description: desc,
		Amount:      core.FromCents(cents),
	}, nil
}

func parseRef(ref string) (string, int, error) {
	sheet, rawRow, ok := strings.Cut(ref, "!")
	if !ok {
		return "", 0, fmt.Errorf("malformed sheet reference %q", ref)
	}
	row, err := strconv.Atoi(rawRow)
	if err != nil || row < 1 {
		return "", 0, fmt.Errorf("malformed sheet reference %q", ref)
	}
	return sheet, row, nil
}
