package google

import "testing"

func TestParseRow(t *testing.T) {
	got, err := parseRow([]interface{}{"2023-01-15", "rent", "-1200.00"})
	if err != nil {
		t.Fatalf("parseRow: %v", err)
	}
	if got.Date.Year != 2023 || got.Date.Month != 1 || got.Date.Day != 15 {
		t.Errorf("date = %+v", got.Date)
	}
	if got.Description != "rent" || got.Amount.Cents != -120000 {
		t.Errorf("row = %+v", got)
	}

	bad := [][]interface{}{
		{"2023-01-15", "rent"},                 // too short
		{"15/01/2023", "rent", "-1200.00"},     // wrong date layout
		{"2023-01-15", "rent", "twelve euros"}, // bad amount
	}
	for _, row := range bad {
		if _, err := parseRow(row); err == nil {
			t.Errorf("parseRow(%v) expected error", row)
		}
	}
}

func TestParseRef(t *testing.T) {
	sheet, row, err := parseRef("2023 Transactions!14")
	if err != nil || sheet != "2023 Transactions" || row != 14 {
		t.Fatalf("parseRef = %q, %d, %v", sheet, row, err)
	}

	for _, ref := range []string{"no-bang", "Sheet!zero", "Sheet!0", "Sheet!-1"} {
		if _, _, err := parseRef(ref); err == nil {
			t.Errorf("parseRef(%q) expected error", ref)
		}
	}
}

func TestSheetName(t *testing.T) {
	c := &Client{sheetBase: "Transactions"}
	if got := c.sheetName(2023); got != "2023 Transactions" {
		t.Errorf("sheetName = %q", got)
	}
}
