package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/sheets"
)

type createTransactionRequest struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
	Amount      string `json:"amount"` // signed decimal, "-55.30"
}

type transactionResponse struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
}

type createTransactionResponse struct {
	Ref         string              `json:"ref"`
	Transaction transactionResponse `json:"transaction"`
}

type listTransactionsResponse struct {
	Year         int                   `json:"year"`
	Transactions []transactionResponse `json:"transactions"`
}

type largestExpenseResponse struct {
	Year        int    `json:"year"`
	Found       bool   `json:"found"`
	Amount      string `json:"amount,omitempty"`
	AmountCents int64  `json:"amount_cents,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

type yearOverviewResponse struct {
	Year          int    `json:"year"`
	Count         int    `json:"count"`
	Total         string `json:"total"`
	Expenses      string `json:"expenses"`
	Income        string `json:"income"`
	HasExpense    bool   `json:"has_expense"`
	LargestAmount string `json:"largest_expense,omitempty"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodDelete:
		s.handleDeleteTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.ErrorContext(r.Context(), "Failed to decode request body", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	t := core.Transaction{
		Date:        date,
		Description: sanitizeInput(req.Description),
		Amount:      core.FromCents(cents),
	}
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid transaction: %v", err))
		return
	}

	ref, err := s.backend.Append(r.Context(), t)
	if err != nil {
		fields := log.NewFields().
			WithOperation(log.OpAppend).
			WithError(err).
			WithTransaction(t.Description, t.Amount.Cents, t.Date.Year)
		logger.ErrorContext(r.Context(), "Failed to save transaction", fields.ToSlice()...)
		writeError(w, http.StatusInternalServerError, "error saving transaction")
		return
	}

	// Reports for this year are stale now.
	s.reportCache.Purge()

	fields := log.NewFields().
		WithOperation(log.OpCreate).
		WithTransaction(t.Description, t.Amount.Cents, t.Date.Year)
	logger.InfoContext(r.Context(), "Transaction created", append(fields.ToSlice(), "ref", ref)...)

	writeJSON(w, http.StatusCreated, createTransactionResponse{
		Ref:         ref,
		Transaction: toResponse(t),
	})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	deleter, ok := s.backend.(sheets.TransactionDeleter)
	if !ok {
		writeError(w, http.StatusNotImplemented, "delete not supported by this backend")
		return
	}

	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref == "" {
		writeError(w, http.StatusBadRequest, "missing ref parameter")
		return
	}

	if err := deleter.Delete(r.Context(), ref); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete transaction", "error", err, "ref", ref)
		writeError(w, http.StatusInternalServerError, "error deleting transaction")
		return
	}

	s.reportCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	year := parseYear(r)

	txs, err := s.backend.ListYear(r.Context(), year)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to list transactions", "error", err, "year", year)
		writeError(w, http.StatusInternalServerError, "error listing transactions")
		return
	}

	resp := listTransactionsResponse{
		Year:         year,
		Transactions: make([]transactionResponse, len(txs)),
	}
	for i, t := range txs {
		resp.Transactions[i] = toResponse(t)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLargestExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year := parseYear(r)
	cacheKey := fmt.Sprintf("largest-expense:%d", year)
	if body, ok := s.reportCache.Get(cacheKey); ok {
		writeJSONBytes(w, http.StatusOK, body)
		return
	}

	txs, err := s.backend.ListYear(r.Context(), year)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to compute largest expense", "error", err, "year", year)
		writeError(w, http.StatusInternalServerError, "error computing report")
		return
	}

	resp := largestExpenseResponse{Year: year}
	if best, ok := core.LargestExpenseTransaction(txs, year); ok {
		resp.Found = true
		resp.Amount = best.Amount.String()
		resp.AmountCents = best.Amount.Cents
		resp.Description = best.Description
		resp.Date = formatDate(best.Date)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error encoding report")
		return
	}
	s.reportCache.Set(cacheKey, body)

	writeJSONBytes(w, http.StatusOK, body)
}

func (s *Server) handleYearOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year := parseYear(r)
	cacheKey := fmt.Sprintf("overview:%d", year)
	if body, ok := s.reportCache.Get(cacheKey); ok {
		writeJSONBytes(w, http.StatusOK, body)
		return
	}

	ov, err := s.backend.ReadYearOverview(r.Context(), year)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to read year overview", "error", err, "year", year)
		writeError(w, http.StatusInternalServerError, "error computing report")
		return
	}

	resp := yearOverviewResponse{
		Year:       ov.Year,
		Count:      ov.Count,
		Total:      ov.Total.String(),
		Expenses:   ov.Expenses.String(),
		Income:     ov.Income.String(),
		HasExpense: ov.HasExpense,
	}
	if ov.HasExpense {
		resp.LargestAmount = ov.Largest.String()
	}

	body, err := json.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error encoding report")
		return
	}
	s.reportCache.Set(cacheKey, body)

	writeJSONBytes(w, http.StatusOK, body)
}

func toResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		Date:        formatDate(t.Date),
		Description: t.Description,
		Amount:      t.Amount.String(),
		AmountCents: t.Amount.Cents,
	}
}
