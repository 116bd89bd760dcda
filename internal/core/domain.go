package core

import (
	"errors"
	"strings"
)

type (
	// Date is a plain calendar date. The core performs no range checking;
	// two dates are equal when all three fields match. Callers that accept
	// external input should run Validate first.
	Date struct {
		Year  int
		Month int // 1-12
		Day   int // 1-31
	}

	// Transaction is a single ledger entry. Negative amounts are expenses,
	// positive amounts income. Immutable once constructed.
	Transaction struct {
		Date        Date
		Description string
		Amount      Money
	}
)

var (
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
)

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return ErrInvalidMonth
	}
	if d.Day < 1 || d.Day > 31 {
		return ErrInvalidDay
	}
	return nil
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	// Any amount is valid, including zero: a zero transaction is neither
	// income nor expense but may still be recorded.
	return nil
}

// IsExpense reports whether the transaction amount is strictly negative.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
