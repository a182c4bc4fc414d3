package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format transactions carry.
const DateLayout = "2006-01-02"

type (
	// Transaction is one dated, categorized monetary movement.
	// Amount is signed: positive is income, negative is expense.
	Transaction struct {
		ID          int64           `json:"id"`
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Bank        string          `json:"bank,omitempty"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrDuplicateID      = errors.New("duplicate transaction id")
)

// IsIncome reports whether the transaction adds money.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// Time parses the ISO date. Callers that already validated can ignore the error.
func (t Transaction) Time() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}

func (t Transaction) Validate() error {
	if _, err := t.Time(); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidDate, t.Date)
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Amount.IsZero() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// ValidateTransactions checks every record and that ids are unique.
// An empty set is valid.
func ValidateTransactions(txs []Transaction) error {
	seen := make(map[int64]struct{}, len(txs))
	for i, t := range txs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction #%d (id=%d): %w", i, t.ID, err)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("transaction #%d: %w %d", i, ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
