package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single recorded money movement. Category is set for
// expenses only; PaymentMethod is optional. Date carries day granularity.
type Transaction struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}
