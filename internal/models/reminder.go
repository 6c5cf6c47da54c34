package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Recurring reports whether paying the reminder schedules a next occurrence.
func (f Frequency) Recurring() bool {
	return f == FrequencyMonthly || f == FrequencyYearly
}

// Reminder is a recurring or one-time obligation to pay a bill. DueDate
// carries day granularity only; IsPaid refers to the current DueDate
// instance. For recurring frequencies a persisted IsPaid=true never
// survives a paid transition.
type Reminder struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	Frequency   Frequency       `json:"frequency"`
	IsPaid      bool            `json:"is_paid"`
	CreatedAt   time.Time       `json:"created_at"`
}
