// Package service implements the reminder lifecycle: creation, listing,
// partial updates with the paid-transition recurrence rollover, deletion,
// the composite pay-and-record-expense workflow, and the due-soon query
// used by the notification sweep.
package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/famledger/famledger/internal/models"
	"github.com/famledger/famledger/internal/recurrence"
)

const (
	maxDescriptionLen = 200

	// Category recorded on expenses created by paying a reminder.
	billCategory          = "Utilities"
	billDescriptionPrefix = "Bill Payment: "
)

// ReminderStore is the persistence surface the lifecycle manager needs.
// GetByID reports a missing or foreign row as (nil, nil); Update, Delete and
// UpdateGuarded report whether a row was written.
type ReminderStore interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Reminder, error)
	GetByID(ctx context.Context, reminderID, userID int64) (*models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) (bool, error)
	UpdateGuarded(ctx context.Context, reminder *models.Reminder, expectedDue time.Time) (bool, error)
	Delete(ctx context.Context, reminderID, userID int64) (bool, error)
	FindDueSoon(ctx context.Context, until time.Time) ([]*models.Reminder, error)
}

// TransactionStore is the ledger surface.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Transaction, error)
	Delete(ctx context.Context, transactionID, userID int64) (bool, error)
}

type Service struct {
	reminders ReminderStore
	ledger    TransactionStore
	now       func() time.Time
}

func New(reminders ReminderStore, ledger TransactionStore) *Service {
	return &Service{
		reminders: reminders,
		ledger:    ledger,
		now:       time.Now,
	}
}

// WithClock replaces the wall clock. Tests use this to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) today() time.Time {
	return recurrence.DateOnly(s.now())
}

type CreateReminderInput struct {
	Description string
	Amount      decimal.Decimal
	DueDate     string // ISO calendar date, YYYY-MM-DD
	Frequency   string // empty defaults to once
}

func (s *Service) CreateReminder(ctx context.Context, userID int64, in CreateReminderInput) (*models.Reminder, error) {
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	due, err := parseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}
	freq, err := parseFrequency(in.Frequency)
	if err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		UserID:      userID,
		Description: in.Description,
		Amount:      in.Amount,
		DueDate:     due,
		Frequency:   freq,
		IsPaid:      false,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, &PersistenceError{Op: "create reminder", Err: err}
	}
	return reminder, nil
}

func (s *Service) ListReminders(ctx context.Context, userID int64) ([]*models.Reminder, error) {
	reminders, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list reminders", Err: err}
	}
	return reminders, nil
}

// Patch is a partial reminder update. Nil fields are left untouched.
type Patch struct {
	Description *string
	Amount      *decimal.Decimal
	DueDate     *string
	Frequency   *string
	IsPaid      *bool
}

// Applied is the set of fields an update actually wrote. It can differ from
// the requested patch: marking a recurring reminder paid writes the advanced
// due date and is_paid=false, not the caller's is_paid=true.
type Applied struct {
	Description *string
	Amount      *decimal.Decimal
	DueDate     *time.Time
	Frequency   *models.Frequency
	IsPaid      *bool
}

// UpdateReminder applies a partial patch, running the paid-transition rule
// when the patch sets is_paid to true: a monthly or yearly reminder gets its
// due date advanced from the stored date and is_paid reset to false; a
// one-time reminder is persisted as paid. The rollover is computed against
// the frequency and due date as stored, so a frequency or due_date change in
// the same patch applies to future instances only.
func (s *Service) UpdateReminder(ctx context.Context, userID, reminderID int64, p Patch) (*models.Reminder, Applied, error) {
	var applied Applied

	current, err := s.reminders.GetByID(ctx, reminderID, userID)
	if err != nil {
		return nil, applied, &PersistenceError{Op: "load reminder", Err: err}
	}
	if current == nil {
		return nil, applied, &NotFoundError{Resource: "reminder", ID: reminderID}
	}

	storedDue := current.DueDate
	storedFreq := current.Frequency

	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return nil, applied, err
		}
		current.Description = *p.Description
		applied.Description = p.Description
	}
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return nil, applied, err
		}
		current.Amount = *p.Amount
		applied.Amount = p.Amount
	}
	if p.Frequency != nil {
		freq, err := parseFrequency(*p.Frequency)
		if err != nil {
			return nil, applied, err
		}
		current.Frequency = freq
		applied.Frequency = &freq
	}
	if p.DueDate != nil {
		due, err := parseDate("due_date", *p.DueDate)
		if err != nil {
			return nil, applied, err
		}
		current.DueDate = due
		applied.DueDate = &due
	}

	if p.IsPaid != nil {
		if *p.IsPaid && storedFreq.Recurring() {
			// Paying a recurring reminder settles the current instance
			// and makes the next one pending. The computed values win
			// over any caller-supplied due_date in the same call.
			next := recurrence.NextDue(storedFreq, storedDue)
			paid := false
			current.DueDate = next
			current.IsPaid = false
			applied.DueDate = &next
			applied.IsPaid = &paid
		} else {
			current.IsPaid = *p.IsPaid
			applied.IsPaid = p.IsPaid
		}
	}

	ok, err := s.reminders.Update(ctx, current)
	if err != nil {
		return nil, applied, &PersistenceError{Op: "update reminder", Err: err}
	}
	if !ok {
		return nil, applied, &NotFoundError{Resource: "reminder", ID: reminderID}
	}
	return current, applied, nil
}

// DeleteReminder is a hard delete. Deleting an absent or foreign id is an
// error, not a no-op.
func (s *Service) DeleteReminder(ctx context.Context, userID, reminderID int64) error {
	ok, err := s.reminders.Delete(ctx, reminderID, userID)
	if err != nil {
		return &PersistenceError{Op: "delete reminder", Err: err}
	}
	if !ok {
		return &NotFoundError{Resource: "reminder", ID: reminderID}
	}
	return nil
}

// MarkPaidWithTransaction records an expense for the reminder's amount and
// then applies the paid transition. The two writes are sequential, expense
// first; the reminder update is guarded on the loaded due date so a
// concurrent payment cannot advance the reminder twice. When the second
// write fails or loses the guard the expense stands and the error is a
// PartialWorkflowError carrying its id.
func (s *Service) MarkPaidWithTransaction(ctx context.Context, userID, reminderID int64, paymentMethod string) (*models.Transaction, *models.Reminder, error) {
	current, err := s.reminders.GetByID(ctx, reminderID, userID)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "load reminder", Err: err}
	}
	if current == nil {
		return nil, nil, &NotFoundError{Resource: "reminder", ID: reminderID}
	}

	tx := &models.Transaction{
		UserID:        userID,
		Type:          models.TransactionTypeExpense,
		Amount:        current.Amount,
		Description:   billDescriptionPrefix + current.Description,
		Category:      billCategory,
		PaymentMethod: paymentMethod,
		Date:          s.today(),
	}
	if err := s.ledger.Create(ctx, tx); err != nil {
		return nil, nil, &PersistenceError{Op: "record expense", Err: err}
	}

	expectedDue := current.DueDate
	if current.Frequency.Recurring() {
		current.DueDate = recurrence.NextDue(current.Frequency, current.DueDate)
		current.IsPaid = false
	} else {
		current.IsPaid = true
	}

	ok, err := s.reminders.UpdateGuarded(ctx, current, expectedDue)
	if err != nil {
		return tx, nil, &PartialWorkflowError{TransactionID: tx.ID, Err: err}
	}
	if !ok {
		return tx, nil, &PartialWorkflowError{TransactionID: tx.ID}
	}
	return tx, current, nil
}

// FindDueSoon returns unpaid reminders across all users due within
// windowDays of today, inclusive. Overdue reminders are included until paid.
func (s *Service) FindDueSoon(ctx context.Context, windowDays int) ([]*models.Reminder, error) {
	if windowDays < 0 {
		return nil, invalid("window_days", "must not be negative")
	}
	until := s.today().AddDate(0, 0, windowDays)
	reminders, err := s.reminders.FindDueSoon(ctx, until)
	if err != nil {
		return nil, &PersistenceError{Op: "find due reminders", Err: err}
	}
	return reminders, nil
}

func validateDescription(desc string) error {
	if desc == "" {
		return invalid("description", "must not be empty")
	}
	if n := utf8.RuneCountInString(desc); n > maxDescriptionLen {
		return invalid("description", "must be at most %d characters, got %d", maxDescriptionLen, n)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return invalid("amount", "must be greater than zero")
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, invalid(field, "must be a calendar date in YYYY-MM-DD form")
	}
	return t, nil
}

func parseFrequency(value string) (models.Frequency, error) {
	if value == "" {
		return models.FrequencyOnce, nil
	}
	freq := models.Frequency(value)
	if !freq.Valid() {
		return "", invalid("frequency", "must be one of once, monthly, yearly")
	}
	return freq, nil
}
