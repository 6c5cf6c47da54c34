package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/famledger/famledger/internal/database"
	"github.com/famledger/famledger/internal/models"
)

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (user_id, description, amount, due_date, frequency, is_paid)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		reminder.UserID, reminder.Description, reminder.Amount, reminder.DueDate,
		reminder.Frequency, reminder.IsPaid,
	).Scan(&reminder.ID, &reminder.CreatedAt)
}

func (r *ReminderRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, user_id, description, amount, due_date, frequency, is_paid, created_at
		 FROM reminders WHERE user_id = $1 ORDER BY due_date ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

// GetByID returns (nil, nil) when no row matches both the id and the owner,
// so callers cannot tell a foreign reminder from a missing one.
func (r *ReminderRepository) GetByID(ctx context.Context, reminderID, userID int64) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, user_id, description, amount, due_date, frequency, is_paid, created_at
		 FROM reminders WHERE id = $1 AND user_id = $2`,
		reminderID, userID,
	).Scan(&reminder.ID, &reminder.UserID, &reminder.Description, &reminder.Amount,
		&reminder.DueDate, &reminder.Frequency, &reminder.IsPaid, &reminder.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

// Update writes the full row. Returns false when the row no longer exists
// for that owner.
func (r *ReminderRepository) Update(ctx context.Context, reminder *models.Reminder) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET description = $1, amount = $2, due_date = $3, frequency = $4, is_paid = $5
		 WHERE id = $6 AND user_id = $7`,
		reminder.Description, reminder.Amount, reminder.DueDate, reminder.Frequency,
		reminder.IsPaid, reminder.ID, reminder.UserID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateGuarded is Update with an optimistic check that the reminder is
// still the unpaid instance the caller loaded. Returns false when another
// payment already advanced it.
func (r *ReminderRepository) UpdateGuarded(ctx context.Context, reminder *models.Reminder, expectedDue time.Time) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET description = $1, amount = $2, due_date = $3, frequency = $4, is_paid = $5
		 WHERE id = $6 AND user_id = $7 AND due_date = $8 AND is_paid = FALSE`,
		reminder.Description, reminder.Amount, reminder.DueDate, reminder.Frequency,
		reminder.IsPaid, reminder.ID, reminder.UserID, expectedDue,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID, userID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE id = $1 AND user_id = $2`,
		reminderID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// FindDueSoon returns unpaid reminders across all users due on or before the
// given date. Overdue reminders stay included until paid.
func (r *ReminderRepository) FindDueSoon(ctx context.Context, until time.Time) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, user_id, description, amount, due_date, frequency, is_paid, created_at
		 FROM reminders WHERE is_paid = FALSE AND due_date <= $1
		 ORDER BY due_date ASC, id ASC`,
		until,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReminders(rows)
}

func scanReminders(rows pgx.Rows) ([]*models.Reminder, error) {
	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.Description, &reminder.Amount,
			&reminder.DueDate, &reminder.Frequency, &reminder.IsPaid, &reminder.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}
