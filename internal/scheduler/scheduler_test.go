package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famledger/famledger/internal/models"
	"github.com/famledger/famledger/internal/notify"
)

type stubSource struct {
	reminders []*models.Reminder
	err       error
	windows   []int
}

func (s *stubSource) FindDueSoon(ctx context.Context, windowDays int) ([]*models.Reminder, error) {
	s.windows = append(s.windows, windowDays)
	return s.reminders, s.err
}

type stubNotifier struct {
	batches [][]*models.Reminder
	err     error
}

func (n *stubNotifier) Name() string { return "stub" }

func (n *stubNotifier) Notify(ctx context.Context, reminders []*models.Reminder) error {
	n.batches = append(n.batches, reminders)
	return n.err
}

func TestNextRunDailyRule(t *testing.T) {
	rule, err := parseRule("FREQ=DAILY;BYHOUR=8;BYMINUTE=0", time.Date(2024, time.June, 1, 13, 45, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("parseRule: %v", err)
	}

	after := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.Local)
	next := rule.After(after, false)
	want := time.Date(2024, time.June, 11, 8, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Fatalf("next after %s = %s, want %s", after, next, want)
	}

	before := time.Date(2024, time.June, 11, 7, 30, 0, 0, time.Local)
	if next := rule.After(before, false); !next.Equal(want) {
		t.Fatalf("next after %s = %s, want same-day %s", before, next, want)
	}
}

func TestNewRejectsBadRule(t *testing.T) {
	if _, err := New(&stubSource{}, nil, "EVERY=TUESDAY", 5); err == nil {
		t.Fatal("expected error for malformed rule")
	}
}

func TestSweepNotifiesAllChannels(t *testing.T) {
	source := &stubSource{reminders: []*models.Reminder{
		{ID: 1, UserID: 7, Description: "Electricity", Amount: decimal.NewFromInt(250),
			DueDate: time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC), Frequency: models.FrequencyMonthly},
	}}
	a, b := &stubNotifier{}, &stubNotifier{err: errors.New("smtp down")}

	sched, err := New(source, []notify.Notifier{b, a}, "FREQ=DAILY", 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sched.sweep(context.Background())

	if len(source.windows) != 1 || source.windows[0] != 5 {
		t.Fatalf("expected one query with window 5, got %v", source.windows)
	}
	// A failing channel must not block the others.
	if len(a.batches) != 1 || len(a.batches[0]) != 1 {
		t.Fatalf("second notifier should still receive the batch, got %v", a.batches)
	}
}

func TestSweepSkipsEmptyBatch(t *testing.T) {
	source := &stubSource{}
	n := &stubNotifier{}

	sched, err := New(source, []notify.Notifier{n}, "FREQ=DAILY", 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sched.sweep(context.Background())

	if len(n.batches) != 0 {
		t.Fatalf("no notification expected for an empty batch, got %d", len(n.batches))
	}
}
