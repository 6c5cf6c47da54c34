// Package scheduler runs the periodic due-soon sweep: query unpaid
// reminders inside the lookahead window and hand the batch to every
// configured notifier.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/famledger/famledger/internal/models"
	"github.com/famledger/famledger/internal/notify"
)

// ReminderSource yields the unpaid reminders due within the window.
type ReminderSource interface {
	FindDueSoon(ctx context.Context, windowDays int) ([]*models.Reminder, error)
}

type Scheduler struct {
	source     ReminderSource
	notifiers  []notify.Notifier
	rule       *rrule.RRule
	windowDays int
	notifyCh   chan struct{}
}

// New builds a scheduler firing on the given RFC 5545 rule, e.g.
// FREQ=DAILY;BYHOUR=8;BYMINUTE=0 for a daily morning sweep.
func New(source ReminderSource, notifiers []notify.Notifier, ruleStr string, windowDays int) (*Scheduler, error) {
	rule, err := parseRule(ruleStr, time.Now())
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		source:     source,
		notifiers:  notifiers,
		rule:       rule,
		windowDays: windowDays,
		notifyCh:   make(chan struct{}, 1),
	}, nil
}

func parseRule(ruleStr string, dtstart time.Time) (*rrule.RRule, error) {
	opt, err := rrule.StrToROption(strings.TrimPrefix(ruleStr, "RRULE:"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sweep rule: %w", err)
	}
	// Anchor at the start of today so BYHOUR/BYMINUTE resolve against
	// local midnight.
	opt.Dtstart = time.Date(dtstart.Year(), dtstart.Month(), dtstart.Day(), 0, 0, 0, 0, time.Local)
	return rrule.NewRRule(*opt)
}

// NextRun returns the first scheduled sweep strictly after the given time.
func (s *Scheduler) NextRun(after time.Time) time.Time {
	return s.rule.After(after, false)
}

// Notify triggers an immediate sweep. Non-blocking if one is already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	log.Println("Sweep scheduler started")
	for {
		next := s.NextRun(time.Now())
		if next.IsZero() {
			log.Println("Sweep rule has no further occurrences, scheduler stopping")
			return
		}
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("Sweep scheduler stopped")
			return
		case <-timer.C:
			s.sweep(ctx)
		case <-s.notifyCh:
			timer.Stop()
			log.Println("Sweep triggered manually")
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	runID := uuid.NewString()

	reminders, err := s.source.FindDueSoon(ctx, s.windowDays)
	if err != nil {
		log.Printf("Sweep %s: failed to query due reminders: %v", runID, err)
		return
	}
	if len(reminders) == 0 {
		log.Printf("Sweep %s: no upcoming reminders", runID)
		return
	}

	log.Printf("Sweep %s: found %d upcoming reminders", runID, len(reminders))
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, reminders); err != nil {
			log.Printf("Sweep %s: %s notification failed: %v", runID, n.Name(), err)
			continue
		}
		log.Printf("Sweep %s: %s notification sent", runID, n.Name())
	}
}
