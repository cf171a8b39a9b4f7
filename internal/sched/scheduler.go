// Package sched runs the recurring reminder check: once per interval it
// reads the full item collection, matches each incomplete item against the
// current minute and its configured day-offsets, and fires matching
// reminders through the notifier.
package sched

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hyunjk/dday-todo/internal/model"
	"github.com/hyunjk/dday-todo/internal/notify"
	"github.com/hyunjk/dday-todo/internal/store"
	"github.com/hyunjk/dday-todo/internal/timeutil"
)

// State represents what the scheduler is doing right now.
type State int

const (
	StateIdle State = iota
	StateChecking
)

// DefaultInterval is the check cadence. Matching is minute-exact, so the
// cadence and the matching granularity must stay aligned: a cycle that
// lands inside an item's notification minute fires it, and the next cycle
// lands in the next minute.
const DefaultInterval = 60 * time.Second

// Config carries the scheduler's collaborators and knobs.
type Config struct {
	// Interval between checks; DefaultInterval when zero.
	Interval time.Duration

	// Ledger, when non-nil, makes firing idempotent per calendar day:
	// an (item, offset) pair that already fired today is skipped even if
	// the check lands in the same minute twice. Nil preserves the
	// original minute-exact semantics with no fired-state.
	Ledger *store.FiredLedger

	// Now supplies the current time; time.Now when nil. Tests inject a
	// fixed clock here.
	Now func() time.Time

	Logger *slog.Logger
}

// Scheduler is the long-lived background checker. It never terminates on
// its own; cancelling the Run context is the only shutdown path.
type Scheduler struct {
	store    store.Store
	notifier notify.Notifier
	ledger   *store.FiredLedger
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	running bool
	stopCh  chan struct{}
}

// New creates a Scheduler reading from s and delivering through n.
func New(s store.Store, n notify.Notifier, cfg Config) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		store:    s,
		notifier: n,
		ledger:   cfg.Ledger,
		interval: interval,
		now:      now,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// State returns what the scheduler is currently doing.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run blocks, checking every interval until ctx is cancelled or Stop is
// called. The first check happens after one full interval; the sleep
// between cycles is the only suspension point.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "reason", ctx.Err())
			return
		case <-s.stopCh:
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.CheckOnce(ctx)
		}
	}
}

// Stop halts a running scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
}

// CheckOnce performs a single check cycle over the whole collection and
// returns how many reminders fired. Items are evaluated independently: an
// unparseable date or a failed delivery on one item never blocks the rest.
func (s *Scheduler) CheckOnce(ctx context.Context) int {
	s.setState(StateChecking)
	defer s.setState(StateIdle)

	now := s.now()
	clock := timeutil.ClockTime(now)
	today := now.Format(timeutil.DateLayout)

	fired := 0
	for _, t := range s.store.ListAll(ctx) {
		if t.Completed {
			continue
		}
		days, ok := timeutil.DaysUntil(t.TargetDate, now)
		if !ok {
			s.logger.Warn("skipping todo with unparseable target date",
				"id", t.ID, "targetDate", t.TargetDate)
			continue
		}
		if t.NotificationTime != clock {
			continue
		}
		if !t.WantsOffset(days) {
			continue
		}

		if s.ledger != nil {
			done, err := s.ledger.WasFired(ctx, t.ID, days, today)
			if err != nil {
				// Ledger trouble degrades to the undeduplicated
				// behavior rather than suppressing the reminder.
				s.logger.Warn("fired ledger read failed", "id", t.ID, "error", err)
			} else if done {
				continue
			}
		}

		title, body := reminderMessage(t, days)
		if err := s.notifier.Notify(title, body); err != nil {
			s.logger.Warn("reminder delivery failed", "id", t.ID, "error", err)
		}
		fired++

		if s.ledger != nil {
			if err := s.ledger.MarkFired(ctx, t.ID, days, today); err != nil {
				s.logger.Warn("fired ledger write failed", "id", t.ID, "error", err)
			}
		}
	}
	return fired
}

// reminderMessage builds the notification title and body for an item that
// is days away from its target date.
func reminderMessage(t model.Todo, days int) (string, string) {
	switch {
	case days == 0:
		return t.Title, "D-Day is today!"
	case days > 0:
		return t.Title, fmt.Sprintf("%d days left until D-Day.", days)
	default:
		return t.Title, fmt.Sprintf("%d days past D-Day.", -days)
	}
}

func (s *Scheduler) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
