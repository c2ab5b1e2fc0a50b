package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"skill-daily/internal/logger"
	"skill-daily/internal/model"
)

// LedgerStore persists one ledger per user. Update must run fn as an atomic
// read-modify-write, creating an empty ledger when none exists.
type LedgerStore interface {
	Get(ctx context.Context, userID int) (*model.ProgressLedger, error)
	Update(ctx context.Context, userID int, fn func(*model.ProgressLedger) error) (*model.ProgressLedger, error)
}

type Service struct {
	store LedgerStore
	now   func() time.Time
	locks sync.Map // userID -> *sync.Mutex
}

func NewService(store LedgerStore) *Service {
	return &Service{store: store, now: time.Now}
}

// SetClock replaces the time source used for task and entry timestamps.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// UpsertDay writes the day and recomputes the ledger aggregates before
// returning. Writes for the same user are serialized.
func (s *Service) UpsertDay(ctx context.Context, userID int, in DayInput) (model.DayEntry, error) {
	if userID <= 0 {
		return model.DayEntry{}, model.Invalid("user_id", "must be positive")
	}
	if err := ValidateDate(in.Date); err != nil {
		return model.DayEntry{}, err
	}

	unlock := s.lock(userID)
	defer unlock()

	var written model.DayEntry
	_, err := s.store.Update(ctx, userID, func(l *model.ProgressLedger) error {
		if l.Days == nil {
			l.Days = map[string]model.DayEntry{}
		}
		var prev *model.DayEntry
		if d, ok := l.Days[in.Date]; ok {
			prev = &d
		}
		day, err := buildDay(in, prev, s.now())
		if err != nil {
			return err
		}
		l.Days[in.Date] = day
		l.LastCheckinDate = in.Date
		Apply(l)
		written = day
		return nil
	})
	if err != nil {
		return model.DayEntry{}, fmt.Errorf("upsert day %s: %w", in.Date, err)
	}

	logger.Info("progress.upsert", "uid", userID, "date", in.Date,
		"status", written.Status, "rate", written.CompletionRate)
	return written, nil
}

func (s *Service) Day(ctx context.Context, userID int, date string) (model.DayEntry, error) {
	if err := ValidateDate(date); err != nil {
		return model.DayEntry{}, err
	}
	l, err := s.store.Get(ctx, userID)
	if err != nil {
		return model.DayEntry{}, err
	}
	d, ok := l.Days[date]
	if !ok {
		return model.DayEntry{}, fmt.Errorf("day %s: %w", date, model.ErrNotFound)
	}
	return d, nil
}

// Ledger returns the user's ledger, creating an empty one on first access.
func (s *Service) Ledger(ctx context.Context, userID int) (*model.ProgressLedger, error) {
	l, err := s.store.Get(ctx, userID)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	unlock := s.lock(userID)
	defer unlock()
	l, err = s.store.Update(ctx, userID, func(*model.ProgressLedger) error { return nil })
	if err != nil {
		return nil, fmt.Errorf("create ledger: %w", err)
	}
	return l, nil
}

func (s *Service) lock(userID int) func() {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
