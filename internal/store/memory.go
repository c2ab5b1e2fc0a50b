package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skill-daily/internal/model"
)

// Memory keeps ledgers in process. Readers always receive copies.
type Memory struct {
	mu      sync.Mutex
	ledgers map[int]*model.ProgressLedger
}

func NewMemory() *Memory {
	return &Memory{ledgers: map[int]*model.ProgressLedger{}}
}

func (m *Memory) Get(_ context.Context, userID int) (*model.ProgressLedger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.ledgers[userID]
	if !ok {
		return nil, fmt.Errorf("ledger %d: %w", userID, model.ErrNotFound)
	}
	return l.Clone(), nil
}

// Update applies fn to a copy and commits it only when fn succeeds.
func (m *Memory) Update(_ context.Context, userID int, fn func(*model.ProgressLedger) error) (*model.ProgressLedger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.ledgers[userID]
	if !ok {
		cur = model.NewLedger(userID)
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()
	m.ledgers[userID] = next
	return next.Clone(), nil
}
