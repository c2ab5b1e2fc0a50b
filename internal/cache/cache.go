// Package cache memoizes generated responses under normalized keys for a
// fixed time window.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"skill-daily/internal/logger"
)

const (
	DefaultTTL           = 24 * time.Hour
	DefaultSweepInterval = time.Hour
)

type entry struct {
	payload   any
	createdAt time.Time
	hits      int
}

type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{entries: map[string]*entry{}, ttl: DefaultTTL, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// BuildKey lower-cases and trims string values, then serializes input with
// sorted keys behind a "category:" prefix.
func BuildKey(category string, input map[string]any) string {
	norm := make(map[string]any, len(input))
	for k, v := range input {
		if s, ok := v.(string); ok {
			v = strings.ToLower(strings.TrimSpace(s))
		}
		norm[k] = v
	}
	// encoding/json writes map keys in sorted order
	data, err := json.Marshal(norm)
	if err != nil {
		logger.Warn("cache.key.marshal", "category", category, "err", err)
		return category + ":" + printKey(norm)
	}
	return category + ":" + string(data)
}

// printKey is used for inputs JSON cannot encode, such as NaN. Its output
// never starts with "{" so it cannot collide with a JSON key.
func printKey(norm map[string]any) string {
	keys := make([]string, 0, len(norm))
	for k := range norm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%#v", k, norm[k])
	}
	return "~" + strings.Join(parts, "&")
}

func (s *Store) Get(category string, input map[string]any) (any, bool) {
	key := BuildKey(category, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		delete(s.entries, key)
		return nil, false
	}
	e.hits++
	return e.payload, true
}

func (s *Store) Set(category string, input map[string]any, payload any) {
	key := BuildKey(category, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry{payload: payload, createdAt: s.now()}
}

// ClearExpired drops every entry older than the TTL and reports how many
// were removed.
func (s *Store) ClearExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, k)
			n++
		}
	}
	return n
}

func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = map[string]*entry{}
}

type CategoryStats struct {
	Entries int `json:"entries"`
	Hits    int `json:"hits"`
}

type Stats struct {
	TotalEntries int                      `json:"total_entries"`
	TotalHits    int                      `json:"total_hits"`
	ByCategory   map[string]CategoryStats `json:"by_category"`
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{ByCategory: map[string]CategoryStats{}}
	for k, e := range s.entries {
		cat, _, _ := strings.Cut(k, ":")
		c := st.ByCategory[cat]
		c.Entries++
		c.Hits += e.hits
		st.ByCategory[cat] = c
		st.TotalEntries++
		st.TotalHits += e.hits
	}
	return st
}

// Run sweeps expired entries every interval until ctx is done. A
// non-positive interval means DefaultSweepInterval.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.ClearExpired(); n > 0 {
				logger.Info("cache.sweep", "removed", n)
			}
		}
	}
}

func (s *Store) expired(e *entry) bool {
	return s.now().Sub(e.createdAt) >= s.ttl
}
