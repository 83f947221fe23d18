// Package store keeps the latest pipeline result in memory. One run
// replaces the previous result wholesale; nothing persists across
// process restarts.
package store

import (
	"sync"
	"time"

	"github.com/adquant/adroi/internal/models"
)

type MemoryStore struct {
	mu        sync.RWMutex
	result    *models.Result
	updatedAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SetResult(res *models.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = res
	s.updatedAt = time.Now()
}

// Latest returns the most recent result, or ok=false before the first run.
func (s *MemoryStore) Latest() (*models.Result, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, time.Time{}, false
	}
	return s.result, s.updatedAt, true
}

// QueryRows returns the final rows passing the filter, nil filter meaning all.
func (s *MemoryStore) QueryRows(f func(models.RevenueCostRow) bool) []models.RevenueCostRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	var out []models.RevenueCostRow
	for _, r := range s.result.Rows {
		if f == nil || f(r) {
			out = append(out, r)
		}
	}
	return out
}

// QueryCohorts returns the grouped revenue x installs rows passing the filter.
func (s *MemoryStore) QueryCohorts(f func(models.CohortRow) bool) []models.CohortRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	var out []models.CohortRow
	for _, r := range s.result.Cohorts {
		if f == nil || f(r) {
			out = append(out, r)
		}
	}
	return out
}
