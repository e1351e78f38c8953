package storage

import (
	"context"
	"sync"

	"github.com/crude-signals/crude/model"
)

// MemorySource holds the dataset in process. It is used by tests and by
// commands that read their input from a single file.
type MemorySource struct {
	mu     sync.RWMutex
	prices model.PriceSeries
	events []model.Event

	// Err, when set, is returned by every read.
	Err error
}

func NewMemorySource(prices model.PriceSeries, events []model.Event) *MemorySource {
	s := &MemorySource{}
	s.prices = prices.Copy()
	s.events = copyEvents(events)
	return s
}

func (s *MemorySource) Type() SourceType { return SourceMemory }

func (s *MemorySource) Prices(context.Context) (model.PriceSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return s.prices.Copy(), nil
}

func (s *MemorySource) Events(context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return copyEvents(s.events), nil
}

func (s *MemorySource) SavePrices(_ context.Context, series model.PriceSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices = series.Copy()
	return nil
}

func (s *MemorySource) SaveEvents(_ context.Context, events []model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = copyEvents(events)
	return nil
}

func (s *MemorySource) Close(context.Context) error { return nil }

func copyEvents(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	return out
}
