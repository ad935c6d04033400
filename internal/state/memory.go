package state

import (
	"context"
	"sync"
	"time"
)

type Memory struct {
	mu      sync.Mutex
	records map[int64]Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[int64]Record)}
}

func (m *Memory) Get(_ context.Context, userID int64) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[userID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) Put(_ context.Context, userID int64, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[userID] = rec
	return nil
}

func (m *Memory) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, userID)
	return nil
}

func (m *Memory) Sweep(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, rec := range m.records {
		if rec.UpdatedAt.Before(before) {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}
