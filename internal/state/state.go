// Package state keeps per-user conversation state: the current step tag
// and a JSON blob with whatever the active flow has collected so far.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("state not found")

type Record struct {
	Step      string
	Data      json.RawMessage
	UpdatedAt time.Time
}

type Store interface {
	Get(ctx context.Context, userID int64) (Record, error)
	Put(ctx context.Context, userID int64, rec Record) error
	Delete(ctx context.Context, userID int64) error
	// Sweep removes records not updated since before and returns how many were removed.
	Sweep(ctx context.Context, before time.Time) (int, error)
}

// Handle binds a Store to one user. Records older than ttl read as empty.
type Handle struct {
	store  Store
	userID int64
	ttl    time.Duration
	now    func() time.Time
}

func NewHandle(store Store, userID int64, ttl time.Duration) Handle {
	return Handle{store: store, userID: userID, ttl: ttl, now: time.Now}
}

func (h Handle) get(ctx context.Context) (Record, error) {
	rec, err := h.store.Get(ctx, h.userID)
	if errors.Is(err, ErrNotFound) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("store.Get: %w", err)
	}
	if h.ttl > 0 && h.now().Sub(rec.UpdatedAt) > h.ttl {
		return Record{}, nil
	}
	return rec, nil
}

// Step returns the current step, "" when the user is idle.
func (h Handle) Step(ctx context.Context) (string, error) {
	rec, err := h.get(ctx)
	return rec.Step, err
}

// Load decodes the stored data into v and returns the current step.
func (h Handle) Load(ctx context.Context, v any) (string, error) {
	rec, err := h.get(ctx)
	if err != nil {
		return "", err
	}
	if len(rec.Data) > 0 && v != nil {
		if err := json.Unmarshal(rec.Data, v); err != nil {
			return "", fmt.Errorf("json.Unmarshal: %w", err)
		}
	}
	return rec.Step, nil
}

func (h Handle) Save(ctx context.Context, step string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	rec := Record{Step: step, Data: data, UpdatedAt: h.now()}
	if err := h.store.Put(ctx, h.userID, rec); err != nil {
		return fmt.Errorf("store.Put: %w", err)
	}
	return nil
}

func (h Handle) Clear(ctx context.Context) error {
	if err := h.store.Delete(ctx, h.userID); err != nil {
		return fmt.Errorf("store.Delete: %w", err)
	}
	return nil
}
