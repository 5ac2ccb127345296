// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package eventlog

import (
	"context"
	"sync"
	"time"

	"github.com/rghsoftware/weeklymeals/internal/apperrors"
)

// MemoryStore is an in-process Store, safe for concurrent callers on
// distinct aggregate ids. It backs unit tests and the cmd/planner
// demo; production deployments use the sqlite or postgres adapter.
type MemoryStore struct {
	mu       sync.Mutex
	byAggreg map[string][]Record
}

// NewMemoryStore creates an empty in-memory event log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byAggreg: make(map[string][]Record)}
}

func (m *MemoryStore) Append(_ context.Context, aggregateID string, expectedVersion uint64, kind string, payload []byte, recordedAt time.Time, meta Meta) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.byAggreg[aggregateID]
	if uint64(len(existing)) != expectedVersion {
		return Record{}, apperrors.Wrap(apperrors.EventAppendFailed,
			"aggregate version conflict", nil)
	}

	rec := Record{
		AggregateID: aggregateID,
		Version:     expectedVersion + 1,
		Kind:        kind,
		Payload:     append([]byte(nil), payload...),
		RecordedAt:  recordedAt,
		Meta:        meta,
	}
	m.byAggreg[aggregateID] = append(existing, rec)
	return rec, nil
}

func (m *MemoryStore) Load(_ context.Context, aggregateID string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.byAggreg[aggregateID]))
	copy(out, m.byAggreg[aggregateID])
	return out, nil
}
