// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package eventlog implements the append-only, per-aggregate Event Log
//: each record carries an event kind tag, a binary-encoded payload,
// a monotonically increasing version per aggregate id, a wall-clock
// timestamp, and an opaque metadata blob holding the request id and user
// id. The log is single-writer per aggregate — Append takes the
// version the caller last observed and rejects the write if another
// command has appended in the meantime — optimistic concurrency at
// event-append.
package eventlog

import (
	"context"
	"time"
)

// Meta is the opaque metadata blob stored alongside every record.
type Meta struct {
	RequestID string
	UserID    string
}

// Record is one committed event: Version is 1-based and strictly
// increasing per AggregateID, with no gaps.
type Record struct {
	AggregateID string
	Version     uint64
	Kind        string
	Payload     []byte
	RecordedAt  time.Time
	Meta        Meta
}

// Store is the append-only event log port. Append is all-or-nothing
// and
// enforces optimistic concurrency via expectedVersion: the caller must
// supply the version it last loaded (0 for a brand-new aggregate), and
// Append fails with apperrors.EventAppendFailed if another writer has
// already advanced the aggregate past that version.
type Store interface {
	Append(ctx context.Context, aggregateID string, expectedVersion uint64, kind string, payload []byte, recordedAt time.Time, meta Meta) (Record, error)
	Load(ctx context.Context, aggregateID string) ([]Record, error)
}
