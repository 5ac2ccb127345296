// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

package eventlog

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid"
)

// NewRequestID mints the opaque request id carried on every record's
// metadata blob. ULIDs are lexically sortable by creation time, which
// keeps request ids useful for log correlation without a second index.
func NewRequestID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}
