// Space Food - Self-Hosted Meal Planning Application
// Copyright (C) 2025 RGH Software
// Licensed under AGPL-3.0

// Package apperrors implements the planner's error taxonomy: a small set
// of machine-checkable tags plus a short human string, propagated with
// errors.Is/errors.As instead of ad-hoc string matching.
package apperrors

import (
	"errors"
	"fmt"
)

// Code is a machine tag for a domain error.
type Code string

const (
	InsufficientRecipes      Code = "insufficient_recipes"
	NoSlotFillable           Code = "no_slot_fillable"
	WeekLocked               Code = "week_locked"
	InvalidRotationState     Code = "invalid_rotation_state"
	SnapshotMissing          Code = "snapshot_missing"
	AlgorithmTimeout         Code = "algorithm_timeout"
	ExternalCatalogUnavailable Code = "external_catalog_unavailable"
	EventAppendFailed        Code = "event_append_failed"
	ProjectionLagExceeded    Code = "projection_lag_exceeded"
)

// Error is a tagged domain error carrying a machine Code, a short
// human-readable message, optional structured Details for callers that
// need more than the formatted string, and an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Details any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a tagged error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a tagged error wrapping cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Is reports whether err carries the given Code, unwrapping as needed.
func Is(err error, code Code) bool {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Code == code
	}
	return false
}

// CodeOf extracts the Code from err, or "" if err does not carry one.
func CodeOf(err error) Code {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Code
	}
	return ""
}
