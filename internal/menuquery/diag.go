// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package menuquery

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Query failure conditions. None of them is returned to the caller as an
// error: a failed query yields an empty item list and records one of
// these in its diagnostics instead.
var (
	// ErrMissingLocation is recorded when the required location option
	// is absent or empty.
	ErrMissingLocation = errors.New("location is a required option and must be set")

	// ErrLocationNotRegistered is recorded when the location is not a
	// registered menu location.
	ErrLocationNotRegistered = errors.New("location is not registered")

	// ErrNoMenuAttached is recorded when the location is registered but
	// has no menu attached.
	ErrNoMenuAttached = errors.New("location does not have an attached menu")

	// ErrMenuNotResolved is recorded when the location checks pass but
	// the data source could not produce the menu itself.
	ErrMenuNotResolved = errors.New("menu for location could not be resolved")
)

// Severity classifies a diagnostic.
type Severity string

// Diagnostic severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one structured failure report attached to a query.
// Callers that need to distinguish "no items" from "misconfigured query"
// inspect these rather than the item count.
type Diagnostic struct {
	Severity Severity
	Err      error
	Location string
	Caller   string
}

// Message renders the diagnostic for logs and API responses.
func (d Diagnostic) Message() string {
	if d.Location == "" {
		return d.Err.Error()
	}
	return fmt.Sprintf("%s: %q", d.Err.Error(), d.Location)
}

// Is reports whether the diagnostic wraps the given failure condition.
func (d Diagnostic) Is(target error) bool {
	return errors.Is(d.Err, target)
}

// callerAttribution identifies the call site that invoked the query, for
// diagnostic attribution. skip counts stack frames above this function.
func callerAttribution(skip int) string {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	name := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}
	return fmt.Sprintf("%s (%s:%d)", name, filepath.Base(file), line)
}
