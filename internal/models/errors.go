package models

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports bad or missing caller input.
// Fields carries per-field messages when the failure is field level.
type ValidationError struct {
	Message string
	Fields  map[string]string

	// Err is the underlying cause, e.g. an *InvalidSplitError.
	Err error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidSplitError reports that a split rule cannot be applied to an amount.
type InvalidSplitError struct {
	Reason string
}

func (e *InvalidSplitError) Error() string {
	return "invalid split: " + e.Reason
}

// NotFoundError reports a reference to an unknown ID.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}
