// Package faults defines the shared error taxonomy for autosort.
//
// The sentinels mirror the failure classes the rest of the system reports:
// validation problems with user-supplied paths, permission failures on
// individual files, drift discovered while undoing a transaction, and
// persistence problems with the journal or run-history store. Callers
// classify wrapped errors with errors.Is.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrPermission  = errors.New("permission error")
	ErrDrift       = errors.New("drift error")
	ErrPersistence = errors.New("persistence error")
	ErrNotFound    = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
