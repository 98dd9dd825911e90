package study

import (
	"errors"
	"fmt"
	"strings"
)

// Violation is one field-scoped validation failure. Path addresses the
// offending field including list indexes, e.g. "prompts[2].template".
type Violation struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (v Violation) Error() string {
	if v.Path == "" {
		return v.Reason
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// Violations is the complete list of structural and cross-field failures
// found in one document. Validation never stops at the first violation.
type Violations []Violation

func (vs Violations) Error() string {
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// IsViolations checks if an error carries a validation failure list.
func IsViolations(err error) bool {
	var vs Violations
	return errors.As(err, &vs)
}

// AsViolations extracts the violation list from an error chain.
func AsViolations(err error) (Violations, bool) {
	var vs Violations
	ok := errors.As(err, &vs)
	return vs, ok
}

// DuplicateIDError reports a broken collection-level uniqueness invariant,
// naming the identifier that recurs.
type DuplicateIDError struct {
	Field string
	Value string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s: %s", e.Field, e.Value)
}

// IsDuplicateIDError checks if an error is a DuplicateIDError.
func IsDuplicateIDError(err error) bool {
	var de DuplicateIDError
	return errors.As(err, &de)
}
