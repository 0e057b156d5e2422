// Package validation carries aggregated entity-construction failures.
package validation

import "strings"

// Violation describes a single violated rule.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error aggregates every rule an entity construction violated, so callers
// see the full set of problems in one failure.
type Error struct {
	Violations []Violation `json:"errors"`
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return "validation error"
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

// Collector accumulates violations during construction.
type Collector struct {
	violations []Violation
}

// Add records one violated rule.
func (c *Collector) Add(field, code, message string) {
	c.violations = append(c.violations, Violation{Field: field, Code: code, Message: message})
}

// Err returns the aggregated error, or nil when nothing was violated.
func (c *Collector) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &Error{Violations: c.violations}
}
