package schema

import "fmt"

// DomainError reports a formula input outside the domain of its operation,
// such as a zero denominator or the log of a non-positive number.
type DomainError struct {
	Row    string  // Chapter name or factor label, empty when not row-scoped
	Field  string  // Offending field
	Value  float64 // Offending value
	Reason string  // Violated constraint, e.g. "must be > 0"
}

func (e *DomainError) Error() string {
	if e.Row != "" {
		return fmt.Sprintf("domain error in %q: %s=%g %s", e.Row, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("domain error: %s=%g %s", e.Field, e.Value, e.Reason)
}

// FitError reports a regression fit that could not be solved.
type FitError struct {
	Reason string
	Rows   int   // Training rows
	Terms  int   // Polynomial terms, 0 when not yet expanded
	Err    error // Underlying cause, if any
}

func (e *FitError) Error() string {
	msg := fmt.Sprintf("fit error: %s (rows=%d, terms=%d)", e.Reason, e.Rows, e.Terms)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *FitError) Unwrap() error {
	return e.Err
}
