package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRate reports a non-positive exchange rate. Aggregation for the
// pass aborts rather than producing a silently wrong conversion.
var ErrInvalidRate = errors.New("exchange rate must be positive")

// SourceUnavailableError reports a single adapter fetch failure. The engine
// recovers locally by substituting zero and flagging the result as partial.
type SourceUnavailableError struct {
	Source string
	Range  DateRange
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable for %s..%s: %v",
		e.Source, e.Range.Start.Format("2006-01-02"), e.Range.End.Format("2006-01-02"), e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// FieldErrors maps transfer form fields to validation messages. A draft with
// field errors is never submitted to the ledger.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// LedgerRejectedError carries the ledger's failure message verbatim. The
// caller sees it as-is; no local retry or compensation happens.
type LedgerRejectedError struct {
	Message string
}

func (e *LedgerRejectedError) Error() string {
	return fmt.Sprintf("ledger rejected transfer: %s", e.Message)
}
