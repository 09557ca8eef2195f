package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Report is the canonical structured error type for churf. All error
// constructors in internal/types and internal/mono return a *Report
// (wrapped as a ReportError) so the driver can render or serialize them
// uniformly.
type Report struct {
	Schema  string         `json:"schema"` // Always "churf.error/v1"
	Code    string         `json:"code"`   // e.g. TYC005, MONO003
	Phase   string         `json:"phase"`  // "typecheck", "monomorphize", "load"
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report as an error so structured reports survive
// errors.As() unwrapping through ordinary Go error-handling code.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// New constructs a Report wrapped as an error, the standard way every
// error in internal/types and internal/mono is produced.
func New(code, phase, message string, data map[string]any) error {
	return &ReportError{Rep: &Report{
		Schema:  "churf.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Data:    data,
	}}
}

// ToJSON renders a Report deterministically (sorted keys, via
// encoding/json's native map ordering) for tooling consumption.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewGeneric wraps an arbitrary error as a Report, used at phase
// boundaries (e.g. loader I/O failures) where no specific code applies.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  "churf.error/v1",
		Code:    "RUNTIME",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}

// Errorf builds an ad-hoc Report without a registered code, for truly
// exceptional internal-bug paths (e.g. the monomorphizer's "Incomplete
// entry never completed" invariant violation).
func Errorf(phase, format string, args ...any) error {
	return New("INTERNAL", phase, fmt.Sprintf(format, args...), nil)
}
