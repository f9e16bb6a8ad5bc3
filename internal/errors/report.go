package errors

import (
	"encoding/json"
	"errors"

	"github.com/trusty-lang/trustyc/internal/ast"
)

// Report is the canonical structured error type for trustyc.
// All error builders return *Report, which can be wrapped as ReportError.
type Report struct {
	Schema  string         `json:"schema"`         // Always "trustyc.error/v1"
	Code    string         `json:"code"`            // Error code (PRE001, RES002, ...)
	Phase   string         `json:"phase"`           // "preprocess", "resolve", "parse", "typelower", "lower", "assemble"
	Message string         `json:"message"`         // Human-readable message
	Span    *ast.Span      `json:"span,omitempty"`  // Source location, for the language server to extract
	Data    map[string]any `json:"data,omitempty"`  // Structured data (sorted keys)
}

// ReportError wraps a Report as an error.
// This allows structured reports to survive errors.As() unwrapping.
type ReportError struct {
	Rep *Report
}

// Error implements the error interface.
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

// WrapReport wraps a Report as a ReportError.
// Call sites return errors.WrapReport(report) to preserve structure.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report for the given code/phase/message, with an optional span.
func New(code, phase, message string, span *ast.Span) *Report {
	return &Report{
		Schema:  "trustyc.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    span,
	}
}

// ToJSON converts a Report to JSON (deterministic, sorted keys).
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
