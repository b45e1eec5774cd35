package mapreport

import (
	"errors"
	"fmt"
)

// Sentinel errors for report generation failure conditions.
var (
	ErrNotSetUp              = errors.New("mapreport: layout has not been set up")
	ErrNoViewportImage       = errors.New("mapreport: no viewport image supplied")
	ErrOrientationUnresolved = errors.New("mapreport: orientation must be resolved to portrait or landscape")
)

// ReportError represents an error that occurred during a specific report
// operation. It wraps an underlying error and includes the operation name
// for context.
type ReportError struct {
	Op  string // operation name, e.g. "Setup", "Draw"
	Err error  // underlying error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapreport.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("mapreport.%s: unknown error", e.Op)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// newReportError creates a new ReportError wrapping the given error with
// operation context.
func newReportError(op string, err error) *ReportError {
	return &ReportError{Op: op, Err: err}
}
