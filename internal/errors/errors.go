// Package errors defines the error taxonomy of the analysis pipeline.
//
// Every failure that leaves a component is an *AnalysisError carrying a
// Type, the pipeline step that produced it and, where available, the
// underlying cause. All types are fatal for a run; nothing is retried.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the category of an analysis error
type ErrorType string

const (
	ErrorTypeDataFile     ErrorType = "data_file"
	ErrorTypeParse        ErrorType = "parse"
	ErrorTypeEmptyDataset ErrorType = "empty_dataset"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeRender       ErrorType = "render"
	ErrorTypeCancellation ErrorType = "cancellation"
	ErrorTypeExecution    ErrorType = "execution"
)

// ErrNoData is wrapped by every empty-dataset error so callers can test for it
// with errors.Is regardless of which step ran out of data.
var ErrNoData = stderrors.New("no data")

// AnalysisError represents a pipeline error
type AnalysisError struct {
	Type    ErrorType              `json:"type"`
	Step    string                 `json:"step,omitempty"`
	Message string                 `json:"message"`
	Cause   error                  `json:"cause,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e == nil {
		return "unknown analysis error"
	}
	msg := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if e.Step != "" {
		msg = fmt.Sprintf("[%s] %s: %s", e.Type, e.Step, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// WithContext adds context to the error
func (e *AnalysisError) WithContext(key string, value interface{}) *AnalysisError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewDataFileError creates an error for a failed read or write of a data file
func NewDataFileError(step, path string, cause error) *AnalysisError {
	return (&AnalysisError{
		Type:    ErrorTypeDataFile,
		Step:    step,
		Message: fmt.Sprintf("data file %s", path),
		Cause:   cause,
	}).WithContext("path", path)
}

// NewParseError creates an error for a malformed field. line is 1-based and
// counts the header row.
func NewParseError(line int, column, value string, cause error) *AnalysisError {
	return (&AnalysisError{
		Type:    ErrorTypeParse,
		Step:    "load",
		Message: fmt.Sprintf("line %d: invalid %s value %q", line, column, value),
		Cause:   cause,
	}).WithContext("line", line).WithContext("column", column)
}

// NewEmptyDatasetError creates an error for a step that has no records to work on
func NewEmptyDatasetError(step, message string) *AnalysisError {
	return &AnalysisError{
		Type:    ErrorTypeEmptyDataset,
		Step:    step,
		Message: message,
		Cause:   ErrNoData,
	}
}

// NewValidationError creates a configuration or input validation error
func NewValidationError(step, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Type:    ErrorTypeValidation,
		Step:    step,
		Message: message,
		Cause:   cause,
	}
}

// NewRenderError creates an error for a failed chart or report output
func NewRenderError(step, target string, cause error) *AnalysisError {
	return (&AnalysisError{
		Type:    ErrorTypeRender,
		Step:    step,
		Message: fmt.Sprintf("render %s", target),
		Cause:   cause,
	}).WithContext("target", target)
}

// NewCancellationError creates an error for a run cancelled before step
func NewCancellationError(step string, cause error) *AnalysisError {
	return &AnalysisError{
		Type:    ErrorTypeCancellation,
		Step:    step,
		Message: "run was cancelled",
		Cause:   cause,
	}
}

// GetErrorType returns the type of the first AnalysisError in err's chain,
// or an empty type when there is none.
func GetErrorType(err error) ErrorType {
	var aErr *AnalysisError
	if stderrors.As(err, &aErr) {
		return aErr.Type
	}
	return ""
}

// IsType reports whether err's chain contains an AnalysisError of type t
func IsType(err error, t ErrorType) bool {
	return err != nil && GetErrorType(err) == t
}

// WrapError wraps an error with step context
func WrapError(err error, step string, message string) error {
	if err == nil {
		return nil
	}

	var aErr *AnalysisError
	if stderrors.As(err, &aErr) {
		if aErr.Step == "" {
			aErr.Step = step
		}
		if message != "" {
			return fmt.Errorf("%s: %w", message, err)
		}
		return err
	}

	return &AnalysisError{
		Type:    ErrorTypeExecution,
		Step:    step,
		Message: message,
		Cause:   err,
	}
}
