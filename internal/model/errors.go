package model

import "fmt"

// ValidationError reports malformed, missing or empty input at a stage boundary.
type ValidationError struct {
	Stage string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed: %s", e.Stage, e.Msg)
}

// NewValidationError formats a ValidationError for the given stage.
func NewValidationError(stage, format string, args ...any) *ValidationError {
	return &ValidationError{Stage: stage, Msg: fmt.Sprintf(format, args...)}
}

// CalculationError reports a fault in EMA or aggregation arithmetic.
type CalculationError struct {
	Stage string
	Msg   string
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("%s: calculation failed: %s", e.Stage, e.Msg)
}

// NewCalculationError formats a CalculationError for the given stage.
func NewCalculationError(stage, format string, args ...any) *CalculationError {
	return &CalculationError{Stage: stage, Msg: fmt.Sprintf(format, args...)}
}
