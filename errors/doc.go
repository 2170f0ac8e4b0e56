// Package errors provides structured error types for the peartube bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRender, errors.KindAllocation).
//		Detail("frame buffer %dx%d", w, h).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Instantiation(errors.PhaseCreate, status)
//	err := errors.InvalidInput(errors.PhaseScript, "width must be positive")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
