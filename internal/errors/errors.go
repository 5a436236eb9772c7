package errors

import (
	"errors"
	"fmt"

	"github.com/Mazzol/MVA/domain/sensitivity"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeLayoutError        = "LAYOUT_ERROR"
	CodeShapeError         = "SHAPE_ERROR"
	CodeDegenerateSample   = "DEGENERATE_SAMPLE"
	CodeInsufficientSample = "INSUFFICIENT_SAMPLE"
	CodeUnsupportedMethod  = "UNSUPPORTED_METHOD"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// CodeFor maps a domain error to its application error code.
func CodeFor(err error) string {
	var (
		layoutErr       *sensitivity.LayoutError
		shapeErr        *sensitivity.ShapeError
		degenerateErr   *sensitivity.DegenerateSampleError
		insufficientErr *sensitivity.InsufficientSampleError
		unsupportedErr  *sensitivity.UnsupportedMethodError
		fieldErr        *sensitivity.InvalidFieldError
	)
	switch {
	case errors.As(err, &layoutErr):
		return CodeLayoutError
	case errors.As(err, &shapeErr):
		return CodeShapeError
	case errors.As(err, &degenerateErr):
		return CodeDegenerateSample
	case errors.As(err, &insufficientErr):
		return CodeInsufficientSample
	case errors.As(err, &unsupportedErr):
		return CodeUnsupportedMethod
	case errors.As(err, &fieldErr):
		return CodeInvalidInput
	default:
		return CodeInternalError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
