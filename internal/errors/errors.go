package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error for a reference token
func NewNotFoundError(kind string, token string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("could not find any %s matching %q", kind, token),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"kind":  kind,
			"token": token,
		},
	}
}

// NewAmbiguousInputError creates an error for an invalid answer to a
// disambiguation prompt
func NewAmbiguousInputError(input string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeAmbiguous,
		Message: fmt.Sprintf("invalid selection %q: %s", input, reason),
		Code:    "AMBIGUOUS_INPUT",
		Context: map[string]interface{}{
			"input":  input,
			"reason": reason,
		},
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(field string, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: fmt.Sprintf("%s: %s", field, message),
		Code:    "CONFIG_ERROR",
		Context: map[string]interface{}{
			"field": field,
		},
	}
}

// NewDateParseError creates an error for an unparseable date literal
func NewDateParseError(value string) *AppError {
	return &AppError{
		Type:    ErrorTypeDateParse,
		Message: fmt.Sprintf("could not parse %q as a date", value),
		Code:    "DATE_PARSE_FAILED",
		Context: map[string]interface{}{
			"value": value,
		},
	}
}

// NewTimeParseError creates an error for an unparseable time or duration literal
func NewTimeParseError(value string) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeParse,
		Message: fmt.Sprintf("could not parse %q as a time", value),
		Code:    "TIME_PARSE_FAILED",
		Context: map[string]interface{}{
			"value": value,
		},
	}
}

// NewTemporalConstraintError creates an error for a violated start/end/duration rule
func NewTemporalConstraintError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeTemporalConstraint,
		Message: message,
		Code:    "TEMPORAL_CONSTRAINT",
		Context: make(map[string]interface{}),
	}
}

// NewRemoteError creates an error for a failed remote API call. The status
// code and body are surfaced verbatim.
func NewRemoteError(statusCode int, body string) *AppError {
	return &AppError{
		Type:    ErrorTypeRemote,
		Message: fmt.Sprintf("remote service returned %d: %s", statusCode, body),
		Code:    "REMOTE_ERROR",
		Context: map[string]interface{}{
			"status_code": statusCode,
			"body":        body,
		},
	}
}

// NewTransportError creates an error for a transport-level remote failure
func NewTransportError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeRemote,
		Message: fmt.Sprintf("remote call failed: %s", operation),
		Code:    "TRANSPORT_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewCorruptHierarchyError creates an error for a task whose parent chain
// never reaches a client
func NewCorruptHierarchyError(taskID int64, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeCorruptHierarchy,
		Message: fmt.Sprintf("task %d has a corrupt hierarchy: %s", taskID, reason),
		Code:    "CORRUPT_HIERARCHY",
		Context: map[string]interface{}{
			"task_id": taskID,
			"reason":  reason,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}
