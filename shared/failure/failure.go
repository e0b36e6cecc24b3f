package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var MissingUserHeader = &Failure{Code: http.StatusBadRequest, Message: "X-Sharer-User-Id header is required"}
var InvalidUserHeader = &Failure{Code: http.StatusBadRequest, Message: "X-Sharer-User-Id header must be a positive number"}
var InvalidIDParam = &Failure{Code: http.StatusBadRequest, Message: "invalid id parameter"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
// Business rule violations (bad time range, wrong status, unknown state) use it.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// Forbidden returns a new Failure for a caller that exists but lacks the role for the action.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// Denied returns Forbidden, or NotFound when asNotFound hides the entity from the caller.
func Denied(msg string, asNotFound bool) error {
	if asNotFound {
		return NotFound(msg)
	}

	return Forbidden(msg)
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the client-facing message of err, without the wrap chain around a Failure.
func GetMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return err.Error()
}
