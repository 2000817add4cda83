// Package response turns the outcome of an operation into the message
// shown to the operator.
//
// Every menu action reports through here, so outcomes always look the
// same: a plain line for success and notices, an "error: " prefix for
// failures.
package response

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aanand-mishra/apartments-registry/internal/registry"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/go-playground/validator/v10"
)

// Response is one operator-facing outcome.
type Response struct {
	Status  string
	Message string
}

// Status values. StatusNotice marks outcomes that change nothing but are
// not failures, like assigning a resident to the apartment they already
// live in.
const (
	StatusOK     = "ok"
	StatusNotice = "notice"
	StatusError  = "error"
)

// OK builds a success response.
func OK(format string, args ...any) Response {
	return Response{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// Notice builds a no-op response.
func Notice(format string, args ...any) Response {
	return Response{Status: StatusNotice, Message: fmt.Sprintf(format, args...)}
}

// Write prints resp as one line.
func Write(w io.Writer, resp Response) error {
	line := resp.Message
	if resp.Status == StatusError {
		line = "error: " + line
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// FromError classifies err. Validation failures get per-field messages,
// "already assigned" and "no saved data" become notices, anything else is
// a general error.
func FromError(err error) Response {
	var validateErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validateErrs):
		return ValidationError(validateErrs)
	case errors.Is(err, registry.ErrAlreadyAssigned):
		return Response{Status: StatusNotice, Message: err.Error()}
	case errors.Is(err, storage.ErrNoData):
		return Response{Status: StatusNotice, Message: err.Error() + "; keeping the current registry"}
	default:
		return GeneralError(err)
	}
}

// GeneralError wraps any error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status:  StatusError,
		Message: err.Error(),
	}
}

// ValidationError converts the validator's per-field errors into a single
// human-readable Response.
//
// Example output:
//
//	error: field FullName is required, field Area must be greater than 0
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "gt":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be greater than %s", e.Field(), e.Param()))
		case "gte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "oneof":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be one of [%s]", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status:  StatusError,
		Message: strings.Join(errMessages, ", "),
	}
}
