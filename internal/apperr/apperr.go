package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the fixed taxonomy every handler maps
// onto HTTP statuses. Workflow code returns *Error; handlers never pick
// status codes by hand.
type Kind int

const (
	Unauthenticated Kind = iota
	Forbidden
	NotFound
	Validation
	Conflict
	Dependency
	Internal
)

type Error struct {
	Kind    Kind
	Code    string // machine-stable, e.g. "duplicate_application"
	Message string
	Err     error // wrapped cause, logged but never sent to callers
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthenticatedf(code, format string, args ...any) *Error {
	return &Error{Kind: Unauthenticated, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(code, format string, args ...any) *Error {
	return &Error{Kind: Forbidden, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(code, format string, args ...any) *Error {
	return &Error{Kind: NotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validationf(code, format string, args ...any) *Error {
	return &Error{Kind: Validation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(code, format string, args ...any) *Error {
	return &Error{Kind: Conflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Dependencyf wraps a failure of the database, object storage or a
// notification provider.
func Dependencyf(code string, err error, format string, args ...any) *Error {
	return &Error{Kind: Dependency, Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func Internalf(err error, format string, args ...any) *Error {
	return &Error{Kind: Internal, Code: "internal", Message: fmt.Sprintf(format, args...), Err: err}
}

// As extracts an *Error, or wraps unknown errors as Internal so callers
// always get a classified error back.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internalf(err, "unexpected error")
}

// Respond writes the structured error body for err with its mapped
// status code. Every rejection, middleware included, goes through
// this so callers always get a machine-stable error code.
func Respond(w http.ResponseWriter, err error) {
	ae := As(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(ae))
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   ae.Code,
		"message": ae.Message,
	})
}

// HTTPStatus maps an error to the status code its kind prescribes.
func HTTPStatus(err error) int {
	switch As(err).Kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
