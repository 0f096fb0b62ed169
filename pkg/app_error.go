package pkg

import (
	"fmt"
	"net/http"
)

// ErrorKind is the stable failure class reported to callers.
type ErrorKind string

const (
	KindInvalidArgument    ErrorKind = "INVALID_ARGUMENT"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindConflict           ErrorKind = "CONFLICT"
	KindFailedPrecondition ErrorKind = "FAILED_PRECONDITION"
	KindInternal           ErrorKind = "INTERNAL"
)

// AppError is the error shape returned by HTTP handlers.
//
// Code identifies the concrete failure (e.g. BUDGET_NOT_FOUND) while Kind
// groups it into one of the five classes clients are expected to branch on.
type AppError struct {
	Code       string
	Kind       ErrorKind
	Message    string
	HTTPStatus int
	Err        error
}

// HTTPError is the JSON body written for failed requests.
type HTTPError struct {
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{
		Code:    e.Code,
		Kind:    string(e.Kind),
		Message: e.Message,
	}
}

// NewDomainError builds an AppError wrapping the underlying cause.
// The kind is derived from the HTTP status.
func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Kind:       KindForStatus(httpStatus),
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return NewDomainError(code, message, nil, httpStatus)
}

// NewKindError builds an AppError for an explicit kind, using the kind's
// canonical HTTP status.
func NewKindError(kind ErrorKind, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: StatusForKind(kind),
	}
}

func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindFailedPrecondition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func KindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindInvalidArgument
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnprocessableEntity, http.StatusPreconditionFailed:
		return KindFailedPrecondition
	default:
		return KindInternal
	}
}
