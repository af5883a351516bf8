package domain

import "fmt"

type ErrCode string

const (
	CodeValidation      ErrCode = "validation_error"
	CodeUnauthenticated ErrCode = "unauthenticated"
	CodeForbidden       ErrCode = "forbidden"
	CodeNotFound        ErrCode = "not_found"
	CodeConflict        ErrCode = "conflict"
	CodeUnavailable     ErrCode = "service_unavailable"
	CodeDatabase        ErrCode = "database_error"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
}

func (e *AppError) Error() string {
	if len(e.Meta) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
}

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrUnauthenticated(msg string) error { return &AppError{Code: CodeUnauthenticated, Message: msg} }
func ErrForbidden(msg string) error       { return &AppError{Code: CodeForbidden, Message: msg} }
func ErrNotFound(msg string) error        { return &AppError{Code: CodeNotFound, Message: msg} }

// ErrConflict carries a machine-readable conflict tag (service_inactive,
// slot_unavailable, status) beside the human message.
func ErrConflict(kind, msg string) error {
	return &AppError{Code: CodeConflict, Message: msg, Meta: map[string]string{"conflict": kind}}
}

func ErrUnavailable(msg string) error { return &AppError{Code: CodeUnavailable, Message: msg} }

// ErrDatabase wraps a persistence failure with the failing operation and entity
// so the boundary can log something actionable without leaking SQL details.
func ErrDatabase(op, entity string, cause error) error {
	return &AppError{
		Code:    CodeDatabase,
		Message: "database operation failed",
		Meta:    map[string]string{"op": op, "entity": entity, "cause": cause.Error()},
	}
}
