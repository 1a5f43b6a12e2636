package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	CodeStorageUnavailable = "storage_unavailable"
	CodeValidation         = "validation_failed"
	CodeNotFound           = "not_found"
	CodeInternal           = "internal_error"
)

type AnnotationError struct {
	Code    string
	Message string
	Err     error
}

func (e *AnnotationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AnnotationError) Unwrap() error { return e.Err }

// Is matches any AnnotationError carrying the same code.
func (e *AnnotationError) Is(target error) bool {
	t, ok := target.(*AnnotationError)
	return ok && t.Code == e.Code
}

var (
	ErrStorageUnavailable = func(err error) *AnnotationError {
		return &AnnotationError{Code: CodeStorageUnavailable, Message: "Storage is unavailable, please retry", Err: err}
	}
	ErrValidation = func(msg string) *AnnotationError {
		return &AnnotationError{Code: CodeValidation, Message: msg}
	}
	ErrNotFound = func(err error) *AnnotationError {
		return &AnnotationError{Code: CodeNotFound, Message: "Resource not found", Err: err}
	}
	ErrInternal = func(err error) *AnnotationError {
		return &AnnotationError{Code: CodeInternal, Message: "Internal error", Err: err}
	}
)

// CodeOf returns the code of the first AnnotationError in err's chain.
func CodeOf(err error) string {
	var ae *AnnotationError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func IsStorageUnavailable(err error) bool { return CodeOf(err) == CodeStorageUnavailable }

func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }
