package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies block failures. Every error surfaced by a block
// carries exactly one kind; the workflow host only ever sees the kind's
// envelope plus a human-readable message.
type ErrorKind string

const (
	ErrValidation     ErrorKind = "validation"
	ErrAuthentication ErrorKind = "authentication"
	ErrNotFound       ErrorKind = "not_found"
	ErrTimeout        ErrorKind = "timeout"
	ErrIO             ErrorKind = "io"
	ErrRender         ErrorKind = "render"
)

// BlockError is the single error type blocks return.
type BlockError struct {
	Kind    ErrorKind
	Message string
}

func (e *BlockError) Error() string { return e.Message }

func newBlockError(kind ErrorKind, format string, args ...any) *BlockError {
	return &BlockError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *BlockError {
	return newBlockError(ErrValidation, format, args...)
}

func Authf(format string, args ...any) *BlockError {
	return newBlockError(ErrAuthentication, format, args...)
}

func NotFoundf(format string, args ...any) *BlockError {
	return newBlockError(ErrNotFound, format, args...)
}

func Timeoutf(format string, args ...any) *BlockError {
	return newBlockError(ErrTimeout, format, args...)
}

func IOf(format string, args ...any) *BlockError {
	return newBlockError(ErrIO, format, args...)
}

func Renderf(format string, args ...any) *BlockError {
	return newBlockError(ErrRender, format, args...)
}

// AsBlockError extracts the BlockError from err. Errors produced outside the
// taxonomy are folded into a render-kind error so nothing escapes unclassified.
func AsBlockError(err error) *BlockError {
	var be *BlockError
	if errors.As(err, &be) {
		return be
	}
	return &BlockError{Kind: ErrRender, Message: err.Error()}
}

// KindOf reports the kind of err, or empty string for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	return AsBlockError(err).Kind
}
