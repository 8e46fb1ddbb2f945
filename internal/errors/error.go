package errors

import (
	"errors"
	"fmt"
)

type Code int

const (
	CodeSuccess         Code = 0
	CodeError           Code = 1
	CodeInvalidArgument Code = 2
	CodeNeedLogin       Code = 10
)

func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "SUCCESS"
	case CodeInvalidArgument:
		return "ILLEGAL_ARGUMENT"
	case CodeNeedLogin:
		return "NEED_LOGIN"
	default:
		return "ERROR"
	}
}

// Error is the structured error surfaced to callers. Two Errors match under errors.Is when their
// codes are equal.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("code=%d %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument, Message: CodeInvalidArgument.String()}
	ErrEmptyAuth       = &Error{Code: CodeNeedLogin, Message: "missing authorization"}
	ErrEmptySubject    = &Error{Code: CodeNeedLogin, Message: "missing subject"}
	ErrTokenInvalid    = &Error{Code: CodeNeedLogin, Message: "invalid token"}
)

// InvalidArgument returns an ErrInvalidArgument-matching error that names the offending input.
func InvalidArgument(format string, args ...any) error {
	return &Error{
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf("%s: %s", CodeInvalidArgument.String(), fmt.Sprintf(format, args...)),
	}
}

// CodeOf reports the code carried by err, CodeError when err is not structured and CodeSuccess when
// err is nil.
func CodeOf(err error) Code {
	if err == nil {
		return CodeSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeError
}

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func Join(errs ...error) error { return errors.Join(errs...) }
