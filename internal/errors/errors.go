package errors

import (
	"errors"
)

var (
	ErrInvalidPath  = errors.New("invalid path")
	ErrRemoteQuery  = errors.New("remote query error")
	ErrRemoteCreate = errors.New("remote create error")
	ErrNotify       = errors.New("notify error")
	ErrBuild        = errors.New("build failure")
	ErrAuth         = errors.New("auth error")
	ErrIOError      = errors.New("io error")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

// NewQueryError wraps a failed remote list/search call.
func NewQueryError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrRemoteQuery,
		msg:        msg,
		cause:      cause,
	}
}

// NewCreateError wraps a failed remote create or update call.
func NewCreateError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrRemoteCreate,
		msg:        msg,
		cause:      cause,
	}
}

// NewNotifyError wraps a failed webhook delivery.
func NewNotifyError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrNotify,
		msg:        msg,
		cause:      cause,
	}
}

// NewBuildError wraps a build-tool failure.
func NewBuildError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrBuild,
		msg:        msg,
		cause:      cause,
	}
}

// NewAuthError wraps a credential or token failure.
func NewAuthError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrAuth,
		msg:        msg,
		cause:      cause,
	}
}

func NewIOError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrIOError,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}
