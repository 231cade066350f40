package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindIO         Kind = "io"
	KindEncode     Kind = "encode"
	KindValidation Kind = "validation"
)

type Error struct {
	Kind Kind
	// SafeMessage is shown to the user in notifications.
	SafeMessage string
	// Cause keeps the underlying error for the logs.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := strings.TrimSpace(e.SafeMessage)
	if msg == "" {
		msg = defaultSafeMessage(e.Kind)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindIO:
		return "Could not write the image file."
	case KindEncode:
		return "Could not encode the image."
	case KindValidation:
		return "Invalid setting."
	default:
		return "Operation failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{Kind: kind, SafeMessage: msg, Cause: cause}
}

// Validation is shorthand for a validation error with no underlying cause.
func Validation(msg string) error {
	return New(KindValidation, msg, nil)
}

func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		return appErr.Kind, true
	}
	return "", false
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		if msg := strings.TrimSpace(appErr.SafeMessage); msg != "" {
			return msg
		}
		return defaultSafeMessage(appErr.Kind)
	}
	return "Operation failed."
}
