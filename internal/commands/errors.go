package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to handler errors.
const (
	CodeInvalidMessage = "SHOWCASE_COMMAND_INVALID"
	CodeCancelled      = "SHOWCASE_COMMAND_CANCELLED"
	CodeTimedOut       = "SHOWCASE_COMMAND_TIMED_OUT"
	CodeFailed         = "SHOWCASE_COMMAND_FAILED"
)

// wrap leaves errors that already carry a go-errors category untouched.
func wrap(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return wrap(err, goerrors.CategoryValidation, "command message is invalid", CodeInvalidMessage)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// wrapContextError matches through wrapping so a handler returning
// fmt.Errorf("...: %w", ctx.Err()) still gets a context code.
func wrapContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrap(err, goerrors.CategoryCommand, "command deadline exceeded", CodeTimedOut)
	}
	return wrap(err, goerrors.CategoryCommand, "command cancelled", CodeCancelled)
}

func wrapExecuteError(err error) error {
	return wrap(err, goerrors.CategoryCommand, "command failed", CodeFailed)
}

// TextCode returns the text code of a handler error, or "" when it has none.
func TextCode(err error) string {
	var ge *goerrors.Error
	if errors.As(err, &ge) {
		return ge.TextCode
	}
	return ""
}
