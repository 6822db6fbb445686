// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clierr maps command failures to process exit codes.
package clierr

import (
	"errors"
	"fmt"
)

// Exit codes. Codes 1 through 5 mirror the commit message violation kinds
// in validation order.
const (
	ExitOK                = 0
	ExitMalformedHeader   = 1
	ExitTypeCasing        = 2
	ExitDescriptionCasing = 3
	ExitSummaryCasing     = 4
	ExitFooterCasing      = 5
	ExitFailure           = 6 // usage, I/O and configuration errors
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries an explicit process exit code.
// It supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Wrap creates an ExitError that wraps an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// Wrapf is a formatted variant that wraps.
func Wrapf(code int, cause error, format string, args ...any) error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Failuref reports a usage, I/O or configuration problem.
func Failuref(cause error, format string, args ...any) error {
	return Wrapf(ExitFailure, cause, format, args...)
}

// ExitCodeOf extracts an exit code from any error. Errors that carry no code
// are treated as ExitFailure so they never collide with violation codes.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFailure
}

func normalize(code int) int {
	if code <= 0 {
		return ExitFailure
	}
	return code
}
