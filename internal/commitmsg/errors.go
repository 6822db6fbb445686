// SPDX-License-Identifier: AGPL-3.0-or-later

package commitmsg

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind int

const (
	MalformedHeader Kind = iota + 1
	InvalidTypeCasing
	InvalidDescriptionCasing
	InvalidSummaryCasing
	InvalidFooterCasing
)

// Sentinels for errors.Is matching against a *Violation.
var (
	ErrMalformedHeader          = errors.New("malformed header")
	ErrInvalidTypeCasing        = errors.New("invalid type casing")
	ErrInvalidDescriptionCasing = errors.New("invalid description casing")
	ErrInvalidSummaryCasing     = errors.New("invalid summary casing")
	ErrInvalidFooterCasing      = errors.New("invalid footer casing")
)

func (k Kind) sentinel() error {
	switch k {
	case MalformedHeader:
		return ErrMalformedHeader
	case InvalidTypeCasing:
		return ErrInvalidTypeCasing
	case InvalidDescriptionCasing:
		return ErrInvalidDescriptionCasing
	case InvalidSummaryCasing:
		return ErrInvalidSummaryCasing
	case InvalidFooterCasing:
		return ErrInvalidFooterCasing
	}
	return nil
}

func (k Kind) String() string {
	switch k {
	case MalformedHeader:
		return "MalformedHeader"
	case InvalidTypeCasing:
		return "InvalidTypeCasing"
	case InvalidDescriptionCasing:
		return "InvalidDescriptionCasing"
	case InvalidSummaryCasing:
		return "InvalidSummaryCasing"
	case InvalidFooterCasing:
		return "InvalidFooterCasing"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExitCode is the process exit status reported for this kind: 1 through 5
// in validation order.
func (k Kind) ExitCode() int {
	if k < MalformedHeader || k > InvalidFooterCasing {
		return 1
	}
	return int(k)
}

// MarshalText renders the kind by name so reports stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Violation is the first rule a message broke.
type Violation struct {
	Kind Kind
	// Line is the 1-based line of the input, 0 when unknown.
	Line int
	// Word is the offending token, if the rule is word-based.
	Word   string
	Reason string
}

func (v *Violation) Error() string {
	msg := v.Kind.String()
	if s := v.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if v.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, v.Line)
	}
	if v.Reason != "" {
		msg += ": " + v.Reason
	}
	return msg
}

// Is reports whether target is the sentinel for v's kind.
func (v *Violation) Is(target error) bool {
	return target != nil && target == v.Kind.sentinel()
}

// ExitCode lets callers map a violation straight to a process status.
func (v *Violation) ExitCode() int { return v.Kind.ExitCode() }

func violation(kind Kind, line int, word, format string, args ...any) *Violation {
	return &Violation{
		Kind:   kind,
		Line:   line,
		Word:   word,
		Reason: fmt.Sprintf(format, args...),
	}
}
