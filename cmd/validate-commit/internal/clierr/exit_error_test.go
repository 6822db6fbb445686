package clierr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bartekus/validate-commit/internal/commitmsg"
)

func TestExitCodeOf(t *testing.T) {
	_, violation := commitmsg.Validate("Feat: Add x")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "plain error", err: errors.New("boom"), want: ExitFailure},
		{name: "explicit code", err: New(ExitSummaryCasing, "bad summary"), want: ExitSummaryCasing},
		{name: "zero code normalized", err: New(0, "oops"), want: ExitFailure},
		{name: "wrapped exit error", err: fmt.Errorf("outer: %w", New(ExitFooterCasing, "x")), want: ExitFooterCasing},
		{name: "violation carries its own code", err: violation, want: ExitDescriptionCasing},
		{name: "wrapped violation", err: fmt.Errorf("reading: %w", violation), want: ExitDescriptionCasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	err := Failuref(os.ErrNotExist, "reading %s", "msg.txt")
	assert.Equal(t, "reading msg.txt: file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, ExitFailure, ExitCodeOf(err))

	assert.Equal(t, "plain", Wrap(ExitMalformedHeader, "plain", nil).Error())
}
