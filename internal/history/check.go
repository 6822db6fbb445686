// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bartekus/validate-commit/internal/commitmsg"
	"github.com/bartekus/validate-commit/internal/logger"
)

// Validator is satisfied by *commitmsg.Validator.
type Validator interface {
	Validate(text string) (*commitmsg.Message, error)
}

// Result is the outcome for one commit.
type Result struct {
	SHA    string         `json:"sha"`
	Author string         `json:"author"`
	Header string         `json:"header"`
	Kind   commitmsg.Kind `json:"kind,omitempty"`
	Error  string         `json:"error,omitempty"`

	err error
}

// Passed reports whether the commit message is valid.
func (r Result) Passed() bool { return r.err == nil }

// Report summarizes a history check.
type Report struct {
	Total   int            `json:"total"`
	Passed  int            `json:"passed"`
	Failed  int            `json:"failed"`
	ByKind  map[string]int `json:"by_kind"`
	Results []Result       `json:"results"`
}

// Check validates every commit src yields, in the order given.
func Check(ctx context.Context, src Source, v Validator) (*Report, error) {
	commits, err := src.Commits(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading commits: %w", err)
	}

	log := logger.Get(ctx)
	rep := &Report{
		ByKind:  map[string]int{},
		Results: make([]Result, 0, len(commits)),
	}
	for _, c := range commits {
		header, _, _ := strings.Cut(c.Message, "\n")
		res := Result{
			SHA:    c.SHA,
			Author: c.AuthorName,
			Header: header,
		}

		if _, err := v.Validate(c.Message); err != nil {
			res.err = err
			res.Error = err.Error()
			var viol *commitmsg.Violation
			if errors.As(err, &viol) {
				res.Kind = viol.Kind
				rep.ByKind[viol.Kind.String()]++
			}
			rep.Failed++
			log.Debug("commit rejected", "sha", shortSHA(c.SHA), "err", err)
		} else {
			rep.Passed++
			log.Debug("commit ok", "sha", shortSHA(c.SHA))
		}
		rep.Total++
		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}

// FirstFailure returns the error of the first failing commit, wrapped with
// its SHA, or nil when every commit passed.
func (r *Report) FirstFailure() error {
	for _, res := range r.Results {
		if !res.Passed() {
			return fmt.Errorf("commit %s: %w", shortSHA(res.SHA), res.err)
		}
	}
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
