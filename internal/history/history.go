// SPDX-License-Identifier: AGPL-3.0-or-later

/*
validate-commit - checks commit messages against the Type(scope): description
convention and its casing rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package history validates the messages of existing commits.
package history

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// Commit is one commit's metadata.
type Commit struct {
	SHA         string
	Message     string
	AuthorName  string
	AuthorEmail string
}

// Source provides commit history for analysis.
type Source interface {
	Commits(ctx context.Context) ([]Commit, error)
}

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// GitSource reads non-merge commits from a repository with git log.
type GitSource struct {
	repoRoot string
	revRange string
	maxCount int

	mu    sync.Mutex
	cache []Commit
}

// NewGitSource reads revRange (default HEAD) in repoRoot. A positive
// maxCount limits how many commits are read.
func NewGitSource(repoRoot, revRange string, maxCount int) *GitSource {
	if revRange == "" {
		revRange = "HEAD"
	}
	return &GitSource{
		repoRoot: repoRoot,
		revRange: revRange,
		maxCount: maxCount,
	}
}

// Commits returns the commits newest first, caching them for the lifetime of
// the source.
func (g *GitSource) Commits(ctx context.Context) ([]Commit, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cache != nil {
		return g.cache, nil
	}

	args := []string{"log", "--no-merges", "--format=%H%x1f%an%x1f%ae%x1f%B%x1e"}
	if g.maxCount > 0 {
		args = append(args, "--max-count="+strconv.Itoa(g.maxCount))
	}
	args = append(args, g.revRange, "--")

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repoRoot
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("git log %s failed: %s", g.revRange, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("git log %s failed: %w", g.revRange, err)
	}

	g.cache = parseLog(string(out))
	return g.cache, nil
}

func parseLog(out string) []Commit {
	commits := []Commit{}
	for _, rec := range strings.Split(out, recordSep) {
		rec = strings.TrimLeft(rec, "\n")
		if rec == "" {
			continue
		}
		f := strings.SplitN(rec, fieldSep, 4)
		if len(f) < 4 {
			continue
		}
		commits = append(commits, Commit{
			SHA:         f[0],
			AuthorName:  f[1],
			AuthorEmail: f[2],
			Message:     strings.TrimRight(f[3], "\n"),
		})
	}
	return commits
}
