// SPDX-License-Identifier: AGPL-3.0-or-later

/*
validate-commit - checks commit messages against the Type(scope): description
convention and its casing rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commitmsg parses and validates commit messages of the form
//
//	Type(scope): description
//
//	Summary paragraph.
//
//	FOOTER
//
// A Message is built from raw text at validation time and never stored.
package commitmsg

import (
	"strings"
	"unicode"
)

// scissorsLine is what `git commit -v` writes above the diff.
const scissorsLine = "# ------------------------ >8 ------------------------"

// Message is a parsed commit message.
type Message struct {
	Type        string `json:"type"`
	Scope       string `json:"scope,omitempty"`
	HasScope    bool   `json:"-"`
	Description string `json:"description"`
	Summary     string `json:"summary,omitempty"`
	Footer      string `json:"footer,omitempty"`
}

// Header reassembles the first line.
func (m *Message) Header() string {
	if m.HasScope {
		return m.Type + "(" + m.Scope + "): " + m.Description
	}
	return m.Type + ": " + m.Description
}

type line struct {
	n    int // 1-based position in the input
	text string
}

// block is a run of non-blank lines.
type block []line

func (b block) text() string {
	parts := make([]string, len(b))
	for i, l := range b {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}

// sections is a message split into header, summary and footer.
type sections struct {
	header  line
	summary []block
	footer  block
}

// cleanLines splits text into lines, keeping each line's text as given.
// With stripComments it drops git comment lines and anything below the
// scissors line.
func cleanLines(text string, stripComments bool) []line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")

	out := make([]line, 0, len(raw))
	for i, l := range raw {
		if stripComments {
			if strings.TrimRight(l, " \t") == scissorsLine {
				break
			}
			if strings.HasPrefix(l, "#") {
				continue
			}
		}
		out = append(out, line{n: i + 1, text: l})
	}
	return out
}

func splitBlocks(lines []line) []block {
	var (
		blocks []block
		cur    block
	)
	for _, l := range lines {
		if strings.TrimSpace(l.text) == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// split sections the message by blank lines. A lone trailing block is the
// summary unless it reads as a footer; with two or more trailing blocks the
// last one is always the footer.
func split(text string, stripComments bool) (*sections, *Violation) {
	blocks := splitBlocks(cleanLines(text, stripComments))
	if len(blocks) == 0 {
		return nil, violation(MalformedHeader, 0, "", "message is empty")
	}

	head := blocks[0]
	if len(head) > 1 {
		return nil, violation(MalformedHeader, head[1].n, "", "header must be a single line followed by a blank line")
	}

	s := &sections{header: head[0]}
	rest := blocks[1:]
	switch {
	case len(rest) == 1 && looksLikeFooter(rest[0]):
		s.footer = rest[0]
	case len(rest) >= 2:
		s.summary = rest[:len(rest)-1]
		s.footer = rest[len(rest)-1]
	default:
		s.summary = rest
	}
	return s, nil
}

// looksLikeFooter reports whether b has an uppercase letter and no lowercase
// one. Scripts without case never read as a footer.
func looksLikeFooter(b block) bool {
	upper := false
	for _, l := range b {
		for _, r := range l.text {
			if !unicode.IsLetter(r) {
				continue
			}
			if unicode.IsLower(r) {
				return false
			}
			if unicode.IsUpper(r) {
				upper = true
			}
		}
	}
	return upper
}

func joinBlocks(blocks []block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.text()
	}
	return strings.Join(parts, "\n\n")
}
