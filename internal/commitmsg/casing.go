// SPDX-License-Identifier: AGPL-3.0-or-later

package commitmsg

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// codeMark stands in for a masked `code span`. It is neither a letter nor
// whitespace, so casing rules skip it and sentences never split inside it.
const codeMark = '\uFFFC'

// abbreviations end in a period without ending the sentence.
var abbreviations = map[string]bool{
	"e.g.": true,
	"i.e.": true,
	"etc.": true,
	"vs.":  true,
	"cf.":  true,
}

// nameSet is an immutable allow-list of exempt words.
type nameSet map[string]struct{}

func newNameSet(groups ...[]string) nameSet {
	s := make(nameSet)
	for _, g := range groups {
		for _, name := range g {
			if name = strings.TrimSpace(name); name != "" {
				s[name] = struct{}{}
			}
		}
	}
	return s
}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// allows reports whether word may carry uppercase letters: either the whole
// word (minus surrounding punctuation) is listed, or every identifier segment
// holding an uppercase rune is.
func (s nameSet) allows(word string) bool {
	if s.has(strings.TrimFunc(word, isSeparator)) {
		return true
	}
	for _, seg := range identifiers(word) {
		if hasUpper(seg) && !s.has(seg) {
			return false
		}
	}
	return true
}

// maskCode replaces each closed `code span` with a single codeMark.
func maskCode(s string) string {
	if !strings.Contains(s, "`") {
		return s
	}
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '`')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(s[open+1:], '`')
		if closing < 0 {
			break
		}
		b.WriteString(s[:open])
		b.WriteRune(codeMark)
		s = s[open+closing+2:]
	}
	b.WriteString(s)
	return b.String()
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

// identifiers splits a word into runs of letters, digits and underscores.
func identifiers(word string) []string {
	return strings.FieldsFunc(word, isSeparator)
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

type word struct {
	text string
	off  int
}

func splitWords(s string) []word {
	var out []word
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, word{text: s[start:i], off: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, word{text: s[start:], off: start})
	}
	return out
}

func isOpening(r rune) bool {
	return r == '"' || r == '\'' || unicode.Is(unicode.Ps, r) || unicode.Is(unicode.Pi, r)
}

func isClosing(r rune) bool {
	return r == '"' || r == '\'' || unicode.Is(unicode.Pe, r) || unicode.Is(unicode.Pf, r)
}

// endsSentence reports whether w closes a sentence, and whether the period
// might belong to an abbreviation or ellipsis instead.
func endsSentence(w string) (ends, abbrev bool) {
	t := strings.TrimRightFunc(w, isClosing)
	if strings.HasSuffix(t, "...") || strings.HasSuffix(t, "…") {
		return false, true
	}
	last, _ := utf8.DecodeLastRuneInString(t)
	switch last {
	case '!', '?':
		return true, false
	case '.':
		if abbreviations[strings.ToLower(strings.TrimLeftFunc(t, isOpening))] {
			return false, true
		}
		return true, false
	}
	return false, false
}

// listMarker returns the length of a leading list marker such as "- ",
// "* ", "+ ", "1. " or "2) ", or 0 if the line is not a list item.
func listMarker(s string) int {
	if len(s) >= 2 && strings.ContainsRune("-*+", rune(s[0])) && s[1] == ' ' {
		return 2
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(s) && (s[i] == '.' || s[i] == ')') && s[i+1] == ' ' {
		return i + 2
	}
	return 0
}
