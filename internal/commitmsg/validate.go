// SPDX-License-Identifier: AGPL-3.0-or-later

package commitmsg

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// headerPattern matches "Type: description" and "Type(scope): description".
var headerPattern = regexp.MustCompile(`^([^\s():]+)(\(([^()]*)\))?: (\S.*)$`)

// Options configures the casing exemptions of a Validator.
type Options struct {
	// StructureNames may appear capitalized in the type, the description
	// and the summary.
	StructureNames []string
	// ProperNouns may appear capitalized in the summary only.
	ProperNouns []string
	// StripComments drops lines starting with '#' and everything below the
	// `git commit -v` scissors line, as git does for COMMIT_EDITMSG.
	StripComments bool
}

// Validator checks commit messages. It is immutable once built and safe for
// concurrent use.
type Validator struct {
	structures    nameSet
	nouns         nameSet
	stripComments bool
}

// New builds a Validator from opts.
func New(opts Options) *Validator {
	return &Validator{
		structures:    newNameSet(opts.StructureNames),
		nouns:         newNameSet(opts.StructureNames, opts.ProperNouns, []string{"I"}),
		stripComments: opts.StripComments,
	}
}

var defaultValidator = New(Options{})

// Validate checks text with no structure names or proper nouns allowed.
func Validate(text string) (*Message, error) {
	return defaultValidator.Validate(text)
}

// Validate parses text and returns the message, or a *Violation describing
// the first broken rule. Rules run header, type, description, summary,
// footer and stop at the first failure.
func (v *Validator) Validate(text string) (*Message, error) {
	s, verr := split(text, v.stripComments)
	if verr != nil {
		return nil, verr
	}

	msg, verr := parseHeader(s.header)
	if verr != nil {
		return nil, verr
	}
	if verr := v.checkType(msg.Type, s.header.n); verr != nil {
		return nil, verr
	}
	if verr := v.checkDescription(msg.Description, s.header.n); verr != nil {
		return nil, verr
	}
	for _, b := range s.summary {
		if verr := v.checkSummary(b); verr != nil {
			return nil, verr
		}
	}
	if verr := checkFooter(s.footer); verr != nil {
		return nil, verr
	}

	msg.Summary = joinBlocks(s.summary)
	msg.Footer = s.footer.text()
	return msg, nil
}

func parseHeader(h line) (*Message, *Violation) {
	m := headerPattern.FindStringSubmatchIndex(h.text)
	if m == nil {
		return nil, violation(MalformedHeader, h.n, "", "header %q does not match \"Type(scope): description\"", h.text)
	}

	msg := &Message{
		Type:        h.text[m[2]:m[3]],
		Description: h.text[m[8]:m[9]],
	}
	if m[4] >= 0 {
		msg.HasScope = true
		msg.Scope = h.text[m[6]:m[7]]
		if strings.TrimSpace(msg.Scope) == "" {
			return nil, violation(MalformedHeader, h.n, "", "scope is empty")
		}
	}
	return msg, nil
}

func (v *Validator) checkType(typ string, n int) *Violation {
	first, size := utf8.DecodeRuneInString(typ)
	if !unicode.IsUpper(first) {
		return violation(InvalidTypeCasing, n, typ, "type %q must start with an uppercase letter", typ)
	}
	if v.structures.has(typ) {
		return nil
	}
	if hasUpper(typ[size:]) {
		return violation(InvalidTypeCasing, n, typ, "type %q must be lowercase after its first letter", typ)
	}
	return nil
}

func (v *Validator) checkDescription(desc string, n int) *Violation {
	for _, w := range splitWords(maskCode(desc)) {
		if !v.structures.allows(w.text) {
			return violation(InvalidDescriptionCasing, n, w.text, "%q is capitalized but is not a structure name", w.text)
		}
	}
	return nil
}

// paragraph is unwrapped summary text. Each source line starts at offs[i]
// and came from input line lines[i].
type paragraph struct {
	text  string
	offs  []int
	lines []int
}

func (p *paragraph) add(text string, n int) {
	if p.text != "" {
		p.text += " "
	}
	p.offs = append(p.offs, len(p.text))
	p.lines = append(p.lines, n)
	p.text += text
}

func (p *paragraph) lineAt(off int) int {
	i := sort.Search(len(p.offs), func(i int) bool { return p.offs[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return p.lines[i]
}

// paragraphs unwraps a block. List items start a new paragraph.
func paragraphs(b block) []*paragraph {
	var (
		out []*paragraph
		cur *paragraph
	)
	for _, l := range b {
		text := maskCode(strings.TrimSpace(l.text))
		if k := listMarker(text); k > 0 {
			text = strings.TrimSpace(text[k:])
			cur = nil
		}
		if cur == nil {
			cur = &paragraph{}
			out = append(out, cur)
		}
		cur.add(text, l.n)
	}
	return out
}

func (v *Validator) checkSummary(b block) *Violation {
	for _, p := range paragraphs(b) {
		if verr := v.checkSentences(p); verr != nil {
			return verr
		}
	}
	return nil
}

// sentence position of the next word.
const (
	midSentence = iota
	sentenceStart
	maybeStart // after an abbreviation
)

func (v *Validator) checkSentences(p *paragraph) *Violation {
	state := sentenceStart
	for _, w := range splitWords(p.text) {
		t := strings.TrimLeftFunc(w.text, isOpening)
		first, size := utf8.DecodeRuneInString(t)

		switch {
		case state == sentenceStart && first == codeMark:
		case state == sentenceStart && !unicode.IsUpper(first):
			return violation(InvalidSummaryCasing, p.lineAt(w.off), w.text, "sentence must start with an uppercase letter, got %q", w.text)
		case state != midSentence && unicode.IsUpper(first):
			rest := string(unicode.ToLower(first)) + t[size:]
			if !v.nouns.allows(t) && !v.nouns.allows(rest) {
				return violation(InvalidSummaryCasing, p.lineAt(w.off), w.text, "%q has a capital letter mid-word", w.text)
			}
		default:
			if !v.nouns.allows(w.text) {
				return violation(InvalidSummaryCasing, p.lineAt(w.off), w.text, "%q is capitalized mid-sentence", w.text)
			}
		}

		switch ends, abbrev := endsSentence(w.text); {
		case ends:
			state = sentenceStart
		case abbrev:
			state = maybeStart
		default:
			state = midSentence
		}
	}
	return nil
}

func checkFooter(b block) *Violation {
	for _, l := range b {
		for _, r := range l.text {
			if unicode.IsLetter(r) && !unicode.IsUpper(r) {
				return violation(InvalidFooterCasing, l.n, "", "footer must be all uppercase, found %q in %q", string(r), l.text)
			}
		}
	}
	return nil
}
