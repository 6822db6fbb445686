// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bartekus/validate-commit/internal/report"
)

// Text renders one line per commit followed by a totals line.
func (r *Report) Text() string {
	var b strings.Builder
	for _, res := range r.Results {
		if res.Passed() {
			fmt.Fprintf(&b, "PASS %s %s\n", shortSHA(res.SHA), res.Header)
			continue
		}
		fmt.Fprintf(&b, "FAIL %s %s\n     %s\n", shortSHA(res.SHA), res.Header, res.Error)
	}
	fmt.Fprintf(&b, "\n%d commit(s): %d passed, %d failed\n", r.Total, r.Passed, r.Failed)
	return b.String()
}

// Markdown renders the report as a Markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString(report.Header(1, "Commit Message Report"))
	fmt.Fprintf(&b, "- **Total**: %d\n- **Passed**: %d\n- **Failed**: %d\n\n", r.Total, r.Passed, r.Failed)

	if len(r.ByKind) > 0 {
		b.WriteString(report.Header(2, "Violations"))
		kinds := make([]string, 0, len(r.ByKind))
		for k := range r.ByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		rows := make([][]string, 0, len(kinds))
		for _, k := range kinds {
			rows = append(rows, []string{k, strconv.Itoa(r.ByKind[k])})
		}
		b.WriteString(report.Table([]string{"Kind", "Commits"}, rows))
		b.WriteString("\n")
	}

	b.WriteString(report.Header(2, "Commits"))
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		status := "pass"
		if !res.Passed() {
			status = res.Kind.String()
		}
		rows = append(rows, []string{shortSHA(res.SHA), res.Author, res.Header, status})
	}
	b.WriteString(report.Table([]string{"SHA", "Author", "Header", "Status"}, rows))
	return b.String()
}
