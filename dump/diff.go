package dump

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/tony-format/go-ydom/dom"
)

// Diff returns a line diff of the dumps of from and to, with removed
// lines prefixed "- ", added lines "+ " and common lines "  ". It
// returns "" when the dumps are identical.
//
// Colors given in opts apply to the diff markers; the dumps themselves
// are compared uncolored.
func Diff(from, to dom.Node, opts ...Option) string {
	s := newState(opts)
	plain := append(opts[:len(opts):len(opts)], WithColors(nil))
	a, b := String(from, plain...), String(to, plain...)
	if a == b {
		return ""
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffpatch.DiffInsert:
				out.WriteString(s.color(dom.UndefinedType, InsertColor, "+ "+strings.TrimSuffix(line, "\n")))
				out.WriteByte('\n')
			case diffpatch.DiffDelete:
				out.WriteString(s.color(dom.UndefinedType, DeleteColor, "- "+strings.TrimSuffix(line, "\n")))
				out.WriteByte('\n')
			case diffpatch.DiffEqual:
				out.WriteString("  ")
				out.WriteString(line)
			}
		}
	}
	return out.String()
}
