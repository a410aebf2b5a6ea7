// Package operators defines the fixed catalog of mutation operators. Each
// operator matches a node shape and proposes replacement fragments; all
// mutation happens at the text-splice level keyed by byte spans, never by
// editing the shared tree.
package operators

import (
	"go/token"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// Candidate is one proposed replacement for a span of the original source.
// A non-empty Guard marks a candidate that must be skipped pre-execution
// (recorded as a generation warning instead of a mutant).
type Candidate struct {
	Span        m.Span
	Replacement string
	Guard       m.WarningKind
}

func offsetForPos(fset *token.FileSet, pos token.Pos) (int, bool) {
	file := fset.File(pos)
	if file == nil {
		return 0, false
	}

	return file.Offset(pos), true
}

// spanBetween builds the byte span covering [from, to) with the line/column
// of its start.
func spanBetween(fset *token.FileSet, from, to token.Pos) (m.Span, bool) {
	start, ok := offsetForPos(fset, from)
	if !ok {
		return m.Span{}, false
	}

	end, ok := offsetForPos(fset, to)
	if !ok || end < start {
		return m.Span{}, false
	}

	position := fset.Position(from)

	return m.Span{
		Line:        position.Line,
		Column:      position.Column,
		StartOffset: start,
		EndOffset:   end,
	}, true
}

// ReplaceRange splices replacement over content[start:end] into a fresh
// buffer; the input is never modified.
func ReplaceRange(content []byte, start, end int, replacement string) []byte {
	if start < 0 || end < start || end > len(content) {
		return content
	}

	mutated := make([]byte, 0, len(content)-(end-start)+len(replacement))
	mutated = append(mutated, content[:start]...)
	mutated = append(mutated, []byte(replacement)...)
	mutated = append(mutated, content[end:]...)

	return mutated
}
