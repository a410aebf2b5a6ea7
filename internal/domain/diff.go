package domain

import (
	"github.com/pmezard/go-difflib/difflib"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// unifiedDiff renders the full original-vs-mutated source as a unified diff.
// With a single spliced fragment the hunk count is one, so the output stays
// small regardless of file size.
func unifiedDiff(module *m.SourceModule, mutant m.Mutant) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(module.Text)),
		B:        difflib.SplitLines(string(mutant.MutatedText)),
		FromFile: string(module.Path),
		ToFile:   string(module.Path) + " [" + mutant.Operator.Name + "]",
		Context:  2,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}

	return text
}
