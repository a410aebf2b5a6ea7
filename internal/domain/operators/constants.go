package operators

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

const (
	trueStr  = "true"
	falseStr = "false"

	// stringSentinel replaces short string literals; a non-empty value a
	// test comparing on content should notice.
	stringSentinel = `"gnaw"`

	// maxMutatedStringLen keeps string mutation away from long literals
	// (templates, embedded documents) where the signal is poor.
	maxMutatedStringLen = 32
)

// NumberMutation rewrites a numeric literal to its increment, decrement,
// negation and zero. Alternatives that render identically to the original
// are filtered later by the generator's equivalence check.
type NumberMutation struct{}

// Info identifies the operator.
func (NumberMutation) Info() m.OperatorInfo {
	return m.OperatorInfo{Name: "number-mutation", Category: m.CategoryConstant}
}

// Mutate proposes alternatives for int and float literals.
func (NumberMutation) Mutate(n ast.Node, fset *token.FileSet, content []byte) []Candidate {
	lit, ok := n.(*ast.BasicLit)
	if !ok || (lit.Kind != token.INT && lit.Kind != token.FLOAT) {
		return nil
	}

	span, ok := spanBetween(fset, lit.Pos(), lit.End())
	if !ok {
		return nil
	}

	alternatives := numberAlternatives(lit.Kind, lit.Value)

	candidates := make([]Candidate, 0, len(alternatives))
	for _, alt := range alternatives {
		candidates = append(candidates, Candidate{Span: span, Replacement: alt})
	}

	return candidates
}

func numberAlternatives(kind token.Token, literal string) []string {
	switch kind {
	case token.INT:
		value, err := strconv.ParseInt(literal, 0, 64)
		if err != nil {
			return nil
		}

		alts := []string{
			strconv.FormatInt(value+1, 10),
			strconv.FormatInt(value-1, 10),
		}

		if value != 0 {
			alts = append(alts, strconv.FormatInt(-value, 10), "0")
		}

		return alts
	case token.FLOAT:
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil
		}

		alts := []string{
			formatFloat(value + 1),
			formatFloat(value - 1),
		}

		if value != 0 {
			alts = append(alts, formatFloat(-value), "0.0")
		}

		return alts
	default:
		return nil
	}
}

// formatFloat renders a float alternative that stays a FLOAT literal (a bare
// "3" would change the token kind and, in some contexts, the type).
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// BooleanMutation flips true to false and back.
type BooleanMutation struct{}

// Info identifies the operator.
func (BooleanMutation) Info() m.OperatorInfo {
	return m.OperatorInfo{Name: "boolean-mutation", Category: m.CategoryConstant}
}

// Mutate proposes the negated literal for a boolean identifier.
func (BooleanMutation) Mutate(n ast.Node, fset *token.FileSet, content []byte) []Candidate {
	ident, ok := n.(*ast.Ident)
	if !ok || (ident.Name != trueStr && ident.Name != falseStr) {
		return nil
	}

	span, ok := spanBetween(fset, ident.Pos(), ident.End())
	if !ok {
		return nil
	}

	flipped := trueStr
	if ident.Name == trueStr {
		flipped = falseStr
	}

	return []Candidate{{Span: span, Replacement: flipped}}
}

// StringMutation replaces short string literals with the empty string and
// with a sentinel value; an already-empty literal only gets the sentinel.
type StringMutation struct{}

// Info identifies the operator.
func (StringMutation) Info() m.OperatorInfo {
	return m.OperatorInfo{Name: "string-mutation", Category: m.CategoryConstant}
}

// Mutate proposes replacements for interpreted string literals.
func (StringMutation) Mutate(n ast.Node, fset *token.FileSet, content []byte) []Candidate {
	lit, ok := n.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil
	}

	// Raw string literals are usually regexes, templates or embedded text;
	// mutating those produces noise, not signal.
	if strings.HasPrefix(lit.Value, "`") {
		return nil
	}

	value, err := strconv.Unquote(lit.Value)
	if err != nil || len(value) > maxMutatedStringLen {
		return nil
	}

	span, ok := spanBetween(fset, lit.Pos(), lit.End())
	if !ok {
		return nil
	}

	if value == "" {
		return []Candidate{{Span: span, Replacement: stringSentinel}}
	}

	return []Candidate{
		{Span: span, Replacement: `""`},
		{Span: span, Replacement: stringSentinel},
	}
}
