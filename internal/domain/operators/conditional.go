package operators

import (
	"go/ast"
	"go/token"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// ConditionalMutation rewrites each branching predicate three ways: negated,
// forced to true and forced to false. Loop predicates that are already a
// boolean literal never get forced variants; forcing `for false` to true is
// a guaranteed hang, caught here rather than by the execution timeout.
type ConditionalMutation struct{}

// Info identifies the operator.
func (ConditionalMutation) Info() m.OperatorInfo {
	return m.OperatorInfo{Name: "conditional-mutation", Category: m.CategoryConditional}
}

// Mutate proposes predicate rewrites for if statements and for loops.
func (ConditionalMutation) Mutate(n ast.Node, fset *token.FileSet, content []byte) []Candidate {
	switch stmt := n.(type) {
	case *ast.IfStmt:
		return mutateCondition(stmt.Cond, fset, content, false)
	case *ast.ForStmt:
		if stmt.Cond == nil {
			return nil
		}

		return mutateCondition(stmt.Cond, fset, content, true)
	default:
		return nil
	}
}

func mutateCondition(cond ast.Expr, fset *token.FileSet, content []byte, isLoop bool) []Candidate {
	span, ok := spanBetween(fset, cond.Pos(), cond.End())
	if !ok {
		return nil
	}

	original := string(content[span.StartOffset:span.EndOffset])
	candidates := make([]Candidate, 0, 3)

	candidates = append(candidates, Candidate{Span: span, Replacement: "!(" + original + ")"})

	forceTrue := Candidate{Span: span, Replacement: trueStr}
	forceFalse := Candidate{Span: span, Replacement: falseStr}

	if isLoop && isBoolLiteral(cond) {
		forceTrue.Guard = m.WarnHangGuardSkipped
		forceFalse.Guard = m.WarnHangGuardSkipped
	}

	return append(candidates, forceTrue, forceFalse)
}

func isBoolLiteral(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && (ident.Name == trueStr || ident.Name == falseStr)
}
