package operators

import (
	"go/ast"
	"go/token"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// Swap tables pair operators within the same arity and type family only.
// Bitwise operators are never paired with logical ones; the resulting
// mutants would be near-certain type errors with no signal.
var (
	arithmeticSwaps = map[token.Token]token.Token{
		token.ADD: token.SUB,
		token.SUB: token.ADD,
		token.MUL: token.QUO,
		token.QUO: token.MUL,
	}

	comparisonSwaps = map[token.Token]token.Token{
		token.EQL: token.NEQ,
		token.NEQ: token.EQL,
		token.LSS: token.GEQ,
		token.GEQ: token.LSS,
		token.GTR: token.LEQ,
		token.LEQ: token.GTR,
	}

	logicalSwaps = map[token.Token]token.Token{
		token.LAND: token.LOR,
		token.LOR:  token.LAND,
	}
)

// ArithmeticSwap replaces an arithmetic operator with its family partner
// (+ with -, * with /).
type ArithmeticSwap struct{}

// Info identifies the operator.
func (ArithmeticSwap) Info() m.OperatorInfo {
	return m.OperatorInfo{Name: "arithmetic-swap", Category: m.CategoryBinaryOperator}
}

// Mutate proposes the paired operator for a matching binary expression.
func (ArithmeticSwap) Mutate(n ast.Node, fset *token.FileSet, content []byte) []Candidate {
	return swapBinaryOp(n, fset, arithmeticSwaps)
}

// ComparisonSwap replaces a comparison operator with its boundary-flipping
// partner (== with !=, < with >=, > with <=).
type ComparisonSwap struct{}

// Info identifies the operator.
func (ComparisonSwap) Info() m.OperatorInfo {
	return m.OperatorInfo{Name: "comparison-swap", Category: m.CategoryBinaryOperator}
}

// Mutate proposes the paired operator for a matching comparison.
func (ComparisonSwap) Mutate(n ast.Node, fset *token.FileSet, content []byte) []Candidate {
	return swapBinaryOp(n, fset, comparisonSwaps)
}

// LogicalSwap replaces && with || and vice versa.
type LogicalSwap struct{}

// Info identifies the operator.
func (LogicalSwap) Info() m.OperatorInfo {
	return m.OperatorInfo{Name: "logical-swap", Category: m.CategoryBinaryOperator}
}

// Mutate proposes the paired operator for a logical expression.
func (LogicalSwap) Mutate(n ast.Node, fset *token.FileSet, content []byte) []Candidate {
	return swapBinaryOp(n, fset, logicalSwaps)
}

func swapBinaryOp(n ast.Node, fset *token.FileSet, swaps map[token.Token]token.Token) []Candidate {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	replacement, ok := swaps[binExpr.Op]
	if !ok {
		return nil
	}

	original := binExpr.Op.String()

	start, ok := offsetForPos(fset, binExpr.OpPos)
	if !ok {
		return nil
	}

	position := fset.Position(binExpr.OpPos)

	return []Candidate{{
		Span: m.Span{
			Line:        position.Line,
			Column:      position.Column,
			StartOffset: start,
			EndOffset:   start + len(original),
		},
		Replacement: replacement.String(),
	}}
}
