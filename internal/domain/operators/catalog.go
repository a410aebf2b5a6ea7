package operators

import (
	"fmt"
	"go/ast"
	"go/token"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// Operator is a single named transformation rule: a predicate over AST node
// shape plus a transform producing replacement fragments for a matched node.
// Operators are stateless and immutable; the catalog defines each once.
type Operator interface {
	Info() m.OperatorInfo
	Mutate(n ast.Node, fset *token.FileSet, content []byte) []Candidate
}

// Catalog returns the fixed operator registry in its canonical order. The
// order is part of the generator's determinism contract.
func Catalog() []Operator {
	return []Operator{
		ArithmeticSwap{},
		ComparisonSwap{},
		LogicalSwap{},
		NumberMutation{},
		BooleanMutation{},
		StringMutation{},
		ConditionalMutation{},
	}
}

// List returns name and category for every catalog operator.
func List() []m.OperatorInfo {
	catalog := Catalog()
	infos := make([]m.OperatorInfo, 0, len(catalog))

	for _, op := range catalog {
		infos = append(infos, op.Info())
	}

	return infos
}

// Select resolves an allow-list of operator names against the catalog,
// preserving catalog order. An empty list selects everything; an unknown
// name is an error.
func Select(names []string) ([]Operator, error) {
	catalog := Catalog()
	if len(names) == 0 {
		return catalog, nil
	}

	byName := make(map[string]Operator, len(catalog))
	for _, op := range catalog {
		byName[op.Info().Name] = op
	}

	enabled := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("unknown operator %q", name)
		}

		enabled[name] = struct{}{}
	}

	selected := make([]Operator, 0, len(enabled))

	for _, op := range catalog {
		if _, ok := enabled[op.Info().Name]; ok {
			selected = append(selected, op)
		}
	}

	return selected, nil
}
