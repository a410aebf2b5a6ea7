package model

// OperatorCategory groups mutation operators by the node shape they target.
type OperatorCategory string

const (
	// CategoryBinaryOperator covers operator-for-operator swaps inside
	// binary expressions (arithmetic, comparison, logical).
	CategoryBinaryOperator OperatorCategory = "binary-operator"
	// CategoryConstant covers literal rewrites (numbers, booleans, strings).
	CategoryConstant OperatorCategory = "constant"
	// CategoryConditional covers branching-predicate rewrites.
	CategoryConditional OperatorCategory = "conditional"
)

// OperatorInfo identifies a mutation operator in the catalog.
type OperatorInfo struct {
	Name     string           `json:"name"`
	Category OperatorCategory `json:"category"`
}

// Span locates one contiguous byte range in the original source.
type Span struct {
	Line        int `json:"line"`
	Column      int `json:"column"`
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

// Mutant is one syntactically valid variant of the target source differing
// from the original by exactly one operator-produced transformation.
// Immutable after creation; mutants never compound.
type Mutant struct {
	ID               string       `json:"id"`
	Operator         OperatorInfo `json:"operator"`
	Location         Span         `json:"location"`
	Function         string       `json:"function,omitempty"`
	OriginalFragment string       `json:"original_fragment"`
	MutatedFragment  string       `json:"mutated_fragment"`
	MutatedText      []byte       `json:"-"`
}
