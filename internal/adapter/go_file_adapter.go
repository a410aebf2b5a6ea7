package adapter

import (
	"go/ast"
	"go/parser"
	"go/token"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// GoFileAdapter encapsulates Go-specific parsing so the domain layer can
// focus on mutation rules while delegating toolchain details to an
// infrastructure component.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and source bytes.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// FunctionSpans inspects an AST and returns the byte/line extent of
	// every declared function, used for per-function attribution and for
	// restricting mutation scope.
	FunctionSpans(fileSet *token.FileSet, file *ast.File) []m.FunctionSpan
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// FunctionSpans records the extent of each function declaration. Methods are
// indexed under their bare name, matching how callers name target functions.
func (a *LocalGoFileAdapter) FunctionSpans(fileSet *token.FileSet, file *ast.File) []m.FunctionSpan {
	var spans []m.FunctionSpan

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}

		start := fileSet.Position(fd.Pos())
		end := fileSet.Position(fd.End())

		spans = append(spans, m.FunctionSpan{
			Name:        fd.Name.Name,
			StartLine:   start.Line,
			EndLine:     end.Line,
			StartOffset: start.Offset,
			EndOffset:   end.Offset,
		})
	}

	return spans
}
