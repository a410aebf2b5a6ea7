// Package model defines the data structures for mutation testing.
package model

import (
	"go/ast"
	"go/token"
)

// Path represents a file system path.
type Path string

// FunctionSpan records where a function body lives inside a source file.
// Offsets are byte offsets into the file's text; lines are 1-based.
type FunctionSpan struct {
	Name        string
	StartLine   int
	EndLine     int
	StartOffset int
	EndOffset   int
}

// SourceModule is an immutable snapshot of one target file: its path, the
// original bytes, the parsed tree and the derived function index. It is
// loaded once per run and never mutated in place; mutants are always
// rendered into fresh byte buffers.
type SourceModule struct {
	Path      Path
	Text      []byte
	Hash      string
	Fset      *token.FileSet
	File      *ast.File
	Functions []FunctionSpan
}

// FunctionAt returns the name of the function whose body covers the given
// byte offset, or the empty string for package-level code.
func (s *SourceModule) FunctionAt(offset int) string {
	for _, fn := range s.Functions {
		if offset >= fn.StartOffset && offset < fn.EndOffset {
			return fn.Name
		}
	}

	return ""
}
