package domain

import (
	"crypto/sha256"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"gnaw.dev/pkg/gnaw/internal/adapter"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// LoadModule reads and parses one target file into an immutable snapshot.
// Every failure here is an input error: the run must not start against a
// target we cannot faithfully restore or re-render.
func LoadModule(fs adapter.SourceFSAdapter, goFiles adapter.GoFileAdapter, path m.Path) (*m.SourceModule, error) {
	if strings.TrimSpace(string(path)) == "" {
		return nil, fmt.Errorf("%w: empty target path", ErrInput)
	}

	if filepath.Ext(string(path)) != ".go" {
		return nil, fmt.Errorf("%w: target must be a Go source file: %s", ErrInput, path)
	}

	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInput, path, err)
	}

	fset := token.NewFileSet()

	file, err := goFiles.Parse(fset, string(path), content)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInput, path, err)
	}

	return &m.SourceModule{
		Path:      path,
		Text:      content,
		Hash:      fmt.Sprintf("%x", sha256.Sum256(content)),
		Fset:      fset,
		File:      file,
		Functions: goFiles.FunctionSpans(fset, file),
	}, nil
}
