package domain

import (
	"os"
	"path/filepath"
	"testing"

	"gnaw.dev/pkg/gnaw/internal/adapter"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// writeModuleDir lays out a minimal Go module with one source file and
// returns the path of that file.
func writeModuleDir(t *testing.T, source string) m.Path {
	t.Helper()

	dir := t.TempDir()

	gomod := "module sandboxtarget\n\ngo 1.25\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o600); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}

	target := filepath.Join(dir, "main.go")
	if err := os.WriteFile(target, []byte(source), 0o600); err != nil {
		t.Fatalf("write main.go: %v", err)
	}

	return m.Path(target)
}

// loadTestModule writes source into a fresh module dir and loads it.
func loadTestModule(t *testing.T, source string) *m.SourceModule {
	t.Helper()

	path := writeModuleDir(t, source)

	module, err := LoadModule(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalGoFileAdapter(), path)
	if err != nil {
		t.Fatalf("load module: %v", err)
	}

	return module
}

const calcSource = `package main

func add(a, b int) int {
	return a + b
}

func double(x int) int {
	return x * 2
}
`
