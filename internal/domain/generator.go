package domain

import (
	"crypto/sha256"
	"fmt"
	"go/ast"
	"math/rand"
	"sort"

	"gnaw.dev/pkg/gnaw/internal/domain/operators"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// GenerateArgs bounds one generation pass.
type GenerateArgs struct {
	Operators       []operators.Operator
	TargetFunctions []string
	// MaxMutants caps the candidate set; zero or negative means no cap.
	MaxMutants int
	// Seed, when set, selects a seeded sample instead of the stable
	// earliest-discovered prefix.
	Seed *int64
}

// Generate walks the tree in stable pre-order and applies every enabled
// operator at each node, producing a bounded, deduplicated sequence of
// mutants. Deterministic for fixed inputs; a supplied seed makes the sampled
// order reproducible instead.
func Generate(module *m.SourceModule, args GenerateArgs) ([]m.Mutant, []m.GenerationWarning, error) {
	targetSpans, err := resolveTargetFunctions(module, args.TargetFunctions)
	if err != nil {
		return nil, nil, err
	}

	skipOffsets := indexBoundLiterals(module)

	var (
		mutants  []m.Mutant
		seen     = make(map[string]struct{})
		produced = make(map[string]int, len(args.Operators))
		guarded  = make(map[m.WarningKind]int)
	)

	ast.Inspect(module.File, func(n ast.Node) bool {
		if n == nil {
			return true
		}

		// Import paths are string literals, but mutating them only ever
		// breaks the build.
		if _, ok := n.(*ast.ImportSpec); ok {
			return false
		}

		for _, op := range args.Operators {
			for _, candidate := range op.Mutate(n, module.Fset, module.Text) {
				if candidate.Guard != "" {
					guarded[candidate.Guard]++
					continue
				}

				if !withinTargets(candidate.Span, targetSpans) {
					continue
				}

				if op.Info().Category == m.CategoryConstant {
					if _, skip := skipOffsets[candidate.Span.StartOffset]; skip {
						continue
					}
				}

				mutant, kind := buildMutant(module, op, candidate, seen)
				if kind != "" {
					guarded[kind]++
					continue
				}

				produced[op.Info().Name]++
				mutants = append(mutants, mutant)
			}
		}

		return true
	})

	warnings := collectWarnings(args.Operators, produced, guarded)
	mutants = applySelection(mutants, args)

	return mutants, warnings, nil
}

// buildMutant renders the candidate into a full derived source text. It
// returns a warning kind instead of a mutant for equivalents (rendered text
// identical to the original) and duplicates (same mutated-text hash).
func buildMutant(module *m.SourceModule, op operators.Operator, candidate operators.Candidate, seen map[string]struct{}) (m.Mutant, m.WarningKind) {
	span := candidate.Span
	fragment := string(module.Text[span.StartOffset:span.EndOffset])

	if candidate.Replacement == fragment {
		return m.Mutant{}, m.WarnEquivalentDropped
	}

	mutated := operators.ReplaceRange(module.Text, span.StartOffset, span.EndOffset, candidate.Replacement)
	hash := fmt.Sprintf("%x", sha256.Sum256(mutated))

	if _, dup := seen[hash]; dup {
		return m.Mutant{}, m.WarnDuplicateDropped
	}

	seen[hash] = struct{}{}

	return m.Mutant{
		ID:               hash[:16],
		Operator:         op.Info(),
		Location:         span,
		Function:         module.FunctionAt(span.StartOffset),
		OriginalFragment: fragment,
		MutatedFragment:  candidate.Replacement,
		MutatedText:      mutated,
	}, ""
}

// resolveTargetFunctions maps requested function names to their spans. An
// unresolved name aborts the run; silently ignoring it would report a
// perfect score for code that was never mutated.
func resolveTargetFunctions(module *m.SourceModule, names []string) ([]m.FunctionSpan, error) {
	if len(names) == 0 {
		return nil, nil
	}

	byName := make(map[string][]m.FunctionSpan, len(module.Functions))
	for _, fn := range module.Functions {
		byName[fn.Name] = append(byName[fn.Name], fn)
	}

	var spans []m.FunctionSpan

	for _, name := range names {
		matched, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown target function %q in %s", ErrInput, name, module.Path)
		}

		spans = append(spans, matched...)
	}

	return spans, nil
}

func withinTargets(span m.Span, targets []m.FunctionSpan) bool {
	if len(targets) == 0 {
		return true
	}

	for _, target := range targets {
		if span.StartOffset >= target.StartOffset && span.EndOffset <= target.EndOffset {
			return true
		}
	}

	return false
}

// indexBoundLiterals records offsets of 0/1 literals used directly as index
// expressions. Mutating those swaps one in-bounds access for another and is
// statically near-dead; best-effort per the constant-mutation policy.
func indexBoundLiterals(module *m.SourceModule) map[int]struct{} {
	offsets := make(map[int]struct{})

	ast.Inspect(module.File, func(n ast.Node) bool {
		idx, ok := n.(*ast.IndexExpr)
		if !ok {
			return true
		}

		lit, ok := idx.Index.(*ast.BasicLit)
		if !ok || (lit.Value != "0" && lit.Value != "1") {
			return true
		}

		if file := module.Fset.File(lit.Pos()); file != nil {
			offsets[file.Offset(lit.Pos())] = struct{}{}
		}

		return true
	})

	return offsets
}

func collectWarnings(ops []operators.Operator, produced map[string]int, guarded map[m.WarningKind]int) []m.GenerationWarning {
	var warnings []m.GenerationWarning

	for _, op := range ops {
		if produced[op.Info().Name] == 0 {
			warnings = append(warnings, m.GenerationWarning{
				Kind:     m.WarnNoCandidates,
				Operator: op.Info().Name,
				Count:    1,
			})
		}
	}

	kinds := make([]m.WarningKind, 0, len(guarded))
	for kind := range guarded {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		warnings = append(warnings, m.GenerationWarning{Kind: kind, Count: guarded[kind]})
	}

	return warnings
}

// applySelection enforces the max-mutants cap: stable traversal order keeps
// the earliest-discovered mutants; with a seed, a reproducible shuffle
// precedes truncation.
func applySelection(mutants []m.Mutant, args GenerateArgs) []m.Mutant {
	if args.Seed != nil {
		rng := rand.New(rand.NewSource(*args.Seed)) // #nosec G404 - reproducible sampling, not cryptography
		rng.Shuffle(len(mutants), func(i, j int) {
			mutants[i], mutants[j] = mutants[j], mutants[i]
		})
	}

	if args.MaxMutants > 0 && len(mutants) > args.MaxMutants {
		mutants = mutants[:args.MaxMutants]
	}

	return mutants
}
