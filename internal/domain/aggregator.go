package domain

import (
	"sort"
	"time"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// ReportMeta carries run parameters straight into the report so a stored
// report is self-describing.
type ReportMeta struct {
	OperatorFilter  []string
	FunctionFilter  []string
	SelectionPolicy string
	MaxMutants      int
}

// Aggregate folds per-mutant results into the final report. The score is
// killed/(killed+survived); when nothing was scored it stays null rather
// than pretending a 0.0 or 1.0 was measured.
func Aggregate(module *m.SourceModule, mutants []m.Mutant, results []m.ExecutionResult, warnings []m.GenerationWarning, meta ReportMeta) *m.MutationReport {
	byID := make(map[string]m.Mutant, len(mutants))
	for _, mut := range mutants {
		byID[mut.ID] = mut
	}

	report := &m.MutationReport{
		TargetPath:      module.Path,
		TargetHash:      module.Hash,
		OperatorFilter:  meta.OperatorFilter,
		FunctionFilter:  meta.FunctionFilter,
		SelectionPolicy: meta.SelectionPolicy,
		MaxMutants:      meta.MaxMutants,
		Generated:       len(mutants),
		Results:         results,
		Warnings:        warnings,
		GeneratedAt:     time.Now().UTC(),
	}

	operatorOrder, operatorStats := newStatIndex[m.OperatorStats]()
	functionOrder, functionStats := newStatIndex[m.FunctionStats]()

	for _, result := range results {
		mutant := byID[result.MutantID]

		opStats := touch(operatorStats, &operatorOrder, mutant.Operator.Name)
		opStats.Operator = mutant.Operator.Name

		switch result.Verdict {
		case m.VerdictKilled:
			report.Killed++
			opStats.Killed++
		case m.VerdictSurvived:
			report.Survived++
			opStats.Survived++
			report.Survivors = append(report.Survivors, survivorEntry(module, mutant))
		case m.VerdictTimedOut:
			report.TimedOut++
			opStats.TimedOut++
		default:
			report.Errored++
			opStats.Errored++
		}

		if result.Verdict.Scored() && mutant.Function != "" {
			fnStats := touch(functionStats, &functionOrder, mutant.Function)
			fnStats.Function = mutant.Function

			if result.Verdict == m.VerdictKilled {
				fnStats.Killed++
			} else {
				fnStats.Survived++
			}
		}
	}

	// Survivors read best grouped by operator, source order within a group.
	sort.SliceStable(report.Survivors, func(i, j int) bool {
		return report.Survivors[i].Operator < report.Survivors[j].Operator
	})

	report.Score = ratio(report.Killed, report.Killed+report.Survived)

	for _, name := range operatorOrder {
		stats := operatorStats[name]
		stats.KillRate = ratio(stats.Killed, stats.Killed+stats.Survived)
		report.Operators = append(report.Operators, *stats)
	}

	for _, name := range functionOrder {
		stats := functionStats[name]
		stats.KillRate = ratio(stats.Killed, stats.Killed+stats.Survived)
		report.Functions = append(report.Functions, *stats)
	}

	return report
}

func survivorEntry(module *m.SourceModule, mutant m.Mutant) m.Survivor {
	return m.Survivor{
		MutantID:         mutant.ID,
		Operator:         mutant.Operator.Name,
		Function:         mutant.Function,
		Line:             mutant.Location.Line,
		Column:           mutant.Location.Column,
		OriginalFragment: mutant.OriginalFragment,
		MutatedFragment:  mutant.MutatedFragment,
		Diff:             unifiedDiff(module, mutant),
	}
}

// ratio returns killed/total, or nil when total is zero.
func ratio(killed, total int) *float64 {
	if total == 0 {
		return nil
	}

	score := float64(killed) / float64(total)

	return &score
}

func newStatIndex[T any]() ([]string, map[string]*T) {
	return nil, make(map[string]*T)
}

// touch returns the stats bucket for key, creating it in first-seen order.
func touch[T any](index map[string]*T, order *[]string, key string) *T {
	if stats, ok := index[key]; ok {
		return stats
	}

	stats := new(T)
	index[key] = stats
	*order = append(*order, key)

	return stats
}
