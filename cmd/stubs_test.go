package cmd

import (
	"context"

	"gnaw.dev/pkg/gnaw/internal/domain"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// stubEngine records the arguments the CLI layer passes down and returns
// canned results.
type stubEngine struct {
	targets      []m.Path
	args         domain.RunArgs
	parallel     int
	estimated    []m.Path
	runAllErr    error
	estimateErr  error
	estimateByOp []domain.OperatorCount
}

func (s *stubEngine) Run(_ context.Context, args domain.RunArgs) (*m.MutationReport, error) {
	s.args = args
	return &m.MutationReport{TargetPath: args.TargetPath}, nil
}

func (s *stubEngine) RunAll(_ context.Context, targets []m.Path, args domain.RunArgs, parallel int) ([]*m.MutationReport, error) {
	s.targets = targets
	s.args = args
	s.parallel = parallel

	if s.runAllErr != nil {
		return nil, s.runAllErr
	}

	reports := make([]*m.MutationReport, len(targets))
	for i, target := range targets {
		reports[i] = &m.MutationReport{TargetPath: target}
	}

	return reports, nil
}

func (s *stubEngine) Estimate(args domain.RunArgs) (*domain.Estimation, error) {
	s.estimated = append(s.estimated, args.TargetPath)
	s.args = args

	if s.estimateErr != nil {
		return nil, s.estimateErr
	}

	return &domain.Estimation{TargetPath: args.TargetPath, ByOperator: s.estimateByOp}, nil
}

// stubReportStore keeps saved reports in memory.
type stubReportStore struct {
	dir     m.Path
	saved   []*m.MutationReport
	loadErr error
}

func (s *stubReportStore) SaveReport(dir m.Path, report *m.MutationReport) (m.Path, error) {
	s.dir = dir
	s.saved = append(s.saved, report)

	return m.Path(string(dir) + "/report.json"), nil
}

func (s *stubReportStore) LoadReports(dir m.Path) ([]*m.MutationReport, error) {
	s.dir = dir

	if s.loadErr != nil {
		return nil, s.loadErr
	}

	return s.saved, nil
}
