package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "gnaw.dev/pkg/gnaw/internal/model"
)

// ReportStore persists and retrieves mutation reports. Reports are the only
// artifact a run leaves behind; one JSON document per target file.
type ReportStore interface {
	SaveReport(dir m.Path, report *m.MutationReport) (m.Path, error)
	LoadReports(dir m.Path) ([]*m.MutationReport, error)
}

type jsonReportStore struct{}

// NewReportStore constructs a JSON-backed ReportStore.
func NewReportStore() ReportStore {
	return &jsonReportStore{}
}

// SaveReport writes the report under dir, keyed by the target's base name
// and content hash so repeated runs against a changed file do not collide.
func (rs *jsonReportStore) SaveReport(dir m.Path, report *m.MutationReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(string(report.TargetPath)), ".go")

	hash := report.TargetHash
	if len(hash) > 8 {
		hash = hash[:8]
	}

	path := filepath.Join(string(dir), fmt.Sprintf("%s-%s.json", base, hash))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return m.Path(path), nil
}

// LoadReports reads every *.json report under dir, sorted by file name for
// stable output.
func (rs *jsonReportStore) LoadReports(dir m.Path) ([]*m.MutationReport, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	reports := make([]*m.MutationReport, 0, len(names))

	for _, name := range names {
		// #nosec G304 - constrained to *.json entries of the reports dir
		data, err := os.ReadFile(filepath.Join(string(dir), name))
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", name, err)
		}

		var report m.MutationReport
		if err := json.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("decode report %s: %w", name, err)
		}

		reports = append(reports, &report)
	}

	return reports, nil
}
