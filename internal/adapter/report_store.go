package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

// ReportFile is the name of the report file inside a reports directory.
const ReportFile = "reports.yaml"

// ReportStore persists translation reports between runs. The stored hashes
// let a later run skip sources that did not change.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.Report) error
	LoadReports(dir m.Path) ([]m.Report, error)
}

// YAMLReportStore keeps all reports of a project in one YAML document.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

type reportDocument struct {
	Version int        `yaml:"version"`
	Reports []m.Report `yaml:"reports"`
}

const reportVersion = 1

// SaveReports writes reports to dir, replacing earlier ones.
func (s *YAMLReportStore) SaveReports(dir m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		slog.Error("Failed to create reports directory", "path", dir, "error", err)
		return fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(reportDocument{Version: reportVersion, Reports: reports})
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	path := filepath.Join(string(dir), ReportFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		slog.Error("Failed to write reports", "path", path, "error", err)
		return fmt.Errorf("write reports: %w", err)
	}

	slog.Debug("saved reports", "path", path, "count", len(reports))

	return nil
}

// LoadReports reads the reports saved in dir. A missing file yields no
// reports and no error.
func (s *YAMLReportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	path := filepath.Join(string(dir), ReportFile)

	// #nosec G304 - the reports directory comes from configuration
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}

	var doc reportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		slog.Error("Failed to decode reports", "path", path, "error", err)
		return nil, fmt.Errorf("decode reports %s: %w", path, err)
	}

	if doc.Version != reportVersion {
		return nil, fmt.Errorf("reports %s: unsupported version %d", path, doc.Version)
	}

	return doc.Reports, nil
}
