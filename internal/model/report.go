package model

import (
	"errors"
	"fmt"
	"time"
)

// Status is the outcome of translating one source file.
type Status string

const (
	// Translated means the output was written without unsupported markers.
	Translated Status = "translated"
	// Partial means the output was written but contains unsupported markers.
	Partial Status = "partial"
	// Failed means the unit hit a fatal error and no output was written.
	Failed Status = "failed"
	// Cached means the source was unchanged since the last run.
	Cached Status = "cached"
)

// ErrUnknownStatus is returned by ParseStatus for names outside the Status set.
var ErrUnknownStatus = errors.New("unknown status")

// ParseStatus maps a status name to its Status.
func ParseStatus(name string) (Status, error) {
	switch s := Status(name); s {
	case Translated, Partial, Failed, Cached:
		return s, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownStatus, name)
	}
}

// Diagnostic is a problem found in a source that did not stop translation.
type Diagnostic struct {
	Path    Path   `yaml:"path"`
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	Message string `yaml:"message"`
}

// Report is the result of translating one source file.
type Report struct {
	Source       Source        `yaml:"source"`
	Status       Status        `yaml:"status"`
	Declarations int           `yaml:"declarations"`
	Markers      int           `yaml:"markers"`
	OutputBytes  int           `yaml:"outputBytes"`
	Duration     time.Duration `yaml:"duration"`
	Error        string        `yaml:"error,omitempty"`
	Diagnostics  []Diagnostic  `yaml:"diagnostics,omitempty"`
}

// Summary counts reports by status.
type Summary struct {
	Total       int
	Translated  int
	Partial     int
	Failed      int
	Cached      int
	Markers     int
	OutputBytes int
}

// Summarize counts reports by status.
func Summarize(reports []Report) Summary {
	s := Summary{Total: len(reports)}

	for _, r := range reports {
		switch r.Status {
		case Translated:
			s.Translated++
		case Partial:
			s.Partial++
		case Failed:
			s.Failed++
		case Cached:
			s.Cached++
		}

		s.Markers += r.Markers
		s.OutputBytes += r.OutputBytes
	}

	return s
}
