package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

// Footers go through tablewriter's header formatting, which upper-cases them.
func TestSimpleUI_DisplaySources(t *testing.T) {
	tests := []struct {
		name         string
		sources      []SourceInfo
		wantContains []string
	}{
		{
			name:         "no sources",
			sources:      nil,
			wantContains: []string{"TOTAL FILES 0", "0 CHANGED"},
		},
		{
			name: "changed and cached",
			sources: []SourceInfo{
				{Path: "Models/Person.cs", Bytes: 1200, Declarations: 2, Changed: true},
				{Path: "Program.cs", Bytes: 300, Declarations: 1},
			},
			wantContains: []string{"Models/Person.cs", "Program.cs", "1.2 kB", "changed", "cached", "TOTAL FILES 2", "1 CHANGED"},
		},
		{
			name: "syntax errors",
			sources: []SourceInfo{
				{Path: "Broken.cs", Bytes: 10, Diagnostics: 2, Changed: true},
			},
			wantContains: []string{"Broken.cs", "2 syntax error(s)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestSimpleUI()

			if err := ui.DisplaySources(context.Background(), tt.sources); err != nil {
				t.Fatalf("DisplaySources() error = %v", err)
			}

			got := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("DisplaySources() output missing %q, got: %s", want, got)
				}
			}
		})
	}
}

func TestSimpleUI_DisplaySourcesSorted(t *testing.T) {
	ui, buf := newTestSimpleUI()

	err := ui.DisplaySources(context.Background(), []SourceInfo{{Path: "b.cs"}, {Path: "a.cs"}})
	if err != nil {
		t.Fatalf("DisplaySources() error = %v", err)
	}

	got := buf.String()
	if strings.Index(got, "a.cs") > strings.Index(got, "b.cs") {
		t.Errorf("expected a.cs before b.cs, got: %s", got)
	}
}

func TestSimpleUI_DisplayUnitCompleted(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name   string
		report m.Report
		want   []string
	}{
		{
			name:   "translated",
			report: m.Report{Source: m.Source{Relative: "A.cs"}, Status: m.Translated},
			want:   []string{"translated", "A.cs"},
		},
		{
			name:   "partial",
			report: m.Report{Source: m.Source{Relative: "B.cs"}, Status: m.Partial, Markers: 3},
			want:   []string{"partial", "B.cs (3 unsupported)"},
		},
		{
			name:   "failed",
			report: m.Report{Source: m.Source{Relative: "C.cs"}, Status: m.Failed, Error: "boom"},
			want:   []string{"failed", "C.cs: boom"},
		},
		{
			name: "diagnostics",
			report: m.Report{
				Source:      m.Source{Relative: "D.cs"},
				Status:      m.Partial,
				Markers:     1,
				Diagnostics: []m.Diagnostic{{Path: "D.cs", Line: 4, Column: 2, Message: "syntax error near }"}},
			},
			want: []string{"D.cs:4:2: syntax error near }"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestSimpleUI()
			ui.DisplayUnitCompleted(context.Background(), tt.report)

			got := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("DisplayUnitCompleted() output missing %q, got: %s", want, got)
				}
			}
		})
	}
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	ui, buf := newTestSimpleUI()

	reports := []m.Report{
		{Source: m.Source{Relative: "A.cs"}, Status: m.Translated, OutputBytes: 2048, Duration: 1500 * time.Microsecond},
		{Source: m.Source{Relative: "B.cs"}, Status: m.Partial, Markers: 2},
		{Source: m.Source{Relative: "C.cs"}, Status: m.Failed, Error: "boom"},
		{Source: m.Source{Relative: "D.cs"}, Status: m.Cached},
	}

	if err := ui.DisplayReports(context.Background(), reports); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"A.cs", "B.cs", "C.cs", "D.cs", "1.5ms",
		"4 file(s): 1 translated, 1 partial, 1 failed, 1 cached, 2 unsupported construct(s), 2.0 kB written",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("DisplayReports() output missing %q, got: %s", want, got)
		}
	}
}

func TestSimpleUI_DisplayTranslationStarted(t *testing.T) {
	ui, buf := newTestSimpleUI()
	ui.DisplayTranslationStarted(context.Background(), 1200, 4)

	if got := buf.String(); !strings.Contains(got, "Translating 1,200 file(s) with 4 worker(s)") {
		t.Errorf("unexpected output: %s", got)
	}
}

func TestSimpleUI_DisplayDiffAndText(t *testing.T) {
	ui, buf := newTestSimpleUI()
	ctx := context.Background()

	ui.DisplayDiff(ctx, "A.kt", "")
	ui.DisplayDiff(ctx, "A.kt", "-val a = 1\n+val a = 2")
	ui.DisplayText(ctx, "done\n")

	if got, want := buf.String(), "-val a = 1\n+val a = 2\ndone\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSimpleUI_CanceledContext(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ui.Start(ctx); err == nil {
		t.Error("Start() expected error for canceled context")
	}

	if err := ui.DisplayReports(ctx, nil); err == nil {
		t.Error("DisplayReports() expected error for canceled context")
	}

	ui.DisplayText(ctx, "ignored")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got: %s", buf.String())
	}
}
