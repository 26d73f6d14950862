package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplaySources prints a table of discovered sources.
func (s *SimpleUI) DisplaySources(ctx context.Context, sources []SourceInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSourcesTable(sortedSources(sources)))

	return nil
}

func sortedSources(sources []SourceInfo) []SourceInfo {
	out := append([]SourceInfo(nil), sources...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

func renderSourcesTable(sources []SourceInfo) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Declarations", "Size", "State"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	declarations := 0
	size := 0
	changed := 0

	for _, src := range sources {
		state := "cached"
		if src.Changed {
			state = "changed"
			changed++
		}

		if src.Diagnostics > 0 {
			state += fmt.Sprintf(", %d syntax error(s)", src.Diagnostics)
		}

		table.Append([]string{
			string(src.Path),
			fmt.Sprintf("%d", src.Declarations),
			humanize.Bytes(uint64(max(src.Bytes, 0))),
			state,
		})

		declarations += src.Declarations
		size += src.Bytes
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sources)),
		fmt.Sprintf("%d", declarations),
		humanize.Bytes(uint64(max(size, 0))),
		fmt.Sprintf("%d changed", changed),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayTranslationStarted announces how many units will be translated.
func (s *SimpleUI) DisplayTranslationStarted(ctx context.Context, total int, parallel int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Translating %s file(s) with %d worker(s)\n", humanize.Comma(int64(total)), parallel)
}

// DisplayUnitCompleted prints one line per finished unit.
func (s *SimpleUI) DisplayUnitCompleted(ctx context.Context, report m.Report) {
	if ctx.Err() != nil {
		return
	}

	line := statusLabel(report.Status) + " " + string(report.Source.Relative)

	switch {
	case report.Error != "":
		line += ": " + report.Error
	case report.Markers > 0:
		line += fmt.Sprintf(" (%d unsupported)", report.Markers)
	}

	s.printf("%s\n", line)

	for _, d := range report.Diagnostics {
		s.printf("    %s:%d:%d: %s\n", d.Path, d.Line, d.Column, d.Message)
	}
}

// DisplayDiff prints the unified diff of a rewritten output.
func (s *SimpleUI) DisplayDiff(ctx context.Context, _ m.Path, diff string) {
	if ctx.Err() != nil || diff == "" {
		return
	}

	s.printf("%s", diff)

	if !strings.HasSuffix(diff, "\n") {
		s.printf("\n")
	}
}

// DisplayReports prints a table of reports and a summary line.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := sortedReports(reports)
	s.printf("\n%s", renderReportsTable(sorted))
	s.printf("%s\n", summaryLine(m.Summarize(sorted)))

	return nil
}

func sortedReports(reports []m.Report) []m.Report {
	out := append([]m.Report(nil), reports...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Source.Relative < out[j].Source.Relative
	})

	return out
}

func renderReportsTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Unsupported", "Output", "Time"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, r := range reports {
		table.Append([]string{
			string(r.Source.Relative),
			string(r.Status),
			fmt.Sprintf("%d", r.Markers),
			humanize.Bytes(uint64(max(r.OutputBytes, 0))),
			r.Duration.Round(time.Microsecond).String(),
		})
	}

	table.Render()

	return tableBuffer.String()
}

func summaryLine(s m.Summary) string {
	return fmt.Sprintf("%d file(s): %d translated, %d partial, %d failed, %d cached, %s unsupported construct(s), %s written",
		s.Total, s.Translated, s.Partial, s.Failed, s.Cached,
		humanize.Comma(int64(s.Markers)), humanize.Bytes(uint64(max(s.OutputBytes, 0))))
}

// DisplayText prints text as is.
func (s *SimpleUI) DisplayText(ctx context.Context, text string) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s", text)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

var statusColors = map[m.Status]*color.Color{
	m.Translated: color.New(color.FgGreen),
	m.Partial:    color.New(color.FgYellow),
	m.Failed:     color.New(color.FgRed, color.Bold),
	m.Cached:     color.New(color.Faint),
}

func statusLabel(status m.Status) string {
	label := fmt.Sprintf("%-10s", status)
	if c, ok := statusColors[status]; ok {
		return c.Sprint(label)
	}

	return label
}
