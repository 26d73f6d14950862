package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 2)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	statusStyle = map[m.Status]lipgloss.Style{
		m.Translated: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		m.Partial:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		m.Failed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		m.Cached:     faintStyle,
	}
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	cfg := startConfig(options)
	t.program = tea.NewProgram(newTUIModel(cfg.mode), tea.WithOutput(t.output), tea.WithContext(ctx))
	t.done = make(chan struct{})

	program, done := t.program, t.done

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Error("Failed to run TUI", "error", err)
		}
	}()

	return nil
}

// Close stops the program and restores the terminal.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (t *TUI) send(msg tea.Msg) bool {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return false
	}

	program.Send(msg)

	return true
}

// DisplaySources shows the sources table.
func (t *TUI) DisplaySources(ctx context.Context, sources []SourceInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.show(pageMsg{lines: tableLines(renderSourcesTable(sortedSources(sources)))})

	return nil
}

// DisplayTranslationStarted sets the expected number of units.
func (t *TUI) DisplayTranslationStarted(ctx context.Context, total int, parallel int) {
	if ctx.Err() != nil {
		return
	}

	t.send(startedMsg{total: total, parallel: parallel})
}

// DisplayUnitCompleted advances the progress line.
func (t *TUI) DisplayUnitCompleted(ctx context.Context, report m.Report) {
	if ctx.Err() != nil {
		return
	}

	t.send(unitMsg{report: report})
}

// DisplayDiff appends a diff to the scrollback.
func (t *TUI) DisplayDiff(ctx context.Context, _ m.Path, diff string) {
	if ctx.Err() != nil || diff == "" {
		return
	}

	t.send(appendMsg{lines: tableLines(diff)})
}

// DisplayReports shows the reports table and summary.
func (t *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := sortedReports(reports)
	t.show(pageMsg{
		lines:  tableLines(renderReportsTable(sorted)),
		footer: summaryLine(m.Summarize(sorted)),
	})

	return nil
}

// DisplayText writes text straight to the output when no program runs.
func (t *TUI) DisplayText(ctx context.Context, text string) {
	if ctx.Err() != nil {
		return
	}

	if !t.send(appendMsg{lines: tableLines(text)}) {
		_, _ = fmt.Fprint(t.output, text)
	}
}

// show sends msg to the program, or prints its page when none runs.
func (t *TUI) show(msg pageMsg) {
	if t.send(msg) {
		return
	}

	model := newTUIModel(ModeView)
	next, _ := model.Update(msg)
	_, _ = fmt.Fprint(t.output, next.(tuiModel).View())
}

func tableLines(text string) []string {
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

type startedMsg struct {
	total    int
	parallel int
}

type unitMsg struct {
	report m.Report
}

// pageMsg replaces the scrollback with a final page.
type pageMsg struct {
	lines  []string
	footer string
}

type appendMsg struct {
	lines []string
}

// reservedLines is the height taken by the title, progress and help lines.
const reservedLines = 9

type tuiModel struct {
	mode     StartMode
	total    int
	parallel int
	done     int
	failed   int
	lines    []string
	footer   string
	pages    paginator.Model
	quitting bool
}

func newTUIModel(mode StartMode) tuiModel {
	pages := paginator.New()
	pages.Type = paginator.Arabic
	pages.PerPage = 20

	return tuiModel{mode: mode, pages: pages}
}

func (tm tuiModel) Init() tea.Cmd {
	return nil
}

func (tm tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		tm.pages.PerPage = max(msg.Height-reservedLines, 1)
		tm.pages.SetTotalPages(len(tm.lines))
		tm.pages.Page = min(tm.pages.Page, max(tm.pages.TotalPages-1, 0))

		return tm, nil
	case startedMsg:
		tm.total, tm.parallel = msg.total, msg.parallel

		return tm, nil
	case unitMsg:
		tm.done++
		if msg.report.Status == m.Failed {
			tm.failed++
		}

		tm.lines = append(tm.lines, reportLine(msg.report))
		tm.pages.SetTotalPages(len(tm.lines))
		tm.pages.Page = max(tm.pages.TotalPages-1, 0)

		return tm, nil
	case appendMsg:
		tm.lines = append(tm.lines, msg.lines...)
		tm.pages.SetTotalPages(len(tm.lines))

		return tm, nil
	case pageMsg:
		tm.lines = msg.lines
		tm.footer = msg.footer
		tm.pages.SetTotalPages(len(tm.lines))
		tm.pages.Page = 0

		return tm, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			tm.quitting = true
			return tm, tea.Quit
		}

		var cmd tea.Cmd
		tm.pages, cmd = tm.pages.Update(msg)

		return tm, cmd
	}

	return tm, nil
}

func reportLine(r m.Report) string {
	label := fmt.Sprintf("%-10s", r.Status)
	if style, ok := statusStyle[r.Status]; ok {
		label = style.Render(label)
	}

	line := label + " " + string(r.Source.Relative)

	switch {
	case r.Error != "":
		line += faintStyle.Render(": " + r.Error)
	case r.Markers > 0:
		line += faintStyle.Render(fmt.Sprintf(" (%d unsupported)", r.Markers))
	}

	return line
}

func (tm tuiModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cs2kt - "+tm.mode.title()) + "\n")

	if tm.total > 0 {
		fmt.Fprintf(&b, "  %d/%d unit(s) with %d worker(s)", tm.done, tm.total, tm.parallel)

		if tm.failed > 0 {
			b.WriteString(statusStyle[m.Failed].Render(fmt.Sprintf(", %d failed", tm.failed)))
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")

	if len(tm.lines) == 0 {
		b.WriteString("  Nothing to show yet\n")
	}

	start, end := tm.pages.GetSliceBounds(len(tm.lines))
	for _, line := range tm.lines[start:end] {
		b.WriteString("  " + line + "\n")
	}

	if tm.footer != "" {
		b.WriteString("\n  " + tm.footer + "\n")
	}

	if tm.pages.TotalPages > 1 {
		b.WriteString("\n  " + tm.pages.View() + "\n")
		b.WriteString(faintStyle.Render("  ←/→: page | q: quit") + "\n")
	}

	return b.String()
}
