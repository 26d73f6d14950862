package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

func update(t *testing.T, model tuiModel, msg tea.Msg) tuiModel {
	t.Helper()

	next, _ := model.Update(msg)

	tm, ok := next.(tuiModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}

	return tm
}

func TestTUIModel_Progress(t *testing.T) {
	model := newTUIModel(ModeTranslate)
	model = update(t, model, startedMsg{total: 3, parallel: 2})
	model = update(t, model, unitMsg{report: m.Report{Source: m.Source{Relative: "A.cs"}, Status: m.Translated}})
	model = update(t, model, unitMsg{report: m.Report{Source: m.Source{Relative: "B.cs"}, Status: m.Failed, Error: "boom"}})

	view := model.View()
	for _, want := range []string{"cs2kt - Translation", "2/3 unit(s) with 2 worker(s)", "1 failed", "A.cs", "B.cs", "boom"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q, got: %s", want, view)
		}
	}
}

func TestTUIModel_EmptyView(t *testing.T) {
	view := newTUIModel(ModeList).View()

	if !strings.Contains(view, "cs2kt - Sources") {
		t.Errorf("View() missing header, got: %s", view)
	}

	if !strings.Contains(view, "Nothing to show yet") {
		t.Errorf("View() missing empty message, got: %s", view)
	}
}

func TestTUIModel_Paging(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%02d", i)
	}

	model := newTUIModel(ModeView)
	model = update(t, model, pageMsg{lines: lines, footer: "30 lines"})
	model = update(t, model, tea.WindowSizeMsg{Width: 80, Height: reservedLines + 10})

	view := model.View()
	if !strings.Contains(view, "line-00") || strings.Contains(view, "line-10") {
		t.Errorf("first page should hold ten lines, got: %s", view)
	}

	if !strings.Contains(view, "1/3") {
		t.Errorf("View() missing page indicator, got: %s", view)
	}

	model = update(t, model, tea.KeyMsg{Type: tea.KeyRight})

	view = model.View()
	if !strings.Contains(view, "line-10") || strings.Contains(view, "line-09") {
		t.Errorf("second page should start at line-10, got: %s", view)
	}

	if !strings.Contains(view, "30 lines") {
		t.Errorf("View() missing footer, got: %s", view)
	}
}

func TestTUIModel_Quit(t *testing.T) {
	model := newTUIModel(ModeTranslate)

	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	if !next.(tuiModel).quitting {
		t.Error("model should be quitting")
	}
}

func TestTUI_WithoutProgramPrintsDirectly(t *testing.T) {
	var buf bytes.Buffer

	tui := NewTUI(&buf)
	ctx := context.Background()

	reports := []m.Report{{Source: m.Source{Relative: "A.cs"}, Status: m.Partial, Markers: 1}}
	if err := tui.DisplayReports(ctx, reports); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	tui.DisplayText(ctx, "tail\n")
	tui.Wait(ctx)
	tui.Close(ctx)

	got := buf.String()
	for _, want := range []string{"A.cs", "1 file(s): 0 translated, 1 partial", "tail"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got: %s", want, got)
		}
	}
}
