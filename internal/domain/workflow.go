package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"cs2kt.dev/pkg/cs2kt/internal/adapter"
	"cs2kt.dev/pkg/cs2kt/internal/ast"
	"cs2kt.dev/pkg/cs2kt/internal/controller"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
	"cs2kt.dev/pkg/cs2kt/pkg/spill"
)

var (
	// ErrTranslationFailed is returned when at least one unit failed.
	ErrTranslationFailed = errors.New("translation failed")
	// ErrNoReports is returned by View when the reports directory is empty.
	ErrNoReports = errors.New("no reports found")
)

const outputPerm = 0o644

// TranslateArgs contains the arguments for translating a project.
type TranslateArgs struct {
	Source   m.Path
	Output   m.Path
	Reports  m.Path
	Exclude  []string
	Parallel int
	UseCache bool
	Diff     bool
}

// EstimateArgs contains the arguments for listing sources.
type EstimateArgs struct {
	Source   m.Path
	Output   m.Path
	Reports  m.Path
	Exclude  []string
	UseCache bool
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
	// Statuses keeps only reports with one of these statuses; empty keeps all.
	Statuses []m.Status
}

// ShowArgs contains the arguments for translating a single file.
type ShowArgs struct {
	Path m.Path
	AST  bool
}

// Workflow drives the translator over a project.
type Workflow interface {
	Translate(ctx context.Context, args TranslateArgs) error
	Estimate(ctx context.Context, args EstimateArgs) error
	View(ctx context.Context, args ViewArgs) error
	Show(ctx context.Context, args ShowArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.CSharpFileAdapter
	adapter.ReportStore
	controller.UI
	Translator

	catalog *semantic.Catalog
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	csharpAdapter adapter.CSharpFileAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	translator Translator,
	catalog *semantic.Catalog,
) Workflow {
	return &workflow{
		SourceFSAdapter:   fsAdapter,
		CSharpFileAdapter: csharpAdapter,
		ReportStore:       reportStore,
		UI:                ui,
		Translator:        translator,
		catalog:           catalog,
	}
}

// Translate translates every changed source below args.Source. Units that fail
// are reported and do not stop the others; ErrTranslationFailed is returned
// after the reports are saved.
func (w *workflow) Translate(ctx context.Context, args TranslateArgs) error {
	if err := w.Start(ctx, controller.WithTranslateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	parallel := parallelism(args.Parallel)

	units, err := w.load(ctx, loadArgs{
		source:   args.Source,
		output:   args.Output,
		reports:  args.Reports,
		exclude:  args.Exclude,
		parallel: parallel,
		useCache: args.UseCache,
	})
	if err != nil {
		slog.Error("Failed to load sources", "path", args.Source, "error", err)
		return fmt.Errorf("load sources: %w", err)
	}

	reports, err := w.translateAll(ctx, units, args, parallel)
	if err != nil {
		return err
	}

	if err := w.SaveReports(args.Reports, reports); err != nil {
		slog.Error("Failed to save reports", "path", args.Reports, "error", err)
		return fmt.Errorf("save reports: %w", err)
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		slog.Error("Failed to display reports", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	if failed := m.Summarize(reports).Failed; failed > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrTranslationFailed, failed)
	}

	return nil
}

// translateAll builds the project index from every parsed unit, then
// translates the changed ones in parallel.
func (w *workflow) translateAll(ctx context.Context, units []*unit, args TranslateArgs, parallel int) ([]m.Report, error) {
	index := semantic.NewIndex(w.catalog, parsedUnits(units)...)

	collected, err := spill.New[m.Report]("")
	if err != nil {
		return nil, fmt.Errorf("create report spill: %w", err)
	}

	defer func() {
		if err := collected.Close(); err != nil {
			slog.Warn("Failed to close report spill", "error", err)
		}
	}()

	var changed []*unit

	for _, u := range units {
		if u.changed {
			changed = append(changed, u)
			continue
		}

		report := *u.previous
		report.Source = u.source
		report.Status = m.Cached
		report.Duration = 0

		if err := collected.Append(report); err != nil {
			return nil, fmt.Errorf("collect report: %w", err)
		}
	}

	w.DisplayTranslationStarted(ctx, len(changed), parallel)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for _, u := range changed {
		group.Go(func() error {
			report := w.translateUnit(groupCtx, u, index, args.Diff)
			w.DisplayUnitCompleted(groupCtx, report)

			return collected.Append(report)
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("Failed to translate sources", "error", err)
		return nil, fmt.Errorf("translate: %w", err)
	}

	reports, err := collected.Collect()
	if err != nil {
		return nil, fmt.Errorf("collect reports: %w", err)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Source.Relative < reports[j].Source.Relative
	})

	return reports, nil
}

func parsedUnits(units []*unit) []*ast.CompilationUnit {
	out := make([]*ast.CompilationUnit, 0, len(units))

	for _, u := range units {
		if u.parsed != nil {
			out = append(out, u.parsed.Unit)
		}
	}

	return out
}

func (w *workflow) translateUnit(ctx context.Context, u *unit, index *semantic.Index, diff bool) m.Report {
	start := time.Now()
	report := m.Report{Source: u.source}

	fail := func(err error) m.Report {
		report.Status = m.Failed
		report.Error = err.Error()
		report.Duration = time.Since(start)

		return report
	}

	if u.err != nil {
		return fail(u.err)
	}

	report.Diagnostics = u.parsed.Diagnostics

	result, err := w.TranslateUnit(ctx, u.parsed.Unit, index)
	report.Declarations = result.Declarations
	report.Markers = result.Markers

	if err != nil {
		slog.Error("Failed to translate unit", "path", u.source.Relative, "error", err)
		return fail(err)
	}

	if diff {
		w.showDiff(ctx, u.source.Output, result.Output)
	}

	if err := w.WriteFile(u.source.Output, []byte(result.Output), outputPerm); err != nil {
		slog.Error("Failed to write output", "path", u.source.Output, "error", err)
		return fail(fmt.Errorf("write %s: %w", u.source.Output, err))
	}

	report.Status = m.Translated
	if result.Markers > 0 {
		report.Status = m.Partial
	}

	report.OutputBytes = len(result.Output)
	report.Duration = time.Since(start)

	slog.Debug("translated source", "path", u.source.Relative, "status", report.Status, "duration", report.Duration)

	return report
}

func (w *workflow) showDiff(ctx context.Context, path m.Path, after string) {
	before, err := w.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read previous output", "path", path, "error", err)
	}

	text, err := unifiedDiff(path, string(before), after)
	if err != nil {
		slog.Warn("Failed to diff output", "path", path, "error", err)
		return
	}

	w.DisplayDiff(ctx, path, text)
}

// unifiedDiff returns the unified diff between two outputs, empty when equal.
func unifiedDiff(path m.Path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  3,
	})
}

// Estimate lists the sources a translate run would see.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	units, err := w.load(ctx, loadArgs{
		source:   args.Source,
		output:   args.Output,
		reports:  args.Reports,
		exclude:  args.Exclude,
		useCache: args.UseCache,
	})
	if err != nil {
		slog.Error("Failed to load sources", "path", args.Source, "error", err)
		return fmt.Errorf("load sources: %w", err)
	}

	infos := make([]controller.SourceInfo, 0, len(units))

	for _, u := range units {
		info := controller.SourceInfo{Path: u.source.Relative, Bytes: len(u.content), Changed: u.changed}
		if u.parsed != nil {
			info.Declarations = countDeclarations(u.parsed.Unit)
			info.Diagnostics = len(u.parsed.Diagnostics)
		}

		infos = append(infos, info)
	}

	if err := w.DisplaySources(ctx, infos); err != nil {
		slog.Error("Failed to display sources", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// View shows the reports saved by the last translate run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(args.Reports)
	if err != nil {
		slog.Error("Failed to load reports", "path", args.Reports, "error", err)
		return fmt.Errorf("load reports: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("%w in %s", ErrNoReports, args.Reports)
	}

	if len(args.Statuses) > 0 {
		reports = slices.DeleteFunc(reports, func(r m.Report) bool {
			return !slices.Contains(args.Statuses, r.Status)
		})
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	if err := w.DisplayReports(ctx, reports); err != nil {
		slog.Error("Failed to display reports", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

var astDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Show translates a single file and prints the result, or its syntax tree.
func (w *workflow) Show(ctx context.Context, args ShowArgs) error {
	content, err := w.ReadFile(args.Path)
	if err != nil {
		slog.Error("Failed to read source", "path", args.Path, "error", err)
		return fmt.Errorf("read %s: %w", args.Path, err)
	}

	parsed, err := w.Parse(ctx, args.Path, content)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	for _, d := range parsed.Diagnostics {
		slog.Warn("Syntax error", "path", d.Path, "line", d.Line, "column", d.Column, "message", d.Message)
	}

	if args.AST {
		w.DisplayText(ctx, astDumper.Sdump(parsed.Unit))
		return nil
	}

	index := semantic.NewIndex(w.catalog, parsed.Unit)

	result, err := w.TranslateUnit(ctx, parsed.Unit, index)
	if err != nil {
		return err
	}

	w.DisplayText(ctx, result.Output)

	return nil
}
