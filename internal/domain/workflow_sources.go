package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"cs2kt.dev/pkg/cs2kt/internal/adapter"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

// generatedSuffixes name files produced by C# tooling.
var generatedSuffixes = []string{".g.cs", ".Designer.cs"}

// unit is one discovered source on its way through the pipeline.
type unit struct {
	source   m.Source
	content  []byte
	parsed   *adapter.ParsedUnit
	err      error
	changed  bool
	previous *m.Report
}

type loadArgs struct {
	source   m.Path
	output   m.Path
	reports  m.Path
	exclude  []string
	parallel int
	useCache bool
}

func parallelism(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}

	return n
}

// projectRoot returns the directory relative output paths are computed from.
func (w *workflow) projectRoot(source m.Path) (m.Path, error) {
	root, err := w.FindProjectRoot(source)
	if err == nil {
		return root, nil
	}

	if !errors.Is(err, adapter.ErrNoProjectRoot) {
		return "", err
	}

	info, statErr := w.FileInfo(source)
	if statErr != nil {
		slog.Error("Failed to stat source", "path", source, "error", statErr)
		return "", fmt.Errorf("stat source: %w", statErr)
	}

	if info.IsDir() {
		return source, nil
	}

	return m.Path(filepath.Dir(string(source))), nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		out = append(out, re)
	}

	return out, nil
}

func skipSource(path string, excludes []*regexp.Regexp) bool {
	base := filepath.Base(path)
	if base == "AssemblyInfo.cs" {
		return true
	}

	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}

	slashed := filepath.ToSlash(path)
	for _, re := range excludes {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

// discover lists the C# files below source in walk order.
func (w *workflow) discover(source m.Path, exclude []string) ([]m.Path, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	var paths []m.Path

	err = w.Walk(source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != ".cs" || skipSource(path, excludes) {
			return nil
		}

		paths = append(paths, m.Path(path))

		return nil
	})
	if err != nil {
		slog.Error("Failed to walk sources", "path", source, "error", err)
		return nil, fmt.Errorf("walk %s: %w", source, err)
	}

	return paths, nil
}

func (w *workflow) previousReports(dir m.Path, useCache bool) map[m.Path]*m.Report {
	previous := map[m.Path]*m.Report{}
	if !useCache || dir == "" {
		return previous
	}

	reports, err := w.LoadReports(dir)
	if err != nil {
		slog.Warn("Ignoring unreadable report cache", "path", dir, "error", err)
		return previous
	}

	for i := range reports {
		previous[reports[i].Source.Relative] = &reports[i]
	}

	return previous
}

// load discovers, reads, hashes and parses every source. A file that cannot
// be read or parsed becomes a unit with err set; only discovery errors abort.
func (w *workflow) load(ctx context.Context, args loadArgs) ([]*unit, error) {
	root, err := w.projectRoot(args.source)
	if err != nil {
		return nil, err
	}

	paths, err := w.discover(args.source, args.exclude)
	if err != nil {
		return nil, err
	}

	previous := w.previousReports(args.reports, args.useCache)
	units := make([]*unit, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism(args.parallel))

	for i, path := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			units[i] = w.loadUnit(groupCtx, root, path, args.output, previous)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("loaded sources", "root", root, "count", len(units))

	return units, nil
}

func (w *workflow) loadUnit(ctx context.Context, root, path, output m.Path, previous map[m.Path]*m.Report) *unit {
	rel, err := w.RelPath(root, path)
	if err != nil {
		rel = m.Path(filepath.Base(string(path)))
	}

	rel = m.Path(filepath.ToSlash(string(rel)))
	out := w.JoinPath(string(output), strings.TrimSuffix(string(rel), ".cs")+".kt")
	u := &unit{source: m.Source{Origin: &m.File{Path: path}, Relative: rel, Output: out}, changed: true}

	u.content, u.err = w.ReadFile(path)
	if u.err != nil {
		slog.Error("Failed to read source", "path", path, "error", u.err)
		return u
	}

	u.source.Origin.Hash = w.HashContent(u.content)

	if prev, ok := previous[rel]; ok {
		u.previous = prev
		u.changed = !w.upToDate(u, prev)
	}

	u.parsed, u.err = w.Parse(ctx, path, u.content)
	if u.err != nil {
		u.changed = true
	}

	return u
}

// upToDate reports whether prev still describes u and its output exists.
func (w *workflow) upToDate(u *unit, prev *m.Report) bool {
	if prev.Status == m.Failed || prev.Source.Origin == nil || prev.Source.Origin.Hash != u.source.Origin.Hash {
		return false
	}

	if prev.Source.Output != u.source.Output {
		return false
	}

	_, err := w.FileInfo(u.source.Output)

	return err == nil
}
