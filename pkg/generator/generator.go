// Package generator drives fixture generation over a component tree: it
// discovers component files, runs each one through the scanner and the
// fixture emitter inside its own failure boundary, and reports the outcome.
package generator

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gnana997/storygen/pkg/fixture"
	"github.com/gnana997/storygen/pkg/scanner"
	"github.com/gnana997/storygen/pkg/source"
)

// Defaults for Options.
const (
	DefaultDir     = "components"
	DefaultPattern = "**/*.tsx"
)

// Options configure a Generator.
type Options struct {
	// Dir is the component root.
	Dir string
	// Suffix replaces a component's extension to name its fixture.
	Suffix string
	// Pattern selects component files, relative to Dir.
	Pattern string
	// Exclude lists further root-relative globs to skip.
	Exclude []string
	// DryRun renders fixtures without writing or deleting anything.
	DryRun bool
	// Out receives progress and summary lines. Nil discards them.
	Out     io.Writer
	NoColor bool
}

func (o *Options) applyDefaults() {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.Suffix == "" {
		o.Suffix = fixture.DefaultSuffix
	}
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
}

// Status is the outcome of one component file.
type Status string

const (
	StatusGenerated Status = "generated"
	StatusSkipped   Status = "skipped"
)

// FileResult is the outcome of processing one component file.
type FileResult struct {
	Path      string
	StoryPath string
	Status    Status
	// Analysis is set for generated and skipped files.
	Analysis *scanner.Analysis
	Plan     *fixture.Plan
	Content  []byte
}

// Generator runs the per-file pipeline over a component tree, strictly one
// file at a time.
type Generator struct {
	opts    Options
	loader  *source.Loader
	scanner *scanner.Scanner
	log     *slog.Logger
	out     *printer
}

// New creates a Generator.
func New(loader *source.Loader, sc *scanner.Scanner, opts Options, logger *slog.Logger) *Generator {
	opts.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	if sc == nil {
		sc = scanner.NewScanner(nil, logger)
	}
	return &Generator{
		opts:    opts,
		loader:  loader,
		scanner: sc,
		log:     logger,
		out:     newPrinter(opts.Out, opts.NoColor),
	}
}

// Options returns the effective options.
func (g *Generator) Options() Options {
	return g.opts
}

// components selects component files: Pattern minus fixtures and Exclude.
func (g *Generator) components() Matcher {
	return Matcher{
		Include: []string{g.opts.Pattern},
		Exclude: append([]string{"**/*" + g.opts.Suffix}, g.opts.Exclude...),
	}
}

// fixtures selects previously generated fixture files.
func (g *Generator) fixtures() Matcher {
	return Matcher{Include: []string{"**/*" + g.opts.Suffix}, Exclude: g.opts.Exclude}
}

// Discover lists the component files Generate would process.
func (g *Generator) Discover() ([]string, error) {
	return DiscoverFiles(g.opts.Dir, g.components())
}

// IsComponentPath reports whether path, somewhere below Dir, is a component
// file Generate would pick up.
func (g *Generator) IsComponentPath(path string) bool {
	rel, err := filepath.Rel(g.opts.Dir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	return g.components().Match(rel)
}

// Generate writes a fixture next to every component file below Dir. Per-file
// failures are recorded in the report and never abort the batch; the error
// is reserved for discovery failures and cancellation.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	g.out.plain("Generating Storybook stories...\n")

	files, err := g.Discover()
	if err != nil {
		return nil, err
	}
	g.log.Debug("discovered component files", "root", g.opts.Dir, "count", len(files))

	report := &Report{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "generation cancelled")
		}

		res, err := g.GenerateFile(path)
		switch {
		case err != nil:
			report.Failed = append(report.Failed, Failure{Path: path, Reason: err.Error()})
			g.out.warn("Failed to process %s: %v\n", path, err)
		case res.Status == StatusSkipped:
			report.Skipped = append(report.Skipped, path)
			g.out.skip("Skipping %s: No valid exports found\n", path)
		default:
			report.Processed = append(report.Processed, path)
			if g.opts.DryRun {
				g.out.success("Would generate: %s\n", res.StoryPath)
			} else {
				g.out.success("Generated: %s\n", res.StoryPath)
			}
		}
	}

	g.out.summary(report, g.opts.DryRun)
	return report, nil
}

// GenerateFile processes one component file and writes its fixture unless
// DryRun is set. Files without components are skipped without error.
func (g *Generator) GenerateFile(path string) (*FileResult, error) {
	res, err := g.Preview(path)
	if err != nil || res.Status != StatusGenerated || g.opts.DryRun {
		return res, err
	}
	if err := os.WriteFile(res.StoryPath, res.Content, 0o644); err != nil {
		return nil, errors.Wrapf(err, "write %s", res.StoryPath)
	}
	g.log.Debug("wrote fixture", "file", res.StoryPath, "bytes", len(res.Content))
	return res, nil
}

// Preview renders the fixture for one component file without writing it.
// Panics raised while analyzing the file are returned as errors.
func (g *Generator) Preview(path string) (res *FileResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("panic while processing file", "file", path, "panic", r, "stack", string(debug.Stack()))
			res, err = nil, errors.Newf("panic: %v", r)
		}
	}()

	unit, err := g.loader.Load(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if relErr := unit.Release(); relErr != nil {
			g.log.Warn("release failed", "file", path, "error", relErr)
		}
	}()

	res = &FileResult{Path: path, StoryPath: fixture.StoryPath(path, g.opts.Suffix)}

	analysis, err := g.scanner.Analyze(unit)
	res.Analysis = analysis
	if errors.Is(err, scanner.ErrNoComponents) {
		res.Status = StatusSkipped
		return res, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "analyze %s", path)
	}

	plan, err := fixture.NewPlan(analysis, fixture.Options{Root: g.opts.Dir, Suffix: g.opts.Suffix})
	if err != nil {
		return nil, err
	}
	res.Status = StatusGenerated
	res.Plan = plan
	res.Content = plan.Render()
	return res, nil
}

// Inspect analyzes one component file without rendering anything. A file
// without components returns its analysis and scanner.ErrNoComponents.
func (g *Generator) Inspect(path string) (*scanner.Analysis, error) {
	unit, err := g.loader.Load(path)
	if err != nil {
		return nil, err
	}
	defer unit.Release()
	return g.scanner.Analyze(unit)
}

// RemoveFixture deletes the fixture generated for a component file. A
// missing fixture is not an error.
func (g *Generator) RemoveFixture(componentPath string) (string, bool, error) {
	storyPath := fixture.StoryPath(componentPath, g.opts.Suffix)
	if g.opts.DryRun {
		_, err := os.Stat(storyPath)
		return storyPath, err == nil, nil
	}
	err := os.Remove(storyPath)
	switch {
	case err == nil:
		return storyPath, true, nil
	case errors.Is(err, os.ErrNotExist):
		return storyPath, false, nil
	default:
		return storyPath, false, errors.Wrapf(err, "remove %s", storyPath)
	}
}
