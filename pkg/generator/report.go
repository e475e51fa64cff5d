package generator

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Failure is one file that could not be processed.
type Failure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report accumulates the outcome of a Generate run.
type Report struct {
	Processed []string  `json:"processed"`
	Skipped   []string  `json:"skipped,omitempty"`
	Failed    []Failure `json:"failed,omitempty"`
}

// FailedPaths lists the paths of failed files.
func (r *Report) FailedPaths() []string {
	paths := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		paths = append(paths, f.Path)
	}
	return paths
}

// CleanReport accumulates the outcome of a Clean run.
type CleanReport struct {
	Deleted []string  `json:"deleted"`
	Failed  []Failure `json:"failed,omitempty"`
}

// printer writes user-facing progress. Colors follow the fatih/color
// terminal detection unless disabled.
type printer struct {
	w      io.Writer
	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w:      w,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
	}
	if noColor {
		p.green.DisableColor()
		p.red.DisableColor()
		p.yellow.DisableColor()
	}
	return p
}

func (p *printer) plain(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) success(format string, args ...any) {
	p.green.Fprintf(p.w, format, args...)
}

func (p *printer) warn(format string, args ...any) {
	p.red.Fprintf(p.w, format, args...)
}

func (p *printer) skip(format string, args ...any) {
	p.yellow.Fprintf(p.w, format, args...)
}

func (p *printer) summary(r *Report, dryRun bool) {
	p.plain("\nStory generation complete!\n")
	if dryRun {
		p.skip("Dry run: no files were written\n")
	}
	p.success("✅ Successfully processed: %d files\n", len(r.Processed))
	if len(r.Skipped) > 0 {
		p.skip("Skipped without components: %d files\n", len(r.Skipped))
	}
	if len(r.Failed) == 0 {
		return
	}
	p.warn("❌ Failed to process: %d files\n", len(r.Failed))
	p.plain("Failed files:\n")
	for _, f := range r.Failed {
		p.plain("  - %s: %s\n", f.Path, f.Reason)
	}
}
