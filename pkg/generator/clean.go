package generator

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
)

// Clean deletes every fixture file below Dir. A file that cannot be deleted
// is recorded in the report and the run continues with the next one.
func (g *Generator) Clean(ctx context.Context) (*CleanReport, error) {
	g.out.plain("Cleaning Storybook stories...\n")

	files, err := DiscoverFiles(g.opts.Dir, g.fixtures())
	if err != nil {
		return nil, err
	}

	report := &CleanReport{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "clean cancelled")
		}
		if g.opts.DryRun {
			report.Deleted = append(report.Deleted, path)
			g.out.success("Would delete: %s\n", path)
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			report.Failed = append(report.Failed, Failure{Path: path, Reason: err.Error()})
			g.out.warn("Failed to delete %s: %v\n", path, err)
			continue
		}
		report.Deleted = append(report.Deleted, path)
		g.out.success("Deleted: %s\n", path)
	}

	g.out.plain("Story cleanup complete!\n")
	if len(report.Failed) > 0 {
		g.out.warn("❌ Failed to delete: %d files\n", len(report.Failed))
	}
	g.log.Debug("cleaned fixtures", "root", g.opts.Dir, "deleted", len(report.Deleted), "failed", len(report.Failed))
	return report, nil
}
