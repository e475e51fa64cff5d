package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gnana997/storygen/pkg/generator"
)

func newWatchCommand() *cobra.Command {
	var initial bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate fixtures whenever component files change",
		Long: `Watch keeps running until interrupted. Saving a component file rewrites
its fixture; deleting one deletes its fixture. With --initial a full
generate pass runs before watching starts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, 1)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gen := a.generator(cmd.OutOrStdout(), false)
			if initial {
				if _, err := gen.Generate(ctx); err != nil {
					return err
				}
			}
			return runWatch(ctx, cmd.ErrOrStderr(), gen, a.cfg.Watch.DebounceMs)
		},
	}

	addTreeFlags(cmd)
	cmd.Flags().Int("debounce", 200, "milliseconds to wait for a burst of writes to settle")
	cmd.Flags().BoolVar(&initial, "initial", false, "generate every fixture before watching")
	return cmd
}

// runWatch blocks until ctx is done. The watcher reports every change
// through gen's progress output.
func runWatch(ctx context.Context, status io.Writer, gen *generator.Generator, debounceMs int) error {
	w, err := generator.NewWatcher(gen, generator.WatchOptions{
		Debounce: time.Duration(debounceMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return errors.CombineErrors(err, w.Stop())
	}

	fmt.Fprintf(status, "Watching %s for changes (Ctrl+C to stop)\n", gen.Options().Dir)
	<-ctx.Done()
	return w.Stop()
}
