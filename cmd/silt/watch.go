package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/silt"
	siltlifecycle "github.com/aretw0/silt/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch [patterns...]",
	Short: "Reload the input files whenever they change",
	Long: `Load the input files, then rebuild everything from scratch each time one of
them changes, printing a summary line per reload until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pats, err := patterns(args)
		if err != nil {
			return err
		}
		opts, err := options()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		initial, w, err := silt.Watch(ctx, pats, opts...)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "loaded %s\n", summary(initial))

		src := siltlifecycle.NewSource(w.Events())
		if err := src.Start(ctx); err != nil {
			return err
		}
		done := make(chan struct{})
		go func() {
			defer close(done)
			for e := range src.Events() {
				fmt.Fprintln(out, e.String())
			}
		}()

		<-ctx.Done()
		if err := w.Stop(context.Background()); err != nil {
			slog.Debug("watcher stop", "error", err)
		}
		<-done
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func summary(c *silt.Context) string {
	total := 0
	for _, name := range c.Types() {
		if coll, err := c.TypeStore(name); err == nil {
			total += coll.Count()
		}
	}
	return fmt.Sprintf("%d types, %d records", len(c.Types()), total)
}
