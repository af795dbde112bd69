package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/retext/retext/filewatch"
	"github.com/retext/retext/fsmonitor"
)

func newWatchCmd() *cobra.Command {
	var rateLimitMs int

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "watch a directory and log coalesced Changed/ChangesDoneHint events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			coalescer := filewatch.New(func(file, otherFile string, kind filewatch.EventKind) {
				logger.Info("event", "kind", kind.String(), "file", file, "otherFile", otherFile,
					"at", time.Now().Format(time.RFC3339Nano))
			})
			if rateLimitMs > 0 {
				coalescer.SetRateLimit(time.Duration(rateLimitMs) * time.Millisecond)
			}

			if err := fsmonitor.Watch(ctx, dir, coalescer); err != nil {
				return errors.Wrapf(err, "watch %s", dir)
			}

			logger.Info("watching", "dir", dir)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().IntVar(&rateLimitMs, "rate-limit-ms", 0, "override the default 800ms Changed rate limit")
	return cmd
}
