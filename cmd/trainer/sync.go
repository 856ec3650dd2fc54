// ABOUTME: CLI commands for flushing and watching the sync queue.
// ABOUTME: Supports one-shot flush, status, and a reconnect watcher.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainer/internal/offline"
)

var watchInterval time.Duration

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Deliver queued workouts to the server",
	Long: `Flush the pending write queue against the server.

Workouts logged while offline sit in a local queue. Each queue item is
delivered independently: one failure does not block the rest, and anything
that fails stays queued for the next attempt.

COMMANDS:

  sync           Flush the queue once, now
  sync status    Show how many writes are pending
  sync watch     Keep running and flush on every reconnect`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flushed, failed := service.FlushQueue(cmd.Context())

		switch {
		case flushed == 0 && failed == 0:
			fmt.Println("Nothing to sync.")
		case failed == 0:
			color.Green("✓ Synced %d workout(s)", flushed)
		default:
			color.Green("✓ Synced %d workout(s)", flushed)
			color.Yellow("⚠ %d item(s) failed and remain queued", failed)
		}
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending sync queue size",
	RunE: func(cmd *cobra.Command, args []string) error {
		pending, err := service.Pending()
		if err != nil {
			return fmt.Errorf("read queue: %w", err)
		}

		if pending == 0 {
			color.Green("✓ Everything synced")
		} else {
			color.Yellow("⏳ %d workout(s) pending sync", pending)
		}
		return nil
	},
}

var syncWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Flush automatically when connectivity returns",
	Long: `Run a connectivity watcher until interrupted.

The server health endpoint is polled on an interval; whenever reachability
transitions from offline to online the pending queue is flushed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		probe := offline.NewProbe(client, watchInterval, log)
		watched := offline.New(store, client, probe, log)
		watcher := offline.NewWatcher(watched, log)

		probe.Start(cmd.Context())
		watcher.Start(cmd.Context())

		fmt.Printf("Watching connectivity (every %s). Ctrl-C to stop.\n", watchInterval)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		watcher.Stop()
		probe.Stop()
		return nil
	},
}

func init() {
	syncWatchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 15*time.Second, "health probe interval")
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncWatchCmd)
	rootCmd.AddCommand(syncCmd)
}
