// ABOUTME: CLI command for seeding the local cache from the server.
// ABOUTME: Best-effort: offline or partial failures are not errors.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Warm the local cache from the server",
	Long: `Fetch the exercise library, your active plan, and recent workout
history from the server and cache them locally for offline use.

Seeding is best-effort: if the server is unreachable nothing changes and
the command still succeeds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		service.Seed(cmd.Context())

		pending, err := service.Pending()
		if err != nil {
			return fmt.Errorf("read queue: %w", err)
		}

		color.Green("✓ Local cache refreshed")
		if pending > 0 {
			color.Yellow("⏳ %d workout(s) still waiting to sync", pending)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
