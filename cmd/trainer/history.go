// ABOUTME: CLI command for listing workout history.
// ABOUTME: Shows sync markers; supports JSON export.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List workout history",
	Long: `List completed workouts, most recent first.

Online, the local cache is refreshed from the server first; entries logged
offline and not yet delivered are kept and marked ⏳.

  ✓  synced with the server
  ⏳  stored locally, waiting to sync`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := service.History(cmd.Context())
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}

		if historyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No workouts logged yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, h := range entries {
			marker := color.GreenString("✓")
			if !h.Synced {
				marker = color.YellowString("⏳")
			}
			notes := ""
			if h.Notes != nil {
				notes = faint.Sprintf("(%s)", *h.Notes)
			}
			fmt.Printf("%s %s %s %d min, %d exercise(s) %s\n",
				marker,
				faint.Sprint(h.LoggedAt.Format("2006-01-02 15:04")),
				padRight(h.DayName, 10),
				h.DurationMinutes,
				len(h.Exercises),
				notes)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "max number of results")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output JSON")
	rootCmd.AddCommand(historyCmd)
}
