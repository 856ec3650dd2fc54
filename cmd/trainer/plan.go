// ABOUTME: CLI command for showing the active workout plan.
// ABOUTME: Fetches from the server when online, local cache otherwise.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show your active workout plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := service.ActivePlan(cmd.Context())
		if err != nil {
			return fmt.Errorf("get plan: %w", err)
		}

		if bundle == nil || bundle.Plan == nil {
			fmt.Println("No plan cached. Run 'trainer seed' while online.")
			return nil
		}

		name := bundle.Plan.Name
		if name == "" {
			name = fmt.Sprintf("Plan %d", bundle.Plan.ID)
		}
		color.New(color.Bold).Printf("%s\n", name)

		faint := color.New(color.Faint)
		for _, day := range bundle.Days {
			fmt.Printf("\n%s %s\n", faint.Sprintf("day %d", day.ID), day.DayName)
			for _, ex := range bundle.DayExercises(day.ID) {
				label := ex.ExerciseName
				if label == "" {
					label = fmt.Sprintf("exercise %d", ex.ExerciseID)
				}
				if ex.DurationSeconds > 0 {
					fmt.Printf("  %s %ds\n", padRight(label, 28), ex.DurationSeconds)
				} else {
					fmt.Printf("  %s %dx%d\n", padRight(label, 28), ex.Sets, ex.Reps)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
