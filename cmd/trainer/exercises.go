// ABOUTME: CLI command for browsing the exercise library.
// ABOUTME: Supports muscle, difficulty, and name filters; works offline.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainer/internal/models"
)

var (
	exercisesMuscle     string
	exercisesDifficulty string
	exercisesSearch     string
)

var exercisesCmd = &cobra.Command{
	Use:     "exercises",
	Aliases: []string{"ex"},
	Short:   "Browse the exercise library",
	Long: `List exercises from the library.

Online, results come from the server and refresh the local cache. Offline,
the cached library is filtered locally with the same semantics.

EXAMPLES:

  trainer exercises                    # Everything
  trainer exercises --muscle chest     # Substring match on muscle group
  trainer exercises --search press     # Substring match on name
  trainer exercises -m legs -d beginner`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := models.ExerciseFilter{
			Muscle:     exercisesMuscle,
			Difficulty: exercisesDifficulty,
			Search:     exercisesSearch,
		}

		exercises, err := service.Exercises(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("list exercises: %w", err)
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range exercises {
			fmt.Printf("%s %s %s %s\n",
				faint.Sprintf("%4d", e.ID),
				padRight(e.Name, 28),
				padRight(e.MuscleGroup, 12),
				e.Difficulty)
		}
		return nil
	},
}

func init() {
	exercisesCmd.Flags().StringVarP(&exercisesMuscle, "muscle", "m", "", "filter by muscle group")
	exercisesCmd.Flags().StringVarP(&exercisesDifficulty, "difficulty", "d", "", "filter by difficulty")
	exercisesCmd.Flags().StringVarP(&exercisesSearch, "search", "s", "", "filter by name")
	rootCmd.AddCommand(exercisesCmd)
}

// padRight pads s with spaces to at least width characters.
func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
