// ABOUTME: CLI command for logging a completed workout.
// ABOUTME: Saves locally first; reports whether the server got it yet.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/trainer/internal/models"
)

var (
	logDayName   string
	logDuration  int
	logNotes     string
	logExercises []string
)

var logCmd = &cobra.Command{
	Use:   "log <day-id>",
	Short: "Log a completed workout",
	Long: `Log a completed workout session.

The session is written to the local database immediately and is never lost:
if the server is unreachable (or rejects the request) the write is queued
and delivered on the next 'trainer sync' or reconnect.

Each --exercise takes "id:SETSxREPS" for set-based work or "id:SECONDSs"
for duration-based work.

EXAMPLES:

  trainer log 3 --name tuesday --duration 30 --exercise 7:3x10
  trainer log 5 --name thursday --duration 20 --exercise 12:60s --notes "easy pace"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dayID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid day id: %s", args[0])
		}
		if len(logExercises) == 0 {
			return fmt.Errorf("at least one --exercise is required")
		}

		var results []models.ExerciseResult
		for _, spec := range logExercises {
			r, err := parseExerciseSpec(spec)
			if err != nil {
				return err
			}
			results = append(results, r)
		}

		payload := models.LogRequest{
			DayID:           dayID,
			DayName:         logDayName,
			DurationMinutes: logDuration,
			Exercises:       results,
		}
		if logNotes != "" {
			payload.Notes = &logNotes
		}

		result, err := service.LogWorkout(cmd.Context(), payload)
		if err != nil {
			return fmt.Errorf("log workout: %w", err)
		}

		if result.Synced {
			color.Green("✓ Workout logged and synced")
		} else {
			color.Green("✓ Workout logged")
			color.Yellow("⏳ Server unreachable - queued for sync")
		}
		return nil
	},
}

// parseExerciseSpec parses "id:SETSxREPS" or "id:SECONDSs".
func parseExerciseSpec(spec string) (models.ExerciseResult, error) {
	var r models.ExerciseResult

	idPart, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return r, fmt.Errorf("invalid exercise spec %q (want id:SETSxREPS or id:SECONDSs)", spec)
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return r, fmt.Errorf("invalid exercise id in %q", spec)
	}
	r.ExerciseID = id

	if secs, found := strings.CutSuffix(rest, "s"); found {
		n, err := strconv.Atoi(secs)
		if err != nil {
			return r, fmt.Errorf("invalid duration in %q", spec)
		}
		r.DurationSeconds = n
		return r, nil
	}

	setsPart, repsPart, ok := strings.Cut(rest, "x")
	if !ok {
		return r, fmt.Errorf("invalid exercise spec %q (want id:SETSxREPS or id:SECONDSs)", spec)
	}
	if r.SetsCompleted, err = strconv.Atoi(setsPart); err != nil {
		return r, fmt.Errorf("invalid sets in %q", spec)
	}
	if r.RepsCompleted, err = strconv.Atoi(repsPart); err != nil {
		return r, fmt.Errorf("invalid reps in %q", spec)
	}
	return r, nil
}

func init() {
	logCmd.Flags().StringVarP(&logDayName, "name", "N", "", "day name (e.g. tuesday)")
	logCmd.Flags().IntVarP(&logDuration, "duration", "d", 0, "duration in minutes")
	logCmd.Flags().StringVarP(&logNotes, "notes", "n", "", "session notes")
	logCmd.Flags().StringArrayVarP(&logExercises, "exercise", "e", nil, "completed exercise (id:SETSxREPS or id:SECONDSs)")
	rootCmd.AddCommand(logCmd)
}
