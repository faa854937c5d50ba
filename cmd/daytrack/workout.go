package daytrack

import (
	"database/sql"
	"fmt"
	"text/tabwriter"

	"daytrack/internal/service"

	"github.com/spf13/cobra"
)

var (
	workoutDate   string
	boxingMinutes int
	liftWeight    float64
	liftSets      int
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Boxing and 5x5 lifting sessions",
}

var boxingCmd = &cobra.Command{
	Use:   "boxing",
	Short: "Timed boxing sessions, one per day",
}

var boxingStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the day's boxing session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			id, err := service.StartBoxingSession(db, workoutDate, boxingMinutes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started boxing session %d (%d minutes)\n", id, boxingMinutes)
			return nil
		})
	},
}

var boxingDoneCmd = &cobra.Command{
	Use:   "done <session-id>",
	Short: "Mark a boxing session complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("boxing session id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.CompleteBoxingSession(db, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Boxing session %d complete\n", id)
			return nil
		})
	},
}

var boxingStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the day's boxing session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			s, err := service.GetBoxingSession(db, workoutDate)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if s == nil {
				fmt.Fprintln(out, "No boxing session today")
				return nil
			}
			state := "in progress"
			if s.CompletedAt != nil {
				state = "completed " + s.CompletedAt.Format("15:04")
			}
			fmt.Fprintf(out, "[%d] %s: %d minutes, %s\n", s.ID, s.Date, s.DurationMinutes, state)
			return nil
		})
	},
}

var liftCmd = &cobra.Command{
	Use:   "lift",
	Short: "5x5 weight sessions alternating type A and B",
}

var liftStartCmd = &cobra.Command{
	Use:   "start <a|b>",
	Short: "Start a weight session, seeding weights from last time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			id, err := service.StartWeightSession(db, workoutDate, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started weight session %d\n", id)
			return printWeightSession(cmd, db, id)
		})
	},
}

var liftSetCmd = &cobra.Command{
	Use:   "set <log-id>",
	Short: "Record weight and sets completed for an exercise log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logID, err := parseInt64Arg("exercise log id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.UpdateExerciseLog(db, logID, liftWeight, liftSets); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated exercise log %d\n", logID)
			return nil
		})
	},
}

var liftDoneCmd = &cobra.Command{
	Use:   "done <session-id>",
	Short: "Mark a weight session complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight session id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.CompleteWeightSession(db, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weight session %d complete\n", id)
			return nil
		})
	},
}

var liftShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a weight session with its exercise logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight session id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			return printWeightSession(cmd, db, id)
		})
	},
}

var liftLastCmd = &cobra.Command{
	Use:   "last <a|b>",
	Short: "Show the most recent completed session of a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			s, err := service.LastWeightSession(db, args[0])
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No completed %q session yet\n", args[0])
				return nil
			}
			return printWeightSession(cmd, db, s.ID)
		})
	},
}

func printWeightSession(cmd *cobra.Command, db *sql.DB, id int64) error {
	s, err := service.GetWeightSession(db, id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("weight session %d not found", id)
	}
	out := cmd.OutOrStdout()
	state := "in progress"
	if s.CompletedAt != nil {
		state = "completed"
	}
	fmt.Fprintf(out, "Session %d (%s) on %s, %s\n", s.ID, s.SessionType, s.Date, state)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LOG\tEXERCISE\tWEIGHT\tSETS")
	for _, l := range s.Exercises {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%d/%d\n", l.ID, l.ExerciseName, l.Weight, l.SetsCompleted, l.SetsTarget)
	}
	return w.Flush()
}

func init() {
	for _, c := range []*cobra.Command{boxingStartCmd, boxingStatusCmd, liftStartCmd} {
		c.Flags().StringVar(&workoutDate, "date", "", "Date (YYYY-MM-DD, default today)")
	}
	boxingStartCmd.Flags().IntVar(&boxingMinutes, "minutes", 30, "Planned duration in minutes")
	liftSetCmd.Flags().Float64Var(&liftWeight, "weight", 0, "Weight used")
	liftSetCmd.Flags().IntVar(&liftSets, "sets", 0, "Sets completed")

	boxingCmd.AddCommand(boxingStartCmd)
	boxingCmd.AddCommand(boxingDoneCmd)
	boxingCmd.AddCommand(boxingStatusCmd)

	liftCmd.AddCommand(liftStartCmd)
	liftCmd.AddCommand(liftSetCmd)
	liftCmd.AddCommand(liftDoneCmd)
	liftCmd.AddCommand(liftShowCmd)
	liftCmd.AddCommand(liftLastCmd)

	workoutCmd.AddCommand(boxingCmd)
	workoutCmd.AddCommand(liftCmd)
	rootCmd.AddCommand(workoutCmd)
}
