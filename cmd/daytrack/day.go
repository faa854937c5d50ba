package daytrack

import (
	"database/sql"
	"fmt"
	"text/tabwriter"

	"daytrack/internal/service"

	"github.com/spf13/cobra"
)

var (
	dayMoveFrom      string
	dayMoveTo        string
	dayCalendarStart string
	dayCalendarEnd   string
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Daily stats: rollover, streaks, calendar, corrections",
}

var dayInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Finalize past days, fill gaps, and open today",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			today := service.Today()
			if err := service.InitializeDay(db, today); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Day %s initialized\n", today)
			return nil
		})
	},
}

var dayStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's live stats and totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			today := service.Today()
			if err := service.InitializeDay(db, today); err != nil {
				return err
			}
			if err := service.UpdateTodayStats(db); err != nil {
				return err
			}
			stats, err := service.GetStatsForDate(db, today)
			if err != nil {
				return err
			}
			totals, err := service.MealTotalsForDate(db, today)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Date\t%s\n", today)
			fmt.Fprintf(w, "Protein\t%.1fg\n", totals.ProteinG)
			fmt.Fprintf(w, "Calories\t%d\n", totals.Calories)
			if stats != nil {
				fmt.Fprintf(w, "Fasting compliant\t%s\n", checkmark(stats.FastingCompliant))
				fmt.Fprintf(w, "Supplements complete\t%s\n", checkmark(stats.SupplementsComplete))
				fmt.Fprintf(w, "Workout complete\t%s\n", checkmark(stats.WorkoutComplete))
			}
			return w.Flush()
		})
	},
}

var dayStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show fasting, supplement, and combined streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			today := service.Today()
			if err := service.InitializeDay(db, today); err != nil {
				return err
			}
			fasting, err := service.GetStreak(db, service.MetricFasting, today)
			if err != nil {
				return err
			}
			supplements, err := service.GetStreak(db, service.MetricSupplements, today)
			if err != nil {
				return err
			}
			combined, err := service.GetCombinedStreak(db, today)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Fasting streak\t%d days\n", fasting)
			fmt.Fprintf(w, "Supplement streak\t%d days\n", supplements)
			fmt.Fprintf(w, "Combined streak\t%d days\n", combined.Days)
			fmt.Fprintf(w, "Today qualifies\t%s\n", checkmark(combined.TodayQualifies))
			return w.Flush()
		})
	},
}

var dayCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show per-day results for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dayCalendarStart == "" || dayCalendarEnd == "" {
			return fmt.Errorf("--start and --end are required")
		}
		return withDB(func(db *sql.DB) error {
			stats, err := service.StatsForRange(db, dayCalendarStart, dayCalendarEnd)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tFASTING\tSUPPLEMENTS\tWORKOUT\tFINAL")
			for _, s := range stats {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Date,
					checkmark(s.FastingCompliant), checkmark(s.SupplementsComplete),
					checkmark(s.WorkoutComplete), checkmark(s.Finalized))
			}
			return w.Flush()
		})
	},
}

var dayMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move one date's data to an empty date",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dayMoveFrom == "" || dayMoveTo == "" {
			return fmt.Errorf("--from and --to are required")
		}
		return withDB(func(db *sql.DB) error {
			if err := service.MoveDateData(db, dayMoveFrom, dayMoveTo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", dayMoveFrom, dayMoveTo)
			return nil
		})
	},
}

var dayDeleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete everything recorded for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			if err := service.DeleteDate(db, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted all data for %s\n", args[0])
			return nil
		})
	},
}

func init() {
	dayCalendarCmd.Flags().StringVar(&dayCalendarStart, "start", "", "Range start (YYYY-MM-DD)")
	dayCalendarCmd.Flags().StringVar(&dayCalendarEnd, "end", "", "Range end (YYYY-MM-DD)")
	dayMoveCmd.Flags().StringVar(&dayMoveFrom, "from", "", "Source date (YYYY-MM-DD)")
	dayMoveCmd.Flags().StringVar(&dayMoveTo, "to", "", "Destination date (YYYY-MM-DD)")

	dayCmd.AddCommand(dayInitCmd)
	dayCmd.AddCommand(dayStatusCmd)
	dayCmd.AddCommand(dayStreakCmd)
	dayCmd.AddCommand(dayCalendarCmd)
	dayCmd.AddCommand(dayMoveCmd)
	dayCmd.AddCommand(dayDeleteCmd)
	rootCmd.AddCommand(dayCmd)
}
