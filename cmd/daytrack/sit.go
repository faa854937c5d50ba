package daytrack

import (
	"bufio"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"daytrack/internal/notify"
	"daytrack/internal/service"
	"daytrack/internal/timer"

	"github.com/spf13/cobra"
)

var (
	sitMinutes   int
	standMinutes int
	sitOnce      bool
)

var sitCmd = &cobra.Command{
	Use:   "sit",
	Short: "Run the sit/stand reminder timer",
	Long:  "Run the interactive sit/stand timer. Sit countdowns end in a stand break; completing the break records a sitting session and, unless --once is set, restarts the countdown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("sit") {
			sitMinutes = cfg.SitMinutes
		}
		if !cmd.Flags().Changed("stand") {
			standMinutes = cfg.StandMinutes
		}

		return withDB(func(db *sql.DB) error {
			record := func(sitDuration time.Duration, exercises []string) error {
				_, err := service.RecordSittingSession(db, "", int(sitDuration/time.Minute), exercises)
				return err
			}
			t := timer.New(
				time.Duration(sitMinutes)*time.Minute,
				time.Duration(standMinutes)*time.Minute,
				notify.NewLogScheduler(),
				record,
				timer.WithAutoRestart(cfg.AutoRestart && !sitOnce),
			)
			return runSitLoop(cmd, t)
		})
	},
}

// runSitLoop drives the timer from the terminal: it ticks once a second,
// acknowledges stand_due automatically, and prompts for the exercises done
// when the stand break finishes.
func runSitLoop(cmd *cobra.Command, t *timer.Timer) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	t.StartSitting()
	fmt.Fprintf(out, "Sitting for %s. Ctrl-C to quit.\n", t.Remaining().Round(time.Second))

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		switch t.Tick() {
		case timer.PhaseStandDue:
			t.AcknowledgeStandDue()
			fmt.Fprintln(out, "Stand up and move!")
		case timer.PhaseStanding:
			if t.Remaining() > 0 {
				continue
			}
			fmt.Fprint(out, "Exercises done (comma-separated, blank for none): ")
			line, err := reader.ReadString('\n')
			if err != nil {
				t.CancelStanding()
				return nil
			}
			var exercises []string
			for _, e := range strings.Split(line, ",") {
				if e = strings.TrimSpace(e); e != "" {
					exercises = append(exercises, e)
				}
			}
			restarted, err := t.CompleteStanding(exercises)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Cycle recorded.")
			if !restarted {
				return nil
			}
			fmt.Fprintf(out, "Sitting for %s.\n", t.Remaining().Round(time.Second))
		case timer.PhaseIdle:
			return nil
		}
	}
	return nil
}

var sitLogCmd = &cobra.Command{
	Use:   "log",
	Short: "List recorded sitting sessions for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			sessions, err := service.ListSittingSessions(db, workoutDate)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sitting sessions")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(out, "[%d] %s: sat %d minutes", s.ID, s.CompletedAt.Format("15:04"), s.SitDurationMinutes)
				if len(s.ExercisesCompleted) > 0 {
					fmt.Fprintf(out, ", then %s", strings.Join(s.ExercisesCompleted, ", "))
				}
				fmt.Fprintln(out)
			}
			return nil
		})
	},
}

func init() {
	sitCmd.Flags().IntVar(&sitMinutes, "sit", 45, "Sit countdown in minutes")
	sitCmd.Flags().IntVar(&standMinutes, "stand", 5, "Stand break in minutes")
	sitCmd.Flags().BoolVar(&sitOnce, "once", false, "Stop after one cycle instead of restarting")
	sitLogCmd.Flags().StringVar(&workoutDate, "date", "", "Date (YYYY-MM-DD, default today)")

	sitCmd.AddCommand(sitLogCmd)
	rootCmd.AddCommand(sitCmd)
}
