package daytrack

import (
	"database/sql"
	"fmt"
	"text/tabwriter"

	"daytrack/internal/service"

	"github.com/spf13/cobra"
)

var (
	supplementDate   string
	supplementTarget int
	supplementDosage string
	supplementSort   int
	supplementValue  int
)

var supplementCmd = &cobra.Command{
	Use:     "supplement",
	Aliases: []string{"supp"},
	Short:   "Manage the daily supplement checklist",
}

var supplementAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a supplement to the checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			id, err := service.CreateSupplement(db, service.CreateSupplementInput{
				Name:      args[0],
				Target:    supplementTarget,
				Dosage:    supplementDosage,
				SortOrder: supplementSort,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added supplement %q (id %d)\n", args[0], id)
			return nil
		})
	},
}

var supplementListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the checklist with today's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			supplements, err := service.ListSupplements(db, false)
			if err != nil {
				return err
			}
			logs, err := service.SupplementLogsForDate(db, supplementDate)
			if err != nil {
				return err
			}
			logged := make(map[int64]int, len(logs))
			for _, l := range logs {
				logged[l.SupplementID] = l.Value
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDOSAGE\tPROGRESS\tDONE")
			for _, s := range supplements {
				v := logged[s.ID]
				fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%s\n", s.ID, s.Name, s.Dosage, v, s.Target, checkmark(v >= service.CompletionThreshold(s)))
			}
			return w.Flush()
		})
	},
}

var supplementLogCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Set a supplement's logged value for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("supplement id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.LogSupplement(db, id, supplementDate, supplementValue); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged supplement %d\n", id)
			return nil
		})
	},
}

var supplementTakeCmd = &cobra.Command{
	Use:   "take <id>",
	Short: "Bump a supplement's logged value by one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("supplement id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			value, err := service.IncrementSupplement(db, id, supplementDate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Supplement %d at %d\n", id, value)
			return nil
		})
	},
}

var supplementArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a supplement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("supplement id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.ArchiveSupplement(db, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived supplement %d\n", id)
			return nil
		})
	},
}

var supplementUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Restore an archived supplement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("supplement id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.UnarchiveSupplement(db, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived supplement %d\n", id)
			return nil
		})
	},
}

func init() {
	supplementAddCmd.Flags().IntVar(&supplementTarget, "target", 1, "Daily target count")
	supplementAddCmd.Flags().StringVar(&supplementDosage, "dosage", "", "Dosage label")
	supplementAddCmd.Flags().IntVar(&supplementSort, "sort", 0, "Checklist sort order")
	supplementLogCmd.Flags().IntVar(&supplementValue, "value", 1, "Logged value (clamped to 0..target)")
	for _, c := range []*cobra.Command{supplementListCmd, supplementLogCmd, supplementTakeCmd} {
		c.Flags().StringVar(&supplementDate, "date", "", "Date (YYYY-MM-DD, default today)")
	}

	supplementCmd.AddCommand(supplementAddCmd)
	supplementCmd.AddCommand(supplementListCmd)
	supplementCmd.AddCommand(supplementLogCmd)
	supplementCmd.AddCommand(supplementTakeCmd)
	supplementCmd.AddCommand(supplementArchiveCmd)
	supplementCmd.AddCommand(supplementUnarchiveCmd)
	rootCmd.AddCommand(supplementCmd)
}
