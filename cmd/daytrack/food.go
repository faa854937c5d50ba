package daytrack

import (
	"database/sql"
	"fmt"
	"text/tabwriter"

	"daytrack/internal/service"

	"github.com/spf13/cobra"
)

var (
	foodProtein     float64
	foodCalories    int
	foodAllArchived bool
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food pick list",
}

var foodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a food with protein and calories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			id, err := service.CreateFood(db, service.CreateFoodInput{
				Name:     args[0],
				ProteinG: foodProtein,
				Calories: foodCalories,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %q (id %d)\n", args[0], id)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			foods, err := service.ListFoods(db, foodAllArchived)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPROTEIN\tCALORIES\tARCHIVED")
			for _, f := range foods {
				fmt.Fprintf(w, "%d\t%s\t%.1fg\t%d\t%s\n", f.ID, f.Name, f.ProteinG, f.Calories, checkmark(f.IsArchived))
			}
			return w.Flush()
		})
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Update a food's name and macros",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.UpdateFood(db, id, service.CreateFoodInput{
				Name:     args[1],
				ProteinG: foodProtein,
				Calories: foodCalories,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated food %d\n", id)
			return nil
		})
	},
}

var foodArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a food (history keeps its snapshots)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.ArchiveFood(db, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived food %d\n", id)
			return nil
		})
	},
}

var foodUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Restore an archived food to the pick list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.UnarchiveFood(db, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unarchived food %d\n", id)
			return nil
		})
	},
}

func init() {
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per serving")
	foodAddCmd.Flags().IntVar(&foodCalories, "calories", 0, "Calories per serving")
	foodUpdateCmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per serving")
	foodUpdateCmd.Flags().IntVar(&foodCalories, "calories", 0, "Calories per serving")
	foodListCmd.Flags().BoolVar(&foodAllArchived, "all", false, "Include archived foods")

	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodUpdateCmd)
	foodCmd.AddCommand(foodArchiveCmd)
	foodCmd.AddCommand(foodUnarchiveCmd)
	rootCmd.AddCommand(foodCmd)
}
