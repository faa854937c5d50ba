package daytrack

import (
	"database/sql"
	"fmt"
	"text/tabwriter"

	"daytrack/internal/service"

	"github.com/spf13/cobra"
)

var (
	mealDate     string
	mealTime     string
	mealType     string
	mealNote     string
	mealFoodID   int64
	mealProtein  float64
	mealCalories int
	mealQuantity float64
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and review meal entries",
}

var mealLogCmd = &cobra.Command{
	Use:   "log [item name]",
	Short: "Log a meal entry with one item",
	Long:  "Log a meal entry. Name an item directly, pass --food to reference the pick list, or do both. Items snapshot the food's macros at log time.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item := service.MealItemInput{
			FoodID:   mealFoodID,
			ProteinG: mealProtein,
			Calories: mealCalories,
			Quantity: mealQuantity,
		}
		if len(args) == 1 {
			item.Name = args[0]
		}
		if item.FoodID == 0 && item.Name == "" {
			return fmt.Errorf("name an item or pass --food")
		}

		loggedAt, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}

		return withDB(func(db *sql.DB) error {
			id, err := service.CreateMealEntry(db, service.CreateMealEntryInput{
				Date:     mealDate,
				LoggedAt: loggedAt,
				MealType: mealType,
				Note:     mealNote,
				Items:    []service.MealItemInput{item},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal entry %d\n", id)
			return nil
		})
	},
}

var mealAddItemCmd = &cobra.Command{
	Use:   "add-item <entry-id> [item name]",
	Short: "Append an item to an existing meal entry",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseInt64Arg("meal entry id", args[0])
		if err != nil {
			return err
		}
		item := service.MealItemInput{
			FoodID:   mealFoodID,
			ProteinG: mealProtein,
			Calories: mealCalories,
			Quantity: mealQuantity,
		}
		if len(args) == 2 {
			item.Name = args[1]
		}
		return withDB(func(db *sql.DB) error {
			id, err := service.AddMealItem(db, entryID, item)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %d to entry %d\n", id, entryID)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal entries for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			entries, err := service.ListMealEntries(db, mealDate)
			if err != nil {
				return err
			}
			totals, err := service.MealTotalsForDate(db, mealDate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No meal entries for %s\n", totals.Date)
				return nil
			}
			for _, e := range entries {
				label := e.MealType
				if label == "" {
					label = "meal"
				}
				fmt.Fprintf(out, "[%d] %s %s", e.ID, e.LoggedAt.Format("15:04"), label)
				if e.Note != "" {
					fmt.Fprintf(out, " (%s)", e.Note)
				}
				fmt.Fprintln(out)
				for _, it := range e.Items {
					fmt.Fprintf(out, "    %s x%.1f: %.1fg protein, %d cal\n", it.Name, it.Quantity, it.ProteinG, it.Calories)
				}
			}
			fmt.Fprintf(out, "Total: %.1fg protein, %d calories over %d entries\n", totals.ProteinG, totals.Calories, totals.Entries)
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete a meal entry and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := service.DeleteMealEntry(db, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal entry %d\n", id)
			return nil
		})
	},
}

var mealTotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show protein and calorie totals for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			totals, err := service.MealTotalsForDate(db, mealDate)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Date\t%s\n", totals.Date)
			fmt.Fprintf(w, "Entries\t%d\n", totals.Entries)
			fmt.Fprintf(w, "Protein\t%.1fg\n", totals.ProteinG)
			fmt.Fprintf(w, "Calories\t%d\n", totals.Calories)
			return w.Flush()
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{mealLogCmd, mealListCmd, mealTotalsCmd} {
		c.Flags().StringVar(&mealDate, "date", "", "Date (YYYY-MM-DD, default today)")
	}
	mealLogCmd.Flags().StringVar(&mealTime, "time", "", "Time logged (HH:MM, default now)")
	mealLogCmd.Flags().StringVar(&mealType, "type", "", "Meal type (lunch, dinner, snack)")
	mealLogCmd.Flags().StringVar(&mealNote, "note", "", "Free-form note")

	for _, c := range []*cobra.Command{mealLogCmd, mealAddItemCmd} {
		c.Flags().Int64Var(&mealFoodID, "food", 0, "Food id from the pick list")
		c.Flags().Float64Var(&mealProtein, "protein", 0, "Protein grams (ad-hoc item)")
		c.Flags().IntVar(&mealCalories, "calories", 0, "Calories (ad-hoc item)")
		c.Flags().Float64Var(&mealQuantity, "qty", 1, "Quantity multiplier")
	}

	mealCmd.AddCommand(mealLogCmd)
	mealCmd.AddCommand(mealAddItemCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	mealCmd.AddCommand(mealTotalsCmd)
	rootCmd.AddCommand(mealCmd)
}
