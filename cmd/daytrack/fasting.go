package daytrack

import (
	"fmt"
	"time"

	"daytrack/internal/service"

	"github.com/spf13/cobra"
)

var fastingCmd = &cobra.Command{
	Use:   "fasting",
	Short: "Show the live fasting countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := service.CalculateFastingState(time.Now())
		out := cmd.OutOrStdout()
		if state.IsFasting {
			fmt.Fprintf(out, "Fasting: %dh%02dm until the eating window opens (%.0f%% through the fast)\n",
				state.Hours, state.Minutes, state.Progress*100)
			return nil
		}
		fmt.Fprintf(out, "Eating window open: %dh%02dm until it closes\n", state.Hours, state.Minutes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fastingCmd)
}
