package daytrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "daytrack",
	Short: "daytrack tracks fasting, food, supplements, and movement from your terminal",
	Long:  "daytrack is a local-first daily habit tracker: intermittent fasting windows, protein and calorie logging, supplement checklists, boxing and 5x5 sessions, and a stand-up reminder timer.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
