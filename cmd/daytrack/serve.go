package daytrack

import (
	"database/sql"
	"fmt"

	"daytrack/internal/api"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API for the companion UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; it carries AWS credentials for backup sync.
		_ = godotenv.Load()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("addr") {
			serveAddr = cfg.ServeAddr
		}

		return withDB(func(db *sql.DB) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Serving API on %s\n", serveAddr)
			return api.NewServer(db).Router().Run(serveAddr)
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8099", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
