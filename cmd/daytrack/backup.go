package daytrack

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"daytrack/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	backupDir    string
	backupForce  bool
	backupBucket string
	backupKey    string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up and restore the database",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Copy the database into the backup directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		dir, err := resolveBackupDir()
		if err != nil {
			return err
		}
		out := filepath.Join(dir, fmt.Sprintf("daytrack-%s.db", time.Now().Format("20060102-150405")))
		info, err := service.CreateBackup(path, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d bytes, sha256 %s)\n", info.Path, info.SizeBytes, info.Checksum[:12])
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveBackupDir()
		if err != nil {
			return err
		}
		backups, err := service.ListBackups(dir)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tSIZE\tPATH")
		for _, b := range backups {
			fmt.Fprintf(w, "%s\t%d\t%s\n", b.CreatedAt.Format("2006-01-02 15:04"), b.SizeBytes, b.Path)
		}
		return w.Flush()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-path>",
	Short: "Restore a backup over the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := service.RestoreBackup(args[0], path, backupForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to %s\n", args[0], path)
		return nil
	},
}

var backupPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the database to S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		path, bucket, key, err := resolveS3Target()
		if err != nil {
			return err
		}
		if err := service.PushBackupS3(cmd.Context(), path, bucket, key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s to s3://%s/%s\n", path, bucket, key)
		return nil
	},
}

var backupPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the database from S3",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		path, bucket, key, err := resolveS3Target()
		if err != nil {
			return err
		}
		if err := service.PullBackupS3(cmd.Context(), path, bucket, key, backupForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pulled s3://%s/%s to %s\n", bucket, key, path)
		return nil
	},
}

func resolveBackupDir() (string, error) {
	if backupDir != "" {
		return backupDir, nil
	}
	path, err := resolveDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "backups"), nil
}

func resolveS3Target() (dbFile, bucket, key string, err error) {
	dbFile, err = resolveDBPath()
	if err != nil {
		return "", "", "", err
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", "", "", err
	}
	bucket, key = backupBucket, backupKey
	if bucket == "" {
		bucket = cfg.S3Bucket
	}
	if key == "" {
		key = cfg.S3Key
	}
	if bucket == "" {
		return "", "", "", fmt.Errorf("no S3 bucket configured; pass --bucket or set s3_bucket in the config file")
	}
	return dbFile, bucket, key, nil
}

func init() {
	backupCmd.PersistentFlags().StringVar(&backupDir, "dir", "", "Backup directory (default <db dir>/backups)")
	backupRestoreCmd.Flags().BoolVar(&backupForce, "force", false, "Overwrite an existing database")
	backupPullCmd.Flags().BoolVar(&backupForce, "force", false, "Overwrite an existing database")
	for _, c := range []*cobra.Command{backupPushCmd, backupPullCmd} {
		c.Flags().StringVar(&backupBucket, "bucket", "", "S3 bucket")
		c.Flags().StringVar(&backupKey, "key", "", "S3 object key")
	}

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupPushCmd)
	backupCmd.AddCommand(backupPullCmd)
	rootCmd.AddCommand(backupCmd)
}
