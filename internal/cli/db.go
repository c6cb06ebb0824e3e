package cli

import (
	"github.com/spf13/cobra"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/config"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/db"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/logging"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database commands",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the shops and sessions tables",
	Long: `Apply the app's schema to the database named by DATABASE_URL.

Running it again is safe; existing tables are left as they are.`,
	Args: cobra.NoArgs,
	RunE: runDBMigrate,
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}

func runDBMigrate(cmd *cobra.Command, args []string) error {
	root, err := getProjectRoot(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(ctx, database.Pool); err != nil {
		return err
	}
	logger.Success("Database schema is up to date")
	return nil
}
