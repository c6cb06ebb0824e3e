package cli

import (
	"github.com/spf13/cobra"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/config"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/db"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/logging"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/server"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/shopify"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the webhook and health endpoints",
	Long: `Start the HTTP server:

  GET  /healthz   reports whether the database is reachable
  POST /webhooks  receives Shopify webhooks (HMAC-verified)

Configuration comes from shopkit.yaml, .env and the environment; see
SHOPIFY_API_KEY, SHOPIFY_API_SECRET, DATABASE_URL and PORT.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveMigrate bool

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the database schema before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	root, err := getProjectRoot(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if serveMigrate {
		if err := db.Migrate(ctx, database.Pool); err != nil {
			return err
		}
	}

	hooks := shopify.NewHooks(db.NewShopStore(database.Pool), db.NewSessionStore(database.Pool), logger)
	srv := server.New(server.Config{
		Addr:          cfg.Addr(),
		WebhookSecret: cfg.Shopify.APISecret,
		Webhooks:      hooks,
		DB:            database.Pool,
		Logger:        logger,
	})

	logger.Info("Serving %s (%s)", cfg.Shopify.AppURL, cfg.Env)
	return srv.Serve(ctx)
}
