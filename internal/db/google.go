package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/config"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// newGoogleConnector dials every connection through the Cloud SQL connector
// with IAM database authentication. DATABASE_URL supplies the user and
// database; its host is ignored.
func newGoogleConnector(cfg config.DatabaseConfig, logger shopkit.Logger) (Connector, error) {
	if cfg.CloudSQLInstance == "" {
		return nil, fmt.Errorf("%w: Cloud SQL IAM auth requires CLOUDSQL_INSTANCE (project:region:instance)", shopkit.ErrInvalidConfig)
	}

	c := &poolConnector{url: cfg.URL, logger: logger}
	c.prepare = func(pc *pgxpool.Config) error {
		dialer, err := cloudsqlconn.NewDialer(context.Background(), cloudsqlconn.WithIAMAuthN())
		if err != nil {
			return fmt.Errorf("failed to create Cloud SQL dialer: %w", err)
		}
		c.closers = append(c.closers, func() { dialer.Close() })

		instance := cfg.CloudSQLInstance
		pc.ConnConfig.TLSConfig = nil
		pc.ConnConfig.Fallbacks = nil
		pc.ConnConfig.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.Dial(ctx, instance)
		}
		return nil
	}
	return c, nil
}
