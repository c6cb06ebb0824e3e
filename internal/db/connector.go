package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/config"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/retry"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// Pool settings for a small web app.
const (
	DefaultMaxConns        = 10
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 5 * time.Minute
	DefaultMaxConnLifetime = time.Hour
)

// Connector opens the process-wide connection pool.
type Connector interface {
	Connect(ctx context.Context) (*Database, error)
}

// Database is an open connection pool plus whatever the auth method needs
// to keep alive alongside it.
type Database struct {
	Pool    *pgxpool.Pool
	closers []func()
}

// Close closes the pool and releases auth resources.
func (d *Database) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
	for _, c := range d.closers {
		c()
	}
}

// Connect opens the pool described by cfg, retrying transient failures.
// Errors match shopkit.ErrConnectionFailed, or shopkit.ErrUnsupportedAuthMethod
// for an unknown DATABASE_AUTH.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger shopkit.Logger) (*Database, error) {
	connector, err := NewConnector(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return connector.Connect(ctx)
}

// NewConnector returns the Connector for cfg.AuthMethod.
func NewConnector(ctx context.Context, cfg config.DatabaseConfig, logger shopkit.Logger) (Connector, error) {
	switch cfg.AuthMethod {
	case "", config.AuthPassword:
		return &poolConnector{url: cfg.URL, logger: logger}, nil
	case config.AuthAWS:
		return newAWSConnector(ctx, cfg, logger)
	case config.AuthAzure:
		return newAzureConnector(cfg, logger)
	case config.AuthGoogle:
		return newGoogleConnector(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", shopkit.ErrUnsupportedAuthMethod, cfg.AuthMethod)
	}
}

// poolConnector connects with DATABASE_URL, optionally adjusting each new
// connection's config before it dials.
type poolConnector struct {
	url    string
	logger shopkit.Logger

	// beforeConnect runs for every physical connection the pool opens.
	beforeConnect func(ctx context.Context, cc *pgx.ConnConfig) error

	// prepare adjusts the pool config once, after parsing.
	prepare func(pc *pgxpool.Config) error

	closers []func()
}

func (c *poolConnector) Connect(ctx context.Context) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(c.url)
	if err != nil {
		c.close()
		return nil, fmt.Errorf("%w: invalid DATABASE_URL: %v", shopkit.ErrConnectionFailed, err)
	}
	configurePool(poolConfig)
	poolConfig.BeforeConnect = c.beforeConnect
	if c.prepare != nil {
		if err := c.prepare(poolConfig); err != nil {
			c.close()
			return nil, fmt.Errorf("%w: %v", shopkit.ErrConnectionFailed, err)
		}
	}

	host, port, database := poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port, poolConfig.ConnConfig.Database

	r := retry.New(retry.PostgresClassifier{}, retry.NewBackoff(shopkit.DefaultRetryMaxAttempts)).
		OnRetry(func(attempt int, err error, delay time.Duration) {
			c.logger.Verbose("Database not reachable (%v), retry %d in %v", err, attempt+1, delay.Round(time.Millisecond))
		})

	var pool *pgxpool.Pool
	err = r.Do(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		c.close()
		return nil, wrapConnectionError(err, host, port, database)
	}

	c.logger.Verbose("Connected to database %s on %s:%d", database, host, port)
	return &Database{Pool: pool, closers: c.closers}, nil
}

func (c *poolConnector) close() {
	for _, fn := range c.closers {
		fn()
	}
}

func configurePool(pc *pgxpool.Config) {
	pc.MaxConns = DefaultMaxConns
	pc.MinConns = DefaultMinConns
	pc.MaxConnIdleTime = DefaultMaxConnIdleTime
	pc.MaxConnLifetime = DefaultMaxConnLifetime
}

// wrapConnectionError adds guidance to raw pgx connection errors.
func wrapConnectionError(err error, host string, port uint16, database string) error {
	msg := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	var hint string
	switch {
	case strings.Contains(msg, "connection refused"):
		hint = fmt.Sprintf("connection refused to %s\n\nIs PostgreSQL running? Start it with: docker compose up -d postgres", addr)
	case strings.Contains(msg, "no such host"):
		hint = fmt.Sprintf("cannot resolve host %q\n\nCheck the host in DATABASE_URL", host)
	case strings.Contains(msg, "password authentication failed"):
		hint = fmt.Sprintf("password authentication failed for database %q\n\nCheck the user and password in DATABASE_URL", database)
	case strings.Contains(msg, "does not exist"):
		hint = fmt.Sprintf("database %q does not exist\n\nTo create it: createdb %s", database, database)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		hint = fmt.Sprintf("connection timed out to %s", addr)
	default:
		return fmt.Errorf("%w: %w", shopkit.ErrConnectionFailed, err)
	}
	return fmt.Errorf("%w: %s\n\nOriginal error: %w", shopkit.ErrConnectionFailed, hint, err)
}
