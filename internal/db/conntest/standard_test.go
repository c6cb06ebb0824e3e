//go:build conntest

package conntest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/db"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/logging"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/testinfra"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

func TestStandardConnection_UserPassword(t *testing.T) {
	database := connect(t, passwordConfig(stdContainer.ConnString))

	var version string
	require.NoError(t, database.Pool.QueryRow(context.Background(), "SELECT version()").Scan(&version))
	assert.Contains(t, version, "PostgreSQL")
}

func TestStandardConnection_WrongPassword(t *testing.T) {
	_, err := db.Connect(context.Background(),
		passwordConfig(withPassword(t, "definitely-wrong-password")), logging.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shopkit.ErrConnectionFailed), "got %v", err)
	assert.Equal(t, shopkit.ExitConnectionError, shopkit.ExitCodeForError(err))
}

func TestStandardConnection_Migrate(t *testing.T) {
	database := connect(t, passwordConfig(stdContainer.ConnString))
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx, database.Pool))

	var tables int
	require.NoError(t, database.Pool.QueryRow(ctx,
		`SELECT count(*) FROM information_schema.tables WHERE table_name IN ('shops', 'sessions')`).Scan(&tables))
	assert.Equal(t, 2, tables)
}

func TestTokenConnection_PasswordFromProvider(t *testing.T) {
	provider := &staticTokenProvider{token: testinfra.PostgresPassword}
	connector := db.NewTokenConnector(withPassword(t, "ignored"), provider, logging.NewNullLogger())

	database, err := connector.Connect(context.Background())
	require.NoError(t, err)
	t.Cleanup(database.Close)

	require.NoError(t, database.Pool.Ping(context.Background()))
	assert.GreaterOrEqual(t, provider.calls, 1)
}

func TestTokenConnection_RejectedToken(t *testing.T) {
	provider := &staticTokenProvider{token: "expired-token"}
	connector := db.NewTokenConnector(stdContainer.ConnString, provider, logging.NewNullLogger())

	_, err := connector.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, shopkit.ErrConnectionFailed), "got %v", err)
}
