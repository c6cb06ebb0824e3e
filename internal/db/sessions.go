package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// ErrSessionNotFound is returned when no session has the requested id.
var ErrSessionNotFound = errors.New("session not found")

const sessionColumns = `id, shop, state, is_online, COALESCE(scope, ''), expires, access_token, user_id`

// SessionStore persists Shopify sessions in the sessions table.
type SessionStore struct {
	q Querier
}

// NewSessionStore creates a SessionStore over q.
func NewSessionStore(q Querier) *SessionStore {
	return &SessionStore{q: q}
}

// Store inserts or replaces a session.
func (s *SessionStore) Store(ctx context.Context, session shopkit.Session) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO sessions (id, shop, state, is_online, scope, expires, access_token, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			shop         = EXCLUDED.shop,
			state        = EXCLUDED.state,
			is_online    = EXCLUDED.is_online,
			scope        = EXCLUDED.scope,
			expires      = EXCLUDED.expires,
			access_token = EXCLUDED.access_token,
			user_id      = EXCLUDED.user_id`,
		session.ID, session.Shop, session.State, session.IsOnline,
		nullIfEmpty(session.Scope), session.Expires, session.AccessToken, session.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

// Load returns the session with the given id.
func (s *SessionStore) Load(ctx context.Context, id string) (*shopkit.Session, error) {
	rows, err := s.q.Query(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	session, err := pgx.CollectExactlyOneRow(rows, scanSession)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return &session, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// DeleteMany removes the sessions with the given ids.
func (s *SessionStore) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.q.Exec(ctx, `DELETE FROM sessions WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete %d session(s): %w", len(ids), err)
	}
	return nil
}

// FindByShop returns every session for shop, ordered by id.
func (s *SessionStore) FindByShop(ctx context.Context, shop string) ([]shopkit.Session, error) {
	rows, err := s.q.Query(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE shop = $1 ORDER BY id`, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for %s: %w", shop, err)
	}
	sessions, err := pgx.CollectRows(rows, scanSession)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for %s: %w", shop, err)
	}
	return sessions, nil
}

func scanSession(row pgx.CollectableRow) (shopkit.Session, error) {
	var s shopkit.Session
	err := row.Scan(&s.ID, &s.Shop, &s.State, &s.IsOnline, &s.Scope, &s.Expires, &s.AccessToken, &s.UserID)
	return s, err
}
