package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// ErrShopNotFound is returned when no shop has the requested domain.
var ErrShopNotFound = errors.New("shop not found")

// Shop statuses.
const (
	ShopStatusActive    = "active"
	ShopStatusCancelled = "cancelled"
)

// Shop is an installed store.
type Shop struct {
	ID          uuid.UUID
	Domain      string
	Name        string
	AccessToken string
	Scope       string
	IsOnline    bool
	Status      string
	Settings    map[string]any
	InstalledAt time.Time
	UpdatedAt   time.Time
}

const shopColumns = `id, shop_domain, shop_name, access_token, COALESCE(scope, ''), is_online, status, settings, installed_at, updated_at`

// ShopStore persists shops.
type ShopStore struct {
	q Querier
}

// NewShopStore creates a ShopStore over q.
func NewShopStore(q Querier) *ShopStore {
	return &ShopStore{q: q}
}

// UpsertFromSession records an authenticated shop. A new shop gets an id,
// a name taken from its domain, empty settings and an install time. An
// existing shop gets the session's token, scope and online flag, and is
// marked active again.
func (s *ShopStore) UpsertFromSession(ctx context.Context, session shopkit.Session) (*Shop, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO shops (id, shop_domain, shop_name, access_token, scope, is_online, status, settings, installed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'active', '{}'::jsonb, now(), now())
		ON CONFLICT (shop_domain) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			scope        = EXCLUDED.scope,
			is_online    = EXCLUDED.is_online,
			status       = 'active',
			updated_at   = now()
		RETURNING `+shopColumns,
		uuid.New(), session.Shop, shopkit.ShopName(session.Shop), session.AccessToken,
		nullIfEmpty(session.Scope), session.IsOnline,
	)

	shop, err := scanShop(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert shop %s: %w", session.Shop, err)
	}
	return shop, nil
}

// MarkUninstalled sets the shop's status to cancelled.
func (s *ShopStore) MarkUninstalled(ctx context.Context, domain string) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE shops SET status = $2, updated_at = now() WHERE shop_domain = $1`,
		domain, ShopStatusCancelled)
	if err != nil {
		return fmt.Errorf("failed to mark shop %s uninstalled: %w", domain, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrShopNotFound, domain)
	}
	return nil
}

// Get returns the shop with the given domain.
func (s *ShopStore) Get(ctx context.Context, domain string) (*Shop, error) {
	row := s.q.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops WHERE shop_domain = $1`, domain)
	shop, err := scanShop(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrShopNotFound, domain)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shop %s: %w", domain, err)
	}
	return shop, nil
}

func scanShop(row pgx.Row) (*Shop, error) {
	var shop Shop
	err := row.Scan(
		&shop.ID, &shop.Domain, &shop.Name, &shop.AccessToken, &shop.Scope,
		&shop.IsOnline, &shop.Status, &shop.Settings, &shop.InstalledAt, &shop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
