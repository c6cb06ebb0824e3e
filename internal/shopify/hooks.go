package shopify

import (
	"context"
	"errors"
	"fmt"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/db"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// ShopRepository is the part of db.ShopStore the hooks use.
type ShopRepository interface {
	UpsertFromSession(ctx context.Context, session shopkit.Session) (*db.Shop, error)
	MarkUninstalled(ctx context.Context, domain string) error
}

// SessionRepository is the part of db.SessionStore the hooks use.
type SessionRepository interface {
	FindByShop(ctx context.Context, shop string) ([]shopkit.Session, error)
	DeleteMany(ctx context.Context, ids []string) error
}

// Hooks reacts to authentication and webhook events.
type Hooks struct {
	shops    ShopRepository
	sessions SessionRepository
	logger   shopkit.Logger
}

// NewHooks creates Hooks over the given stores.
func NewHooks(shops ShopRepository, sessions SessionRepository, logger shopkit.Logger) *Hooks {
	return &Hooks{shops: shops, sessions: sessions, logger: logger}
}

// AfterAuth records the shop behind a freshly authenticated session.
// Store failures are logged, never returned, so an install is not blocked
// by the shop table.
func (h *Hooks) AfterAuth(ctx context.Context, session shopkit.Session) {
	h.logger.Info("Shop authenticated: %s", session.Shop)

	if _, err := h.shops.UpsertFromSession(ctx, session); err != nil {
		h.logger.Error("Error in afterAuth hook: %v", err)
		return
	}
	h.logger.Success("Shop record created/updated")
}

// HandleWebhook dispatches a verified webhook by topic. Unknown topics are
// logged and ignored.
func (h *Hooks) HandleWebhook(ctx context.Context, wh *Webhook) error {
	h.logger.Info("Received %s webhook for %s", wh.Topic, wh.Shop)

	switch wh.Topic {
	case TopicAppUninstalled:
		return h.appUninstalled(ctx, wh.Shop)
	default:
		h.logger.Verbose("Unhandled webhook topic: %s", wh.Topic)
		return nil
	}
}

// appUninstalled cancels the shop and drops its sessions. Shopify may
// deliver the webhook more than once, so a shop without sessions has
// already been handled.
func (h *Hooks) appUninstalled(ctx context.Context, shop string) error {
	sessions, err := h.sessions.FindByShop(ctx, shop)
	if err != nil {
		return fmt.Errorf("failed to look up sessions for %s: %w", shop, err)
	}
	if len(sessions) == 0 {
		h.logger.Verbose("No session for %s, nothing to uninstall", shop)
		return nil
	}

	switch err := h.shops.MarkUninstalled(ctx, shop); {
	case errors.Is(err, db.ErrShopNotFound):
		h.logger.Warn("No shop record for %s", shop)
	case err != nil:
		return err
	}

	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	if err := h.sessions.DeleteMany(ctx, ids); err != nil {
		return err
	}

	h.logger.Info("Shop %s uninstalled", shop)
	return nil
}
