package shopkit

import (
	"strings"
	"time"
)

// Session is a Shopify OAuth session for one shop. Offline sessions have
// the id "offline_<shop>" and no expiry; online sessions belong to a staff
// user and expire.
type Session struct {
	ID          string
	Shop        string
	State       string
	IsOnline    bool
	Scope       string
	Expires     *time.Time
	AccessToken string
	UserID      *int64
}

// OfflineSessionID returns the id of shop's offline session.
func OfflineSessionID(shop string) string {
	return "offline_" + shop
}

// ShopName returns the first label of a shop domain, such as "acme" for
// "acme.myshopify.com".
func ShopName(domain string) string {
	name, _, _ := strings.Cut(domain, ".")
	return name
}

// IsActive reports whether the session has a token that has not expired at now.
func (s *Session) IsActive(now time.Time) bool {
	if s.AccessToken == "" {
		return false
	}
	return s.Expires == nil || now.Before(*s.Expires)
}
