package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// Webhook request headers.
const (
	HeaderHmac   = "X-Shopify-Hmac-Sha256"
	HeaderTopic  = "X-Shopify-Topic"
	HeaderShop   = "X-Shopify-Shop-Domain"
	HeaderID     = "X-Shopify-Webhook-Id"
	HeaderAPIVer = "X-Shopify-API-Version"
)

// MaxWebhookBody caps how much of a webhook body is read.
const MaxWebhookBody = 1 << 20

// Topics the app handles.
const (
	TopicAppUninstalled = "APP_UNINSTALLED"
)

// Webhook is a verified webhook delivery.
type Webhook struct {
	ID         string
	Topic      string
	Shop       string
	APIVersion string
	Payload    json.RawMessage
}

// NormalizeTopic converts "app/uninstalled" to "APP_UNINSTALLED".
func NormalizeTopic(topic string) string {
	return strings.ToUpper(strings.NewReplacer("/", "_", ".", "_").Replace(strings.TrimSpace(topic)))
}

// Sign returns the base64 HMAC-SHA256 of body under secret, as Shopify
// sends it in X-Shopify-Hmac-Sha256.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyWebhook reports whether header is the signature of body under secret.
func VerifyWebhook(secret string, body []byte, header string) bool {
	if secret == "" || header == "" {
		return false
	}
	got, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

// ParseWebhook reads and verifies a webhook request. A missing or wrong
// signature yields an error matching shopkit.ErrWebhookUnauthorized.
func ParseWebhook(r *http.Request, secret string) (*Webhook, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxWebhookBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook body: %w", err)
	}
	if len(body) > MaxWebhookBody {
		return nil, fmt.Errorf("webhook body exceeds %d bytes", MaxWebhookBody)
	}

	if !VerifyWebhook(secret, body, r.Header.Get(HeaderHmac)) {
		return nil, shopkit.ErrWebhookUnauthorized
	}

	topic := NormalizeTopic(r.Header.Get(HeaderTopic))
	shop := strings.TrimSpace(r.Header.Get(HeaderShop))
	if topic == "" || shop == "" {
		return nil, fmt.Errorf("webhook is missing %s or %s", HeaderTopic, HeaderShop)
	}

	wh := &Webhook{
		ID:         r.Header.Get(HeaderID),
		Topic:      topic,
		Shop:       shop,
		APIVersion: r.Header.Get(HeaderAPIVer),
	}
	if len(body) > 0 {
		if !json.Valid(body) {
			return nil, fmt.Errorf("webhook payload is not valid JSON")
		}
		wh.Payload = body
	}
	return wh, nil
}
