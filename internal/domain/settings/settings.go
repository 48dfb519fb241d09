// Where: cli/internal/domain/settings/settings.go
// What: Ordered configuration values collected by the setup wizard.
// Why: Preserve prompt order so the generated .env is stable across runs.
package settings

// Configuration variable names, in the order the wizard asks for them.
const (
	BaseURL      = "BASE_URL"
	WidgetDomain = "WIDGET_DOMAIN"

	GoogleClientID     = "GOOGLE_CLIENT_ID"
	GoogleClientSecret = "GOOGLE_CLIENT_SECRET"
	GitHubClientID     = "GITHUB_CLIENT_ID"
	GitHubClientSecret = "GITHUB_CLIENT_SECRET"
	OAuthIssuer        = "OAUTH_ISSUER"
	OAuthJWKSURI       = "OAUTH_JWKS_URI"

	StripePublishableKey      = "STRIPE_PUBLISHABLE_KEY"
	StripeSecretKey           = "STRIPE_SECRET_KEY"
	StripeWebhookSecret       = "STRIPE_WEBHOOK_SECRET"
	StripeSubscriptionPriceID = "STRIPE_SUBSCRIPTION_PRICE_ID"
	StripeOneTimePriceID      = "STRIPE_ONETIME_PRICE_ID"
	StripeMeteredPriceID      = "STRIPE_METERED_PRICE_ID"

	CookieEncryptionKey = "COOKIE_ENCRYPTION_KEY"

	KVNamespaceID = "OAUTH_KV_NAMESPACE_ID"
	KVPreviewID   = "OAUTH_KV_PREVIEW_ID"
)

// Entry is a single key/value pair.
type Entry struct {
	Key   string
	Value string
}

// Settings is a string mapping that remembers insertion order.
// The zero value is ready to use.
type Settings struct {
	keys   []string
	values map[string]string
}

// Set stores value under key. Updating an existing key keeps its position.
func (s *Settings) Set(key, value string) {
	if s.values == nil {
		s.values = map[string]string{}
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Value returns the value for key, or an empty string.
func (s *Settings) Value(key string) string {
	return s.values[key]
}

// Entries returns a copy of all entries in insertion order.
func (s *Settings) Entries() []Entry {
	entries := make([]Entry, 0, len(s.keys))
	for _, key := range s.keys {
		entries = append(entries, Entry{Key: key, Value: s.values[key]})
	}
	return entries
}

// IsProvisioningKey reports whether key holds a provisioned namespace
// identifier. Those values belong in the wrangler config, not the .env file.
func IsProvisioningKey(key string) bool {
	return key == KVNamespaceID || key == KVPreviewID
}
