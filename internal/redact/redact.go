package redact

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-datalinks/pkg/domain"
	masker "github.com/goliatone/go-masker"
)

const (
	maskType = "preserveEnds(2,2)"
	// redactedValue replaces a query value the masker could not handle.
	redactedValue = "redacted"
)

var defaultSensitiveParams = []string{
	"token", "access_token", "refresh_token", "id_token",
	"api_key", "apikey", "key",
	"secret", "client_secret", "password", "pass",
	"auth", "signature", "sig",
}

var sensitiveParams = func() map[string]struct{} {
	out := make(map[string]struct{}, len(defaultSensitiveParams))
	for _, name := range defaultSensitiveParams {
		out[name] = struct{}{}
	}
	return out
}()

func init() {
	for _, field := range defaultSensitiveParams {
		masker.Default.RegisterMaskField(field, maskType)
	}
}

// Href masks the values of secret-looking query parameters so the link can
// be logged. Everything else is kept byte for byte.
func Href(href string) string {
	base, query, found := strings.Cut(href, "?")
	if !found || query == "" {
		return href
	}
	fragment := ""
	if idx := strings.IndexByte(query, '#'); idx >= 0 {
		query, fragment = query[:idx], query[idx:]
	}

	pairs := strings.Split(query, "&")
	for i, pair := range pairs {
		key, value, hasValue := strings.Cut(pair, "=")
		if !hasValue || value == "" || !isSensitive(key) {
			continue
		}
		pairs[i] = key + "=" + maskString(value)
	}
	return base + "?" + strings.Join(pairs, "&") + fragment
}

// Links returns the masked hrefs of links, in order.
func Links(links []domain.ResolvedLink) []string {
	if len(links) == 0 {
		return nil
	}
	out := make([]string, len(links))
	for i, link := range links {
		out[i] = Href(link.Href)
	}
	return out
}

func isSensitive(key string) bool {
	if unescaped, err := url.QueryUnescape(key); err == nil {
		key = unescaped
	}
	_, ok := sensitiveParams[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

func maskString(value string) string {
	if masked, err := masker.Default.String(maskType, value); err == nil {
		return masked
	}
	return redactedValue
}
