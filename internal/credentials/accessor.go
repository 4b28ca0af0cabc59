// Package credentials stores and retrieves the bearer token used for every
// authenticated call to the remote API.
package credentials

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode"
)

// TokenKey is the key the token is stored under, matching the browser cookie name.
const TokenKey = "token"

// Store is a persistent key-value store with per-entry expiry.
type Store interface {
	Get(ctx context.Context, key string) (value string, expiresAt time.Time, err error)
	Set(ctx context.Context, key, value string, expiresAt time.Time) error
	Delete(ctx context.Context, key string) error
}

// TokenProvider is what the transport needs: a token or nothing.
type TokenProvider interface {
	Token(ctx context.Context) (string, bool)
}

// Accessor reads and writes the credential token. It never returns errors
// from reads: an absent, expired, or malformed token is simply no token.
type Accessor struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewAccessor(store Store, ttl time.Duration) *Accessor {
	return &Accessor{store: store, ttl: ttl, now: time.Now}
}

// Token returns the stored token, or false if there is none usable.
func (a *Accessor) Token(ctx context.Context) (string, bool) {
	raw, expiresAt, err := a.store.Get(ctx, TokenKey)
	if err != nil {
		slog.Debug("No credential token available", "error", err)
		return "", false
	}
	if !expiresAt.IsZero() && !a.now().Before(expiresAt) {
		return "", false
	}
	token, ok := parseToken(raw)
	if !ok {
		slog.Warn("Ignoring malformed credential token")
	}
	return token, ok
}

// Save stores the token for the configured lifetime.
func (a *Accessor) Save(ctx context.Context, token string) error {
	return a.store.Set(ctx, TokenKey, token, a.now().Add(a.ttl))
}

// Clear removes the token. Failures are logged; the caller has nothing to do about them.
func (a *Accessor) Clear(ctx context.Context) {
	if err := a.store.Delete(ctx, TokenKey); err != nil {
		slog.Warn("Failed to delete credential token", "error", err)
	}
}

// parseToken accepts a plain token or a JSON object holding it (older
// clients stored the cookie value as an object); the first string value
// in key order wins.
func parseToken(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			return "", false
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := obj[k].(string); ok {
				return parseToken(s)
			}
		}
		return "", false
	}
	if raw == "" {
		return "", false
	}
	for _, r := range raw {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", false
		}
	}
	return raw, true
}
