// Package auth implements OAuth2 client-credentials authentication against
// the partner API with a scoped token cache.
//
// The cache holds at most one live credential. A request is served from the
// cache when the cached token is still valid (with a 60 second safety margin)
// and its scope covers the requested one; otherwise a fresh token is fetched.
// When the cached scope only partially overlaps the requested one, the fetch
// asks for the union of both so the replacement credential keeps serving
// callers of the old scope.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"intersdk/internal/logger"
	"intersdk/pkg/models"
)

// tokenPath is the OAuth2 token endpoint, relative to the API base URL.
const tokenPath = "/oauth/v2/token"

// Gateway is the transport used to reach the token endpoint.
type Gateway interface {
	PostForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error)
}

// Authenticator caches one access token and hands out credentials covering
// requested scopes, fetching or escalating only when the cache cannot serve.
// It is safe for concurrent use; the check-fetch-replace sequence runs under
// a single critical section so overlapping callers cannot race a stale token
// over a newer one.
type Authenticator struct {
	gw           Gateway
	tokenURL     string
	clientID     string
	clientSecret string
	now          func() time.Time
	log          zerolog.Logger

	mu    sync.Mutex
	token *Token
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithClock overrides the time source used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.now = now
	}
}

// NewAuthenticator creates an Authenticator with an empty cache.
func NewAuthenticator(gw Gateway, baseURL, clientID, clientSecret string, opts ...Option) *Authenticator {
	a := &Authenticator{
		gw:           gw,
		tokenURL:     baseURL + tokenPath,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
		log:          logger.WithComponent("auth"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Token returns a credential whose scope covers every requested scope,
// reusing the cached token when possible. A cache miss on scope escalates
// by requesting the union of the cached and requested scopes; if the server
// then drops part of the previously granted scope the call still succeeds
// and the loss is logged as a warning.
func (a *Authenticator) Token(ctx context.Context, scopes ...models.Scope) (*Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var oldScope []models.Scope
	request := scopes
	switch {
	case a.token == nil:
		a.log.Info().Msg("No cached access token")
	case a.token.ExpiredAt(a.now()):
		a.log.Info().Msg("Cached access token is expired")
		a.token = nil
	case a.token.Covers(scopes):
		return a.token, nil
	default:
		a.log.Info().
			Interface("cached_scope", a.token.Scope).
			Interface("requested_scope", scopes).
			Msg("Cached access token does not cover the requested scope")
		oldScope = a.token.Scope
		request = unionScopes(a.token.Scope, scopes)
	}

	resp, err := a.requestToken(ctx, request)
	if err != nil {
		return nil, err
	}
	token := tokenFromResponse(resp, a.now())
	if !token.Covers(scopes) {
		a.log.Error().
			Interface("requested_scope", scopes).
			Interface("granted_scope", token.Scope).
			Msg("Server granted less scope than requested")
		return nil, &ScopeError{Requested: scopes, Granted: token.Scope}
	}
	if oldScope != nil && !token.Covers(oldScope) {
		a.log.Warn().
			Interface("previous_scope", oldScope).
			Interface("granted_scope", token.Scope).
			Msg("Previously granted scope was not retained and has been replaced")
	}
	a.token = token
	a.log.Info().
		Interface("scope", token.Scope).
		Time("expires_at", token.ExpiresAt).
		Msg("Access token obtained")
	return token, nil
}

func (a *Authenticator) requestToken(ctx context.Context, scopes []models.Scope) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", a.clientID)
	form.Set("client_secret", a.clientSecret)
	form.Set("grant_type", "client_credentials")
	form.Set("scope", joinScopes(scopes))

	a.log.Info().
		Interface("scope", scopes).
		Msg("Requesting access token")

	body, err := a.gw.PostForm(ctx, a.tokenURL, form)
	if err != nil {
		return nil, err
	}
	var resp models.TokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	return &resp, nil
}

// unionScopes merges two scope sets, deduplicated and sorted so the
// escalation request is deterministic.
func unionScopes(a, b []models.Scope) []models.Scope {
	seen := make(map[models.Scope]bool, len(a)+len(b))
	var merged []models.Scope
	for _, s := range append(append([]models.Scope{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	return merged
}

func joinScopes(scopes []models.Scope) string {
	parts := make([]string, len(scopes))
	for i, s := range scopes {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}
