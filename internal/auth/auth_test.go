package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intersdk/internal/auth"
	"intersdk/pkg/models"
)

// fakeGateway answers token requests by echoing the requested scope back,
// unless grantScope overrides the grant.
type fakeGateway struct {
	mu         sync.Mutex
	calls      []url.Values
	grantScope *string
	expiresIn  int64
}

func (g *fakeGateway) PostForm(_ context.Context, _ string, form url.Values) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, form)

	scope := form.Get("scope")
	if g.grantScope != nil {
		scope = *g.grantScope
	}
	expiresIn := g.expiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}
	return json.Marshal(models.TokenResponse{
		TokenType:   "Bearer",
		AccessToken: fmt.Sprintf("token-%d", len(g.calls)),
		Scope:       scope,
		ExpiresIn:   expiresIn,
	})
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) requestedScope(i int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[i].Get("scope")
}

func newTestAuthenticator(gw *fakeGateway, now func() time.Time) *auth.Authenticator {
	return auth.NewAuthenticator(gw, "https://api.example.com", "client-id", "client-secret", auth.WithClock(now))
}

func TestToken_ColdFetchRequestsExactScope(t *testing.T) {
	gw := &fakeGateway{}
	a := newTestAuthenticator(gw, time.Now)

	token, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.NoError(t, err)

	assert.Equal(t, 1, gw.callCount())
	assert.Equal(t, "boleto-cobranca.read", gw.requestedScope(0))
	assert.Equal(t, "client_credentials", gw.calls[0].Get("grant_type"))
	assert.Equal(t, "Bearer token-1", token.AuthorizationHeader())
	assert.True(t, token.Covers([]models.Scope{models.ScopeBoletoRead}))
}

func TestToken_CoveredScopeServedFromCache(t *testing.T) {
	gw := &fakeGateway{}
	a := newTestAuthenticator(gw, time.Now)

	first, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.NoError(t, err)
	second, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.NoError(t, err)

	assert.Equal(t, 1, gw.callCount(), "cache hit must not touch the network")
	assert.Same(t, first, second, "cache hit must return the identical credential")
}

func TestToken_PartialOverlapEscalatesWithUnion(t *testing.T) {
	gw := &fakeGateway{}
	a := newTestAuthenticator(gw, time.Now)

	_, err := a.Token(context.Background(), models.ScopeBoletoWrite)
	require.NoError(t, err)
	token, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.NoError(t, err)

	require.Equal(t, 2, gw.callCount())
	assert.Equal(t, "boleto-cobranca.read boleto-cobranca.write", gw.requestedScope(1))
	assert.True(t, token.Covers([]models.Scope{models.ScopeBoletoRead, models.ScopeBoletoWrite}),
		"escalated token must keep serving the previous scope")
}

func TestToken_ExpiredTokenRefetchedWithRequestedScopeOnly(t *testing.T) {
	gw := &fakeGateway{}
	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(gw, func() time.Time { return current })

	_, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.NoError(t, err)

	// Remaining lifetime drops to the 60s safety margin.
	current = current.Add(3540 * time.Second)
	_, err = a.Token(context.Background(), models.ScopeBoletoWrite)
	require.NoError(t, err)

	require.Equal(t, 2, gw.callCount())
	assert.Equal(t, "boleto-cobranca.write", gw.requestedScope(1),
		"an expired token must not contribute its scope to the new request")
}

func TestToken_TokenInsideSafetyMarginStillServed(t *testing.T) {
	gw := &fakeGateway{}
	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	a := newTestAuthenticator(gw, func() time.Time { return current })

	first, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.NoError(t, err)

	// 61 seconds of lifetime left: still outside the margin.
	current = current.Add(3539 * time.Second)
	second, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.NoError(t, err)

	assert.Equal(t, 1, gw.callCount())
	assert.Same(t, first, second)
}

func TestToken_ScopeNotGrantedIsFatal(t *testing.T) {
	granted := "some-other.scope"
	gw := &fakeGateway{grantScope: &granted}
	a := newTestAuthenticator(gw, time.Now)

	_, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrScopeNotGranted)

	var scopeErr *auth.ScopeError
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, []models.Scope{models.ScopeBoletoRead}, scopeErr.Requested)
	assert.Equal(t, []models.Scope{"some-other.scope"}, scopeErr.Granted)
}

func TestToken_EscalationDroppingOldScopeSucceeds(t *testing.T) {
	gw := &fakeGateway{}
	a := newTestAuthenticator(gw, time.Now)

	_, err := a.Token(context.Background(), models.ScopeBoletoWrite)
	require.NoError(t, err)

	// The server grants only the newly requested scope on escalation. The
	// immediate request is still covered, so the call must succeed.
	granted := "boleto-cobranca.read"
	gw.grantScope = &granted
	token, err := a.Token(context.Background(), models.ScopeBoletoRead)
	require.NoError(t, err)

	assert.True(t, token.Covers([]models.Scope{models.ScopeBoletoRead}))
	assert.False(t, token.Covers([]models.Scope{models.ScopeBoletoWrite}))
}

func TestToken_ConcurrentCallersShareOneFetch(t *testing.T) {
	gw := &fakeGateway{}
	a := newTestAuthenticator(gw, time.Now)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Token(context.Background(), models.ScopeBoletoRead)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, gw.callCount())
}
