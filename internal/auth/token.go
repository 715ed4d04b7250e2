package auth

import (
	"fmt"
	"strings"
	"time"

	"intersdk/pkg/models"
)

// expiryMargin is the safety window before the declared expiry during which
// a cached token is already treated as expired.
const expiryMargin = time.Minute

// Token is one OAuth2 access credential. A token is never mutated after
// creation; refresh and escalation replace it wholesale.
type Token struct {
	Type        string
	AccessToken string
	Scope       []models.Scope
	ExpiresAt   time.Time
}

// Covers reports whether the token's granted scope is a superset of scopes.
func (t *Token) Covers(scopes []models.Scope) bool {
	for _, want := range scopes {
		found := false
		for _, have := range t.Scope {
			if want == have {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ExpiredAt reports whether the token may no longer be used at the given
// instant, applying the safety margin.
func (t *Token) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt.Add(-expiryMargin))
}

// AuthorizationHeader composes the Authorization header value for the token.
func (t *Token) AuthorizationHeader() string {
	return fmt.Sprintf("%s %s", t.Type, t.AccessToken)
}

// tokenFromResponse builds a Token from the wire response, anchoring the
// expiry at issuedAt plus the server-declared lifetime.
func tokenFromResponse(resp *models.TokenResponse, issuedAt time.Time) *Token {
	var scope []models.Scope
	for _, s := range strings.Fields(resp.Scope) {
		scope = append(scope, models.Scope(s))
	}
	return &Token{
		Type:        resp.TokenType,
		AccessToken: resp.AccessToken,
		Scope:       scope,
		ExpiresAt:   issuedAt.Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
}
