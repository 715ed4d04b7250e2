package models

// TokenResponse is the OAuth2 client-credentials token endpoint response.
type TokenResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`      // space-separated granted scopes
	ExpiresIn   int64  `json:"expires_in"` // lifetime in seconds
}
