package cmd

import (
	"encoding/json"
	"io"

	"intersdk/internal/auth"
	"intersdk/internal/billing"
	"intersdk/internal/config"
	"intersdk/internal/gateway"
)

// newBillingService wires config, gateway, authenticator and billing service
// for a command invocation.
func newBillingService() (*billing.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	gw, err := gateway.NewClient(cfg.CertificatePath, cfg.PrivateKeyPath)
	if err != nil {
		return nil, err
	}
	authenticator := auth.NewAuthenticator(gw, cfg.BaseURL, cfg.ClientID, cfg.ClientSecret)
	return billing.NewService(gw, authenticator, cfg.BaseURL), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
