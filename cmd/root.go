package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"intersdk/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "inter",
	Short: "inter - a command-line client for the Banco Inter partner API",
	Long: `inter is a command-line client for the Banco Inter partner API,
covering the boleto lifecycle: issuance, retrieval (data and PDF) and
cancellation.

Authentication uses OAuth2 client credentials over mutual TLS. Access
tokens are cached per process and transparently re-requested or
scope-escalated as commands need them.

Required environment variables (a .env file is also read):
  INTER_CERTIFICATE_PATH - path to the client certificate issued by the bank
  INTER_PRIVATE_KEY_PATH - path to the matching private key
  INTER_CLIENT_ID        - OAuth client ID
  INTER_CLIENT_SECRET    - OAuth client secret
  INTER_BASE_URL         - API base URL (optional, defaults to production)`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
