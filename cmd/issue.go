package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"intersdk/internal/billing"
	"intersdk/pkg/models"
)

var issueCmd = &cobra.Command{
	Use:   "issue [boleto-file]",
	Short: "Issue a boleto from a JSON definition",
	Long: `Issue a boleto described by a JSON file in the API payload shape
(seuNumero, valorNominal, dataVencimento, numDiasAgenda, pagador, optional
beneficiarioFinal / mensagem / desconto1..3 / multa / mora).

The boleto is validated locally before any network call; a violated rule is
reported without contacting the API. On success the server-assigned
identifiers (nossoNumero, codigoBarras, linhaDigitavel) are printed as JSON.`,
	Example: `  # Issue a boleto and print the assigned identifiers
  inter issue boleto.json`,
	Args: cobra.ExactArgs(1),
	RunE: runIssue,
}

func runIssue(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var payload models.BoletoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}
	boleto, err := billing.FromPayload(&payload)
	if err != nil {
		return err
	}

	service, err := newBillingService()
	if err != nil {
		return err
	}
	if err := service.Issue(ctx, boleto); err != nil {
		return err
	}

	ourNumber, err := boleto.OurNumber()
	if err != nil {
		return err
	}
	barcode, err := boleto.Barcode()
	if err != nil {
		return err
	}
	digitLine, err := boleto.DigitLine()
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), models.IssueResponse{
		NossoNumero:    ourNumber,
		CodigoBarras:   barcode,
		LinhaDigitavel: digitLine,
	})
}

func init() {
	rootCmd.AddCommand(issueCmd)
}
