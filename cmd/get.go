package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"intersdk/internal/billing"
	"intersdk/pkg/models"
)

var getCmd = &cobra.Command{
	Use:   "get [our-number]",
	Short: "Retrieve a boleto by its bank-assigned identifier",
	Long: `Retrieve the current server-side state of a boleto by its
bank-assigned identifier (nossoNumero) and print it as JSON, including the
status, status date and amount received so far.`,
	Example: `  inter get 00123456789`,
	Args:    cobra.ExactArgs(1),
	RunE:    runGet,
}

// boletoOutput is the JSON view printed by the get command.
type boletoOutput struct {
	OurNumber          string                    `json:"our_number"`
	ReferenceCode      string                    `json:"reference_code"`
	Barcode            string                    `json:"barcode"`
	DigitLine          string                    `json:"digit_line"`
	NominalValue       string                    `json:"nominal_value"`
	DueDate            string                    `json:"due_date"`
	DueLimitDate       string                    `json:"due_limit_date"`
	IssueDate          string                    `json:"issue_date"`
	Situation          models.Situation          `json:"situation"`
	SituationDate      string                    `json:"situation_date"`
	Origin             string                    `json:"origin"`
	Account            string                    `json:"account"`
	SpeciesCode        string                    `json:"species_code"`
	TotalReceived      string                    `json:"total_received,omitempty"`
	CancellationReason models.CancellationReason `json:"cancellation_reason,omitempty"`
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := newBillingService()
	if err != nil {
		return err
	}
	boleto, err := service.Retrieve(ctx, args[0])
	if err != nil {
		return err
	}

	out, err := buildBoletoOutput(args[0], boleto)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func buildBoletoOutput(ourNumber string, b *billing.Boleto) (*boletoOutput, error) {
	barcode, err := b.Barcode()
	if err != nil {
		return nil, err
	}
	digitLine, err := b.DigitLine()
	if err != nil {
		return nil, err
	}
	issueDate, err := b.IssueDate()
	if err != nil {
		return nil, err
	}
	situation, err := b.Situation()
	if err != nil {
		return nil, err
	}
	situationDate, err := b.SituationDate()
	if err != nil {
		return nil, err
	}
	origin, err := b.Origin()
	if err != nil {
		return nil, err
	}
	account, err := b.Account()
	if err != nil {
		return nil, err
	}
	speciesCode, err := b.SpeciesCode()
	if err != nil {
		return nil, err
	}
	totalReceived, err := b.TotalReceived()
	if err != nil {
		return nil, err
	}
	reason, err := b.CancellationReason()
	if err != nil {
		return nil, err
	}

	out := &boletoOutput{
		OurNumber:          ourNumber,
		ReferenceCode:      b.ReferenceCode(),
		Barcode:            barcode,
		DigitLine:          digitLine,
		NominalValue:       b.NominalValue().StringFixed(2),
		DueDate:            b.DueDate().Format(models.DateLayout),
		DueLimitDate:       b.DueLimitDate().Format(models.DateLayout),
		IssueDate:          issueDate.Format(models.DateLayout),
		Situation:          situation,
		SituationDate:      situationDate.Format(models.DateLayout),
		Origin:             origin,
		Account:            account,
		SpeciesCode:        speciesCode,
		CancellationReason: reason,
	}
	if totalReceived != nil {
		out.TotalReceived = totalReceived.StringFixed(2)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(getCmd)
}
