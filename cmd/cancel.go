package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"intersdk/pkg/models"
)

var cancelReason string

var cancelCmd = &cobra.Command{
	Use:   "cancel [our-number]",
	Short: "Cancel an issued boleto",
	Long: `Cancel an issued boleto. The reason must be one of the codes the
API accepts: ACERTOS, APEDIDODOCLIENTE, PAGODIRETOAOCLIENTE, SUBSTITUICAO.
An unknown reason is rejected locally without contacting the API.`,
	Example: `  inter cancel 00123456789 --reason APEDIDODOCLIENTE`,
	Args:    cobra.ExactArgs(1),
	RunE:    runCancel,
}

func runCancel(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := newBillingService()
	if err != nil {
		return err
	}
	return service.Cancel(ctx, args[0], models.CancellationReason(cancelReason))
}

func init() {
	cancelCmd.Flags().StringVarP(&cancelReason, "reason", "r", "", "cancellation reason code")
	_ = cancelCmd.MarkFlagRequired("reason")
	rootCmd.AddCommand(cancelCmd)
}
