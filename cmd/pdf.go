package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var pdfOutput string

var pdfCmd = &cobra.Command{
	Use:   "pdf [our-number]",
	Short: "Download the printable boleto as a PDF file",
	Long: `Download the printable representation of a boleto and write it to
the given output path. The path must not exist yet and must end in .pdf;
an existing file is never overwritten.`,
	Example: `  inter pdf 00123456789 -o boleto.pdf`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPDF,
}

func runPDF(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := newBillingService()
	if err != nil {
		return err
	}
	return service.RetrievePDF(ctx, args[0], pdfOutput)
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "output file path (must end in .pdf)")
	_ = pdfCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(pdfCmd)
}
