package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/segyhp/fincalc-engine/internal/config"
	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/service"
	"github.com/segyhp/fincalc-engine/internal/validation"
	"github.com/segyhp/fincalc-engine/pkg/logger"
)

var errInvalidInput = errors.New("invalid input")

// Execute runs the fincalc command tree.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "fincalc",
		Short: "Loan, deposit, MSME and SHG calculators",
		Long: `fincalc runs the same calculation engines as the fincalc HTTP server
from the command line. Results are printed as labelled summaries.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	// every command shares one service built from the environment
	newService := func(cmd *cobra.Command) (*service.CalculatorService, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		log := logger.NewWithWriter(logger.Config{Level: logLevel, Format: "text"}, cmd.ErrOrStderr())
		return service.NewCalculatorService(nil, cfg, log), nil
	}

	rootCmd.AddCommand(
		newLoanCmd(newService),
		newFDCmd(newService),
		newRDCmd(newService),
		newSHGCmd(newService),
		newMSMECmd(newService),
		newVersionCmd(),
	)
	return rootCmd
}

type serviceFactory func(cmd *cobra.Command) (*service.CalculatorService, error)

func printSummary(w io.Writer, items []domain.SummaryItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range items {
		value := item.Text
		if item.Kind != domain.SummaryOption {
			value = item.Value.String()
		}
		fmt.Fprintf(tw, "%s:\t%s\n", item.Label, value)
	}
	return tw.Flush()
}

func printSchedule(w io.Writer, entries []domain.AmortizationEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tEMI\tPrincipal\tInterest\tBalance\t")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", e.Month, e.EMI.StringFixed(2), e.Principal.StringFixed(2), e.Interest.StringFixed(2), e.Balance.StringFixed(2))
	}
	return tw.Flush()
}

// checkInput prints advisory validation errors and refuses to calculate.
func checkInput(w io.Writer, res validation.Result) error {
	if res.IsValid {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
		msgs = append(msgs, fe.Field)
	}
	return fmt.Errorf("%w: %s", errInvalidInput, strings.Join(msgs, ", "))
}
