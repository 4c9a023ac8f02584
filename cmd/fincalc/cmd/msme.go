package cmd

import (
	"github.com/spf13/cobra"

	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/msme"
	"github.com/segyhp/fincalc-engine/internal/validation"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

func newMSMECmd(newService serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msme",
		Short: "MSME working-capital calculators",
	}
	cmd.AddCommand(newNayakCmd(newService))
	return cmd
}

func newNayakCmd(newService serviceFactory) *cobra.Command {
	var turnover string

	cmd := &cobra.Command{
		Use:     "nayak",
		Short:   "Working-capital limit by the turnover method",
		Example: "  fincalc msme nayak --turnover 10000000",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.MSMEInput{Turnover: utils.ToDecimal(turnover)}
			if err := checkInput(cmd.ErrOrStderr(), validation.ValidateMSMEInput(in)); err != nil {
				return err
			}
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), msme.Summary(in.Turnover, svc.NayakWC(in.Turnover)))
		},
	}
	cmd.Flags().StringVar(&turnover, "turnover", "", "projected annual turnover")
	_ = cmd.MarkFlagRequired("turnover")
	return cmd
}
