package cmd

import (
	"github.com/spf13/cobra"

	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/validation"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

type depositFlags struct {
	principal string
	rate      string
	tenure    int
	frequency int
}

func (f *depositFlags) bind(cmd *cobra.Command, principalUsage string) {
	cmd.Flags().StringVar(&f.principal, "principal", "", principalUsage)
	cmd.Flags().StringVar(&f.rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().IntVar(&f.tenure, "tenure", 0, "tenure in months")
	cmd.Flags().IntVar(&f.frequency, "frequency", 0, "compounding periods per year (default from configuration)")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("tenure")
}

func (f *depositFlags) input() domain.DepositInput {
	return domain.DepositInput{
		Principal:            utils.ToDecimal(f.principal),
		AnnualRate:           utils.ToDecimal(f.rate),
		TenureMonths:         f.tenure,
		CompoundingFrequency: f.frequency,
	}
}

func newFDCmd(newService serviceFactory) *cobra.Command {
	var flags depositFlags

	cmd := &cobra.Command{
		Use:     "fd",
		Short:   "Calculate fixed deposit maturity",
		Example: "  fincalc fd --principal 10000 --rate 10 --tenure 12",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := flags.input()
			if err := checkInput(cmd.ErrOrStderr(), validation.ValidateDepositInput(in)); err != nil {
				return err
			}
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			res := svc.FDMaturity(in)
			return printSummary(cmd.OutOrStdout(), svc.DepositSummary(domain.ProductFD, in, res))
		},
	}
	flags.bind(cmd, "deposit amount")
	return cmd
}

func newRDCmd(newService serviceFactory) *cobra.Command {
	var flags depositFlags

	cmd := &cobra.Command{
		Use:     "rd",
		Short:   "Calculate recurring deposit maturity",
		Example: "  fincalc rd --principal 1000 --rate 7.5 --tenure 12",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := flags.input()
			if err := checkInput(cmd.ErrOrStderr(), validation.ValidateDepositInput(in)); err != nil {
				return err
			}
			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			res := svc.RDMaturity(in)
			return printSummary(cmd.OutOrStdout(), svc.DepositSummary(domain.ProductRD, in, res))
		},
	}
	flags.bind(cmd, "monthly installment")
	return cmd
}
