package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/validation"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

func newLoanCmd(newService serviceFactory) *cobra.Command {
	var (
		principal, rate, emi string
		tenure               int
		method               string
		withSchedule         bool
	)

	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Calculate loan totals and, optionally, the amortization schedule",
		Example: `  fincalc loan --principal 100000 --rate 12 --tenure 12
  fincalc loan --principal 100000 --rate 10 --tenure 12 --method flat --schedule`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.LoanInput{
				Principal:    utils.ToDecimal(principal),
				AnnualRate:   utils.ToDecimal(rate),
				TenureMonths: tenure,
				Method:       domain.LoanMethod(method),
				EMI:          utils.ToDecimal(emi),
			}
			if err := checkInput(cmd.ErrOrStderr(), validation.ValidateLoanInput(in)); err != nil {
				return err
			}

			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			resp, err := svc.LoanSchedule(cmd.Context(), in)
			if err != nil {
				return err
			}

			if err := printSummary(cmd.OutOrStdout(), resp.Summary); err != nil {
				return err
			}
			if withSchedule {
				fmt.Fprintln(cmd.OutOrStdout())
				return printSchedule(cmd.OutOrStdout(), resp.Schedule)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "loan amount")
	cmd.Flags().StringVar(&rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().IntVar(&tenure, "tenure", 0, "tenure in months")
	cmd.Flags().StringVar(&method, "method", "", "repayment method (reducing, flat, fixed, bullet)")
	cmd.Flags().StringVar(&emi, "emi", "", "override the reducing-balance installment")
	cmd.Flags().BoolVar(&withSchedule, "schedule", false, "print the month-by-month schedule")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("tenure")

	return cmd
}
