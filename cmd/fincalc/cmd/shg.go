package cmd

import (
	"github.com/spf13/cobra"

	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/shg"
	"github.com/segyhp/fincalc-engine/internal/validation"
	customError "github.com/segyhp/fincalc-engine/pkg/errors"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

func newSHGCmd(newService serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shg",
		Short: "Self-help group loan calculators",
	}
	cmd.AddCommand(newOutstandingCmd(newService))
	return cmd
}

func newOutstandingCmd(newService serviceFactory) *cobra.Command {
	var (
		principal, rate, partial string
		start, review            string
		tenure, missed           int
	)

	cmd := &cobra.Command{
		Use:     "outstanding",
		Short:   "Position of a member loan on a review date",
		Example: "  fincalc shg outstanding --principal 120000 --rate 12 --tenure 12 --start 2024-01-01 --review 2024-07-01",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := utils.ParseDate(start)
			if err != nil {
				return customError.WrapInvalidDate("start", start)
			}
			reviewDate, err := utils.ParseDate(review)
			if err != nil {
				return customError.WrapInvalidDate("review", review)
			}

			in := domain.OutstandingInput{
				Principal:       utils.ToDecimal(principal),
				AnnualRate:      utils.ToDecimal(rate),
				TenureMonths:    tenure,
				StartDate:       startDate,
				ReviewDate:      reviewDate,
				MissedEMIs:      missed,
				PartialPayments: utils.ToDecimal(partial),
			}
			if err := checkInput(cmd.ErrOrStderr(), validation.ValidateOutstandingInput(in)); err != nil {
				return err
			}

			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			res, err := svc.Outstanding(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), shg.Summary(in, res))
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "loan amount")
	cmd.Flags().StringVar(&rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().IntVar(&tenure, "tenure", 0, "tenure in months")
	cmd.Flags().StringVar(&start, "start", "", "disbursement date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&review, "review", "", "review date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&missed, "missed", 0, "number of missed EMIs")
	cmd.Flags().StringVar(&partial, "partial", "", "partial payments made in addition to EMIs")
	for _, name := range []string{"principal", "tenure", "start", "review"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
