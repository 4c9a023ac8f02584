// Package loan computes EMIs, loan totals and month-by-month amortization schedules.
package loan

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/fincalc-engine/internal/domain"
	customError "github.com/segyhp/fincalc-engine/pkg/errors"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

var twelveHundred = decimal.NewFromInt(1200)

// terms are the unrounded figures shared by the totals and the schedule.
type terms struct {
	method    domain.LoanMethod
	principal decimal.Decimal
	rate      decimal.Decimal // monthly, as a fraction
	months    int

	emi             decimal.Decimal
	monthlyInterest decimal.Decimal
	totalInterest   decimal.Decimal
	totalPayable    decimal.Decimal
	finalPayment    decimal.Decimal
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return utils.SafeDiv(annualRate, twelveHundred)
}

// AnnuityPayment returns the level installment that repays principal over periods
// at rate per period: P * r * (1+r)^n / ((1+r)^n - 1). Periods may be fractional.
func AnnuityPayment(principal, rate, periods decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return utils.SafeDiv(principal, periods)
	}
	factor := utils.Pow(utils.One.Add(rate), periods)
	return utils.SafeDiv(principal.Mul(rate).Mul(factor), factor.Sub(utils.One))
}

func computeTerms(in domain.LoanInput) (terms, error) {
	t := terms{
		method:    domain.ParseLoanMethod(string(in.Method)),
		principal: in.Principal,
		rate:      MonthlyRate(in.AnnualRate),
		months:    in.TenureMonths,
	}
	n := decimal.NewFromInt(int64(in.TenureMonths))
	p := in.Principal

	switch t.method {
	case domain.LoanMethodFlat:
		t.totalInterest = utils.SafeDiv(p.Mul(in.AnnualRate).Mul(n), twelveHundred)
		t.totalPayable = p.Add(t.totalInterest)
		t.emi = utils.SafeDiv(t.totalPayable, n)
		t.monthlyInterest = utils.SafeDiv(t.totalInterest, n)
		t.finalPayment = t.emi

	case domain.LoanMethodFixed:
		annualRate := utils.SafeDiv(in.AnnualRate, utils.Hundred)
		years := utils.SafeDiv(n, utils.Twelve)
		annualEMI := AnnuityPayment(p, annualRate, years)
		t.emi = utils.SafeDiv(annualEMI, utils.Twelve)
		t.monthlyInterest = p.Mul(t.rate)
		t.totalPayable = t.emi.Mul(n)
		t.totalInterest = t.totalPayable.Sub(p)
		t.finalPayment = t.emi

	case domain.LoanMethodBullet:
		t.emi = decimal.Zero
		t.finalPayment = p.Mul(utils.PowInt(utils.One.Add(t.rate), int64(in.TenureMonths)))
		t.monthlyInterest = p.Mul(t.rate)
		t.totalInterest = t.finalPayment.Sub(p)
		t.totalPayable = t.finalPayment

	default:
		t.monthlyInterest = p.Mul(t.rate)
		t.emi = AnnuityPayment(p, t.rate, n)
		// a computed annuity always exceeds P*r; only an override can fall short
		if in.EMI.IsPositive() {
			t.emi = in.EMI
			if t.rate.IsPositive() && t.emi.LessThanOrEqual(t.monthlyInterest) {
				return terms{}, customError.WrapNegativeAmortization(
					utils.RoundCurrency(t.emi).StringFixed(2),
					utils.RoundCurrency(t.monthlyInterest).StringFixed(2),
				)
			}
		}
		t.totalPayable = t.emi.Mul(n)
		t.totalInterest = t.totalPayable.Sub(p)
		t.finalPayment = t.emi
	}

	return t, nil
}

func degenerate(in domain.LoanInput) bool {
	return !in.Principal.IsPositive() || in.TenureMonths <= 0
}

// CalculateTotals returns the EMI and headline totals of a loan. Non-positive
// principal or tenure yields zero totals. The only error is a reducing-balance
// EMI that does not cover the first month's interest.
func CalculateTotals(in domain.LoanInput) (domain.LoanTotals, error) {
	if degenerate(in) {
		return domain.LoanTotals{}, nil
	}
	t, err := computeTerms(in)
	if err != nil {
		return domain.LoanTotals{}, err
	}
	return domain.LoanTotals{
		EMI:             utils.RoundCurrency(t.emi),
		MonthlyInterest: utils.RoundCurrency(t.monthlyInterest),
		TotalInterest:   utils.RoundCurrency(t.totalInterest),
		TotalPayable:    utils.RoundCurrency(t.totalPayable),
		FinalPayment:    utils.RoundCurrency(t.finalPayment),
	}, nil
}

// GenerateSchedule simulates the loan month by month. Every figure is rounded as
// it is produced; the final month settles whatever balance remains so the
// schedule always closes at exactly zero.
func GenerateSchedule(in domain.LoanInput) ([]domain.AmortizationEntry, error) {
	if degenerate(in) {
		return []domain.AmortizationEntry{}, nil
	}
	t, err := computeTerms(in)
	if err != nil {
		return nil, err
	}

	switch t.method {
	case domain.LoanMethodFlat:
		return flatSchedule(t), nil
	case domain.LoanMethodBullet:
		return bulletSchedule(t), nil
	default:
		return decliningSchedule(t), nil
	}
}

// decliningSchedule charges interest on the outstanding balance (reducing and fixed).
func decliningSchedule(t terms) []domain.AmortizationEntry {
	emi := utils.RoundCurrency(t.emi)
	remaining := utils.RoundCurrency(t.principal)
	entries := make([]domain.AmortizationEntry, 0, t.months)

	for month := 1; month <= t.months; month++ {
		interest := utils.RoundCurrency(remaining.Mul(t.rate))
		principal := emi.Sub(interest)
		if month == t.months || principal.GreaterThan(remaining) {
			principal = remaining
		}
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		remaining = remaining.Sub(principal)

		entries = append(entries, domain.AmortizationEntry{
			Month:     month,
			EMI:       principal.Add(interest),
			Principal: principal,
			Interest:  interest,
			Balance:   remaining,
		})

		if remaining.IsZero() {
			break
		}
	}
	return entries
}

// flatSchedule books the same straight-line interest every month.
func flatSchedule(t terms) []domain.AmortizationEntry {
	emi := utils.RoundCurrency(t.emi)
	interest := utils.RoundCurrency(t.monthlyInterest)
	remaining := utils.RoundCurrency(t.principal)
	entries := make([]domain.AmortizationEntry, 0, t.months)

	for month := 1; month <= t.months; month++ {
		principal := emi.Sub(interest)
		if month == t.months || principal.GreaterThan(remaining) {
			principal = remaining
		}
		remaining = remaining.Sub(principal)

		entries = append(entries, domain.AmortizationEntry{
			Month:     month,
			EMI:       principal.Add(interest),
			Principal: principal,
			Interest:  interest,
			Balance:   remaining,
		})
	}
	return entries
}

// bulletSchedule is interest-only until the last month repays the principal.
func bulletSchedule(t terms) []domain.AmortizationEntry {
	remaining := utils.RoundCurrency(t.principal)
	entries := make([]domain.AmortizationEntry, 0, t.months)

	for month := 1; month <= t.months; month++ {
		interest := utils.RoundCurrency(remaining.Mul(t.rate))
		principal := decimal.Zero
		if month == t.months {
			principal = remaining
		}
		remaining = remaining.Sub(principal)

		entries = append(entries, domain.AmortizationEntry{
			Month:     month,
			EMI:       principal.Add(interest),
			Principal: principal,
			Interest:  interest,
			Balance:   remaining,
		})
	}
	return entries
}

// ScheduleSums are column totals of a schedule.
type ScheduleSums struct {
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Paid      decimal.Decimal
}

// SumSchedule adds up the principal, interest and payment columns.
func SumSchedule(entries []domain.AmortizationEntry) ScheduleSums {
	var s ScheduleSums
	for _, e := range entries {
		s.Principal = s.Principal.Add(e.Principal)
		s.Interest = s.Interest.Add(e.Interest)
		s.Paid = s.Paid.Add(e.EMI)
	}
	return s
}

// Summary flattens a loan calculation into labelled items for reports and sharing.
func Summary(in domain.LoanInput, totals domain.LoanTotals) []domain.SummaryItem {
	method := domain.ParseLoanMethod(string(in.Method))
	items := []domain.SummaryItem{
		domain.InputItem("Principal", in.Principal),
		domain.InputItem("Interest Rate (%)", in.AnnualRate),
		domain.InputItem("Tenure (Months)", decimal.NewFromInt(int64(in.TenureMonths))),
		domain.OptionItem("Repayment Method", string(method)),
	}
	if method == domain.LoanMethodBullet {
		items = append(items,
			domain.ResultItem("Monthly Interest", totals.MonthlyInterest),
			domain.ResultItem("Final Payment", totals.FinalPayment),
		)
	} else {
		items = append(items, domain.ResultItem("EMI", totals.EMI))
	}
	return append(items,
		domain.ResultItem("Total Interest", totals.TotalInterest),
		domain.ResultItem("Total Payable", totals.TotalPayable),
	)
}
