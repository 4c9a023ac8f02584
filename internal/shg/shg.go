// Package shg implements self-help group lending: slab rates, member amortization
// with due dates, outstanding positions on a review date and group reconciliation.
package shg

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/loan"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

// CalculateSlabRate picks the rate for amount. A positive manual rate always wins.
func CalculateSlabRate(amount decimal.Decimal, slabs domain.SlabTable, manualRate decimal.Decimal) decimal.Decimal {
	if manualRate.IsPositive() {
		return manualRate
	}
	return slabs.RateFor(amount)
}

// CalculateMonthsElapsed counts whole calendar months between start and end,
// ignoring the day of month. It never goes negative and is capped at tenureCap
// when tenureCap is positive.
func CalculateMonthsElapsed(start, end time.Time, tenureCap int) int {
	months := utils.MonthsBetween(start, end)
	if months < 0 {
		months = 0
	}
	if tenureCap > 0 && months > tenureCap {
		months = tenureCap
	}
	return months
}

// GenerateSHGAmortization is a reducing-balance schedule where entry k falls due k
// calendar months after start.
func GenerateSHGAmortization(principal, annualRate decimal.Decimal, tenureMonths int, start time.Time) ([]domain.SHGAmortizationEntry, error) {
	schedule, err := loan.GenerateSchedule(domain.LoanInput{
		Principal:    principal,
		AnnualRate:   annualRate,
		TenureMonths: tenureMonths,
		Method:       domain.LoanMethodReducing,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]domain.SHGAmortizationEntry, 0, len(schedule))
	for _, e := range schedule {
		entries = append(entries, domain.SHGAmortizationEntry{
			AmortizationEntry: e,
			DueDate:           utils.AddMonths(start, e.Month),
		})
	}
	return entries, nil
}

// CalculateOutstandingAtDate positions a loan on the review date. Missed EMIs hold
// the borrower back in the schedule; partial payments come straight off the balance.
func CalculateOutstandingAtDate(in domain.OutstandingInput) (domain.OutstandingResult, error) {
	schedule, err := GenerateSHGAmortization(in.Principal, in.AnnualRate, in.TenureMonths, in.StartDate)
	if err != nil {
		return domain.OutstandingResult{}, err
	}

	partial := in.PartialPayments
	if partial.IsNegative() {
		partial = decimal.Zero
	}
	missed := in.MissedEMIs
	if missed < 0 {
		missed = 0
	}

	elapsed := CalculateMonthsElapsed(in.StartDate, in.ReviewDate, in.TenureMonths)
	effective := elapsed - missed
	if effective < 0 {
		effective = 0
	}
	remaining := in.TenureMonths - elapsed
	if remaining < 0 {
		remaining = 0
	}

	res := domain.OutstandingResult{
		MonthsElapsed:   elapsed,
		EffectiveMonths: effective,
		MonthsRemaining: remaining,
		EMIDue:          decimal.Zero,
		TotalInterest:   decimal.Zero,
	}
	if len(schedule) > 0 {
		res.EMIDue = schedule[0].EMI
	}
	for _, e := range schedule {
		res.TotalInterest = res.TotalInterest.Add(e.Interest)
	}

	if effective == 0 || len(schedule) == 0 {
		res.Outstanding = utils.MaxDecimal(decimal.Zero, utils.RoundCurrency(in.Principal).Sub(partial))
		res.TotalPaid = partial
		return res, nil
	}

	idx := effective
	if idx > len(schedule) {
		idx = len(schedule)
	}
	res.Outstanding = utils.MaxDecimal(decimal.Zero, schedule[idx-1].Balance.Sub(partial))

	paid := decimal.Zero
	for _, e := range schedule[:idx] {
		paid = paid.Add(e.EMI)
	}
	res.TotalPaid = paid.Add(partial)
	return res, nil
}

// MemberPosition totals the positions of every loan held by m.
func MemberPosition(m domain.SHGMember, review time.Time) (domain.MemberPosition, error) {
	pos := domain.MemberPosition{
		MemberID:         m.ID,
		Name:             m.Name,
		Loans:            make([]domain.LoanPosition, 0, len(m.Loans)),
		TotalDisbursed:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalEMIDue:      decimal.Zero,
	}

	for _, l := range m.Loans {
		res, err := CalculateOutstandingAtDate(domain.OutstandingInput{
			Principal:       l.Amount,
			AnnualRate:      l.Rate,
			TenureMonths:    l.Tenure,
			StartDate:       l.StartDate,
			ReviewDate:      review,
			MissedEMIs:      l.MissedEMIs,
			PartialPayments: l.PartialPayments,
		})
		if err != nil {
			return domain.MemberPosition{}, err
		}

		pos.Loans = append(pos.Loans, domain.LoanPosition{LoanID: l.ID, OutstandingResult: res})
		pos.TotalDisbursed = pos.TotalDisbursed.Add(l.Amount)
		pos.TotalOutstanding = pos.TotalOutstanding.Add(res.Outstanding)
		pos.TotalPaid = pos.TotalPaid.Add(res.TotalPaid)
		if res.MonthsRemaining > 0 {
			pos.TotalEMIDue = pos.TotalEMIDue.Add(res.EMIDue)
		}
	}
	return pos, nil
}

// ReconcileGroup compares the group's sanction with its members' loans as of
// review. Member loans without a rate are priced off the group's slabs.
func ReconcileGroup(g domain.SHGGroup, members []domain.SHGMember, review time.Time) (domain.GroupReconciliation, error) {
	rec := domain.GroupReconciliation{
		GroupID:          g.ID,
		SanctionAmount:   g.SanctionAmount,
		SanctionRate:     CalculateSlabRate(g.SanctionAmount, g.Slabs, g.ManualRate),
		Disbursed:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		TotalEMIDue:      decimal.Zero,
		Members:          make([]domain.MemberPosition, 0, len(members)),
	}

	for _, m := range members {
		priced := m
		priced.Loans = make([]domain.SHGLoan, len(m.Loans))
		for i, l := range m.Loans {
			if !l.Rate.IsPositive() {
				l.Rate = CalculateSlabRate(l.Amount, g.Slabs, g.ManualRate)
			}
			priced.Loans[i] = l
		}

		pos, err := MemberPosition(priced, review)
		if err != nil {
			return domain.GroupReconciliation{}, err
		}
		rec.Members = append(rec.Members, pos)
		rec.Disbursed = rec.Disbursed.Add(pos.TotalDisbursed)
		rec.TotalOutstanding = rec.TotalOutstanding.Add(pos.TotalOutstanding)
		rec.TotalEMIDue = rec.TotalEMIDue.Add(pos.TotalEMIDue)
	}

	rec.Undisbursed = utils.MaxDecimal(decimal.Zero, g.SanctionAmount.Sub(rec.Disbursed))
	rec.OverSanctioned = rec.Disbursed.GreaterThan(g.SanctionAmount)
	return rec, nil
}

// Summary flattens an outstanding position into labelled items.
func Summary(in domain.OutstandingInput, res domain.OutstandingResult) []domain.SummaryItem {
	return []domain.SummaryItem{
		domain.InputItem("Principal", in.Principal),
		domain.InputItem("Interest Rate (%)", in.AnnualRate),
		domain.InputItem("Tenure (Months)", decimal.NewFromInt(int64(in.TenureMonths))),
		domain.OptionItem("Review Date", in.ReviewDate.Format(utils.DateLayout)),
		domain.ResultItem("EMI", res.EMIDue),
		domain.ResultItem("Months Elapsed", decimal.NewFromInt(int64(res.MonthsElapsed))),
		domain.ResultItem("Total Paid", res.TotalPaid),
		domain.ResultItem("Outstanding", res.Outstanding),
		domain.ResultItem("Total Interest", res.TotalInterest),
	}
}
