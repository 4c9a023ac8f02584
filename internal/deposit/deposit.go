// Package deposit computes maturity values of fixed and recurring deposits and
// payouts on premature closure.
package deposit

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

// Options carries the defaults applied when an input leaves a field unset.
type Options struct {
	CompoundingFrequency int
}

// DefaultOptions compounds quarterly.
func DefaultOptions() Options {
	return Options{CompoundingFrequency: domain.DefaultCompoundingFrequency}
}

func (o Options) frequency(requested int) decimal.Decimal {
	if requested > 0 {
		return decimal.NewFromInt(int64(requested))
	}
	if o.CompoundingFrequency > 0 {
		return decimal.NewFromInt(int64(o.CompoundingFrequency))
	}
	return decimal.NewFromInt(domain.DefaultCompoundingFrequency)
}

// growth returns (1 + r/n)^(n*months/12) for an annual percentage rate.
func growth(annualRate, freq decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return utils.One
	}
	periodRate := utils.SafeDiv(utils.SafeDiv(annualRate, utils.Hundred), freq)
	periods := utils.SafeDiv(freq.Mul(decimal.NewFromInt(int64(months))), utils.Twelve)
	return utils.Pow(utils.One.Add(periodRate), periods)
}

// EffectiveAnnualYield is ((1 + r/n)^n - 1) * 100, unrounded.
func EffectiveAnnualYield(annualRate, freq decimal.Decimal) decimal.Decimal {
	periodRate := utils.SafeDiv(utils.SafeDiv(annualRate, utils.Hundred), freq)
	return utils.PowInt(utils.One.Add(periodRate), freq.IntPart()).Sub(utils.One).Mul(utils.Hundred)
}

// CalculateFDMaturity compounds a lump sum over the tenure.
func CalculateFDMaturity(in domain.DepositInput) domain.DepositResult {
	return DefaultOptions().CalculateFDMaturity(in)
}

// CalculateFDMaturity computes FD maturity, compounding at o.CompoundingFrequency
// when the input leaves it unset.
func (o Options) CalculateFDMaturity(in domain.DepositInput) domain.DepositResult {
	if !in.Principal.IsPositive() || in.TenureMonths <= 0 {
		return domain.DepositResult{}
	}
	freq := o.frequency(in.CompoundingFrequency)
	maturity := in.Principal.Mul(growth(in.AnnualRate, freq, in.TenureMonths))

	return domain.DepositResult{
		MaturityValue:  utils.RoundCurrency(maturity),
		InterestEarned: utils.RoundCurrency(maturity.Sub(in.Principal)),
		TotalDeposited: utils.RoundCurrency(in.Principal),
		EAY:            utils.RoundCurrency(EffectiveAnnualYield(in.AnnualRate, freq)),
	}
}

// CalculateRDMaturity treats every monthly installment as its own deposit that
// compounds until the common maturity date. Principal is the installment.
func CalculateRDMaturity(in domain.DepositInput) domain.DepositResult {
	return DefaultOptions().CalculateRDMaturity(in)
}

// CalculateRDMaturity computes RD maturity with o as the compounding default.
func (o Options) CalculateRDMaturity(in domain.DepositInput) domain.DepositResult {
	if !in.Principal.IsPositive() || in.TenureMonths <= 0 {
		return domain.DepositResult{}
	}
	freq := o.frequency(in.CompoundingFrequency)
	maturity := installmentsValue(in.Principal, in.AnnualRate, freq, in.TenureMonths, in.TenureMonths)
	deposited := in.Principal.Mul(decimal.NewFromInt(int64(in.TenureMonths)))

	return domain.DepositResult{
		MaturityValue:  utils.RoundCurrency(maturity),
		InterestEarned: utils.RoundCurrency(maturity.Sub(deposited)),
		TotalDeposited: utils.RoundCurrency(deposited),
		EAY:            utils.RoundCurrency(EffectiveAnnualYield(in.AnnualRate, freq)),
	}
}

// installmentsValue sums count installments where installment k has been on
// deposit for months-k+1 months.
func installmentsValue(installment, annualRate, freq decimal.Decimal, count, months int) decimal.Decimal {
	total := decimal.Zero
	for k := 1; k <= count; k++ {
		held := months - k + 1
		if held < 0 {
			held = 0
		}
		total = total.Add(installment.Mul(growth(annualRate, freq, held)))
	}
	return total
}

// EffectiveRate is the rate honoured on premature closure: the lower of the
// booked and card rates less the penalty, never below zero.
func EffectiveRate(booked, card, penalty decimal.Decimal) decimal.Decimal {
	return utils.MaxDecimal(decimal.Zero, utils.MinDecimal(booked, card).Sub(penalty))
}

// CalculatePrematurePayout settles a deposit closed before maturity.
func CalculatePrematurePayout(in domain.PrematureInput) domain.PrematureResult {
	return DefaultOptions().CalculatePrematurePayout(in)
}

// CalculatePrematurePayout settles an early closure with o as the compounding default.
func (o Options) CalculatePrematurePayout(in domain.PrematureInput) domain.PrematureResult {
	rate := EffectiveRate(in.BookedRate, in.CardRateForTenure, in.Penalty)
	result := domain.PrematureResult{EffectiveRate: rate}
	if !in.Principal.IsPositive() {
		return result
	}
	freq := o.frequency(in.CompoundingFrequency)

	if domain.ParseDepositProduct(string(in.Product)) == domain.ProductRD {
		count := in.CompletedInstallments
		if count < 0 {
			count = 0
		}
		maturity := installmentsValue(in.Principal, rate, freq, count, in.CompletedMonths)
		deposited := in.Principal.Mul(decimal.NewFromInt(int64(count)))

		result.MaturityBeforeRecovery = utils.RoundCurrency(maturity)
		result.InterestEarned = utils.RoundCurrency(maturity.Sub(deposited))
		result.InterestRecovery = decimal.Zero
		result.NetPayout = result.MaturityBeforeRecovery
		return result
	}

	maturity := in.Principal.Mul(growth(rate, freq, in.CompletedMonths))
	earned := maturity.Sub(in.Principal)
	recovery := decimal.Zero
	if domain.ParseDepositProduct(string(in.Product)).PaysPeriodicInterest() && in.InterestAlreadyPaid.GreaterThan(earned) {
		recovery = in.InterestAlreadyPaid.Sub(earned)
	}

	result.MaturityBeforeRecovery = utils.RoundCurrency(maturity)
	result.InterestEarned = utils.RoundCurrency(earned)
	result.InterestRecovery = utils.RoundCurrency(recovery)
	result.NetPayout = utils.RoundCurrency(in.Principal.Sub(recovery))
	return result
}

// Summary flattens a deposit calculation into labelled items.
func Summary(product domain.DepositProduct, in domain.DepositInput, res domain.DepositResult) []domain.SummaryItem {
	principalLabel := "Principal"
	if product == domain.ProductRD {
		principalLabel = "Monthly Installment"
	}
	return []domain.SummaryItem{
		domain.InputItem(principalLabel, in.Principal),
		domain.InputItem("Interest Rate (%)", in.AnnualRate),
		domain.InputItem("Tenure (Months)", decimal.NewFromInt(int64(in.TenureMonths))),
		domain.OptionItem("Product", string(product)),
		domain.ResultItem("Total Deposited", res.TotalDeposited),
		domain.ResultItem("Maturity Value", res.MaturityValue),
		domain.ResultItem("Interest Earned", res.InterestEarned),
		domain.ResultItem("Effective Annual Yield (%)", res.EAY),
	}
}
