// Package msme implements working-capital assessment for micro, small and medium
// enterprises: turnover and MPBF methods, credit ratios, drawing power and the
// CGTMSE guarantee fee.
package msme

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

var (
	nayakRequirementShare = decimal.RequireFromString("0.25")
	nayakMarginShare      = decimal.RequireFromString("0.05")
	nayakLimitShare       = decimal.RequireFromString("0.20")
	tandonFinanceShare    = decimal.RequireFromString("0.75")
	socialConcession      = decimal.RequireFromString("0.90")
)

// CGTMSESlabs is the guarantee fee schedule, in percent per annum of the loan amount.
var CGTMSESlabs = domain.SlabTable{
	{Limit: decimal.NewFromInt(1_000_000), Rate: decimal.RequireFromString("0.37")},
	{Limit: decimal.NewFromInt(5_000_000), Rate: decimal.RequireFromString("0.55")},
	{Limit: decimal.NewFromInt(10_000_000), Rate: decimal.RequireFromString("0.60")},
	{Limit: decimal.NewFromInt(20_000_000), Rate: decimal.RequireFromString("1.20")},
	{Limit: decimal.NewFromInt(50_000_000), Rate: decimal.RequireFromString("1.35")},
}

// CalculateNayakWC assesses working capital at 25% of projected turnover, of which
// the borrower brings 5% and the bank finances 20%.
func CalculateNayakWC(turnover decimal.Decimal) domain.NayakResult {
	if !turnover.IsPositive() {
		return domain.NayakResult{}
	}
	return domain.NayakResult{
		Requirement: utils.RoundCurrency(turnover.Mul(nayakRequirementShare)),
		Margin:      utils.RoundCurrency(turnover.Mul(nayakMarginShare)),
		Limit:       utils.RoundCurrency(turnover.Mul(nayakLimitShare)),
	}
}

// CalculateTandonMPBF applies the second method of lending: the bank finances 75%
// of the working capital gap.
func CalculateTandonMPBF(currentAssets, currentLiabilities decimal.Decimal) domain.TandonResult {
	gap := currentAssets.Sub(currentLiabilities)
	mpbf := utils.MaxDecimal(decimal.Zero, gap.Mul(tandonFinanceShare))
	return domain.TandonResult{
		Gap:    utils.RoundCurrency(gap),
		MPBF:   utils.RoundCurrency(mpbf),
		Margin: utils.RoundCurrency(gap.Sub(mpbf)),
	}
}

// ratio divides a by b, yielding zero when b is not positive.
func ratio(a, b decimal.Decimal) decimal.Decimal {
	if !b.IsPositive() {
		return decimal.Zero
	}
	return utils.RoundCurrency(utils.SafeDiv(a, b))
}

// CalculateFinancialRatios computes the ratio battery; a ratio with a non-positive
// denominator is zero.
func CalculateFinancialRatios(in domain.RatioInput) domain.FinancialRatios {
	contribution := in.Sales.Sub(in.VariableCost)
	return domain.FinancialRatios{
		DSCR:         ratio(in.PAT.Add(in.Depreciation).Add(in.Interest), in.Obligation),
		CurrentRatio: ratio(in.CurrentAssets, in.CurrentLiabilities),
		QuickRatio:   ratio(in.CurrentAssets.Sub(in.Inventory), in.CurrentLiabilities),
		Leverage:     ratio(in.TOL, in.TNW),
		BEPPercent:   ratio(in.FixedCost.Mul(utils.Hundred), contribution),
	}
}

// CalculateDrawingPower values stock net of creditors and debtors after their
// margins. Margins are percentages.
func CalculateDrawingPower(in domain.DrawingPowerInput) domain.DrawingPowerResult {
	paidStock := utils.MaxDecimal(decimal.Zero, in.Stock.Sub(in.Creditors))
	stockValue := paidStock.Mul(utils.One.Sub(utils.SafeDiv(in.StockMargin, utils.Hundred)))
	debtorValue := in.Debtors.Mul(utils.One.Sub(utils.SafeDiv(in.DebtorMargin, utils.Hundred)))

	return domain.DrawingPowerResult{
		PaidStock:    utils.RoundCurrency(paidStock),
		StockValue:   utils.RoundCurrency(stockValue),
		DebtorValue:  utils.RoundCurrency(debtorValue),
		DrawingPower: utils.RoundCurrency(utils.MaxDecimal(decimal.Zero, stockValue.Add(debtorValue))),
	}
}

// CalculateCGTMSEFee looks up the guarantee fee rate for amount. Social category
// borrowers get a 10% concession on the rate.
func CalculateCGTMSEFee(amount decimal.Decimal, socialCategory bool) domain.CGTMSEResult {
	if !amount.IsPositive() {
		return domain.CGTMSEResult{}
	}
	rate := CGTMSESlabs.RateFor(amount)
	if socialCategory {
		rate = rate.Mul(socialConcession)
	}
	return domain.CGTMSEResult{
		Rate: rate,
		Fee:  utils.RoundCurrency(utils.SafeDiv(amount.Mul(rate), utils.Hundred)),
	}
}

// Summary flattens a turnover method assessment into labelled items.
func Summary(turnover decimal.Decimal, res domain.NayakResult) []domain.SummaryItem {
	return []domain.SummaryItem{
		domain.InputItem("Projected Turnover", turnover),
		domain.ResultItem("Working Capital Requirement", res.Requirement),
		domain.ResultItem("Promoter Margin", res.Margin),
		domain.ResultItem("Bank Finance Limit", res.Limit),
	}
}
