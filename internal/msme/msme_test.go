package msme

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/segyhp/fincalc-engine/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, actual.Equal(d(expected)), append([]interface{}{"expected %s, got %s", expected, actual}, msgAndArgs...)...)
}

func TestCalculateNayakWC(t *testing.T) {
	res := CalculateNayakWC(d("10000000"))
	assertDecimal(t, "2500000", res.Requirement)
	assertDecimal(t, "2000000", res.Limit)
	assertDecimal(t, "500000", res.Margin)

	assert.Equal(t, domain.NayakResult{}, CalculateNayakWC(decimal.Zero))
	assert.Equal(t, domain.NayakResult{}, CalculateNayakWC(d("-1")))
}

func TestCalculateTandonMPBF(t *testing.T) {
	tests := []struct {
		name   string
		ca, cl string
		gap    string
		mpbf   string
		margin string
	}{
		{name: "positive gap", ca: "1000000", cl: "400000", gap: "600000", mpbf: "450000", margin: "150000"},
		{name: "no gap", ca: "400000", cl: "400000", gap: "0", mpbf: "0", margin: "0"},
		{name: "negative gap floors mpbf", ca: "300000", cl: "400000", gap: "-100000", mpbf: "0", margin: "-100000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateTandonMPBF(d(tt.ca), d(tt.cl))
			assertDecimal(t, tt.gap, res.Gap)
			assertDecimal(t, tt.mpbf, res.MPBF)
			assertDecimal(t, tt.margin, res.Margin)
		})
	}
}

func TestCalculateFinancialRatios(t *testing.T) {
	res := CalculateFinancialRatios(domain.RatioInput{
		PAT:                d("100"),
		Depreciation:       d("50"),
		Interest:           d("50"),
		Obligation:         d("100"),
		CurrentAssets:      d("200"),
		CurrentLiabilities: d("100"),
		Inventory:          d("50"),
		TOL:                d("300"),
		TNW:                d("150"),
		FixedCost:          d("100"),
		Sales:              d("500"),
		VariableCost:       d("300"),
	})

	assertDecimal(t, "2", res.DSCR)
	assertDecimal(t, "2", res.CurrentRatio)
	assertDecimal(t, "1.5", res.QuickRatio)
	assertDecimal(t, "2", res.Leverage)
	assertDecimal(t, "50", res.BEPPercent)
}

func TestCalculateFinancialRatios_GuardsDenominators(t *testing.T) {
	res := CalculateFinancialRatios(domain.RatioInput{
		PAT:           d("100"),
		Obligation:    decimal.Zero,
		CurrentAssets: d("200"),
		TOL:           d("300"),
		TNW:           d("-10"),
		FixedCost:     d("100"),
		Sales:         d("300"),
		VariableCost:  d("400"),
	})

	assert.True(t, res.DSCR.IsZero())
	assert.True(t, res.CurrentRatio.IsZero())
	assert.True(t, res.QuickRatio.IsZero())
	assert.True(t, res.Leverage.IsZero())
	assert.True(t, res.BEPPercent.IsZero())
}

func TestCalculateDrawingPower(t *testing.T) {
	res := CalculateDrawingPower(domain.DrawingPowerInput{
		Stock:        d("1000000"),
		Creditors:    d("200000"),
		StockMargin:  d("25"),
		Debtors:      d("500000"),
		DebtorMargin: d("40"),
	})

	assertDecimal(t, "800000", res.PaidStock)
	assertDecimal(t, "600000", res.StockValue)
	assertDecimal(t, "300000", res.DebtorValue)
	assertDecimal(t, "900000", res.DrawingPower)
}

func TestCalculateDrawingPower_CreditorsExceedStock(t *testing.T) {
	res := CalculateDrawingPower(domain.DrawingPowerInput{
		Stock:        d("100000"),
		Creditors:    d("250000"),
		StockMargin:  d("25"),
		Debtors:      decimal.Zero,
		DebtorMargin: d("40"),
	})

	assert.True(t, res.PaidStock.IsZero())
	assert.True(t, res.DrawingPower.IsZero())
}

func TestCalculateCGTMSEFee(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		social bool
		rate   string
		fee    string
	}{
		{name: "ten lakh", amount: "1000000", rate: "0.37", fee: "3700"},
		{name: "ten lakh social", amount: "1000000", social: true, rate: "0.333", fee: "3330"},
		{name: "fifty lakh", amount: "5000000", rate: "0.55", fee: "27500"},
		{name: "sixty lakh", amount: "6000000", rate: "0.60", fee: "36000"},
		{name: "one and a half crore", amount: "15000000", rate: "1.20", fee: "180000"},
		{name: "above every slab", amount: "80000000", rate: "1.35", fee: "1080000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateCGTMSEFee(d(tt.amount), tt.social)
			assertDecimal(t, tt.rate, res.Rate)
			assertDecimal(t, tt.fee, res.Fee)
		})
	}

	assert.Equal(t, domain.CGTMSEResult{}, CalculateCGTMSEFee(decimal.Zero, false))
}

func TestSummary(t *testing.T) {
	items := Summary(d("10000000"), CalculateNayakWC(d("10000000")))
	assert.Len(t, items, 4)
	assert.Equal(t, domain.SummaryInput, items[0].Kind)
	assertDecimal(t, "2000000", items[3].Value)
}
