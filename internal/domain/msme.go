package domain

import "github.com/shopspring/decimal"

// MSMEInput carries the figures checked before a working-capital assessment.
type MSMEInput struct {
	Turnover           decimal.Decimal `json:"turnover" validate:"decimal_gte=0"`
	CurrentAssets      decimal.Decimal `json:"currentAssets" validate:"decimal_gte=0"`
	CurrentLiabilities decimal.Decimal `json:"currentLiabilities"`
}

// NayakResult is the turnover method assessment.
type NayakResult struct {
	Requirement decimal.Decimal `json:"requirement"`
	Margin      decimal.Decimal `json:"margin"`
	Limit       decimal.Decimal `json:"limit"`
}

// TandonResult is the second method of lending assessment.
type TandonResult struct {
	Gap    decimal.Decimal `json:"gap"`
	MPBF   decimal.Decimal `json:"mpbf"`
	Margin decimal.Decimal `json:"margin"`
}

type RatioInput struct {
	PAT                decimal.Decimal `json:"pat"`
	Depreciation       decimal.Decimal `json:"depreciation"`
	Interest           decimal.Decimal `json:"interest"`
	Obligation         decimal.Decimal `json:"obligation"`
	CurrentAssets      decimal.Decimal `json:"currentAssets"`
	CurrentLiabilities decimal.Decimal `json:"currentLiabilities"`
	Inventory          decimal.Decimal `json:"inventory"`
	TOL                decimal.Decimal `json:"tol"`
	TNW                decimal.Decimal `json:"tnw"`
	FixedCost          decimal.Decimal `json:"fixedCost"`
	Sales              decimal.Decimal `json:"sales"`
	VariableCost       decimal.Decimal `json:"variableCost"`
}

type FinancialRatios struct {
	DSCR         decimal.Decimal `json:"dscr"`
	CurrentRatio decimal.Decimal `json:"currentRatio"`
	QuickRatio   decimal.Decimal `json:"quickRatio"`
	Leverage     decimal.Decimal `json:"leverage"`
	BEPPercent   decimal.Decimal `json:"bepPercent"`
}

// DrawingPowerInput margins are percentages (25 means 25%).
type DrawingPowerInput struct {
	Stock        decimal.Decimal `json:"stock"`
	Creditors    decimal.Decimal `json:"creditors"`
	StockMargin  decimal.Decimal `json:"stockMargin"`
	Debtors      decimal.Decimal `json:"debtors"`
	DebtorMargin decimal.Decimal `json:"debtorMargin"`
}

type DrawingPowerResult struct {
	PaidStock    decimal.Decimal `json:"paidStock"`
	StockValue   decimal.Decimal `json:"stockValue"`
	DebtorValue  decimal.Decimal `json:"debtorValue"`
	DrawingPower decimal.Decimal `json:"drawingPower"`
}

type CGTMSEResult struct {
	Rate decimal.Decimal `json:"rate"`
	Fee  decimal.Decimal `json:"fee"`
}
