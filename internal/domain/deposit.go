package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DepositProduct identifies a term-deposit variant.
type DepositProduct string

const (
	ProductFD  DepositProduct = "FD"  // fixed deposit, interest paid at maturity
	ProductRD  DepositProduct = "RD"  // recurring deposit, monthly installments
	ProductMIS DepositProduct = "MIS" // monthly income scheme, interest paid monthly
	ProductQIS DepositProduct = "QIS" // quarterly income scheme, interest paid quarterly
)

// DefaultCompoundingFrequency is quarterly compounding.
const DefaultCompoundingFrequency = 4

// ParseDepositProduct maps a product code onto a DepositProduct, defaulting to FD.
func ParseDepositProduct(s string) DepositProduct {
	switch p := DepositProduct(strings.ToUpper(strings.TrimSpace(s))); p {
	case ProductFD, ProductRD, ProductMIS, ProductQIS:
		return p
	default:
		return ProductFD
	}
}

// PaysPeriodicInterest reports whether interest is disbursed before maturity.
func (p DepositProduct) PaysPeriodicInterest() bool {
	return p == ProductMIS || p == ProductQIS
}

// DepositInput describes an FD (Principal is the lump sum) or an RD (Principal is
// the monthly installment).
type DepositInput struct {
	Principal            decimal.Decimal `json:"principal" validate:"decimal_gt=0"`
	AnnualRate           decimal.Decimal `json:"annualRate" validate:"decimal_gte=0,decimal_lte=100"`
	TenureMonths         int             `json:"tenureMonths" validate:"gte=1,lte=1200"`
	CompoundingFrequency int             `json:"compoundingFrequency"`
}

type DepositResult struct {
	MaturityValue  decimal.Decimal `json:"maturityValue"`
	InterestEarned decimal.Decimal `json:"interestEarned"`
	TotalDeposited decimal.Decimal `json:"totalDeposited"`
	EAY            decimal.Decimal `json:"eay"`
}

// PrematureInput describes an early closure of a deposit.
type PrematureInput struct {
	Product               DepositProduct  `json:"product"`
	Principal             decimal.Decimal `json:"principal" validate:"decimal_gte=0"`
	BookedRate            decimal.Decimal `json:"bookedRate" validate:"decimal_gte=0,decimal_lte=100"`
	CardRateForTenure     decimal.Decimal `json:"cardRateForTenure" validate:"decimal_gte=0,decimal_lte=100"`
	Penalty               decimal.Decimal `json:"penalty" validate:"decimal_gte=0"`
	CompletedMonths       int             `json:"completedMonths" validate:"gte=0,lte=1200"`
	CompletedInstallments int             `json:"completedInstallments" validate:"gte=0,lte=1200"`
	InterestAlreadyPaid   decimal.Decimal `json:"interestAlreadyPaid"`
	CompoundingFrequency  int             `json:"compoundingFrequency"`
}

type PrematureResult struct {
	EffectiveRate          decimal.Decimal `json:"effectiveRate"`
	InterestEarned         decimal.Decimal `json:"interestEarned"`
	InterestRecovery       decimal.Decimal `json:"interestRecovery"`
	NetPayout              decimal.Decimal `json:"netPayout"`
	MaturityBeforeRecovery decimal.Decimal `json:"maturityBeforeRecovery"`
}
