package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LoanMethod selects how a loan is repaid.
type LoanMethod string

const (
	LoanMethodReducing LoanMethod = "reducing"
	LoanMethodFlat     LoanMethod = "flat"
	LoanMethodFixed    LoanMethod = "fixed"
	LoanMethodBullet   LoanMethod = "bullet"
)

// DefaultLoanMethod is used when no method, or an unknown one, is supplied.
const DefaultLoanMethod = LoanMethodReducing

// ParseLoanMethod maps a caller-supplied method name onto a LoanMethod,
// falling back to DefaultLoanMethod.
func ParseLoanMethod(s string) LoanMethod {
	switch m := LoanMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case LoanMethodReducing, LoanMethodFlat, LoanMethodFixed, LoanMethodBullet:
		return m
	default:
		return DefaultLoanMethod
	}
}

// LoanInput holds the parameters of a single loan calculation.
type LoanInput struct {
	Principal    decimal.Decimal `json:"principal" validate:"decimal_gt=0"`
	AnnualRate   decimal.Decimal `json:"annualRate" validate:"decimal_gte=0,decimal_lte=100"`
	TenureMonths int             `json:"tenureMonths" validate:"gte=1,lte=600"`
	Method       LoanMethod      `json:"method"`
	// EMI overrides the computed reducing-balance installment when positive.
	EMI decimal.Decimal `json:"emi"`
}

// LoanTotals are the headline figures of a loan.
type LoanTotals struct {
	EMI             decimal.Decimal `json:"emi"`
	MonthlyInterest decimal.Decimal `json:"monthlyInterest"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	TotalPayable    decimal.Decimal `json:"totalPayable"`
	FinalPayment    decimal.Decimal `json:"finalPayment"`
}
