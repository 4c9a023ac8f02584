package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/fincalc-engine/internal/domain"
)

func fields(r Result) []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateLoanInput(t *testing.T) {
	valid := domain.LoanInput{
		Principal:    decimal.NewFromInt(100000),
		AnnualRate:   decimal.NewFromInt(12),
		TenureMonths: 12,
	}

	tests := []struct {
		name           string
		mutate         func(in *domain.LoanInput)
		expectedValid  bool
		expectedFields []string
	}{
		{name: "valid input", mutate: func(in *domain.LoanInput) {}, expectedValid: true},
		{name: "zero rate allowed", mutate: func(in *domain.LoanInput) { in.AnnualRate = decimal.Zero }, expectedValid: true},
		{name: "rate of exactly 100 allowed", mutate: func(in *domain.LoanInput) { in.AnnualRate = decimal.NewFromInt(100) }, expectedValid: true},
		{name: "tenure of 600 allowed", mutate: func(in *domain.LoanInput) { in.TenureMonths = 600 }, expectedValid: true},
		{
			name:           "zero principal",
			mutate:         func(in *domain.LoanInput) { in.Principal = decimal.Zero },
			expectedFields: []string{"principal"},
		},
		{
			name:           "negative principal",
			mutate:         func(in *domain.LoanInput) { in.Principal = decimal.NewFromInt(-1) },
			expectedFields: []string{"principal"},
		},
		{
			name:           "rate above 100",
			mutate:         func(in *domain.LoanInput) { in.AnnualRate = decimal.RequireFromString("100.01") },
			expectedFields: []string{"annualRate"},
		},
		{
			name:           "negative rate",
			mutate:         func(in *domain.LoanInput) { in.AnnualRate = decimal.RequireFromString("-0.5") },
			expectedFields: []string{"annualRate"},
		},
		{
			name:           "zero tenure",
			mutate:         func(in *domain.LoanInput) { in.TenureMonths = 0 },
			expectedFields: []string{"tenureMonths"},
		},
		{
			name:           "tenure above 600",
			mutate:         func(in *domain.LoanInput) { in.TenureMonths = 601 },
			expectedFields: []string{"tenureMonths"},
		},
		{
			name: "everything wrong",
			mutate: func(in *domain.LoanInput) {
				in.Principal = decimal.Zero
				in.AnnualRate = decimal.NewFromInt(101)
				in.TenureMonths = 0
			},
			expectedFields: []string{"principal", "annualRate", "tenureMonths"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			result := ValidateLoanInput(in)

			assert.Equal(t, tt.expectedValid, result.IsValid)
			if tt.expectedValid {
				assert.Empty(t, result.Errors)
				return
			}
			assert.ElementsMatch(t, tt.expectedFields, fields(result))
		})
	}
}

func TestValidateLoanInput_DoesNotMutate(t *testing.T) {
	in := domain.LoanInput{Principal: decimal.NewFromInt(-5), AnnualRate: decimal.NewFromInt(10), TenureMonths: 12}
	_ = ValidateLoanInput(in)
	assert.True(t, in.Principal.Equal(decimal.NewFromInt(-5)))
}

func TestValidateLoanInput_Messages(t *testing.T) {
	result := ValidateLoanInput(domain.LoanInput{
		Principal:    decimal.Zero,
		AnnualRate:   decimal.NewFromInt(150),
		TenureMonths: 12,
	})

	require.Len(t, result.Errors, 2)
	assert.Equal(t, "Principal must be greater than 0", result.Errors[0].Message)
	assert.Equal(t, "Interest rate must not exceed 100", result.Errors[1].Message)
}

func TestValidateDepositInput(t *testing.T) {
	valid := domain.DepositInput{
		Principal:    decimal.NewFromInt(10000),
		AnnualRate:   decimal.RequireFromString("7.1"),
		TenureMonths: 1200,
	}
	assert.True(t, ValidateDepositInput(valid).IsValid)

	tooLong := valid
	tooLong.TenureMonths = 1201
	result := ValidateDepositInput(tooLong)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"tenureMonths"}, fields(result))

	noPrincipal := valid
	noPrincipal.Principal = decimal.Zero
	assert.Equal(t, []string{"principal"}, fields(ValidateDepositInput(noPrincipal)))
}

func TestValidateMSMEInput(t *testing.T) {
	assert.True(t, ValidateMSMEInput(domain.MSMEInput{}).IsValid, "zero figures are allowed")

	result := ValidateMSMEInput(domain.MSMEInput{
		Turnover:           decimal.NewFromInt(-1),
		CurrentAssets:      decimal.NewFromInt(-1),
		CurrentLiabilities: decimal.NewFromInt(-1),
	})

	assert.False(t, result.IsValid)
	assert.ElementsMatch(t, []string{"turnover", "currentAssets"}, fields(result))
	assert.Equal(t, "Turnover must not be negative", result.Errors[0].Message)
}

func TestValidatePrematureInput(t *testing.T) {
	valid := domain.PrematureInput{
		Product:               domain.ProductRD,
		Principal:             decimal.NewFromInt(1000),
		BookedRate:            decimal.NewFromInt(7),
		CardRateForTenure:     decimal.NewFromInt(6),
		Penalty:               decimal.NewFromInt(1),
		CompletedMonths:       1200,
		CompletedInstallments: 1200,
	}
	assert.True(t, ValidatePrematureInput(valid).IsValid)

	tooMany := valid
	tooMany.CompletedMonths = 1201
	tooMany.CompletedInstallments = 100000000
	result := ValidatePrematureInput(tooMany)
	assert.False(t, result.IsValid)
	assert.ElementsMatch(t, []string{"completedMonths", "completedInstallments"}, fields(result))

	negative := valid
	negative.CompletedInstallments = -1
	negative.Penalty = decimal.NewFromInt(-1)
	assert.ElementsMatch(t, []string{"completedInstallments", "penalty"}, fields(ValidatePrematureInput(negative)))
}

func TestValidateOutstandingInput(t *testing.T) {
	valid := domain.OutstandingInput{
		Principal:    decimal.NewFromInt(120000),
		AnnualRate:   decimal.NewFromInt(12),
		TenureMonths: 12,
		MissedEMIs:   -2,
	}
	assert.True(t, ValidateOutstandingInput(valid).IsValid, "missed EMIs are clamped by the engine")

	tests := []struct {
		name   string
		tenure int
	}{
		{name: "negative tenure", tenure: -5},
		{name: "zero tenure", tenure: 0},
		{name: "tenure beyond 600 months", tenure: 1000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.TenureMonths = tt.tenure
			result := ValidateOutstandingInput(in)
			assert.False(t, result.IsValid)
			assert.Equal(t, []string{"tenureMonths"}, fields(result))
		})
	}
}

func TestValidateSHGMembers(t *testing.T) {
	good := domain.SHGLoan{Amount: decimal.NewFromInt(50000), Tenure: 12}
	members := []domain.SHGMember{
		{Name: "A", Loans: []domain.SHGLoan{good}},
		{Name: "B", Loans: []domain.SHGLoan{good, {Amount: decimal.NewFromInt(1000), Tenure: 100000000}}},
	}

	result := ValidateSHGMembers(members)
	require.False(t, result.IsValid)
	assert.Equal(t, []string{"members[1].loans[1].tenure"}, fields(result))
	assert.Equal(t, "Tenure must not exceed 600 months", result.Errors[0].Message)

	assert.True(t, ValidateSHGMembers(members[:1]).IsValid, "a zero rate is priced from the group slabs")
	assert.True(t, ValidateSHGMembers(nil).IsValid)
}
