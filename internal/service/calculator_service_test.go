package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/fincalc-engine/internal/config"
	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/repository/mocks"
	customError "github.com/segyhp/fincalc-engine/pkg/errors"
	"github.com/segyhp/fincalc-engine/pkg/logger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(cache *mocks.MockScheduleCache, cfg *config.Config) *CalculatorService {
	if cache == nil {
		return NewCalculatorService(nil, cfg, logger.Discard())
	}
	return NewCalculatorService(cache, cfg, logger.Discard())
}

func sampleLoan() domain.LoanInput {
	return domain.LoanInput{Principal: d("100000"), AnnualRate: d("12"), TenureMonths: 12}
}

func TestLoanSchedule_CacheMiss(t *testing.T) {
	// Arrange
	cache := &mocks.MockScheduleCache{}
	svc := newTestService(cache, nil)
	key := "schedule:loan:reducing:100000:12:12:0"

	cache.On("Get", mock.Anything, key).Return(nil, customError.ErrCacheMiss)
	cache.On("Set", mock.Anything, key, mock.MatchedBy(func(payload []byte) bool {
		var resp domain.ScheduleResponse
		return json.Unmarshal(payload, &resp) == nil && len(resp.Schedule) == 12
	})).Return(nil)

	// Act
	resp, err := svc.LoanSchedule(context.Background(), sampleLoan())

	// Assert
	require.NoError(t, err)
	assert.True(t, resp.Totals.EMI.Equal(d("8884.88")))
	assert.Len(t, resp.Schedule, 12)
	assert.NotEmpty(t, resp.Summary)

	cache.AssertExpectations(t)
}

func TestLoanSchedule_CacheHit(t *testing.T) {
	cache := &mocks.MockScheduleCache{}
	svc := newTestService(cache, nil)

	stored := domain.ScheduleResponse{
		Totals:   domain.LoanTotals{EMI: d("1.23")},
		Schedule: []domain.AmortizationEntry{{Month: 1, EMI: d("1.23")}},
	}
	payload, err := json.Marshal(stored)
	require.NoError(t, err)

	cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(payload, nil)

	resp, err := svc.LoanSchedule(context.Background(), sampleLoan())
	require.NoError(t, err)
	assert.True(t, resp.Totals.EMI.Equal(d("1.23")), "cached response is returned as stored")

	cache.AssertExpectations(t)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanSchedule_CacheFaultsDoNotFailCalculation(t *testing.T) {
	cache := &mocks.MockScheduleCache{}
	svc := newTestService(cache, nil)

	cache.On("Get", mock.Anything, mock.Anything).Return(nil, customError.WrapCacheError(errors.New("connection refused")))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(customError.WrapCacheError(errors.New("connection refused")))

	resp, err := svc.LoanSchedule(context.Background(), sampleLoan())
	require.NoError(t, err)
	assert.Len(t, resp.Schedule, 12)

	cache.AssertExpectations(t)
}

func TestLoanSchedule_CorruptCacheEntryIsRecomputed(t *testing.T) {
	cache := &mocks.MockScheduleCache{}
	svc := newTestService(cache, nil)

	cache.On("Get", mock.Anything, mock.Anything).Return([]byte("{not json"), nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.LoanSchedule(context.Background(), sampleLoan())
	require.NoError(t, err)
	assert.True(t, resp.Totals.EMI.Equal(d("8884.88")))
	cache.AssertExpectations(t)
}

func TestLoanSchedule_NegativeAmortization(t *testing.T) {
	cache := &mocks.MockScheduleCache{}
	svc := newTestService(cache, nil)

	in := sampleLoan()
	in.EMI = d("500")

	cache.On("Get", mock.Anything, mock.Anything).Return(nil, customError.ErrCacheMiss)

	resp, err := svc.LoanSchedule(context.Background(), in)
	assert.Nil(t, resp)
	assert.True(t, customError.IsNegativeAmortization(err))
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoanTotals_ConfiguredDefaultMethod(t *testing.T) {
	cfg := &config.Config{Business: config.BusinessConfig{DefaultLoanMethod: "flat", DefaultCompoundingFrequency: 4}}
	svc := newTestService(nil, cfg)

	in := domain.LoanInput{Principal: d("100000"), AnnualRate: d("10"), TenureMonths: 12}
	totals, err := svc.LoanTotals(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, totals.EMI.Equal(d("9166.67")), "got %s", totals.EMI)

	in.Method = domain.LoanMethodReducing
	totals, err = svc.LoanTotals(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, totals.EMI.Equal(d("9166.67")), "explicit method wins over the default")
}

func TestLoanScheduleKey(t *testing.T) {
	in := sampleLoan()
	assert.Equal(t, "schedule:loan:reducing:100000:12:12:0", LoanScheduleKey(in))

	in.Method = domain.LoanMethodBullet
	in.EMI = d("9000")
	assert.Equal(t, "schedule:loan:bullet:100000:12:12:9000", LoanScheduleKey(in))
}

func TestDeposits_ConfiguredCompounding(t *testing.T) {
	in := domain.DepositInput{Principal: d("10000"), AnnualRate: d("10"), TenureMonths: 12}

	quarterly := newTestService(nil, nil).FDMaturity(in)
	assert.True(t, quarterly.MaturityValue.Equal(d("11038.13")))

	cfg := &config.Config{Business: config.BusinessConfig{DefaultLoanMethod: "reducing", DefaultCompoundingFrequency: 12}}
	monthly := newTestService(nil, cfg).FDMaturity(in)
	assert.True(t, monthly.MaturityValue.Equal(d("11047.13")), "got %s", monthly.MaturityValue)
}

func TestMSMEPassThrough(t *testing.T) {
	svc := newTestService(nil, nil)

	assert.True(t, svc.NayakWC(d("10000000")).Limit.Equal(d("2000000")))
	assert.True(t, svc.TandonMPBF(d("1000000"), d("400000")).MPBF.Equal(d("450000")))
	assert.True(t, svc.CGTMSEFee(d("1000000"), false).Fee.Equal(d("3700")))
}

func TestSHGSchedule_Cached(t *testing.T) {
	cache := &mocks.MockScheduleCache{}
	svc := newTestService(cache, nil)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	key := "schedule:shg:120000:12:12:2024-01-01"

	cache.On("Get", mock.Anything, key).Return(nil, customError.ErrCacheMiss)
	cache.On("Set", mock.Anything, key, mock.Anything).Return(nil)

	entries, err := svc.SHGSchedule(context.Background(), d("120000"), d("12"), 12, start)
	require.NoError(t, err)
	require.Len(t, entries, 12)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), entries[0].DueDate)

	cache.AssertExpectations(t)
}

func TestReconcileGroup_AssignsIDs(t *testing.T) {
	svc := newTestService(nil, nil)

	members := []domain.SHGMember{{
		Name:  "Asha",
		Loans: []domain.SHGLoan{{Amount: d("50000"), Rate: d("12"), Tenure: 12, StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
	}}
	group := domain.SHGGroup{SanctionAmount: d("40000")}

	rec, err := svc.ReconcileGroup(context.Background(), group, members, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.GroupID)
	require.Len(t, rec.Members, 1)
	assert.NotEqual(t, uuid.Nil, rec.Members[0].MemberID)
	assert.NotEqual(t, uuid.Nil, rec.Members[0].Loans[0].LoanID)
	assert.True(t, rec.OverSanctioned)
}
