package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/fincalc-engine/internal/config"
	"github.com/segyhp/fincalc-engine/internal/deposit"
	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/loan"
	"github.com/segyhp/fincalc-engine/internal/msme"
	"github.com/segyhp/fincalc-engine/internal/repository"
	"github.com/segyhp/fincalc-engine/internal/shg"
	customError "github.com/segyhp/fincalc-engine/pkg/errors"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

// CalculatorService fronts the calculation engines with configured defaults,
// logging and a schedule cache. It is safe for concurrent use.
type CalculatorService struct {
	cache         repository.ScheduleCache
	logger        *slog.Logger
	deposits      deposit.Options
	defaultMethod domain.LoanMethod
}

// NewCalculatorService builds a service around cache. A nil cache disables caching
// and a nil cfg keeps the engine defaults.
func NewCalculatorService(cache repository.ScheduleCache, cfg *config.Config, logger *slog.Logger) *CalculatorService {
	if cache == nil {
		cache = repository.NewNoopCache()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &CalculatorService{
		cache:         cache,
		logger:        logger,
		deposits:      deposit.DefaultOptions(),
		defaultMethod: domain.DefaultLoanMethod,
	}
	if cfg != nil {
		s.deposits.CompoundingFrequency = cfg.Business.DefaultCompoundingFrequency
		s.defaultMethod = cfg.GetDefaultLoanMethod()
	}
	return s
}

func (s *CalculatorService) withDefaults(in domain.LoanInput) domain.LoanInput {
	if in.Method == "" {
		in.Method = s.defaultMethod
	} else {
		in.Method = domain.ParseLoanMethod(string(in.Method))
	}
	return in
}

func (s *CalculatorService) domainFailure(err error, attrs ...any) {
	if customError.IsNegativeAmortization(err) {
		s.logger.Warn("calculation rejected", append(attrs, "error", err)...)
	}
}

// LoanTotals returns the headline figures of a loan.
func (s *CalculatorService) LoanTotals(ctx context.Context, in domain.LoanInput) (domain.LoanTotals, error) {
	in = s.withDefaults(in)
	totals, err := loan.CalculateTotals(in)
	if err != nil {
		s.domainFailure(err, "method", in.Method)
		return domain.LoanTotals{}, err
	}
	s.logger.DebugContext(ctx, "loan totals calculated", "method", in.Method, "emi", totals.EMI.String())
	return totals, nil
}

// LoanSchedule returns totals, the amortization schedule and a summary. Schedules
// are served from the cache when an identical request was seen before.
func (s *CalculatorService) LoanSchedule(ctx context.Context, in domain.LoanInput) (*domain.ScheduleResponse, error) {
	in = s.withDefaults(in)
	key := LoanScheduleKey(in)

	var cached domain.ScheduleResponse
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	totals, err := loan.CalculateTotals(in)
	if err != nil {
		s.domainFailure(err, "method", in.Method)
		return nil, err
	}
	schedule, err := loan.GenerateSchedule(in)
	if err != nil {
		return nil, err
	}

	resp := &domain.ScheduleResponse{
		Totals:   totals,
		Schedule: schedule,
		Summary:  loan.Summary(in, totals),
	}
	s.toCache(ctx, key, resp)

	s.logger.DebugContext(ctx, "loan schedule generated", "method", in.Method, "months", len(schedule))
	return resp, nil
}

// FDMaturity applies the configured compounding to a fixed deposit.
func (s *CalculatorService) FDMaturity(in domain.DepositInput) domain.DepositResult {
	return s.deposits.CalculateFDMaturity(in)
}

// RDMaturity applies the configured compounding to a recurring deposit.
func (s *CalculatorService) RDMaturity(in domain.DepositInput) domain.DepositResult {
	return s.deposits.CalculateRDMaturity(in)
}

// PrematurePayout settles an early closure with the configured compounding.
func (s *CalculatorService) PrematurePayout(in domain.PrematureInput) domain.PrematureResult {
	return s.deposits.CalculatePrematurePayout(in)
}

// DepositSummary flattens an FD or RD result for reports.
func (s *CalculatorService) DepositSummary(product domain.DepositProduct, in domain.DepositInput, res domain.DepositResult) []domain.SummaryItem {
	return deposit.Summary(product, in, res)
}

// NayakWC sizes a working-capital limit from turnover.
func (s *CalculatorService) NayakWC(turnover decimal.Decimal) domain.NayakResult {
	return msme.CalculateNayakWC(turnover)
}

// TandonMPBF applies the second method of lending.
func (s *CalculatorService) TandonMPBF(currentAssets, currentLiabilities decimal.Decimal) domain.TandonResult {
	return msme.CalculateTandonMPBF(currentAssets, currentLiabilities)
}

// FinancialRatios computes the ratio battery.
func (s *CalculatorService) FinancialRatios(in domain.RatioInput) domain.FinancialRatios {
	return msme.CalculateFinancialRatios(in)
}

// DrawingPower computes drawing power against stock and debtors.
func (s *CalculatorService) DrawingPower(in domain.DrawingPowerInput) domain.DrawingPowerResult {
	return msme.CalculateDrawingPower(in)
}

// CGTMSEFee prices the guarantee fee for amount.
func (s *CalculatorService) CGTMSEFee(amount decimal.Decimal, socialCategory bool) domain.CGTMSEResult {
	return msme.CalculateCGTMSEFee(amount, socialCategory)
}

// SlabRate resolves the rate for amount from slabs unless manualRate is set.
func (s *CalculatorService) SlabRate(amount decimal.Decimal, slabs domain.SlabTable, manualRate decimal.Decimal) decimal.Decimal {
	return shg.CalculateSlabRate(amount, slabs, manualRate)
}

// SHGSchedule returns a member amortization schedule with due dates, cached like
// loan schedules.
func (s *CalculatorService) SHGSchedule(ctx context.Context, principal, annualRate decimal.Decimal, tenureMonths int, start time.Time) ([]domain.SHGAmortizationEntry, error) {
	key := fmt.Sprintf("schedule:shg:%s:%s:%d:%s", principal.String(), annualRate.String(), tenureMonths, start.Format(utils.DateLayout))

	var cached []domain.SHGAmortizationEntry
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	entries, err := shg.GenerateSHGAmortization(principal, annualRate, tenureMonths, start)
	if err != nil {
		s.domainFailure(err, "kind", "shg")
		return nil, err
	}
	s.toCache(ctx, key, entries)
	return entries, nil
}

// Outstanding positions a single SHG loan on its review date.
func (s *CalculatorService) Outstanding(ctx context.Context, in domain.OutstandingInput) (domain.OutstandingResult, error) {
	res, err := shg.CalculateOutstandingAtDate(in)
	if err != nil {
		s.domainFailure(err, "kind", "shg")
		return domain.OutstandingResult{}, err
	}
	s.logger.DebugContext(ctx, "outstanding calculated", "monthsElapsed", res.MonthsElapsed, "outstanding", res.Outstanding.String())
	return res, nil
}

// ReconcileGroup positions every member of a group on the review date.
func (s *CalculatorService) ReconcileGroup(ctx context.Context, g domain.SHGGroup, members []domain.SHGMember, review time.Time) (domain.GroupReconciliation, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	for i := range members {
		if members[i].ID == uuid.Nil {
			members[i].ID = uuid.New()
		}
		for j := range members[i].Loans {
			if members[i].Loans[j].ID == uuid.Nil {
				members[i].Loans[j].ID = uuid.New()
			}
		}
	}

	rec, err := shg.ReconcileGroup(g, members, review)
	if err != nil {
		s.domainFailure(err, "groupId", g.ID)
		return domain.GroupReconciliation{}, err
	}
	if rec.OverSanctioned {
		s.logger.WarnContext(ctx, "group disbursed beyond sanction", "groupId", g.ID, "sanction", rec.SanctionAmount.String(), "disbursed", rec.Disbursed.String())
	}
	return rec, nil
}

// LoanScheduleKey identifies a loan schedule by every input that shapes it.
func LoanScheduleKey(in domain.LoanInput) string {
	return fmt.Sprintf("schedule:loan:%s:%s:%s:%d:%s",
		domain.ParseLoanMethod(string(in.Method)), in.Principal.String(), in.AnnualRate.String(), in.TenureMonths, in.EMI.String())
}

func (s *CalculatorService) fromCache(ctx context.Context, key string, dst any) bool {
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, customError.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "schedule cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable cached schedule", "key", key, "error", err)
		return false
	}
	s.logger.DebugContext(ctx, "schedule served from cache", "key", key)
	return true
}

func (s *CalculatorService) toCache(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.WarnContext(ctx, "schedule could not be encoded for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		s.logger.WarnContext(ctx, "schedule cache write failed", "key", key, "error", err)
	}
}
