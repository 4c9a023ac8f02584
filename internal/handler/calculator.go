package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/segyhp/fincalc-engine/internal/domain"
	"github.com/segyhp/fincalc-engine/internal/service"
	"github.com/segyhp/fincalc-engine/internal/validation"
	customError "github.com/segyhp/fincalc-engine/pkg/errors"
	"github.com/segyhp/fincalc-engine/pkg/response"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

type CalculatorHandler struct {
	service *service.CalculatorService
}

func NewCalculatorHandler(service *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{service: service}
}

type SlabRateResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

type DepositResponse struct {
	Result  domain.DepositResult `json:"result"`
	Summary []domain.SummaryItem `json:"summary"`
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return customError.WrapInvalidRequest(err)
	}
	return nil
}

func invalid(w http.ResponseWriter, result validation.Result) bool {
	if result.IsValid {
		return false
	}
	be := customError.WrapValidationFailed(len(result.Errors))
	response.Fail(w, http.StatusBadRequest, be.Code, be.Message, result.Errors)
	return true
}

func writeError(w http.ResponseWriter, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		response.InternalServerError(w, "calculation failed", err)
		return
	}

	switch be.Code {
	case customError.ErrCodeNegativeAmortization:
		response.Fail(w, http.StatusUnprocessableEntity, be.Code, be.Message, nil)
	case customError.ErrCodeInvalidRequest, customError.ErrCodeInvalidDate:
		response.Fail(w, http.StatusBadRequest, be.Code, be.Message, nil)
	default:
		response.InternalServerError(w, be.Message, err)
	}
}

// LoanTotals handles POST /loans/totals
func (h *CalculatorHandler) LoanTotals(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in := req.toInput()
	if invalid(w, validation.ValidateLoanInput(in)) {
		return
	}

	totals, err := h.service.LoanTotals(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, totals)
}

// LoanSchedule handles POST /loans/schedule
func (h *CalculatorHandler) LoanSchedule(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in := req.toInput()
	if invalid(w, validation.ValidateLoanInput(in)) {
		return
	}

	resp, err := h.service.LoanSchedule(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, resp)
}

// FDMaturity handles POST /deposits/fd
func (h *CalculatorHandler) FDMaturity(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in := req.toInput()
	if invalid(w, validation.ValidateDepositInput(in)) {
		return
	}

	res := h.service.FDMaturity(in)
	response.Success(w, DepositResponse{Result: res, Summary: h.service.DepositSummary(domain.ProductFD, in, res)})
}

// RDMaturity handles POST /deposits/rd
func (h *CalculatorHandler) RDMaturity(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in := req.toInput()
	if invalid(w, validation.ValidateDepositInput(in)) {
		return
	}

	res := h.service.RDMaturity(in)
	response.Success(w, DepositResponse{Result: res, Summary: h.service.DepositSummary(domain.ProductRD, in, res)})
}

// PrematurePayout handles POST /deposits/premature
func (h *CalculatorHandler) PrematurePayout(w http.ResponseWriter, r *http.Request) {
	var req PrematureRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in := req.toInput()
	if invalid(w, validation.ValidatePrematureInput(in)) {
		return
	}
	response.Success(w, h.service.PrematurePayout(in))
}

// NayakWC handles POST /msme/nayak
func (h *CalculatorHandler) NayakWC(w http.ResponseWriter, r *http.Request) {
	var req NayakRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	turnover := utils.ToDecimal(req.Turnover)
	if invalid(w, validation.ValidateMSMEInput(domain.MSMEInput{Turnover: turnover})) {
		return
	}
	response.Success(w, h.service.NayakWC(turnover))
}

// TandonMPBF handles POST /msme/tandon
func (h *CalculatorHandler) TandonMPBF(w http.ResponseWriter, r *http.Request) {
	var req TandonRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in := domain.MSMEInput{
		CurrentAssets:      utils.ToDecimal(req.CurrentAssets),
		CurrentLiabilities: utils.ToDecimal(req.CurrentLiabilities),
	}
	if invalid(w, validation.ValidateMSMEInput(in)) {
		return
	}
	response.Success(w, h.service.TandonMPBF(in.CurrentAssets, in.CurrentLiabilities))
}

// FinancialRatios handles POST /msme/ratios
func (h *CalculatorHandler) FinancialRatios(w http.ResponseWriter, r *http.Request) {
	var req RatioRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, h.service.FinancialRatios(req.toInput()))
}

// DrawingPower handles POST /msme/drawing-power
func (h *CalculatorHandler) DrawingPower(w http.ResponseWriter, r *http.Request) {
	var req DrawingPowerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, h.service.DrawingPower(req.toInput()))
}

// CGTMSEFee handles POST /msme/cgtmse
func (h *CalculatorHandler) CGTMSEFee(w http.ResponseWriter, r *http.Request) {
	var req CGTMSERequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, h.service.CGTMSEFee(utils.ToDecimal(req.Amount), req.SocialCategory))
}

// SlabRate handles POST /shg/slab-rate
func (h *CalculatorHandler) SlabRate(w http.ResponseWriter, r *http.Request) {
	var req SlabRateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rate := h.service.SlabRate(utils.ToDecimal(req.Amount), toSlabTable(req.Slabs), utils.ToDecimal(req.ManualRate))
	response.Success(w, SlabRateResponse{Rate: rate})
}

// SHGSchedule handles POST /shg/schedule
func (h *CalculatorHandler) SHGSchedule(w http.ResponseWriter, r *http.Request) {
	var req SHGScheduleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in := domain.LoanInput{
		Principal:    utils.ToDecimal(req.Principal),
		AnnualRate:   utils.ToDecimal(req.AnnualRate),
		TenureMonths: utils.ToInt(req.TenureMonths),
	}
	if invalid(w, validation.ValidateLoanInput(in)) {
		return
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.service.SHGSchedule(r.Context(), in.Principal, in.AnnualRate, in.TenureMonths, start)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, entries)
}

// Outstanding handles POST /shg/outstanding
func (h *CalculatorHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	var req OutstandingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	if invalid(w, validation.ValidateOutstandingInput(in)) {
		return
	}

	res, err := h.service.Outstanding(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, res)
}

// Reconcile handles POST /shg/reconcile
func (h *CalculatorHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	group, members, review, err := req.toInput()
	if err != nil {
		writeError(w, err)
		return
	}
	if invalid(w, validation.ValidateSHGMembers(members)) {
		return
	}

	rec, err := h.service.ReconcileGroup(r.Context(), group, members, review)
	if err != nil {
		writeError(w, err)
		return
	}
	response.Success(w, rec)
}
