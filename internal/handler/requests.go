package handler

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/fincalc-engine/internal/domain"
	customError "github.com/segyhp/fincalc-engine/pkg/errors"
	"github.com/segyhp/fincalc-engine/pkg/utils"
)

// Numeric request fields are typed any: callers may send JSON numbers or strings,
// and anything unparsable becomes zero.

type LoanRequest struct {
	Principal    any    `json:"principal"`
	AnnualRate   any    `json:"annualRate"`
	TenureMonths any    `json:"tenureMonths"`
	Method       string `json:"method"`
	EMI          any    `json:"emi"`
}

func (r LoanRequest) toInput() domain.LoanInput {
	return domain.LoanInput{
		Principal:    utils.ToDecimal(r.Principal),
		AnnualRate:   utils.ToDecimal(r.AnnualRate),
		TenureMonths: utils.ToInt(r.TenureMonths),
		Method:       domain.LoanMethod(r.Method),
		EMI:          utils.ToDecimal(r.EMI),
	}
}

type DepositRequest struct {
	Principal            any `json:"principal"`
	AnnualRate           any `json:"annualRate"`
	TenureMonths         any `json:"tenureMonths"`
	CompoundingFrequency any `json:"compoundingFrequency"`
}

func (r DepositRequest) toInput() domain.DepositInput {
	return domain.DepositInput{
		Principal:            utils.ToDecimal(r.Principal),
		AnnualRate:           utils.ToDecimal(r.AnnualRate),
		TenureMonths:         utils.ToInt(r.TenureMonths),
		CompoundingFrequency: utils.ToInt(r.CompoundingFrequency),
	}
}

type PrematureRequest struct {
	Product               string `json:"product"`
	Principal             any    `json:"principal"`
	BookedRate            any    `json:"bookedRate"`
	CardRateForTenure     any    `json:"cardRateForTenure"`
	Penalty               any    `json:"penalty"`
	CompletedMonths       any    `json:"completedMonths"`
	CompletedInstallments any    `json:"completedInstallments"`
	InterestAlreadyPaid   any    `json:"interestAlreadyPaid"`
	CompoundingFrequency  any    `json:"compoundingFrequency"`
}

func (r PrematureRequest) toInput() domain.PrematureInput {
	return domain.PrematureInput{
		Product:               domain.ParseDepositProduct(r.Product),
		Principal:             utils.ToDecimal(r.Principal),
		BookedRate:            utils.ToDecimal(r.BookedRate),
		CardRateForTenure:     utils.ToDecimal(r.CardRateForTenure),
		Penalty:               utils.ToDecimal(r.Penalty),
		CompletedMonths:       utils.ToInt(r.CompletedMonths),
		CompletedInstallments: utils.ToInt(r.CompletedInstallments),
		InterestAlreadyPaid:   utils.ToDecimal(r.InterestAlreadyPaid),
		CompoundingFrequency:  utils.ToInt(r.CompoundingFrequency),
	}
}

type NayakRequest struct {
	Turnover any `json:"turnover"`
}

type TandonRequest struct {
	CurrentAssets      any `json:"currentAssets"`
	CurrentLiabilities any `json:"currentLiabilities"`
}

type RatioRequest struct {
	PAT                any `json:"pat"`
	Depreciation       any `json:"depreciation"`
	Interest           any `json:"interest"`
	Obligation         any `json:"obligation"`
	CurrentAssets      any `json:"currentAssets"`
	CurrentLiabilities any `json:"currentLiabilities"`
	Inventory          any `json:"inventory"`
	TOL                any `json:"tol"`
	TNW                any `json:"tnw"`
	FixedCost          any `json:"fixedCost"`
	Sales              any `json:"sales"`
	VariableCost       any `json:"variableCost"`
}

func (r RatioRequest) toInput() domain.RatioInput {
	return domain.RatioInput{
		PAT:                utils.ToDecimal(r.PAT),
		Depreciation:       utils.ToDecimal(r.Depreciation),
		Interest:           utils.ToDecimal(r.Interest),
		Obligation:         utils.ToDecimal(r.Obligation),
		CurrentAssets:      utils.ToDecimal(r.CurrentAssets),
		CurrentLiabilities: utils.ToDecimal(r.CurrentLiabilities),
		Inventory:          utils.ToDecimal(r.Inventory),
		TOL:                utils.ToDecimal(r.TOL),
		TNW:                utils.ToDecimal(r.TNW),
		FixedCost:          utils.ToDecimal(r.FixedCost),
		Sales:              utils.ToDecimal(r.Sales),
		VariableCost:       utils.ToDecimal(r.VariableCost),
	}
}

type DrawingPowerRequest struct {
	Stock        any `json:"stock"`
	Creditors    any `json:"creditors"`
	StockMargin  any `json:"stockMargin"`
	Debtors      any `json:"debtors"`
	DebtorMargin any `json:"debtorMargin"`
}

func (r DrawingPowerRequest) toInput() domain.DrawingPowerInput {
	return domain.DrawingPowerInput{
		Stock:        utils.ToDecimal(r.Stock),
		Creditors:    utils.ToDecimal(r.Creditors),
		StockMargin:  utils.ToDecimal(r.StockMargin),
		Debtors:      utils.ToDecimal(r.Debtors),
		DebtorMargin: utils.ToDecimal(r.DebtorMargin),
	}
}

type CGTMSERequest struct {
	Amount         any  `json:"amount"`
	SocialCategory bool `json:"socialCategory"`
}

type SlabRequest struct {
	Limit any `json:"limit"`
	Rate  any `json:"rate"`
}

func toSlabTable(slabs []SlabRequest) domain.SlabTable {
	table := make(domain.SlabTable, 0, len(slabs))
	for _, s := range slabs {
		table = append(table, domain.InterestSlab{Limit: utils.ToDecimal(s.Limit), Rate: utils.ToDecimal(s.Rate)})
	}
	return table
}

type SlabRateRequest struct {
	Amount     any           `json:"amount"`
	Slabs      []SlabRequest `json:"slabs"`
	ManualRate any           `json:"manualRate"`
}

type SHGScheduleRequest struct {
	Principal    any    `json:"principal"`
	AnnualRate   any    `json:"annualRate"`
	TenureMonths any    `json:"tenureMonths"`
	StartDate    string `json:"startDate"`
}

type OutstandingRequest struct {
	Principal       any    `json:"principal"`
	AnnualRate      any    `json:"annualRate"`
	TenureMonths    any    `json:"tenureMonths"`
	StartDate       string `json:"startDate"`
	ReviewDate      string `json:"reviewDate"`
	MissedEMIs      any    `json:"missedEmis"`
	PartialPayments any    `json:"partialPayments"`
}

func (r OutstandingRequest) toInput() (domain.OutstandingInput, error) {
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return domain.OutstandingInput{}, err
	}
	review, err := parseDate("reviewDate", r.ReviewDate)
	if err != nil {
		return domain.OutstandingInput{}, err
	}
	return domain.OutstandingInput{
		Principal:       utils.ToDecimal(r.Principal),
		AnnualRate:      utils.ToDecimal(r.AnnualRate),
		TenureMonths:    utils.ToInt(r.TenureMonths),
		StartDate:       start,
		ReviewDate:      review,
		MissedEMIs:      utils.ToInt(r.MissedEMIs),
		PartialPayments: utils.ToDecimal(r.PartialPayments),
	}, nil
}

type SHGLoanRequest struct {
	ID              string `json:"id"`
	Amount          any    `json:"amount"`
	StartDate       string `json:"startDate"`
	Tenure          any    `json:"tenure"`
	Rate            any    `json:"rate"`
	MissedEMIs      any    `json:"missedEmis"`
	PartialPayments any    `json:"partialPayments"`
}

type SHGMemberRequest struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Loans []SHGLoanRequest `json:"loans"`
}

type SHGGroupRequest struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	SanctionAmount any           `json:"sanctionAmount"`
	StartDate      string        `json:"startDate"`
	Tenure         any           `json:"tenure"`
	Slabs          []SlabRequest `json:"slabs"`
	ManualRate     any           `json:"manualRate"`
}

type ReconcileRequest struct {
	Group      SHGGroupRequest    `json:"group"`
	Members    []SHGMemberRequest `json:"members"`
	ReviewDate string             `json:"reviewDate"`
}

func (r ReconcileRequest) toInput() (domain.SHGGroup, []domain.SHGMember, time.Time, error) {
	review, err := parseDate("reviewDate", r.ReviewDate)
	if err != nil {
		return domain.SHGGroup{}, nil, time.Time{}, err
	}

	groupID, err := parseID(r.Group.ID)
	if err != nil {
		return domain.SHGGroup{}, nil, time.Time{}, err
	}
	group := domain.SHGGroup{
		ID:             groupID,
		Name:           r.Group.Name,
		SanctionAmount: utils.ToDecimal(r.Group.SanctionAmount),
		Tenure:         utils.ToInt(r.Group.Tenure),
		Slabs:          toSlabTable(r.Group.Slabs),
		ManualRate:     utils.ToDecimal(r.Group.ManualRate),
	}
	if r.Group.StartDate != "" {
		if group.StartDate, err = parseDate("group.startDate", r.Group.StartDate); err != nil {
			return domain.SHGGroup{}, nil, time.Time{}, err
		}
	}

	members := make([]domain.SHGMember, 0, len(r.Members))
	for _, m := range r.Members {
		memberID, err := parseID(m.ID)
		if err != nil {
			return domain.SHGGroup{}, nil, time.Time{}, err
		}
		member := domain.SHGMember{ID: memberID, Name: m.Name}
		for _, l := range m.Loans {
			loanID, err := parseID(l.ID)
			if err != nil {
				return domain.SHGGroup{}, nil, time.Time{}, err
			}
			start, err := parseDate("loan.startDate", l.StartDate)
			if err != nil {
				return domain.SHGGroup{}, nil, time.Time{}, err
			}
			member.AddLoan(domain.SHGLoan{
				ID:              loanID,
				Amount:          utils.ToDecimal(l.Amount),
				StartDate:       start,
				Tenure:          utils.ToInt(l.Tenure),
				Rate:            utils.ToDecimal(l.Rate),
				MissedEMIs:      utils.ToInt(l.MissedEMIs),
				PartialPayments: utils.ToDecimal(l.PartialPayments),
			})
		}
		members = append(members, member)
	}
	return group, members, review, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, customError.WrapInvalidDate(field, value)
	}
	return t, nil
}

// parseID accepts an empty ID, which is assigned later.
func parseID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, customError.WrapInvalidRequest(err)
	}
	return id, nil
}
