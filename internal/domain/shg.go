package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SHGLoan is a sub-loan disbursed to one member of a self-help group.
type SHGLoan struct {
	ID              uuid.UUID       `json:"id"`
	Amount          decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	StartDate       time.Time       `json:"startDate"`
	Tenure          int             `json:"tenure" validate:"gte=1,lte=600"`
	Rate            decimal.Decimal `json:"rate" validate:"decimal_gte=0,decimal_lte=100"`
	MissedEMIs      int             `json:"missedEmis"`
	PartialPayments decimal.Decimal `json:"partialPayments"`
}

// SHGMember exclusively owns its loans.
type SHGMember struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Loans []SHGLoan `json:"loans"`
}

// NewSHGMember returns a member with a fresh ID and no loans.
func NewSHGMember(name string) *SHGMember {
	return &SHGMember{ID: uuid.New(), Name: name}
}

// AddLoan attaches a loan to the member, assigning an ID when it has none.
func (m *SHGMember) AddLoan(loan SHGLoan) SHGLoan {
	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}
	m.Loans = append(m.Loans, loan)
	return loan
}

// RemoveLoan drops the loan with the given ID and reports whether it was found.
func (m *SHGMember) RemoveLoan(id uuid.UUID) bool {
	for i, l := range m.Loans {
		if l.ID == id {
			m.Loans = append(m.Loans[:i], m.Loans[i+1:]...)
			return true
		}
	}
	return false
}

// SHGGroup holds the sanction-level terms of a group. It is reconciled against
// member loans rather than linked to them.
type SHGGroup struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	SanctionAmount decimal.Decimal `json:"sanctionAmount"`
	StartDate      time.Time       `json:"startDate"`
	Tenure         int             `json:"tenure"`
	Slabs          SlabTable       `json:"slabs"`
	ManualRate     decimal.Decimal `json:"manualRate"`
}

// RemoveMember returns members without the one with id, dropping that member's
// loans with it. The input slice is left untouched.
func RemoveMember(members []SHGMember, id uuid.UUID) []SHGMember {
	out := make([]SHGMember, 0, len(members))
	for _, m := range members {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

// OutstandingInput asks for the position of one loan as of ReviewDate.
type OutstandingInput struct {
	Principal       decimal.Decimal `json:"principal" validate:"decimal_gt=0"`
	AnnualRate      decimal.Decimal `json:"annualRate" validate:"decimal_gte=0,decimal_lte=100"`
	TenureMonths    int             `json:"tenureMonths" validate:"gte=1,lte=600"`
	StartDate       time.Time       `json:"startDate"`
	ReviewDate      time.Time       `json:"reviewDate"`
	MissedEMIs      int             `json:"missedEmis"`
	PartialPayments decimal.Decimal `json:"partialPayments"`
}

type OutstandingResult struct {
	Outstanding     decimal.Decimal `json:"outstanding"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	EMIDue          decimal.Decimal `json:"emiDue"`
	MonthsElapsed   int             `json:"monthsElapsed"`
	EffectiveMonths int             `json:"effectiveMonths"`
	MonthsRemaining int             `json:"monthsRemaining"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
}

// LoanPosition is the review-date position of one member loan.
type LoanPosition struct {
	LoanID uuid.UUID `json:"loanId"`
	OutstandingResult
}

type MemberPosition struct {
	MemberID         uuid.UUID       `json:"memberId"`
	Name             string          `json:"name"`
	Loans            []LoanPosition  `json:"loans"`
	TotalDisbursed   decimal.Decimal `json:"totalDisbursed"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalEMIDue      decimal.Decimal `json:"totalEmiDue"`
}

// GroupReconciliation compares a group's sanction with what its members hold.
type GroupReconciliation struct {
	GroupID          uuid.UUID        `json:"groupId"`
	SanctionRate     decimal.Decimal  `json:"sanctionRate"`
	SanctionAmount   decimal.Decimal  `json:"sanctionAmount"`
	Disbursed        decimal.Decimal  `json:"disbursed"`
	Undisbursed      decimal.Decimal  `json:"undisbursed"`
	OverSanctioned   bool             `json:"overSanctioned"`
	TotalOutstanding decimal.Decimal  `json:"totalOutstanding"`
	TotalEMIDue      decimal.Decimal  `json:"totalEmiDue"`
	Members          []MemberPosition `json:"members"`
}
