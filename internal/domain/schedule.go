package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationEntry is one month of a repayment schedule.
type AmortizationEntry struct {
	Month     int             `json:"month"`
	EMI       decimal.Decimal `json:"emi"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// SHGAmortizationEntry is an AmortizationEntry anchored to a calendar due date.
type SHGAmortizationEntry struct {
	AmortizationEntry
	DueDate time.Time `json:"dueDate"`
}

type ScheduleResponse struct {
	Totals   LoanTotals          `json:"totals"`
	Schedule []AmortizationEntry `json:"schedule"`
	Summary  []SummaryItem       `json:"summary,omitempty"`
}
