// models/settlement_models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus is the lifecycle state of a settlement.
//
// PENDING -> AWAITING_APPROVAL when the debtor marks the debt as paid,
// AWAITING_APPROVAL -> COMPLETED when the creditor confirms receipt,
// AWAITING_APPROVAL -> PENDING when the debtor backs out or the creditor
// rejects. COMPLETED is terminal.
type SettlementStatus string

const (
	SettlementPending          SettlementStatus = "PENDING"
	SettlementAwaitingApproval SettlementStatus = "AWAITING_APPROVAL"
	SettlementCompleted        SettlementStatus = "COMPLETED"
)

// Settlement records one member owing another for a single expense split.
// Counterparties are fixed at creation: FromMember owes, ToMember is owed.
type Settlement struct {
	ID           int64            `json:"id"`
	FromMemberID int64            `json:"fromMemberId"`
	ToMemberID   int64            `json:"toMemberId"`
	SplitID      int64            `json:"splitId"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	Date         time.Time        `json:"date"`
	Status       SettlementStatus `json:"status"`

	// Populated by joined queries for display purposes
	FromMemberName  string `json:"fromMemberName,omitempty"`
	ToMemberName    string `json:"toMemberName,omitempty"`
	ExpenseID       int64  `json:"-"`
	ExpenseCategory string `json:"expenseCategory,omitempty"`
}

// CreateSettlementRequest request model
type CreateSettlementRequest struct {
	ExpenseID    int64 `json:"expenseId" binding:"required"`
	SplitID      int64 `json:"splitId" binding:"required"`
	FromMemberID int64 `json:"fromMemberId" binding:"required"`
	ToMemberID   int64 `json:"toMemberId" binding:"required"`
}

// SettlementResponse response model
type SettlementResponse struct {
	ID              int64            `json:"id"`
	FromMemberID    int64            `json:"fromMemberId"`
	ToMemberID      int64            `json:"toMemberId"`
	FromMemberName  string           `json:"fromMemberName,omitempty"`
	ToMemberName    string           `json:"toMemberName,omitempty"`
	SplitID         int64            `json:"splitId"`
	Amount          decimal.Decimal  `json:"amount"`
	Currency        string           `json:"currency"`
	Date            string           `json:"date"`
	Status          SettlementStatus `json:"status"`
	ExpenseCategory string           `json:"expenseCategory,omitempty"`
}

// SettlementStats summarizes a member's pending exposure over a time window
type SettlementStats struct {
	PendingSettlements []SettlementResponse `json:"pendingSettlements"`
	TotalPendingAmount decimal.Decimal      `json:"totalPendingAmount"`
}

// ToResponse converts a settlement to its API representation
func (s *Settlement) ToResponse() SettlementResponse {
	return SettlementResponse{
		ID:              s.ID,
		FromMemberID:    s.FromMemberID,
		ToMemberID:      s.ToMemberID,
		FromMemberName:  s.FromMemberName,
		ToMemberName:    s.ToMemberName,
		SplitID:         s.SplitID,
		Amount:          s.Amount,
		Currency:        s.Currency,
		Date:            s.Date.Format("2006-01-02"),
		Status:          s.Status,
		ExpenseCategory: s.ExpenseCategory,
	}
}
