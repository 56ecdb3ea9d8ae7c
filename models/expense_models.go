// models/expense_models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the approval state of an expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "PENDING"
	ExpenseApproved ExpenseStatus = "APPROVED"
)

// Expense represents a shared household expense
type Expense struct {
	ID          int64           `json:"id"`
	HouseholdID int64           `json:"householdId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Method      string          `json:"method"`
	Status      ExpenseStatus   `json:"status"`
	CreatedByID int64           `json:"createdById"`
	ReviewedBy  int64           `json:"reviewedById"`
	Splits      []ExpenseSplit  `json:"splits,omitempty"`
}

// ExpenseSplit is the portion of an expense attributed to one member.
// Splits are written once at expense creation and only removed when the
// whole expense is deleted.
type ExpenseSplit struct {
	ID        int64           `json:"id"`
	ExpenseID int64           `json:"expenseId"`
	MemberID  int64           `json:"memberId"`
	Amount    decimal.Decimal `json:"amount"`
}

// SplitRequest is one split line in an expense creation request
type SplitRequest struct {
	MemberID int64           `json:"memberId" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// CreateExpenseRequest request model
type CreateExpenseRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required"`
	Date     string          `json:"date" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Method   string          `json:"method" binding:"required"`
	Splits   []SplitRequest  `json:"splits" binding:"required,min=1"`
}

// ExpenseResponse response model
type ExpenseResponse struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Date      string          `json:"date"`
	Category  string          `json:"category"`
	Method    string          `json:"method"`
	Status    ExpenseStatus   `json:"status"`
	CreatedBy string          `json:"createdBy,omitempty"`
	Splits    []ExpenseSplit  `json:"splits,omitempty"`
}
