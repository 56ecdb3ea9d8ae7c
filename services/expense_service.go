package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

// ExpenseService handles the expense ledger: creation with split lines,
// listing, and the admin approval workflow that feeds the settlement engine.
type ExpenseService struct {
	expenses    ExpenseStore
	households  HouseholdStore
	settlements *SettlementService
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenses ExpenseStore, households HouseholdStore, settlements *SettlementService) *ExpenseService {
	return &ExpenseService{
		expenses:    expenses,
		households:  households,
		settlements: settlements,
	}
}

// CreateExpense records an expense with its split lines. Split amounts must
// sum exactly to the expense amount. Expenses created by the household admin
// are approved immediately (and settlements materialized); expenses created
// by regular members start PENDING.
func (s *ExpenseService) CreateExpense(userID, householdID int64, req *models.CreateExpenseRequest) (*models.ExpenseResponse, error) {
	household, err := s.households.GetHouseholdByID(householdID)
	if err != nil {
		return nil, notFoundOr(err, utils.ErrHouseholdNotFound)
	}

	member, err := s.households.GetMemberByUserAndHousehold(userID, household.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewUnauthorizedError("user is not a member of this household")
		}
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	admin, err := s.households.GetAdminMember(household.ID)
	if err != nil {
		return nil, notFoundOr(err, "Household admin")
	}

	if err := utils.ValidatePositiveAmount(req.Amount, "expense amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNotEmpty(req.Splits, "splits"); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, utils.NewValidationError("date must be in YYYY-MM-DD format")
	}

	splitAmounts := make([]decimal.Decimal, 0, len(req.Splits))
	splits := make([]models.ExpenseSplit, 0, len(req.Splits))
	for _, split := range req.Splits {
		if err := utils.ValidatePositiveAmount(split.Amount, "split amount"); err != nil {
			return nil, err
		}
		if _, err := s.households.GetMemberByID(split.MemberID); err != nil {
			return nil, notFoundOr(err, utils.ErrMemberNotFound)
		}
		splitAmounts = append(splitAmounts, split.Amount)
		splits = append(splits, models.ExpenseSplit{
			MemberID: split.MemberID,
			Amount:   split.Amount,
		})
	}
	if err := utils.ValidateSplitsSum(req.Amount, splitAmounts); err != nil {
		return nil, err
	}

	status := models.ExpensePending
	if member.Role == models.RoleAdmin {
		status = models.ExpenseApproved
	}

	expense := &models.Expense{
		HouseholdID: household.ID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Date:        date,
		Category:    req.Category,
		Method:      req.Method,
		Status:      status,
		CreatedByID: member.ID,
		ReviewedBy:  admin.ID,
		Splits:      splits,
	}
	if err := s.expenses.CreateExpense(expense); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	if expense.Status == models.ExpenseApproved {
		if err := s.settlements.MaterializeSettlements(expense); err != nil {
			return nil, err
		}
	}

	return s.toResponse(expense), nil
}

// ListExpenses returns all expenses of a household, newest first
func (s *ExpenseService) ListExpenses(userID, householdID int64) ([]models.ExpenseResponse, error) {
	if err := s.requireMembership(userID, householdID); err != nil {
		return nil, err
	}

	expenses, err := s.expenses.ListExpensesByHousehold(householdID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	responses := make([]models.ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		responses = append(responses, *s.toResponse(expense))
	}
	return responses, nil
}

// GetExpense returns a single expense scoped to the household
func (s *ExpenseService) GetExpense(userID, householdID, expenseID int64) (*models.ExpenseResponse, error) {
	if err := s.requireMembership(userID, householdID); err != nil {
		return nil, err
	}

	expense, err := s.expenses.GetExpenseByIDAndHousehold(expenseID, householdID)
	if err != nil {
		return nil, notFoundOr(err, utils.ErrExpenseNotFound)
	}
	return s.toResponse(expense), nil
}

// ApproveExpense transitions a PENDING expense to APPROVED and materializes
// its settlements. Admin only.
func (s *ExpenseService) ApproveExpense(userID, householdID, expenseID int64) (*models.ExpenseResponse, error) {
	expense, err := s.requireAdminAndExpense(userID, householdID, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.Status != models.ExpensePending {
		return nil, utils.NewInvalidStateError("only a pending expense can be approved")
	}

	if err := s.expenses.UpdateExpenseStatus(expense.ID, models.ExpenseApproved); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	expense.Status = models.ExpenseApproved

	if err := s.settlements.MaterializeSettlements(expense); err != nil {
		return nil, err
	}
	return s.toResponse(expense), nil
}

// RollbackExpense transitions an APPROVED expense back to PENDING and
// retracts its settlements. A rollback is refused once any settlement of the
// expense is COMPLETED, because money has already changed hands; otherwise
// the expense's PENDING and AWAITING_APPROVAL settlements are deleted so no
// settlement outlives the approval that produced it. Admin only.
func (s *ExpenseService) RollbackExpense(userID, householdID, expenseID int64) (*models.ExpenseResponse, error) {
	expense, err := s.requireAdminAndExpense(userID, householdID, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.Status != models.ExpenseApproved {
		return nil, utils.NewInvalidStateError("only an approved expense can be rolled back")
	}

	if err := s.settlements.RetractSettlements(expense.ID); err != nil {
		return nil, err
	}
	if err := s.expenses.UpdateExpenseStatus(expense.ID, models.ExpensePending); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	expense.Status = models.ExpensePending

	return s.toResponse(expense), nil
}

// RejectExpense deletes an expense together with its splits. Admin only.
func (s *ExpenseService) RejectExpense(userID, householdID, expenseID int64) error {
	expense, err := s.requireAdminAndExpense(userID, householdID, expenseID)
	if err != nil {
		return err
	}

	if err := s.expenses.DeleteExpense(expense.ID); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	return nil
}

func (s *ExpenseService) requireMembership(userID, householdID int64) error {
	if _, err := s.households.GetHouseholdByID(householdID); err != nil {
		return notFoundOr(err, utils.ErrHouseholdNotFound)
	}
	if _, err := s.households.GetMemberByUserAndHousehold(userID, householdID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.NewUnauthorizedError("user is not a member of this household")
		}
		return utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return nil
}

func (s *ExpenseService) requireAdminAndExpense(userID, householdID, expenseID int64) (*models.Expense, error) {
	member, err := s.households.GetMemberByUserAndHousehold(userID, householdID)
	if err != nil {
		return nil, notFoundOr(err, utils.ErrMemberNotFound)
	}
	if member.Role != models.RoleAdmin {
		return nil, utils.NewUnauthorizedError("only the household admin can perform this action")
	}

	expense, err := s.expenses.GetExpenseByIDAndHousehold(expenseID, householdID)
	if err != nil {
		return nil, notFoundOr(err, utils.ErrExpenseNotFound)
	}
	return expense, nil
}

func (s *ExpenseService) toResponse(expense *models.Expense) *models.ExpenseResponse {
	return &models.ExpenseResponse{
		ID:       expense.ID,
		Amount:   expense.Amount,
		Currency: expense.Currency,
		Date:     expense.Date.Format("2006-01-02"),
		Category: expense.Category,
		Method:   expense.Method,
		Status:   expense.Status,
		Splits:   expense.Splits,
	}
}
