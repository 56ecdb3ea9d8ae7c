package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/homesplit/homesplit-backend/middleware"
	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

// CreateExpense handles recording an expense with its splits
func CreateExpense(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	resp, err := handlerServices.ExpenseService.CreateExpense(middleware.GetUserID(c), householdID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, resp)
}

// ListExpenses returns all expenses of a household, newest first
func ListExpenses(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}

	resp, err := handlerServices.ExpenseService.ListExpenses(middleware.GetUserID(c), householdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// GetExpense returns a single expense with its splits
func GetExpense(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(c, "expenseId")
	if !ok {
		return
	}

	resp, err := handlerServices.ExpenseService.GetExpense(middleware.GetUserID(c), householdID, expenseID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// ApproveExpense handles admin approval of a pending expense
func ApproveExpense(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(c, "expenseId")
	if !ok {
		return
	}

	resp, err := handlerServices.ExpenseService.ApproveExpense(middleware.GetUserID(c), householdID, expenseID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// RollbackExpense handles admin rollback of an approved expense to pending
func RollbackExpense(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(c, "expenseId")
	if !ok {
		return
	}

	resp, err := handlerServices.ExpenseService.RollbackExpense(middleware.GetUserID(c), householdID, expenseID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// RejectExpense handles admin rejection, deleting the expense and its splits
func RejectExpense(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(c, "expenseId")
	if !ok {
		return
	}

	if err := handlerServices.ExpenseService.RejectExpense(middleware.GetUserID(c), householdID, expenseID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"message": "expense rejected"})
}
