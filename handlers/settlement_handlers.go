package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/homesplit/homesplit-backend/middleware"
	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

// CreateSettlement handles manual creation of a settlement for an expense split
func CreateSettlement(c *gin.Context) {
	var req models.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	resp, err := handlerServices.SettlementService.CreateSettlement(middleware.GetUserID(c), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, resp)
}

// ListSettlements returns settlements involving a member, filtered by the
// status of the underlying expense (default APPROVED).
func ListSettlements(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	expenseStatus := models.ExpenseStatus(c.DefaultQuery("expenseStatus", string(models.ExpenseApproved)))
	if expenseStatus != models.ExpenseApproved && expenseStatus != models.ExpensePending {
		utils.HandleError(c, utils.NewValidationError("invalid expenseStatus"))
		return
	}

	resp, err := handlerServices.SettlementService.ListForMember(middleware.GetUserID(c), memberID, householdID, expenseStatus)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// ListAwaitingApproval returns settlements waiting on the member's approval
func ListAwaitingApproval(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	resp, err := handlerServices.SettlementService.ListAwaitingApprovalForReceiver(middleware.GetUserID(c), memberID, householdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// ToggleSettlementStatus flips a settlement between pending and awaiting
// approval on behalf of the owing member
func ToggleSettlementStatus(c *gin.Context) {
	settlementID, ok := parseIDParam(c, "settlementId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	resp, err := handlerServices.SettlementService.ToggleStatus(middleware.GetUserID(c), settlementID, memberID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// ApproveSettlement completes a settlement on behalf of the receiving member
func ApproveSettlement(c *gin.Context) {
	settlementID, ok := parseIDParam(c, "settlementId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	resp, err := handlerServices.SettlementService.Approve(middleware.GetUserID(c), settlementID, memberID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// RejectSettlement returns a settlement to pending on behalf of the
// receiving member
func RejectSettlement(c *gin.Context) {
	settlementID, ok := parseIDParam(c, "settlementId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	resp, err := handlerServices.SettlementService.Reject(middleware.GetUserID(c), settlementID, memberID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// CurrentMonthStats returns pending settlement totals for the current month
func CurrentMonthStats(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	resp, err := handlerServices.StatisticsService.CurrentMonthStats(middleware.GetUserID(c), memberID, householdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// LastThreeMonthsStats returns pending settlement totals for the last three months
func LastThreeMonthsStats(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	resp, err := handlerServices.StatisticsService.LastThreeMonthsStats(middleware.GetUserID(c), memberID, householdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}
