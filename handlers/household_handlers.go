package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/homesplit/homesplit-backend/middleware"
	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

// CreateHousehold handles creating a household with the caller as admin
func CreateHousehold(c *gin.Context) {
	var req models.CreateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	resp, err := handlerServices.HouseholdService.CreateHousehold(middleware.GetUserID(c), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, resp)
}

// JoinHousehold handles joining a household by its join code
func JoinHousehold(c *gin.Context) {
	var req models.JoinHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	resp, err := handlerServices.HouseholdService.JoinHousehold(middleware.GetUserID(c), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// ListHouseholds returns the households the caller belongs to
func ListHouseholds(c *gin.Context) {
	resp, err := handlerServices.HouseholdService.ListHouseholds(middleware.GetUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// ListMembers returns the members of a household
func ListMembers(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}

	resp, err := handlerServices.HouseholdService.ListMembers(middleware.GetUserID(c), householdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}
