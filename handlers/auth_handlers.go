package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

// Register handles user registration
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	resp, err := handlerServices.AuthService.Register(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, resp)
}

// Activate handles account activation via the emailed token
func Activate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.HandleError(c, utils.NewValidationError("token is required"))
		return
	}

	if err := handlerServices.AuthService.Activate(token); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"message": "account activated"})
}

// Login handles user login
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	resp, err := handlerServices.AuthService.Login(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}

// SendPasswordResetOtp emails a one-time password for a password reset
func SendPasswordResetOtp(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.HandleError(c, utils.NewValidationError("email is required"))
		return
	}

	if err := handlerServices.AuthService.SendPasswordResetOtp(email); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"message": "otp sent"})
}

// VerifyPasswordResetOtp checks the one-time password for a password reset
func VerifyPasswordResetOtp(c *gin.Context) {
	var req models.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	valid, err := handlerServices.AuthService.VerifyPasswordResetOtp(req.Email, req.Otp)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"valid": valid})
}

// ChangePassword sets a new password after a verified reset
func ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewValidationError(err.Error()))
		return
	}

	if err := handlerServices.AuthService.ChangePassword(req.Email, req.NewPassword); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"message": "password changed"})
}
