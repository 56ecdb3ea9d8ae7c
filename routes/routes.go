package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/homesplit/homesplit-backend/auth"
	"github.com/homesplit/homesplit-backend/handlers"
	"github.com/homesplit/homesplit-backend/middleware"
	"github.com/homesplit/homesplit-backend/services"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, jwtManager *auth.JWTManager, mailer services.Mailer) {
	handlers.InitHandlers(jwtManager, mailer)

	v1 := router.Group("/api/v1")

	// Public endpoints
	v1.POST("/auth/register", handlers.Register)
	v1.GET("/auth/activate", handlers.Activate)
	v1.POST("/auth/login", handlers.Login)
	v1.GET("/auth/forgotPassword/sendOtp", handlers.SendPasswordResetOtp)
	v1.POST("/auth/forgotPassword/verifyOtp", handlers.VerifyPasswordResetOtp)
	v1.POST("/auth/forgotPassword/changePassword", handlers.ChangePassword)

	// Authenticated endpoints
	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(jwtManager))
	{
		// Household endpoints
		authed.POST("/households", handlers.CreateHousehold)
		authed.POST("/households/join", handlers.JoinHousehold)
		authed.GET("/households", handlers.ListHouseholds)
		authed.GET("/households/:householdId/members", handlers.ListMembers)

		// Expense endpoints
		authed.POST("/households/:householdId/expenses", handlers.CreateExpense)
		authed.GET("/households/:householdId/expenses", handlers.ListExpenses)
		authed.GET("/households/:householdId/expenses/:expenseId", handlers.GetExpense)
		authed.POST("/households/:householdId/expenses/:expenseId/approve", handlers.ApproveExpense)
		authed.POST("/households/:householdId/expenses/:expenseId/rollback", handlers.RollbackExpense)
		authed.POST("/households/:householdId/expenses/:expenseId/reject", handlers.RejectExpense)

		// Settlement endpoints
		authed.POST("/settlements", handlers.CreateSettlement)
		authed.GET("/households/:householdId/members/:memberId/settlements", handlers.ListSettlements)
		authed.GET("/households/:householdId/members/:memberId/settlements/awaitingApproval", handlers.ListAwaitingApproval)
		authed.POST("/settlements/:settlementId/members/:memberId/toggle", handlers.ToggleSettlementStatus)
		authed.POST("/settlements/:settlementId/members/:memberId/approve", handlers.ApproveSettlement)
		authed.POST("/settlements/:settlementId/members/:memberId/reject", handlers.RejectSettlement)

		// Statistics endpoints
		authed.GET("/households/:householdId/members/:memberId/statistics/currentMonth", handlers.CurrentMonthStats)
		authed.GET("/households/:householdId/members/:memberId/statistics/lastThreeMonths", handlers.LastThreeMonthsStats)

		// Report endpoint
		authed.GET("/households/:householdId/report", handlers.ExportHouseholdReport)
	}
}
