package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/homesplit/homesplit-backend/auth"
	"github.com/homesplit/homesplit-backend/repository"
	"github.com/homesplit/homesplit-backend/services"
	"github.com/homesplit/homesplit-backend/utils"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	AuthService       *services.AuthService
	HouseholdService  *services.HouseholdService
	ExpenseService    *services.ExpenseService
	SettlementService *services.SettlementService
	StatisticsService *services.StatisticsService
	ReportService     *services.ReportService
}

// NewHandlerServices wires repositories and services against the shared
// database connection.
func NewHandlerServices(jwtManager *auth.JWTManager, mailer services.Mailer) *HandlerServices {
	db := repository.GetDB()

	userRepo := repository.NewUserRepository(db)
	householdRepo := repository.NewHouseholdRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)

	settlementService := services.NewSettlementService(settlementRepo, expenseRepo, householdRepo)
	expenseService := services.NewExpenseService(expenseRepo, householdRepo, settlementService)
	householdService := services.NewHouseholdService(householdRepo)

	return &HandlerServices{
		AuthService:       services.NewAuthService(userRepo, mailer, jwtManager),
		HouseholdService:  householdService,
		ExpenseService:    expenseService,
		SettlementService: settlementService,
		StatisticsService: services.NewStatisticsService(settlementRepo, householdRepo),
		ReportService:     services.NewReportService(householdRepo, expenseService, settlementService),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers(jwtManager *auth.JWTManager, mailer services.Mailer) {
	handlerServices = NewHandlerServices(jwtManager, mailer)
}

// parseIDParam parses a path parameter as an int64 ID. On failure it writes
// a 400 response and reports false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.HandleError(c, utils.NewBadRequestError("invalid "+name))
		return 0, false
	}
	return id, true
}
