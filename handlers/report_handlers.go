package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/homesplit/homesplit-backend/middleware"
	"github.com/homesplit/homesplit-backend/utils"
)

// ExportHouseholdReport streams an Excel report of a household's expenses
// and settlements
func ExportHouseholdReport(c *gin.Context) {
	householdID, ok := parseIDParam(c, "householdId")
	if !ok {
		return
	}

	file, filename, err := handlerServices.ReportService.ExportHouseholdReport(middleware.GetUserID(c), householdID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Cache-Control", "no-cache")

	if err := file.Write(c.Writer); err != nil {
		slog.Error("failed to write report", "error", err, "householdId", householdID)
	}
}
