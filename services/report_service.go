package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

// ReportService exports a household's ledger as an Excel workbook
type ReportService struct {
	households  HouseholdStore
	expenses    *ExpenseService
	settlements *SettlementService
}

// NewReportService creates a new report service
func NewReportService(households HouseholdStore, expenses *ExpenseService, settlements *SettlementService) *ReportService {
	return &ReportService{
		households:  households,
		expenses:    expenses,
		settlements: settlements,
	}
}

// ExportHouseholdReport generates an Excel file with the household's
// expenses and the caller's settlements. The caller must be a member.
func (s *ReportService) ExportHouseholdReport(userID, householdID int64) (*excelize.File, string, error) {
	household, err := s.households.GetHouseholdByID(householdID)
	if err != nil {
		return nil, "", notFoundOr(err, utils.ErrHouseholdNotFound)
	}

	member, err := s.households.GetMemberByUserAndHousehold(userID, householdID)
	if err != nil {
		return nil, "", utils.NewUnauthorizedError("user is not a member of this household")
	}

	expenses, err := s.expenses.ListExpenses(userID, householdID)
	if err != nil {
		return nil, "", err
	}

	settlements, err := s.settlements.ListForMember(userID, member.ID, householdID, models.ExpenseApproved)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	if err := s.createExpenseSheet(f, expenses); err != nil {
		return nil, "", fmt.Errorf("failed to create expense sheet: %v", err)
	}
	if err := s.createSettlementSheet(f, settlements); err != nil {
		return nil, "", fmt.Errorf("failed to create settlement sheet: %v", err)
	}
	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Report_%s.xlsx",
		cleanFileName(household.Name),
		time.Now().Format("2006-01-02"))

	return f, filename, nil
}

// createExpenseSheet creates Sheet 1: Expenses
func (s *ReportService) createExpenseSheet(f *excelize.File, expenses []models.ExpenseResponse) error {
	sheetName := "Expenses"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headers := []string{"Date", "Category", "Method", "Amount", "Currency", "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, expense := range expenses {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), expense.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), expense.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), expense.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), expense.Amount.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), expense.Currency)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), string(expense.Status))
	}

	f.SetColWidth(sheetName, "A", "F", 15)
	return nil
}

// createSettlementSheet creates Sheet 2: Settlements
func (s *ReportService) createSettlementSheet(f *excelize.File, settlements []models.SettlementResponse) error {
	sheetName := "Settlements"
	f.NewSheet(sheetName)

	headers := []string{"Date", "From", "To", "Amount", "Currency", "Category", "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	for i, settlement := range settlements {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), settlement.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), settlement.FromMemberName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), settlement.ToMemberName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), settlement.Amount.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), settlement.Currency)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), settlement.ExpenseCategory)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), string(settlement.Status))
	}

	f.SetColWidth(sheetName, "A", "G", 15)
	return nil
}

// cleanFileName removes characters that are invalid in filenames
func cleanFileName(filename string) string {
	reg := regexp.MustCompile(`[<>:"/\\|?*]`)
	cleaned := reg.ReplaceAllString(filename, "_")
	cleaned = strings.TrimSpace(cleaned)
	return regexp.MustCompile(`\s+`).ReplaceAllString(cleaned, "_")
}
