package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homesplit/homesplit-backend/models"
)

func newStatisticsFixture(t *testing.T) (*fixture, *StatisticsService) {
	f := newFixture(t)
	service := NewStatisticsService(f.settlements, f.households)
	service.now = func() time.Time {
		return time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	}
	return f, service
}

// addPendingDebt seeds a settlement directly into the store with a given
// date, bypassing the expense workflow.
func addPendingDebt(t *testing.T, f *fixture, debtor testAccount, amount string, date time.Time, status models.SettlementStatus) {
	t.Helper()
	expense := f.groceriesOn(t, date)
	var split models.ExpenseSplit
	for _, candidate := range expense.Splits {
		if candidate.MemberID == debtor.memberID {
			split = candidate
		}
	}
	require.NotZero(t, split.ID)

	settlement := &models.Settlement{
		FromMemberID: debtor.memberID,
		ToMemberID:   f.alice.memberID,
		SplitID:      split.ID,
		Amount:       decimal.RequireFromString(amount),
		Currency:     "EUR",
		Date:         date,
		Status:       status,
	}
	require.NoError(t, f.settlements.CreateSettlement(settlement))
}

// groceriesOn creates an approved expense dated the given day without
// materializing settlements, so tests control the settlement rows directly.
func (f *fixture) groceriesOn(t *testing.T, date time.Time) *models.Expense {
	t.Helper()
	expense := &models.Expense{
		HouseholdID: f.householdID,
		Amount:      decimal.RequireFromString("90.00"),
		Currency:    "EUR",
		Date:        date,
		Category:    "Groceries",
		Method:      "CARD",
		Status:      models.ExpenseApproved,
		CreatedByID: f.alice.memberID,
		ReviewedBy:  f.alice.memberID,
		Splits: []models.ExpenseSplit{
			{MemberID: f.alice.memberID, Amount: decimal.RequireFromString("30.00")},
			{MemberID: f.bob.memberID, Amount: decimal.RequireFromString("30.00")},
			{MemberID: f.cara.memberID, Amount: decimal.RequireFromString("30.00")},
		},
	}
	require.NoError(t, f.expenses.CreateExpense(expense))
	return expense
}

func TestCurrentMonthStats(t *testing.T) {
	f, service := newStatisticsFixture(t)

	inMonth := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.July, 28, 0, 0, 0, 0, time.UTC)

	addPendingDebt(t, f, f.bob, "30.00", inMonth, models.SettlementPending)
	addPendingDebt(t, f, f.bob, "12.50", inMonth.AddDate(0, 0, 10), models.SettlementPending)
	addPendingDebt(t, f, f.bob, "99.00", lastMonth, models.SettlementPending)

	stats, err := service.CurrentMonthStats(f.bob.userID, f.bob.memberID, f.householdID)
	require.NoError(t, err)

	assert.Len(t, stats.PendingSettlements, 2)
	assert.True(t, stats.TotalPendingAmount.Equal(decimal.RequireFromString("42.50")),
		"got total %s", stats.TotalPendingAmount)
}

func TestCurrentMonthStatsCountsOnlyPendingDebts(t *testing.T) {
	f, service := newStatisticsFixture(t)

	inMonth := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	addPendingDebt(t, f, f.bob, "30.00", inMonth, models.SettlementPending)
	addPendingDebt(t, f, f.bob, "30.00", inMonth, models.SettlementAwaitingApproval)
	addPendingDebt(t, f, f.bob, "30.00", inMonth, models.SettlementCompleted)
	// Cara's debt does not show up in Bob's stats.
	addPendingDebt(t, f, f.cara, "30.00", inMonth, models.SettlementPending)

	stats, err := service.CurrentMonthStats(f.bob.userID, f.bob.memberID, f.householdID)
	require.NoError(t, err)

	assert.Len(t, stats.PendingSettlements, 1)
	assert.True(t, stats.TotalPendingAmount.Equal(decimal.RequireFromString("30.00")))
}

func TestLastThreeMonthsStats(t *testing.T) {
	f, service := newStatisticsFixture(t)

	within := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	tooOld := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	addPendingDebt(t, f, f.bob, "15.00", within, models.SettlementPending)
	addPendingDebt(t, f, f.bob, "99.00", tooOld, models.SettlementPending)

	stats, err := service.LastThreeMonthsStats(f.bob.userID, f.bob.memberID, f.householdID)
	require.NoError(t, err)

	assert.Len(t, stats.PendingSettlements, 1)
	assert.True(t, stats.TotalPendingAmount.Equal(decimal.RequireFromString("15.00")))
}

func TestStatsEmptyWindow(t *testing.T) {
	f, service := newStatisticsFixture(t)

	stats, err := service.CurrentMonthStats(f.bob.userID, f.bob.memberID, f.householdID)
	require.NoError(t, err)

	assert.Empty(t, stats.PendingSettlements)
	assert.True(t, stats.TotalPendingAmount.IsZero())
}

func TestStatsAuthorization(t *testing.T) {
	f, service := newStatisticsFixture(t)

	_, err := service.CurrentMonthStats(f.bob.userID, f.cara.memberID, f.householdID)
	assertAppError(t, err, http.StatusForbidden)

	_, err = service.LastThreeMonthsStats(f.bob.userID, f.bob.memberID, 999)
	assertAppError(t, err, http.StatusNotFound)
}
