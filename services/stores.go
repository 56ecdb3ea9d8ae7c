package services

import (
	"time"

	"github.com/homesplit/homesplit-backend/models"
)

// The service layer talks to persistence through these narrow interfaces.
// repository.* types implement them against Postgres; tests substitute
// in-memory fakes. Missing rows are reported as sql.ErrNoRows by both.

// UserStore persists user accounts and password-reset OTPs
type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByActivationToken(token string) (*models.User, error)
	ActivateUser(id int64) error
	UpdatePassword(email, passwordHash string) error
	CreatePasswordReset(reset *models.PasswordReset) error
	GetPasswordReset(userID int64, otp int) (*models.PasswordReset, error)
	DeletePasswordReset(id int64) error
}

// HouseholdStore persists households and memberships
type HouseholdStore interface {
	CreateHousehold(household *models.Household, admin *models.HouseholdMember) error
	HouseholdNameExists(name string) (bool, error)
	GetHouseholdByID(id int64) (*models.Household, error)
	GetHouseholdByCode(code string) (*models.Household, error)
	CreateMember(member *models.HouseholdMember) error
	GetMemberByID(id int64) (*models.HouseholdMember, error)
	GetMemberByUserAndHousehold(userID, householdID int64) (*models.HouseholdMember, error)
	GetAdminMember(householdID int64) (*models.HouseholdMember, error)
	ListMembersByHousehold(householdID int64) ([]*models.HouseholdMember, error)
	ListHouseholdsByUser(userID int64) ([]models.HouseholdSummary, error)
}

// ExpenseStore persists expenses and their split lines
type ExpenseStore interface {
	CreateExpense(expense *models.Expense) error
	GetExpenseByID(id int64) (*models.Expense, error)
	GetExpenseByIDAndHousehold(id, householdID int64) (*models.Expense, error)
	ListExpensesByHousehold(householdID int64) ([]*models.Expense, error)
	UpdateExpenseStatus(id int64, status models.ExpenseStatus) error
	DeleteExpense(id int64) error
	GetSplitByID(id int64) (*models.ExpenseSplit, error)
}

// SettlementStore persists settlements
type SettlementStore interface {
	CreateSettlement(settlement *models.Settlement) error
	CreateSettlementsIfAbsent(settlements []*models.Settlement) error
	GetSettlementByID(id int64) (*models.Settlement, error)
	ExistsForSplit(splitID int64) (bool, error)
	UpdateSettlementStatus(id int64, status models.SettlementStatus) error
	ListForMemberAndExpenseStatus(memberID int64, status models.ExpenseStatus) ([]*models.Settlement, error)
	ListAwaitingApprovalForReceiver(memberID int64) ([]*models.Settlement, error)
	ListPendingInDateRange(memberID int64, from, to time.Time) ([]*models.Settlement, error)
	HasCompletedByExpense(expenseID int64) (bool, error)
	DeleteUncompletedByExpense(expenseID int64) error
}
