package services

import (
	"database/sql"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/homesplit/homesplit-backend/models"
)

// In-memory store fakes. They mirror the repository contract: missing rows
// come back as sql.ErrNoRows, duplicate settlements as a pq unique
// violation.

type fakeUserStore struct {
	users  map[int64]*models.User
	resets map[int64]*models.PasswordReset
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[int64]*models.User),
		resets: make(map[int64]*models.PasswordReset),
	}
}

func (f *fakeUserStore) CreateUser(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) GetUserByID(id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByActivationToken(token string) (*models.User, error) {
	for _, user := range f.users {
		if user.ActivationToken == token && token != "" {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) ActivateUser(id int64) error {
	user, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.IsActive = true
	user.ActivationToken = ""
	return nil
}

func (f *fakeUserStore) UpdatePassword(email, passwordHash string) error {
	for _, user := range f.users {
		if user.Email == email {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeUserStore) CreatePasswordReset(reset *models.PasswordReset) error {
	f.nextID++
	reset.ID = f.nextID
	copied := *reset
	f.resets[reset.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetPasswordReset(userID int64, otp int) (*models.PasswordReset, error) {
	for _, reset := range f.resets {
		if reset.UserID == userID && reset.Otp == otp {
			copied := *reset
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) DeletePasswordReset(id int64) error {
	delete(f.resets, id)
	return nil
}

type fakeHouseholdStore struct {
	households map[int64]*models.Household
	members    map[int64]*models.HouseholdMember
	users      *fakeUserStore
	nextID     int64
}

func newFakeHouseholdStore(users *fakeUserStore) *fakeHouseholdStore {
	return &fakeHouseholdStore{
		households: make(map[int64]*models.Household),
		members:    make(map[int64]*models.HouseholdMember),
		users:      users,
	}
}

func (f *fakeHouseholdStore) CreateHousehold(household *models.Household, admin *models.HouseholdMember) error {
	f.nextID++
	household.ID = f.nextID
	copied := *household
	f.households[household.ID] = &copied

	admin.HouseholdID = household.ID
	return f.CreateMember(admin)
}

func (f *fakeHouseholdStore) HouseholdNameExists(name string) (bool, error) {
	for _, household := range f.households {
		if household.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHouseholdStore) GetHouseholdByID(id int64) (*models.Household, error) {
	household, ok := f.households[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *household
	return &copied, nil
}

func (f *fakeHouseholdStore) GetHouseholdByCode(code string) (*models.Household, error) {
	for _, household := range f.households {
		if household.Code == code {
			copied := *household
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeHouseholdStore) CreateMember(member *models.HouseholdMember) error {
	f.nextID++
	member.ID = f.nextID
	if f.users != nil {
		if user, err := f.users.GetUserByID(member.UserID); err == nil {
			member.UserFullName = user.FullName
		}
	}
	copied := *member
	f.members[member.ID] = &copied
	return nil
}

func (f *fakeHouseholdStore) GetMemberByID(id int64) (*models.HouseholdMember, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (f *fakeHouseholdStore) GetMemberByUserAndHousehold(userID, householdID int64) (*models.HouseholdMember, error) {
	for _, member := range f.members {
		if member.UserID == userID && member.HouseholdID == householdID {
			copied := *member
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeHouseholdStore) GetAdminMember(householdID int64) (*models.HouseholdMember, error) {
	for _, member := range f.members {
		if member.HouseholdID == householdID && member.Role == models.RoleAdmin {
			copied := *member
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeHouseholdStore) ListMembersByHousehold(householdID int64) ([]*models.HouseholdMember, error) {
	var members []*models.HouseholdMember
	for _, member := range f.members {
		if member.HouseholdID == householdID {
			copied := *member
			members = append(members, &copied)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (f *fakeHouseholdStore) ListHouseholdsByUser(userID int64) ([]models.HouseholdSummary, error) {
	var summaries []models.HouseholdSummary
	for _, member := range f.members {
		if member.UserID != userID {
			continue
		}
		household := f.households[member.HouseholdID]
		summaries = append(summaries, models.HouseholdSummary{
			ID:       household.ID,
			Name:     household.Name,
			Code:     household.Code,
			MemberID: member.ID,
			Role:     string(member.Role),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].MemberID < summaries[j].MemberID })
	return summaries, nil
}

type fakeExpenseStore struct {
	expenses    map[int64]*models.Expense
	nextID      int64
	nextSplitID int64
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[int64]*models.Expense)}
}

func (f *fakeExpenseStore) CreateExpense(expense *models.Expense) error {
	f.nextID++
	expense.ID = f.nextID
	for i := range expense.Splits {
		f.nextSplitID++
		expense.Splits[i].ID = f.nextSplitID
		expense.Splits[i].ExpenseID = expense.ID
	}
	copied := *expense
	copied.Splits = append([]models.ExpenseSplit(nil), expense.Splits...)
	f.expenses[expense.ID] = &copied
	return nil
}

func (f *fakeExpenseStore) GetExpenseByID(id int64) (*models.Expense, error) {
	expense, ok := f.expenses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *expense
	copied.Splits = append([]models.ExpenseSplit(nil), expense.Splits...)
	return &copied, nil
}

func (f *fakeExpenseStore) GetExpenseByIDAndHousehold(id, householdID int64) (*models.Expense, error) {
	expense, err := f.GetExpenseByID(id)
	if err != nil || expense.HouseholdID != householdID {
		return nil, sql.ErrNoRows
	}
	return expense, nil
}

func (f *fakeExpenseStore) ListExpensesByHousehold(householdID int64) ([]*models.Expense, error) {
	var expenses []*models.Expense
	for _, expense := range f.expenses {
		if expense.HouseholdID == householdID {
			copied, _ := f.GetExpenseByID(expense.ID)
			expenses = append(expenses, copied)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
	return expenses, nil
}

func (f *fakeExpenseStore) UpdateExpenseStatus(id int64, status models.ExpenseStatus) error {
	expense, ok := f.expenses[id]
	if !ok {
		return sql.ErrNoRows
	}
	expense.Status = status
	return nil
}

func (f *fakeExpenseStore) DeleteExpense(id int64) error {
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseStore) GetSplitByID(id int64) (*models.ExpenseSplit, error) {
	for _, expense := range f.expenses {
		for _, split := range expense.Splits {
			if split.ID == id {
				copied := split
				return &copied, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

type fakeSettlementStore struct {
	settlements map[int64]*models.Settlement
	expenses    *fakeExpenseStore
	nextID      int64
}

func newFakeSettlementStore(expenses *fakeExpenseStore) *fakeSettlementStore {
	return &fakeSettlementStore{
		settlements: make(map[int64]*models.Settlement),
		expenses:    expenses,
	}
}

func (f *fakeSettlementStore) CreateSettlement(settlement *models.Settlement) error {
	for _, existing := range f.settlements {
		if existing.FromMemberID == settlement.FromMemberID &&
			existing.ToMemberID == settlement.ToMemberID &&
			existing.SplitID == settlement.SplitID {
			return &pq.Error{Code: "23505"}
		}
	}
	f.nextID++
	settlement.ID = f.nextID
	copied := *settlement
	f.settlements[settlement.ID] = &copied
	return nil
}

func (f *fakeSettlementStore) CreateSettlementsIfAbsent(settlements []*models.Settlement) error {
	for _, settlement := range settlements {
		exists, _ := f.ExistsForSplit(settlement.SplitID)
		if exists {
			continue
		}
		if err := f.CreateSettlement(settlement); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeSettlementStore) GetSettlementByID(id int64) (*models.Settlement, error) {
	settlement, ok := f.settlements[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *settlement
	return &copied, nil
}

func (f *fakeSettlementStore) ExistsForSplit(splitID int64) (bool, error) {
	for _, settlement := range f.settlements {
		if settlement.SplitID == splitID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSettlementStore) UpdateSettlementStatus(id int64, status models.SettlementStatus) error {
	settlement, ok := f.settlements[id]
	if !ok {
		return sql.ErrNoRows
	}
	settlement.Status = status
	return nil
}

// expenseOf resolves the expense a settlement's split belongs to.
func (f *fakeSettlementStore) expenseOf(settlement *models.Settlement) *models.Expense {
	split, err := f.expenses.GetSplitByID(settlement.SplitID)
	if err != nil {
		return nil
	}
	expense, err := f.expenses.GetExpenseByID(split.ExpenseID)
	if err != nil {
		return nil
	}
	return expense
}

func (f *fakeSettlementStore) ListForMemberAndExpenseStatus(memberID int64, status models.ExpenseStatus) ([]*models.Settlement, error) {
	var matches []*models.Settlement
	for _, settlement := range f.settlements {
		if settlement.FromMemberID != memberID && settlement.ToMemberID != memberID {
			continue
		}
		expense := f.expenseOf(settlement)
		if expense == nil || expense.Status != status {
			continue
		}
		copied := *settlement
		matches = append(matches, &copied)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Date.After(matches[j].Date) })
	return matches, nil
}

func (f *fakeSettlementStore) ListAwaitingApprovalForReceiver(memberID int64) ([]*models.Settlement, error) {
	var matches []*models.Settlement
	for _, settlement := range f.settlements {
		if settlement.ToMemberID == memberID && settlement.Status == models.SettlementAwaitingApproval {
			copied := *settlement
			matches = append(matches, &copied)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (f *fakeSettlementStore) ListPendingInDateRange(memberID int64, from, to time.Time) ([]*models.Settlement, error) {
	var matches []*models.Settlement
	for _, settlement := range f.settlements {
		if settlement.FromMemberID != memberID || settlement.Status != models.SettlementPending {
			continue
		}
		if settlement.Date.Before(from) || settlement.Date.After(to) {
			continue
		}
		copied := *settlement
		matches = append(matches, &copied)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (f *fakeSettlementStore) HasCompletedByExpense(expenseID int64) (bool, error) {
	for _, settlement := range f.settlements {
		expense := f.expenseOf(settlement)
		if expense != nil && expense.ID == expenseID && settlement.Status == models.SettlementCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSettlementStore) DeleteUncompletedByExpense(expenseID int64) error {
	for id, settlement := range f.settlements {
		expense := f.expenseOf(settlement)
		if expense != nil && expense.ID == expenseID && settlement.Status != models.SettlementCompleted {
			delete(f.settlements, id)
		}
	}
	return nil
}
