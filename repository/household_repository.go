// repository/household_repository.go
package repository

import (
	"database/sql"

	"github.com/homesplit/homesplit-backend/models"
)

// HouseholdRepository handles database operations for households and their members
type HouseholdRepository struct {
	db *sql.DB
}

// NewHouseholdRepository creates a new HouseholdRepository
func NewHouseholdRepository(db *sql.DB) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

// CreateHousehold inserts a household together with its admin membership in
// one transaction, populating both IDs.
func (r *HouseholdRepository) CreateHousehold(household *models.Household, admin *models.HouseholdMember) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO households (name, code, created_by) VALUES ($1, $2, $3) RETURNING id`,
		household.Name, household.Code, household.CreatedByID,
	).Scan(&household.ID)
	if err != nil {
		return err
	}

	admin.HouseholdID = household.ID
	err = tx.QueryRow(
		`INSERT INTO household_members (household_id, user_id, role) VALUES ($1, $2, $3) RETURNING id`,
		admin.HouseholdID, admin.UserID, admin.Role,
	).Scan(&admin.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// HouseholdNameExists reports whether a household with the given name exists
func (r *HouseholdRepository) HouseholdNameExists(name string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM households WHERE name = $1`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetHouseholdByID retrieves a household by ID
func (r *HouseholdRepository) GetHouseholdByID(id int64) (*models.Household, error) {
	return r.scanHousehold(r.db.QueryRow(
		`SELECT id, name, code, created_by FROM households WHERE id = $1`, id))
}

// GetHouseholdByCode retrieves a household by join code
func (r *HouseholdRepository) GetHouseholdByCode(code string) (*models.Household, error) {
	return r.scanHousehold(r.db.QueryRow(
		`SELECT id, name, code, created_by FROM households WHERE code = $1`, code))
}

// CreateMember inserts a membership and populates its ID
func (r *HouseholdRepository) CreateMember(member *models.HouseholdMember) error {
	return r.db.QueryRow(
		`INSERT INTO household_members (household_id, user_id, role) VALUES ($1, $2, $3) RETURNING id`,
		member.HouseholdID, member.UserID, member.Role,
	).Scan(&member.ID)
}

// GetMemberByID retrieves a membership by ID
func (r *HouseholdRepository) GetMemberByID(id int64) (*models.HouseholdMember, error) {
	return r.scanMember(r.db.QueryRow(
		`SELECT m.id, m.household_id, m.user_id, m.role, u.full_name
		 FROM household_members m JOIN users u ON u.id = m.user_id
		 WHERE m.id = $1`, id))
}

// GetMemberByUserAndHousehold retrieves the membership of a user in a household
func (r *HouseholdRepository) GetMemberByUserAndHousehold(userID, householdID int64) (*models.HouseholdMember, error) {
	return r.scanMember(r.db.QueryRow(
		`SELECT m.id, m.household_id, m.user_id, m.role, u.full_name
		 FROM household_members m JOIN users u ON u.id = m.user_id
		 WHERE m.user_id = $1 AND m.household_id = $2`, userID, householdID))
}

// GetAdminMember retrieves the admin membership of a household
func (r *HouseholdRepository) GetAdminMember(householdID int64) (*models.HouseholdMember, error) {
	return r.scanMember(r.db.QueryRow(
		`SELECT m.id, m.household_id, m.user_id, m.role, u.full_name
		 FROM household_members m JOIN users u ON u.id = m.user_id
		 WHERE m.household_id = $1 AND m.role = $2
		 ORDER BY m.id LIMIT 1`, householdID, models.RoleAdmin))
}

// ListMembersByHousehold retrieves all memberships of a household
func (r *HouseholdRepository) ListMembersByHousehold(householdID int64) ([]*models.HouseholdMember, error) {
	rows, err := r.db.Query(
		`SELECT m.id, m.household_id, m.user_id, m.role, u.full_name
		 FROM household_members m JOIN users u ON u.id = m.user_id
		 WHERE m.household_id = $1 ORDER BY m.id`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.HouseholdMember
	for rows.Next() {
		member := &models.HouseholdMember{}
		if err := rows.Scan(&member.ID, &member.HouseholdID, &member.UserID,
			&member.Role, &member.UserFullName); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

// ListHouseholdsByUser retrieves every household the user belongs to,
// together with the user's membership in it.
func (r *HouseholdRepository) ListHouseholdsByUser(userID int64) ([]models.HouseholdSummary, error) {
	rows, err := r.db.Query(
		`SELECT h.id, h.name, h.code, m.id, m.role
		 FROM household_members m JOIN households h ON h.id = m.household_id
		 WHERE m.user_id = $1 ORDER BY h.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.HouseholdSummary
	for rows.Next() {
		var s models.HouseholdSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.MemberID, &s.Role); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *HouseholdRepository) scanHousehold(row *sql.Row) (*models.Household, error) {
	household := &models.Household{}
	err := row.Scan(&household.ID, &household.Name, &household.Code, &household.CreatedByID)
	if err != nil {
		return nil, err
	}
	return household, nil
}

func (r *HouseholdRepository) scanMember(row *sql.Row) (*models.HouseholdMember, error) {
	member := &models.HouseholdMember{}
	err := row.Scan(&member.ID, &member.HouseholdID, &member.UserID, &member.Role, &member.UserFullName)
	if err != nil {
		return nil, err
	}
	return member, nil
}
