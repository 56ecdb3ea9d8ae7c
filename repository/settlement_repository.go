// repository/settlement_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/homesplit/homesplit-backend/models"
)

// settlementColumns joins settlements with both counterparties' user names
// and the owning expense for the API representation.
const settlementColumns = `
	SELECT s.id, s.from_member_id, s.to_member_id, s.split_id, s.amount, s.currency,
	       s.date, s.status, fu.full_name, tu.full_name, e.id, e.category
	FROM settlements s
	JOIN household_members fm ON fm.id = s.from_member_id
	JOIN users fu ON fu.id = fm.user_id
	JOIN household_members tm ON tm.id = s.to_member_id
	JOIN users tu ON tu.id = tm.user_id
	JOIN expense_splits sp ON sp.id = s.split_id
	JOIN expenses e ON e.id = sp.expense_id
`

// SettlementRepository handles database operations for settlements
type SettlementRepository struct {
	db *sql.DB
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

// CreateSettlement inserts a settlement and populates its ID. A duplicate
// (from_member, to_member, split) triple surfaces as a unique violation that
// callers map to a Conflict error via IsUniqueViolation.
func (r *SettlementRepository) CreateSettlement(settlement *models.Settlement) error {
	return r.db.QueryRow(
		`INSERT INTO settlements (from_member_id, to_member_id, split_id, amount, currency, date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		settlement.FromMemberID, settlement.ToMemberID, settlement.SplitID,
		settlement.Amount, settlement.Currency, settlement.Date, settlement.Status,
	).Scan(&settlement.ID)
}

// CreateSettlementsIfAbsent inserts the given settlements in one transaction,
// silently skipping any whose split line already has one. This is what makes
// repeated materialization runs idempotent.
func (r *SettlementRepository) CreateSettlementsIfAbsent(settlements []*models.Settlement) error {
	if len(settlements) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, settlement := range settlements {
		var exists int
		err = tx.QueryRow(
			`SELECT COUNT(*) FROM settlements WHERE split_id = $1`, settlement.SplitID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check settlement existence: %v", err)
		}
		if exists > 0 {
			continue
		}

		_, err = tx.Exec(
			`INSERT INTO settlements (from_member_id, to_member_id, split_id, amount, currency, date, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (from_member_id, to_member_id, split_id) DO NOTHING`,
			settlement.FromMemberID, settlement.ToMemberID, settlement.SplitID,
			settlement.Amount, settlement.Currency, settlement.Date, settlement.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %v", err)
		}
	}

	return tx.Commit()
}

// GetSettlementByID retrieves a settlement with display names
func (r *SettlementRepository) GetSettlementByID(id int64) (*models.Settlement, error) {
	return r.scanSettlement(r.db.QueryRow(settlementColumns+` WHERE s.id = $1`, id))
}

// ExistsForSplit reports whether any settlement references the split line
func (r *SettlementRepository) ExistsForSplit(splitID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM settlements WHERE split_id = $1`, splitID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateSettlementStatus sets a settlement's lifecycle status
func (r *SettlementRepository) UpdateSettlementStatus(id int64, status models.SettlementStatus) error {
	_, err := r.db.Exec(`UPDATE settlements SET status = $1 WHERE id = $2`, status, id)
	return err
}

// ListForMemberAndExpenseStatus retrieves settlements where the member is on
// either side and the linked expense has the given status, newest date first.
func (r *SettlementRepository) ListForMemberAndExpenseStatus(memberID int64, status models.ExpenseStatus) ([]*models.Settlement, error) {
	return r.querySettlements(
		settlementColumns+`
		WHERE (s.from_member_id = $1 OR s.to_member_id = $1) AND e.status = $2
		ORDER BY s.date DESC, s.id DESC`,
		memberID, status)
}

// ListAwaitingApprovalForReceiver retrieves settlements the member needs to
// confirm as creditor.
func (r *SettlementRepository) ListAwaitingApprovalForReceiver(memberID int64) ([]*models.Settlement, error) {
	return r.querySettlements(
		settlementColumns+`
		WHERE s.to_member_id = $1 AND s.status = $2
		ORDER BY s.date DESC, s.id DESC`,
		memberID, models.SettlementAwaitingApproval)
}

// ListPendingInDateRange retrieves the member's PENDING settlements as debtor
// dated within [from, to] inclusive.
func (r *SettlementRepository) ListPendingInDateRange(memberID int64, from, to time.Time) ([]*models.Settlement, error) {
	return r.querySettlements(
		settlementColumns+`
		WHERE s.from_member_id = $1 AND s.status = $2 AND s.date >= $3 AND s.date <= $4
		ORDER BY s.date DESC, s.id DESC`,
		memberID, models.SettlementPending, from, to)
}

// HasCompletedByExpense reports whether any settlement of the expense's
// splits is COMPLETED.
func (r *SettlementRepository) HasCompletedByExpense(expenseID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM settlements s
		 JOIN expense_splits sp ON sp.id = s.split_id
		 WHERE sp.expense_id = $1 AND s.status = $2`,
		expenseID, models.SettlementCompleted,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteUncompletedByExpense removes the expense's settlements that are not
// COMPLETED. Used when an approved expense is rolled back to PENDING.
func (r *SettlementRepository) DeleteUncompletedByExpense(expenseID int64) error {
	_, err := r.db.Exec(
		`DELETE FROM settlements s
		 USING expense_splits sp
		 WHERE sp.id = s.split_id AND sp.expense_id = $1 AND s.status <> $2`,
		expenseID, models.SettlementCompleted)
	return err
}

func (r *SettlementRepository) querySettlements(query string, args ...interface{}) ([]*models.Settlement, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements: %v", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		if err := rows.Scan(&settlement.ID, &settlement.FromMemberID, &settlement.ToMemberID,
			&settlement.SplitID, &settlement.Amount, &settlement.Currency, &settlement.Date,
			&settlement.Status, &settlement.FromMemberName, &settlement.ToMemberName,
			&settlement.ExpenseID, &settlement.ExpenseCategory); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %v", err)
		}
		settlements = append(settlements, settlement)
	}
	return settlements, rows.Err()
}

func (r *SettlementRepository) scanSettlement(row *sql.Row) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	err := row.Scan(&settlement.ID, &settlement.FromMemberID, &settlement.ToMemberID,
		&settlement.SplitID, &settlement.Amount, &settlement.Currency, &settlement.Date,
		&settlement.Status, &settlement.FromMemberName, &settlement.ToMemberName,
		&settlement.ExpenseID, &settlement.ExpenseCategory)
	if err != nil {
		return nil, err
	}
	return settlement, nil
}
