// repository/expense_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/homesplit/homesplit-backend/models"
)

// ExpenseRepository handles database operations for expenses and their splits
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// CreateExpense saves an expense and all of its split lines in one transaction
func (r *ExpenseRepository) CreateExpense(expense *models.Expense) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO expenses
		 (household_id, amount, currency, date, category, method, status, created_by, reviewed_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		expense.HouseholdID, expense.Amount, expense.Currency, expense.Date,
		expense.Category, expense.Method, expense.Status, expense.CreatedByID, expense.ReviewedBy,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %v", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		split.ExpenseID = expense.ID
		err = tx.QueryRow(
			`INSERT INTO expense_splits (expense_id, member_id, amount)
			 VALUES ($1, $2, $3) RETURNING id`,
			split.ExpenseID, split.MemberID, split.Amount,
		).Scan(&split.ID)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %v", err)
		}
	}

	return tx.Commit()
}

// GetExpenseByID retrieves an expense with its splits
func (r *ExpenseRepository) GetExpenseByID(id int64) (*models.Expense, error) {
	expense, err := r.scanExpense(r.db.QueryRow(
		`SELECT id, household_id, amount, currency, date, category, method, status, created_by, reviewed_by
		 FROM expenses WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSplits(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpenseByIDAndHousehold retrieves an expense scoped to one household
func (r *ExpenseRepository) GetExpenseByIDAndHousehold(id, householdID int64) (*models.Expense, error) {
	expense, err := r.scanExpense(r.db.QueryRow(
		`SELECT id, household_id, amount, currency, date, category, method, status, created_by, reviewed_by
		 FROM expenses WHERE id = $1 AND household_id = $2`, id, householdID))
	if err != nil {
		return nil, err
	}
	if err := r.loadSplits(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByHousehold retrieves all expenses of a household, newest first
func (r *ExpenseRepository) ListExpensesByHousehold(householdID int64) ([]*models.Expense, error) {
	rows, err := r.db.Query(
		`SELECT id, household_id, amount, currency, date, category, method, status, created_by, reviewed_by
		 FROM expenses WHERE household_id = $1 ORDER BY date DESC, id DESC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %v", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.HouseholdID, &expense.Amount,
			&expense.Currency, &expense.Date, &expense.Category, &expense.Method,
			&expense.Status, &expense.CreatedByID, &expense.ReviewedBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, expense := range expenses {
		if err := r.loadSplits(expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// UpdateExpenseStatus sets an expense's approval status
func (r *ExpenseRepository) UpdateExpenseStatus(id int64, status models.ExpenseStatus) error {
	_, err := r.db.Exec(`UPDATE expenses SET status = $1 WHERE id = $2`, status, id)
	return err
}

// DeleteExpense removes an expense. Splits and their settlements are deleted
// by the schema's cascade rules within the same statement.
func (r *ExpenseRepository) DeleteExpense(id int64) error {
	_, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1`, id)
	return err
}

// GetSplitByID retrieves a single split line
func (r *ExpenseRepository) GetSplitByID(id int64) (*models.ExpenseSplit, error) {
	split := &models.ExpenseSplit{}
	err := r.db.QueryRow(
		`SELECT id, expense_id, member_id, amount FROM expense_splits WHERE id = $1`, id,
	).Scan(&split.ID, &split.ExpenseID, &split.MemberID, &split.Amount)
	if err != nil {
		return nil, err
	}
	return split, nil
}

func (r *ExpenseRepository) loadSplits(expense *models.Expense) error {
	rows, err := r.db.Query(
		`SELECT id, expense_id, member_id, amount FROM expense_splits WHERE expense_id = $1 ORDER BY id`,
		expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get expense splits: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.ExpenseSplit
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.MemberID, &split.Amount); err != nil {
			return fmt.Errorf("failed to scan expense split: %v", err)
		}
		expense.Splits = append(expense.Splits, split)
	}
	return rows.Err()
}

func (r *ExpenseRepository) scanExpense(row *sql.Row) (*models.Expense, error) {
	expense := &models.Expense{}
	err := row.Scan(&expense.ID, &expense.HouseholdID, &expense.Amount,
		&expense.Currency, &expense.Date, &expense.Category, &expense.Method,
		&expense.Status, &expense.CreatedByID, &expense.ReviewedBy)
	if err != nil {
		return nil, err
	}
	return expense, nil
}
