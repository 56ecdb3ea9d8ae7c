// repository/user_repository.go
package repository

import (
	"database/sql"

	"github.com/homesplit/homesplit-backend/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user and populates its ID
func (r *UserRepository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (full_name, email, password_hash, is_active, activation_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(query, user.FullName, user.Email, user.PasswordHash,
		user.IsActive, user.ActivationToken).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT id, full_name, email, password_hash, is_active, COALESCE(activation_token, ''), created_at, updated_at
		 FROM users WHERE email = $1`, email))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT id, full_name, email, password_hash, is_active, COALESCE(activation_token, ''), created_at, updated_at
		 FROM users WHERE id = $1`, id))
}

// GetUserByActivationToken retrieves a user by its activation token
func (r *UserRepository) GetUserByActivationToken(token string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(
		`SELECT id, full_name, email, password_hash, is_active, COALESCE(activation_token, ''), created_at, updated_at
		 FROM users WHERE activation_token = $1`, token))
}

// ActivateUser marks a user account active and clears its activation token
func (r *UserRepository) ActivateUser(id int64) error {
	_, err := r.db.Exec(
		`UPDATE users SET is_active = TRUE, activation_token = NULL, updated_at = now() WHERE id = $1`, id)
	return err
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(email, passwordHash string) error {
	_, err := r.db.Exec(
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE email = $2`, passwordHash, email)
	return err
}

// CreatePasswordReset stores a forgot-password OTP for a user
func (r *UserRepository) CreatePasswordReset(reset *models.PasswordReset) error {
	query := `
		INSERT INTO password_resets (user_id, otp, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRow(query, reset.UserID, reset.Otp, reset.ExpiresAt).Scan(&reset.ID)
}

// GetPasswordReset retrieves a stored OTP for a user, if any
func (r *UserRepository) GetPasswordReset(userID int64, otp int) (*models.PasswordReset, error) {
	reset := &models.PasswordReset{}
	err := r.db.QueryRow(
		`SELECT id, user_id, otp, expires_at FROM password_resets WHERE user_id = $1 AND otp = $2`,
		userID, otp,
	).Scan(&reset.ID, &reset.UserID, &reset.Otp, &reset.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return reset, nil
}

// DeletePasswordReset removes an OTP so it cannot be reused
func (r *UserRepository) DeletePasswordReset(id int64) error {
	_, err := r.db.Exec(`DELETE FROM password_resets WHERE id = $1`, id)
	return err
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.PasswordHash,
		&user.IsActive, &user.ActivationToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
