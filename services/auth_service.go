package services

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/homesplit/homesplit-backend/auth"
	"github.com/homesplit/homesplit-backend/models"
	"github.com/homesplit/homesplit-backend/utils"
)

const minPasswordLength = 8

// AuthService handles account registration, activation and login
type AuthService struct {
	users      UserStore
	mailer     Mailer
	jwtManager *auth.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, mailer Mailer, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		users:      users,
		mailer:     mailer,
		jwtManager: jwtManager,
	}
}

// Register creates a new inactive account and emails an activation link
func (s *AuthService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	if err := utils.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, utils.NewValidationError("password must be at least 8 characters")
	}

	if existing, err := s.users.GetUserByEmail(req.Email); err == nil && existing != nil {
		return nil, utils.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password")
	}

	user := &models.User{
		FullName:        req.FullName,
		Email:           req.Email,
		PasswordHash:    string(hash),
		IsActive:        false,
		ActivationToken: utils.GenerateActivationToken(),
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, utils.NewInternalError("failed to create user")
	}

	activationLink := fmt.Sprintf("%s/activate?token=%s", appBaseURL(), user.ActivationToken)
	body := "Click on the following link to activate your account: " + activationLink
	if err := s.mailer.Send(user.Email, "Activate your account", body); err != nil {
		return nil, utils.NewInternalError("failed to send activation email")
	}

	return &models.RegisterResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}

// Activate marks the account matching the token as active
func (s *AuthService) Activate(token string) error {
	user, err := s.users.GetUserByActivationToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.NewNotFoundError("Activation token")
		}
		return utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	if err := s.users.ActivateUser(user.ID); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	return nil
}

// Login verifies credentials and returns a signed session token
func (s *AuthService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetUserByEmail(req.Email)
	if err != nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}
	if !user.IsActive {
		return nil, utils.NewUnauthorizedError("account is not yet active")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, utils.NewInternalError("failed to generate token")
	}

	return &models.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}

// SendPasswordResetOtp emails a short-lived OTP to the account
func (s *AuthService) SendPasswordResetOtp(email string) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return utils.NewNotFoundError(utils.ErrUserNotFound)
	}

	reset := &models.PasswordReset{
		UserID:    user.ID,
		Otp:       utils.GenerateOtp(),
		ExpiresAt: time.Now().Add(utils.OtpLifetime),
	}
	if err := s.users.CreatePasswordReset(reset); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}

	body := fmt.Sprintf("Please use this OTP to reset your password within 2 minutes: %d", reset.Otp)
	if err := s.mailer.Send(email, "OTP for Forgot Password Request", body); err != nil {
		return utils.NewInternalError("failed to send OTP email")
	}
	return nil
}

// VerifyPasswordResetOtp checks an OTP. The OTP is consumed either way so it
// can never be replayed.
func (s *AuthService) VerifyPasswordResetOtp(email string, otp int) (bool, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return false, utils.NewNotFoundError(utils.ErrUserNotFound)
	}

	reset, err := s.users.GetPasswordReset(user.ID, otp)
	if err != nil {
		return false, utils.NewBadRequestError("invalid OTP")
	}

	if err := s.users.DeletePasswordReset(reset.ID); err != nil {
		return false, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return time.Now().Before(reset.ExpiresAt), nil
}

// ChangePassword replaces the account password
func (s *AuthService) ChangePassword(email, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return utils.NewValidationError("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewInternalError("failed to hash password")
	}
	if err := s.users.UpdatePassword(email, string(hash)); err != nil {
		return utils.NewInternalError(utils.ErrFailedToStore)
	}
	return nil
}

func appBaseURL() string {
	if url := os.Getenv("APP_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}
