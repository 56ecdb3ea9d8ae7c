// models/models.go
package models

import "time"

// HouseholdRole is the role a user holds inside one household.
type HouseholdRole string

const (
	RoleAdmin  HouseholdRole = "ADMIN"
	RoleMember HouseholdRole = "MEMBER"
)

// User represents a registered account
type User struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	IsActive        bool      `json:"isActive"`
	ActivationToken string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Household represents a group of users sharing expenses
type Household struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	CreatedByID int64  `json:"createdById"`
}

// HouseholdMember links a user to a household with a role.
// One membership per (household, user) pair.
type HouseholdMember struct {
	ID          int64         `json:"id"`
	HouseholdID int64         `json:"householdId"`
	UserID      int64         `json:"userId"`
	Role        HouseholdRole `json:"role"`

	// Populated by joined queries for display purposes
	UserFullName string `json:"userFullName,omitempty"`
}

// PasswordReset stores a single-use OTP for the forgot-password flow
type PasswordReset struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Otp       int       `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegisterRequest request model
type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse response model
type RegisterResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// LoginRequest request model
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse response model
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// VerifyOtpRequest request model for the forgot-password flow
type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required"`
	Otp   int    `json:"otp" binding:"required"`
}

// ChangePasswordRequest request model
type ChangePasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// CreateHouseholdRequest request model
type CreateHouseholdRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateHouseholdResponse response model
type CreateHouseholdResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	Code string `json:"code"`
}

// JoinHouseholdRequest request model
type JoinHouseholdRequest struct {
	Code string `json:"code" binding:"required"`
}

// JoinHouseholdResponse response model
type JoinHouseholdResponse struct {
	HouseholdID   int64  `json:"householdId"`
	HouseholdName string `json:"householdName"`
	MemberID      int64  `json:"memberId"`
	Role          string `json:"role"`
}

// HouseholdSummary is one entry in a user's household list
type HouseholdSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	MemberID int64  `json:"memberId"`
	Role     string `json:"role"`
}

// MemberResponse is one entry in a household's member list
type MemberResponse struct {
	MemberID int64         `json:"memberId"`
	UserID   int64         `json:"userId"`
	FullName string        `json:"fullName"`
	Role     HouseholdRole `json:"role"`
}
