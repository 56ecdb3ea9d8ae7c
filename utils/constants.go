package utils

import "time"

const (
	// Household join code generation
	JoinCodeLength = 8

	// Forgot-password OTP
	OtpMin      = 100000
	OtpMax      = 999999
	OtpLifetime = 2 * time.Minute

	// Error messages and NotFound resource names
	ErrInvalidRequest     = "Invalid request"
	ErrHouseholdNotFound  = "Household"
	ErrMemberNotFound     = "Household member"
	ErrExpenseNotFound    = "Expense"
	ErrSplitNotFound      = "Expense split"
	ErrSettlementNotFound = "Settlement"
	ErrUserNotFound       = "User"
	ErrFailedToStore      = "Failed to store data"
	ErrFailedToRetrieve   = "Failed to retrieve data"
)
