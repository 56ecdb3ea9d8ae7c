package utils

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositiveAmount checks if a monetary amount is strictly positive
func ValidatePositiveAmount(value decimal.Decimal, fieldName string) error {
	if value.Cmp(decimal.Zero) <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateEmail checks if a string is a parseable email address
func ValidateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return NewValidationError("invalid email address")
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateSplitsSum checks that split amounts add up exactly to the expense
// amount. Comparison ignores scale, so 45 and 45.000 are the same value.
func ValidateSplitsSum(total decimal.Decimal, splits []decimal.Decimal) error {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s)
	}
	if !sum.Equal(total) {
		return NewValidationError(fmt.Sprintf(
			"split amounts (%s) must sum to the expense amount (%s)", sum, total))
	}
	return nil
}
