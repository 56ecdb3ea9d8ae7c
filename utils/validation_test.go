package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidatePositiveAmount(t *testing.T) {
	assert.NoError(t, ValidatePositiveAmount(decimal.RequireFromString("0.01"), "amount"))
	assert.Error(t, ValidatePositiveAmount(decimal.Zero, "amount"))
	assert.Error(t, ValidatePositiveAmount(decimal.RequireFromString("-5"), "amount"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidateSplitsSum(t *testing.T) {
	total := decimal.RequireFromString("90.00")

	exact := []decimal.Decimal{
		decimal.RequireFromString("30.00"),
		decimal.RequireFromString("30.00"),
		decimal.RequireFromString("30.00"),
	}
	assert.NoError(t, ValidateSplitsSum(total, exact))

	// Equal value, different scale.
	rescaled := []decimal.Decimal{
		decimal.RequireFromString("45"),
		decimal.RequireFromString("45.000"),
	}
	assert.NoError(t, ValidateSplitsSum(total, rescaled))

	short := []decimal.Decimal{
		decimal.RequireFromString("30.00"),
		decimal.RequireFromString("59.99"),
	}
	assert.Error(t, ValidateSplitsSum(total, short))
}

func TestGenerateJoinCode(t *testing.T) {
	code := GenerateJoinCode()
	assert.Len(t, code, JoinCodeLength)
	assert.NotEqual(t, code, GenerateJoinCode())
}

func TestGenerateOtp(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp := GenerateOtp()
		assert.GreaterOrEqual(t, otp, OtpMin)
		assert.LessOrEqual(t, otp, OtpMax)
	}
}
