package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// GenerateJoinCode generates a household join code from a fresh UUID
func GenerateJoinCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return raw[:JoinCodeLength]
}

// GenerateActivationToken generates an account activation token
func GenerateActivationToken() string {
	return uuid.New().String()
}

// GenerateOtp generates a 6-digit one-time password for password resets
func GenerateOtp() int {
	return OtpMin + rand.Intn(OtpMax-OtpMin+1)
}
