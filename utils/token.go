package utils

import "github.com/google/uuid"

// GenerateResetToken returns an opaque single-use token for password resets.
func GenerateResetToken() string {
	return uuid.NewString()
}
