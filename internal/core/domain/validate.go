package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinNameLength     = 20
	MaxNameLength     = 60
	MinPasswordLength = 8
	MaxPasswordLength = 16
	MaxAddressLength  = 400
	MaxStoreNameLen   = 200

	passwordSpecials = `!@#$%^&*(),.?":{}|<>`
)

// ValidatePassword enforces the password policy: 8-16 characters with at
// least one uppercase letter and one special character.
func ValidatePassword(pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return NewValidationError("password must be between 8 and 16 characters")
	}
	if !strings.ContainsFunc(pw, unicode.IsUpper) {
		return NewValidationError("password must contain at least one uppercase letter")
	}
	if !strings.ContainsAny(pw, passwordSpecials) {
		return NewValidationError("password must contain at least one special character")
	}
	return nil
}

// ValidateUserName checks the display name length after trimming.
func ValidateUserName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinNameLength || n > MaxNameLength {
		return NewValidationError("name must be between 20 and 60 characters")
	}
	return nil
}

func ValidateAddress(addr string) error {
	if utf8.RuneCountInString(strings.TrimSpace(addr)) > MaxAddressLength {
		return NewValidationError("address cannot exceed 400 characters")
	}
	return nil
}

func ValidateStoreName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 {
		return NewValidationError("store name is required")
	}
	if n > MaxStoreNameLen {
		return NewValidationError("store name cannot exceed 200 characters")
	}
	return nil
}

// NormalizeEmail lowercases and trims an address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
