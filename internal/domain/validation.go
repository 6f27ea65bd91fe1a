package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidAccountName   = errors.New("invalid account name")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrDescriptionTooLong   = errors.New("description exceeds maximum length")
)

// Validation constants
const (
	MaxAccountNameLength   = 255
	MinAccountNameLength   = 1
	MaxAccountNumberLength = 32
	MaxDescriptionLength   = 1024
	DefaultPageSize        = 20
	MaxPageSize            = 100
)

var accountNumberRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]*$`)

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: %w: name cannot be empty", ErrValidation, ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: %w: name exceeds %d characters", ErrValidation, ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateAccountNumber validates the chart-of-accounts number, e.g. "1010" or "4000-01".
func ValidateAccountNumber(number string) error {
	number = strings.TrimSpace(number)

	if number == "" {
		return fmt.Errorf("%w: %w: number cannot be empty", ErrValidation, ErrInvalidAccountNumber)
	}

	if len(number) > MaxAccountNumberLength {
		return fmt.Errorf("%w: %w: number exceeds %d characters", ErrValidation, ErrInvalidAccountNumber, MaxAccountNumberLength)
	}

	if !accountNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: %w: %q contains forbidden characters", ErrValidation, ErrInvalidAccountNumber, number)
	}

	return nil
}

// ValidateAccountType validates the account classification.
func ValidateAccountType(t AccountType) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidAccountType, t)
	}
	return nil
}

// ValidateDescription validates free-text descriptions on postings.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: %w", ErrValidation, ErrDescriptionTooLong)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
