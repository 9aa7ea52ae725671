package password

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = bcrypt.DefaultCost

	MinLength = 8
	// MaxLength is the number of bytes bcrypt actually reads.
	MaxLength = 72
)

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
	ErrWeakPassword      = errors.New("password is too weak")
)

// CheckStrength rejects passwords that are too short, too long for bcrypt,
// or that do not mix letters and digits.
func CheckStrength(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) < MinLength:
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinLength)
	case len(password) > MaxLength:
		return fmt.Errorf("%w: must be at most %d bytes", ErrWeakPassword, MaxLength)
	}

	var hasLetter, hasDigit bool

	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: must contain both letters and digits", ErrWeakPassword)
	}

	return nil
}

// Hash checks the strength of password and returns its bcrypt hash.
func Hash(password string) (string, error) {
	if err := CheckStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(bytes), nil
}

func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}

	return nil
}

// NeedsRehash reports whether hash was produced with a cost other than DefaultCost.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}

	return cost != DefaultCost
}
