/*
Package account contains the credential store: the domain User, field validation,
password hashing, and the persistence contract for user records and their
active session tokens.
*/
package account

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinPasswordLength is the minimum number of characters accepted for a password.
const MinPasswordLength = 7

// User represents a stored account record.
// The password hash, session tokens, and avatar key never leave the service;
// clients only ever see the Public view.
type User struct {
	ID           string
	Name         string
	Email        string
	Age          int
	PasswordHash []byte
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward-facing representation of a user.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the safe view of the user, excluding the password hash,
// session tokens, and avatar.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}

// normalize trims the name and canonicalizes the email to lower case, so that
// uniqueness checks are case-insensitive.
func (u *User) normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)
}

// validate checks the mutable profile fields. Password rules are enforced
// separately because stored users only carry the hash.
func (u *User) validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Age, validation.Min(0)),
	)
}

// Candidate carries the fields accepted when creating a new account.
type Candidate struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// normalize trims the name and canonicalizes the email before validation.
func (c *Candidate) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = NormalizeEmail(c.Email)
}

// Validate checks all candidate fields, including the password rules.
func (c Candidate) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.By(passwordRule)),
		validation.Field(&c.Age, validation.Min(0)),
	)
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// passwordRule enforces the password policy: at least MinPasswordLength
// characters and no "password" substring in any casing.
func passwordRule(value interface{}) error {
	password, _ := value.(string)

	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("must be at least %d characters", MinPasswordLength)
	}

	if strings.Contains(strings.ToLower(password), "password") {
		return errors.New("must not contain the word \"password\"")
	}

	return nil
}

// ValidationError reports a malformed candidate or profile mutation.
type ValidationError struct {
	// Reason is a client-presentable summary of the failed rules.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid account data: " + e.Reason
}

// Sentinel errors surfaced by the credential store.
var (
	// ErrNotFound indicates that no user matches the given identifier or email.
	ErrNotFound = errors.New("account: user not found")

	// ErrEmailTaken indicates a store-level unique violation on the email column.
	ErrEmailTaken = errors.New("account: email already registered")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password, so that responses cannot be used to probe registered addresses.
	ErrInvalidCredentials = errors.New("account: invalid credentials")
)
