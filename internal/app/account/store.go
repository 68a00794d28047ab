package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// decoyHash is a valid bcrypt hash compared against when a login targets an
// unknown email, so the two failure paths take similar time.
var decoyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Store is the credential store. It owns validation, password hashing, and
// the session token list, delegating raw persistence to a Repository.
type Store struct {
	repo Repository
}

// NewStore constructs a Store on top of the given repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Create validates the candidate, hashes its password, and persists a new
// user record. It returns a *ValidationError for malformed fields and
// ErrEmailTaken for a duplicate email.
func (s *Store) Create(ctx context.Context, c Candidate) (*User, error) {
	c.normalize()

	if err := c.Validate(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Email:        c.Email,
		Age:          c.Age,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// FindByCredentials looks a user up by email and compares the candidate
// password against the stored hash. Both an unknown email and a wrong
// password yield ErrInvalidCredentials.
func (s *Store) FindByCredentials(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Burn a comparison anyway so timing does not reveal whether the
			// email exists.
			_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// SetPassword validates the plaintext against the password policy and
// replaces the user's hash. It is the only place a hash is ever computed:
// Save never rehashes, so persisting an unchanged user leaves the hash alone.
func (s *Store) SetPassword(u *User, plaintext string) error {
	if err := passwordRule(plaintext); err != nil {
		return &ValidationError{Reason: "password: " + err.Error()}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	return nil
}

// Save re-validates the user's profile fields and persists the mutation.
func (s *Store) Save(ctx context.Context, u *User) error {
	u.normalize()

	if err := u.validate(); err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	u.UpdatedAt = time.Now().UTC()
	return s.repo.UpdateUser(ctx, u)
}

// Remove permanently deletes the user record together with its session tokens.
func (s *Store) Remove(ctx context.Context, u *User) error {
	return s.repo.DeleteUser(ctx, u.ID)
}

// FindByID returns the user with the given id, or ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// AppendToken records a newly issued session token for the user.
func (s *Store) AppendToken(ctx context.Context, u *User, token string) error {
	return s.repo.AppendToken(ctx, u.ID, token)
}

// RemoveToken drops a single session token from the user's list.
func (s *Store) RemoveToken(ctx context.Context, u *User, token string) (bool, error) {
	return s.repo.DeleteToken(ctx, u.ID, token)
}

// ClearTokens drops every session token for the user.
func (s *Store) ClearTokens(ctx context.Context, u *User) error {
	return s.repo.DeleteAllTokens(ctx, u.ID)
}

// HasToken reports whether the token is currently in the user's session list.
func (s *Store) HasToken(ctx context.Context, userID, token string) (bool, error) {
	return s.repo.HasToken(ctx, userID, token)
}

// Tokens returns the user's session tokens in issue order.
func (s *Store) Tokens(ctx context.Context, u *User) ([]string, error) {
	return s.repo.ListTokens(ctx, u.ID)
}
