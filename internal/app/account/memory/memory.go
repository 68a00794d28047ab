/*
Package memory implements the account.Repository contract in process memory.

It mirrors the PostgreSQL implementation's semantics (email uniqueness,
cascading token deletion, ordered token lists) and is used by the test suites
so they can exercise the full stack without a database.
*/
package memory

import (
	"context"
	"sync"

	"accountd/internal/app/account"
)

// Repository is an in-memory account.Repository.
type Repository struct {
	mu     sync.RWMutex
	users  map[string]*account.User
	emails map[string]string // normalized email -> user id
	tokens map[string][]string
}

// New constructs an empty in-memory repository.
func New() *Repository {
	return &Repository{
		users:  make(map[string]*account.User),
		emails: make(map[string]string),
		tokens: make(map[string][]string),
	}
}

var _ account.Repository = (*Repository)(nil)

// CreateUser inserts a new user record.
func (r *Repository) CreateUser(ctx context.Context, u *account.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[u.Email]; taken {
		return account.ErrEmailTaken
	}

	clone := *u
	r.users[u.ID] = &clone
	r.emails[u.Email] = u.ID
	return nil
}

// GetUserByID fetches a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*account.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, account.ErrNotFound
	}

	clone := *u
	return &clone, nil
}

// GetUserByEmail fetches a user by its normalized email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*account.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, account.ErrNotFound
	}

	clone := *r.users[id]
	return &clone, nil
}

// UpdateUser overwrites the stored record for u.ID.
func (r *Repository) UpdateUser(ctx context.Context, u *account.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return account.ErrNotFound
	}

	if owner, taken := r.emails[u.Email]; taken && owner != u.ID {
		return account.ErrEmailTaken
	}

	delete(r.emails, stored.Email)
	clone := *u
	r.users[u.ID] = &clone
	r.emails[u.Email] = u.ID
	return nil
}

// DeleteUser removes the user record and all of its session tokens.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return account.ErrNotFound
	}

	delete(r.emails, u.Email)
	delete(r.users, id)
	delete(r.tokens, id)
	return nil
}

// AppendToken adds a session token to the end of the user's list.
func (r *Repository) AppendToken(ctx context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return account.ErrNotFound
	}

	r.tokens[userID] = append(r.tokens[userID], token)
	return nil
}

// DeleteToken removes one session token and reports whether it was present.
func (r *Repository) DeleteToken(ctx context.Context, userID, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.tokens[userID]
	for i, t := range list {
		if t == token {
			r.tokens[userID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// DeleteAllTokens clears the user's entire session list.
func (r *Repository) DeleteAllTokens(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, userID)
	return nil
}

// HasToken reports whether the token is in the user's live session list.
func (r *Repository) HasToken(ctx context.Context, userID, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tokens[userID] {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

// ListTokens returns the user's session tokens in issue order.
func (r *Repository) ListTokens(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.tokens[userID]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}
