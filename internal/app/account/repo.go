package account

import "context"

// Repository is the persistence contract the credential store runs on.
// Implementations must map unique violations on the email column to
// ErrEmailTaken and missing rows to ErrNotFound.
type Repository interface {
	// CreateUser persists a new user record.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByID returns the user with the given id, or ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByEmail returns the user with the given (normalized) email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateUser overwrites the stored record for u.ID.
	UpdateUser(ctx context.Context, u *User) error

	// DeleteUser removes the user record and, atomically, every session token
	// belonging to it.
	DeleteUser(ctx context.Context, id string) error

	// AppendToken adds a session token to the end of the user's token list.
	AppendToken(ctx context.Context, userID, token string) error

	// DeleteToken removes a single session token. It reports whether the token
	// was present.
	DeleteToken(ctx context.Context, userID, token string) (bool, error)

	// DeleteAllTokens clears the user's entire token list.
	DeleteAllTokens(ctx context.Context, userID string) error

	// HasToken reports whether the token is in the user's live session list.
	HasToken(ctx context.Context, userID, token string) (bool, error)

	// ListTokens returns the user's session tokens in issue order.
	ListTokens(ctx context.Context, userID string) ([]string, error)
}
