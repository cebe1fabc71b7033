package domain

import (
	"context"
	"strings"
	"time"
)

// Identity is the caller as asserted by the external identity provider.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// IsZero reports whether no identity is present.
func (i *Identity) IsZero() bool {
	return i == nil || i.UserID == ""
}

// HasEmail reports whether the identity carries an address registrations can be matched by.
func (i *Identity) HasEmail() bool {
	return i != nil && NormalizeEmail(i.Email) != ""
}

// User mirrors an identity-provider user so registrations can be listed and matched by email.
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeEmail lower-cases and trims an email for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TokenIssuer issues tokens for a user. Only tests and local tooling issue tokens;
// production tokens come from the identity provider.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the identity it asserts.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// UserRepository stores the local mirror of identity-provider users.
type UserRepository interface {
	Upsert(ctx context.Context, user *User) error
}
