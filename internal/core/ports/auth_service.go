package ports

import (
	"context"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
)

// AuthService binds login credentials to directory users and issues tokens.
// Tokens carry role tags only; there is no finer-grained authorization.
type AuthService interface {
	// Register attaches a password to an existing directory user.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
