package repositories

import (
	"context"
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves a user matching either field.
	FindUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error)

	// ExistsByUsername reports whether any user holds the username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether any user holds the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindActiveUsers retrieves a paginated list of active users.
	FindActiveUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's mutable fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateLastLogin stamps the user's last successful login.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// SetUserActive toggles the user's active flag (soft deactivation).
	SetUserActive(ctx context.Context, userID string, active bool, updatedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
