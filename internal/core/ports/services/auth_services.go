package services

import (
	"context"
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
)

// AuthSvcFacade handles registration, login and account management. Every
// operation that acts on behalf of a user takes the resolved acting user ID
// explicitly; nothing is read from ambient state.
type AuthSvcFacade interface {
	// Register creates a new user account and issues a token.
	// Fails with apperrors.ErrDuplicate when the username or email is taken
	// and apperrors.ErrForbiddenRole when the request asks for STAFF.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)

	// Login verifies credentials, stamps last login and issues a token.
	// Fails with apperrors.ErrUnauthorized on any credential failure.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// CurrentUser resolves the authenticated principal.
	CurrentUser(ctx context.Context, actingUserID string) (*domain.User, error)

	// ChangePassword verifies the current password and replaces it.
	ChangePassword(ctx context.Context, actingUserID string, req dto.ChangePasswordRequest) error

	// ListUsers returns active users; owner/admin only.
	ListUsers(ctx context.Context, actingUserID string, limit, offset int) ([]domain.User, error)

	// SetUserActive toggles another user's active flag; owner/admin only.
	SetUserActive(ctx context.Context, actingUserID, targetUserID string, active bool) error
}

// TokenSvcFacade issues and validates signed session tokens.
type TokenSvcFacade interface {
	// IssueToken creates a JWT for the user, returning the signed string and
	// its expiry.
	IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
