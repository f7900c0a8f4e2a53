package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portsrepo "github.com/ledgerly/ledgerly-backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/ledgerly/ledgerly-backend/internal/platform/config"
	"github.com/ledgerly/ledgerly-backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for issuing JWT session tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueToken creates a new JWT for the given user.
func (s *tokenService) IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiryTime, nil
}

// authService implements the AuthSvcFacade.
type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	tokenSvc portssvc.TokenSvcFacade
	auditSvc portssvc.AuditSvcFacade
}

// NewAuthService creates a new auth service with the provided dependencies.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, tokenSvc portssvc.TokenSvcFacade, auditSvc portssvc.AuditSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		auditSvc: auditSvc,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates a new user account and issues a token. Self-registration
// only creates owners; staff accounts are created by assignment.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := domain.RoleOwner
	if req.Role != "" {
		requested := domain.Role(req.Role)
		if !requested.IsValid() {
			return nil, fmt.Errorf("unknown role %q: %w", req.Role, apperrors.ErrValidation)
		}
		if requested != domain.RoleOwner {
			return nil, fmt.Errorf("role %s cannot self-register: %w", requested, apperrors.ErrForbiddenRole)
		}
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		s.LogError(ctx, err, "Failed to check username availability")
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username already taken: %w", apperrors.ErrDuplicate)
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.LogError(ctx, err, "Failed to check email availability")
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
		BusinessName: req.BusinessName,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "",
			LastUpdatedAt: now,
			LastUpdatedBy: "",
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save new user",
			slog.String("username", req.Username))
		return nil, err
	}

	token, expiresAt, err := s.tokenSvc.IssueToken(ctx, &user)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue token after registration",
			slog.String("user_id", user.UserID))
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "REGISTER_USER", "USER", user.UserID, "", user.UserID)
	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(&user),
	}, nil
}

// Login verifies credentials, stamps the last login and issues a token. Every
// credential failure collapses to ErrUnauthorized so callers cannot probe for
// which accounts exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, req.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !user.IsActive {
		s.auditSvc.LogFailure(ctx, "LOGIN", "USER", user.UserID, "account deactivated", user.UserID)
		return nil, fmt.Errorf("account deactivated: %w", apperrors.ErrUnauthorized)
	}
	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		s.auditSvc.LogFailure(ctx, "LOGIN", "USER", user.UserID, "wrong password", user.UserID)
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		// A failed stamp must not block the login itself.
		s.LogError(ctx, err, "Failed to stamp last login",
			slog.String("user_id", user.UserID))
	} else {
		user.LastLoginAt = &now
	}

	token, expiresAt, err := s.tokenSvc.IssueToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue token for login",
			slog.String("user_id", user.UserID))
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "LOGIN", "USER", user.UserID, "", user.UserID)
	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

// CurrentUser resolves the authenticated principal.
func (s *authService) CurrentUser(ctx context.Context, actingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve current user",
				slog.String("user_id", actingUserID))
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *authService) ChangePassword(ctx context.Context, actingUserID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		s.auditSvc.LogFailure(ctx, "CHANGE_PASSWORD", "USER", actingUserID, "wrong current password", actingUserID)
		return fmt.Errorf("current password mismatch: %w", apperrors.ErrUnauthorized)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	user.PasswordHash = hash
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = actingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update password",
			slog.String("user_id", actingUserID))
		return err
	}

	s.auditSvc.LogSuccess(ctx, "CHANGE_PASSWORD", "USER", actingUserID, "", actingUserID)
	return nil
}

// requireManager resolves the acting user and checks they hold a managing role.
func (s *authService) requireManager(ctx context.Context, actingUserID string) (*domain.User, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("user %s may not manage accounts: %w", actingUserID, apperrors.ErrForbidden)
	}
	return actor, nil
}

// ListUsers returns active users; owner/admin only.
func (s *authService) ListUsers(ctx context.Context, actingUserID string, limit, offset int) ([]domain.User, error) {
	if _, err := s.requireManager(ctx, actingUserID); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindActiveUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

// SetUserActive toggles another user's active flag; owner/admin only.
func (s *authService) SetUserActive(ctx context.Context, actingUserID, targetUserID string, active bool) error {
	if _, err := s.requireManager(ctx, actingUserID); err != nil {
		return err
	}
	if actingUserID == targetUserID && !active {
		return fmt.Errorf("cannot deactivate own account: %w", apperrors.ErrValidation)
	}

	if err := s.userRepo.SetUserActive(ctx, targetUserID, active, actingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to toggle user active flag",
				slog.String("target_user_id", targetUserID))
		}
		return err
	}

	action := "ACTIVATE_USER"
	if !active {
		action = "DEACTIVATE_USER"
	}
	s.auditSvc.LogSuccess(ctx, action, "USER", targetUserID, "", actingUserID)
	return nil
}
