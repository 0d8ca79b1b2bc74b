// Eyedea | 2026
// service.go

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/philtech/eyedea/internal/core"
	"github.com/philtech/eyedea/internal/mail"
	"github.com/philtech/eyedea/internal/middleware"
	"github.com/philtech/eyedea/internal/user"
)

type Service struct {
	users       *user.Service
	jwtManager  *JWTManager
	mailQueue   *mail.Queue
	frontendURL string
	logger      *slog.Logger
}

func NewService(
	users *user.Service,
	jwtManager *JWTManager,
	mailQueue *mail.Queue,
	frontendURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:       users,
		jwtManager:  jwtManager,
		mailQueue:   mailQueue,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*user.User, error) {
	return s.users.Create(ctx, user.CreateUserRequest{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Role:       user.RoleUser,
		Pillar:     req.Pillar,
		Department: req.Department,
		Team:       req.Team,
		Manager:    req.Manager,
	})
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	u, err := s.users.GetByUsername(ctx, req.Username)

	var hash *string
	if err == nil {
		hash = &u.PasswordHash
	}

	valid, verifyErr := core.VerifyPasswordTimingSafe(req.Password, hash)
	if verifyErr != nil {
		return nil, fmt.Errorf("verify password: %w", verifyErr)
	}
	if err != nil || !valid {
		return nil, core.UnauthorizedError("invalid username or password")
	}

	token, err := s.jwtManager.CreateAccessToken(AccessTokenClaims{
		UserID:  u.ID,
		Role:    u.Role,
		SubRole: u.SubRoleValue(),
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        user.ToUserResponse(u),
	}, nil
}

// ResolveToken implements middleware.PrincipalResolver. The user record
// is re-read on every request so deleted or deactivated accounts lose
// access before their token expires.
func (s *Service) ResolveToken(
	ctx context.Context,
	token string,
) (*middleware.Principal, error) {
	claims, err := s.jwtManager.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if !u.IsActive {
		return nil, core.UnauthorizedError("account is deactivated")
	}

	return &middleware.Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		SubRole:  u.SubRoleValue(),
	}, nil
}

func (s *Service) GetMe(ctx context.Context, userID string) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID string,
	req ChangePasswordRequest,
) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	valid, err := core.VerifyPassword(req.CurrentPassword, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return core.UnauthorizedError("current password is incorrect")
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, newHash)
}

func (s *Service) SetSubRole(
	ctx context.Context,
	userID, subRole string,
) (*user.User, error) {
	return s.users.SetSubRole(ctx, userID, subRole)
}

const forgotPasswordMessage = "If that email address is registered, " +
	"a password reset link has been sent."

// ForgotPassword responds identically whether or not the email exists,
// so the endpoint cannot be used to enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) string {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !core.IsNotFound(err) {
			s.logger.Error("forgot password lookup failed", "error", err)
		}
		return forgotPasswordMessage
	}

	token, err := s.jwtManager.CreatePasswordResetToken(u.ID, u.Email)
	if err != nil {
		s.logger.Error("create reset token failed", "error", err)
		return forgotPasswordMessage
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	s.mailQueue.Enqueue(
		mail.PasswordReset(u.Username, resetURL).WithRecipient(u.Email))

	return forgotPasswordMessage
}

func (s *Service) ResetPassword(
	ctx context.Context,
	req ResetPasswordRequest,
) error {
	userID, email, err := s.jwtManager.VerifyPasswordResetToken(req.Token)
	if err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return core.TokenInvalidError()
	}

	// Email changed since the token was issued means the token no
	// longer refers to the same account.
	if u.Email != email {
		return core.TokenInvalidError()
	}

	newHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, newHash)
}
