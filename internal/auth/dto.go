// Eyedea | 2026
// dto.go

package auth

import (
	"github.com/philtech/eyedea/internal/user"
)

type RegisterRequest struct {
	Username   string `json:"username"   validate:"required,min=3,max=50"`
	Email      string `json:"email"      validate:"required,email,max=255"`
	Password   string `json:"password"   validate:"required,min=8,max=128"`
	Pillar     string `json:"pillar"     validate:"max=100"`
	Department string `json:"department" validate:"max=100"`
	Team       string `json:"team"       validate:"max=100"`
	Manager    string `json:"manager"    validate:"max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	User        user.UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}

type SetSubRoleRequest struct {
	SubRole string `json:"sub_role" validate:"required,oneof=approver ci_excellence"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
