// Eyedea | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Username            string   `json:"username"             validate:"required,min=3,max=50"`
	Email               string   `json:"email"                validate:"required,email,max=255"`
	Password            string   `json:"password"             validate:"required,min=8,max=128"`
	Role                string   `json:"role"                 validate:"required,oneof=user approver admin"`
	Pillar              string   `json:"pillar"               validate:"max=100"`
	Department          string   `json:"department"           validate:"max=100"`
	Team                string   `json:"team"                 validate:"max=100"`
	Manager             string   `json:"manager"              validate:"max=100"`
	ApprovedPillars     []string `json:"approved_pillars"     validate:"dive,max=100"`
	ApprovedDepartments []string `json:"approved_departments" validate:"dive,max=100"`
}

type UpdateUserRequest struct {
	Email               *string  `json:"email,omitempty"      validate:"omitempty,email,max=255"`
	Role                *string  `json:"role,omitempty"       validate:"omitempty,oneof=user approver admin"`
	SubRole             *string  `json:"sub_role,omitempty"   validate:"omitempty,oneof=approver ci_excellence"`
	Pillar              *string  `json:"pillar,omitempty"     validate:"omitempty,max=100"`
	Department          *string  `json:"department,omitempty" validate:"omitempty,max=100"`
	Team                *string  `json:"team,omitempty"       validate:"omitempty,max=100"`
	Manager             *string  `json:"manager,omitempty"    validate:"omitempty,max=100"`
	ApprovedPillars     []string `json:"approved_pillars,omitempty"     validate:"omitempty,dive,max=100"`
	ApprovedDepartments []string `json:"approved_departments,omitempty" validate:"omitempty,dive,max=100"`
	IsActive            *bool    `json:"is_active,omitempty"`
}

type UserResponse struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	Role                string    `json:"role"`
	SubRole             string    `json:"sub_role,omitempty"`
	Pillar              string    `json:"pillar,omitempty"`
	Department          string    `json:"department,omitempty"`
	Team                string    `json:"team,omitempty"`
	Manager             string    `json:"manager,omitempty"`
	ApprovedPillars     []string  `json:"approved_pillars,omitempty"`
	ApprovedDepartments []string  `json:"approved_departments,omitempty"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type BulkImportResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Role:                u.Role,
		SubRole:             u.SubRoleValue(),
		Pillar:              u.Pillar,
		Department:          u.Department,
		Team:                u.Team,
		Manager:             u.Manager,
		ApprovedPillars:     u.ApprovedPillars,
		ApprovedDepartments: u.ApprovedDepartments,
		IsActive:            u.IsActive,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
