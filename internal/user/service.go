// Eyedea | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/philtech/eyedea/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, core.DuplicateError("Username")
	}
	if _, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email)); err == nil {
		return nil, core.DuplicateError("Email")
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:                  uuid.New().String(),
		Username:            req.Username,
		Email:               strings.ToLower(req.Email),
		PasswordHash:        passwordHash,
		Role:                req.Role,
		Pillar:              req.Pillar,
		Department:          req.Department,
		Team:                req.Team,
		Manager:             req.Manager,
		ApprovedPillars:     req.ApprovedPillars,
		ApprovedDepartments: req.ApprovedDepartments,
		IsActive:            true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsDemo() {
		return nil, core.ForbiddenError("demo accounts cannot be modified")
	}

	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.SubRole != nil {
		user.SubRole = req.SubRole
	}
	if req.Pillar != nil {
		user.Pillar = *req.Pillar
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Team != nil {
		user.Team = *req.Team
	}
	if req.Manager != nil {
		user.Manager = *req.Manager
	}
	if req.ApprovedPillars != nil {
		user.ApprovedPillars = req.ApprovedPillars
	}
	if req.ApprovedDepartments != nil {
		user.ApprovedDepartments = req.ApprovedDepartments
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	// Sub role only means something for approvers.
	if user.Role != RoleApprover {
		user.SubRole = nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) SetSubRole(
	ctx context.Context,
	id, subRole string,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role != RoleApprover {
		return nil, core.ForbiddenError("only approvers can select a sub role")
	}

	if !ValidSubRole(subRole) {
		return nil, core.BadRequestError("invalid sub role")
	}

	if err := s.repo.UpdateSubRole(ctx, id, subRole); err != nil {
		return nil, err
	}

	user.SubRole = &subRole
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.IsDemo() {
		return core.ForbiddenError("demo accounts cannot be deleted")
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// FindApprover resolves the reviewer for a new idea: first an active
// approver authorized for the idea's pillar, then one authorized for
// (or belonging to) its department. Returns nil when nobody matches.
func (s *Service) FindApprover(
	ctx context.Context,
	pillar, department string,
) (*User, error) {
	if pillar != "" {
		approver, err := s.repo.FindApproverByPillar(ctx, pillar)
		if err == nil {
			return approver, nil
		}
		if !core.IsNotFound(err) {
			return nil, err
		}
	}

	if department != "" {
		approver, err := s.repo.FindApproverByDepartment(ctx, department)
		if err == nil {
			return approver, nil
		}
		if !core.IsNotFound(err) {
			return nil, err
		}
	}

	return nil, nil
}
