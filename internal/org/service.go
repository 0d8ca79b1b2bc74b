// Eyedea | 2026
// service.go

package org

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/philtech/eyedea/internal/idea"
	"github.com/philtech/eyedea/internal/middleware"
	"github.com/philtech/eyedea/internal/user"
)

type Service struct {
	repo   Repository
	users  *user.Service
	ideas  *idea.Service
	logger *slog.Logger
}

func NewService(
	repo Repository,
	users *user.Service,
	ideas *idea.Service,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		ideas:  ideas,
		logger: logger,
	}
}

func (s *Service) ListPillars(ctx context.Context) ([]Pillar, error) {
	return s.repo.ListPillars(ctx)
}

func (s *Service) CreatePillar(ctx context.Context, name string) (*Pillar, error) {
	p := &Pillar{ID: uuid.New().String(), Name: name}
	if err := s.repo.CreatePillar(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePillar(ctx context.Context, id string) error {
	return s.repo.DeletePillar(ctx, id)
}

// ListDepartments filters by pillar when one is given; an empty pillar
// returns everything.
func (s *Service) ListDepartments(
	ctx context.Context,
	pillar string,
) ([]Department, error) {
	return s.repo.ListDepartments(ctx, pillar)
}

func (s *Service) CreateDepartment(
	ctx context.Context,
	req CreateDepartmentRequest,
) (*Department, error) {
	d := &Department{ID: uuid.New().String(), Name: req.Name, Pillar: req.Pillar}
	if err := s.repo.CreateDepartment(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	return s.repo.DeleteDepartment(ctx, id)
}

func (s *Service) ListTeams(
	ctx context.Context,
	pillar, department string,
) ([]Team, error) {
	return s.repo.ListTeams(ctx, pillar, department)
}

func (s *Service) CreateTeam(
	ctx context.Context,
	req CreateTeamRequest,
) (*Team, error) {
	t := &Team{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Pillar:     req.Pillar,
		Department: req.Department,
	}
	if err := s.repo.CreateTeam(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTeam(ctx context.Context, id string) error {
	return s.repo.DeleteTeam(ctx, id)
}

func (s *Service) ListTechPersons(ctx context.Context) ([]TechPerson, error) {
	return s.repo.ListTechPersons(ctx)
}

func (s *Service) CreateTechPerson(
	ctx context.Context,
	req CreateTechPersonRequest,
) (*TechPerson, error) {
	tp := &TechPerson{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Email:          req.Email,
		Specialization: req.Specialization,
	}
	if err := s.repo.CreateTechPerson(ctx, tp); err != nil {
		return nil, err
	}
	return tp, nil
}

func (s *Service) DeleteTechPerson(ctx context.Context, id string) error {
	return s.repo.DeleteTechPerson(ctx, id)
}

// SeedData loads the demo walkthrough data set. It is idempotent: once
// any pillar exists the call is a no-op.
func (s *Service) SeedData(ctx context.Context) (*SeedResult, error) {
	count, err := s.repo.CountPillars(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &SeedResult{Seeded: false, Message: "Data already seeded"}, nil
	}

	for _, name := range []string{"GBS", "Tech", "Finance", "HR"} {
		if _, err := s.CreatePillar(ctx, name); err != nil {
			return nil, fmt.Errorf("seed pillar %q: %w", name, err)
		}
	}

	for _, name := range []string{
		"Operations", "Technology", "Finance", "Human Resources",
	} {
		pillar := departmentPillar(name)
		if _, err := s.CreateDepartment(ctx, CreateDepartmentRequest{
			Name:   name,
			Pillar: pillar,
		}); err != nil {
			return nil, fmt.Errorf("seed department %q: %w", name, err)
		}
	}

	for _, team := range []CreateTeamRequest{
		{Name: "Allowance Billing", Pillar: "GBS", Department: "Operations"},
		{Name: "Pre-audit and AB", Pillar: "GBS", Department: "Operations"},
	} {
		if _, err := s.CreateTeam(ctx, team); err != nil {
			return nil, fmt.Errorf("seed team %q: %w", team.Name, err)
		}
	}

	if err := s.seedDemoAccounts(ctx); err != nil {
		return nil, err
	}

	if err := s.seedSampleIdeas(ctx); err != nil {
		return nil, err
	}

	return &SeedResult{Seeded: true, Message: "Sample data seeded successfully"}, nil
}

func departmentPillar(department string) string {
	switch department {
	case "Technology":
		return "Tech"
	case "Finance":
		return "Finance"
	case "Human Resources":
		return "HR"
	default:
		return "GBS"
	}
}

func (s *Service) seedDemoAccounts(ctx context.Context) error {
	accounts := []user.CreateUserRequest{
		{
			Username:   user.DemoAdminUsername,
			Email:      "admin@philtech.com",
			Password:   "admin123",
			Role:       user.RoleAdmin,
			Department: "Operations",
			Pillar:     "GBS",
		},
		{
			Username:            user.DemoApproverUsername,
			Email:               "approver1@philtech.com",
			Password:            "approver123",
			Role:                user.RoleApprover,
			Department:          "Operations",
			Pillar:              "GBS",
			Manager:             "admin",
			ApprovedPillars:     []string{"GBS", "Tech"},
			ApprovedDepartments: []string{"Operations", "Technology"},
		},
		{
			Username:   user.DemoUserUsername,
			Email:      "user1@philtech.com",
			Password:   "user123",
			Role:       user.RoleUser,
			Department: "Operations",
			Team:       "Allowance Billing",
			Pillar:     "GBS",
			Manager:    "approver1",
		},
	}

	for _, account := range accounts {
		if _, err := s.users.Create(ctx, account); err != nil {
			// Demo accounts may survive a wiped org table.
			s.logger.Warn("seed account skipped",
				"username", account.Username,
				"error", err,
			)
		}
	}

	return nil
}

func (s *Service) seedSampleIdeas(ctx context.Context) error {
	submitter, err := s.users.GetByUsername(ctx, user.DemoUserUsername)
	if err != nil {
		return fmt.Errorf("seed ideas: %w", err)
	}
	approver, err := s.users.GetByUsername(ctx, user.DemoApproverUsername)
	if err != nil {
		return fmt.Errorf("seed ideas: %w", err)
	}

	submitterPrincipal := &middleware.Principal{
		ID:       submitter.ID,
		Username: submitter.Username,
		Email:    submitter.Email,
		Role:     submitter.Role,
	}
	approverPrincipal := &middleware.Principal{
		ID:       approver.ID,
		Username: approver.Username,
		Email:    approver.Email,
		Role:     approver.Role,
	}

	_, err = s.ideas.Create(ctx, submitterPrincipal, idea.CreateIdeaRequest{
		Title:             "Automate Invoice Processing",
		ImprovementType:   "Automation",
		CurrentProcess:    "Manual invoice data entry and validation",
		SuggestedSolution: "Implement OCR and AI-powered invoice processing system",
		Benefits:          "Reduce processing time by 70% and eliminate manual errors",
		TargetCompletion:  "Q2 2025",
		Pillar:            "GBS",
		Department:        "Operations",
		Team:              "Allowance Billing",
	})
	if err != nil {
		return fmt.Errorf("seed idea: %w", err)
	}

	second, err := s.ideas.Create(ctx, submitterPrincipal, idea.CreateIdeaRequest{
		Title:             "Standardize Approval Workflows",
		ImprovementType:   "Standardization",
		CurrentProcess:    "Different approval processes across departments",
		SuggestedSolution: "Create unified approval workflow system",
		Benefits:          "Improve consistency and reduce approval time by 40%",
		TargetCompletion:  "Q3 2025",
		Pillar:            "Tech",
		Department:        "Technology",
	})
	if err != nil {
		return fmt.Errorf("seed idea: %w", err)
	}

	if _, err := s.ideas.Approve(ctx, approverPrincipal, second.ID, ""); err != nil {
		return fmt.Errorf("seed idea approval: %w", err)
	}

	return nil
}
