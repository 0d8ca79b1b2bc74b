// Eyedea | 2026
// service_test.go

package org

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/philtech/eyedea/internal/core"
	"github.com/philtech/eyedea/internal/idea"
	"github.com/philtech/eyedea/internal/mail"
	"github.com/philtech/eyedea/internal/user"
)

type fakeOrgRepo struct {
	pillars     []Pillar
	departments []Department
	teams       []Team
	techPersons []TechPerson
}

func (f *fakeOrgRepo) ListPillars(_ context.Context) ([]Pillar, error) {
	return f.pillars, nil
}

func (f *fakeOrgRepo) CreatePillar(_ context.Context, p *Pillar) error {
	p.CreatedAt = time.Now()
	f.pillars = append(f.pillars, *p)
	return nil
}

func (f *fakeOrgRepo) DeletePillar(_ context.Context, id string) error {
	for i, p := range f.pillars {
		if p.ID == id {
			f.pillars = slices.Delete(f.pillars, i, i+1)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeOrgRepo) CountPillars(_ context.Context) (int, error) {
	return len(f.pillars), nil
}

func (f *fakeOrgRepo) ListDepartments(
	_ context.Context,
	pillar string,
) ([]Department, error) {
	if pillar == "" {
		return f.departments, nil
	}
	var out []Department
	for _, d := range f.departments {
		if d.Pillar == pillar {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeOrgRepo) CreateDepartment(_ context.Context, d *Department) error {
	d.CreatedAt = time.Now()
	f.departments = append(f.departments, *d)
	return nil
}

func (f *fakeOrgRepo) DeleteDepartment(_ context.Context, id string) error {
	for i, d := range f.departments {
		if d.ID == id {
			f.departments = slices.Delete(f.departments, i, i+1)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeOrgRepo) ListTeams(
	_ context.Context,
	pillar, department string,
) ([]Team, error) {
	var out []Team
	for _, t := range f.teams {
		if pillar != "" && t.Pillar != pillar {
			continue
		}
		if department != "" && t.Department != department {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeOrgRepo) CreateTeam(_ context.Context, t *Team) error {
	t.CreatedAt = time.Now()
	f.teams = append(f.teams, *t)
	return nil
}

func (f *fakeOrgRepo) DeleteTeam(_ context.Context, id string) error {
	for i, t := range f.teams {
		if t.ID == id {
			f.teams = slices.Delete(f.teams, i, i+1)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeOrgRepo) ListTechPersons(_ context.Context) ([]TechPerson, error) {
	return f.techPersons, nil
}

func (f *fakeOrgRepo) CreateTechPerson(_ context.Context, tp *TechPerson) error {
	tp.CreatedAt = time.Now()
	f.techPersons = append(f.techPersons, *tp)
	return nil
}

func (f *fakeOrgRepo) DeleteTechPerson(_ context.Context, id string) error {
	for i, tp := range f.techPersons {
		if tp.ID == id {
			f.techPersons = slices.Delete(f.techPersons, i, i+1)
			return nil
		}
	}
	return core.ErrNotFound
}

type fakeUserRepo struct {
	users map[string]*user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.Username] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(
	_ context.Context,
	username string,
) (*user.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(
	_ context.Context,
	email string,
) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	f.users[u.Username] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeUserRepo) UpdateSubRole(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func (f *fakeUserRepo) List(
	_ context.Context,
	_ user.ListUsersParams,
) ([]user.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) FindApproverByPillar(
	_ context.Context,
	pillar string,
) (*user.User, error) {
	for _, u := range f.users {
		if u.Role == user.RoleApprover && u.IsActive &&
			slices.Contains(u.ApprovedPillars, pillar) {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) FindApproverByDepartment(
	_ context.Context,
	department string,
) (*user.User, error) {
	for _, u := range f.users {
		if u.Role != user.RoleApprover || !u.IsActive {
			continue
		}
		if slices.Contains(u.ApprovedDepartments, department) ||
			u.Department == department {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

type fakeIdeaRepo struct {
	ideas   map[string]*idea.Idea
	nextNum int
}

func (f *fakeIdeaRepo) Create(_ context.Context, i *idea.Idea) error {
	f.nextNum++
	i.IdeaNumber = fmt.Sprintf("EYE-%05d", f.nextNum)
	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt

	stored := *i
	f.ideas[i.ID] = &stored
	return nil
}

func (f *fakeIdeaRepo) GetByID(_ context.Context, id string) (*idea.Idea, error) {
	stored, ok := f.ideas[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	i := *stored
	return &i, nil
}

func (f *fakeIdeaRepo) List(
	_ context.Context,
	_ idea.ListIdeasParams,
) ([]idea.Idea, int, error) {
	var out []idea.Idea
	for _, stored := range f.ideas {
		out = append(out, *stored)
	}
	return out, len(out), nil
}

func (f *fakeIdeaRepo) Update(_ context.Context, i *idea.Idea) error {
	stored := *i
	f.ideas[i.ID] = &stored
	return nil
}

func (f *fakeIdeaRepo) UpdateStatus(_ context.Context, id, status string) error {
	stored, ok := f.ideas[id]
	if !ok {
		return core.ErrNotFound
	}
	stored.Status = status
	return nil
}

func (f *fakeIdeaRepo) UpdateStatusByActor(
	_ context.Context,
	id, status, actorID, actorName string,
) error {
	stored, ok := f.ideas[id]
	if !ok {
		return core.ErrNotFound
	}
	stored.Status = status
	stored.StatusUpdatedBy = &actorID
	stored.StatusUpdatedByUsername = &actorName
	return nil
}

func (f *fakeIdeaRepo) ApplyEvaluation(_ context.Context, i *idea.Idea) error {
	now := time.Now()
	i.EvaluatedAt = &now
	stored := *i
	f.ideas[i.ID] = &stored
	return nil
}

func (f *fakeIdeaRepo) SetBestIdea(_ context.Context, id string) error {
	if _, ok := f.ideas[id]; !ok {
		return core.ErrNotFound
	}
	for _, stored := range f.ideas {
		stored.IsBestIdea = stored.ID == id
	}
	return nil
}

func (f *fakeIdeaRepo) Delete(_ context.Context, id string) error {
	delete(f.ideas, id)
	return nil
}

func (f *fakeIdeaRepo) CreateComment(_ context.Context, _ *idea.Comment) error {
	return nil
}

func (f *fakeIdeaRepo) ListComments(
	_ context.Context,
	_ string,
) ([]idea.Comment, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []mail.Email
}

func (f *fakeNotifier) Enqueue(email mail.Email) {
	f.sent = append(f.sent, email)
}

func newSeedFixture(t *testing.T) (*Service, *fakeOrgRepo, *fakeUserRepo, *fakeIdeaRepo) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	orgRepo := &fakeOrgRepo{}
	userRepo := &fakeUserRepo{users: map[string]*user.User{}}
	ideaRepo := &fakeIdeaRepo{ideas: map[string]*idea.Idea{}}

	userSvc := user.NewService(userRepo)
	ideaSvc := idea.NewService(ideaRepo, userSvc, &fakeNotifier{}, logger)

	return NewService(orgRepo, userSvc, ideaSvc, logger), orgRepo, userRepo, ideaRepo
}

func TestSeedDataLoadsDemoSet(t *testing.T) {
	svc, orgRepo, userRepo, ideaRepo := newSeedFixture(t)

	result, err := svc.SeedData(context.Background())
	require.NoError(t, err)
	require.True(t, result.Seeded)
	require.Equal(t, "Sample data seeded successfully", result.Message)

	require.Len(t, orgRepo.pillars, 4)
	require.Len(t, orgRepo.departments, 4)
	require.Len(t, orgRepo.teams, 2)

	for _, username := range []string{
		user.DemoAdminUsername,
		user.DemoApproverUsername,
		user.DemoUserUsername,
	} {
		seeded, err := userRepo.GetByUsername(context.Background(), username)
		require.NoError(t, err, "expected demo account %s", username)
		require.True(t, seeded.IsActive)
	}

	require.Len(t, ideaRepo.ideas, 2)

	statuses := map[string]string{}
	for _, seeded := range ideaRepo.ideas {
		statuses[seeded.Title] = seeded.Status
		require.NotNil(t, seeded.ApproverID)
	}
	require.Equal(t, idea.StatusPending, statuses["Automate Invoice Processing"])
	require.Equal(t, idea.StatusApproved, statuses["Standardize Approval Workflows"])
}

func TestSeedDataIsIdempotent(t *testing.T) {
	svc, _, userRepo, ideaRepo := newSeedFixture(t)

	first, err := svc.SeedData(context.Background())
	require.NoError(t, err)
	require.True(t, first.Seeded)

	second, err := svc.SeedData(context.Background())
	require.NoError(t, err)
	require.False(t, second.Seeded)
	require.Equal(t, "Data already seeded", second.Message)

	require.Len(t, userRepo.users, 3)
	require.Len(t, ideaRepo.ideas, 2)
}

func TestListLookupsHonorFilters(t *testing.T) {
	svc, _, _, _ := newSeedFixture(t)

	_, err := svc.SeedData(context.Background())
	require.NoError(t, err)

	all, err := svc.ListDepartments(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 4)

	gbs, err := svc.ListDepartments(context.Background(), "GBS")
	require.NoError(t, err)
	require.Len(t, gbs, 1)
	require.Equal(t, "Operations", gbs[0].Name)

	teams, err := svc.ListTeams(context.Background(), "GBS", "Operations")
	require.NoError(t, err)
	require.Len(t, teams, 2)

	none, err := svc.ListTeams(context.Background(), "Finance", "")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDepartmentPillarMapping(t *testing.T) {
	require.Equal(t, "GBS", departmentPillar("Operations"))
	require.Equal(t, "Tech", departmentPillar("Technology"))
	require.Equal(t, "Finance", departmentPillar("Finance"))
	require.Equal(t, "HR", departmentPillar("Human Resources"))
	require.Equal(t, "GBS", departmentPillar("anything else"))
}
