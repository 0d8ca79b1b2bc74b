// Eyedea | 2026
// import_test.go

package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/philtech/eyedea/internal/core"
)

type fakeUserRepo struct {
	byUsername map[string]*User
	byEmail    map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*User{},
		byEmail:    map[string]*User{},
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *User) error {
	f.byUsername[user.Username] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(
	_ context.Context,
	username string,
) (*User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *User) error {
	f.byUsername[user.Username] = user
	f.byEmail[user.Email] = user
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
	_ ListUsersParams,
) ([]User, int, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) FindApproverByPillar(
	_ context.Context,
	_ string,
) (*User, error) {
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) FindApproverByDepartment(
	_ context.Context,
	_ string,
) (*User, error) {
	return nil, core.ErrNotFound
}

func TestBulkImport(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	csv := strings.Join([]string{
		"username,email,password,role,pillar,approved_pillars,approved_departments",
		"jdoe,jdoe@philtech.com,pass1234,user,GBS,,",
		"rlee,rlee@philtech.com,pass1234,approver,Tech,GBS;Tech,Operations",
		"bad-role,bad@philtech.com,pass1234,superuser,,,",
		"nopass,nopass@philtech.com,,user,,,",
	}, "\n")

	result, err := svc.BulkImport(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	require.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 2)
	require.Contains(t, result.Errors[0], "line 4")
	require.Contains(t, result.Errors[0], "invalid role")
	require.Contains(t, result.Errors[1], "line 5")

	approver, err := repo.GetByUsername(context.Background(), "rlee")
	require.NoError(t, err)
	require.Equal(t, RoleApprover, approver.Role)
	require.Equal(t, []string{"GBS", "Tech"}, []string(approver.ApprovedPillars))
	require.Equal(t, []string{"Operations"}, []string(approver.ApprovedDepartments))
	require.True(t, approver.IsActive)
}

func TestBulkImportMissingRequiredColumn(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	csv := "username,email,password\njdoe,jdoe@philtech.com,pass1234"

	_, err := svc.BulkImport(context.Background(), strings.NewReader(csv))
	require.ErrorContains(t, err, `missing required column "role"`)
}

func TestBulkImportSkipsDuplicates(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	csv := strings.Join([]string{
		"username,email,password,role",
		"jdoe,jdoe@philtech.com,pass1234,user",
		"jdoe,jdoe2@philtech.com,pass1234,user",
	}, "\n")

	result, err := svc.BulkImport(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	require.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "jdoe")
}

func TestBulkImportEmptyFile(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.BulkImport(context.Background(), strings.NewReader(""))
	require.ErrorContains(t, err, "empty or unreadable")
}
