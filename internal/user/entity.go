// Eyedea | 2026
// entity.go

package user

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID                  string         `db:"id"`
	Username            string         `db:"username"`
	Email               string         `db:"email"`
	PasswordHash        string         `db:"password_hash"`
	Role                string         `db:"role"`
	SubRole             *string        `db:"sub_role"`
	Pillar              string         `db:"pillar"`
	Department          string         `db:"department"`
	Team                string         `db:"team"`
	Manager             string         `db:"manager"`
	ApprovedPillars     pq.StringArray `db:"approved_pillars"`
	ApprovedDepartments pq.StringArray `db:"approved_departments"`
	IsActive            bool           `db:"is_active"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsApprover() bool {
	return u.Role == RoleApprover
}

// IsCIExcellence reports membership in the evaluation team. Only
// approvers carry a sub role.
func (u *User) IsCIExcellence() bool {
	return u.Role == RoleApprover &&
		u.SubRole != nil &&
		*u.SubRole == SubRoleCIExcellence
}

func (u *User) SubRoleValue() string {
	if u.SubRole == nil {
		return ""
	}
	return *u.SubRole
}

// IsDemo guards the seeded walkthrough accounts against admin edits
// and deletion.
func (u *User) IsDemo() bool {
	return IsDemoUsername(u.Username)
}

func IsDemoUsername(username string) bool {
	switch username {
	case DemoAdminUsername, DemoApproverUsername, DemoUserUsername:
		return true
	}
	return false
}

const (
	RoleUser     = "user"
	RoleApprover = "approver"
	RoleAdmin    = "admin"
)

const (
	SubRoleApprover     = "approver"
	SubRoleCIExcellence = "ci_excellence"
)

const (
	DemoAdminUsername    = "admin"
	DemoApproverUsername = "approver1"
	DemoUserUsername     = "user1"
)

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleApprover, RoleAdmin:
		return true
	}
	return false
}

func ValidSubRole(subRole string) bool {
	switch subRole {
	case SubRoleApprover, SubRoleCIExcellence:
		return true
	}
	return false
}
