// Eyedea | 2026
// permissions_test.go

package idea

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/philtech/eyedea/internal/user"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		subRole string
		action  Action
		want    bool
	}{
		{"admin approves", user.RoleAdmin, "", ActionApprove, true},
		{"admin declines", user.RoleAdmin, "", ActionDecline, true},
		{"admin evaluates", user.RoleAdmin, "", ActionCIEvaluate, true},
		{"admin selects best idea", user.RoleAdmin, "", ActionSetBestIdea, true},
		{"admin deletes", user.RoleAdmin, "", ActionDelete, true},

		{"plain approver approves", user.RoleApprover, "", ActionApprove, true},
		{"sub-role approver approves", user.RoleApprover, user.SubRoleApprover, ActionApprove, true},
		{"sub-role approver requests revision", user.RoleApprover, user.SubRoleApprover, ActionRequestRevision, true},
		{"ci excellence cannot approve", user.RoleApprover, user.SubRoleCIExcellence, ActionApprove, false},
		{"ci excellence cannot decline", user.RoleApprover, user.SubRoleCIExcellence, ActionDecline, false},

		{"ci excellence evaluates", user.RoleApprover, user.SubRoleCIExcellence, ActionCIEvaluate, true},
		{"ci excellence selects best idea", user.RoleApprover, user.SubRoleCIExcellence, ActionSetBestIdea, true},
		{"ci excellence updates te status", user.RoleApprover, user.SubRoleCIExcellence, ActionCIUpdateStatus, true},
		{"plain approver cannot evaluate", user.RoleApprover, "", ActionCIEvaluate, false},
		{"sub-role approver cannot select best idea", user.RoleApprover, user.SubRoleApprover, ActionSetBestIdea, false},

		{"user cannot approve", user.RoleUser, "", ActionApprove, false},
		{"user cannot delete", user.RoleUser, "", ActionDelete, false},
		{"approver cannot delete", user.RoleApprover, user.SubRoleApprover, ActionDelete, false},

		// Sub role is ignored for anything but approvers.
		{"user with stray sub role cannot evaluate", user.RoleUser, user.SubRoleCIExcellence, ActionCIEvaluate, false},
		{"admin with stray sub role still approves", user.RoleAdmin, user.SubRoleCIExcellence, ActionApprove, true},

		{"unknown action denied", user.RoleAdmin, "", Action("publish"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Can(tt.role, tt.subRole, tt.action))
		})
	}
}
