// Eyedea | 2026
// permissions.go

package idea

import (
	"github.com/philtech/eyedea/internal/user"
)

type Action string

const (
	ActionApprove         Action = "approve"
	ActionDecline         Action = "decline"
	ActionRequestRevision Action = "request_revision"
	ActionCIEvaluate      Action = "ci_evaluate"
	ActionSetBestIdea     Action = "set_best_idea"
	ActionCIUpdateStatus  Action = "ci_update_status"
	ActionDelete          Action = "delete"
)

type permKey struct {
	role    string
	subRole string
}

// reviewGrants covers the first-line approval actions. An approver who
// has moved to the evaluation team no longer reviews submissions.
var reviewGrants = map[permKey]bool{
	{user.RoleAdmin, ""}:                      true,
	{user.RoleApprover, ""}:                   true,
	{user.RoleApprover, user.SubRoleApprover}: true,
}

// evaluationGrants covers the C.I. Excellence actions.
var evaluationGrants = map[permKey]bool{
	{user.RoleAdmin, ""}:                          true,
	{user.RoleApprover, user.SubRoleCIExcellence}: true,
}

var adminGrants = map[permKey]bool{
	{user.RoleAdmin, ""}: true,
}

var permissionTable = map[Action]map[permKey]bool{
	ActionApprove:         reviewGrants,
	ActionDecline:         reviewGrants,
	ActionRequestRevision: reviewGrants,
	ActionCIEvaluate:      evaluationGrants,
	ActionSetBestIdea:     evaluationGrants,
	ActionCIUpdateStatus:  evaluationGrants,
	ActionDelete:          adminGrants,
}

// Can answers the single permission question for every gated idea
// operation. Sub role is only meaningful for approvers; anything else
// is normalized away before the lookup.
func Can(role, subRole string, action Action) bool {
	if role != user.RoleApprover {
		subRole = ""
	}

	grants, ok := permissionTable[action]
	if !ok {
		return false
	}

	return grants[permKey{role: role, subRole: subRole}]
}
