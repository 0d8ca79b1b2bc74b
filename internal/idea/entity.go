// Eyedea | 2026
// entity.go

package idea

import (
	"time"
)

// Idea statuses. Draft exists in the model but no endpoint currently
// produces it; new submissions start as pending.
const (
	StatusDraft             = "draft"
	StatusPending           = "pending"
	StatusApproved          = "approved"
	StatusDeclined          = "declined"
	StatusRevisionRequested = "revision_requested"
	StatusImplemented       = "implemented"
	StatusAssignedToTE      = "assigned_to_te"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPending, StatusApproved, StatusDeclined,
		StatusRevisionRequested, StatusImplemented, StatusAssignedToTE:
		return true
	}
	return false
}

const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"
)

const (
	SavingsTypeCost = "cost_savings"
	SavingsTypeTime = "time_savings"
)

type Idea struct {
	ID                string `db:"id"`
	IdeaNumber        string `db:"idea_number"`
	Title             string `db:"title"`
	ImprovementType   string `db:"improvement_type"`
	CurrentProcess    string `db:"current_process"`
	SuggestedSolution string `db:"suggested_solution"`
	Benefits          string `db:"benefits"`
	TargetCompletion  string `db:"target_completion"`
	Pillar            string `db:"pillar"`
	Department        string `db:"department"`
	Team              string `db:"team"`
	Status            string `db:"status"`

	SubmittedBy   string  `db:"submitted_by"`
	SubmitterName string  `db:"submitter_name"`
	ApproverID    *string `db:"approver_id"`
	ApproverName  *string `db:"approver_name"`

	IsQuickWin        bool       `db:"is_quick_win"`
	Complexity        *string    `db:"complexity"`
	SavingsType       *string    `db:"savings_type"`
	CostSavingsAmount *float64   `db:"cost_savings_amount"`
	TimeSavedHours    *int       `db:"time_saved_hours"`
	TimeSavedMinutes  *int       `db:"time_saved_minutes"`
	AssignedToTech    bool       `db:"assigned_to_tech"`
	TechPersonName    *string    `db:"tech_person_name"`
	EvaluationNotes   *string    `db:"evaluation_notes"`
	IsBestIdea        bool       `db:"is_best_idea"`
	EvaluatedAt       *time.Time `db:"evaluated_at"`

	EvaluatedBy             *string `db:"evaluated_by"`
	EvaluatedByUsername     *string `db:"evaluated_by_username"`
	StatusUpdatedBy         *string `db:"status_updated_by"`
	StatusUpdatedByUsername *string `db:"status_updated_by_username"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsEvaluated reports whether the C.I. Excellence team has recorded an
// assessment; the evaluator's identity is the marker.
func (i *Idea) IsEvaluated() bool {
	return i.EvaluatedBy != nil
}

type Comment struct {
	ID         string    `db:"id"`
	IdeaID     string    `db:"idea_id"`
	AuthorID   string    `db:"author_id"`
	AuthorName string    `db:"author_name"`
	Text       string    `db:"text"`
	CreatedAt  time.Time `db:"created_at"`
}
