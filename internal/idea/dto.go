// Eyedea | 2026
// dto.go

package idea

import (
	"time"
)

type CreateIdeaRequest struct {
	Title             string `json:"title"              validate:"required,min=3,max=200"`
	ImprovementType   string `json:"improvement_type"   validate:"required,max=100"`
	CurrentProcess    string `json:"current_process"    validate:"required,max=5000"`
	SuggestedSolution string `json:"suggested_solution" validate:"required,max=5000"`
	Benefits          string `json:"benefits"           validate:"max=5000"`
	TargetCompletion  string `json:"target_completion"  validate:"max=100"`
	Pillar            string `json:"pillar"             validate:"max=100"`
	Department        string `json:"department"         validate:"max=100"`
	Team              string `json:"team"               validate:"max=100"`
}

type UpdateIdeaRequest struct {
	Title             *string `json:"title,omitempty"              validate:"omitempty,min=3,max=200"`
	ImprovementType   *string `json:"improvement_type,omitempty"   validate:"omitempty,max=100"`
	CurrentProcess    *string `json:"current_process,omitempty"    validate:"omitempty,max=5000"`
	SuggestedSolution *string `json:"suggested_solution,omitempty" validate:"omitempty,max=5000"`
	Benefits          *string `json:"benefits,omitempty"           validate:"omitempty,max=5000"`
	TargetCompletion  *string `json:"target_completion,omitempty"  validate:"omitempty,max=100"`
	Pillar            *string `json:"pillar,omitempty"             validate:"omitempty,max=100"`
	Department        *string `json:"department,omitempty"         validate:"omitempty,max=100"`
	Team              *string `json:"team,omitempty"               validate:"omitempty,max=100"`
}

// ReviewRequest carries the optional reviewer comment for approve and
// decline. Request-revision requires it; the service enforces that.
type ReviewRequest struct {
	Comment string `json:"comment" validate:"max=2000"`
}

type EvaluateRequest struct {
	IsQuickWin        bool     `json:"is_quick_win"`
	Complexity        *string  `json:"complexity,omitempty"          validate:"omitempty,oneof=Low Medium High"`
	SavingsType       *string  `json:"savings_type,omitempty"        validate:"omitempty,oneof=cost_savings time_savings"`
	CostSavingsAmount *float64 `json:"cost_savings_amount,omitempty" validate:"omitempty,gte=0"`
	TimeSavedHours    *int     `json:"time_saved_hours,omitempty"    validate:"omitempty,gte=0"`
	TimeSavedMinutes  *int     `json:"time_saved_minutes,omitempty"  validate:"omitempty,gte=0,lt=600"`
	AssignedToTech    bool     `json:"assigned_to_tech"`
	TechPersonName    *string  `json:"tech_person_name,omitempty"    validate:"omitempty,max=100"`
	EvaluationNotes   *string  `json:"evaluation_notes,omitempty"    validate:"omitempty,max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=implemented revision_requested declined"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type ListIdeasParams struct {
	Page        int
	PageSize    int
	Status      string
	Pillar      string
	Department  string
	Team        string
	SubmittedBy string
	AssignedTo  string

	// ScopeUserID restricts the listing to ideas the caller submitted
	// or reviews; the service sets it from the request principal, and
	// it applies on top of any explicit filters above.
	ScopeUserID string
}

func (p *ListIdeasParams) Normalize() {
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

func (p *ListIdeasParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type IdeaResponse struct {
	ID                string  `json:"id"`
	IdeaNumber        string  `json:"idea_number"`
	Title             string  `json:"title"`
	ImprovementType   string  `json:"improvement_type"`
	CurrentProcess    string  `json:"current_process"`
	SuggestedSolution string  `json:"suggested_solution"`
	Benefits          string  `json:"benefits,omitempty"`
	TargetCompletion  string  `json:"target_completion,omitempty"`
	Pillar            string  `json:"pillar,omitempty"`
	Department        string  `json:"department,omitempty"`
	Team              string  `json:"team,omitempty"`
	Status            string  `json:"status"`
	SubmittedBy       string  `json:"submitted_by"`
	SubmitterName     string  `json:"submitter_name"`
	ApproverID        *string `json:"approver_id,omitempty"`
	ApproverName      *string `json:"approver_name,omitempty"`

	IsQuickWin        bool       `json:"is_quick_win"`
	Complexity        *string    `json:"complexity,omitempty"`
	SavingsType       *string    `json:"savings_type,omitempty"`
	CostSavingsAmount *float64   `json:"cost_savings_amount,omitempty"`
	TimeSavedHours    *int       `json:"time_saved_hours,omitempty"`
	TimeSavedMinutes  *int       `json:"time_saved_minutes,omitempty"`
	AssignedToTech    bool       `json:"assigned_to_tech"`
	TechPersonName    *string    `json:"tech_person_name,omitempty"`
	EvaluationNotes   *string    `json:"evaluation_notes,omitempty"`
	IsBestIdea        bool       `json:"is_best_idea"`
	IsEvaluated       bool       `json:"is_evaluated"`
	EvaluatedAt       *time.Time `json:"evaluated_at,omitempty"`

	EvaluatedBy             *string `json:"evaluated_by,omitempty"`
	EvaluatedByUsername     *string `json:"evaluated_by_username,omitempty"`
	StatusUpdatedBy         *string `json:"status_updated_by,omitempty"`
	StatusUpdatedByUsername *string `json:"status_updated_by_username,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	IdeaID     string    `json:"idea_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToIdeaResponse(i *Idea) IdeaResponse {
	return IdeaResponse{
		ID:                i.ID,
		IdeaNumber:        i.IdeaNumber,
		Title:             i.Title,
		ImprovementType:   i.ImprovementType,
		CurrentProcess:    i.CurrentProcess,
		SuggestedSolution: i.SuggestedSolution,
		Benefits:          i.Benefits,
		TargetCompletion:  i.TargetCompletion,
		Pillar:            i.Pillar,
		Department:        i.Department,
		Team:              i.Team,
		Status:            i.Status,
		SubmittedBy:       i.SubmittedBy,
		SubmitterName:     i.SubmitterName,
		ApproverID:        i.ApproverID,
		ApproverName:      i.ApproverName,
		IsQuickWin:        i.IsQuickWin,
		Complexity:        i.Complexity,
		SavingsType:       i.SavingsType,
		CostSavingsAmount: i.CostSavingsAmount,
		TimeSavedHours:    i.TimeSavedHours,
		TimeSavedMinutes:  i.TimeSavedMinutes,
		AssignedToTech:    i.AssignedToTech,
		TechPersonName:    i.TechPersonName,
		EvaluationNotes:   i.EvaluationNotes,
		IsBestIdea:        i.IsBestIdea,
		IsEvaluated:       i.IsEvaluated(),
		EvaluatedAt:       i.EvaluatedAt,

		EvaluatedBy:             i.EvaluatedBy,
		EvaluatedByUsername:     i.EvaluatedByUsername,
		StatusUpdatedBy:         i.StatusUpdatedBy,
		StatusUpdatedByUsername: i.StatusUpdatedByUsername,

		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func ToIdeaResponseList(ideas []Idea) []IdeaResponse {
	responses := make([]IdeaResponse, 0, len(ideas))
	for _, i := range ideas {
		responses = append(responses, ToIdeaResponse(&i))
	}
	return responses
}

func ToCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		IdeaID:     c.IdeaID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

func ToCommentResponseList(comments []Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, ToCommentResponse(&c))
	}
	return responses
}
