// Eyedea | 2026
// service.go

package idea

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/philtech/eyedea/internal/core"
	"github.com/philtech/eyedea/internal/mail"
	"github.com/philtech/eyedea/internal/middleware"
	"github.com/philtech/eyedea/internal/user"
)

// UserDirectory is the slice of the user service the idea lifecycle
// needs: resolving people for notifications and matching approvers to
// new submissions.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
	FindApprover(ctx context.Context, pillar, department string) (*user.User, error)
}

// Notifier accepts best-effort notification emails.
type Notifier interface {
	Enqueue(email mail.Email)
}

type Service struct {
	repo     Repository
	users    UserDirectory
	notifier Notifier
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	users UserDirectory,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *Service) Create(
	ctx context.Context,
	principal *middleware.Principal,
	req CreateIdeaRequest,
) (*Idea, error) {
	idea := &Idea{
		ID:                uuid.New().String(),
		Title:             req.Title,
		ImprovementType:   req.ImprovementType,
		CurrentProcess:    req.CurrentProcess,
		SuggestedSolution: req.SuggestedSolution,
		Benefits:          req.Benefits,
		TargetCompletion:  req.TargetCompletion,
		Pillar:            req.Pillar,
		Department:        req.Department,
		Team:              req.Team,
		Status:            StatusPending,
		SubmittedBy:       principal.ID,
		SubmitterName:     principal.Username,
	}

	approver, err := s.users.FindApprover(ctx, req.Pillar, req.Department)
	if err != nil {
		return nil, err
	}
	if approver != nil {
		idea.ApproverID = &approver.ID
		idea.ApproverName = &approver.Username
	}

	if err := s.repo.Create(ctx, idea); err != nil {
		return nil, err
	}

	if approver != nil {
		s.notifier.Enqueue(mail.IdeaSubmitted(
			approver.Username, idea.SubmitterName,
			idea.IdeaNumber, idea.Title,
		).WithRecipient(approver.Email))
	}

	return idea, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Idea, error) {
	return s.repo.GetByID(ctx, id)
}

// List scopes results by the caller's role: plain users see their own
// submissions, approvers additionally see what is assigned to them,
// admins and the evaluation team see everything.
func (s *Service) List(
	ctx context.Context,
	principal *middleware.Principal,
	params ListIdeasParams,
) ([]Idea, int, error) {
	switch {
	case principal.Role == user.RoleAdmin:
	case principal.Role == user.RoleApprover &&
		principal.SubRole == user.SubRoleCIExcellence:
	case principal.Role == user.RoleApprover:
		params.ScopeUserID = principal.ID
	default:
		params.SubmittedBy = principal.ID
	}

	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	principal *middleware.Principal,
	id string,
	req UpdateIdeaRequest,
) (*Idea, error) {
	idea, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if idea.SubmittedBy != principal.ID && principal.Role != user.RoleAdmin {
		return nil, core.ForbiddenError("only the submitter can edit an idea")
	}

	if req.Title != nil {
		idea.Title = *req.Title
	}
	if req.ImprovementType != nil {
		idea.ImprovementType = *req.ImprovementType
	}
	if req.CurrentProcess != nil {
		idea.CurrentProcess = *req.CurrentProcess
	}
	if req.SuggestedSolution != nil {
		idea.SuggestedSolution = *req.SuggestedSolution
	}
	if req.Benefits != nil {
		idea.Benefits = *req.Benefits
	}
	if req.TargetCompletion != nil {
		idea.TargetCompletion = *req.TargetCompletion
	}
	if req.Pillar != nil {
		idea.Pillar = *req.Pillar
	}
	if req.Department != nil {
		idea.Department = *req.Department
	}
	if req.Team != nil {
		idea.Team = *req.Team
	}

	if err := s.repo.Update(ctx, idea); err != nil {
		return nil, err
	}

	return idea, nil
}

func (s *Service) Approve(
	ctx context.Context,
	principal *middleware.Principal,
	id, comment string,
) (*Idea, error) {
	return s.review(ctx, principal, id, comment, ActionApprove, StatusApproved)
}

func (s *Service) Decline(
	ctx context.Context,
	principal *middleware.Principal,
	id, comment string,
) (*Idea, error) {
	return s.review(ctx, principal, id, comment, ActionDecline, StatusDeclined)
}

func (s *Service) RequestRevision(
	ctx context.Context,
	principal *middleware.Principal,
	id, comment string,
) (*Idea, error) {
	if comment == "" {
		return nil, core.BadRequestError(
			"a comment is required when requesting a revision")
	}
	return s.review(
		ctx, principal, id, comment,
		ActionRequestRevision, StatusRevisionRequested,
	)
}

func (s *Service) review(
	ctx context.Context,
	principal *middleware.Principal,
	id, comment string,
	action Action,
	newStatus string,
) (*Idea, error) {
	if !Can(principal.Role, principal.SubRole, action) {
		return nil, core.ForbiddenError("not allowed to review ideas")
	}

	idea, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	idea.Status = newStatus

	if comment != "" {
		if err := s.appendComment(ctx, principal, idea.ID, comment); err != nil {
			return nil, err
		}
	}

	s.notifySubmitter(ctx, idea, comment)

	return idea, nil
}

// Resubmit puts a revised idea back into the approver's queue.
func (s *Service) Resubmit(
	ctx context.Context,
	principal *middleware.Principal,
	id string,
) (*Idea, error) {
	idea, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if idea.SubmittedBy != principal.ID {
		return nil, core.ForbiddenError("only the submitter can resubmit an idea")
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusPending); err != nil {
		return nil, err
	}
	idea.Status = StatusPending

	if idea.ApproverID != nil {
		if approver, err := s.users.GetByID(ctx, *idea.ApproverID); err == nil {
			s.notifier.Enqueue(mail.IdeaResubmitted(
				approver.Username, idea.SubmitterName,
				idea.IdeaNumber, idea.Title,
			).WithRecipient(approver.Email))
		}
	}

	return idea, nil
}

// Evaluate records the C.I. Excellence assessment. Quick wins go
// straight to implemented; ideas handed to a named tech person move to
// assigned_to_te; otherwise the status stays where it was.
func (s *Service) Evaluate(
	ctx context.Context,
	principal *middleware.Principal,
	id string,
	req EvaluateRequest,
) (*Idea, error) {
	if !Can(principal.Role, principal.SubRole, ActionCIEvaluate) {
		return nil, core.ForbiddenError("not allowed to evaluate ideas")
	}

	idea, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idea.IsQuickWin = req.IsQuickWin
	idea.Complexity = req.Complexity
	idea.SavingsType = req.SavingsType
	idea.CostSavingsAmount = req.CostSavingsAmount
	idea.TimeSavedHours = req.TimeSavedHours
	idea.TimeSavedMinutes = req.TimeSavedMinutes
	idea.AssignedToTech = req.AssignedToTech
	idea.TechPersonName = req.TechPersonName
	idea.EvaluationNotes = req.EvaluationNotes
	idea.EvaluatedBy = &principal.ID
	idea.EvaluatedByUsername = &principal.Username

	switch {
	case req.IsQuickWin:
		idea.Status = StatusImplemented
	case req.AssignedToTech && req.TechPersonName != nil && *req.TechPersonName != "":
		idea.Status = StatusAssignedToTE
	}

	if err := s.repo.ApplyEvaluation(ctx, idea); err != nil {
		return nil, err
	}

	if submitter, err := s.users.GetByID(ctx, idea.SubmittedBy); err == nil {
		s.notifier.Enqueue(mail.IdeaEvaluated(
			submitter.Username, idea.IdeaNumber, idea.Title, idea.Status,
		).WithRecipient(submitter.Email))
	}

	return idea, nil
}

func (s *Service) SetBestIdea(
	ctx context.Context,
	principal *middleware.Principal,
	id string,
) (*Idea, error) {
	if !Can(principal.Role, principal.SubRole, ActionSetBestIdea) {
		return nil, core.ForbiddenError("not allowed to select the best idea")
	}

	if err := s.repo.SetBestIdea(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// UpdateCIStatus moves an idea out of the tech queue. It only applies
// to ideas currently assigned to T&E.
func (s *Service) UpdateCIStatus(
	ctx context.Context,
	principal *middleware.Principal,
	id, status string,
) (*Idea, error) {
	if !Can(principal.Role, principal.SubRole, ActionCIUpdateStatus) {
		return nil, core.ForbiddenError("not allowed to update idea status")
	}

	idea, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if idea.Status != StatusAssignedToTE {
		return nil, core.BadRequestError(
			"status can only be updated for ideas assigned to T&E")
	}

	err = s.repo.UpdateStatusByActor(
		ctx, id, status, principal.ID, principal.Username)
	if err != nil {
		return nil, err
	}
	idea.Status = status
	idea.StatusUpdatedBy = &principal.ID
	idea.StatusUpdatedByUsername = &principal.Username

	s.notifySubmitter(ctx, idea, "")

	return idea, nil
}

func (s *Service) Delete(
	ctx context.Context,
	principal *middleware.Principal,
	id string,
) error {
	if !Can(principal.Role, principal.SubRole, ActionDelete) {
		return core.ForbiddenError("only admins can delete ideas")
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) AddComment(
	ctx context.Context,
	principal *middleware.Principal,
	ideaID, text string,
) (*Comment, error) {
	if _, err := s.repo.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:         uuid.New().String(),
		IdeaID:     ideaID,
		AuthorID:   principal.ID,
		AuthorName: principal.Username,
		Text:       text,
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *Service) ListComments(
	ctx context.Context,
	ideaID string,
) ([]Comment, error) {
	if _, err := s.repo.GetByID(ctx, ideaID); err != nil {
		return nil, err
	}

	return s.repo.ListComments(ctx, ideaID)
}

func (s *Service) appendComment(
	ctx context.Context,
	principal *middleware.Principal,
	ideaID, text string,
) error {
	comment := &Comment{
		ID:         uuid.New().String(),
		IdeaID:     ideaID,
		AuthorID:   principal.ID,
		AuthorName: principal.Username,
		Text:       text,
	}
	return s.repo.CreateComment(ctx, comment)
}

// notifySubmitter picks the email template matching the idea's new
// status. Lookup or template misses are logged, never surfaced.
func (s *Service) notifySubmitter(ctx context.Context, idea *Idea, comment string) {
	submitter, err := s.users.GetByID(ctx, idea.SubmittedBy)
	if err != nil {
		s.logger.Warn("notify submitter: lookup failed",
			"idea", idea.IdeaNumber,
			"error", err,
		)
		return
	}

	var email mail.Email
	switch idea.Status {
	case StatusApproved:
		email = mail.IdeaApproved(
			submitter.Username, idea.IdeaNumber, idea.Title)
	case StatusDeclined:
		email = mail.IdeaDeclined(
			submitter.Username, idea.IdeaNumber, idea.Title, comment)
	case StatusRevisionRequested:
		email = mail.IdeaRevisionRequested(
			submitter.Username, idea.IdeaNumber, idea.Title, comment)
	case StatusImplemented:
		email = mail.IdeaEvaluated(
			submitter.Username, idea.IdeaNumber, idea.Title, idea.Status)
	default:
		return
	}

	s.notifier.Enqueue(email.WithRecipient(submitter.Email))
}
