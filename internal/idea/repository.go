// Eyedea | 2026
// repository.go

package idea

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/philtech/eyedea/internal/core"
)

type Repository interface {
	Create(ctx context.Context, idea *Idea) error
	GetByID(ctx context.Context, id string) (*Idea, error)
	List(ctx context.Context, params ListIdeasParams) ([]Idea, int, error)
	Update(ctx context.Context, idea *Idea) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateStatusByActor(ctx context.Context, id, status, actorID, actorName string) error
	ApplyEvaluation(ctx context.Context, idea *Idea) error
	SetBestIdea(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	CreateComment(ctx context.Context, comment *Comment) error
	ListComments(ctx context.Context, ideaID string) ([]Comment, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const ideaColumns = `
	id, idea_number, title, improvement_type, current_process,
	suggested_solution, benefits, target_completion,
	pillar, department, team, status,
	submitted_by, submitter_name, approver_id, approver_name,
	is_quick_win, complexity, savings_type, cost_savings_amount,
	time_saved_hours, time_saved_minutes,
	assigned_to_tech, tech_person_name, evaluation_notes,
	is_best_idea, evaluated_at, evaluated_by, evaluated_by_username,
	status_updated_by, status_updated_by_username, created_at, updated_at`

// Create inserts the idea and derives its human-readable number from a
// dedicated sequence in the same statement, so concurrent submissions
// can never collide on a number.
func (r *repository) Create(ctx context.Context, idea *Idea) error {
	query := `
		INSERT INTO ideas (
			id, idea_number, title, improvement_type, current_process,
			suggested_solution, benefits, target_completion,
			pillar, department, team, status,
			submitted_by, submitter_name, approver_id, approver_name
		)
		VALUES (
			$1, 'EYE-' || lpad(nextval('idea_number_seq')::text, 5, '0'),
			$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING idea_number, created_at, updated_at`

	err := r.db.GetContext(ctx, idea, query,
		idea.ID,
		idea.Title,
		idea.ImprovementType,
		idea.CurrentProcess,
		idea.SuggestedSolution,
		idea.Benefits,
		idea.TargetCompletion,
		idea.Pillar,
		idea.Department,
		idea.Team,
		idea.Status,
		idea.SubmittedBy,
		idea.SubmitterName,
		idea.ApproverID,
		idea.ApproverName,
	)
	if err != nil {
		return fmt.Errorf("create idea: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Idea, error) {
	query := fmt.Sprintf(`SELECT %s FROM ideas WHERE id = $1`, ideaColumns)

	var idea Idea
	err := r.db.GetContext(ctx, &idea, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get idea: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}

	return &idea, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListIdeasParams,
) ([]Idea, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.Pillar != "" {
		conditions = append(conditions, fmt.Sprintf("pillar = $%d", argIdx))
		args = append(args, params.Pillar)
		argIdx++
	}

	if params.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, params.Department)
		argIdx++
	}

	if params.Team != "" {
		conditions = append(conditions, fmt.Sprintf("team = $%d", argIdx))
		args = append(args, params.Team)
		argIdx++
	}

	if params.SubmittedBy != "" {
		conditions = append(conditions, fmt.Sprintf("submitted_by = $%d", argIdx))
		args = append(args, params.SubmittedBy)
		argIdx++
	}

	if params.AssignedTo != "" {
		conditions = append(conditions, fmt.Sprintf("approver_id = $%d", argIdx))
		args = append(args, params.AssignedTo)
		argIdx++
	}

	// Non-admin visibility: own submissions, plus anything assigned to
	// the caller when they are an approver.
	if params.ScopeUserID != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(submitted_by = $%d OR approver_id = $%d)", argIdx, argIdx))
		args = append(args, params.ScopeUserID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM ideas WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count ideas: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM ideas
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		ideaColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var ideas []Idea
	if err := r.db.SelectContext(ctx, &ideas, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list ideas: %w", err)
	}

	return ideas, total, nil
}

func (r *repository) Update(ctx context.Context, idea *Idea) error {
	query := `
		UPDATE ideas
		SET title = $2,
		    improvement_type = $3,
		    current_process = $4,
		    suggested_solution = $5,
		    benefits = $6,
		    target_completion = $7,
		    pillar = $8,
		    department = $9,
		    team = $10,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &idea.UpdatedAt, query,
		idea.ID,
		idea.Title,
		idea.ImprovementType,
		idea.CurrentProcess,
		idea.SuggestedSolution,
		idea.Benefits,
		idea.TargetCompletion,
		idea.Pillar,
		idea.Department,
		idea.Team,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update idea: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update idea: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE ideas
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update idea status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update idea status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update idea status: %w", core.ErrNotFound)
	}

	return nil
}

// UpdateStatusByActor also records who moved the idea, for transitions
// where the actor is not already captured as the assigned approver.
func (r *repository) UpdateStatusByActor(
	ctx context.Context,
	id, status, actorID, actorName string,
) error {
	query := `
		UPDATE ideas
		SET status = $2,
		    status_updated_by = $3,
		    status_updated_by_username = $4,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, actorID, actorName)
	if err != nil {
		return fmt.Errorf("update idea status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update idea status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update idea status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ApplyEvaluation(ctx context.Context, idea *Idea) error {
	query := `
		UPDATE ideas
		SET status = $2,
		    is_quick_win = $3,
		    complexity = $4,
		    savings_type = $5,
		    cost_savings_amount = $6,
		    time_saved_hours = $7,
		    time_saved_minutes = $8,
		    assigned_to_tech = $9,
		    tech_person_name = $10,
		    evaluation_notes = $11,
		    evaluated_by = $12,
		    evaluated_by_username = $13,
		    evaluated_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING evaluated_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		idea.ID,
		idea.Status,
		idea.IsQuickWin,
		idea.Complexity,
		idea.SavingsType,
		idea.CostSavingsAmount,
		idea.TimeSavedHours,
		idea.TimeSavedMinutes,
		idea.AssignedToTech,
		idea.TechPersonName,
		idea.EvaluationNotes,
		idea.EvaluatedBy,
		idea.EvaluatedByUsername,
	).Scan(&idea.EvaluatedAt, &idea.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("apply evaluation: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("apply evaluation: %w", err)
	}

	return nil
}

// SetBestIdea clears the current holder and crowns the new one inside a
// single transaction. A partial unique index on is_best_idea backs this
// up at the schema level.
func (r *repository) SetBestIdea(ctx context.Context, id string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE ideas SET is_best_idea = FALSE, updated_at = NOW()
			 WHERE is_best_idea`,
		); err != nil {
			return fmt.Errorf("clear best idea: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE ideas SET is_best_idea = TRUE, updated_at = NOW()
			 WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("set best idea: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("set best idea: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("set best idea: %w", core.ErrNotFound)
		}

		return nil
	})
}

// Delete removes the idea; its comments go with it via the FK cascade.
func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete idea: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateComment(
	ctx context.Context,
	comment *Comment,
) error {
	query := `
		INSERT INTO idea_comments (id, idea_id, author_id, author_name, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &comment.CreatedAt, query,
		comment.ID,
		comment.IdeaID,
		comment.AuthorID,
		comment.AuthorName,
		comment.Text,
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *repository) ListComments(
	ctx context.Context,
	ideaID string,
) ([]Comment, error) {
	query := `
		SELECT id, idea_id, author_id, author_name, text, created_at
		FROM idea_comments
		WHERE idea_id = $1
		ORDER BY created_at`

	var comments []Comment
	if err := r.db.SelectContext(ctx, &comments, query, ideaID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}
