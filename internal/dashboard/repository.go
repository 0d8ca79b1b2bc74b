// Eyedea | 2026
// repository.go

package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/philtech/eyedea/internal/core"
	"github.com/philtech/eyedea/internal/idea"
)

// Aggregate is one row of server-side idea statistics, computed with
// FILTER clauses in a single pass over the table.
type Aggregate struct {
	Total             int     `db:"total"`
	Pending           int     `db:"pending"`
	Approved          int     `db:"approved"`
	Declined          int     `db:"declined"`
	RevisionRequested int     `db:"revision_requested"`
	Implemented       int     `db:"implemented"`
	AssignedToTE      int     `db:"assigned_to_te"`
	QuickWins         int     `db:"quick_wins"`
	LowComplexity     int     `db:"low_complexity"`
	MediumComplexity  int     `db:"medium_complexity"`
	HighComplexity    int     `db:"high_complexity"`
	TotalCostSavings  float64 `db:"total_cost_savings"`
	TotalTimeHours    int     `db:"total_time_hours"`
	TotalTimeMinutes  int     `db:"total_time_minutes"`
}

type Repository interface {
	Aggregate(ctx context.Context, from, to *time.Time) (*Aggregate, error)
	CountBySubmitter(ctx context.Context, userID string) (int, error)
	BestIdea(ctx context.Context) (*idea.Idea, error)
	AllIdeas(ctx context.Context) ([]idea.Idea, error)
}

// Savings sums only count rows of the matching savings type, so a row
// evaluated as cost savings never contributes leftover hour/minute
// values to the time total.
const aggregateQuery = `
	SELECT
		COUNT(*)                                              AS total,
		COUNT(*) FILTER (WHERE status = 'pending')            AS pending,
		COUNT(*) FILTER (WHERE status = 'approved')           AS approved,
		COUNT(*) FILTER (WHERE status = 'declined')           AS declined,
		COUNT(*) FILTER (WHERE status = 'revision_requested') AS revision_requested,
		COUNT(*) FILTER (WHERE status = 'implemented')        AS implemented,
		COUNT(*) FILTER (WHERE status = 'assigned_to_te')     AS assigned_to_te,
		COUNT(*) FILTER (WHERE is_quick_win)                  AS quick_wins,
		COUNT(*) FILTER (WHERE complexity = 'Low')            AS low_complexity,
		COUNT(*) FILTER (WHERE complexity = 'Medium')         AS medium_complexity,
		COUNT(*) FILTER (WHERE complexity = 'High')           AS high_complexity,
		COALESCE(SUM(cost_savings_amount) FILTER (WHERE savings_type = 'cost_savings'), 0) AS total_cost_savings,
		COALESCE(SUM(time_saved_hours) FILTER (WHERE savings_type = 'time_savings'), 0)    AS total_time_hours,
		COALESCE(SUM(time_saved_minutes) FILTER (WHERE savings_type = 'time_savings'), 0)  AS total_time_minutes
	FROM ideas
	WHERE %s`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Aggregate(
	ctx context.Context,
	from, to *time.Time,
) (*Aggregate, error) {
	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if from != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *to)
		argIdx++
	}

	query := fmt.Sprintf(aggregateQuery, strings.Join(conditions, " AND "))

	var agg Aggregate
	if err := r.db.GetContext(ctx, &agg, query, args...); err != nil {
		return nil, fmt.Errorf("aggregate ideas: %w", err)
	}

	return &agg, nil
}

func (r *repository) CountBySubmitter(
	ctx context.Context,
	userID string,
) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM ideas WHERE submitted_by = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("count submitted ideas: %w", err)
	}
	return count, nil
}

func (r *repository) BestIdea(ctx context.Context) (*idea.Idea, error) {
	query := `
		SELECT id, idea_number, title, improvement_type, current_process,
		       suggested_solution, benefits, target_completion,
		       pillar, department, team, status,
		       submitted_by, submitter_name, approver_id, approver_name,
		       is_quick_win, complexity, savings_type, cost_savings_amount,
		       time_saved_hours, time_saved_minutes,
		       assigned_to_tech, tech_person_name, evaluation_notes,
		       is_best_idea, evaluated_at, evaluated_by, evaluated_by_username,
		       status_updated_by, status_updated_by_username,
		       created_at, updated_at
		FROM ideas
		WHERE is_best_idea
		LIMIT 1`

	var best idea.Idea
	err := r.db.GetContext(ctx, &best, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get best idea: %w", err)
	}

	return &best, nil
}

func (r *repository) AllIdeas(ctx context.Context) ([]idea.Idea, error) {
	query := `
		SELECT id, idea_number, title, improvement_type, current_process,
		       suggested_solution, benefits, target_completion,
		       pillar, department, team, status,
		       submitted_by, submitter_name, approver_id, approver_name,
		       is_quick_win, complexity, savings_type, cost_savings_amount,
		       time_saved_hours, time_saved_minutes,
		       assigned_to_tech, tech_person_name, evaluation_notes,
		       is_best_idea, evaluated_at, evaluated_by, evaluated_by_username,
		       status_updated_by, status_updated_by_username,
		       created_at, updated_at
		FROM ideas
		ORDER BY idea_number`

	var ideas []idea.Idea
	if err := r.db.SelectContext(ctx, &ideas, query); err != nil {
		return nil, fmt.Errorf("list all ideas: %w", err)
	}

	return ideas, nil
}
