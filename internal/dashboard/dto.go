// Eyedea | 2026
// dto.go

package dashboard

import (
	"github.com/philtech/eyedea/internal/idea"
)

type StatsResponse struct {
	TotalIdeas             int                `json:"total_ideas"`
	PendingIdeas           int                `json:"pending_ideas"`
	ApprovedIdeas          int                `json:"approved_ideas"`
	DeclinedIdeas          int                `json:"declined_ideas"`
	RevisionRequestedIdeas int                `json:"revision_requested_ideas"`
	ImplementedIdeas       int                `json:"implemented_ideas"`
	AssignedToTEIdeas      int                `json:"assigned_to_te_ideas"`
	MyIdeas                int                `json:"my_ideas"`
	BestIdea               *idea.IdeaResponse `json:"best_idea"`
}

type ComplexityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type TimeSaved struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ChartsData struct {
	ComplexityChart []ChartPoint `json:"complexity_chart"`
	QuickWinsChart  []ChartPoint `json:"quick_wins_chart"`
	StatusChart     []ChartPoint `json:"status_chart"`
}

type AnalyticsResponse struct {
	QuickWinsCount   int                `json:"quick_wins_count"`
	ComplexityCounts ComplexityCounts   `json:"complexity_counts"`
	BestIdea         *idea.IdeaResponse `json:"best_idea"`
	TotalCostSavings float64            `json:"total_cost_savings"`
	TotalTimeSaved   TimeSaved          `json:"total_time_saved"`

	TotalIdeas        int `json:"total_ideas"`
	ApprovedCount     int `json:"approved_count"`
	DeclinedCount     int `json:"declined_count"`
	ImplementedCount  int `json:"implemented_count"`
	AssignedToTECount int `json:"assigned_to_te_count"`
	PendingCount      int `json:"pending_count"`
	RevisionCount     int `json:"revision_count"`

	ApprovalRate       float64 `json:"approval_rate"`
	ImplementationRate float64 `json:"implementation_rate"`
	AssignedToTERate   float64 `json:"assigned_to_te_rate"`

	ChartsData ChartsData `json:"charts_data"`
}
