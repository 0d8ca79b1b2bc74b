// Eyedea | 2026
// service_test.go

package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/philtech/eyedea/internal/idea"
)

type fakeDashboardRepo struct {
	agg  *Aggregate
	mine int
	best *idea.Idea
}

func (f *fakeDashboardRepo) Aggregate(
	_ context.Context,
	_, _ *time.Time,
) (*Aggregate, error) {
	return f.agg, nil
}

func (f *fakeDashboardRepo) CountBySubmitter(
	_ context.Context,
	_ string,
) (int, error) {
	return f.mine, nil
}

func (f *fakeDashboardRepo) BestIdea(_ context.Context) (*idea.Idea, error) {
	return f.best, nil
}

func (f *fakeDashboardRepo) AllIdeas(_ context.Context) ([]idea.Idea, error) {
	return nil, nil
}

func TestRate(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		total    int
		declined int
		want     float64
	}{
		{"typical", 3, 10, 2, 37.5},
		{"rounded to two decimals", 1, 4, 1, 33.33},
		{"everything counted", 8, 8, 0, 100},
		{"zero total", 0, 0, 0, 0},
		{"all declined", 2, 5, 5, 0},
		{"declined exceeds total", 1, 3, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Rate(tt.count, tt.total, tt.declined), 0.001)
		})
	}
}

func TestNormalizeTimeSaved(t *testing.T) {
	tests := []struct {
		name        string
		hours       int
		minutes     int
		wantHours   int
		wantMinutes int
	}{
		{"already normal", 2, 45, 2, 45},
		{"minutes carry over", 2, 130, 4, 10},
		{"exact hour", 0, 60, 1, 0},
		{"zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, minutes := NormalizeTimeSaved(tt.hours, tt.minutes)
			require.Equal(t, tt.wantHours, hours)
			require.Equal(t, tt.wantMinutes, minutes)
		})
	}
}

func TestStats(t *testing.T) {
	best := &idea.Idea{
		ID:         "i-1",
		IdeaNumber: "EYE-00002",
		Title:      "Standardize Approval Workflows",
		Status:     idea.StatusApproved,
		IsBestIdea: true,
	}

	svc := NewService(&fakeDashboardRepo{
		agg: &Aggregate{
			Total:    12,
			Pending:  4,
			Approved: 5,
			Declined: 3,
		},
		mine: 2,
		best: best,
	})

	stats, err := svc.Stats(context.Background(), "u-1")
	require.NoError(t, err)

	require.Equal(t, 12, stats.TotalIdeas)
	require.Equal(t, 4, stats.PendingIdeas)
	require.Equal(t, 2, stats.MyIdeas)
	require.NotNil(t, stats.BestIdea)
	require.Equal(t, "EYE-00002", stats.BestIdea.IdeaNumber)
}

func TestAnalytics(t *testing.T) {
	svc := NewService(&fakeDashboardRepo{
		agg: &Aggregate{
			Total:             10,
			Pending:           1,
			Approved:          3,
			Declined:          2,
			RevisionRequested: 1,
			Implemented:       2,
			AssignedToTE:      1,
			QuickWins:         2,
			LowComplexity:     1,
			MediumComplexity:  2,
			HighComplexity:    1,
			TotalCostSavings:  1500.75,
			TotalTimeHours:    2,
			TotalTimeMinutes:  130,
		},
	})

	analytics, err := svc.Analytics(context.Background(), nil, nil)
	require.NoError(t, err)

	require.InDelta(t, 37.5, analytics.ApprovalRate, 0.001)
	require.InDelta(t, 25.0, analytics.ImplementationRate, 0.001)
	require.InDelta(t, 12.5, analytics.AssignedToTERate, 0.001)

	require.Equal(t, 4, analytics.TotalTimeSaved.Hours)
	require.Equal(t, 10, analytics.TotalTimeSaved.Minutes)
	require.InDelta(t, 1500.75, analytics.TotalCostSavings, 0.001)

	require.Len(t, analytics.ChartsData.ComplexityChart, 3)
	require.Equal(t, "Quick Wins", analytics.ChartsData.QuickWinsChart[0].Name)
	require.Equal(t, 2, analytics.ChartsData.QuickWinsChart[0].Value)
	require.Equal(t, 4, analytics.ChartsData.QuickWinsChart[1].Value)
	require.Nil(t, analytics.BestIdea)
}
