// Eyedea | 2026
// service.go

package dashboard

import (
	"context"
	"math"
	"time"

	"github.com/philtech/eyedea/internal/idea"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Stats(
	ctx context.Context,
	userID string,
) (*StatsResponse, error) {
	agg, err := s.repo.Aggregate(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	mine, err := s.repo.CountBySubmitter(ctx, userID)
	if err != nil {
		return nil, err
	}

	best, err := s.repo.BestIdea(ctx)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{
		TotalIdeas:             agg.Total,
		PendingIdeas:           agg.Pending,
		ApprovedIdeas:          agg.Approved,
		DeclinedIdeas:          agg.Declined,
		RevisionRequestedIdeas: agg.RevisionRequested,
		ImplementedIdeas:       agg.Implemented,
		AssignedToTEIdeas:      agg.AssignedToTE,
		MyIdeas:                mine,
	}
	if best != nil {
		r := idea.ToIdeaResponse(best)
		resp.BestIdea = &r
	}

	return resp, nil
}

func (s *Service) Analytics(
	ctx context.Context,
	from, to *time.Time,
) (*AnalyticsResponse, error) {
	agg, err := s.repo.Aggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	best, err := s.repo.BestIdea(ctx)
	if err != nil {
		return nil, err
	}

	hours, minutes := NormalizeTimeSaved(agg.TotalTimeHours, agg.TotalTimeMinutes)

	resp := &AnalyticsResponse{
		QuickWinsCount: agg.QuickWins,
		ComplexityCounts: ComplexityCounts{
			Low:    agg.LowComplexity,
			Medium: agg.MediumComplexity,
			High:   agg.HighComplexity,
		},
		TotalCostSavings: agg.TotalCostSavings,
		TotalTimeSaved:   TimeSaved{Hours: hours, Minutes: minutes},

		TotalIdeas:        agg.Total,
		ApprovedCount:     agg.Approved,
		DeclinedCount:     agg.Declined,
		ImplementedCount:  agg.Implemented,
		AssignedToTECount: agg.AssignedToTE,
		PendingCount:      agg.Pending,
		RevisionCount:     agg.RevisionRequested,

		ApprovalRate:       Rate(agg.Approved, agg.Total, agg.Declined),
		ImplementationRate: Rate(agg.Implemented, agg.Total, agg.Declined),
		AssignedToTERate:   Rate(agg.AssignedToTE, agg.Total, agg.Declined),

		ChartsData: buildCharts(agg),
	}
	if best != nil {
		r := idea.ToIdeaResponse(best)
		resp.BestIdea = &r
	}

	return resp, nil
}

// Rate is count over (total - declined), as a percentage rounded to two
// decimals. Zero when the denominator is not positive.
func Rate(count, total, declined int) float64 {
	denominator := total - declined
	if denominator <= 0 {
		return 0
	}

	rate := float64(count) / float64(denominator) * 100
	return math.Round(rate*100) / 100
}

// NormalizeTimeSaved carries surplus minutes into hours so the minutes
// component stays below 60.
func NormalizeTimeSaved(hours, minutes int) (int, int) {
	return hours + minutes/60, minutes % 60
}

func buildCharts(agg *Aggregate) ChartsData {
	evaluated := agg.LowComplexity + agg.MediumComplexity + agg.HighComplexity

	return ChartsData{
		ComplexityChart: []ChartPoint{
			{Name: "Low Complexity", Value: agg.LowComplexity},
			{Name: "Medium Complexity", Value: agg.MediumComplexity},
			{Name: "High Complexity", Value: agg.HighComplexity},
		},
		QuickWinsChart: []ChartPoint{
			{Name: "Quick Wins", Value: agg.QuickWins},
			{Name: "Not Quick Wins", Value: evaluated},
		},
		StatusChart: []ChartPoint{
			{Name: "Approved", Value: agg.Approved},
			{Name: "Implemented", Value: agg.Implemented},
			{Name: "Assigned to T&E", Value: agg.AssignedToTE},
			{Name: "Pending", Value: agg.Pending},
			{Name: "Revision Requested", Value: agg.RevisionRequested},
			{Name: "Declined", Value: agg.Declined},
		},
	}
}
