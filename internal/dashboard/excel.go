// Eyedea | 2026
// excel.go

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/philtech/eyedea/internal/idea"
)

const exportSheet = "Eye-deas"

var exportHeaders = []string{
	"Idea Number", "Title", "Status", "Pillar", "Department", "Team",
	"Improvement Type", "Submitted By", "Assigned Approver",
	"Quick Win", "Complexity", "Savings Type", "Cost Savings",
	"Time Saved (Hours)", "Time Saved (Minutes)", "Evaluated By",
	"Tech Person", "Best Idea", "Target Completion", "Created At",
}

// ExportExcel renders every idea into a styled workbook.
func (s *Service) ExportExcel(ctx context.Context) (*excelize.File, error) {
	ideas, err := s.repo.AllIdeas(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"0066CC"},
			Pattern: 1,
		},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	widths := make([]int, len(exportHeaders))
	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		widths[col] = len(header)
	}

	lastHeaderCell, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return nil, fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i := range ideas {
		row := i + 2
		for col, value := range exportRow(&ideas[i]) {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("write cell: %w", err)
			}
			if l := len(fmt.Sprint(value)); l > widths[col] {
				widths[col] = l
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		w := float64(width + 2)
		if w > 50 {
			w = 50
		}
		if err := f.SetColWidth(exportSheet, name, name, w); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	return f, nil
}

func exportRow(i *idea.Idea) []any {
	return []any{
		i.IdeaNumber,
		i.Title,
		i.Status,
		i.Pillar,
		i.Department,
		i.Team,
		i.ImprovementType,
		i.SubmitterName,
		strDeref(i.ApproverName),
		yesNoIfEvaluated(i),
		strDeref(i.Complexity),
		strDeref(i.SavingsType),
		floatDeref(i.CostSavingsAmount),
		intDeref(i.TimeSavedHours),
		intDeref(i.TimeSavedMinutes),
		strDeref(i.EvaluatedByUsername),
		strDeref(i.TechPersonName),
		yesNo(i.IsBestIdea),
		i.TargetCompletion,
		i.CreatedAt.Format(time.RFC3339),
	}
}

func yesNoIfEvaluated(i *idea.Idea) string {
	if !i.IsEvaluated() {
		return ""
	}
	return yesNo(i.IsQuickWin)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatDeref(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}

func intDeref(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}
