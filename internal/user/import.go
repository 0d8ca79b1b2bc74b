// Eyedea | 2026
// import.go

package user

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/philtech/eyedea/internal/core"
)

// BulkImport creates users from a CSV stream. Rows are processed in
// order; a bad row is recorded and skipped rather than aborting the
// batch.
func (s *Service) BulkImport(
	ctx context.Context,
	r io.Reader,
) (*BulkImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, core.BadRequestError("empty or unreadable CSV file")
	}

	columns, err := mapImportColumns(header)
	if err != nil {
		return nil, err
	}

	result := &BulkImportResult{Errors: []string{}}
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		req, err := importRowToRequest(record, columns)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		if _, err := s.Create(ctx, req); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("line %d (%s): %v", line, req.Username, err))
			continue
		}

		result.Created++
	}

	return result, nil
}

func mapImportColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"username", "email", "password", "role"} {
		if _, ok := columns[required]; !ok {
			return nil, core.BadRequestError(
				fmt.Sprintf("missing required column %q", required))
		}
	}

	return columns, nil
}

func importRowToRequest(
	record []string,
	columns map[string]int,
) (CreateUserRequest, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	req := CreateUserRequest{
		Username:            field("username"),
		Email:               field("email"),
		Password:            field("password"),
		Role:                field("role"),
		Department:          field("department"),
		Team:                field("team"),
		Pillar:              field("pillar"),
		Manager:             field("manager"),
		ApprovedPillars:     splitList(field("approved_pillars")),
		ApprovedDepartments: splitList(field("approved_departments")),
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return req, fmt.Errorf("username, email and password are required")
	}
	if !ValidRole(req.Role) {
		return req, fmt.Errorf("invalid role %q", req.Role)
	}

	return req, nil
}

// splitList parses semicolon-delimited list fields such as
// "Pillar A;Pillar B".
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
