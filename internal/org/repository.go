// Eyedea | 2026
// repository.go

package org

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/philtech/eyedea/internal/core"
)

type Repository interface {
	ListPillars(ctx context.Context) ([]Pillar, error)
	CreatePillar(ctx context.Context, p *Pillar) error
	DeletePillar(ctx context.Context, id string) error
	CountPillars(ctx context.Context) (int, error)

	ListDepartments(ctx context.Context, pillar string) ([]Department, error)
	CreateDepartment(ctx context.Context, d *Department) error
	DeleteDepartment(ctx context.Context, id string) error

	ListTeams(ctx context.Context, pillar, department string) ([]Team, error)
	CreateTeam(ctx context.Context, t *Team) error
	DeleteTeam(ctx context.Context, id string) error

	ListTechPersons(ctx context.Context) ([]TechPerson, error)
	CreateTechPerson(ctx context.Context, tp *TechPerson) error
	DeleteTechPerson(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListPillars(ctx context.Context) ([]Pillar, error) {
	var pillars []Pillar
	err := r.db.SelectContext(ctx, &pillars,
		`SELECT id, name, created_at FROM pillars ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list pillars: %w", err)
	}
	return pillars, nil
}

func (r *repository) CreatePillar(ctx context.Context, p *Pillar) error {
	err := r.db.GetContext(ctx, &p.CreatedAt,
		`INSERT INTO pillars (id, name) VALUES ($1, $2) RETURNING created_at`,
		p.ID, p.Name)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create pillar: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create pillar: %w", err)
	}
	return nil
}

func (r *repository) DeletePillar(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "pillars", "pillar", id)
}

func (r *repository) CountPillars(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pillars`)
	if err != nil {
		return 0, fmt.Errorf("count pillars: %w", err)
	}
	return count, nil
}

func (r *repository) ListDepartments(
	ctx context.Context,
	pillar string,
) ([]Department, error) {
	var departments []Department
	err := r.db.SelectContext(ctx, &departments,
		`SELECT id, name, pillar, created_at FROM departments
		 WHERE ($1 = '' OR pillar = $1)
		 ORDER BY name`, pillar)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

func (r *repository) CreateDepartment(ctx context.Context, d *Department) error {
	err := r.db.GetContext(ctx, &d.CreatedAt,
		`INSERT INTO departments (id, name, pillar)
		 VALUES ($1, $2, $3) RETURNING created_at`,
		d.ID, d.Name, d.Pillar)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create department: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

func (r *repository) DeleteDepartment(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "departments", "department", id)
}

func (r *repository) ListTeams(
	ctx context.Context,
	pillar, department string,
) ([]Team, error) {
	var teams []Team
	err := r.db.SelectContext(ctx, &teams,
		`SELECT id, name, pillar, department, created_at
		 FROM teams
		 WHERE ($1 = '' OR pillar = $1)
		   AND ($2 = '' OR department = $2)
		 ORDER BY name`, pillar, department)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (r *repository) CreateTeam(ctx context.Context, t *Team) error {
	err := r.db.GetContext(ctx, &t.CreatedAt,
		`INSERT INTO teams (id, name, pillar, department)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		t.ID, t.Name, t.Pillar, t.Department)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create team: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (r *repository) DeleteTeam(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "teams", "team", id)
}

func (r *repository) ListTechPersons(ctx context.Context) ([]TechPerson, error) {
	var persons []TechPerson
	err := r.db.SelectContext(ctx, &persons,
		`SELECT id, name, email, specialization, created_at
		 FROM tech_persons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tech persons: %w", err)
	}
	return persons, nil
}

func (r *repository) CreateTechPerson(ctx context.Context, tp *TechPerson) error {
	err := r.db.GetContext(ctx, &tp.CreatedAt,
		`INSERT INTO tech_persons (id, name, email, specialization)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		tp.ID, tp.Name, tp.Email, tp.Specialization)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create tech person: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create tech person: %w", err)
	}
	return nil
}

func (r *repository) DeleteTechPerson(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "tech_persons", "tech person", id)
}

func (r *repository) deleteByID(
	ctx context.Context,
	table, label, id string,
) error {
	//nolint:gosec // G201: table names are compile-time constants
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", label, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", label, err)
	}

	if rows == 0 {
		return fmt.Errorf("delete %s: %w", label, core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
