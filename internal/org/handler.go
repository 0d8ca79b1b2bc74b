// Eyedea | 2026
// handler.go

package org

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/philtech/eyedea/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterPublicRoutes serves the lookup lists registration forms need,
// without authentication.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Route("/public", func(r chi.Router) {
		r.Get("/pillars", h.ListPillars)
		r.Get("/departments", h.ListDepartments)
		r.Get("/teams", h.ListTeams)
	})
}

// RegisterAdminRoutes mounts each resource on its own /admin subpath so
// the other packages' /admin/users and /admin/stats routers coexist on
// the same parent.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	guard := func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)
	}

	r.Route("/admin/pillars", func(r chi.Router) {
		guard(r)
		r.Get("/", h.ListPillars)
		r.Post("/", h.CreatePillar)
		r.Delete("/{id}", h.DeletePillar)
	})

	r.Route("/admin/departments", func(r chi.Router) {
		guard(r)
		r.Get("/", h.ListDepartments)
		r.Post("/", h.CreateDepartment)
		r.Delete("/{id}", h.DeleteDepartment)
	})

	r.Route("/admin/teams", func(r chi.Router) {
		guard(r)
		r.Get("/", h.ListTeams)
		r.Post("/", h.CreateTeam)
		r.Delete("/{id}", h.DeleteTeam)
	})

	r.Route("/admin/tech-persons", func(r chi.Router) {
		guard(r)
		r.Get("/", h.ListTechPersons)
		r.Post("/", h.CreateTechPerson)
		r.Delete("/{id}", h.DeleteTechPerson)
	})

	r.With(authenticator, adminOnly).Post("/admin/seed-data", h.SeedData)
}

func (h *Handler) ListPillars(w http.ResponseWriter, r *http.Request) {
	pillars, err := h.service.ListPillars(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, pillars)
}

func (h *Handler) CreatePillar(w http.ResponseWriter, r *http.Request) {
	var req CreatePillarRequest
	if !h.decode(w, r, &req) {
		return
	}

	pillar, err := h.service.CreatePillar(r.Context(), req.Name)
	if err != nil {
		core.Error(w, err)
		return
	}
	core.Created(w, pillar)
}

func (h *Handler) DeletePillar(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeletePillar)
}

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.ListDepartments(
		r.Context(), r.URL.Query().Get("pillar"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, departments)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req CreateDepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	department, err := h.service.CreateDepartment(r.Context(), req)
	if err != nil {
		core.Error(w, err)
		return
	}
	core.Created(w, department)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteDepartment)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.ListTeams(
		r.Context(),
		r.URL.Query().Get("pillar"),
		r.URL.Query().Get("department"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, teams)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if !h.decode(w, r, &req) {
		return
	}

	team, err := h.service.CreateTeam(r.Context(), req)
	if err != nil {
		core.Error(w, err)
		return
	}
	core.Created(w, team)
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteTeam)
}

func (h *Handler) ListTechPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.service.ListTechPersons(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, persons)
}

func (h *Handler) CreateTechPerson(w http.ResponseWriter, r *http.Request) {
	var req CreateTechPersonRequest
	if !h.decode(w, r, &req) {
		return
	}

	person, err := h.service.CreateTechPerson(r.Context(), req)
	if err != nil {
		core.Error(w, err)
		return
	}
	core.Created(w, person)
}

func (h *Handler) DeleteTechPerson(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteTechPerson)
}

func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SeedData(r.Context())
	if err != nil {
		core.Error(w, err)
		return
	}
	core.OK(w, result)
}

func (h *Handler) decode(
	w http.ResponseWriter,
	r *http.Request,
	req any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}

func (h *Handler) deleteByID(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id string) error,
) {
	if err := fn(r.Context(), chi.URLParam(r, "id")); err != nil {
		core.Error(w, err)
		return
	}
	core.NoContent(w)
}
