// Eyedea | 2026
// handler.go

package idea

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/philtech/eyedea/internal/core"
	"github.com/philtech/eyedea/internal/middleware"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/ideas", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{ideaID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)

			r.Post("/approve", h.Approve)
			r.Post("/decline", h.Decline)
			r.Post("/request-revision", h.RequestRevision)
			r.Post("/resubmit", h.Resubmit)
			r.Post("/ci-evaluate", h.Evaluate)
			r.Post("/set-best-idea", h.SetBestIdea)
			r.Post("/mark-best-idea", h.SetBestIdea)
			r.Post("/ci-update-status", h.UpdateCIStatus)

			r.Get("/comments", h.ListComments)
			r.Post("/comments", h.AddComment)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	params := ListIdeasParams{
		Page:        parseIntQuery(r, "page", 1),
		PageSize:    parseIntQuery(r, "page_size", 20),
		Status:      r.URL.Query().Get("status"),
		Pillar:      r.URL.Query().Get("pillar"),
		Department:  r.URL.Query().Get("department"),
		Team:        r.URL.Query().Get("team"),
		SubmittedBy: r.URL.Query().Get("submitted_by"),
		AssignedTo:  r.URL.Query().Get("assigned_approver"),
	}

	if params.Status != "" && !ValidStatus(params.Status) {
		core.BadRequest(w, "invalid status filter")
		return
	}

	ideas, total, err := h.service.List(r.Context(), principal, params)
	if err != nil {
		core.Error(w, err)
		return
	}

	params.Normalize()
	core.Paginated(w, ToIdeaResponseList(ideas), params.Page, params.PageSize, total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	var req CreateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	idea, err := h.service.Create(r.Context(), principal, req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Created(w, ToIdeaResponse(idea))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	idea, err := h.service.Get(r.Context(), chi.URLParam(r, "ideaID"))
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, ToIdeaResponse(idea))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	idea, err := h.service.Update(
		r.Context(), principal, chi.URLParam(r, "ideaID"), req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, ToIdeaResponse(idea))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	err := h.service.Delete(r.Context(), principal, chi.URLParam(r, "ideaID"))
	if err != nil {
		core.Error(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.reviewAction(w, r, h.service.Approve)
}

func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	h.reviewAction(w, r, h.service.Decline)
}

func (h *Handler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	h.reviewAction(w, r, h.service.RequestRevision)
}

type reviewFunc func(
	ctx context.Context,
	principal *middleware.Principal,
	id, comment string,
) (*Idea, error)

func (h *Handler) reviewAction(
	w http.ResponseWriter,
	r *http.Request,
	fn reviewFunc,
) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	// The body is optional for approve and decline.
	var req ReviewRequest
	if r.Body != nil {
		//nolint:errcheck // an empty body means no comment
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	idea, err := fn(r.Context(), principal, chi.URLParam(r, "ideaID"), req.Comment)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, ToIdeaResponse(idea))
}

func (h *Handler) Resubmit(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	idea, err := h.service.Resubmit(
		r.Context(), principal, chi.URLParam(r, "ideaID"))
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, ToIdeaResponse(idea))
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	idea, err := h.service.Evaluate(
		r.Context(), principal, chi.URLParam(r, "ideaID"), req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, ToIdeaResponse(idea))
}

func (h *Handler) SetBestIdea(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	idea, err := h.service.SetBestIdea(
		r.Context(), principal, chi.URLParam(r, "ideaID"))
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, ToIdeaResponse(idea))
}

func (h *Handler) UpdateCIStatus(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	idea, err := h.service.UpdateCIStatus(
		r.Context(), principal, chi.URLParam(r, "ideaID"), req.Status)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, ToIdeaResponse(idea))
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(
		r.Context(), chi.URLParam(r, "ideaID"))
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, ToCommentResponseList(comments))
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		core.Unauthorized(w, "")
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	comment, err := h.service.AddComment(
		r.Context(), principal, chi.URLParam(r, "ideaID"), req.Text)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Created(w, ToCommentResponse(comment))
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
