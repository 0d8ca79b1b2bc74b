// Eyedea | 2026
// handler.go

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/philtech/eyedea/internal/core"
	"github.com/philtech/eyedea/internal/middleware"
	"github.com/philtech/eyedea/internal/user"
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
	loginLimiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter)

			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/forgot-password", h.ForgotPassword)
			r.Post("/reset-password", h.ResetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/me", h.Me)
			r.Post("/change-password", h.ChangePassword)
			r.Post("/set-sub-role", h.SetSubRole)
		})
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Created(w, user.ToUserResponse(u))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(u))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.ChangePassword(r.Context(), userID, req); err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "password changed"})
}

func (h *Handler) SetSubRole(w http.ResponseWriter, r *http.Request) {
	var req SetSubRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())
	u, err := h.service.SetSubRole(r.Context(), userID, req.SubRole)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(u))
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	message := h.service.ForgotPassword(r.Context(), req.Email)
	core.OK(w, MessageResponse{Message: message})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.ResetPassword(r.Context(), req); err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "password has been reset"})
}
