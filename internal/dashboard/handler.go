// Eyedea | 2026
// handler.go

package dashboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/philtech/eyedea/internal/core"
	"github.com/philtech/eyedea/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/stats", h.Stats)
		r.Get("/analytics", h.Analytics)
		r.Get("/export-excel", h.ExportExcel)
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDateQuery(w, r, "start_date", false)
	if !ok {
		return
	}
	to, ok := parseDateQuery(w, r, "end_date", true)
	if !ok {
		return
	}

	analytics, err := h.service.Analytics(r.Context(), from, to)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, analytics)
}

func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.ExportExcel(r.Context())
	if err != nil {
		core.Error(w, err)
		return
	}

	w.Header().Set(
		"Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	)
	w.Header().Set(
		"Content-Disposition",
		`attachment; filename="philtech_eyedeas.xlsx"`,
	)

	if err := f.Write(w); err != nil {
		// Headers are already out; nothing left but to log.
		slog.Error("excel export write failed", "error", err)
	}
}

// parseDateQuery accepts RFC 3339 timestamps or plain dates. A bare
// end date is pushed to the end of that day so the range is inclusive.
func parseDateQuery(
	w http.ResponseWriter,
	r *http.Request,
	key string,
	endOfDay bool,
) (*time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		core.BadRequest(w, key+" must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return nil, false
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return &t, true
}
