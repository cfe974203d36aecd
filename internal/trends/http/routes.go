package trendshttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers the trends report endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/reports/trends", h.handleMonthly)
}
