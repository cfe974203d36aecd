package expenses

import "github.com/go-chi/chi/v5"

// MountRoutes registers expense routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/expenses", h.handleList)
	r.Post("/expenses", h.handleCreate)
	r.Put("/expenses/{id}", h.handleUpdate)
	r.Delete("/expenses/{id}", h.handleDelete)
}
