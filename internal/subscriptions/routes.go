package subscriptions

import "github.com/go-chi/chi/v5"

// MountRoutes registers subscription routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/subscriptions", h.handleList)
	r.Post("/subscriptions", h.handleCreate)
	r.Put("/subscriptions/{id}", h.handleUpdate)
	r.Delete("/subscriptions/{id}", h.handleDelete)
}
