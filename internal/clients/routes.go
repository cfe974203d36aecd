package clients

import "github.com/go-chi/chi/v5"

// MountRoutes registers client routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/clients", h.handleList)
	r.Post("/clients", h.handleCreate)
	r.Get("/clients/{id}", h.handleShow)
	r.Put("/clients/{id}", h.handleUpdate)
	r.Delete("/clients/{id}", h.handleDelete)
}
