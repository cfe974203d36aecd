package projects

import "github.com/go-chi/chi/v5"

// MountRoutes registers project routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/projects", h.handleList)
	r.Post("/projects", h.handleCreate)
	r.Get("/projects/{id}", h.handleShow)
	r.Put("/projects/{id}", h.handleUpdate)
	r.Delete("/projects/{id}", h.handleDelete)
}
