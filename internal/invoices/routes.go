package invoices

import "github.com/go-chi/chi/v5"

// MountRoutes registers invoice routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.handleList)
	r.Post("/invoices", h.handleCreate)
	r.Get("/invoices/{id}", h.handleShow)
	r.Put("/invoices/{id}", h.handleUpdate)
	r.Post("/invoices/{id}/status", h.handleTransition)
	r.Delete("/invoices/{id}", h.handleDelete)
}
