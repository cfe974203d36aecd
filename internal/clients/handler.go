package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-ops/meridian/internal/shared"
)

// Handler wires HTTP endpoints for clients.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

type clientForm struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Notes   string `json:"notes" validate:"omitempty,max=2000"`
}

func (h *Handler) parseForm(r *http.Request) (ClientInput, error) {
	var form clientForm
	if err := shared.DecodeJSON(r, &form); err != nil {
		return ClientInput{}, err
	}
	if err := h.validator.Struct(form); err != nil {
		return ClientInput{}, err
	}
	return ClientInput{
		Name:    form.Name,
		Email:   form.Email,
		Company: form.Company,
		Notes:   form.Notes,
	}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list clients", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load clients")
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]interface{}{"clients": list})
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid client ID")
		return
	}
	client, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "client not found")
			return
		}
		h.logger.Error("get client", slog.Int64("id", id), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load client")
		return
	}
	shared.RespondJSON(w, http.StatusOK, client)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	client, err := h.service.Create(r.Context(), input)
	if err != nil {
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusCreated, client)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid client ID")
		return
	}
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	client, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "client not found")
			return
		}
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, client)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid client ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "client not found")
			return
		}
		h.logger.Error("delete client", slog.Int64("id", id), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
