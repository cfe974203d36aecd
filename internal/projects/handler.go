package projects

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-ops/meridian/internal/shared"
)

// Handler wires HTTP endpoints for projects.
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

type projectForm struct {
	ClientID    int64  `json:"client_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=200"`
	Status      string `json:"status" validate:"omitempty,oneof=ACTIVE ON_HOLD COMPLETED"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

func (h *Handler) parseForm(r *http.Request) (ProjectInput, error) {
	var form projectForm
	if err := shared.DecodeJSON(r, &form); err != nil {
		return ProjectInput{}, err
	}
	if err := h.validator.Struct(form); err != nil {
		return ProjectInput{}, err
	}
	return ProjectInput{
		ClientID:    form.ClientID,
		Name:        form.Name,
		Status:      Status(form.Status),
		Description: form.Description,
	}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var clientID int64
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			shared.RespondError(w, http.StatusBadRequest, "invalid client_id filter")
			return
		}
		clientID = id
	}
	list, err := h.service.List(r.Context(), clientID)
	if err != nil {
		h.logger.Error("list projects", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load projects")
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]interface{}{"projects": list})
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("get project", slog.Int64("id", id), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	shared.RespondJSON(w, http.StatusOK, project)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.service.Create(r.Context(), input)
	if err != nil {
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusCreated, project)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "project not found")
			return
		}
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, project)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid project ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("delete project", slog.Int64("id", id), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
