package invoices

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-ops/meridian/internal/money"
	"github.com/meridian-ops/meridian/internal/shared"
)

const dateLayout = "2006-01-02"

// Handler wires HTTP endpoints for invoices.
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

type invoiceForm struct {
	ClientID  int64  `json:"client_id" validate:"required,gt=0"`
	ProjectID *int64 `json:"project_id" validate:"omitempty,gt=0"`
	Amount    string `json:"amount" validate:"required"`
	IssuedAt  string `json:"issued_at" validate:"required"`
	DueAt     string `json:"due_at" validate:"required"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type invoicePayload struct {
	ID            int64       `json:"id"`
	Number        string      `json:"number"`
	ClientID      int64       `json:"client_id"`
	ProjectID     *int64      `json:"project_id,omitempty"`
	Amount        money.Cents `json:"amount"`
	AmountDisplay string      `json:"amount_display"`
	Status        Status      `json:"status"`
	IssuedAt      string      `json:"issued_at"`
	DueAt         string      `json:"due_at"`
	Notes         string      `json:"notes,omitempty"`
}

func toPayload(inv *Invoice) invoicePayload {
	return invoicePayload{
		ID:            inv.ID,
		Number:        inv.Number,
		ClientID:      inv.ClientID,
		ProjectID:     inv.ProjectID,
		Amount:        inv.Amount,
		AmountDisplay: money.Format(inv.Amount),
		Status:        inv.Status,
		IssuedAt:      inv.IssuedAt.UTC().Format(dateLayout),
		DueAt:         inv.DueAt.UTC().Format(dateLayout),
		Notes:         inv.Notes,
	}
}

func (h *Handler) parseForm(r *http.Request) (InvoiceInput, error) {
	var form invoiceForm
	if err := shared.DecodeJSON(r, &form); err != nil {
		return InvoiceInput{}, err
	}
	if err := h.validator.Struct(form); err != nil {
		return InvoiceInput{}, err
	}
	amount, err := money.ParseCents(form.Amount)
	if err != nil {
		return InvoiceInput{}, err
	}
	issued, err := time.ParseInLocation(dateLayout, form.IssuedAt, time.UTC)
	if err != nil {
		return InvoiceInput{}, errors.New("invalid issue date")
	}
	due, err := time.ParseInLocation(dateLayout, form.DueAt, time.UTC)
	if err != nil {
		return InvoiceInput{}, errors.New("invalid due date")
	}
	return InvoiceInput{
		ClientID:  form.ClientID,
		ProjectID: form.ProjectID,
		Amount:    amount,
		IssuedAt:  issued,
		DueAt:     due,
		Notes:     form.Notes,
	}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Limit: 50}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		if !status.Valid() {
			shared.RespondError(w, http.StatusBadRequest, "unknown status")
			return
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			shared.RespondError(w, http.StatusBadRequest, "invalid client_id")
			return
		}
		filter.ClientID = &id
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			filter.Limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			filter.Offset = parsed
		}
	}

	invoices, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load invoices")
		return
	}
	payload := make([]invoicePayload, 0, len(invoices))
	for i := range invoices {
		payload = append(payload, toPayload(&invoices[i]))
	}
	shared.RespondJSON(w, http.StatusOK, map[string]interface{}{"invoices": payload, "total": total})
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid invoice ID")
		return
	}
	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("get invoice", slog.Int64("id", id), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load invoice")
		return
	}
	shared.RespondJSON(w, http.StatusOK, toPayload(inv))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	inv, err := h.service.Create(r.Context(), input)
	if err != nil {
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toPayload(inv))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid invoice ID")
		return
	}
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	inv, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "invoice not found")
			return
		}
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, toPayload(inv))
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid invoice ID")
		return
	}
	var form struct {
		Status Status `json:"status" validate:"required"`
	}
	if err := shared.DecodeJSON(r, &form); err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.service.Transition(r.Context(), id, form.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "invoice not found")
			return
		}
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]string{"status": string(form.Status)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid invoice ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("delete invoice", slog.Int64("id", id), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to delete invoice")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
