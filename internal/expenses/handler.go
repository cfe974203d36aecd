package expenses

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

// Handler wires HTTP endpoints for expenses.
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

type expenseForm struct {
	Category   string `json:"category" validate:"required,max=120"`
	Amount     string `json:"amount" validate:"required"`
	IncurredAt string `json:"incurred_at" validate:"required"`
	Notes      string `json:"notes" validate:"max=2000"`
}

type expensePayload struct {
	ID            int64       `json:"id"`
	Category      string      `json:"category"`
	Amount        money.Cents `json:"amount"`
	AmountDisplay string      `json:"amount_display"`
	IncurredAt    string      `json:"incurred_at"`
	Notes         string      `json:"notes,omitempty"`
}

func toPayload(exp *Expense) expensePayload {
	return expensePayload{
		ID:            exp.ID,
		Category:      exp.Category,
		Amount:        exp.Amount,
		AmountDisplay: money.Format(exp.Amount),
		IncurredAt:    exp.IncurredAt.UTC().Format(dateLayout),
		Notes:         exp.Notes,
	}
}

func (h *Handler) parseForm(r *http.Request) (ExpenseInput, error) {
	var form expenseForm
	if err := shared.DecodeJSON(r, &form); err != nil {
		return ExpenseInput{}, err
	}
	if err := h.validator.Struct(form); err != nil {
		return ExpenseInput{}, err
	}
	amount, err := money.ParseCents(form.Amount)
	if err != nil {
		return ExpenseInput{}, err
	}
	incurred, err := time.ParseInLocation(dateLayout, form.IncurredAt, time.UTC)
	if err != nil {
		return ExpenseInput{}, errors.New("invalid date")
	}
	return ExpenseInput{
		Category:   form.Category,
		Amount:     amount,
		IncurredAt: incurred,
		Notes:      form.Notes,
	}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list expenses", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}
	payload := make([]expensePayload, 0, len(expenses))
	for i := range expenses {
		payload = append(payload, toPayload(&expenses[i]))
	}
	shared.RespondJSON(w, http.StatusOK, map[string]interface{}{"expenses": payload})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	exp, err := h.service.Create(r.Context(), input)
	if err != nil {
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toPayload(exp))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	exp, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "expense not found")
			return
		}
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, toPayload(exp))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "expense not found")
			return
		}
		h.logger.Error("delete expense", slog.Int64("id", id), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
