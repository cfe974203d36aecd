package subscriptions

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

// Handler wires HTTP endpoints for subscriptions.
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

type subscriptionForm struct {
	Name   string `json:"name" validate:"required,max=200"`
	Amount string `json:"amount" validate:"required"`
	Cycle  string `json:"billing_cycle" validate:"required,oneof=MONTHLY ANNUALLY"`
	DueAt  string `json:"due_at" validate:"omitempty"`
}

type subscriptionPayload struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Amount        money.Cents `json:"amount"`
	AmountDisplay string      `json:"amount_display"`
	Cycle         string      `json:"billing_cycle"`
	DueAt         string      `json:"due_at,omitempty"`
}

func toPayload(sub *Subscription) subscriptionPayload {
	p := subscriptionPayload{
		ID:            sub.ID,
		Name:          sub.Name,
		Amount:        sub.Amount,
		AmountDisplay: money.Format(sub.Amount),
		Cycle:         string(sub.Cycle),
	}
	if sub.DueAt != nil {
		p.DueAt = sub.DueAt.UTC().Format(dateLayout)
	}
	return p
}

func (h *Handler) parseForm(r *http.Request) (SubscriptionInput, error) {
	var form subscriptionForm
	if err := shared.DecodeJSON(r, &form); err != nil {
		return SubscriptionInput{}, err
	}
	if err := h.validator.Struct(form); err != nil {
		return SubscriptionInput{}, err
	}
	amount, err := money.ParseCents(form.Amount)
	if err != nil {
		return SubscriptionInput{}, err
	}
	input := SubscriptionInput{
		Name:   form.Name,
		Amount: amount,
		Cycle:  BillingCycle(form.Cycle),
	}
	if form.DueAt != "" {
		due, err := time.ParseInLocation(dateLayout, form.DueAt, time.UTC)
		if err != nil {
			return SubscriptionInput{}, errors.New("invalid due date")
		}
		input.DueAt = &due
	}
	return input, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list subscriptions", slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load subscriptions")
		return
	}
	payload := make([]subscriptionPayload, 0, len(subs))
	for i := range subs {
		payload = append(payload, toPayload(&subs[i]))
	}
	shared.RespondJSON(w, http.StatusOK, map[string]interface{}{"subscriptions": payload})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sub, err := h.service.Create(r.Context(), input)
	if err != nil {
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toPayload(sub))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid subscription ID")
		return
	}
	input, err := h.parseForm(r)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sub, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "subscription not found")
			return
		}
		shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	shared.RespondJSON(w, http.StatusOK, toPayload(sub))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondError(w, http.StatusBadRequest, "invalid subscription ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			shared.RespondError(w, http.StatusNotFound, "subscription not found")
			return
		}
		h.logger.Error("delete subscription", slog.Int64("id", id), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to delete subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
