package trendshttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/meridian-ops/meridian/internal/money"
	"github.com/meridian-ops/meridian/internal/shared"
	"github.com/meridian-ops/meridian/internal/trends"
)

const requestTimeout = 5 * time.Second

// Service exposes the trends operations required by the handler.
type Service interface {
	Monthly(ctx context.Context, year int) ([]trends.MonthlyPoint, error)
	CurrentYear() int
}

// Handler serves the financial trends report endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

type monthPayload struct {
	trends.MonthlyPoint
	RevenueDisplay   string `json:"total_revenue_display"`
	NetIncomeDisplay string `json:"net_income_display"`
}

type trendsResponse struct {
	Year   int            `json:"year"`
	Months []monthPayload `json:"months"`
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	year := h.service.CurrentYear()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 9999 {
			shared.RespondError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	points, err := h.service.Monthly(ctx, year)
	if err != nil {
		// Never serve a partial or zeroed chart; surface an explicit error.
		if errors.Is(err, trends.ErrInvalidRecord) {
			h.logger.Warn("trends aggregation rejected record", slog.Any("error", err))
			shared.RespondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.Error("load monthly trends", slog.Int("year", year), slog.Any("error", err))
		shared.RespondError(w, http.StatusInternalServerError, "failed to load financial trends")
		return
	}

	months := make([]monthPayload, 0, len(points))
	for _, p := range points {
		months = append(months, monthPayload{
			MonthlyPoint:     p,
			RevenueDisplay:   money.Format(p.TotalRevenue),
			NetIncomeDisplay: money.Format(p.NetIncome),
		})
	}
	shared.RespondJSON(w, http.StatusOK, trendsResponse{Year: year, Months: months})
}
