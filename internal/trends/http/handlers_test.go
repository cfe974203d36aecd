package trendshttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-ops/meridian/internal/trends"
)

type stubService struct {
	points []trends.MonthlyPoint
	err    error
	year   int
}

func (s *stubService) Monthly(ctx context.Context, year int) ([]trends.MonthlyPoint, error) {
	s.year = year
	return s.points, s.err
}

func (s *stubService) CurrentYear() int { return 2025 }

func newTestRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(nil, svc).MountRoutes(r)
	return r
}

func TestHandleMonthlyDefaultsToCurrentYear(t *testing.T) {
	svc := &stubService{
		points: []trends.MonthlyPoint{
			{Month: "2025-01", TotalRevenue: 123456789, NetIncome: 98765432},
		},
	}
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/trends", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2025, svc.year)

	var body struct {
		Year   int `json:"year"`
		Months []struct {
			Month          string `json:"month"`
			TotalRevenue   int64  `json:"total_revenue"`
			RevenueDisplay string `json:"total_revenue_display"`
		} `json:"months"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Months, 1)
	assert.Equal(t, "2025-01", body.Months[0].Month)
	assert.Equal(t, int64(123456789), body.Months[0].TotalRevenue)
	assert.Equal(t, "1,234,567.89", body.Months[0].RevenueDisplay)
}

func TestHandleMonthlyExplicitYear(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/trends?year=2023", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2023, svc.year)
}

func TestHandleMonthlyRejectsBadYear(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/trends?year=banana", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMonthlyMapsErrors(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("%w: invoice 9: negative amount", trends.ErrInvalidRecord)}
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/trends", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	svc = &stubService{err: errors.New("store unavailable")}
	rec = httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/trends", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "store unavailable")
}
