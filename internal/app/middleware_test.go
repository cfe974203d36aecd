package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-ops/meridian/internal/shared"
)

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	handler := RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionPassesAuthenticated(t *testing.T) {
	var called bool
	handler := RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), &shared.Session{ID: "abc", UserID: 9}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
