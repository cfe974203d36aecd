package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "test_session", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	created, err := sm.Create(ctx, rec, 42)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, created.ID, loaded.ID)
	require.Equal(t, int64(42), loaded.UserID)
}

func TestLoadWithoutCookieReturnsNil(t *testing.T) {
	sm := newTestManager(t)

	loaded, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestLoadWithExpiredSessionReturnsNil(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "gone"})
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestSessionContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, SessionFromContext(ctx))

	sess := &Session{ID: "abc", UserID: 7}
	ctx = ContextWithSession(ctx, sess)
	require.Same(t, sess, SessionFromContext(ctx))
}

func TestDestroyExpiresCookie(t *testing.T) {
	sm := newTestManager(t)
	ctx := context.Background()

	created, err := sm.Create(ctx, httptest.NewRecorder(), 42)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Destroy(ctx, rec, created))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, -1, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: created.ID})
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.Nil(t, loaded)
}
