package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/snaapy/app/enum"
	"github.com/umputun/snaapy/app/store"
	"github.com/umputun/snaapy/app/theme"
)

func newTestStore(t *testing.T) *theme.Store {
	t.Helper()
	st := theme.New(store.NewMemory(), nil)
	st.Initialize(context.Background())
	return st
}

func TestNew_UninitializedStore(t *testing.T) {
	_, err := New(theme.New(store.NewMemory(), nil), Config{Version: "test"})
	require.Error(t, err)
	require.ErrorIs(t, err, theme.ErrNotInitialized)
}

func TestNew_BadAuth(t *testing.T) {
	_, err := New(newTestStore(t), Config{PasswordHash: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize auth")
}

func TestServer_Routes(t *testing.T) {
	st := newTestStore(t)
	srv, err := New(st, Config{Version: "test"})
	require.NoError(t, err)
	router := srv.routes()

	t.Run("ping", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("app info", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "snaapy", rec.Header().Get("App-Name"))
		assert.Contains(t, rec.Body.String(), `data-theme="light"`)
	})

	t.Run("static", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `[data-theme="dark"]`)
	})

	t.Run("api theme", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/theme", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"theme":"light","marker":"light"}`, rec.Body.String())
	})

	t.Run("api toggle without auth configured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/theme/toggle", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, enum.ThemeDark, st.Get())
	})

	t.Run("api motion", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/motion/themeToggle", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_RoutesWithAuth(t *testing.T) {
	st := newTestStore(t)
	srv, err := New(st, Config{Version: "test", AuthUser: "admin", PasswordHash: testHash(t, "secret")})
	require.NoError(t, err)
	router := srv.routes()

	t.Run("reads stay open", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/theme", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("web toggle stays open", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/web/theme", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, enum.ThemeDark, st.Get())
	})

	t.Run("api write rejected without credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/theme", strings.NewReader(`{"theme":"light"}`))
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, enum.ThemeDark, st.Get())
	})

	t.Run("api write with credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/theme", strings.NewReader(`{"theme":"light"}`))
		req.SetBasicAuth("admin", "secret")
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, enum.ThemeLight, st.Get())
	})
}

func TestServer_Run(t *testing.T) {
	port := freePort(t)
	srv, err := New(newTestStore(t), Config{
		Address:         fmt.Sprintf("127.0.0.1:%d", port),
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		Version:         "test",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/ping", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
