package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/repository"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	ws, err := config.NewWebSocket()
	require.NoError(t, err)

	a := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.repo = repository.New(nil)
	a.cookies = &config.Cookies{}
	a.ws = ws
	a.game = &config.Game{MaxWidth: 8, MaxHeight: 8}
	a.loadRoutes()
	return a
}

func TestRoutes(t *testing.T) {
	h := newTestApp(t).handler()

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/game/abc", http.StatusBadRequest},
		{http.MethodPost, "/game?width=9&height=9&mine_count=1", http.StatusBadRequest},
		{http.MethodPost, "/game/1/move?move=dig&x=0&y=0", http.StatusBadRequest},
		{http.MethodDelete, "/game/1", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodPost, "/logout", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestBasePath(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "/api")
	h := newTestApp(t).handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example, ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, allowedOrigins())

	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Empty(t, allowedOrigins())
}
