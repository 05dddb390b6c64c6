package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	var captured http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/deck/index.html", r.URL.Path)
		captured = r.Header.Clone()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>hi</p>"))
	}))
	defer server.Close()

	body, err := NewClient().Get(context.Background(), server.URL+"/deck/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(body))
	assert.True(t, strings.HasPrefix(captured.Get("User-Agent"), "mdreveal/"))
	assert.Contains(t, captured.Get("Accept"), "text/html")
}

func TestClient_GetErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"forbidden", http.StatusForbidden},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer server.Close()

			_, err := NewClient().Get(context.Background(), server.URL)
			require.Error(t, err)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Contains(t, err.Error(), server.URL)
		})
	}
}

func TestClient_GetTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		chunk := make([]byte, 1<<20)
		for i := 0; i <= MaxBodySize>>20; i++ {
			if _, err := w.Write(chunk); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	_, err := NewClient().Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "larger than")
}

func TestClient_GetCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient().Get(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>x</h1>"), 0o644))

	data, err := NewClient().Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>x</h1>", string(data))

	_, err = NewClient().Read(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/deck"))
	assert.True(t, IsURL("http://localhost:8000"))
	assert.False(t, IsURL("deck.html"))
	assert.False(t, IsURL("ftp://example.com/deck"))
}
