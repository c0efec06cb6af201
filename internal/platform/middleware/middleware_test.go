package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
}

func TestRequestIDHonorsInbound(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "caller-supplied")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "caller-supplied", seen)
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verify", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"json post accepted", http.MethodPost, "application/json", http.StatusOK},
		{"json with charset accepted", http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{"text post rejected", http.MethodPost, "text/plain", http.StatusUnsupportedMediaType},
		{"get without content type accepted", http.MethodGet, "", http.StatusOK},
		{"post without content type accepted", http.MethodPost, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/verify", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

type staticValidator struct {
	claims *OwnerClaims
	err    error
}

func (v staticValidator) ValidateToken(string) (*OwnerClaims, error) {
	return v.claims, v.err
}

func TestRequireAuth(t *testing.T) {
	var caller string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller = GetCaller(r.Context())
	})

	t.Run("valid token sets caller", func(t *testing.T) {
		handler := RequireAuth(staticValidator{claims: &OwnerClaims{OwnerRef: "did:x:owner"}}, discardLogger())(next)
		req := httptest.NewRequest(http.MethodPost, "/admin/assets", nil)
		req.Header.Set("Authorization", "Bearer token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "did:x:owner", caller)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		handler := RequireAuth(staticValidator{}, discardLogger())(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/assets", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		handler := RequireAuth(staticValidator{err: errors.New("expired")}, discardLogger())(next)
		req := httptest.NewRequest(http.MethodPost, "/admin/assets", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestClientMetadata(t *testing.T) {
	var seen ClientInfo
	handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClient(r.Context())
	}))

	t.Run("parses browser user agent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/verify", nil)
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "Chrome", seen.Name)
		assert.Equal(t, "120.0.0.0", seen.Version)
		assert.False(t, seen.Mobile)
		assert.False(t, seen.Bot)
		require.NotEmpty(t, seen.OS)
		assert.Equal(t, "Chrome/120.0.0.0 ("+seen.OS+")", seen.String())
	})

	t.Run("flags crawlers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/verify", nil)
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, seen.Bot)
	})

	t.Run("missing header yields zero info", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/verify", nil)
		req.Header.Del("User-Agent")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, ClientInfo{}, seen)
		assert.Empty(t, seen.String())
	})
}
