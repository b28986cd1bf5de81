package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_HeaderPresent(t *testing.T) {
	var capturedUserID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Identity(handler)

	req := httptest.NewRequest(http.MethodGet, "/search?q=dog", nil)
	req.Header.Set("X-User-ID", "user-123")
	w := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-123", capturedUserID)
}

func TestIdentity_MissingHeaderIsAnonymous(t *testing.T) {
	var capturedUserID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Identity(handler)

	req := httptest.NewRequest(http.MethodGet, "/search?q=dog", nil)
	w := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(w, req)

	// Anonymous callers pass through; they just lose the private health scope.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", capturedUserID)
}

func TestGetUserID_EmptyContext(t *testing.T) {
	assert.Equal(t, "", GetUserID(context.Background()))
}
