package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RequestIDInjector_GeneratesID(t *testing.T) {
	// given
	var gotID string
	var found bool
	handler := RequestIDInjector(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID, found = GetRequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// when
	handler.ServeHTTP(httptest.NewRecorder(), req)
	// then
	require.True(t, found, "request ID should be stored in the context")
	assert.NotEmpty(t, gotID)
}

func Test_RequestIDInjector_CarriesExistingID(t *testing.T) {
	// given a request that already passed through chi's RequestID middleware
	var gotID string
	handler := RequestIDInjector(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID, _ = GetRequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "known-id")
	// when
	handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	// then
	assert.Equal(t, "known-id", gotID)
}

func Test_GetRequestID_MissingFromContext(t *testing.T) {
	id, found := GetRequestID(context.Background())
	assert.False(t, found)
	assert.Empty(t, id)
}
