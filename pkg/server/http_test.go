package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewChiRouter_CORS(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	testCases := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		expectedHeader string
	}{
		{
			name:           "empty origin list denies cross-origin access",
			allowedOrigins: nil,
			requestOrigin:  "http://evil.example",
			expectedHeader: "",
		},
		{
			name:           "configured origin is allowed",
			allowedOrigins: []string{"http://shop.example"},
			requestOrigin:  "http://shop.example",
			expectedHeader: "http://shop.example",
		},
		{
			name:           "unlisted origin is denied",
			allowedOrigins: []string{"http://shop.example"},
			requestOrigin:  "http://evil.example",
			expectedHeader: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := NewChiRouter(logger, tc.allowedOrigins)
			mux.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tc.requestOrigin)
			rec := httptest.NewRecorder()
			// when
			mux.ServeHTTP(rec, req)
			// then
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.expectedHeader, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
