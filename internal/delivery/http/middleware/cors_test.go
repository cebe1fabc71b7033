package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name            string
		allowed         []string
		method          string
		origin          string
		preflight       bool
		wantStatus      int
		wantAllowOrigin string
		wantCredentials string
	}{
		{"listed origin", []string{"https://app.example.org/"}, http.MethodGet, "https://app.example.org", false, http.StatusTeapot, "https://app.example.org", "true"},
		{"unlisted origin", []string{"https://app.example.org"}, http.MethodGet, "https://evil.example.com", false, http.StatusTeapot, "", ""},
		{"wildcard", []string{"*"}, http.MethodGet, "https://kiosk.example.net", false, http.StatusTeapot, "https://kiosk.example.net", ""},
		{"preflight listed", []string{"https://app.example.org"}, http.MethodOptions, "https://app.example.org", true, http.StatusNoContent, "https://app.example.org", "true"},
		{"preflight unlisted", []string{"https://app.example.org"}, http.MethodOptions, "https://evil.example.com", true, http.StatusNoContent, "", ""},
		{"no origin", []string{"*"}, http.MethodGet, "", false, http.StatusTeapot, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test/events", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, rr.Header().Get("Access-Control-Allow-Credentials"))
			if tt.preflight && tt.wantAllowOrigin != "" {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}
