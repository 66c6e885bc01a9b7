package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		origins   []string
		origin    string
		wantAllow string
	}{
		{
			name:      "configured origin allowed",
			origins:   []string{"https://app.local", "https://admin.local"},
			origin:    "https://app.local",
			wantAllow: "https://app.local",
		},
		{
			name:    "unlisted origin gets no headers",
			origins: []string{"https://app.local"},
			origin:  "https://evil.local",
		},
		{
			name:   "empty list disables CORS",
			origin: "https://app.local",
		},
		{
			name:    "no origin header",
			origins: []string{"https://app.local"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.origins)(next).ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/api/customers", nil)
	req.Header.Set("Origin", "https://app.local")
	rec := httptest.NewRecorder()
	CORS([]string{"https://app.local"})(next).ServeHTTP(rec, req)

	if called {
		t.Error("preflight request must not reach the handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}
