package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler(t *testing.T) {
	h := Handler(Static(), "/tripzy.v1.")

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"root", "/", http.StatusOK, "Your Ultimate Travel Companion"},
		{"about", "/about.html", http.StatusOK, "About Tripzy"},
		{"unknown path", "/trips/42", http.StatusOK, "Your Ultimate Travel Companion"},
		{"api path", "/tripzy.v1.Nope/Call", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			body, _ := io.ReadAll(rec.Body)
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("expected body to contain %q", tt.wantBody)
			}
		})
	}
}
