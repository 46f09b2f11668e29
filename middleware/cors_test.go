package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowedOrigins := []string{
		"https://example.com",
		"http://localhost:5173",
	}

	testCases := []struct {
		name     string
		origin   string
		expected bool
	}{
		{name: "Allowed origin", origin: "https://example.com", expected: true},
		{name: "Another allowed origin", origin: "http://localhost:5173", expected: true},
		{name: "Disallowed origin", origin: "https://evil.com", expected: false},
		{name: "Empty origin", origin: "", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := isAllowedOrigin(tc.origin, allowedOrigins)
			if result != tc.expected {
				t.Errorf("Expected %v, got %v for origin %s", tc.expected, result, tc.origin)
			}
		})
	}
}

func TestGetAllowedOrigins(t *testing.T) {
	originalCors := os.Getenv("CORS_ALLOWED_ORIGINS")
	defer os.Setenv("CORS_ALLOWED_ORIGINS", originalCors)

	os.Setenv("CORS_ALLOWED_ORIGINS", "https://test1.com,https://test2.com")
	origins := getAllowedOrigins()
	if len(origins) != 2 {
		t.Errorf("Expected 2 origins, got %d", len(origins))
	}
	if origins[0] != "https://test1.com" || origins[1] != "https://test2.com" {
		t.Errorf("Expected configured origins, got %v", origins)
	}

	os.Unsetenv("CORS_ALLOWED_ORIGINS")
	origins = getAllowedOrigins()
	if len(origins) < 3 {
		t.Errorf("Expected at least 3 default origins, got %d", len(origins))
	}

	hasLocalhost := false
	for _, origin := range origins {
		if strings.Contains(origin, "localhost") {
			hasLocalhost = true
			break
		}
	}
	if !hasLocalhost {
		t.Error("Default origins should include localhost development servers")
	}
}

func TestIsDevelopmentMode(t *testing.T) {
	originalEnv := os.Getenv("ENV")
	defer os.Setenv("ENV", originalEnv)

	os.Unsetenv("ENV")
	if !isDevelopmentMode() {
		t.Error("With ENV unset, should be in development mode")
	}

	os.Setenv("ENV", "development")
	if !isDevelopmentMode() {
		t.Error("With ENV=development, should be in development mode")
	}

	os.Setenv("ENV", "production")
	if isDevelopmentMode() {
		t.Error("With ENV=production, should not be in development mode")
	}
}

func TestEnableCORS(t *testing.T) {
	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	testCases := []struct {
		name   string
		method string
		origin string
	}{
		{name: "GET with allowed origin", method: "GET", origin: "http://localhost:5173"},
		{name: "OPTIONS preflight", method: "OPTIONS", origin: "http://localhost:5173"},
		{name: "No origin", method: "GET", origin: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/test", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
			}
			if rr.Header().Get("Access-Control-Allow-Methods") == "" {
				t.Error("Expected Access-Control-Allow-Methods header to be set")
			}
			if rr.Header().Get("Access-Control-Allow-Headers") == "" {
				t.Error("Expected Access-Control-Allow-Headers header to be set")
			}

			allowOrigin := rr.Header().Get("Access-Control-Allow-Origin")
			if tc.origin != "" && isDevelopmentMode() && allowOrigin != tc.origin {
				t.Errorf("Expected origin %s to be allowed in dev mode, got %s", tc.origin, allowOrigin)
			}
		})
	}
}
