package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/middleware"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		authHeader string
		wantCode   int
	}{
		{"valid token", http.MethodGet, "/test", "Bearer good-key", http.StatusOK},
		{"missing header", http.MethodGet, "/test", "", http.StatusUnauthorized},
		{"invalid token", http.MethodGet, "/test", "Bearer bad-key", http.StatusUnauthorized},
		{"no bearer prefix", http.MethodGet, "/test", "good-key", http.StatusUnauthorized},
		{"query token on GET", http.MethodGet, "/test?token=good-key", "", http.StatusOK},
		{"wrong query token", http.MethodGet, "/test?token=nope", "", http.StatusUnauthorized},
		{"query token ignored on POST", http.MethodPost, "/test?token=good-key", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middleware.APIKeyAuth("good-key", quietLogger(), nil))
			r.Handle(tt.method, "/test", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("got %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestAPIKeyAuth_DisabledWithoutKey(t *testing.T) {
	r := gin.New()
	r.Use(middleware.APIKeyAuth("", quietLogger(), nil))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 with auth disabled", w.Code)
	}
}

func TestAPIKeyAuth_LocksOutAfterRepeatedFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	guard := middleware.NewBruteForceGuard(ctx, quietLogger())

	r := gin.New()
	r.Use(middleware.BruteForceMiddleware(guard), middleware.APIKeyAuth("good-key", quietLogger(), guard))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(key string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
		req.RemoteAddr = "7.7.7.7:1000"
		req.Header.Set("Authorization", "Bearer "+key)
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := range 5 {
		if code := do("wrong"); code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: got %d, want 401", i, code)
		}
	}

	if code := do("good-key"); code != http.StatusTooManyRequests {
		t.Fatalf("after lockout got %d, want 429", code)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"abc123", ""},
		{"", ""},
		{"Bearer ", ""},
		{"bearer abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			got := middleware.ExtractBearerToken(c)
			if got != tt.want {
				t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
