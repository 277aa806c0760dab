package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/iamasit07/4-in-a-row/solo/internal/config"
)

func router(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	prev := config.AppConfig
	config.AppConfig = &config.Config{AllowedOrigins: []string{"http://ok.test"}}
	t.Cleanup(func() { config.AppConfig = prev })

	r := gin.New()
	r.Use(SecurityHeadersMiddleware(), CORSMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestCORS(t *testing.T) {
	r := router(t)

	cases := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"no origin", http.MethodGet, "", http.StatusOK, ""},
		{"allowed", http.MethodGet, "http://ok.test", http.StatusOK, "http://ok.test"},
		{"rejected", http.MethodGet, "http://evil.test", http.StatusForbidden, ""},
		{"preflight", http.MethodOptions, "http://ok.test", http.StatusOK, "http://ok.test"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/ping", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}
