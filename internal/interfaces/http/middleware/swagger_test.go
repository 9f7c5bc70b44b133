package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerProtection(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		cfg        SwaggerConfig
		remoteAddr string
		wantStatus int
		wantBody   string
	}{
		{"disabled", SwaggerConfig{Enabled: false}, "127.0.0.1:5000", http.StatusNotFound, "ERR_NOT_FOUND"},
		{"enabled without restrictions", SwaggerConfig{Enabled: true}, "203.0.113.9:5000", http.StatusOK, "swagger"},
		{"exact IP allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.1.20"}}, "192.168.1.20:5000", http.StatusOK, "swagger"},
		{"CIDR allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.1.2.3:5000", http.StatusOK, "swagger"},
		{"outside allowlist", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "192.168.1.20"}}, "203.0.113.9:5000", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"malformed entries are ignored", SwaggerConfig{Enabled: true, AllowedIPs: []string{"not-an-ip", "10.0.0.0/99"}}, "10.1.2.3:5000", http.StatusForbidden, "ERR_FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/swagger/*any", SwaggerProtection(tt.cfg), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "swagger"})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
