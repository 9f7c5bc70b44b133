package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/docimport/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]HealthCheck
		status int
		want   string
	}{
		{"no checks", nil, http.StatusOK, "healthy"},
		{"all pass", map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		}, http.StatusOK, "healthy"},
		{"one fails", map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		}, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("1.2.3", []string{"ubl"})
			for name, check := range tt.checks {
				h.AddCheck(name, check)
			}
			r := gin.New()
			h.RegisterRoutes(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			var resp dto.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Status)
			assert.Equal(t, "1.2.3", resp.Version)
			assert.Equal(t, []string{"ubl"}, resp.Importers)
			if tt.status == http.StatusServiceUnavailable {
				assert.Equal(t, "connection refused", resp.Checks["redis"])
				assert.Equal(t, "ok", resp.Checks["database"])
			}
		})
	}
}
