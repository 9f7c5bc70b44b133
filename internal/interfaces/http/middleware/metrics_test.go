package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/docimport/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestHTTPMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("records request count, latency and size", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

		router := gin.New()
		router.Use(HTTPMetrics(provider.Meter("test")))
		router.POST("/imports", func(c *gin.Context) {
			c.Set(logger.GinDocTypeKey, "rfq")
			c.Status(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/imports", strings.NewReader("<RequestForQuotation/>"))
		router.ServeHTTP(httptest.NewRecorder(), req)

		metrics := collect(t, reader)

		total, ok := metrics["http_server_request_total"]
		require.True(t, ok)
		sum := total.Data.(metricdata.Sum[int64])
		require.Len(t, sum.DataPoints, 1)
		dp := sum.DataPoints[0]
		assert.Equal(t, int64(1), dp.Value)
		route, _ := dp.Attributes.Value(attrHTTPRoute)
		assert.Equal(t, "/imports", route.AsString())
		status, _ := dp.Attributes.Value(attrHTTPStatusCode)
		assert.Equal(t, int64(http.StatusCreated), status.AsInt64())
		docType, _ := dp.Attributes.Value(attrDocType)
		assert.Equal(t, "rfq", docType.AsString())

		duration := metrics["http_server_request_duration_seconds"].Data.(metricdata.Histogram[float64])
		require.Len(t, duration.DataPoints, 1)
		assert.Equal(t, uint64(1), duration.DataPoints[0].Count)

		size := metrics["http_server_request_size_bytes"].Data.(metricdata.Histogram[float64])
		require.Len(t, size.DataPoints, 1)
		assert.Equal(t, float64(len("<RequestForQuotation/>")), size.DataPoints[0].Sum)
	})

	t.Run("unmatched routes use a fixed label", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

		router := gin.New()
		router.Use(HTTPMetrics(provider.Meter("test")))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

		sum := collect(t, reader)["http_server_request_total"].Data.(metricdata.Sum[int64])
		require.Len(t, sum.DataPoints, 1)
		route, _ := sum.DataPoints[0].Attributes.Value(attrHTTPRoute)
		assert.Equal(t, "unknown", route.AsString())
	})

	t.Run("nil meter passes through", func(t *testing.T) {
		called := false
		router := gin.New()
		router.Use(HTTPMetrics(nil))
		router.GET("/test", func(c *gin.Context) { called = true })

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.True(t, called)
	})
}
