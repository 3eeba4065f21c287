package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	metrics, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry})
	if err != nil {
		t.Fatalf("NewHTTPMetrics returned error: %v", err)
	}

	router := gin.New()
	router.Use(metrics.Handler())
	router.GET("/contracts/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/contracts/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	count := testutil.ToFloat64(metrics.Requests.With(prometheus.Labels{
		"method": "GET",
		"route":  "/contracts/:id",
		"status": "200",
	}))
	if count != 1 {
		t.Fatalf("expected 1 counted request, got %v", count)
	}
}

func TestHTTPMetricsReregisterReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()

	first, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry})
	if err != nil {
		t.Fatalf("NewHTTPMetrics returned error: %v", err)
	}

	second, err := NewHTTPMetrics(HTTPMetricsOptions{Registerer: registry})
	if err != nil {
		t.Fatalf("NewHTTPMetrics second registration returned error: %v", err)
	}

	if first.Requests != second.Requests {
		t.Fatal("expected re-registration to reuse the existing counter")
	}
}
