package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware())
	engine.GET("/status/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/status/:id", "200"))
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status/12", nil))
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status/13", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/status/:id", "200"))

	assert.Equal(t, 2.0, after-before)
}

func TestRecordCascadeIgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(cascadeReassigned)
	RecordCascadeReassigned(0)
	RecordCascadeReassigned(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(cascadeReassigned)-before)
}
