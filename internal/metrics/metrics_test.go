package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsRequestsAndErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/items/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/metrics", Handler())

	okBefore := testutil.ToFloat64(APIRequestCounter.WithLabelValues(http.MethodGet, "/items/:id"))
	errBefore := testutil.ToFloat64(APIErrorCounter.WithLabelValues(http.MethodGet, "/items/:id", "404"))

	for _, path := range []string{"/items/1", "/items/2", "/items/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+3, testutil.ToFloat64(APIRequestCounter.WithLabelValues(http.MethodGet, "/items/:id")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(APIErrorCounter.WithLabelValues(http.MethodGet, "/items/:id", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "smarta_api_requests_total")
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(BillsMarkedOverdueCounter)
	RecordOverdue(0)
	RecordOverdue(3)
	assert.Equal(t, before+3, testutil.ToFloat64(BillsMarkedOverdueCounter))

	cash := testutil.ToFloat64(PaymentsRecordedCounter.WithLabelValues("cash"))
	RecordPayment("cash")
	assert.Equal(t, cash+1, testutil.ToFloat64(PaymentsRecordedCounter.WithLabelValues("cash")))

	failed := testutil.ToFloat64(MpesaInitiationsCounter.WithLabelValues("failed"))
	RecordMpesaInitiation("failed")
	assert.Equal(t, failed+1, testutil.ToFloat64(MpesaInitiationsCounter.WithLabelValues("failed")))
}
