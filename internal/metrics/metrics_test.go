package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/v1/options", "200"))
	RecordRequest("GET", "/api/v1/options", http.StatusOK, 5*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/v1/options", "200"))

	if after-before != 1 {
		t.Errorf("request counter moved by %f, want 1", after-before)
	}
}
