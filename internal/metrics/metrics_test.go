package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/ping", "200"))
	RecordHTTPRequest("GET", "/api/ping", 200, 5*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/ping", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordCookbookChange(t *testing.T) {
	before := testutil.ToFloat64(CookbookChanges.WithLabelValues("added"))
	RecordCookbookChange("added")
	assert.Equal(t, before+1, testutil.ToFloat64(CookbookChanges.WithLabelValues("added")))
}
