package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/v1/sessions/{id}/messages", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/sessions/abc/messages", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/v1/sessions/{id}/messages", "404"))
	if got < 1 {
		t.Errorf("expected request counted under route pattern, got %f", got)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	Register()
	Register()
}

func TestPipelineCounters(t *testing.T) {
	before := testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("final", "finalize_response"))
	PipelineRunsTotal.WithLabelValues("final", "finalize_response").Inc()
	after := testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("final", "finalize_response"))
	if after-before != 1 {
		t.Fatalf("expected increment of 1, got %f", after-before)
	}
}
