package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	coremetrics "github.com/asferrer/project-planner-app/core/metrics"
)

func TestInfluxSinkRecordPlanRun(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	if err := sink.RecordPlanRun(coremetrics.PlanRun{
		RunID:        "run-1",
		Tasks:        4,
		MakespanDays: 9,
		Duration:     200 * time.Millisecond,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if !strings.HasPrefix(body, "plan_run,") {
		t.Fatalf("unexpected measurement: %q", body)
	}
	for _, want := range []string{"run_id=run-1", "status=ok", "tasks=4i", "makespan_days=9i"} {
		if !strings.Contains(body, want) {
			t.Fatalf("line protocol missing %q: %q", want, body)
		}
	}
}

func TestInfluxSinkFallback(t *testing.T) {
	cfg := coremetrics.Config{
		InfluxEnabled: true,
		InfluxURL:     "http://127.0.0.1:1",
		InfluxOrg:     "org",
		InfluxBucket:  "bucket",
	}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink fallback, got %T", sink)
	}
}
