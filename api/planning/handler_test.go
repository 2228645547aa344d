package planning

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asferrer/project-planner-app/core/plan"
)

type nopLog struct{}

func (nopLog) Debugf(string, ...any)         {}
func (nopLog) Debugw(string, map[string]any) {}
func (nopLog) Infof(string, ...any)          {}
func (nopLog) Warnf(string, ...any)          {}
func (nopLog) Errorf(string, ...any)         {}

const validDoc = `{
	"roles": {"Dev": {"availability_percent": 100, "rate_eur_hr": 40}},
	"tasks": [
		{"id": 1, "phase": "Build", "subtask": "API", "effort_hours": 16,
		 "assignments": [{"role": "Dev", "allocation": 100}], "dependencies": []}
	],
	"config": {
		"project_start_date": "2025-03-03",
		"exclude_weekends": true,
		"working_hours": {"default": {"Monday": 8, "Tuesday": 8, "Wednesday": 8, "Thursday": 8, "Friday": 8, "Saturday": 0, "Sunday": 0}},
		"profit_margin_percent": 10
	}
}`

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	p, err := plan.NewPlanner(plan.Config{}, nopLog{}, nil, nil)
	if err != nil {
		t.Fatalf("planner: %v", err)
	}
	return NewPlanHandler(p, nopLog{})
}

func TestPlanHandlerSuccess(t *testing.T) {
	h := newHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/plan?project=demo", strings.NewReader(validDoc))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RunID == "" || resp.Document == nil {
		t.Fatalf("incomplete response: %+v", resp)
	}
	if resp.Document.Tasks[0].StartDate.IsZero() {
		t.Fatalf("derived fields not populated")
	}
	if resp.Costs.GrossCost != 16*40 {
		t.Fatalf("expected gross 640 got %g", resp.Costs.GrossCost)
	}
}

func TestPlanHandlerCycle(t *testing.T) {
	h := newHandler(t)
	doc := strings.Replace(validDoc, `"dependencies": []`, `"dependencies": [1]`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(doc))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "self_dependency" {
		t.Fatalf("expected self_dependency got %q", resp.Code)
	}
}

func TestPlanHandlerBadJSON(t *testing.T) {
	h := newHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPlanHandlerMethodNotAllowed(t *testing.T) {
	h := newHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rec.Code)
	}
}
