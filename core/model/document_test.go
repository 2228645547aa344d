package model

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDateRoundTrip(t *testing.T) {
	d := NewDate(2025, time.March, 3)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-03-03"` {
		t.Fatalf("unexpected encoding %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("expected %v got %v", d, back)
	}
	var zero Date
	if err := json.Unmarshal([]byte(`""`), &zero); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !zero.IsZero() {
		t.Fatalf("expected zero date")
	}
	if b, _ := json.Marshal(zero); string(b) != `""` {
		t.Fatalf("zero date encoded as %s", b)
	}
}

func TestDateInStructJSON(t *testing.T) {
	in := `{"start_date": "2025-03-03", "end_date": ""}`
	var task Task
	if err := json.Unmarshal([]byte(in), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !task.StartDate.Equal(NewDate(2025, time.March, 3)) || !task.EndDate.IsZero() {
		t.Fatalf("bad dates %v %v", task.StartDate, task.EndDate)
	}
	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"start_date":"2025-03-03"`) {
		t.Fatalf("start date not in wire format: %s", b)
	}
}

func TestDateArithmetic(t *testing.T) {
	mon := NewDate(2025, time.March, 3)
	fri := mon.AddDays(4)
	if fri.Weekday() != time.Friday {
		t.Fatalf("expected Friday got %v", fri.Weekday())
	}
	if fri.DaysSince(mon) != 4 {
		t.Fatalf("expected 4 days got %d", fri.DaysSince(mon))
	}
}

func TestLoadDocumentJSON(t *testing.T) {
	data := `{
		"roles": {"Dev": {"availability_percent": 100, "rate_eur_hr": 45}},
		"tasks": [{"id": 1, "phase": "Build", "subtask": "API", "effort_hours": 40,
			"assignments": [{"role": "Dev", "allocation": 100}], "dependencies": []}],
		"config": {"project_start_date": "2025-03-03", "exclude_weekends": true,
			"working_hours": {"default": {"Monday": 8, "Tuesday": 8, "Wednesday": 8, "Thursday": 8, "Friday": 8, "Saturday": 0, "Sunday": 0}},
			"profit_margin_percent": 10},
		"phases": {"Build": "#00ff00"},
		"next_task_id": 2
	}`
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Roles["Dev"].Rate != 45 {
		t.Fatalf("bad role %#v", doc.Roles["Dev"])
	}
	if !doc.Config.ProjectStartDate.Equal(NewDate(2025, time.March, 3)) {
		t.Fatalf("bad start date %v", doc.Config.ProjectStartDate)
	}
	if doc.Tasks[0].Status != StatusPending {
		t.Fatalf("expected defaulted status, got %q", doc.Tasks[0].Status)
	}
	if doc.Phases["Build"] != "#00ff00" || doc.NextTaskID != 2 {
		t.Fatalf("passthrough fields lost")
	}
	if err := doc.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadDocumentYAML(t *testing.T) {
	data := `
roles:
  Dev:
    availability_percent: 80
    rate_eur_hr: 50
tasks:
  - id: 1
    phase: Build
    subtask: API
    effort_hours: 8
    assignments:
      - role: Dev
        allocation: 50
config:
  project_start_date: "2025-03-03"
  exclude_weekends: true
`
	path := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Roles["Dev"].AvailabilityPercent != 80 {
		t.Fatalf("bad role %#v", doc.Roles["Dev"])
	}
	if doc.Config.WorkingHours.Default["Friday"] != 7 {
		t.Fatalf("default week not applied: %#v", doc.Config.WorkingHours.Default)
	}
	_, err = LoadDocument(path + ".txt")
	if err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestValidateErrors(t *testing.T) {
	base := func() *ProjectDocument {
		d := &ProjectDocument{
			Roles: map[string]Role{"Dev": {AvailabilityPercent: 100, Rate: 40}},
			Tasks: []Task{{ID: 1, EffortHours: 8, Assignments: []Assignment{{Role: "Dev", Allocation: 100}}}},
		}
		d.SetDefaults()
		return d
	}

	doc := base()
	doc.Tasks[0].Assignments[0].Allocation = 120
	var allocErr *InvalidAllocationError
	if err := doc.Validate(); !errors.As(err, &allocErr) {
		t.Fatalf("expected InvalidAllocationError, got %v", err)
	}
	if allocErr.TaskID != 1 || allocErr.Field != "allocation" {
		t.Fatalf("error context missing: %#v", allocErr)
	}

	doc = base()
	doc.Tasks[0].EffortHours = -1
	if err := doc.Validate(); !errors.As(err, &allocErr) {
		t.Fatalf("expected InvalidAllocationError for effort, got %v", err)
	}

	doc = base()
	doc.Roles["Dev"] = Role{AvailabilityPercent: 150}
	if err := doc.Validate(); !errors.As(err, &allocErr) {
		t.Fatalf("expected InvalidAllocationError for availability, got %v", err)
	}

	doc = base()
	doc.Tasks[0].Assignments[0].Role = "Ghost"
	var roleErr *UnknownRoleError
	if err := doc.Validate(); !errors.As(err, &roleErr) {
		t.Fatalf("expected UnknownRoleError, got %v", err)
	}

	doc = base()
	doc.Tasks = append(doc.Tasks, Task{ID: 1, Status: StatusPending})
	var docErr *InvalidDocumentError
	if err := doc.Validate(); !errors.As(err, &docErr) {
		t.Fatalf("expected InvalidDocumentError for duplicate id, got %v", err)
	}

	doc = base()
	doc.Config.WorkingHours.MonthlyOverrides = map[string]map[string]float64{"13": {"Monday": 8}}
	if err := doc.Validate(); !errors.As(err, &docErr) {
		t.Fatalf("expected InvalidDocumentError for month key, got %v", err)
	}
}
