package model

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// WeekdayNames maps the document's English day names to time.Weekday.
var WeekdayNames = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// WorkingHours configures daily working hours: a default week plus optional
// per-month overrides. Override keys are month numbers ("1".."12"); an
// override replaces the whole week mapping for that month.
type WorkingHours struct {
	Default          map[string]float64            `json:"default"`
	MonthlyOverrides map[string]map[string]float64 `json:"monthly_overrides,omitempty"`
}

// ProjectConfig carries the planning parameters of a document.
type ProjectConfig struct {
	ProjectStartDate    Date         `json:"project_start_date"`
	ExcludeWeekends     bool         `json:"exclude_weekends"`
	WorkingHours        WorkingHours `json:"working_hours"`
	ProfitMarginPercent float64      `json:"profit_margin_percent"`
}

// ProjectDocument is the external input/output document of the engine. Phases
// and NextTaskID are passed through untouched.
type ProjectDocument struct {
	Roles      map[string]Role   `json:"roles"`
	Tasks      []Task            `json:"tasks"`
	Config     ProjectConfig     `json:"config"`
	Phases     map[string]string `json:"phases,omitempty"`
	NextTaskID int               `json:"next_task_id,omitempty"`
}

// LoadDocument reads a project document from a JSON or YAML file.
func LoadDocument(path string) (*ProjectDocument, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported document format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	var doc ProjectDocument
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	doc.SetDefaults()
	return &doc, nil
}

// SetDefaults fills the default working week and task statuses. The default
// week mirrors the historical planner defaults.
func (d *ProjectDocument) SetDefaults() {
	if len(d.Config.WorkingHours.Default) == 0 {
		d.Config.WorkingHours.Default = map[string]float64{
			"Monday": 9, "Tuesday": 9, "Wednesday": 9, "Thursday": 9,
			"Friday": 7, "Saturday": 0, "Sunday": 0,
		}
	}
	if d.Config.ProjectStartDate.IsZero() {
		d.Config.ProjectStartDate = DateOf(time.Now().UTC())
	}
	for i := range d.Tasks {
		if d.Tasks[i].Status == "" {
			d.Tasks[i].Status = StatusPending
		}
	}
}

// Validate checks the structural invariants of the document: percentage
// ranges, non-negative efforts, known roles and weekdays, unique positive
// task ids. Dependency existence and acyclicity are checked by the planner.
func (d *ProjectDocument) Validate() error {
	for name, role := range d.Roles {
		if role.AvailabilityPercent < 0 || role.AvailabilityPercent > 100 {
			return &InvalidAllocationError{Role: name, Field: "availability_percent", Value: role.AvailabilityPercent}
		}
	}
	if err := validateWeek(d.Config.WorkingHours.Default); err != nil {
		return err
	}
	for month, week := range d.Config.WorkingHours.MonthlyOverrides {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return &InvalidDocumentError{Reason: fmt.Sprintf("monthly override key %q is not a month number", month)}
		}
		if err := validateWeek(week); err != nil {
			return err
		}
	}
	seen := make(map[int]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		if t.ID <= 0 {
			return &InvalidDocumentError{Reason: fmt.Sprintf("task id %d is not a positive integer", t.ID)}
		}
		if seen[t.ID] {
			return &InvalidDocumentError{Reason: fmt.Sprintf("duplicate task id %d", t.ID)}
		}
		seen[t.ID] = true
		if !t.Status.Valid() {
			return &InvalidDocumentError{Reason: fmt.Sprintf("task %d: unknown status %q", t.ID, t.Status)}
		}
		if t.EffortHours < 0 {
			return &InvalidAllocationError{TaskID: t.ID, Field: "effort_hours", Value: t.EffortHours}
		}
		for _, a := range t.Assignments {
			if a.Allocation < 0 || a.Allocation > 100 {
				return &InvalidAllocationError{TaskID: t.ID, Role: a.Role, Field: "allocation", Value: a.Allocation}
			}
			if _, ok := d.Roles[a.Role]; !ok {
				return &UnknownRoleError{TaskID: t.ID, Role: a.Role}
			}
		}
	}
	return nil
}

func validateWeek(week map[string]float64) error {
	for day, hours := range week {
		if _, ok := WeekdayNames[day]; !ok {
			return &InvalidDocumentError{Reason: fmt.Sprintf("unknown weekday name %q", day)}
		}
		if hours < 0 || hours > 24 {
			return &InvalidDocumentError{Reason: fmt.Sprintf("working hours %g for %s out of range", hours, day)}
		}
	}
	return nil
}
