// Package scenarios runs yaml-defined planning scenarios end to end. Each
// scenario describes a document and the schedule it must produce, which keeps
// regression cases readable and easy to add.
package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/asferrer/project-planner-app/core/model"
)

type RoleDef struct {
	Name                string  `yaml:"name"`
	AvailabilityPercent float64 `yaml:"availability_percent"`
	Rate                float64 `yaml:"rate_eur_hr"`
}

type AssignmentDef struct {
	Role       string  `yaml:"role"`
	Allocation float64 `yaml:"allocation"`
}

type TaskDef struct {
	ID           int             `yaml:"id"`
	Phase        string          `yaml:"phase"`
	Subtask      string          `yaml:"subtask"`
	EffortHours  float64         `yaml:"effort_hours"`
	Assignments  []AssignmentDef `yaml:"assignments"`
	Dependencies []int           `yaml:"dependencies,omitempty"`
}

type CalendarDef struct {
	StartDate           string                        `yaml:"start_date"`
	ExcludeWeekends     bool                          `yaml:"exclude_weekends"`
	Week                map[string]float64            `yaml:"week,omitempty"`
	MonthlyOverrides    map[string]map[string]float64 `yaml:"monthly_overrides,omitempty"`
	ProfitMarginPercent float64                       `yaml:"profit_margin_percent,omitempty"`
}

type ExpectedTask struct {
	ID           int    `yaml:"id"`
	Start        string `yaml:"start"`
	End          string `yaml:"end"`
	DurationDays *int   `yaml:"duration_days,omitempty"`
}

type Expected struct {
	Tasks     []ExpectedTask `yaml:"tasks,omitempty"`
	GrossCost *float64       `yaml:"gross_cost,omitempty"`
	Error     string         `yaml:"error,omitempty"`
}

type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Roles       []RoleDef   `yaml:"roles"`
	Tasks       []TaskDef   `yaml:"tasks"`
	Calendar    CalendarDef `yaml:"calendar"`
	Expected    Expected    `yaml:"expected"`
}

// Load reads a scenario from a yaml file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Document converts the scenario into a project document.
func (s *Scenario) Document() (*model.ProjectDocument, error) {
	start, err := parseDate(s.Calendar.StartDate)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: start_date: %w", s.Name, err)
	}
	doc := &model.ProjectDocument{
		Roles: make(map[string]model.Role, len(s.Roles)),
		Config: model.ProjectConfig{
			ProjectStartDate: start,
			ExcludeWeekends:  s.Calendar.ExcludeWeekends,
			WorkingHours: model.WorkingHours{
				Default:          s.Calendar.Week,
				MonthlyOverrides: s.Calendar.MonthlyOverrides,
			},
			ProfitMarginPercent: s.Calendar.ProfitMarginPercent,
		},
	}
	for _, r := range s.Roles {
		doc.Roles[r.Name] = model.Role{AvailabilityPercent: r.AvailabilityPercent, Rate: r.Rate}
	}
	for _, t := range s.Tasks {
		task := model.Task{
			ID:           t.ID,
			Phase:        t.Phase,
			Subtask:      t.Subtask,
			EffortHours:  t.EffortHours,
			Dependencies: t.Dependencies,
		}
		for _, a := range t.Assignments {
			task.Assignments = append(task.Assignments, model.Assignment{Role: a.Role, Allocation: a.Allocation})
		}
		doc.Tasks = append(doc.Tasks, task)
	}
	doc.SetDefaults()
	return doc, nil
}

func parseDate(s string) (model.Date, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return model.Date{}, err
	}
	return model.DateOf(t), nil
}
