package model

import "fmt"

// Status describes the lifecycle state of a task. It is informational for the
// engine: all tasks are replanned regardless of status.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusOnHold     Status = "On Hold"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Assignment dedicates a fraction of a role's daily time to one task.
// Allocation is a percentage of the role's available time, not absolute hours.
type Assignment struct {
	Role       string  `json:"role"`
	Allocation float64 `json:"allocation"`
}

// Role describes a project resource. AvailabilityPercent is the fraction of a
// full working day the role is nominally present; Rate is the hourly rate.
type Role struct {
	AvailabilityPercent float64 `json:"availability_percent"`
	Rate                float64 `json:"rate_eur_hr"`
}

// Task is a single unit of plannable work. StartDate, EndDate and
// DurationCalcDays are derived fields written by the planner; on input
// StartDate may carry a requested earliest start.
type Task struct {
	ID               int          `json:"id"`
	Phase            string       `json:"phase"`
	Subtask          string       `json:"subtask"`
	EffortHours      float64      `json:"effort_hours"`
	Assignments      []Assignment `json:"assignments"`
	Dependencies     []int        `json:"dependencies"`
	Status           Status       `json:"status"`
	Notes            string       `json:"notes,omitempty"`
	StartDate        Date         `json:"start_date"`
	EndDate          Date         `json:"end_date"`
	DurationCalcDays int          `json:"duration_calc_days"`
}

// Name composes the display name from phase and subtask.
func (t Task) Name() string {
	return fmt.Sprintf("%s - %s", t.Phase, t.Subtask)
}
