package calendar

import "github.com/asferrer/project-planner-app/core/model"

// Capacity computes per-role daily capacities and uncontended assignment
// rates. It does not track what other tasks already consumed; contention is
// the leveler's job.
type Capacity struct {
	cal   *Calendar
	roles map[string]model.Role
}

// NewCapacity builds a Capacity over the given calendar and role set.
func NewCapacity(cal *Calendar, roles map[string]model.Role) *Capacity {
	return &Capacity{cal: cal, roles: roles}
}

// Calendar returns the underlying working calendar.
func (p *Capacity) Calendar() *Calendar { return p.cal }

// RoleDaily returns the total hours role can deliver on d. Unknown roles have
// zero capacity.
func (p *Capacity) RoleDaily(role string, d model.Date) float64 {
	r, ok := p.roles[role]
	if !ok {
		return 0
	}
	return p.cal.HoursOn(d) * r.AvailabilityPercent / 100
}

// NominalRate returns the hours assignment a delivers on d ignoring
// contention with other tasks.
func (p *Capacity) NominalRate(a model.Assignment, d model.Date) float64 {
	return p.RoleDaily(a.Role, d) * a.Allocation / 100
}
