package plan

import (
	"sort"

	"github.com/asferrer/project-planner-app/core/model"
)

// Ledger tracks the hours already committed per role per day during a
// leveling run. Days are indexed by their offset from the project start,
// backed by growable slices rather than date-keyed maps. A Ledger is scoped
// to a single run and mutated by a single goroutine.
type Ledger struct {
	start     model.Date
	committed map[string][]float64
	horizon   int
}

// NewLedger creates an empty ledger anchored at the project start date.
func NewLedger(start model.Date) *Ledger {
	return &Ledger{start: start, committed: make(map[string][]float64)}
}

// Start returns the ledger's anchor date.
func (l *Ledger) Start() model.Date { return l.start }

// Offset converts d to its day index. Dates before the anchor are negative
// and never carry commitments.
func (l *Ledger) Offset(d model.Date) int { return d.DaysSince(l.start) }

// Committed returns the hours already committed for role on d.
func (l *Ledger) Committed(role string, d model.Date) float64 {
	off := l.Offset(d)
	days := l.committed[role]
	if off < 0 || off >= len(days) {
		return 0
	}
	return days[off]
}

// Add commits hours for role on d. Dates before the anchor are ignored.
func (l *Ledger) Add(role string, d model.Date, hours float64) {
	off := l.Offset(d)
	if off < 0 {
		return
	}
	days := l.committed[role]
	for off >= len(days) {
		days = append(days, 0)
	}
	days[off] += hours
	l.committed[role] = days
	if off+1 > l.horizon {
		l.horizon = off + 1
	}
}

// Horizon returns the number of days from the anchor up to and including the
// last day with a commitment.
func (l *Ledger) Horizon() int { return l.horizon }

// Roles returns the roles with at least one commitment, sorted by name.
func (l *Ledger) Roles() []string {
	out := make([]string, 0, len(l.committed))
	for role := range l.committed {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

// Contribution records the hours one task consumed from one role on one day.
// The leveler retains contributions so costs can be attributed per task
// rather than recomputed from the aggregate ledger.
type Contribution struct {
	TaskID int        `json:"task_id"`
	Role   string     `json:"role"`
	Date   model.Date `json:"date"`
	Hours  float64    `json:"hours"`
}
