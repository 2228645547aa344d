package plan

import (
	"github.com/asferrer/project-planner-app/core/calendar"
	"github.com/asferrer/project-planner-app/core/model"
)

// WorkloadEntry compares one role's demanded hours against its capacity on
// one date. Demanded never exceeds Capacity in a leveled schedule.
type WorkloadEntry struct {
	Role     string     `json:"role"`
	Date     model.Date `json:"date"`
	Demanded float64    `json:"demanded_hours"`
	Capacity float64    `json:"capacity_hours"`
}

// Workload flattens the ledger into a per-role per-date table covering the
// span from the project start to the last committed day. Rows are ordered by
// role name, then date.
func Workload(ledger *Ledger, cap *calendar.Capacity) []WorkloadEntry {
	var out []WorkloadEntry
	for _, role := range ledger.Roles() {
		for off := 0; off < ledger.Horizon(); off++ {
			d := ledger.Start().AddDays(off)
			out = append(out, WorkloadEntry{
				Role:     role,
				Date:     d,
				Demanded: ledger.Committed(role, d),
				Capacity: cap.RoleDaily(role, d),
			})
		}
	}
	return out
}
