package plan

import (
	"github.com/asferrer/project-planner-app/core/calendar"
	"github.com/asferrer/project-planner-app/core/model"
)

// effortTolerance absorbs floating error when deciding whether remaining
// effort is exhausted.
const effortTolerance = 1e-9

// Estimate is the unconstrained span of a task: the schedule it would get if
// no other task competed for its roles. Days counts calendar days from Start
// to End inclusive, including zero-rate days that were skipped.
type Estimate struct {
	Start model.Date
	End   model.Date
	Days  int
}

// EstimateDuration walks forward from start, consuming the task's summed
// nominal assignment rates day by day until the effort is exhausted. It scans
// at most limit days and fails with HorizonExceededError beyond that, which
// guards against assignments whose roles never have capacity.
func EstimateDuration(cap *calendar.Capacity, t model.Task, start model.Date, limit int) (Estimate, error) {
	if t.EffortHours <= effortTolerance {
		return Estimate{Start: start, End: start, Days: 0}, nil
	}
	remaining := t.EffortHours
	d := start
	for i := 0; i < limit; i++ {
		rate := 0.0
		for _, a := range t.Assignments {
			rate += cap.NominalRate(a, d)
		}
		if rate > 0 {
			remaining -= rate
			if remaining <= effortTolerance {
				return Estimate{Start: start, End: d, Days: i + 1}, nil
			}
		}
		d = d.AddDays(1)
	}
	return Estimate{}, &HorizonExceededError{TaskID: t.ID, LastDate: d.AddDays(-1), DaysScanned: limit}
}
