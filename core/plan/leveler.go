package plan

import (
	"math"
	"sort"

	"github.com/asferrer/project-planner-app/core/calendar"
	"github.com/asferrer/project-planner-app/core/logger"
	"github.com/asferrer/project-planner-app/core/model"
)

// Schedule is the output of a leveling run: the tasks with finalized dates,
// the aggregate ledger, and the per-task contributions that produced it.
type Schedule struct {
	Tasks         []model.Task
	Ledger        *Ledger
	Contributions map[int][]Contribution
}

// Leveler rewrites a dependency-only schedule so that no role's daily
// capacity is ever exceeded. It is a greedy, priority-ordered, single forward
// pass: each task is finalized before the next one starts, tasks only push
// themselves later, and already-committed ledger entries are never reopened.
// Two independent tasks contending for one role serialize by ascending id
// even when interleaving would finish both sooner; that trade-off buys
// determinism and is intentional.
type Leveler struct {
	cap *calendar.Capacity
	cfg Config
	log logger.Logger
}

// NewLeveler builds a Leveler over the given capacity model.
func NewLeveler(cap *calendar.Capacity, cfg Config, log logger.Logger) *Leveler {
	return &Leveler{cap: cap, cfg: cfg, log: log}
}

// Level schedules tasks in the given order, which must be a valid topological
// order of their dependency graph (see Order). The input tasks are not
// mutated; finalized copies are returned sorted by ascending id.
func (lv *Leveler) Level(tasks []model.Task, order []int, projectStart model.Date) (*Schedule, error) {
	copies := make([]model.Task, len(tasks))
	copy(copies, tasks)
	index := make(map[int]int, len(copies))
	for i, t := range copies {
		index[t.ID] = i
	}

	ledger := NewLedger(projectStart)
	contribs := make(map[int][]Contribution)
	ends := make(map[int]model.Date, len(copies))

	for _, id := range order {
		t := &copies[index[id]]

		earliest := projectStart
		if !t.StartDate.IsZero() && t.StartDate.After(earliest) {
			// An input start date is treated as a requested earliest start.
			earliest = t.StartDate
		}
		for _, dep := range t.Dependencies {
			if next := ends[dep].AddDays(1); next.After(earliest) {
				earliest = next
			}
		}

		// This estimate only bounds the scan below; the recorded duration is
		// re-anchored once the real start day is known.
		est, err := EstimateDuration(lv.cap, *t, earliest, lv.cfg.MaxHorizonDays)
		if err != nil {
			return nil, err
		}

		if t.EffortHours <= effortTolerance {
			day, ok := lv.cap.Calendar().NextWorkingDay(earliest, lv.cfg.MinHorizonDays)
			if !ok {
				return nil, &HorizonExceededError{TaskID: t.ID, LastDate: day, DaysScanned: lv.cfg.MinHorizonDays}
			}
			t.StartDate, t.EndDate, t.DurationCalcDays = day, day, 0
			ends[t.ID] = day
			continue
		}

		horizon := lv.cfg.HorizonFactor * est.Days
		if horizon < lv.cfg.MinHorizonDays {
			horizon = lv.cfg.MinHorizonDays
		}
		if horizon > lv.cfg.MaxHorizonDays {
			horizon = lv.cfg.MaxHorizonDays
		}

		remaining := t.EffortHours
		d := earliest
		var start, end model.Date
		for scanned := 0; ; scanned++ {
			if scanned >= horizon {
				return nil, &HorizonExceededError{TaskID: t.ID, LastDate: d.AddDays(-1), DaysScanned: scanned}
			}

			var day []Contribution
			usedToday := make(map[string]float64)
			progress := 0.0
			for _, a := range t.Assignments {
				if a.Allocation <= 0 {
					continue
				}
				nominal := lv.cap.NominalRate(a, d)
				if nominal <= 0 {
					continue
				}
				headroom := lv.cap.RoleDaily(a.Role, d) - ledger.Committed(a.Role, d) - usedToday[a.Role]
				if headroom < 0 {
					headroom = 0
				}
				hours := math.Min(nominal, headroom)
				if hours <= 0 {
					continue
				}
				day = append(day, Contribution{TaskID: t.ID, Role: a.Role, Date: d, Hours: hours})
				usedToday[a.Role] += hours
				progress += hours
			}

			if progress > 0 {
				if progress > remaining {
					// Fractional final day: consume only what the task needs.
					scale := remaining / progress
					for i := range day {
						day[i].Hours *= scale
					}
					progress = remaining
				}
				for _, c := range day {
					ledger.Add(c.Role, c.Date, c.Hours)
				}
				contribs[t.ID] = append(contribs[t.ID], day...)
				if start.IsZero() {
					start = d
				}
				end = d
				remaining -= progress
				if remaining <= effortTolerance {
					break
				}
			}
			// A zero-progress day is a blocked or closed day for this task;
			// it elapses without consuming anything.
			d = d.AddDays(1)
		}

		t.StartDate, t.EndDate = start, end
		// Anchor the duration at the first consumption day. Anchoring at
		// earliest would count leading closed days on a first run but not on a
		// re-run of the written schedule, breaking idempotence.
		span, err := EstimateDuration(lv.cap, *t, start, lv.cfg.MaxHorizonDays)
		if err != nil {
			return nil, err
		}
		t.DurationCalcDays = span.Days
		ends[t.ID] = end
		lv.log.Debugw("task scheduled", map[string]any{
			"task":  t.ID,
			"start": start.String(),
			"end":   end.String(),
		})
	}

	sort.Slice(copies, func(i, j int) bool { return copies[i].ID < copies[j].ID })
	return &Schedule{Tasks: copies, Ledger: ledger, Contributions: contribs}, nil
}
