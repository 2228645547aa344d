package scenarios

import (
	"fmt"
	"math"
	"strings"

	"github.com/asferrer/project-planner-app/core/plan"
	infralogger "github.com/asferrer/project-planner-app/infra/logger"
)

const costTolerance = 1e-6

// Run loads the scenario document and plans it with default settings.
func Run(sc *Scenario) (*plan.Result, error) {
	doc, err := sc.Document()
	if err != nil {
		return nil, err
	}
	p, err := plan.NewPlanner(plan.Config{}, infralogger.NopLogger{}, nil, nil)
	if err != nil {
		return nil, err
	}
	return p.Run(doc)
}

// Verify checks the planner outcome against the scenario's expectations and
// returns a description of the first mismatch.
func Verify(sc *Scenario, res *plan.Result, runErr error) error {
	if sc.Expected.Error != "" {
		if runErr == nil {
			return fmt.Errorf("expected error containing %q, got none", sc.Expected.Error)
		}
		if !strings.Contains(runErr.Error(), sc.Expected.Error) {
			return fmt.Errorf("expected error containing %q, got %q", sc.Expected.Error, runErr)
		}
		return nil
	}
	if runErr != nil {
		return fmt.Errorf("unexpected error: %w", runErr)
	}

	byID := make(map[int]int, len(res.Tasks))
	for i, t := range res.Tasks {
		byID[t.ID] = i
	}
	for _, want := range sc.Expected.Tasks {
		i, ok := byID[want.ID]
		if !ok {
			return fmt.Errorf("task %d missing from result", want.ID)
		}
		got := res.Tasks[i]
		if want.Start != "" && got.StartDate.String() != want.Start {
			return fmt.Errorf("task %d: start %s, want %s", want.ID, got.StartDate, want.Start)
		}
		if want.End != "" && got.EndDate.String() != want.End {
			return fmt.Errorf("task %d: end %s, want %s", want.ID, got.EndDate, want.End)
		}
		if want.DurationDays != nil && got.DurationCalcDays != *want.DurationDays {
			return fmt.Errorf("task %d: duration %d days, want %d", want.ID, got.DurationCalcDays, *want.DurationDays)
		}
	}
	if sc.Expected.GrossCost != nil {
		if math.Abs(res.Costs.GrossCost-*sc.Expected.GrossCost) > costTolerance {
			return fmt.Errorf("gross cost %.6f, want %.6f", res.Costs.GrossCost, *sc.Expected.GrossCost)
		}
	}
	return nil
}
