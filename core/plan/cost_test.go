package plan

import (
	"math"
	"testing"

	"github.com/asferrer/project-planner-app/core/model"
)

func TestComputeCosts(t *testing.T) {
	roles := map[string]model.Role{
		"Dev": {AvailabilityPercent: 100, Rate: 40},
		"QA":  {AvailabilityPercent: 100, Rate: 30},
	}
	tasks := []model.Task{
		{ID: 1, Phase: "Build", EffortHours: 40, Assignments: []model.Assignment{{Role: "Dev", Allocation: 100}}},
		{ID: 2, Phase: "Build", EffortHours: 16, Assignments: []model.Assignment{{Role: "QA", Allocation: 50}}},
		{ID: 3, Phase: "Ship", EffortHours: 8, Assignments: []model.Assignment{{Role: "Dev", Allocation: 100}}},
	}
	sched := mustLevel(t, tasks, roles)
	costs := ComputeCosts(sched.Tasks, roles, sched.Contributions, 25)

	if math.Abs(costs.ByTask[1]-40*40) > 1e-6 {
		t.Fatalf("task 1 cost: expected 1600 got %g", costs.ByTask[1])
	}
	if math.Abs(costs.ByTask[2]-16*30) > 1e-6 {
		t.Fatalf("task 2 cost: expected 480 got %g", costs.ByTask[2])
	}
	if math.Abs(costs.ByTask[3]-8*40) > 1e-6 {
		t.Fatalf("task 3 cost: expected 320 got %g", costs.ByTask[3])
	}

	gross := 1600.0 + 480 + 320
	if math.Abs(costs.GrossCost-gross) > 1e-6 {
		t.Fatalf("gross: expected %g got %g", gross, costs.GrossCost)
	}
	if math.Abs(costs.SellingPrice-gross*1.25) > 1e-6 {
		t.Fatalf("selling price: expected %g got %g", gross*1.25, costs.SellingPrice)
	}
}

func TestCostRollupsReconcile(t *testing.T) {
	roles := map[string]model.Role{
		"Dev": {AvailabilityPercent: 100, Rate: 41.5},
		"QA":  {AvailabilityPercent: 80, Rate: 33.25},
	}
	tasks := []model.Task{
		{ID: 1, Phase: "A", EffortHours: 13.5, Assignments: []model.Assignment{{Role: "Dev", Allocation: 75}, {Role: "QA", Allocation: 25}}},
		{ID: 2, Phase: "B", EffortHours: 21, Dependencies: []int{1}, Assignments: []model.Assignment{{Role: "QA", Allocation: 100}}},
		{ID: 3, Phase: "A", EffortHours: 9, Assignments: []model.Assignment{{Role: "Dev", Allocation: 100}}},
	}
	sched := mustLevel(t, tasks, roles)
	costs := ComputeCosts(sched.Tasks, roles, sched.Contributions, 0)

	sum := func(m map[string]float64) float64 {
		total := 0.0
		for _, v := range m {
			total += v
		}
		return total
	}
	byTask := 0.0
	for _, v := range costs.ByTask {
		byTask += v
	}
	if math.Abs(byTask-costs.GrossCost) > 1e-6 {
		t.Fatalf("task roll-up %g does not reconcile with gross %g", byTask, costs.GrossCost)
	}
	if math.Abs(sum(costs.ByRole)-costs.GrossCost) > 1e-6 {
		t.Fatalf("role roll-up %g does not reconcile with gross %g", sum(costs.ByRole), costs.GrossCost)
	}
	if math.Abs(sum(costs.ByPhase)-costs.GrossCost) > 1e-6 {
		t.Fatalf("phase roll-up %g does not reconcile with gross %g", sum(costs.ByPhase), costs.GrossCost)
	}
	if costs.SellingPrice != costs.GrossCost {
		t.Fatalf("zero margin must not change the price")
	}
}
