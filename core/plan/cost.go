package plan

import (
	"github.com/asferrer/project-planner-app/core/model"
)

// CostBreakdown aggregates delivered-hours costs at every level. The roll-ups
// are sums of the same per-contribution figures, so they reconcile with the
// project total up to floating tolerance.
type CostBreakdown struct {
	ByTask       map[int]float64    `json:"by_task"`
	ByRole       map[string]float64 `json:"by_role"`
	ByPhase      map[string]float64 `json:"by_phase"`
	GrossCost    float64            `json:"gross_cost"`
	SellingPrice float64            `json:"selling_price"`
}

// ComputeCosts prices the hours actually committed by the leveler: each
// contribution is valued at its role's hourly rate, then rolled up by task,
// role and phase. SellingPrice applies the profit margin to the gross cost.
func ComputeCosts(tasks []model.Task, roles map[string]model.Role, contribs map[int][]Contribution, marginPercent float64) CostBreakdown {
	phases := make(map[int]string, len(tasks))
	for _, t := range tasks {
		phases[t.ID] = t.Phase
	}

	out := CostBreakdown{
		ByTask:  make(map[int]float64, len(tasks)),
		ByRole:  make(map[string]float64),
		ByPhase: make(map[string]float64),
	}
	for _, t := range tasks {
		out.ByTask[t.ID] = 0
	}
	for id, cs := range contribs {
		for _, c := range cs {
			cost := c.Hours * roles[c.Role].Rate
			out.ByTask[id] += cost
			out.ByRole[c.Role] += cost
			out.ByPhase[phases[id]] += cost
			out.GrossCost += cost
		}
	}
	out.SellingPrice = out.GrossCost * (1 + marginPercent/100)
	return out
}
