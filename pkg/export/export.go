// Package export writes planning results to external formats: the output
// project document as JSON, and the workload and cost tables as CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/asferrer/project-planner-app/core/model"
	"github.com/asferrer/project-planner-app/core/plan"
)

// WriteDocument writes the project document to w as indented JSON.
func WriteDocument(w io.Writer, doc *model.ProjectDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteWorkloadCSV writes the per-role per-date workload table.
func WriteWorkloadCSV(w io.Writer, entries []plan.WorkloadEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"role", "date", "demanded_hours", "capacity_hours"}); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.Role,
			e.Date.String(),
			strconv.FormatFloat(e.Demanded, 'f', -1, 64),
			strconv.FormatFloat(e.Capacity, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCostsCSV writes the cost breakdown as a flat table: one row per task,
// role and phase, followed by the project totals.
func WriteCostsCSV(w io.Writer, tasks []model.Task, costs plan.CostBreakdown) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"kind", "id", "label", "cost"}); err != nil {
		return err
	}
	write := func(kind, id, label string, cost float64) error {
		return cw.Write([]string{kind, id, label, strconv.FormatFloat(cost, 'f', 2, 64)})
	}
	for _, t := range tasks {
		if err := write("task", strconv.Itoa(t.ID), t.Name(), costs.ByTask[t.ID]); err != nil {
			return err
		}
	}
	for _, role := range sortedKeys(costs.ByRole) {
		if err := write("role", "", role, costs.ByRole[role]); err != nil {
			return err
		}
	}
	for _, phase := range sortedKeys(costs.ByPhase) {
		if err := write("phase", "", phase, costs.ByPhase[phase]); err != nil {
			return err
		}
	}
	if err := write("total", "", "gross_cost", costs.GrossCost); err != nil {
		return err
	}
	if err := write("total", "", "selling_price", costs.SellingPrice); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
