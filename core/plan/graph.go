package plan

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/asferrer/project-planner-app/core/model"
)

// priorityLess is the scheduling tie-break between tasks whose dependencies
// are equally satisfied: the lower id schedules first. It is a fixed,
// documented policy, isolated here so it can be tested and swapped on its
// own.
func priorityLess(a, b int) bool { return a < b }

// Order validates the dependency structure of tasks and returns their ids in
// scheduling order: a topological order of the dependency graph with ties
// broken by priorityLess. It fails on unknown dependency ids, self-references
// and cycles.
func Order(tasks []model.Task) ([]int, error) {
	exists := make(map[int]bool, len(tasks))
	g := simple.NewDirectedGraph()
	for _, t := range tasks {
		exists[t.ID] = true
		g.AddNode(simple.Node(t.ID))
	}
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if dep == t.ID {
				return nil, &SelfDependencyError{TaskID: t.ID}
			}
			if !exists[dep] {
				return nil, &UnknownDependencyError{TaskID: t.ID, DependencyID: dep}
			}
			// Edge direction: dependency -> dependent.
			g.SetEdge(g.NewEdge(simple.Node(dep), simple.Node(t.ID)))
		}
	}

	indeg := make(map[int64]int, len(tasks))
	nodes := g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		n := 0
		to := g.To(id)
		for to.Next() {
			n++
		}
		indeg[id] = n
	}

	var ready []int
	for id, n := range indeg {
		if n == 0 {
			ready = append(ready, int(id))
		}
	}

	order := make([]int, 0, len(tasks))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return priorityLess(ready[i], ready[j]) })
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		from := g.From(int64(id))
		for from.Next() {
			m := from.Node().ID()
			indeg[m]--
			if indeg[m] == 0 {
				ready = append(ready, int(m))
			}
		}
	}

	if len(order) < len(tasks) {
		implicated := make(map[int]bool)
		for _, cycle := range topo.DirectedCyclesIn(g) {
			for _, n := range cycle {
				implicated[int(n.ID())] = true
			}
		}
		// Fallback: every task left unordered participates in or depends on
		// a cycle.
		if len(implicated) == 0 {
			ordered := make(map[int]bool, len(order))
			for _, id := range order {
				ordered[id] = true
			}
			for _, t := range tasks {
				if !ordered[t.ID] {
					implicated[t.ID] = true
				}
			}
		}
		return nil, &CyclicDependencyError{TaskIDs: sortedIDs(implicated)}
	}
	return order, nil
}
