package plan

import (
	"fmt"
	"sort"

	"github.com/asferrer/project-planner-app/core/model"
)

// CyclicDependencyError reports a dependency cycle. TaskIDs lists every task
// implicated in at least one cycle, ascending.
type CyclicDependencyError struct {
	TaskIDs []int
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle involving tasks %v", e.TaskIDs)
}

// UnknownDependencyError reports a dependency on a task id that does not
// exist in the document.
type UnknownDependencyError struct {
	TaskID       int
	DependencyID int
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("task %d depends on unknown task %d", e.TaskID, e.DependencyID)
}

// SelfDependencyError reports a task depending on itself.
type SelfDependencyError struct {
	TaskID int
}

func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("task %d depends on itself", e.TaskID)
}

// HorizonExceededError reports a task that could not accumulate its effort
// within the bounded scheduling horizon, typically because every assigned
// role has permanently zero capacity.
type HorizonExceededError struct {
	TaskID      int
	LastDate    model.Date
	DaysScanned int
}

func (e *HorizonExceededError) Error() string {
	return fmt.Sprintf("task %d: scheduling horizon exceeded after %d days (last date examined %s)",
		e.TaskID, e.DaysScanned, e.LastDate)
}

func sortedIDs(ids map[int]bool) []int {
	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
