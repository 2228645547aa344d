// Package events defines the planning events emitted during a run and the
// in-process stream carrying them to observers such as metric collectors.
package events

import "github.com/asferrer/project-planner-app/core/model"

// Event is a planning event published during a run. The set of events is
// closed: only types in this package flow on the stream.
type Event interface {
	planningEvent()
}

func (TaskScheduled) planningEvent() {}
func (RunCompleted) planningEvent()  {}

// TaskScheduled is emitted for every task finalized by a leveling run.
type TaskScheduled struct {
	RunID       string
	TaskID      int
	Start       model.Date
	End         model.Date
	EffortHours float64
}

// RunCompleted is emitted once per planning run, successful or not.
type RunCompleted struct {
	RunID        string
	Tasks        int
	MakespanDays int
	Err          error
}
