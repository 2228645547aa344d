package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/asferrer/project-planner-app/core/events"
)

// TaskCounter counts scheduled tasks observed on the event bus.
type TaskCounter struct {
	scheduled prometheus.Counter
}

// NewTaskCounter registers the task counter on reg, reusing an existing
// collector when already registered.
func NewTaskCounter(reg prometheus.Registerer) (*TaskCounter, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_tasks_scheduled_total",
		Help: "Total number of tasks scheduled across runs",
	})
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	return &TaskCounter{scheduled: c}, nil
}

// StartEventCollector subscribes to the planning event stream and records
// metrics for scheduling events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, stream events.Stream, counter *TaskCounter) {
	if stream == nil || counter == nil {
		return
	}
	sub := stream.Subscribe()
	go func() {
		defer stream.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if _, ok := ev.(events.TaskScheduled); ok {
					counter.scheduled.Inc()
				}
			}
		}
	}()
}
