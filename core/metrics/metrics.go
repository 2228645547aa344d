// Package metrics defines the sink abstraction used to record planning run
// telemetry. Implementations live under infra/metrics.
package metrics

import "time"

// PlanRun summarizes one planning run for telemetry purposes.
type PlanRun struct {
	RunID        string
	Tasks        int
	MakespanDays int
	Duration     time.Duration
	Err          string
}

// Sink records planning run telemetry.
type Sink interface {
	RecordPlanRun(PlanRun) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordPlanRun implements Sink.
func (NopSink) RecordPlanRun(PlanRun) error { return nil }
