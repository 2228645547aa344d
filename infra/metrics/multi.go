package metrics

import coremetrics "github.com/asferrer/project-planner-app/core/metrics"

// MultiSink fans out planning telemetry to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanRun forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordPlanRun(r coremetrics.PlanRun) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordPlanRun(r); err != nil && first == nil {
			first = err
		}
	}
	return first
}
