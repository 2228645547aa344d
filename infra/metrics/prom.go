package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/asferrer/project-planner-app/core/metrics"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	tasks    prometheus.Histogram
	makespan prometheus.Gauge
}

// NewPromSink registers planning metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_runs_total",
		Help: "Total number of planning runs",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_run_duration_seconds",
		Help:    "Wall-clock duration of planning runs",
		Buckets: prometheus.DefBuckets,
	})
	tasks := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_run_tasks",
		Help:    "Number of tasks scheduled per run",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})
	makespan := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_last_makespan_days",
		Help: "Makespan in calendar days of the last successful run",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	for _, c := range []prometheus.Collector{duration, tasks, makespan} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return &PromSink{runs: runs, duration: duration, tasks: tasks, makespan: makespan}, nil
}

// RecordPlanRun implements coremetrics.Sink.
func (s *PromSink) RecordPlanRun(r coremetrics.PlanRun) error {
	status := "ok"
	if r.Err != "" {
		status = "error"
	}
	s.runs.WithLabelValues(status).Inc()
	s.duration.Observe(r.Duration.Seconds())
	if r.Err == "" {
		s.tasks.Observe(float64(r.Tasks))
		s.makespan.Set(float64(r.MakespanDays))
	}
	return nil
}
