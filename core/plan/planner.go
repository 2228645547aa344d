package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/asferrer/project-planner-app/core/calendar"
	"github.com/asferrer/project-planner-app/core/events"
	"github.com/asferrer/project-planner-app/core/logger"
	"github.com/asferrer/project-planner-app/core/metrics"
	"github.com/asferrer/project-planner-app/core/model"
)

// Result is the complete output of a planning run. No Result is produced on
// a fatal error: a run either finishes whole or not at all.
type Result struct {
	RunID         string                 `json:"run_id"`
	Tasks         []model.Task           `json:"tasks"`
	Workload      []WorkloadEntry        `json:"workload"`
	Costs         CostBreakdown          `json:"costs"`
	Contributions map[int][]Contribution `json:"-"`
	MakespanDays  int                    `json:"makespan_days"`
	Elapsed       time.Duration          `json:"-"`
}

// Document returns a copy of in with the derived task fields overwritten by
// the run. All other document fields pass through untouched.
func (r *Result) Document(in *model.ProjectDocument) *model.ProjectDocument {
	out := *in
	out.Tasks = make([]model.Task, len(r.Tasks))
	copy(out.Tasks, r.Tasks)
	return &out
}

// Planner runs the full pipeline: validation, dependency ordering, resource
// leveling, workload and cost derivation. It holds no state across runs;
// rerunning the same document yields the same result.
type Planner struct {
	cfg  Config
	log  logger.Logger
	sink metrics.Sink
	bus  events.Publisher
}

// NewPlanner creates a Planner. A nil sink discards telemetry; a nil bus
// disables event publication.
func NewPlanner(cfg Config, log logger.Logger, sink metrics.Sink, bus events.Publisher) (*Planner, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{cfg: cfg, log: log, sink: sink, bus: bus}, nil
}

// Run plans the document. The input document is not mutated: defaults are
// applied to an internal copy. A document without a project start date plans
// from the current day, so its output depends on when the run happens.
func (p *Planner) Run(doc *model.ProjectDocument) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()

	run := *doc
	run.Tasks = make([]model.Task, len(doc.Tasks))
	copy(run.Tasks, doc.Tasks)
	run.SetDefaults()
	if err := run.Validate(); err != nil {
		return nil, p.fail(runID, started, err)
	}

	cal := calendar.New(run.Config)
	capm := calendar.NewCapacity(cal, run.Roles)

	order, err := Order(run.Tasks)
	if err != nil {
		return nil, p.fail(runID, started, err)
	}

	sched, err := NewLeveler(capm, p.cfg, p.log).Level(run.Tasks, order, run.Config.ProjectStartDate)
	if err != nil {
		return nil, p.fail(runID, started, err)
	}

	res := &Result{
		RunID:         runID,
		Tasks:         sched.Tasks,
		Workload:      Workload(sched.Ledger, capm),
		Costs:         ComputeCosts(sched.Tasks, run.Roles, sched.Contributions, run.Config.ProfitMarginPercent),
		Contributions: sched.Contributions,
		MakespanDays:  sched.Ledger.Horizon(),
		Elapsed:       time.Since(started),
	}

	if p.bus != nil {
		for _, t := range res.Tasks {
			p.bus.Publish(events.TaskScheduled{
				RunID:       runID,
				TaskID:      t.ID,
				Start:       t.StartDate,
				End:         t.EndDate,
				EffortHours: t.EffortHours,
			})
		}
		p.bus.Publish(events.RunCompleted{RunID: runID, Tasks: len(res.Tasks), MakespanDays: res.MakespanDays})
	}
	if err := p.sink.RecordPlanRun(metrics.PlanRun{
		RunID:        runID,
		Tasks:        len(res.Tasks),
		MakespanDays: res.MakespanDays,
		Duration:     res.Elapsed,
	}); err != nil {
		p.log.Warnf("record plan run: %v", err)
	}
	p.log.Infof("run %s: planned %d tasks, makespan %d days, gross cost %.2f",
		runID, len(res.Tasks), res.MakespanDays, res.Costs.GrossCost)
	return res, nil
}

func (p *Planner) fail(runID string, started time.Time, err error) error {
	if p.bus != nil {
		p.bus.Publish(events.RunCompleted{RunID: runID, Err: err})
	}
	if serr := p.sink.RecordPlanRun(metrics.PlanRun{
		RunID:    runID,
		Duration: time.Since(started),
		Err:      err.Error(),
	}); serr != nil {
		p.log.Warnf("record plan run: %v", serr)
	}
	p.log.Errorf("run %s failed: %v", runID, err)
	return err
}
