// Package planning exposes the engine over HTTP. Each request is one atomic
// planning run; runs for the same project are serialized, runs for different
// projects share nothing and proceed concurrently.
package planning

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/asferrer/project-planner-app/core/logger"
	"github.com/asferrer/project-planner-app/core/model"
	"github.com/asferrer/project-planner-app/core/plan"
)

// Response is the payload returned for a successful run.
type Response struct {
	RunID    string                 `json:"run_id"`
	Document *model.ProjectDocument `json:"document"`
	Workload []plan.WorkloadEntry   `json:"workload"`
	Costs    plan.CostBreakdown     `json:"costs"`
}

// ErrorResponse is the payload returned for a failed run.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewPlanHandler returns an HTTP handler accepting POST requests with a
// project document body and responding with the planned document, workload
// table and cost breakdown. The optional "project" query parameter names the
// project for same-project serialization.
func NewPlanHandler(p *plan.Planner, log logger.Logger) http.Handler {
	var locks sync.Map
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		project := r.URL.Query().Get("project")
		if project == "" {
			project = "default"
		}
		muIface, _ := locks.LoadOrStore(project, &sync.Mutex{})
		mu := muIface.(*sync.Mutex)
		mu.Lock()
		defer mu.Unlock()

		var doc model.ProjectDocument
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_document", err.Error())
			return
		}
		res, err := p.Run(&doc)
		if err != nil {
			code, status := classify(err)
			log.Warnf("plan %s: %v", project, err)
			writeError(w, status, code, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		out := Response{
			RunID:    res.RunID,
			Document: res.Document(&doc),
			Workload: res.Workload,
			Costs:    res.Costs,
		}
		if err := json.NewEncoder(w).Encode(out); err != nil {
			log.Errorf("encode response: %v", err)
		}
	})
}

// classify maps engine errors to stable error codes and HTTP statuses. All
// input problems map to 422; anything unrecognized is a 500.
func classify(err error) (string, int) {
	var (
		cyc     *plan.CyclicDependencyError
		unknown *plan.UnknownDependencyError
		selfDep *plan.SelfDependencyError
		horizon *plan.HorizonExceededError
		alloc   *model.InvalidAllocationError
		role    *model.UnknownRoleError
		docErr  *model.InvalidDocumentError
	)
	switch {
	case errors.As(err, &cyc):
		return "cyclic_dependency", http.StatusUnprocessableEntity
	case errors.As(err, &unknown):
		return "unknown_dependency", http.StatusUnprocessableEntity
	case errors.As(err, &selfDep):
		return "self_dependency", http.StatusUnprocessableEntity
	case errors.As(err, &horizon):
		return "scheduling_horizon_exceeded", http.StatusUnprocessableEntity
	case errors.As(err, &alloc):
		return "invalid_allocation", http.StatusUnprocessableEntity
	case errors.As(err, &role):
		return "unknown_role", http.StatusUnprocessableEntity
	case errors.As(err, &docErr):
		return "invalid_document", http.StatusUnprocessableEntity
	default:
		return "internal", http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: msg})
}
