package plan

import (
	"errors"
	"testing"

	"github.com/asferrer/project-planner-app/core/model"
)

func task(id int, deps ...int) model.Task {
	return model.Task{ID: id, Dependencies: deps}
}

func TestOrderTopological(t *testing.T) {
	tasks := []model.Task{task(3, 1), task(1), task(2, 1), task(4, 2, 3)}
	order, err := Order(tasks)
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	pos := make(map[int]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, tk := range tasks {
		for _, dep := range tk.Dependencies {
			if pos[dep] >= pos[tk.ID] {
				t.Fatalf("dependency %d not before %d in %v", dep, tk.ID, order)
			}
		}
	}
}

func TestOrderTieBreakByID(t *testing.T) {
	// All independent: order must be ascending id regardless of input order.
	tasks := []model.Task{task(9), task(2), task(7), task(1)}
	order, err := Order(tasks)
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	want := []int{1, 2, 7, 9}
	for i, id := range want {
		if order[i] != id {
			t.Fatalf("expected %v got %v", want, order)
		}
	}
}

func TestOrderCycle(t *testing.T) {
	tasks := []model.Task{task(1, 2), task(2, 1), task(3)}
	_, err := Order(tasks)
	var cerr *CyclicDependencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CyclicDependencyError, got %v", err)
	}
	if len(cerr.TaskIDs) != 2 || cerr.TaskIDs[0] != 1 || cerr.TaskIDs[1] != 2 {
		t.Fatalf("expected implicated tasks [1 2], got %v", cerr.TaskIDs)
	}
}

func TestOrderUnknownDependency(t *testing.T) {
	_, err := Order([]model.Task{task(1, 42)})
	var uerr *UnknownDependencyError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnknownDependencyError, got %v", err)
	}
	if uerr.TaskID != 1 || uerr.DependencyID != 42 {
		t.Fatalf("error context missing: %#v", uerr)
	}
}

func TestOrderSelfDependency(t *testing.T) {
	_, err := Order([]model.Task{task(1, 1)})
	var serr *SelfDependencyError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SelfDependencyError, got %v", err)
	}
}

func TestPriorityLess(t *testing.T) {
	if !priorityLess(1, 2) || priorityLess(2, 1) || priorityLess(3, 3) {
		t.Fatalf("priorityLess must order strictly by ascending id")
	}
}
