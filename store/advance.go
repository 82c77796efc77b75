package store

import (
	"fmt"

	"leadhub/models"
)

// PlanAdvance computes the next step for a task given the task-state
// list in insertion order. When the task should move, the returned
// result has Moved set and next holds the state to write; otherwise
// next is nil and the result explains why the task stays put.
func PlanAdvance(task *models.Task, states []models.Lookup) (*models.AdvanceResult, *models.Lookup) {
	if len(states) == 0 {
		return &models.AdvanceResult{Moved: false, Message: "no task states configured"}, nil
	}

	idx := -1
	if task.StateID != nil {
		for i, s := range states {
			if s.ID == *task.StateID {
				idx = i
				break
			}
		}
	}
	if idx == -1 {
		// Current state missing from the lookup: leave the task
		// alone rather than guessing a position.
		return &models.AdvanceResult{Moved: false, Message: "current state unknown"}, nil
	}
	if idx == len(states)-1 {
		return &models.AdvanceResult{
			Moved:     false,
			FromState: states[idx].Name,
			Message:   "already in final state",
		}, nil
	}

	next := states[idx+1]
	return &models.AdvanceResult{
		Moved:     true,
		FromState: states[idx].Name,
		ToState:   next.Name,
		Message:   fmt.Sprintf("moved to %s", next.Name),
	}, &next
}
