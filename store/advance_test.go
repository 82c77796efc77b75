package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadhub/models"
)

func taskStates() []models.Lookup {
	return []models.Lookup{
		{ID: 1, Name: "To Do"},
		{ID: 2, Name: "In Progress"},
		{ID: 3, Name: "Done"},
	}
}

func TestPlanAdvanceMoves(t *testing.T) {
	one := int64(1)
	result, next := PlanAdvance(&models.Task{ID: 7, StateID: &one}, taskStates())

	assert.True(t, result.Moved)
	assert.Equal(t, "To Do", result.FromState)
	assert.Equal(t, "In Progress", result.ToState)
	assert.NotNil(t, next)
	assert.Equal(t, int64(2), next.ID)
}

func TestPlanAdvanceFinalState(t *testing.T) {
	three := int64(3)
	result, next := PlanAdvance(&models.Task{StateID: &three}, taskStates())

	assert.False(t, result.Moved)
	assert.Equal(t, "Done", result.FromState)
	assert.Equal(t, "already in final state", result.Message)
	assert.Nil(t, next)

	// A second advance from the same state stays a no-op
	again, next := PlanAdvance(&models.Task{StateID: &three}, taskStates())
	assert.False(t, again.Moved)
	assert.Nil(t, next)
}

func TestPlanAdvanceUnknownState(t *testing.T) {
	unknown := int64(99)
	result, next := PlanAdvance(&models.Task{StateID: &unknown}, taskStates())
	assert.False(t, result.Moved)
	assert.Equal(t, "current state unknown", result.Message)
	assert.Nil(t, next)

	result, next = PlanAdvance(&models.Task{}, taskStates())
	assert.False(t, result.Moved)
	assert.Nil(t, next)
}

func TestPlanAdvanceNoStates(t *testing.T) {
	one := int64(1)
	result, next := PlanAdvance(&models.Task{StateID: &one}, nil)
	assert.False(t, result.Moved)
	assert.Equal(t, "no task states configured", result.Message)
	assert.Nil(t, next)
}
