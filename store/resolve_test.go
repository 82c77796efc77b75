package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadhub/models"
)

func TestNameFromMap(t *testing.T) {
	m := map[int64]string{1: "New", 2: "Won"}

	two := int64(2)
	missing := int64(99)
	assert.Equal(t, "Won", NameFromMap(m, &two))
	assert.Equal(t, UnknownName, NameFromMap(m, nil))
	assert.Equal(t, UnknownName, NameFromMap(m, &missing))
}

func TestNamePartFromMap(t *testing.T) {
	m := map[int64]string{1: "Mario Rossi"}

	one := int64(1)
	missing := int64(99)
	assert.Equal(t, "Mario Rossi", NamePartFromMap(m, &one))
	assert.Equal(t, "", NamePartFromMap(m, nil))
	assert.Equal(t, "", NamePartFromMap(m, &missing))
}

func TestDistinctIDs(t *testing.T) {
	one, two := int64(1), int64(2)
	ids := []*int64{&one, nil, &two, &one, &two}

	got := DistinctIDs(len(ids), func(i int) *int64 { return ids[i] })
	assert.Equal(t, []int64{1, 2}, got)

	assert.Empty(t, DistinctIDs(0, func(i int) *int64 { return nil }))
}

func TestAnnotateLeads(t *testing.T) {
	one := int64(1)
	dangling := int64(42)
	leads := []models.Lead{
		{StateID: &one, AssignedTo: &one},
		{StateID: &dangling},
		{},
	}

	AnnotateLeads(leads, NameMaps{
		LeadStates: map[int64]string{1: "New"},
		Users:      map[int64]string{1: "Mario Rossi"},
	})

	assert.Equal(t, "New", leads[0].StateName)
	assert.Equal(t, "Mario Rossi", leads[0].AssignedToName)

	// Dangling and null references degrade per item
	assert.Equal(t, UnknownName, leads[1].StateName)
	assert.Equal(t, UnknownName, leads[2].StateName)
	assert.Equal(t, "", leads[2].AssignedToName)
	assert.Equal(t, UnknownName, leads[0].CategoryName)
}

func TestAnnotateTasks(t *testing.T) {
	one := int64(1)
	tasks := []models.Task{{StateID: &one, LeadID: &one}}

	AnnotateTasks(tasks, NameMaps{
		TaskStates: map[int64]string{1: "To Do"},
		LeadNames:  map[int64]string{1: "Mario Rossi"},
		LeadPhones: map[int64]string{1: "3331234567"},
	})

	assert.Equal(t, "To Do", tasks[0].StateName)
	assert.Equal(t, "Mario Rossi", tasks[0].LeadName)
	assert.Equal(t, "3331234567", tasks[0].LeadPhone)
	assert.Equal(t, UnknownName, tasks[0].TypeName)
}
