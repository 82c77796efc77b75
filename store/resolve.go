package store

import "leadhub/models"

// UnknownName is the display value for a foreign id that fails to
// resolve (null, or missing from its lookup table). Resolution never
// raises: it degrades per item.
const UnknownName = "N/A"

// NameMaps carries id -> display-name maps fetched by a backend, one
// batched lookup per foreign table. Missing maps behave like empty
// ones.
type NameMaps struct {
	LeadStates     map[int64]string
	LeadCategories map[int64]string
	LeadPriorities map[int64]string
	LeadSources    map[int64]string
	TaskStates     map[int64]string
	TaskTypes      map[int64]string
	Roles          map[int64]string
	Departments    map[int64]string
	Groups         map[int64]string

	// Users maps user id -> display name (may be empty when the user
	// record has no name set).
	Users map[int64]string

	// Linked-lead denormalization for tasks
	LeadNames  map[int64]string
	LeadPhones map[int64]string
}

// NameFromMap resolves a lookup reference, degrading to UnknownName.
func NameFromMap(m map[int64]string, id *int64) string {
	if id == nil {
		return UnknownName
	}
	if name, ok := m[*id]; ok {
		return name
	}
	return UnknownName
}

// NamePartFromMap resolves a user-name reference. Name parts degrade
// to the empty string rather than UnknownName.
func NamePartFromMap(m map[int64]string, id *int64) string {
	if id == nil {
		return ""
	}
	return m[*id]
}

// DistinctIDs collects the distinct non-nil ids produced by get over
// n records. Used to issue one batched lookup per foreign-key column
// instead of one per row.
func DistinctIDs(n int, get func(i int) *int64) []int64 {
	seen := make(map[int64]struct{}, n)
	var ids []int64
	for i := 0; i < n; i++ {
		id := get(i)
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	return ids
}

// AnnotateLeads merges resolved display names into a batch of leads.
func AnnotateLeads(leads []models.Lead, m NameMaps) {
	for i := range leads {
		l := &leads[i]
		l.StateName = NameFromMap(m.LeadStates, l.StateID)
		l.CategoryName = NameFromMap(m.LeadCategories, l.CategoryID)
		l.PriorityName = NameFromMap(m.LeadPriorities, l.PriorityID)
		l.SourceName = NameFromMap(m.LeadSources, l.SourceID)
		l.AssignedToName = NamePartFromMap(m.Users, l.AssignedTo)
		l.GroupName = NamePartFromMap(m.Groups, l.GroupID)
	}
}

// AnnotateTasks merges resolved display names and linked-lead contact
// data into a batch of tasks.
func AnnotateTasks(tasks []models.Task, m NameMaps) {
	for i := range tasks {
		t := &tasks[i]
		t.TypeName = NameFromMap(m.TaskTypes, t.TypeID)
		t.StateName = NameFromMap(m.TaskStates, t.StateID)
		t.PriorityName = NameFromMap(m.LeadPriorities, t.PriorityID)
		t.AssignedToName = NamePartFromMap(m.Users, t.AssignedTo)
		t.LeadName = NamePartFromMap(m.LeadNames, t.LeadID)
		t.LeadPhone = NamePartFromMap(m.LeadPhones, t.LeadID)
	}
}

// AnnotateUsers merges resolved role and department names into a
// batch of users.
func AnnotateUsers(users []models.User, m NameMaps) {
	for i := range users {
		u := &users[i]
		u.RoleName = NameFromMap(m.Roles, u.RoleID)
		u.DepartmentName = NameFromMap(m.Departments, u.DepartmentID)
	}
}
