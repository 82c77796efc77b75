package supabase

import (
	"context"

	"leadhub/models"
	"leadhub/store"
)

// lookupNames fetches id->name for one lookup table with a single
// in-filter request. Failures degrade to an empty map so callers fall
// back to "N/A" instead of erroring the whole batch.
func (b *backend) lookupNames(table string, ids []int64) map[int64]string {
	m := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return m
	}
	var rows []models.Lookup
	_, err := b.client.From(table).
		Select("id,name", "", false).
		In("id", idList(ids)).
		ExecuteTo(&rows)
	if err != nil {
		b.log.WithError(err).Warnf("resolving %s failed", table)
		return m
	}
	for _, row := range rows {
		m[row.ID] = row.Name
	}
	return m
}

// userNames fetches id->display-name for a batch of user ids.
func (b *backend) userNames(ids []int64) map[int64]string {
	m := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return m
	}
	var rows []models.User
	_, err := b.client.From("users").
		Select("id,username,first_name,last_name", "", false).
		In("id", idList(ids)).
		ExecuteTo(&rows)
	if err != nil {
		b.log.WithError(err).Warn("resolving users failed")
		return m
	}
	for i := range rows {
		m[rows[i].ID] = rows[i].DisplayName()
	}
	return m
}

// groupNames fetches id->name for a batch of lead-group ids.
func (b *backend) groupNames(ids []int64) map[int64]string {
	m := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return m
	}
	var rows []models.LeadGroup
	_, err := b.client.From("lead_groups").
		Select("id,name", "", false).
		In("id", idList(ids)).
		ExecuteTo(&rows)
	if err != nil {
		b.log.WithError(err).Warn("resolving groups failed")
		return m
	}
	for _, row := range rows {
		m[row.ID] = row.Name
	}
	return m
}

// leadContacts fetches id->name and id->phone for linked leads. The
// remote leads table stores the combined name directly.
func (b *backend) leadContacts(ids []int64) (names, phones map[int64]string) {
	names = make(map[int64]string, len(ids))
	phones = make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, phones
	}
	var rows []models.Lead
	_, err := b.client.From("leads").
		Select("id,name,phone", "", false).
		In("id", idList(ids)).
		ExecuteTo(&rows)
	if err != nil {
		b.log.WithError(err).Warn("resolving linked leads failed")
		return names, phones
	}
	for i := range rows {
		names[rows[i].ID] = rows[i].Name
		phones[rows[i].ID] = rows[i].Phone
	}
	return names, phones
}

func (b *backend) annotateLeads(_ context.Context, leads []models.Lead) {
	n := len(leads)
	if n == 0 {
		return
	}
	maps := store.NameMaps{
		LeadStates:     b.lookupNames(models.TableLeadStates, store.DistinctIDs(n, func(i int) *int64 { return leads[i].StateID })),
		LeadCategories: b.lookupNames(models.TableLeadCategories, store.DistinctIDs(n, func(i int) *int64 { return leads[i].CategoryID })),
		LeadPriorities: b.lookupNames(models.TableLeadPriorities, store.DistinctIDs(n, func(i int) *int64 { return leads[i].PriorityID })),
		LeadSources:    b.lookupNames(models.TableLeadSources, store.DistinctIDs(n, func(i int) *int64 { return leads[i].SourceID })),
		Users:          b.userNames(store.DistinctIDs(n, func(i int) *int64 { return leads[i].AssignedTo })),
		Groups:         b.groupNames(store.DistinctIDs(n, func(i int) *int64 { return leads[i].GroupID })),
	}
	store.AnnotateLeads(leads, maps)
}

func (b *backend) annotateTasks(_ context.Context, tasks []models.Task) {
	n := len(tasks)
	if n == 0 {
		return
	}
	leadIDs := store.DistinctIDs(n, func(i int) *int64 { return tasks[i].LeadID })
	leadNames, leadPhones := b.leadContacts(leadIDs)
	maps := store.NameMaps{
		TaskTypes:      b.lookupNames(models.TableTaskTypes, store.DistinctIDs(n, func(i int) *int64 { return tasks[i].TypeID })),
		TaskStates:     b.lookupNames(models.TableTaskStates, store.DistinctIDs(n, func(i int) *int64 { return tasks[i].StateID })),
		LeadPriorities: b.lookupNames(models.TableLeadPriorities, store.DistinctIDs(n, func(i int) *int64 { return tasks[i].PriorityID })),
		Users:          b.userNames(store.DistinctIDs(n, func(i int) *int64 { return tasks[i].AssignedTo })),
		LeadNames:      leadNames,
		LeadPhones:     leadPhones,
	}
	store.AnnotateTasks(tasks, maps)
}

func (b *backend) annotateUsers(_ context.Context, users []models.User) {
	n := len(users)
	if n == 0 {
		return
	}
	maps := store.NameMaps{
		Roles:       b.lookupNames(models.TableRoles, store.DistinctIDs(n, func(i int) *int64 { return users[i].RoleID })),
		Departments: b.lookupNames(models.TableDepartments, store.DistinctIDs(n, func(i int) *int64 { return users[i].DepartmentID })),
	}
	store.AnnotateUsers(users, maps)
}
