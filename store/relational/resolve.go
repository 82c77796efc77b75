package relational

import (
	"context"

	"leadhub/models"
	"leadhub/store"
)

// lookupNames fetches id->name for one lookup table with a single IN
// query. Failures degrade to an empty map so callers fall back to
// "N/A" instead of erroring the whole batch.
func (b *backend) lookupNames(ctx context.Context, table string, ids []int64) map[int64]string {
	m := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return m
	}
	var rows []models.Lookup
	if err := b.db.WithContext(ctx).Table(table).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		b.log.WithError(err).Warnf("resolving %s failed", table)
		return m
	}
	for _, row := range rows {
		m[row.ID] = row.Name
	}
	return m
}

// userNames fetches id->display-name for a batch of user ids.
func (b *backend) userNames(ctx context.Context, ids []int64) map[int64]string {
	m := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return m
	}
	var rows []models.User
	if err := b.db.WithContext(ctx).Select("id", "username", "first_name", "last_name").
		Where("id IN ?", ids).Find(&rows).Error; err != nil {
		b.log.WithError(err).Warn("resolving users failed")
		return m
	}
	for i := range rows {
		m[rows[i].ID] = rows[i].DisplayName()
	}
	return m
}

// groupNames fetches id->name for a batch of lead-group ids.
func (b *backend) groupNames(ctx context.Context, ids []int64) map[int64]string {
	m := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return m
	}
	var rows []models.LeadGroup
	if err := b.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		b.log.WithError(err).Warn("resolving groups failed")
		return m
	}
	for _, row := range rows {
		m[row.ID] = row.Name
	}
	return m
}

// leadContacts fetches id->name and id->phone for linked leads.
func (b *backend) leadContacts(ctx context.Context, ids []int64) (names, phones map[int64]string) {
	names = make(map[int64]string, len(ids))
	phones = make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, phones
	}
	var rows []models.Lead
	if err := b.db.WithContext(ctx).Select("id", "first_name", "last_name", "phone").
		Where("id IN ?", ids).Find(&rows).Error; err != nil {
		b.log.WithError(err).Warn("resolving linked leads failed")
		return names, phones
	}
	for i := range rows {
		rows[i].Normalize()
		names[rows[i].ID] = rows[i].Name
		phones[rows[i].ID] = rows[i].Phone
	}
	return names, phones
}

func (b *backend) annotateLeads(ctx context.Context, leads []models.Lead) {
	n := len(leads)
	if n == 0 {
		return
	}
	maps := store.NameMaps{
		LeadStates:     b.lookupNames(ctx, models.TableLeadStates, store.DistinctIDs(n, func(i int) *int64 { return leads[i].StateID })),
		LeadCategories: b.lookupNames(ctx, models.TableLeadCategories, store.DistinctIDs(n, func(i int) *int64 { return leads[i].CategoryID })),
		LeadPriorities: b.lookupNames(ctx, models.TableLeadPriorities, store.DistinctIDs(n, func(i int) *int64 { return leads[i].PriorityID })),
		LeadSources:    b.lookupNames(ctx, models.TableLeadSources, store.DistinctIDs(n, func(i int) *int64 { return leads[i].SourceID })),
		Users:          b.userNames(ctx, store.DistinctIDs(n, func(i int) *int64 { return leads[i].AssignedTo })),
		Groups:         b.groupNames(ctx, store.DistinctIDs(n, func(i int) *int64 { return leads[i].GroupID })),
	}
	store.AnnotateLeads(leads, maps)
}

func (b *backend) annotateTasks(ctx context.Context, tasks []models.Task) {
	n := len(tasks)
	if n == 0 {
		return
	}
	leadIDs := store.DistinctIDs(n, func(i int) *int64 { return tasks[i].LeadID })
	leadNames, leadPhones := b.leadContacts(ctx, leadIDs)
	maps := store.NameMaps{
		TaskTypes:      b.lookupNames(ctx, models.TableTaskTypes, store.DistinctIDs(n, func(i int) *int64 { return tasks[i].TypeID })),
		TaskStates:     b.lookupNames(ctx, models.TableTaskStates, store.DistinctIDs(n, func(i int) *int64 { return tasks[i].StateID })),
		LeadPriorities: b.lookupNames(ctx, models.TableLeadPriorities, store.DistinctIDs(n, func(i int) *int64 { return tasks[i].PriorityID })),
		Users:          b.userNames(ctx, store.DistinctIDs(n, func(i int) *int64 { return tasks[i].AssignedTo })),
		LeadNames:      leadNames,
		LeadPhones:     leadPhones,
	}
	store.AnnotateTasks(tasks, maps)
}

func (b *backend) annotateUsers(ctx context.Context, users []models.User) {
	n := len(users)
	if n == 0 {
		return
	}
	maps := store.NameMaps{
		Roles:       b.lookupNames(ctx, models.TableRoles, store.DistinctIDs(n, func(i int) *int64 { return users[i].RoleID })),
		Departments: b.lookupNames(ctx, models.TableDepartments, store.DistinctIDs(n, func(i int) *int64 { return users[i].DepartmentID })),
	}
	store.AnnotateUsers(users, maps)
}
