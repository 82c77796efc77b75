package relational

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadhub/config"
	"leadhub/models"
	"leadhub/store"
	"leadhub/utils"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(config.Config{
		StoreBackend: "sqlite",
		SQLitePath:   filepath.Join(dir, "leadhub.db"),
		BackupDir:    filepath.Join(dir, "backups"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// lookupID resolves a seeded lookup row by name.
func lookupID(t *testing.T, st *store.Store, table, name string) int64 {
	t.Helper()
	rows, err := st.Lookups.List(context.Background(), table)
	require.NoError(t, err)
	for _, row := range rows {
		if row.Name == name {
			return row.ID
		}
	}
	t.Fatalf("lookup %q not found in %s", name, table)
	return 0
}

// seededAdmin returns the admin account created on first open and an
// actor acting as it.
func seededAdmin(t *testing.T, st *store.Store) (*models.User, models.Actor) {
	t.Helper()
	admin, err := st.Users.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	return admin, models.Actor{ID: admin.ID, Role: models.RoleAdmin}
}

func newLead(t *testing.T, st *store.Store, first, last, email string) int64 {
	t.Helper()
	stateID := lookupID(t, st, models.TableLeadStates, "New")
	id, err := st.Leads.Create(context.Background(), &models.Lead{
		FirstName: first,
		LastName:  last,
		Email:     email,
		StateID:   &stateID,
	})
	require.NoError(t, err)
	return id
}

func TestOpenSeedsDefaults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	states, err := st.Lookups.List(ctx, models.TableTaskStates)
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, "To Do", states[0].Name)
	assert.Equal(t, "In Progress", states[1].Name)
	assert.Equal(t, "Done", states[2].Name)

	roles, err := st.Lookups.List(ctx, models.TableRoles)
	require.NoError(t, err)
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	assert.Contains(t, names, models.RoleAdmin)
	assert.Contains(t, names, models.RoleTester)

	admin, _ := seededAdmin(t, st)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsActive)
	assert.True(t, utils.CheckPassword(admin.PasswordHash, utils.DefaultAdminPassword))
	assert.Equal(t, models.RoleAdmin, admin.RoleName)
}

func TestLookupListRejectsUnknownTable(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Lookups.List(context.Background(), "users")
	assert.Error(t, err)
}

func TestLeadRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	stateID := lookupID(t, st, models.TableLeadStates, "New")
	categoryID := lookupID(t, st, models.TableLeadCategories, "Private")
	id, err := st.Leads.Create(ctx, &models.Lead{
		FirstName:  "Mario",
		LastName:   "Rossi",
		Email:      "mario.rossi@example.com",
		Phone:      "3331234567",
		Company:    "Rossi Immobili",
		StateID:    &stateID,
		CategoryID: &categoryID,
	})
	require.NoError(t, err)

	lead, err := st.Leads.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, lead)

	assert.Equal(t, "Mario Rossi", lead.Name)
	assert.Equal(t, "Mario", lead.FirstName)
	assert.Equal(t, "Rossi", lead.LastName)
	assert.Equal(t, "New", lead.StateName)
	assert.Equal(t, "Private", lead.CategoryName)
	// Unset references resolve to the placeholder, not an error.
	assert.Equal(t, store.UnknownName, lead.PriorityName)
	assert.Equal(t, store.UnknownName, lead.SourceName)
	assert.Empty(t, lead.AssignedToName)

	require.NoError(t, st.Leads.Delete(ctx, id))
	gone, err := st.Leads.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestLeadCreateValidation(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	stateID := lookupID(t, st, models.TableLeadStates, "New")

	_, err := st.Leads.Create(ctx, &models.Lead{StateID: &stateID})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = st.Leads.Create(ctx, &models.Lead{FirstName: "Mario"})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestLeadPartialUpdate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id := newLead(t, st, "Anna", "Bianchi", "anna@example.com")

	// Only the supplied field changes.
	err := st.Leads.Update(ctx, id, store.LeadPatch{Email: utils.Pointer("anna.b@example.com")})
	require.NoError(t, err)

	lead, err := st.Leads.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "anna.b@example.com", lead.Email)
	assert.Equal(t, "Anna", lead.FirstName)
	assert.Equal(t, "Bianchi", lead.LastName)

	// An empty patch is a no-op, not an error.
	require.NoError(t, st.Leads.Update(ctx, id, store.LeadPatch{}))
	again, err := st.Leads.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, lead.Email, again.Email)
}

func TestLeadListFilterAndSearch(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	newLead(t, st, "Mario", "Rossi", "mario@example.com")
	newLead(t, st, "Anna", "Bianchi", "anna@example.com")

	leads, err := st.Leads.List(ctx, store.LeadFilter{Search: "rossi"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Mario Rossi", leads[0].Name)

	// A full-name query spanning first and last name matches too.
	leads, err = st.Leads.List(ctx, store.LeadFilter{Search: "mario rossi"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Mario Rossi", leads[0].Name)

	contacted := lookupID(t, st, models.TableLeadStates, "Contacted")
	leads, err = st.Leads.List(ctx, store.LeadFilter{StateID: &contacted})
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestTaskAdvanceProgression(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	todo := lookupID(t, st, models.TableTaskStates, "To Do")
	id, err := st.Tasks.Create(ctx, &models.Task{Title: "Call back", StateID: &todo})
	require.NoError(t, err)

	res, err := st.Tasks.Advance(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Moved)
	assert.Equal(t, "To Do", res.FromState)
	assert.Equal(t, "In Progress", res.ToState)

	res, err = st.Tasks.Advance(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Moved)
	assert.Equal(t, "Done", res.ToState)

	// The final state is terminal however many times advance runs.
	for i := 0; i < 2; i++ {
		res, err = st.Tasks.Advance(ctx, id)
		require.NoError(t, err)
		assert.False(t, res.Moved)
	}

	task, err := st.Tasks.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Done", task.StateName)
}

func TestTaskAdvanceUnknownState(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.Tasks.Create(ctx, &models.Task{Title: "Orphaned"})
	require.NoError(t, err)

	res, err := st.Tasks.Advance(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Moved)

	missing, err := st.Tasks.Advance(ctx, 99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTaskLinkedLeadDenormalization(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	stateID := lookupID(t, st, models.TableLeadStates, "New")
	leadID, err := st.Leads.Create(ctx, &models.Lead{
		FirstName: "Luca",
		LastName:  "Verdi",
		Phone:     "3479876543",
		StateID:   &stateID,
	})
	require.NoError(t, err)

	todo := lookupID(t, st, models.TableTaskStates, "To Do")
	taskID, err := st.Tasks.Create(ctx, &models.Task{Title: "First contact", StateID: &todo, LeadID: &leadID})
	require.NoError(t, err)

	task, err := st.Tasks.Get(ctx, taskID)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "Luca Verdi", task.LeadName)
	assert.Equal(t, "3479876543", task.LeadPhone)
}

func TestUserAdminGate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	_, admin := seededAdmin(t, st)

	operator := models.Actor{ID: 99, Role: "Operator"}
	_, err := st.Users.Create(ctx, operator, &models.User{Username: "mallory"}, "secret123")
	assert.ErrorIs(t, err, store.ErrPermissionDenied)
	assert.ErrorIs(t, st.Users.Update(ctx, operator, 1, store.UserPatch{}), store.ErrPermissionDenied)
	assert.ErrorIs(t, st.Users.Delete(ctx, operator, 1), store.ErrPermissionDenied)

	_, err = st.Users.Create(ctx, admin, &models.User{Username: "carla"}, "")
	assert.ErrorIs(t, err, store.ErrValidation)

	id, err := st.Users.Create(ctx, admin, &models.User{Username: "carla", IsActive: true}, "secret123")
	require.NoError(t, err)

	created, err := st.Users.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, utils.CheckPassword(created.PasswordHash, "secret123"))
	assert.NotEqual(t, "secret123", created.PasswordHash)
}

func TestDeleteLastAdminRefused(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	adminUser, admin := seededAdmin(t, st)

	// Extra non-admin accounts do not count towards the guard.
	_, err := st.Users.Create(ctx, admin, &models.User{Username: "op", IsActive: true}, "secret123")
	require.NoError(t, err)

	err = st.Users.Delete(ctx, admin, adminUser.ID)
	assert.ErrorIs(t, err, store.ErrLastAdmin)

	// A second active admin releases it, and the remaining one is
	// protected again afterwards.
	secondID, err := st.Users.Create(ctx, admin, &models.User{Username: "root2", IsActive: true, IsAdmin: true}, "secret123")
	require.NoError(t, err)

	require.NoError(t, st.Users.Delete(ctx, admin, adminUser.ID))
	err = st.Users.Delete(ctx, models.Actor{ID: secondID, Role: models.RoleAdmin}, secondID)
	assert.ErrorIs(t, err, store.ErrLastAdmin)
}

func TestInactiveAdminDoesNotCount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	adminUser, admin := seededAdmin(t, st)

	id, err := st.Users.Create(ctx, admin, &models.User{Username: "retired", IsAdmin: true, IsActive: true}, "secret123")
	require.NoError(t, err)
	require.NoError(t, st.Users.Update(ctx, admin, id, store.UserPatch{IsActive: utils.Pointer(false)}))

	err = st.Users.Delete(ctx, admin, adminUser.ID)
	assert.ErrorIs(t, err, store.ErrLastAdmin)
}

func TestTesterViewIsRedacted(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id := newLead(t, st, "Mario", "Rossi", "mario.rossi@example.com")

	view := st.ForRole(models.RoleTester)
	lead, err := view.Leads.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "M. R.", lead.Name)
	assert.Equal(t, "***@example.com", lead.Email)

	// The underlying row is untouched.
	raw, err := st.Leads.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Mario Rossi", raw.Name)
	assert.Equal(t, "mario.rossi@example.com", raw.Email)
}

func TestSettingsUpsertAndPrefixList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Settings.Set(ctx, "telegram_chat_id", "123", "notification target"))
	require.NoError(t, st.Settings.Set(ctx, "telegram_token", "abc", ""))
	require.NoError(t, st.Settings.Set(ctx, "company_name", "LeadHub", ""))

	// Second write with the same key overwrites the value.
	require.NoError(t, st.Settings.Set(ctx, "telegram_chat_id", "456", ""))

	s, err := st.Settings.Get(ctx, "telegram_chat_id")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "456", s.Value)

	missing, err := st.Settings.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	rows, err := st.Settings.List(ctx, "telegram_")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.True(t, strings.HasPrefix(row.Key, "telegram_"))
	}

	assert.ErrorIs(t, st.Settings.Set(ctx, "", "x", ""), store.ErrValidation)
}

func TestGroupMembershipAndAssignment(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	adminUser, _ := seededAdmin(t, st)

	groupID, err := st.Groups.Create(ctx, &models.LeadGroup{Name: "North", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, st.Groups.AddMember(ctx, groupID, adminUser.ID, false))
	// Re-adding the same user updates the flag instead of duplicating
	// the membership.
	require.NoError(t, st.Groups.AddMember(ctx, groupID, adminUser.ID, true))

	group, err := st.Groups.Get(ctx, groupID)
	require.NoError(t, err)
	require.NotNil(t, group)
	require.Len(t, group.Members, 1)
	assert.True(t, group.Members[0].CanManage)
	assert.Equal(t, adminUser.DisplayName(), group.Members[0].UserName)

	leadID := newLead(t, st, "Mario", "Rossi", "mario@example.com")
	require.NoError(t, st.Groups.AssignLead(ctx, leadID, &groupID))
	lead, err := st.Leads.Get(ctx, leadID)
	require.NoError(t, err)
	require.NotNil(t, lead.GroupID)
	assert.Equal(t, groupID, *lead.GroupID)
	assert.Equal(t, "North", lead.GroupName)

	require.NoError(t, st.Groups.AssignLead(ctx, leadID, nil))
	lead, err = st.Leads.Get(ctx, leadID)
	require.NoError(t, err)
	assert.Nil(t, lead.GroupID)

	require.NoError(t, st.Groups.RemoveMember(ctx, groupID, adminUser.ID))
	group, err = st.Groups.Get(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, group.Members)

	require.NoError(t, st.Groups.Deactivate(ctx, groupID))
	active, err := st.Groups.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := st.Groups.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSequenceStepsReplaceAndRenumber(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	tplA, err := st.Templates.Create(ctx, &models.ContactTemplate{Name: "Welcome", Body: "Hi {{first_name}}", IsActive: true})
	require.NoError(t, err)
	tplB, err := st.Templates.Create(ctx, &models.ContactTemplate{Name: "Follow up", Body: "Still there?", IsActive: true})
	require.NoError(t, err)

	seqID, err := st.Sequences.Create(ctx, &models.ContactSequence{
		Name:     "Onboarding",
		IsActive: true,
		Steps: []models.SequenceStep{
			{TemplateID: tplA, DelayHours: 0},
			{TemplateID: tplB, DelayHours: 24},
		},
	})
	require.NoError(t, err)

	seq, err := st.Sequences.Get(ctx, seqID)
	require.NoError(t, err)
	require.NotNil(t, seq)
	require.Len(t, seq.Steps, 2)
	assert.Equal(t, 1, seq.Steps[0].StepOrder)
	assert.Equal(t, 2, seq.Steps[1].StepOrder)
	assert.Equal(t, "Welcome", seq.Steps[0].TemplateName)

	// Replacing the list renumbers from the new slice order.
	err = st.Sequences.SetSteps(ctx, seqID, []models.SequenceStep{
		{TemplateID: tplB, DelayHours: 48},
	})
	require.NoError(t, err)

	seq, err = st.Sequences.Get(ctx, seqID)
	require.NoError(t, err)
	require.Len(t, seq.Steps, 1)
	assert.Equal(t, 1, seq.Steps[0].StepOrder)
	assert.Equal(t, tplB, seq.Steps[0].TemplateID)
	assert.Equal(t, 48, seq.Steps[0].DelayHours)

	require.NoError(t, st.Sequences.Delete(ctx, seqID))
	gone, err := st.Sequences.Get(ctx, seqID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestActivityLogAppendAndList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	adminUser, _ := seededAdmin(t, st)

	leadID := newLead(t, st, "Mario", "Rossi", "mario@example.com")
	st.Activity.Log(ctx, models.ActivityLogEntry{
		UserID:     &adminUser.ID,
		Action:     "lead_created",
		EntityType: "lead",
		EntityID:   &leadID,
	})
	st.Activity.Log(ctx, models.ActivityLogEntry{Action: "login"})

	entries, err := st.Activity.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "login", entries[0].Action)
	assert.Equal(t, "lead_created", entries[1].Action)
	assert.Equal(t, adminUser.DisplayName(), entries[1].UserName)
}

func TestBackupWritesDatabaseCopy(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	newLead(t, st, "Mario", "Rossi", "mario@example.com")

	path, err := st.Backup(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".db"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
