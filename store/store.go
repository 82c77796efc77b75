// Package store defines the repository interfaces of the data layer.
//
// Two interchangeable backend implementations exist:
//   - store/relational: GORM over Postgres or a local SQLite file
//   - store/supabase: the hosted tabular REST store
//
// The backend is selected once at startup; a Store never mixes
// backends. Read operations return resolved display names for every
// foreign key so callers never need to join lookup tables themselves.
package store

import (
	"context"
	"errors"
	"time"

	"leadhub/models"
)

// Sentinel error kinds so callers can tell policy failures apart from
// backend failures. Not-found is not an error: single-entity reads
// return (nil, nil) and list reads return an empty slice.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrLastAdmin        = errors.New("cannot remove the last admin user")
	ErrValidation       = errors.New("validation failed")
)

// DefaultListLimit caps list results when the caller does not set one.
const DefaultListLimit = 100

// LeadFilter narrows lead listings. Unset fields are ignored. Search
// is matched case-insensitively against name, email and company.
type LeadFilter struct {
	StateID    *int64
	CategoryID *int64
	AssignedTo *int64
	GroupID    *int64
	Search     string
	Limit      int
	Offset     int
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	StateID    *int64
	TypeID     *int64
	AssignedTo *int64
	LeadID     *int64
	Limit      int
	Offset     int
}

// UserFilter narrows user listings.
type UserFilter struct {
	RoleID       *int64
	DepartmentID *int64
	ActiveOnly   bool
	Limit        int
	Offset       int
}

// setIf adds the dereferenced value to the field map when the pointer
// is set. Patches translate to partial updates: only supplied fields
// are written, omitted fields are left untouched on both backends.
func setIf[T any](m map[string]any, key string, v *T) {
	if v != nil {
		m[key] = *v
	}
}

// LeadPatch is a partial lead update. Group membership changes go
// through GroupRepository.AssignLead instead.
type LeadPatch struct {
	FirstName         *string    `json:"first_name"`
	LastName          *string    `json:"last_name"`
	Email             *string    `json:"email"`
	Phone             *string    `json:"phone"`
	Company           *string    `json:"company"`
	Position          *string    `json:"position"`
	StateID           *int64     `json:"state_id"`
	CategoryID        *int64     `json:"category_id"`
	PriorityID        *int64     `json:"priority_id"`
	SourceID          *int64     `json:"source_id"`
	AssignedTo        *int64     `json:"assigned_to"`
	Budget            *float64   `json:"budget"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`
	Notes             *string    `json:"notes"`
}

// Fields returns the column/value map of the supplied fields. Name
// columns are included in the relational shape; the remote store
// backend rewrites them into its combined name column.
func (p LeadPatch) Fields() map[string]any {
	m := map[string]any{}
	setIf(m, "first_name", p.FirstName)
	setIf(m, "last_name", p.LastName)
	setIf(m, "email", p.Email)
	setIf(m, "phone", p.Phone)
	setIf(m, "company", p.Company)
	setIf(m, "position", p.Position)
	setIf(m, "state_id", p.StateID)
	setIf(m, "category_id", p.CategoryID)
	setIf(m, "priority_id", p.PriorityID)
	setIf(m, "source_id", p.SourceID)
	setIf(m, "assigned_to", p.AssignedTo)
	setIf(m, "budget", p.Budget)
	setIf(m, "expected_close_date", p.ExpectedCloseDate)
	setIf(m, "notes", p.Notes)
	return m
}

// TaskPatch is a partial task update.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	TypeID      *int64     `json:"type_id"`
	StateID     *int64     `json:"state_id"`
	PriorityID  *int64     `json:"priority_id"`
	AssignedTo  *int64     `json:"assigned_to"`
	LeadID      *int64     `json:"lead_id"`
	DueDate     *time.Time `json:"due_date"`
}

func (p TaskPatch) Fields() map[string]any {
	m := map[string]any{}
	setIf(m, "title", p.Title)
	setIf(m, "description", p.Description)
	setIf(m, "type_id", p.TypeID)
	setIf(m, "state_id", p.StateID)
	setIf(m, "priority_id", p.PriorityID)
	setIf(m, "assigned_to", p.AssignedTo)
	setIf(m, "lead_id", p.LeadID)
	setIf(m, "due_date", p.DueDate)
	return m
}

// UserPatch is a partial user update. Password carries a plaintext
// password that the repository hashes before persisting; when nil the
// stored hash is left untouched.
type UserPatch struct {
	Email        *string `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Phone        *string `json:"phone"`
	Password     *string `json:"password"`
	RoleID       *int64  `json:"role_id"`
	DepartmentID *int64  `json:"department_id"`
	IsActive     *bool   `json:"is_active"`
	IsAdmin      *bool   `json:"is_admin"`
}

// Fields returns the column/value map of the supplied fields,
// excluding the password (handled separately by the repositories).
func (p UserPatch) Fields() map[string]any {
	m := map[string]any{}
	setIf(m, "email", p.Email)
	setIf(m, "first_name", p.FirstName)
	setIf(m, "last_name", p.LastName)
	setIf(m, "phone", p.Phone)
	setIf(m, "role_id", p.RoleID)
	setIf(m, "department_id", p.DepartmentID)
	setIf(m, "is_active", p.IsActive)
	setIf(m, "is_admin", p.IsAdmin)
	return m
}

// GroupPatch is a partial lead-group update.
type GroupPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsActive    *bool   `json:"is_active"`
}

func (p GroupPatch) Fields() map[string]any {
	m := map[string]any{}
	setIf(m, "name", p.Name)
	setIf(m, "description", p.Description)
	setIf(m, "color", p.Color)
	setIf(m, "is_active", p.IsActive)
	return m
}

// TemplatePatch is a partial contact-template update.
type TemplatePatch struct {
	Name         *string `json:"name"`
	TemplateType *string `json:"template_type"`
	Subject      *string `json:"subject"`
	Body         *string `json:"body"`
	IsActive     *bool   `json:"is_active"`
}

func (p TemplatePatch) Fields() map[string]any {
	m := map[string]any{}
	setIf(m, "name", p.Name)
	setIf(m, "template_type", p.TemplateType)
	setIf(m, "subject", p.Subject)
	setIf(m, "body", p.Body)
	setIf(m, "is_active", p.IsActive)
	return m
}

// SequencePatch is a partial contact-sequence update. Steps are
// replaced wholesale through SequenceRepository.SetSteps.
type SequencePatch struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	TriggerEvent *string `json:"trigger_event"`
	Conditions   *string `json:"conditions"`
	IsActive     *bool   `json:"is_active"`
}

func (p SequencePatch) Fields() map[string]any {
	m := map[string]any{}
	setIf(m, "name", p.Name)
	setIf(m, "description", p.Description)
	setIf(m, "trigger_event", p.TriggerEvent)
	setIf(m, "conditions", p.Conditions)
	setIf(m, "is_active", p.IsActive)
	return m
}

// BrokerLinkPatch is a partial broker-link update.
type BrokerLinkPatch struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (p BrokerLinkPatch) Fields() map[string]any {
	m := map[string]any{}
	setIf(m, "name", p.Name)
	setIf(m, "url", p.URL)
	setIf(m, "description", p.Description)
	setIf(m, "is_active", p.IsActive)
	return m
}

// ScriptPatch is a partial script update.
type ScriptPatch struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	ScriptType *string `json:"script_type"`
	Category   *string `json:"category"`
	IsActive   *bool   `json:"is_active"`
}

func (p ScriptPatch) Fields() map[string]any {
	m := map[string]any{}
	setIf(m, "title", p.Title)
	setIf(m, "content", p.Content)
	setIf(m, "script_type", p.ScriptType)
	setIf(m, "category", p.Category)
	setIf(m, "is_active", p.IsActive)
	return m
}

// LeadRepository is the representative CRUD contract; tasks and users
// follow the same shape.
type LeadRepository interface {
	// List returns leads matching the filter, newest-created first.
	// Pagination is offset based: concurrent inserts can shift pages.
	List(ctx context.Context, f LeadFilter) ([]models.Lead, error)
	Get(ctx context.Context, id int64) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) (int64, error)
	Update(ctx context.Context, id int64, p LeadPatch) error
	// Delete is a hard delete with no cascade; callers are
	// responsible for not leaving dangling task references.
	Delete(ctx context.Context, id int64) error
}

// TaskRepository manages tasks and their ordered state progression.
type TaskRepository interface {
	List(ctx context.Context, f TaskFilter) ([]models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (int64, error)
	Update(ctx context.Context, id int64, p TaskPatch) error
	Delete(ctx context.Context, id int64) error
	// Advance moves the task to the next state in the task-state
	// list's natural order, or reports a no-op when already last.
	Advance(ctx context.Context, id int64) (*models.AdvanceResult, error)
}

// UserRepository guards administration behind the acting user's role:
// only Admin may create, update or delete users. Deleting the last
// active admin is refused with ErrLastAdmin.
type UserRepository interface {
	List(ctx context.Context, f UserFilter) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, actor models.Actor, user *models.User, plainPassword string) (int64, error)
	Update(ctx context.Context, actor models.Actor, id int64, p UserPatch) error
	Delete(ctx context.Context, actor models.Actor, id int64) error
	TouchLastLogin(ctx context.Context, id int64) error
}

// LookupRepository reads the small reference tables. Table must be one
// of the models.Table* constants; rows come back in insertion order.
type LookupRepository interface {
	List(ctx context.Context, table string) ([]models.Lookup, error)
}

// GroupRepository manages lead groups, their user memberships and the
// single-group assignment of leads.
type GroupRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.LeadGroup, error)
	Get(ctx context.Context, id int64) (*models.LeadGroup, error)
	Create(ctx context.Context, group *models.LeadGroup) (int64, error)
	Update(ctx context.Context, id int64, p GroupPatch) error
	// Deactivate soft-deletes the group (is_active=false).
	Deactivate(ctx context.Context, id int64) error
	AddMember(ctx context.Context, groupID, userID int64, canManage bool) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	// AssignLead moves a lead into the group, or out of any group
	// when groupID is nil. A lead belongs to at most one group.
	AssignLead(ctx context.Context, leadID int64, groupID *int64) error
}

// TemplateRepository manages contact templates.
type TemplateRepository interface {
	List(ctx context.Context, templateType string, activeOnly bool) ([]models.ContactTemplate, error)
	Get(ctx context.Context, id int64) (*models.ContactTemplate, error)
	Create(ctx context.Context, t *models.ContactTemplate) (int64, error)
	Update(ctx context.Context, id int64, p TemplatePatch) error
	Delete(ctx context.Context, id int64) error
}

// SequenceRepository manages contact sequences and their ordered
// steps. There is no execution engine; this is definition CRUD only.
type SequenceRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.ContactSequence, error)
	Get(ctx context.Context, id int64) (*models.ContactSequence, error)
	Create(ctx context.Context, seq *models.ContactSequence) (int64, error)
	Update(ctx context.Context, id int64, p SequencePatch) error
	// SetSteps replaces the step list; step order is the slice order.
	SetSteps(ctx context.Context, id int64, steps []models.SequenceStep) error
	Delete(ctx context.Context, id int64) error
}

// BrokerLinkRepository manages broker affiliate links.
type BrokerLinkRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.BrokerLink, error)
	Get(ctx context.Context, id int64) (*models.BrokerLink, error)
	Create(ctx context.Context, link *models.BrokerLink) (int64, error)
	Update(ctx context.Context, id int64, p BrokerLinkPatch) error
	Delete(ctx context.Context, id int64) error
}

// ScriptRepository manages call/chat scripts.
type ScriptRepository interface {
	List(ctx context.Context, category string, activeOnly bool) ([]models.Script, error)
	Get(ctx context.Context, id int64) (*models.Script, error)
	Create(ctx context.Context, script *models.Script) (int64, error)
	Update(ctx context.Context, id int64, p ScriptPatch) error
	Delete(ctx context.Context, id int64) error
}

// SettingRepository is the flat key/value settings store. Values are
// always strings; callers handle type conversion.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Set(ctx context.Context, key, value, description string) error
	List(ctx context.Context, prefix string) ([]models.Setting, error)
}

// ActivityRepository is the append-only audit trail. Log never
// surfaces an error to the caller: failures are logged to the
// operator console and swallowed.
type ActivityRepository interface {
	Log(ctx context.Context, entry models.ActivityLogEntry)
	List(ctx context.Context, limit int) ([]models.ActivityLogEntry, error)
}

// Store aggregates the repositories of one backend. Constructed by
// store/relational or store/supabase, never both in one process.
type Store struct {
	Leads       LeadRepository
	Tasks       TaskRepository
	Users       UserRepository
	Lookups     LookupRepository
	Groups      GroupRepository
	Templates   TemplateRepository
	Sequences   SequenceRepository
	BrokerLinks BrokerLinkRepository
	Scripts     ScriptRepository
	Settings    SettingRepository
	Activity    ActivityRepository

	// BackupFunc produces a best-effort snapshot and returns the
	// path of the created artifact.
	BackupFunc func(ctx context.Context) (string, error)
	CloseFunc  func() error
}

// Backup writes a best-effort snapshot of the backend and returns the
// created artifact's path. For the remote store the export is not a
// consistent snapshot: entities are fetched in separate calls.
func (s *Store) Backup(ctx context.Context) (string, error) {
	if s.BackupFunc == nil {
		return "", errors.New("backup not supported by this backend")
	}
	return s.BackupFunc(ctx)
}

// Close releases the backend connection, if any.
func (s *Store) Close() error {
	if s.CloseFunc == nil {
		return nil
	}
	return s.CloseFunc()
}

// ForRole returns a view of the store appropriate for the given
// viewer role. For the restricted Tester role every lead, task and
// user read, list or single record, passes through the
// sensitive-data redactor. All other roles get the store unchanged.
func (s *Store) ForRole(roleName string) *Store {
	if roleName != models.RoleTester {
		return s
	}
	view := *s
	view.Leads = redactedLeadRepo{s.Leads}
	view.Tasks = redactedTaskRepo{s.Tasks}
	view.Users = redactedUserRepo{s.Users}
	return &view
}

// ValidLookupTable reports whether table names one of the lookup
// tables exposed by LookupRepository.
func ValidLookupTable(table string) bool {
	switch table {
	case models.TableLeadStates, models.TableLeadPriorities, models.TableLeadCategories,
		models.TableLeadSources, models.TableTaskStates, models.TableTaskTypes,
		models.TableRoles, models.TableDepartments:
		return true
	}
	return false
}

// NormalizeLimit applies the default list limit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
