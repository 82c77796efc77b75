package models

// Lookup is the shared shape of the small reference tables (lead
// states, priorities, categories, sources, task states, task types,
// roles, departments). Ordering of rows is their insertion order:
// for task states that order is the progression order.
type Lookup struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Lookup table names, shared by both store backends.
const (
	TableLeadStates     = "lead_states"
	TableLeadPriorities = "lead_priorities"
	TableLeadCategories = "lead_categories"
	TableLeadSources    = "lead_sources"
	TableTaskStates     = "task_states"
	TableTaskTypes      = "task_types"
	TableRoles          = "roles"
	TableDepartments    = "departments"
)

// Concrete lookup types so the relational engine migrates one table
// per kind.
type LeadState struct{ Lookup }

func (LeadState) TableName() string { return TableLeadStates }

type LeadPriority struct{ Lookup }

func (LeadPriority) TableName() string { return TableLeadPriorities }

type LeadCategory struct{ Lookup }

func (LeadCategory) TableName() string { return TableLeadCategories }

type LeadSource struct{ Lookup }

func (LeadSource) TableName() string { return TableLeadSources }

type TaskState struct{ Lookup }

func (TaskState) TableName() string { return TableTaskStates }

type TaskType struct{ Lookup }

func (TaskType) TableName() string { return TableTaskTypes }

type Role struct{ Lookup }

func (Role) TableName() string { return TableRoles }

type Department struct{ Lookup }

func (Department) TableName() string { return TableDepartments }
