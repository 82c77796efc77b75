package models

import "time"

// Task represents a work item, optionally linked to a lead
type Task struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Classification references (lookup table ids)
	TypeID     *int64 `json:"type_id"`
	StateID    *int64 `gorm:"index" json:"state_id"`
	PriorityID *int64 `json:"priority_id"`

	AssignedTo *int64 `gorm:"index" json:"assigned_to"`

	// Optional linked lead
	LeadID *int64 `gorm:"index" json:"lead_id"`

	DueDate *time.Time `json:"due_date"`

	// Audit
	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Resolved display fields, filled by the store layer
	TypeName       string `gorm:"-" json:"type_name,omitempty"`
	StateName      string `gorm:"-" json:"state_name,omitempty"`
	PriorityName   string `gorm:"-" json:"priority_name,omitempty"`
	AssignedToName string `gorm:"-" json:"assigned_to_name,omitempty"`

	// Denormalized from the linked lead for display
	LeadName  string `gorm:"-" json:"lead_name,omitempty"`
	LeadPhone string `gorm:"-" json:"lead_phone,omitempty"`
}

// AdvanceResult reports the outcome of moving a task to the next
// state in the ordered task-state list.
type AdvanceResult struct {
	Moved     bool   `json:"moved"`
	FromState string `json:"from_state,omitempty"`
	ToState   string `json:"to_state,omitempty"`
	Message   string `json:"message"`
}
