package models

import "time"

// Template types understood by the send-test endpoint.
const (
	TemplateTypeEmail    = "email"
	TemplateTypeTelegram = "telegram"
	TemplateTypeWhatsApp = "whatsapp"
)

// ContactTemplate is reusable messaging content with placeholder
// variables ({{first_name}}, {{company}}, ...) substituted at render
// time.
type ContactTemplate struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	TemplateType string `gorm:"default:'email'" json:"template_type"`
	Subject      string `json:"subject"`
	Body         string `gorm:"type:text" json:"body"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactSequence is an ordered multi-step automation definition.
// Only CRUD is implemented; there is no execution engine that
// schedules or sends steps.
type ContactSequence struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Description  string `json:"description"`
	TriggerEvent string `gorm:"default:'manual'" json:"trigger_event"`

	// Filter conditions on lead attributes, stored as a JSON object
	// ({"state_id": 2, "category_id": 1}) and interpreted by callers.
	Conditions string `gorm:"type:text" json:"conditions"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Ordered by StepOrder; filled by the store layer on detail reads
	Steps []SequenceStep `gorm:"foreignKey:SequenceID" json:"steps,omitempty"`
}

// SequenceStep references a template to send after a delay, in order.
type SequenceStep struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	SequenceID int64 `gorm:"not null;index" json:"sequence_id"`
	TemplateID int64 `gorm:"not null" json:"template_id"`
	StepOrder  int   `gorm:"not null" json:"step_order"`
	DelayHours int   `gorm:"default:0" json:"delay_hours"`

	// Resolved display name, filled by the store layer
	TemplateName string `gorm:"-" json:"template_name,omitempty"`
}

func (SequenceStep) TableName() string { return "contact_sequence_steps" }

func (ContactSequence) TableName() string { return "contact_sequences" }
