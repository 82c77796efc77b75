package models

import "time"

// Setting is a flat key/value pair. Keys carry a category prefix
// (e.g. "company_name", "telegram_chat_id"); values are always
// strings and callers handle type conversion.
type Setting struct {
	Key         string    `gorm:"primaryKey;column:key" json:"key"`
	Value       string    `gorm:"type:text" json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivityLogEntry is an append-only audit record. Entries are never
// updated or deleted by the application.
type ActivityLogEntry struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	UserID     *int64 `gorm:"index" json:"user_id"`
	Action     string `gorm:"not null" json:"action"`
	EntityType string `gorm:"index" json:"entity_type"`
	EntityID   *int64 `json:"entity_id"`
	Details    string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `json:"created_at"`

	// Resolved display name, filled by the store layer
	UserName string `gorm:"-" json:"user_name,omitempty"`
}

func (ActivityLogEntry) TableName() string { return "activity_log" }
