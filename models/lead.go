package models

import (
	"strings"
	"time"
)

// Lead represents a sales lead/contact
type Lead struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// Contact info. Name is the combined representation used by the
	// remote store; FirstName/LastName is the relational shape. Both
	// are always populated before a lead is handed to callers.
	Name      string `gorm:"-" json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `gorm:"index" json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Position  string `json:"position"`

	// Classification references (lookup table ids)
	StateID    *int64 `gorm:"index" json:"state_id"`
	CategoryID *int64 `json:"category_id"`
	PriorityID *int64 `json:"priority_id"`
	SourceID   *int64 `json:"source_id"`

	// Ownership
	AssignedTo *int64 `gorm:"index" json:"assigned_to"`
	GroupID    *int64 `gorm:"index" json:"group_id"`

	// Commercial fields
	Budget            *float64   `json:"budget"`
	ExpectedCloseDate *time.Time `json:"expected_close_date"`

	Notes string `gorm:"type:text" json:"notes"`

	// Audit
	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Resolved display names, filled by the store layer
	StateName      string `gorm:"-" json:"state_name,omitempty"`
	CategoryName   string `gorm:"-" json:"category_name,omitempty"`
	PriorityName   string `gorm:"-" json:"priority_name,omitempty"`
	SourceName     string `gorm:"-" json:"source_name,omitempty"`
	AssignedToName string `gorm:"-" json:"assigned_to_name,omitempty"`
	GroupName      string `gorm:"-" json:"group_name,omitempty"`
}

// Normalize fills whichever name representation is missing so callers
// can rely on both the combined and the split form being present.
func (l *Lead) Normalize() {
	if l.Name == "" {
		l.Name = JoinName(l.FirstName, l.LastName)
	}
	if l.FirstName == "" && l.LastName == "" && l.Name != "" {
		l.FirstName, l.LastName = SplitName(l.Name)
	}
}

// JoinName combines first and last name into the remote store's
// single name field.
func JoinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// SplitName splits a combined name into first and last parts. The
// first word becomes the first name, everything after it the last
// name, matching how the remote store's single name field was built.
func SplitName(name string) (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}
