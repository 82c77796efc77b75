package models

import "time"

// LeadGroup is a named collection of leads worked by a set of users.
// Deletion is soft (IsActive=false); a lead belongs to at most one
// group at a time via Lead.GroupID.
type LeadGroup struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by the store layer on detail reads
	Members []GroupMember `gorm:"-" json:"members,omitempty"`
}

// GroupMember assigns a user to a group, optionally with management
// rights over it.
type GroupMember struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	GroupID   int64     `gorm:"not null;index" json:"group_id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	CanManage bool      `gorm:"default:false" json:"can_manage"`
	CreatedAt time.Time `json:"created_at"`

	// Resolved display name, filled by the store layer
	UserName string `gorm:"-" json:"user_name,omitempty"`
}

func (GroupMember) TableName() string { return "lead_group_members" }
