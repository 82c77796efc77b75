package models

import "time"

// BrokerLink is a broker affiliate link shown on the dashboard.
type BrokerLink struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	URL         string `gorm:"not null" json:"url"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Script is call/chat script content organized by type and category.
type Script struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	ScriptType string `json:"script_type"`
	Category   string `json:"category"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`

	CreatedBy *int64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
