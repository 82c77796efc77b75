package models

import "time"

// Role names with special meaning for the data layer.
const (
	RoleAdmin  = "Admin"
	RoleTester = "Tester"
)

// User represents an operator account
type User struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"index" json:"email"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	// Never serialized; hashed at write time if a plaintext password
	// is supplied.
	PasswordHash string `gorm:"not null" json:"-"`

	RoleID       *int64 `gorm:"index" json:"role_id"`
	DepartmentID *int64 `json:"department_id"`

	IsActive bool `gorm:"default:true" json:"is_active"`
	IsAdmin  bool `gorm:"default:false" json:"is_admin"`

	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Resolved display fields, filled by the store layer
	RoleName       string `gorm:"-" json:"role_name,omitempty"`
	DepartmentName string `gorm:"-" json:"department_name,omitempty"`
}

// Actor identifies the user performing a privileged operation. The
// data layer trusts the role name handed to it by the auth layer.
type Actor struct {
	ID   int64
	Role string
}

// IsAdminRole reports whether the actor may perform user
// administration.
func (a Actor) IsAdminRole() bool {
	return a.Role == RoleAdmin
}

// DisplayName returns the user's full name, falling back to the
// username when no name is set.
func (u *User) DisplayName() string {
	name := JoinName(u.FirstName, u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
