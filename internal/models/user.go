package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an administrative user of the system
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	EncryptedPassword string    `gorm:"column:encrypted_password;not null" json:"-"`
	FullName          string    `json:"full_name"`
	Role              string    `gorm:"default:staff" json:"role"`
	Status            string    `gorm:"default:active" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// Role constants
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleStaff
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// IsActive returns true if the user account is active
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		Status:   u.Status,
	}
}
