package models

import "time"

// Roles an account can hold. The role is fixed at registration; no
// endpoint mutates it afterwards.
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// User represents a registered account.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	// Password holds the bcrypt hash once persisted. json:"-" keeps it
	// out of every response body.
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone" gorm:"type:varchar(10)" validate:"required,len=10,numeric"`
	City      string    `json:"city" gorm:"type:varchar(100)" validate:"required"`
	Country   string    `json:"country" gorm:"type:varchar(100)" validate:"required"`
	Role      string    `json:"role" gorm:"type:varchar(10)" validate:"required,oneof=Admin Staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
