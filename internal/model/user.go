package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the only operator role the portal has.
var RoleAdmin = "admin"

// User is an operator account for the hiring dashboard.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username  string    `gorm:"type:text;unique;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      string    `gorm:"type:text;default:'admin'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
