package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin    = "admin"
	RoleProvider = "provider"
	RoleCustomer = "customer"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;check:chk_users_role,role IN ('admin','provider','customer')" json:"role"`

	FullName string  `gorm:"size:100;not null" json:"full_name"`
	Category *string `gorm:"size:50;index" json:"category"`
	Bio      *string `gorm:"type:text" json:"bio"`
	Phone    *string `gorm:"size:20" json:"phone"`

	// JSON array of weekday names, e.g. ["Pazartesi","Çarşamba"]. NULL means every day.
	WorkingDays datatypes.JSON `gorm:"type:jsonb" json:"working_days"`
	AvatarURL   *string        `gorm:"size:512" json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}
