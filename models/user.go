package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"size:20;default:user" json:"role"`

	// Account stays usable before activation; the flag only records whether
	// the mailed link was ever followed.
	IsActivated    bool   `gorm:"default:false" json:"is_activated"`
	ActivationLink string `gorm:"size:64" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
