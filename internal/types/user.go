package types

import (
	"time"
)

// User is the per-user profile record. The primary key is the opaque subject
// string issued by the external identity provider, not a local surrogate.
// JSON field names are part of the storage contract shared with the frontend.
type User struct {
	UserID    string    `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserName  string    `gorm:"not null;column:user_name" json:"user_name"`
	UserEmail string    `gorm:"not null;column:user_email" json:"user_email"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (User) TableName() string {
	return "user"
}
