package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// URLStatus is the single source of truth for checklist completion. One row
// per (user, url); urls are compared by exact string equality after trimming,
// no scheme/host/trailing-slash normalization. Many roadmaps may reference
// the same url, they all read through this row.
type URLStatus struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	UserID    string    `gorm:"not null;index;uniqueIndex:idx_urlstatus_user_url;column:user_id" json:"-"`
	URL       string    `gorm:"not null;uniqueIndex:idx_urlstatus_user_url;column:url" json:"url"`
	Checked   bool      `gorm:"not null;column:checked" json:"checked"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (URLStatus) TableName() string {
	return "url_status"
}

func (u *URLStatus) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
