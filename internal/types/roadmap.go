package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roadmap stores one generated preparation roadmap. A user has at most one
// row per company name; saving again for the same company replaces the whole
// payload (last write wins for that key only).
type Roadmap struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"not null;index;uniqueIndex:idx_roadmap_user_company;column:user_id" json:"user_id"`
	CompanyName string         `gorm:"not null;uniqueIndex:idx_roadmap_user_company;column:company_name" json:"company_name"`
	Payload     datatypes.JSON `gorm:"not null;column:payload" json:"payload"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Roadmap) TableName() string {
	return "roadmap"
}

func (r *Roadmap) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
