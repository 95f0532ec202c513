package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceWindow represents a scheduled maintenance window shown on
// the status page
type MaintenanceWindow struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at" gorm:"not null;index"`
	EndsAt      time.Time `json:"ends_at" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for MaintenanceWindow
func (MaintenanceWindow) TableName() string {
	return "maintenance_windows"
}

// BeforeCreate assigns an ID when none was provided (GORM hook)
func (m *MaintenanceWindow) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
