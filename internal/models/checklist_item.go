package models

import (
	"time"

	"gorm.io/gorm"
)

// ChecklistItem belongs to exactly one task for its whole life. Deleting a
// task deletes its items first so no orphans remain.
type ChecklistItem struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	TaskID uint64 `gorm:"not null;index" json:"task_id"`
	Text   string `gorm:"type:varchar(500);not null" json:"text"`
	Done   bool   `gorm:"not null;default:false" json:"done"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}
