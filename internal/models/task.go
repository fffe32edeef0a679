package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityBaixa   TaskPriority = "baixa"
	PriorityMedia   TaskPriority = "media"
	PriorityAlta    TaskPriority = "alta"
	PriorityUrgente TaskPriority = "urgente"
)

type TaskStatus string

const (
	StatusBacklog TaskStatus = "backlog"
	StatusDoing   TaskStatus = "doing"
	StatusReview  TaskStatus = "review"
	StatusDone    TaskStatus = "done"
)

// Board column identifiers. Status mirrors the column, except for "review"
// which only exists as a status.
const (
	ColumnBacklog = "backlog"
	ColumnDoing   = "doing"
	ColumnDone    = "done"
)

// StringList stores an ordered list of labels as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal labels: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported labels column type %T", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'media'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'backlog'" json:"status"`
	// ColumnID mirrors Status for board placement and is updated in lockstep
	// with it by every mutation path.
	ColumnID string `gorm:"type:varchar(20);not null;default:'backlog'" json:"columnId"`
	// Deadline is a plain date string (YYYY-MM-DD...), stored verbatim and
	// compared on its date prefix, never parsed as a timestamp.
	Deadline       *string    `gorm:"type:varchar(30)" json:"deadline"`
	EstimatedHours *float64   `json:"estimatedHours"`
	WorkedHours    float64    `gorm:"not null;default:0" json:"workedHours"`
	Assignee       *string    `gorm:"type:varchar(255)" json:"assignee"`
	Labels         StringList `gorm:"type:text" json:"labels"`
	UserID         uint64     `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	ChecklistItems []ChecklistItem `gorm:"foreignKey:TaskID" json:"checklist_items,omitempty"`
}
