package dto

import (
	"time"

	"github.com/yuridamin/quadro-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// ChecklistItemDTO represents a checklist item in API responses
type ChecklistItemDTO struct {
	ID   uint64 `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Priority       models.TaskPriority `json:"priority"`
	Status         models.TaskStatus   `json:"status"`
	ColumnID       string              `json:"columnId"`
	Deadline       *string             `json:"deadline"`
	EstimatedHours *float64            `json:"estimatedHours"`
	WorkedHours    float64             `json:"workedHours"`
	Assignee       *string             `json:"assignee"`
	Labels         []string            `json:"labels"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Checklist      []ChecklistItemDTO  `json:"checklist,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToChecklistItemDTO converts a ChecklistItem model to ChecklistItemDTO
func ToChecklistItemDTO(item models.ChecklistItem) ChecklistItemDTO {
	return ChecklistItemDTO{
		ID:   item.ID,
		Text: item.Text,
		Done: item.Done,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	labels := task.Labels
	if labels == nil {
		labels = models.StringList{}
	}

	dto := TaskDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Priority:       task.Priority,
		Status:         task.Status,
		ColumnID:       task.ColumnID,
		Deadline:       task.Deadline,
		EstimatedHours: task.EstimatedHours,
		WorkedHours:    task.WorkedHours,
		Assignee:       task.Assignee,
		Labels:         labels,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	// Include checklist if preloaded
	if len(task.ChecklistItems) > 0 {
		dto.Checklist = make([]ChecklistItemDTO, len(task.ChecklistItems))
		for i, item := range task.ChecklistItems {
			dto.Checklist[i] = ToChecklistItemDTO(item)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
