package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yuridamin/quadro-api/internal/models"
	"github.com/yuridamin/quadro-api/internal/repository"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
	ErrTitleEmpty    = errors.New("title cannot be empty")
	ErrNoItems       = errors.New("at least one checklist item is required")
)

// TaskService handles board CRUD business logic. All operations are scoped
// to the owner supplied by the caller.
type TaskService struct {
	taskRepo      repository.TaskRepository
	checklistRepo repository.ChecklistRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, checklistRepo repository.ChecklistRepository) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		checklistRepo: checklistRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	OwnerID        uint64
	Status         *string
	ColumnID       *string
	SortByDeadline bool
	Page           int
	PageSize       int
}

// ListTasks returns the owner's tasks matching the filters
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		UserID:         input.OwnerID,
		Status:         input.Status,
		ColumnID:       input.ColumnID,
		SortByDeadline: input.SortByDeadline,
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns one of the owner's tasks with its checklist
func (s *TaskService) GetTask(taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.findOwned(taskID, ownerID, "ChecklistItems")
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       string
	Column         string
	Deadline       *string
	EstimatedHours *float64
	Assignee       *string
	Labels         []string
	OwnerID        uint64
}

// CreateTask creates a task with normalized defaults
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	column := models.NormalizeColumn(input.Column)

	labels := models.StringList(input.Labels)
	if labels == nil {
		labels = models.StringList{}
	}

	task := &models.Task{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Priority:       models.NormalizePriority(input.Priority),
		Status:         models.TaskStatus(column),
		ColumnID:       column,
		Deadline:       input.Deadline,
		EstimatedHours: input.EstimatedHours,
		Assignee:       input.Assignee,
		Labels:         labels,
		UserID:         input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents input for a partial task update. Nil fields are
// left untouched; ClearDeadline removes the deadline.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Priority       *string
	Column         *string
	Deadline       *string
	ClearDeadline  bool
	EstimatedHours *float64
	WorkedHours    *float64
	Assignee       *string
	Labels         []string
}

// UpdateTask applies a partial update to one of the owner's tasks
func (s *TaskService) UpdateTask(taskID, ownerID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwned(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = models.NormalizePriority(*input.Priority)
	}
	if input.Column != nil {
		column := models.NormalizeColumn(*input.Column)
		task.ColumnID = column
		task.Status = models.TaskStatus(column)
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
	}
	if input.WorkedHours != nil {
		task.WorkedHours = *input.WorkedHours
	}
	if input.Assignee != nil {
		task.Assignee = input.Assignee
	}
	if input.Labels != nil {
		task.Labels = models.StringList(input.Labels)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes one of the owner's tasks together with its checklist
func (s *TaskService) DeleteTask(taskID, ownerID uint64) error {
	task, err := s.findOwned(taskID, ownerID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// AddChecklistItems appends checklist items to one of the owner's tasks,
// preserving order and skipping empty entries
func (s *TaskService) AddChecklistItems(taskID, ownerID uint64, texts []string) ([]models.ChecklistItem, error) {
	task, err := s.findOwned(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]models.ChecklistItem, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		items = append(items, models.ChecklistItem{TaskID: task.ID, Text: text})
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	if err := s.checklistRepo.CreateBatch(items); err != nil {
		return nil, fmt.Errorf("failed to create checklist items: %w", err)
	}

	return items, nil
}

// ListChecklistItems returns the checklist of one of the owner's tasks in
// creation order
func (s *TaskService) ListChecklistItems(taskID, ownerID uint64) ([]models.ChecklistItem, error) {
	task, err := s.findOwned(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	items, err := s.checklistRepo.ListByTask(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist: %w", err)
	}

	return items, nil
}

// SetChecklistItemDone marks a checklist item done or undone, verifying the
// item belongs to one of the owner's tasks
func (s *TaskService) SetChecklistItemDone(taskID, itemID, ownerID uint64, done bool) error {
	task, err := s.findOwned(taskID, ownerID)
	if err != nil {
		return err
	}

	items, err := s.checklistRepo.ListByTask(task.ID)
	if err != nil {
		return fmt.Errorf("failed to load checklist: %w", err)
	}

	for _, item := range items {
		if item.ID == itemID {
			return s.checklistRepo.SetDone(item.ID, done)
		}
	}

	return ErrTaskNotFound
}

// findOwned loads a task and verifies ownership. Foreign tasks are reported
// as not found so their existence is not leaked.
func (s *TaskService) findOwned(taskID, ownerID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != ownerID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}
