package repository

import (
	"github.com/yuridamin/quadro-api/internal/models"
)

// TaskRepository defines the interface for task data access. Every query is
// scoped to an owner; nothing here reads tasks across users.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByExactTitle finds an owner's task by exact title match
	FindByExactTitle(ownerID uint64, title string) (*models.Task, error)

	// FindByTitleFold finds an owner's task by case-insensitive exact title match
	FindByTitleFold(ownerID uint64, title string) (*models.Task, error)

	// FindByTitleContains finds an owner's task whose title contains the
	// fragment, case-insensitively
	FindByTitleContains(ownerID uint64, fragment string) (*models.Task, error)

	// List retrieves tasks matching the filter, with total count
	List(filter TaskFilter) ([]models.Task, int64, error)

	// TitlesByOwner lists all task titles belonging to an owner
	TitlesByOwner(ownerID uint64) ([]string, error)

	// Update saves all fields of a task
	Update(task *models.Task) error

	// UpdateFields updates selected columns of a task
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Delete removes a task and its checklist items in one transaction
	Delete(id uint64) error

	// BulkUpdate updates all tasks matching the filter, returning the count
	BulkUpdate(filter TaskFilter, fields map[string]interface{}) (int64, error)

	// BulkDelete removes all tasks matching the filter together with their
	// checklist items, returning the number of tasks removed
	BulkDelete(filter TaskFilter) (int64, error)
}

// TaskFilter holds filtering options for task queries. UserID is mandatory;
// the deadline bounds compare the stored date string lexicographically,
// which is correct for zero-padded ISO dates.
type TaskFilter struct {
	UserID         uint64
	Status         *string
	StatusNot      *string
	ColumnID       *string
	Priority       *string
	Assignee       *string
	DeadlineBefore *string
	DeadlineAfter  *string
	DeadlineSet    *bool
	SortByDeadline bool
	Page           int
	PageSize       int
}

// ChecklistRepository defines the interface for checklist item data access
type ChecklistRepository interface {
	// CreateBatch creates checklist items preserving input order
	CreateBatch(items []models.ChecklistItem) error

	// ListByTask lists a task's checklist items in creation order
	ListByTask(taskID uint64) ([]models.ChecklistItem, error)

	// SetDone updates the done flag of a single item
	SetDone(id uint64, done bool) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
