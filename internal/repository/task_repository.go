package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yuridamin/quadro-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	if task.Labels == nil {
		task.Labels = models.StringList{}
	}
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindByExactTitle finds an owner's task by exact title match
func (r *GormTaskRepository) FindByExactTitle(ownerID uint64, title string) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Where("user_id = ? AND title = ?", ownerID, title).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByTitleFold finds an owner's task by case-insensitive exact title match
func (r *GormTaskRepository) FindByTitleFold(ownerID uint64, title string) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Where("user_id = ? AND LOWER(title) = ?", ownerID, strings.ToLower(title)).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByTitleContains finds an owner's task whose title contains the fragment
func (r *GormTaskRepository) FindByTitleContains(ownerID uint64, fragment string) (*models.Task, error) {
	var task models.Task
	pattern := "%" + strings.ToLower(fragment) + "%"
	err := r.db.
		Where("user_id = ? AND LOWER(title) LIKE ?", ownerID, pattern).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter, with total count
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := applyTaskFilter(r.db.Model(&models.Task{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.SortByDeadline {
		listQuery = listQuery.Order("CASE WHEN tasks.deadline IS NULL THEN 1 ELSE 0 END, tasks.deadline ASC")
	} else {
		listQuery = listQuery.Order("tasks.created_at ASC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// TitlesByOwner lists all task titles belonging to an owner
func (r *GormTaskRepository) TitlesByOwner(ownerID uint64) ([]string, error) {
	var titles []string
	err := r.db.Model(&models.Task{}).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Pluck("title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// Update saves all fields of a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// UpdateFields updates selected columns of a task
func (r *GormTaskRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a task and its checklist items in one transaction
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// BulkUpdate updates all tasks matching the filter, returning the count
func (r *GormTaskRepository) BulkUpdate(filter TaskFilter, fields map[string]interface{}) (int64, error) {
	result := applyTaskFilter(r.db.Model(&models.Task{}), filter).Updates(fields)
	return result.RowsAffected, result.Error
}

// BulkDelete removes all tasks matching the filter together with their
// checklist items, returning the number of tasks removed
func (r *GormTaskRepository) BulkDelete(filter TaskFilter) (int64, error) {
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		if err := applyTaskFilter(tx.Model(&models.Task{}), filter).Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("task_id IN ?", ids).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}

		count = result.RowsAffected
		return nil
	})

	return count, err
}

// applyTaskFilter translates a TaskFilter into WHERE clauses. Deadline bounds
// compare the stored date string directly.
func applyTaskFilter(query *gorm.DB, filter TaskFilter) *gorm.DB {
	query = query.Where("tasks.user_id = ?", filter.UserID)

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.StatusNot != nil {
		query = query.Where("tasks.status <> ?", *filter.StatusNot)
	}
	if filter.ColumnID != nil {
		query = query.Where("tasks.column_id = ?", *filter.ColumnID)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.Assignee != nil {
		query = query.Where("tasks.assignee = ?", *filter.Assignee)
	}
	if filter.DeadlineBefore != nil {
		query = query.Where("tasks.deadline < ?", *filter.DeadlineBefore)
	}
	if filter.DeadlineAfter != nil {
		query = query.Where("tasks.deadline > ?", *filter.DeadlineAfter)
	}
	if filter.DeadlineSet != nil {
		if *filter.DeadlineSet {
			query = query.Where("tasks.deadline IS NOT NULL")
		} else {
			query = query.Where("tasks.deadline IS NULL")
		}
	}

	return query
}
