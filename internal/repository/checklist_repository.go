package repository

import (
	"gorm.io/gorm"

	"github.com/yuridamin/quadro-api/internal/models"
)

// GormChecklistRepository is a GORM implementation of ChecklistRepository
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &GormChecklistRepository{db: db}
}

// CreateBatch creates checklist items preserving input order
func (r *GormChecklistRepository) CreateBatch(items []models.ChecklistItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// ListByTask lists a task's checklist items in creation order
func (r *GormChecklistRepository) ListByTask(taskID uint64) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	err := r.db.
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SetDone updates the done flag of a single item
func (r *GormChecklistRepository) SetDone(id uint64, done bool) error {
	return r.db.Model(&models.ChecklistItem{}).
		Where("id = ?", id).
		Update("done", done).Error
}
