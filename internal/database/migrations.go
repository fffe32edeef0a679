package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds the indexes the resolver and bulk filters lean on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Title resolution and owner scoping
		{"tasks", "idx_tasks_user_id_title", "user_id, title"},
		// Bulk filters
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_column_id", "column_id"},
		{"tasks", "idx_tasks_priority", "priority"},
		{"tasks", "idx_tasks_deadline", "deadline"},

		{"checklist_items", "idx_checklist_items_task_id", "task_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		zap.L().Info("Created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
