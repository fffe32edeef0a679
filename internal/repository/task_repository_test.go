package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yuridamin/quadro-api/internal/models"
)

type repoTestEnv struct {
	db            *gorm.DB
	taskRepo      TaskRepository
	checklistRepo ChecklistRepository
	ownerID       uint64
	otherID       uint64
}

func setupRepoTestEnv(t *testing.T) repoTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.ChecklistItem{},
	)
	require.NoError(t, err)

	owner := models.User{Username: "owner", PasswordHash: "x"}
	require.NoError(t, db.Create(&owner).Error)
	other := models.User{Username: "other", PasswordHash: "x"}
	require.NoError(t, db.Create(&other).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return repoTestEnv{
		db:            db,
		taskRepo:      NewTaskRepository(db),
		checklistRepo: NewChecklistRepository(db),
		ownerID:       owner.ID,
		otherID:       other.ID,
	}
}

func (env repoTestEnv) seedTask(t *testing.T, task models.Task) models.Task {
	t.Helper()
	if task.UserID == 0 {
		task.UserID = env.ownerID
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedia
	}
	if task.Status == "" {
		task.Status = models.StatusBacklog
	}
	if task.ColumnID == "" {
		task.ColumnID = models.ColumnBacklog
	}
	require.NoError(t, env.taskRepo.Create(&task))
	return task
}

func strPtr(s string) *string { return &s }

func TestTaskRepository_FindByTitleVariants(t *testing.T) {
	env := setupRepoTestEnv(t)
	env.seedTask(t, models.Task{Title: "Deploy Production"})

	task, err := env.taskRepo.FindByExactTitle(env.ownerID, "Deploy Production")
	require.NoError(t, err)
	require.Equal(t, "Deploy Production", task.Title)

	_, err = env.taskRepo.FindByExactTitle(env.ownerID, "deploy production")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	task, err = env.taskRepo.FindByTitleFold(env.ownerID, "deploy production")
	require.NoError(t, err)
	require.Equal(t, "Deploy Production", task.Title)

	task, err = env.taskRepo.FindByTitleContains(env.ownerID, "producti")
	require.NoError(t, err)
	require.Equal(t, "Deploy Production", task.Title)

	// Other owners never see the task.
	_, err = env.taskRepo.FindByExactTitle(env.otherID, "Deploy Production")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_ListFilters(t *testing.T) {
	env := setupRepoTestEnv(t)
	env.seedTask(t, models.Task{
		Title:    "A",
		Status:   models.StatusDoing,
		ColumnID: models.ColumnDoing,
		Priority: models.PriorityAlta,
		Assignee: strPtr("maria"),
		Deadline: strPtr("2026-09-01"),
	})
	env.seedTask(t, models.Task{
		Title:    "B",
		Status:   models.StatusDone,
		ColumnID: models.ColumnDone,
		Deadline: strPtr("2026-09-10"),
	})
	env.seedTask(t, models.Task{Title: "C"})
	env.seedTask(t, models.Task{Title: "D", UserID: env.otherID})

	tasks, total, err := env.taskRepo.List(TaskFilter{UserID: env.ownerID})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, tasks, 3)

	doing := string(models.StatusDoing)
	tasks, _, err = env.taskRepo.List(TaskFilter{UserID: env.ownerID, Status: &doing})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "A", tasks[0].Title)

	done := string(models.StatusDone)
	tasks, _, err = env.taskRepo.List(TaskFilter{UserID: env.ownerID, StatusNot: &done})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	alta := string(models.PriorityAlta)
	tasks, _, err = env.taskRepo.List(TaskFilter{UserID: env.ownerID, Priority: &alta})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	maria := "maria"
	tasks, _, err = env.taskRepo.List(TaskFilter{UserID: env.ownerID, Assignee: &maria})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	before := "2026-09-05"
	tasks, _, err = env.taskRepo.List(TaskFilter{UserID: env.ownerID, DeadlineBefore: &before})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "A", tasks[0].Title)

	after := "2026-09-05"
	tasks, _, err = env.taskRepo.List(TaskFilter{UserID: env.ownerID, DeadlineAfter: &after})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "B", tasks[0].Title)

	withDeadline := true
	tasks, _, err = env.taskRepo.List(TaskFilter{UserID: env.ownerID, DeadlineSet: &withDeadline})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	withoutDeadline := false
	tasks, _, err = env.taskRepo.List(TaskFilter{UserID: env.ownerID, DeadlineSet: &withoutDeadline})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "C", tasks[0].Title)
}

func TestTaskRepository_ListSortByDeadlinePutsNullsLast(t *testing.T) {
	env := setupRepoTestEnv(t)
	env.seedTask(t, models.Task{Title: "Sem prazo"})
	env.seedTask(t, models.Task{Title: "Depois", Deadline: strPtr("2026-09-20")})
	env.seedTask(t, models.Task{Title: "Antes", Deadline: strPtr("2026-09-01")})

	tasks, _, err := env.taskRepo.List(TaskFilter{UserID: env.ownerID, SortByDeadline: true})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t, "Antes", tasks[0].Title)
	require.Equal(t, "Depois", tasks[1].Title)
	require.Equal(t, "Sem prazo", tasks[2].Title)
}

func TestTaskRepository_ListPagination(t *testing.T) {
	env := setupRepoTestEnv(t)
	for _, title := range []string{"1", "2", "3", "4", "5"} {
		env.seedTask(t, models.Task{Title: title})
	}

	tasks, total, err := env.taskRepo.List(TaskFilter{UserID: env.ownerID, Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, tasks, 2)
	require.Equal(t, "3", tasks[0].Title)
	require.Equal(t, "4", tasks[1].Title)
}

func TestTaskRepository_TitlesByOwner(t *testing.T) {
	env := setupRepoTestEnv(t)
	env.seedTask(t, models.Task{Title: "Primeira"})
	env.seedTask(t, models.Task{Title: "Segunda"})
	env.seedTask(t, models.Task{Title: "Alheia", UserID: env.otherID})

	titles, err := env.taskRepo.TitlesByOwner(env.ownerID)
	require.NoError(t, err)
	require.Equal(t, []string{"Primeira", "Segunda"}, titles)
}

func TestTaskRepository_DeleteRemovesChecklist(t *testing.T) {
	env := setupRepoTestEnv(t)
	task := env.seedTask(t, models.Task{Title: "Com itens"})
	require.NoError(t, env.checklistRepo.CreateBatch([]models.ChecklistItem{
		{TaskID: task.ID, Text: "um"},
		{TaskID: task.ID, Text: "dois"},
	}))

	require.NoError(t, env.taskRepo.Delete(task.ID))

	_, err := env.taskRepo.FindByID(task.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	items, err := env.checklistRepo.ListByTask(task.ID)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestTaskRepository_BulkUpdate(t *testing.T) {
	env := setupRepoTestEnv(t)
	env.seedTask(t, models.Task{Title: "A", Priority: models.PriorityBaixa})
	env.seedTask(t, models.Task{Title: "B", Priority: models.PriorityBaixa})
	env.seedTask(t, models.Task{Title: "C", Priority: models.PriorityAlta})

	baixa := string(models.PriorityBaixa)
	count, err := env.taskRepo.BulkUpdate(
		TaskFilter{UserID: env.ownerID, Priority: &baixa},
		map[string]interface{}{"priority": string(models.PriorityUrgente)},
	)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	urgente := string(models.PriorityUrgente)
	tasks, _, err := env.taskRepo.List(TaskFilter{UserID: env.ownerID, Priority: &urgente})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
}

func TestTaskRepository_BulkDelete(t *testing.T) {
	env := setupRepoTestEnv(t)
	a := env.seedTask(t, models.Task{Title: "A", Status: models.StatusDone, ColumnID: models.ColumnDone})
	require.NoError(t, env.checklistRepo.CreateBatch([]models.ChecklistItem{
		{TaskID: a.ID, Text: "item"},
	}))
	env.seedTask(t, models.Task{Title: "B"})

	done := string(models.StatusDone)
	count, err := env.taskRepo.BulkDelete(TaskFilter{UserID: env.ownerID, Status: &done})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	items, err := env.checklistRepo.ListByTask(a.ID)
	require.NoError(t, err)
	require.Empty(t, items)

	tasks, total, err := env.taskRepo.List(TaskFilter{UserID: env.ownerID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "B", tasks[0].Title)
}

// The cascade must run inside one transaction so a failure cannot leave
// orphaned checklist items behind.
func TestTaskRepository_BulkDeleteTransactionShape(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `tasks`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectExec("UPDATE `checklist_items` SET").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE `tasks` SET").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	count, err := repo.BulkDelete(TaskFilter{UserID: 7})
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_BulkDeleteNoMatchesSkipsDeletes(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `tasks`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	count, err := repo.BulkDelete(TaskFilter{UserID: 7})
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, mock.ExpectationsWereMet())
}
