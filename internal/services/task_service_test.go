package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yuridamin/quadro-api/internal/models"
)

func setupTaskService(t *testing.T) (assistantTestEnv, *TaskService) {
	t.Helper()
	env := setupAssistantTestEnv(t)
	return env, NewTaskService(env.taskRepo, env.checklistRepo)
}

func TestTaskService_CreateNormalizesInput(t *testing.T) {
	env, svc := setupTaskService(t)

	task, err := svc.CreateTask(CreateTaskInput{
		Title:    "  Planejar release  ",
		Priority: "URGENT",
		Column:   "em andamento",
		OwnerID:  env.ownerID,
	})
	require.NoError(t, err)
	require.Equal(t, "Planejar release", task.Title)
	require.Equal(t, models.PriorityUrgente, task.Priority)
	require.Equal(t, models.ColumnDoing, task.ColumnID)
	require.Equal(t, models.StatusDoing, task.Status)
}

func TestTaskService_CreateRequiresTitle(t *testing.T) {
	env, svc := setupTaskService(t)

	_, err := svc.CreateTask(CreateTaskInput{Title: "   ", OwnerID: env.ownerID})
	require.ErrorIs(t, err, ErrTitleRequired)
}

func TestTaskService_UpdateColumnKeepsStatusInLockstep(t *testing.T) {
	env, svc := setupTaskService(t)
	task := env.mustCreateTask(t, models.Task{Title: "Mover"})

	column := "done"
	updated, err := svc.UpdateTask(task.ID, env.ownerID, UpdateTaskInput{Column: &column})
	require.NoError(t, err)
	require.Equal(t, models.ColumnDone, updated.ColumnID)
	require.Equal(t, models.StatusDone, updated.Status)
}

func TestTaskService_UpdateClearDeadline(t *testing.T) {
	env, svc := setupTaskService(t)
	deadline := "2026-09-30"
	task := env.mustCreateTask(t, models.Task{Title: "Com prazo", Deadline: &deadline})

	updated, err := svc.UpdateTask(task.ID, env.ownerID, UpdateTaskInput{ClearDeadline: true})
	require.NoError(t, err)
	require.Nil(t, updated.Deadline)
}

func TestTaskService_UpdateRejectsEmptyTitle(t *testing.T) {
	env, svc := setupTaskService(t)
	task := env.mustCreateTask(t, models.Task{Title: "Original"})

	empty := "  "
	_, err := svc.UpdateTask(task.ID, env.ownerID, UpdateTaskInput{Title: &empty})
	require.ErrorIs(t, err, ErrTitleEmpty)
}

func TestTaskService_ForeignTaskReadsAsNotFound(t *testing.T) {
	env, svc := setupTaskService(t)
	task := env.mustCreateTask(t, models.Task{Title: "Alheia", UserID: env.otherID})

	_, err := svc.GetTask(task.ID, env.ownerID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.DeleteTask(task.ID, env.ownerID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_AddChecklistItemsPreservesOrder(t *testing.T) {
	env, svc := setupTaskService(t)
	task := env.mustCreateTask(t, models.Task{Title: "Lista"})

	items, err := svc.AddChecklistItems(task.ID, env.ownerID, []string{" primeiro ", "", "segundo"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "primeiro", items[0].Text)
	require.Equal(t, "segundo", items[1].Text)

	stored, err := env.checklistRepo.ListByTask(task.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, "primeiro", stored[0].Text)
}

func TestTaskService_AddChecklistItemsRejectsAllEmpty(t *testing.T) {
	env, svc := setupTaskService(t)
	task := env.mustCreateTask(t, models.Task{Title: "Lista"})

	_, err := svc.AddChecklistItems(task.ID, env.ownerID, []string{"", "  "})
	require.ErrorIs(t, err, ErrNoItems)
}
