package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yuridamin/quadro-api/internal/dto"
	apierrors "github.com/yuridamin/quadro-api/internal/errors"
	"github.com/yuridamin/quadro-api/internal/middleware"
	"github.com/yuridamin/quadro-api/internal/services"
	"github.com/yuridamin/quadro-api/internal/utils"
)

// TaskHandler serves the board REST API used by the front-end directly,
// outside the assistant path.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the current user's tasks, filterable by status or column
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		OwnerID:        userID,
		SortByDeadline: c.Query("sort") == "deadline",
		Page:           params.Page,
		PageSize:       params.Limit,
	}
	if status := c.Query("status"); status != "" {
		input.Status = &status
	}
	if column := c.Query("column"); column != "" {
		input.ColumnID = &column
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a specific task with its checklist
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title          string   `json:"title" binding:"required"`
		Description    string   `json:"description"`
		Priority       string   `json:"priority"`
		Column         string   `json:"column"`
		Deadline       *string  `json:"deadline"`
		EstimatedHours *float64 `json:"estimatedHours"`
		Assignee       *string  `json:"assignee"`
		Labels         []string `json:"labels"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		Column:         req.Column,
		Deadline:       req.Deadline,
		EstimatedHours: req.EstimatedHours,
		Assignee:       req.Assignee,
		Labels:         req.Labels,
		OwnerID:        userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task. Raw JSON is parsed so that
// sending null for the deadline clears it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if v, ok := rawReq["title"].(string); ok {
		input.Title = &v
	}
	if v, ok := rawReq["description"].(string); ok {
		input.Description = &v
	}
	if v, ok := rawReq["priority"].(string); ok {
		input.Priority = &v
	}
	if v, ok := rawReq["column"].(string); ok {
		input.Column = &v
	}
	if _, present := rawReq["deadline"]; present {
		if rawReq["deadline"] == nil {
			input.ClearDeadline = true
		} else if v, ok := rawReq["deadline"].(string); ok {
			input.Deadline = &v
		}
	}
	if v, ok := rawReq["estimatedHours"].(float64); ok {
		input.EstimatedHours = &v
	}
	if v, ok := rawReq["workedHours"].(float64); ok {
		input.WorkedHours = &v
	}
	if v, ok := rawReq["assignee"].(string); ok {
		input.Assignee = &v
	}
	if raw, ok := rawReq["labels"].([]any); ok {
		labels := make([]string, 0, len(raw))
		for _, entry := range raw {
			if s, ok := entry.(string); ok {
				labels = append(labels, s)
			}
		}
		input.Labels = labels
	}

	task, err := h.taskService.UpdateTask(taskID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its checklist items
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// AddChecklist appends checklist items to a task
func (h *TaskHandler) AddChecklist(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddChecklistRequest struct {
		Items []string `json:"items" binding:"required"`
	}

	var req AddChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	items, err := h.taskService.AddChecklistItems(taskID, userID, req.Items)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	itemDTOs := make([]dto.ChecklistItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = dto.ToChecklistItemDTO(item)
	}

	c.JSON(http.StatusCreated, gin.H{"items": itemDTOs})
}

// ListChecklist returns a task's checklist items
func (h *TaskHandler) ListChecklist(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.taskService.ListChecklistItems(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	itemDTOs := make([]dto.ChecklistItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = dto.ToChecklistItemDTO(item)
	}

	c.JSON(http.StatusOK, gin.H{"items": itemDTOs})
}

// SetChecklistItemDone marks a checklist item done or undone
func (h *TaskHandler) SetChecklistItemDone(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	type SetDoneRequest struct {
		Done *bool `json:"done" binding:"required"`
	}

	var req SetDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.SetChecklistItemDone(taskID, itemID, userID, *req.Done); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checklist item updated"})
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrNoItems):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
