package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yuridamin/quadro-api/internal/dto"
	apierrors "github.com/yuridamin/quadro-api/internal/errors"
	"github.com/yuridamin/quadro-api/internal/middleware"
	"github.com/yuridamin/quadro-api/internal/services"
	"github.com/yuridamin/quadro-api/internal/ws"
)

// AssistantHandler exposes the natural-language command layer: free text in,
// an executed action batch and its report out.
type AssistantHandler struct {
	assistantService *services.AssistantService
	aiService        *services.AIService
	taskService      *services.TaskService
	hub              *ws.Hub
}

// NewAssistantHandler creates a new AssistantHandler. aiService may be nil
// when no API key is configured; the raw action endpoint keeps working.
func NewAssistantHandler(assistantService *services.AssistantService, aiService *services.AIService, taskService *services.TaskService, hub *ws.Hub) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		aiService:        aiService,
		taskService:      taskService,
		hub:              hub,
	}
}

// Chat translates a free-form message into actions and executes them.
func (h *AssistantHandler) Chat(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ChatRequest struct {
		Message string `json:"message" binding:"required"`
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY.")
		return
	}

	// The generator gets the current card titles so it can reference them,
	// but everything it returns is still resolved and validated per action.
	tasks, _, err := h.taskService.ListTasks(services.ListTasksInput{OwnerID: userID})
	if err != nil {
		apierrors.InternalError(c, "Failed to load board")
		return
	}
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}

	actions, err := h.aiService.GenerateActions(c.Request.Context(), req.Message, titles)
	if err != nil {
		apierrors.InternalError(c, "Failed to interpret request")
		return
	}

	results := h.assistantService.Execute(userID, actions)
	h.hub.NotifyBoardChanged(userID)

	c.JSON(http.StatusOK, dto.ExecutionReport{Results: results})
}

// ExecuteActions runs a pre-built action batch. This is the boundary the
// dispatcher contract is written against: an untyped action list plus the
// session's owner identity.
func (h *AssistantHandler) ExecuteActions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ExecuteRequest struct {
		Actions []map[string]interface{} `json:"actions" binding:"required"`
	}

	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	results := h.assistantService.Execute(userID, req.Actions)
	h.hub.NotifyBoardChanged(userID)

	c.JSON(http.StatusOK, dto.ExecutionReport{Results: results})
}
