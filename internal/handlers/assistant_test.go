package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yuridamin/quadro-api/internal/constants"
	"github.com/yuridamin/quadro-api/internal/database"
	"github.com/yuridamin/quadro-api/internal/dto"
	"github.com/yuridamin/quadro-api/internal/models"
	"github.com/yuridamin/quadro-api/internal/repository"
	"github.com/yuridamin/quadro-api/internal/services"
	"github.com/yuridamin/quadro-api/internal/ws"
)

// AssistantHandlerTestSuite defines the test suite for AssistantHandler
type AssistantHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	handler  *AssistantHandler
	taskRepo repository.TaskRepository
	user     *models.User
}

// SetupTest runs before each test
func (suite *AssistantHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.ChecklistItem{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.taskRepo = repository.NewTaskRepository(suite.db)
	checklistRepo := repository.NewChecklistRepository(suite.db)
	assistantService := services.NewAssistantService(suite.taskRepo, checklistRepo)
	taskService := services.NewTaskService(suite.taskRepo, checklistRepo)

	// No AI service in tests; the raw action endpoint does not need it.
	suite.handler = NewAssistantHandler(assistantService, nil, taskService, ws.NewHub())

	suite.user = &models.User{Username: "assistant-user", PasswordHash: "x"}
	suite.Require().NoError(suite.db.Create(suite.user).Error)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AssistantHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AssistantHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *AssistantHandlerTestSuite) TestExecuteActions_Success() {
	requestBody := map[string]interface{}{
		"actions": []map[string]interface{}{
			{"type": "create-task", "titulo": "Planejar sprint", "prioridade": "alta"},
			{"type": "move-task", "card": "Planejar sprint", "coluna": "doing"},
		},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/assistant/actions", body, suite.user.ID)

	suite.handler.ExecuteActions(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var report dto.ExecutionReport
	err := json.Unmarshal(w.Body.Bytes(), &report)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), report.Results, 2)
	assert.True(suite.T(), report.Results[0].Success)
	assert.True(suite.T(), report.Results[1].Success)

	task, err := suite.taskRepo.FindByExactTitle(suite.user.ID, "Planejar sprint")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ColumnDoing, task.ColumnID)
	assert.Equal(suite.T(), models.PriorityAlta, task.Priority)
}

func (suite *AssistantHandlerTestSuite) TestExecuteActions_FailuresReportedNotRaised() {
	requestBody := map[string]interface{}{
		"actions": []map[string]interface{}{
			{"type": "definitely-not-an-action"},
			{"type": "create-task", "titulo": "Ainda criada"},
		},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/assistant/actions", body, suite.user.ID)

	suite.handler.ExecuteActions(c)

	// Failed actions come back in the report; the request itself is fine.
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var report dto.ExecutionReport
	err := json.Unmarshal(w.Body.Bytes(), &report)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), report.Results, 2)
	assert.False(suite.T(), report.Results[0].Success)
	assert.Equal(suite.T(), "unknown action", report.Results[0].Error)
	assert.True(suite.T(), report.Results[1].Success)
}

func (suite *AssistantHandlerTestSuite) TestExecuteActions_InvalidBody() {
	c, w := suite.createAuthContext("POST", "/api/assistant/actions", []byte("not json"), suite.user.ID)

	suite.handler.ExecuteActions(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AssistantHandlerTestSuite) TestExecuteActions_Unauthorized() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/assistant/actions", bytes.NewReader([]byte(`{"actions":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.ExecuteActions(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AssistantHandlerTestSuite) TestChat_WithoutAIService() {
	body, _ := json.Marshal(map[string]string{"message": "cria um card"})

	c, w := suite.createAuthContext("POST", "/api/assistant/chat", body, suite.user.ID)

	suite.handler.Chat(c)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

func (suite *AssistantHandlerTestSuite) TestChat_InvalidBody() {
	c, w := suite.createAuthContext("POST", "/api/assistant/chat", []byte(`{}`), suite.user.ID)

	suite.handler.Chat(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSuite runs the test suite
func TestAssistantHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AssistantHandlerTestSuite))
}
