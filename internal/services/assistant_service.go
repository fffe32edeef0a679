package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yuridamin/quadro-api/internal/constants"
	"github.com/yuridamin/quadro-api/internal/dto"
	"github.com/yuridamin/quadro-api/internal/models"
	"github.com/yuridamin/quadro-api/internal/repository"
	"github.com/yuridamin/quadro-api/internal/utils"
)

// Action type tags emitted by the text generation service. The three insight
// requests keep the names the generator prompt uses.
const (
	ActionCreateTask          = "create-task"
	ActionMoveTask            = "move-task"
	ActionAddChecklist        = "add-checklist"
	ActionDeleteTask          = "delete-task"
	ActionUpdateDeadline      = "update-deadline"
	ActionUpdateAssignee      = "update-assignee"
	ActionUpdateTitle         = "update-title"
	ActionUpdateDescription   = "update-description"
	ActionUpdateLabels        = "update-labels"
	ActionUpdatePriority      = "update-priority"
	ActionUpdateStatus        = "update-status"
	ActionUpdateEstimated     = "update-estimated-hours"
	ActionUpdateWorked        = "update-worked-hours"
	ActionAddWorked           = "add-worked-hours"
	ActionUpdateChecklistItem = "update-checklist-item"
	ActionBulkUpdate          = "bulk-update"
	ActionBulkDelete          = "bulk-delete"
	ActionCardsToday          = "cards_hoje"
	ActionCardsOverdue        = "cards_atrasados"
	ActionBurndown            = "burndown"
	ActionChatResponse        = "chat-response"
)

var (
	ErrCardNotFound = errors.New("card not found")
)

// AssistantService executes the action batches produced by the text
// generation service against the board. One batch runs strictly in input
// order; each action either succeeds or yields a failure outcome, and no
// failure aborts the rest of the batch.
type AssistantService struct {
	taskRepo      repository.TaskRepository
	checklistRepo repository.ChecklistRepository
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(taskRepo repository.TaskRepository, checklistRepo repository.ChecklistRepository) *AssistantService {
	return &AssistantService{
		taskRepo:      taskRepo,
		checklistRepo: checklistRepo,
	}
}

// Execute runs a batch of action descriptors on behalf of an owner. The
// returned report always has exactly one outcome per descriptor, in order.
func (s *AssistantService) Execute(ownerID uint64, actions []map[string]interface{}) []dto.ActionOutcome {
	outcomes := make([]dto.ActionOutcome, 0, len(actions))

	for _, action := range actions {
		outcome := s.executeOne(ownerID, action)
		if !outcome.Success {
			zap.L().Debug("assistant action failed",
				zap.String("type", outcome.Type),
				zap.String("error", outcome.Error),
				zap.Uint64("owner", ownerID),
			)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (s *AssistantService) executeOne(ownerID uint64, action map[string]interface{}) (outcome dto.ActionOutcome) {
	actionType, _ := firstString(action, []string{"type", "tipo"})

	// The batch contract is "never raise": a panic inside one handler is
	// converted into that action's failure outcome.
	defer func() {
		if r := recover(); r != nil {
			outcome = dto.FailOutcome(actionType, fmt.Sprintf("action execution failed: %v", r))
		}
	}()

	switch actionType {
	case ActionCreateTask:
		return s.createTask(ownerID, action)
	case ActionMoveTask:
		return s.moveTask(ownerID, action)
	case ActionAddChecklist:
		return s.addChecklist(ownerID, action)
	case ActionDeleteTask:
		return s.deleteTask(ownerID, action)
	case ActionUpdateDeadline:
		return s.updateDeadline(ownerID, action)
	case ActionUpdateAssignee:
		return s.updateStringField(ownerID, action, ActionUpdateAssignee, aliasAssignee, "assignee", "assignee is required")
	case ActionUpdateTitle:
		return s.updateStringField(ownerID, action, ActionUpdateTitle, aliasNewTitle, "title", "new title is required")
	case ActionUpdateDescription:
		return s.updateStringField(ownerID, action, ActionUpdateDescription, aliasDescription, "description", "description is required")
	case ActionUpdateLabels:
		return s.updateLabels(ownerID, action)
	case ActionUpdatePriority:
		return s.updatePriority(ownerID, action)
	case ActionUpdateStatus:
		return s.updateStatus(ownerID, action)
	case ActionUpdateEstimated:
		return s.updateHours(ownerID, action, ActionUpdateEstimated, aliasEstimated, "estimated_hours", false)
	case ActionUpdateWorked:
		return s.updateHours(ownerID, action, ActionUpdateWorked, aliasWorked, "worked_hours", false)
	case ActionAddWorked:
		return s.updateHours(ownerID, action, ActionAddWorked, aliasHours, "worked_hours", true)
	case ActionUpdateChecklistItem:
		return s.updateChecklistItem(ownerID, action)
	case ActionBulkUpdate:
		return s.bulkUpdate(ownerID, action)
	case ActionBulkDelete:
		return s.bulkDelete(ownerID, action)
	case ActionCardsToday:
		return s.insightCards(ownerID, ActionCardsToday, false)
	case ActionCardsOverdue:
		return s.insightCards(ownerID, ActionCardsOverdue, true)
	case ActionBurndown:
		return s.burndown(ownerID, action)
	case ActionChatResponse:
		message, _ := firstString(action, aliasMessage)
		out := dto.OkOutcome(ActionChatResponse)
		out.Message = message
		return out
	default:
		return dto.FailOutcome(actionType, "unknown action")
	}
}

// resolveTask locates an owner's task from an approximate title reference.
// Matching is layered, precision first: exact title, then case-insensitive
// exact, then case-insensitive substring — the last only when the cleaned
// input is longer than 3 characters, so short fragments cannot grab an
// arbitrary card.
func (s *AssistantService) resolveTask(ownerID uint64, rawTitle string) (*models.Task, error) {
	title := cleanCardTitle(rawTitle)
	if title == "" {
		return nil, ErrCardNotFound
	}

	task, err := s.taskRepo.FindByExactTitle(ownerID, title)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	task, err = s.taskRepo.FindByTitleFold(ownerID, title)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if len(title) > constants.SubstringMatchMinLength {
		task, err = s.taskRepo.FindByTitleContains(ownerID, title)
		if err == nil {
			return task, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, ErrCardNotFound
}

// resolveForAction resolves the card referenced by an action, returning a
// ready failure outcome when it cannot.
func (s *AssistantService) resolveForAction(ownerID uint64, action map[string]interface{}, actionType string) (*models.Task, string, *dto.ActionOutcome) {
	rawTitle, _ := firstString(action, aliasCardTitle)

	task, err := s.resolveTask(ownerID, rawTitle)
	if err != nil {
		out := dto.FailOutcome(actionType, err.Error())
		out.CardTitle = rawTitle
		return nil, rawTitle, &out
	}

	return task, rawTitle, nil
}

func (s *AssistantService) createTask(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	title, ok := firstString(action, aliasTitle)
	if !ok {
		return dto.FailOutcome(ActionCreateTask, "title is required")
	}

	priorityRaw, _ := firstString(action, aliasPriority)
	columnRaw, _ := firstString(action, aliasColumn)
	description, _ := firstString(action, aliasDescription)

	column := models.NormalizeColumn(columnRaw)

	task := &models.Task{
		Title:       title,
		Description: description,
		Priority:    models.NormalizePriority(priorityRaw),
		Status:      models.TaskStatus(column),
		ColumnID:    column,
		WorkedHours: 0,
		Labels:      models.StringList{},
		UserID:      ownerID,
	}

	if deadline, ok := firstString(action, aliasDeadline); ok {
		task.Deadline = &deadline
	}
	if list, isList, _ := firstList(action, aliasLabels); isList {
		task.Labels = toStringList(list)
	}

	if err := s.taskRepo.Create(task); err != nil {
		return dto.FailOutcome(ActionCreateTask, err.Error())
	}

	out := dto.OkOutcome(ActionCreateTask)
	out.CardTitle = title
	out.Data = map[string]interface{}{"task": dto.ToTaskDTO(*task)}
	return out
}

func (s *AssistantService) moveTask(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	task, rawTitle, fail := s.resolveForAction(ownerID, action, ActionMoveTask)
	if fail != nil {
		return *fail
	}

	columnRaw, _ := firstString(action, aliasColumn)
	column := models.NormalizeColumn(columnRaw)

	err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{
		"column_id": column,
		"status":    column,
	})
	if err != nil {
		return failCard(ActionMoveTask, rawTitle, err.Error())
	}

	out := dto.OkOutcome(ActionMoveTask)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{"column": column}
	return out
}

func (s *AssistantService) addChecklist(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	task, _, fail := s.resolveForAction(ownerID, action, ActionAddChecklist)
	if fail != nil {
		return *fail
	}

	list, _, _ := firstList(action, aliasItems)

	items := make([]models.ChecklistItem, 0, len(list))
	for _, entry := range list {
		text, ok := entry.(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue // empty entries are silently skipped
		}
		items = append(items, models.ChecklistItem{
			TaskID: task.ID,
			Text:   strings.TrimSpace(text),
		})
	}

	if err := s.checklistRepo.CreateBatch(items); err != nil {
		return failCard(ActionAddChecklist, task.Title, err.Error())
	}

	out := dto.OkOutcome(ActionAddChecklist)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{"itemsAdded": len(items)}
	return out
}

func (s *AssistantService) deleteTask(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	task, _, fail := s.resolveForAction(ownerID, action, ActionDeleteTask)
	if fail != nil {
		return *fail
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return failCard(ActionDeleteTask, task.Title, err.Error())
	}

	out := dto.OkOutcome(ActionDeleteTask)
	out.CardTitle = task.Title
	return out
}

func (s *AssistantService) updateDeadline(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	deadline, ok := firstString(action, aliasDeadline)
	if !ok {
		return dto.FailOutcome(ActionUpdateDeadline, "deadline value is required")
	}

	rawTitle, _ := firstString(action, aliasCardTitle)
	task, err := s.resolveTask(ownerID, rawTitle)
	if err != nil {
		out := failCard(ActionUpdateDeadline, rawTitle, err.Error())
		// Help the user correct the reference by listing what exists.
		if titles, listErr := s.taskRepo.TitlesByOwner(ownerID); listErr == nil {
			out.Data = map[string]interface{}{"availableCards": titles}
		}
		return out
	}

	// Deadline is stored verbatim, without date validation.
	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{"deadline": deadline}); err != nil {
		return failCard(ActionUpdateDeadline, task.Title, err.Error())
	}

	out := dto.OkOutcome(ActionUpdateDeadline)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{"deadline": deadline}
	return out
}

// updateStringField handles the update actions that set one required text
// column (assignee, title, description).
func (s *AssistantService) updateStringField(ownerID uint64, action map[string]interface{}, actionType string, aliases []string, column, missingMsg string) dto.ActionOutcome {
	value, ok := firstString(action, aliases)
	if !ok {
		return dto.FailOutcome(actionType, missingMsg)
	}

	task, rawTitle, fail := s.resolveForAction(ownerID, action, actionType)
	if fail != nil {
		return *fail
	}

	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{column: value}); err != nil {
		return failCard(actionType, rawTitle, err.Error())
	}

	out := dto.OkOutcome(actionType)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{column: value}
	return out
}

func (s *AssistantService) updateLabels(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	list, isList, present := firstList(action, aliasLabels)
	if !present || !isList {
		return dto.FailOutcome(ActionUpdateLabels, "labels must be a list")
	}

	task, _, fail := s.resolveForAction(ownerID, action, ActionUpdateLabels)
	if fail != nil {
		return *fail
	}

	labels := toStringList(list)
	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{"labels": labels}); err != nil {
		return failCard(ActionUpdateLabels, task.Title, err.Error())
	}

	out := dto.OkOutcome(ActionUpdateLabels)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{"labels": []string(labels)}
	return out
}

func (s *AssistantService) updatePriority(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	raw, ok := firstString(action, aliasPriority)
	if !ok {
		return dto.FailOutcome(ActionUpdatePriority, "priority is required")
	}

	task, rawTitle, fail := s.resolveForAction(ownerID, action, ActionUpdatePriority)
	if fail != nil {
		return *fail
	}

	// Normalized like every other priority-accepting path, so the stored
	// value is always one of the four enumerated priorities.
	priority := models.NormalizePriority(raw)
	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{"priority": priority}); err != nil {
		return failCard(ActionUpdatePriority, rawTitle, err.Error())
	}

	out := dto.OkOutcome(ActionUpdatePriority)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{"priority": string(priority)}
	return out
}

func (s *AssistantService) updateStatus(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	raw, ok := firstString(action, aliasStatus)
	if !ok {
		return dto.FailOutcome(ActionUpdateStatus, "status is required")
	}

	task, rawTitle, fail := s.resolveForAction(ownerID, action, ActionUpdateStatus)
	if fail != nil {
		return *fail
	}

	column := models.NormalizeColumn(raw)
	err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{
		"status":    column,
		"column_id": column,
	})
	if err != nil {
		return failCard(ActionUpdateStatus, rawTitle, err.Error())
	}

	out := dto.OkOutcome(ActionUpdateStatus)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{"status": column}
	return out
}

// updateHours handles the three numeric-hours actions. When additive is set
// the value is added to the current worked hours instead of replacing the
// column.
func (s *AssistantService) updateHours(ownerID uint64, action map[string]interface{}, actionType string, aliases []string, column string, additive bool) dto.ActionOutcome {
	value, ok := firstNumber(action, aliases)
	if !ok {
		return dto.FailOutcome(actionType, "a numeric hours value is required")
	}

	task, rawTitle, fail := s.resolveForAction(ownerID, action, actionType)
	if fail != nil {
		return *fail
	}

	if additive {
		value = task.WorkedHours + value
	}

	if err := s.taskRepo.UpdateFields(task.ID, map[string]interface{}{column: value}); err != nil {
		return failCard(actionType, rawTitle, err.Error())
	}

	out := dto.OkOutcome(actionType)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{column: value}
	return out
}

func (s *AssistantService) updateChecklistItem(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	itemTitle, ok := firstString(action, aliasItemTitle)
	if !ok {
		return dto.FailOutcome(ActionUpdateChecklistItem, "checklist item reference is required")
	}
	done, _ := firstBool(action, aliasDone)

	task, _, fail := s.resolveForAction(ownerID, action, ActionUpdateChecklistItem)
	if fail != nil {
		return *fail
	}

	items, err := s.checklistRepo.ListByTask(task.ID)
	if err != nil {
		return failCard(ActionUpdateChecklistItem, task.Title, err.Error())
	}
	if len(items) == 0 {
		return failCard(ActionUpdateChecklistItem, task.Title, "card has no checklist items")
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
	}

	match := utils.BestChecklistMatch(texts, itemTitle)
	if !match.Accepted {
		out := failCard(ActionUpdateChecklistItem, task.Title, "checklist item not found")
		out.Data = map[string]interface{}{
			"bestMatch": match.Text,
			"score":     match.Score,
		}
		return out
	}

	item := items[match.Index]
	if err := s.checklistRepo.SetDone(item.ID, done); err != nil {
		return failCard(ActionUpdateChecklistItem, task.Title, err.Error())
	}

	out := dto.OkOutcome(ActionUpdateChecklistItem)
	out.CardTitle = task.Title
	out.Data = map[string]interface{}{"item": item.Text, "done": done}
	return out
}

func (s *AssistantService) bulkUpdate(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	where, _ := firstMap(action, aliasWhere)
	filter := buildBulkFilter(ownerID, where)

	set, _ := firstMap(action, aliasSet)
	fields := buildBulkSet(set)
	if len(fields) == 0 {
		return dto.FailOutcome(ActionBulkUpdate, "bulk update requires at least one field to set")
	}

	count, err := s.taskRepo.BulkUpdate(filter, fields)
	if err != nil {
		return dto.FailOutcome(ActionBulkUpdate, err.Error())
	}

	out := dto.OkOutcome(ActionBulkUpdate)
	out.Data = map[string]interface{}{"updated": count}
	return out
}

func (s *AssistantService) bulkDelete(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	where, _ := firstMap(action, aliasWhere)
	filter := buildBulkFilter(ownerID, where)

	count, err := s.taskRepo.BulkDelete(filter)
	if err != nil {
		return dto.FailOutcome(ActionBulkDelete, err.Error())
	}

	out := dto.OkOutcome(ActionBulkDelete)
	out.Data = map[string]interface{}{"deleted": count}
	return out
}

// insightCards answers the "due today" and "overdue" insight requests. The
// deadline is compared on its literal YYYY-MM-DD prefix against the
// server-local calendar date; done cards are always excluded.
func (s *AssistantService) insightCards(ownerID uint64, actionType string, overdue bool) dto.ActionOutcome {
	deadlineSet := true
	doneStatus := string(models.StatusDone)

	tasks, _, err := s.taskRepo.List(repository.TaskFilter{
		UserID:      ownerID,
		DeadlineSet: &deadlineSet,
		StatusNot:   &doneStatus,
	})
	if err != nil {
		return dto.FailOutcome(actionType, err.Error())
	}

	today := time.Now().Format(constants.DateLayout)

	cards := make([]map[string]interface{}, 0)
	for _, task := range tasks {
		day := datePart(*task.Deadline)

		matched := day == today
		if overdue {
			matched = day < today
		}
		if !matched {
			continue
		}

		cards = append(cards, map[string]interface{}{
			"title":    task.Title,
			"deadline": *task.Deadline,
			"column":   task.ColumnID,
		})
	}

	out := dto.OkOutcome(actionType)
	out.Data = map[string]interface{}{
		"count": len(cards),
		"cards": cards,
	}
	return out
}

func (s *AssistantService) burndown(ownerID uint64, action map[string]interface{}) dto.ActionOutcome {
	var tasks []models.Task

	if rawTitle, ok := firstString(action, aliasCardTitle); ok {
		task, err := s.resolveTask(ownerID, rawTitle)
		if err != nil {
			return failCard(ActionBurndown, rawTitle, err.Error())
		}
		tasks = []models.Task{*task}
	} else if columnRaw, ok := firstString(action, []string{"coluna", "columnId", "column"}); ok {
		columnID := strings.ToLower(strings.TrimSpace(columnRaw))
		list, _, err := s.taskRepo.List(repository.TaskFilter{UserID: ownerID, ColumnID: &columnID})
		if err != nil {
			return dto.FailOutcome(ActionBurndown, err.Error())
		}
		tasks = list
	} else {
		list, _, err := s.taskRepo.List(repository.TaskFilter{UserID: ownerID})
		if err != nil {
			return dto.FailOutcome(ActionBurndown, err.Error())
		}
		tasks = list
	}

	if len(tasks) == 0 {
		return dto.FailOutcome(ActionBurndown, "no cards found in the requested scope")
	}

	var estimatedTotal, workedTotal float64
	noEstimate := make([]string, 0)
	overworked := make([]map[string]interface{}, 0)

	for _, task := range tasks {
		estimated := 0.0
		if task.EstimatedHours != nil {
			estimated = *task.EstimatedHours
		}

		estimatedTotal += estimated
		workedTotal += task.WorkedHours

		if estimated == 0 {
			noEstimate = append(noEstimate, task.Title)
			continue
		}
		if task.WorkedHours > estimated {
			overworked = append(overworked, map[string]interface{}{
				"title":  task.Title,
				"excess": task.WorkedHours - estimated,
			})
		}
	}

	out := dto.OkOutcome(ActionBurndown)
	out.Data = map[string]interface{}{
		"taskCount":      len(tasks),
		"estimatedTotal": estimatedTotal,
		"workedTotal":    workedTotal,
		"balance":        estimatedTotal - workedTotal,
		"noEstimate":     noEstimate,
		"overworked":     overworked,
	}
	return out
}

// buildBulkFilter translates a where object into an owner-scoped task
// filter. Only priority is normalized; the deadline bounds are compared as
// date strings.
func buildBulkFilter(ownerID uint64, where map[string]interface{}) repository.TaskFilter {
	filter := repository.TaskFilter{UserID: ownerID}
	if where == nil {
		return filter
	}

	if v, ok := firstString(where, aliasPriority); ok {
		priority := string(models.NormalizePriority(v))
		filter.Priority = &priority
	}
	if v, ok := firstString(where, aliasAssignee); ok {
		filter.Assignee = &v
	}
	if v, ok := firstString(where, []string{"status"}); ok {
		filter.Status = &v
	}
	if v, ok := firstString(where, []string{"coluna", "columnId", "column"}); ok {
		filter.ColumnID = &v
	}
	if v, ok := firstString(where, []string{"prazoAntes", "deadlineBefore"}); ok {
		filter.DeadlineBefore = &v
	}
	if v, ok := firstString(where, []string{"prazoDepois", "deadlineAfter"}); ok {
		filter.DeadlineAfter = &v
	}

	return filter
}

// buildBulkSet translates a set object into update columns. Priority is
// normalized and status lower-cased; when status or column changes, both are
// written so they stay in lockstep (the review status has no column of its
// own and leaves the column untouched).
func buildBulkSet(set map[string]interface{}) map[string]interface{} {
	fields := map[string]interface{}{}
	if set == nil {
		return fields
	}

	if v, ok := firstString(set, aliasPriority); ok {
		fields["priority"] = string(models.NormalizePriority(v))
	}
	if v, ok := firstString(set, []string{"status"}); ok {
		status := strings.ToLower(v)
		fields["status"] = status
		if status != string(models.StatusReview) {
			fields["column_id"] = models.NormalizeColumn(status)
		}
	} else if v, ok := firstString(set, aliasColumn); ok {
		column := models.NormalizeColumn(v)
		fields["column_id"] = column
		fields["status"] = column
	}
	if v, ok := firstString(set, aliasAssignee); ok {
		fields["assignee"] = v
	}
	if v, ok := firstString(set, aliasDeadline); ok {
		fields["deadline"] = v
	}
	if v, ok := firstString(set, aliasDescription); ok {
		fields["description"] = v
	}

	return fields
}

func toStringList(list []interface{}) models.StringList {
	result := make(models.StringList, 0, len(list))
	for _, entry := range list {
		if entry == nil {
			continue
		}
		if s, ok := entry.(string); ok {
			result = append(result, s)
			continue
		}
		result = append(result, fmt.Sprintf("%v", entry))
	}
	return result
}

func failCard(actionType, cardTitle, errMsg string) dto.ActionOutcome {
	out := dto.FailOutcome(actionType, errMsg)
	out.CardTitle = cardTitle
	return out
}
