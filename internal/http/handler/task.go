package handler

import (
	"errors"
	"net/http"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/task"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/validator"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TaskHandler struct {
	taskRepo TaskRepository
	userRepo UserRepository
	notifier TaskNotifier
}

func NewTaskHandler(taskRepo TaskRepository, userRepo UserRepository, notifier TaskNotifier) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

type CreateTaskRequest struct {
	DepartmentID *string    `json:"department_id"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ManagerID    *string    `json:"manager_id"`
	Assignees    []string   `json:"assignees"`
	Watchers     []string   `json:"watchers"`
	Mentions     []string   `json:"mentions"`
	DueDate      *time.Time `json:"due_date"`
	VendorID     *string    `json:"vendor_id"`
	MaterialID   *string    `json:"material_id"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	ManagerID   *string    `json:"manager_id"`
	DueDate     *time.Time `json:"due_date"`
	Watchers    []string   `json:"watchers"`
	Mentions    []string   `json:"mentions"`
}

type AssignTaskRequest struct {
	Assignees []string `json:"assignees"`
}

type ApproveTaskRequest struct {
	Verdict string `json:"verdict"`
}

func validStatus(status string) bool {
	switch status {
	case task.StatusOpen, task.StatusInProgress, task.StatusDone:
		return true
	default:
		return false
	}
}

func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	orgID, err := auth.GetOrganizationID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateTaskRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := validator.Title(req.Title); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if !task.ValidType(req.Type) {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskType)
	}

	deptID, err := parseOptionalUUID(req.DepartmentID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
	}

	managerID, err := parseOptionalUUID(req.ManagerID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	assignees, err := parseUUIDList(req.Assignees)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	watchers, err := parseUUIDList(req.Watchers)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	mentions, err := parseUUIDList(req.Mentions)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	vendorID, err := parseOptionalUUID(req.VendorID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	materialID, err := parseOptionalUUID(req.MaterialID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	ctx := c.Request().Context()
	t, err := h.taskRepo.Create(ctx, task.CreateTaskInput{
		OrganizationID: orgID,
		DepartmentID:   deptID,
		Type:           req.Type,
		Title:          req.Title,
		Description:    req.Description,
		ManagerID:      managerID,
		CreatedBy:      userID,
		Assignees:      assignees,
		Watchers:       watchers,
		Mentions:       mentions,
		DueDate:        req.DueDate,
		VendorID:       vendorID,
		MaterialID:     materialID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return RespondWithMappedError(c, err)
		}
		c.Logger().Errorf("Failed to create task: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateTaskFail)
	}

	actor, _ := h.userRepo.GetByID(ctx, userID)

	if len(t.Assignees) > 0 {
		h.notifier.TaskAssigned(ctx, t, actor, t.Assignees)
	}
	if len(t.Mentions) > 0 {
		h.notifier.Mentioned(ctx, t.OrganizationID, &t.ID, t.Mentions, t.Title)
	}
	if t.Type == task.TypeApproval && t.ManagerID != nil {
		h.notifier.ApprovalRequested(ctx, t, actor, *t.ManagerID)
	}

	return c.JSON(http.StatusCreated, t)
}

func (h *TaskHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	t, err := h.taskRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) List(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	orgID, err := auth.GetOrganizationID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}
	if raw := c.QueryParam(queryOrg); raw != "" && principal.IsPlatformOrgUser {
		orgID, err = uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidOrgID)
		}
	}

	filter := task.ListTasksFilter{
		OrganizationID: orgID,
		Limit:          queryInt(c, queryLimit, 0),
		Offset:         queryInt(c, queryOffset, 0),
	}

	if raw := c.QueryParam(queryDepartment); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
		}
		filter.DepartmentID = &parsed
	}

	if raw := c.QueryParam(queryType); raw != "" {
		if !task.ValidType(raw) {
			return respondError(c, http.StatusBadRequest, msgInvalidTaskType)
		}
		filter.Type = &raw
	}

	if raw := c.QueryParam(queryStatus); raw != "" {
		if !validStatus(raw) {
			return respondError(c, http.StatusBadRequest, msgInvalidTaskStatus)
		}
		filter.Status = &raw
	}

	if raw := c.QueryParam(queryAssignee); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidUserID)
		}
		filter.AssigneeID = &parsed
	}

	tasks, err := h.taskRepo.List(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Errorf("Failed to list tasks for organization %s: %v", orgID, err)
		return respondError(c, http.StatusInternalServerError, msgListTasksFail)
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	var req UpdateTaskRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if err := validator.Title(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Title = &trimmed
	}

	if req.Status != nil && !validStatus(*req.Status) {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskStatus)
	}

	managerID, err := parseOptionalUUID(req.ManagerID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	watchers, err := parseUUIDList(req.Watchers)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	mentions, err := parseUUIDList(req.Mentions)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	ctx := c.Request().Context()
	before, err := h.taskRepo.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	t, err := h.taskRepo.Update(ctx, id, task.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ManagerID:   managerID,
		DueDate:     req.DueDate,
		Watchers:    watchers,
		Mentions:    mentions,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgTaskNotFound)
		}
		c.Logger().Errorf("Failed to update task %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateTaskFail)
	}

	// Only users newly mentioned in this update get notified.
	if added := newMentions(before.Mentions, t.Mentions); len(added) > 0 {
		h.notifier.Mentioned(ctx, t.OrganizationID, &t.ID, added, t.Title)
	}

	return c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Assign(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	var req AssignTaskRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	assignees, err := parseUUIDList(req.Assignees)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	ctx := c.Request().Context()
	before, err := h.taskRepo.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	t, err := h.taskRepo.SetAssignees(ctx, id, assignees)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgTaskNotFound)
		}
		c.Logger().Errorf("Failed to assign task %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgAssignTaskFail)
	}

	if added := newMentions(before.Assignees, t.Assignees); len(added) > 0 {
		actor, _ := h.userRepo.GetByID(ctx, userID)
		h.notifier.TaskAssigned(ctx, t, actor, added)
	}

	return c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Approve(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	var req ApproveTaskRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Verdict != task.ApprovalApproved && req.Verdict != task.ApprovalRejected {
		return respondError(c, http.StatusBadRequest, msgInvalidVerdict)
	}

	ctx := c.Request().Context()
	t, err := h.taskRepo.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if t.Type != task.TypeApproval {
		return respondError(c, http.StatusUnprocessableEntity, msgApprovalRequired)
	}

	if t.ApprovalState != task.ApprovalPending {
		return respondError(c, http.StatusConflict, msgVerdictRecorded)
	}

	t, err = h.taskRepo.SetApproval(ctx, id, req.Verdict, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgTaskNotFound)
		}
		c.Logger().Errorf("Failed to record approval verdict on task %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgApproveTaskFail)
	}

	return c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Order(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	ctx := c.Request().Context()
	t, err := h.taskRepo.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if t.Type != task.TypeProcurement {
		return respondError(c, http.StatusUnprocessableEntity, msgProcurementRequired)
	}

	if t.OrderedAt != nil {
		return respondError(c, http.StatusConflict, msgAlreadyOrdered)
	}

	t, err = h.taskRepo.MarkOrdered(ctx, id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgTaskNotFound)
		}
		c.Logger().Errorf("Failed to mark task %s ordered: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgOrderTaskFail)
	}

	return c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	if err := h.taskRepo.SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgTaskNotFound)
		}
		c.Logger().Errorf("Failed to delete task %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteTaskFail)
	}

	return respondMessage(c, http.StatusOK, msgTaskDeleted)
}

// newMentions returns the members of after that are absent from before
func newMentions(before, after []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(before))
	for _, id := range before {
		seen[id] = true
	}

	var added []uuid.UUID
	for _, id := range after {
		if !seen[id] {
			added = append(added, id)
		}
	}
	return added
}
