package handler

import (
	"errors"
	"net/http"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/comment"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	commentRepo CommentRepository
	taskRepo    TaskRepository
	notifier    TaskNotifier
}

func NewCommentHandler(commentRepo CommentRepository, taskRepo TaskRepository, notifier TaskNotifier) *CommentHandler {
	return &CommentHandler{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		notifier:    notifier,
	}
}

type CreateCommentRequest struct {
	Body     string   `json:"body"`
	Mentions []string `json:"mentions"`
}

type UpdateCommentRequest struct {
	Body     *string  `json:"body"`
	Mentions []string `json:"mentions"`
}

// Create adds a comment to the task named by the route
func (h *CommentHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	taskID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	var req CreateCommentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Body = strings.TrimSpace(req.Body)
	if err := validator.Body(req.Body); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	mentions, err := parseUUIDList(req.Mentions)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	ctx := c.Request().Context()
	t, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	cm, err := h.commentRepo.Create(ctx, comment.CreateCommentInput{
		TaskID:         t.ID,
		OrganizationID: t.OrganizationID,
		Body:           req.Body,
		CreatedBy:      userID,
		Mentions:       mentions,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgTaskNotFound)
		}
		c.Logger().Errorf("Failed to create comment on task %s: %v", taskID, err)
		return respondError(c, http.StatusInternalServerError, msgCreateCommentFail)
	}

	if len(cm.Mentions) > 0 {
		h.notifier.Mentioned(ctx, cm.OrganizationID, &cm.TaskID, cm.Mentions, cm.Body)
	}

	return c.JSON(http.StatusCreated, cm)
}

// ListByTask returns a task's comments, oldest first
func (h *CommentHandler) ListByTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	comments, err := h.commentRepo.ListByTask(c.Request().Context(), taskID,
		queryInt(c, queryLimit, 0), queryInt(c, queryOffset, 0))
	if err != nil {
		c.Logger().Errorf("Failed to list comments for task %s: %v", taskID, err)
		return respondError(c, http.StatusInternalServerError, msgListCommentsFail)
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateCommentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Body != nil {
		trimmed := strings.TrimSpace(*req.Body)
		if err := validator.Body(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Body = &trimmed
	}

	mentions, err := parseUUIDList(req.Mentions)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	ctx := c.Request().Context()
	before, err := h.commentRepo.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	cm, err := h.commentRepo.Update(ctx, id, comment.UpdateCommentInput{
		Body:     req.Body,
		Mentions: mentions,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgCommentNotFound)
		}
		c.Logger().Errorf("Failed to update comment %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateCommentFail)
	}

	if added := newMentions(before.Mentions, cm.Mentions); len(added) > 0 {
		h.notifier.Mentioned(ctx, cm.OrganizationID, &cm.TaskID, added, cm.Body)
	}

	return c.JSON(http.StatusOK, cm)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.commentRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgCommentNotFound)
		}
		c.Logger().Errorf("Failed to delete comment %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteCommentFail)
	}

	return respondMessage(c, http.StatusOK, msgCommentDeleted)
}
