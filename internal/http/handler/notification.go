package handler

import (
	"errors"
	"net/http"
	"task-service/internal/auth"
	"task-service/internal/domain/notification"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notifRepo NotificationRepository
}

func NewNotificationHandler(notifRepo NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifRepo: notifRepo}
}

// List returns the caller's own notifications, newest first
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	notifications, err := h.notifRepo.List(c.Request().Context(), notification.ListNotificationsFilter{
		RecipientID: userID,
		UnreadOnly:  queryBool(c, queryUnread),
		Limit:       queryInt(c, queryLimit, 0),
		Offset:      queryInt(c, queryOffset, 0),
	})
	if err != nil {
		c.Logger().Errorf("Failed to list notifications for user %s: %v", userID, err)
		return respondError(c, http.StatusInternalServerError, msgListNotifsFail)
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	n, err := h.notifRepo.MarkRead(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgNotifNotFound)
		}
		c.Logger().Errorf("Failed to mark notification %s read: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgMarkReadFail)
	}

	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.notifRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgNotifNotFound)
		}
		c.Logger().Errorf("Failed to delete notification %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteNotifFail)
	}

	return respondMessage(c, http.StatusOK, msgNotificationDeleted)
}
