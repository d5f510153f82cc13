package handler

import (
	"errors"
	"net/http"
	"task-service/internal/auth"
	"task-service/internal/domain/attachment"
	"task-service/internal/infra/cache"
	"task-service/internal/infra/s3"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/validator"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AttachmentHandler struct {
	attachmentRepo AttachmentRepository
	taskRepo       TaskRepository
	store          AttachmentStore
	urlCache       *cache.URLCache
	urlExpiry      time.Duration
	maxUploadSize  int64
}

func NewAttachmentHandler(
	attachmentRepo AttachmentRepository,
	taskRepo TaskRepository,
	store AttachmentStore,
	urlCache *cache.URLCache,
	urlExpiry time.Duration,
	maxUploadSize int64,
) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		store:          store,
		urlCache:       urlCache,
		urlExpiry:      urlExpiry,
		maxUploadSize:  maxUploadSize,
	}
}

type DownloadURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in_seconds"`
}

// Upload stores a multipart file against the task named by the route
func (h *AttachmentHandler) Upload(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	taskID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	fileHeader, err := c.FormFile(formFieldFile)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgMissingFile)
	}

	if err := validator.FileName(fileHeader.Filename); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if fileHeader.Size > h.maxUploadSize {
		return respondError(c, http.StatusRequestEntityTooLarge, msgFileTooLarge)
	}

	mimeType := fileHeader.Header.Get(echo.HeaderContentType)
	if err := validator.ContentType(mimeType); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	t, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.Logger().Errorf("Failed to open uploaded file for task %s: %v", taskID, err)
		return respondError(c, http.StatusInternalServerError, msgUploadAttachmentFail)
	}
	defer src.Close()

	objectKey := s3.ObjectKey(t.OrganizationID, t.ID, uuid.New(), fileHeader.Filename)
	if err := h.store.Upload(src, objectKey); err != nil {
		c.Logger().Errorf("Failed to upload attachment blob %s: %v", objectKey, err)
		return respondError(c, http.StatusInternalServerError, msgUploadAttachmentFail)
	}

	a, err := h.attachmentRepo.Create(ctx, attachment.CreateAttachmentInput{
		TaskID:         t.ID,
		OrganizationID: t.OrganizationID,
		DepartmentID:   t.DepartmentID,
		Name:           fileHeader.Filename,
		S3Key:          objectKey,
		SizeBytes:      fileHeader.Size,
		MimeType:       mimeType,
		UploadedBy:     userID,
	})
	if err != nil {
		// Orphaned blobs are worse than a failed request; clean up best effort.
		if deleteErr := h.store.Delete(objectKey); deleteErr != nil {
			c.Logger().Errorf("Failed to delete blob %s after metadata failure: %v", objectKey, deleteErr)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgTaskNotFound)
		}
		c.Logger().Errorf("Failed to record attachment for task %s: %v", taskID, err)
		return respondError(c, http.StatusInternalServerError, msgUploadAttachmentFail)
	}

	return c.JSON(http.StatusCreated, a)
}

// ListByTask returns a task's attachment metadata
func (h *AttachmentHandler) ListByTask(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidTaskID)
	}

	attachments, err := h.attachmentRepo.ListByTask(c.Request().Context(), taskID)
	if err != nil {
		c.Logger().Errorf("Failed to list attachments for task %s: %v", taskID, err)
		return respondError(c, http.StatusInternalServerError, msgListAttachmentsFail)
	}

	return c.JSON(http.StatusOK, attachments)
}

// Download returns a presigned URL rather than proxying the blob
func (h *AttachmentHandler) Download(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	a, err := h.attachmentRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	url, err := h.store.DownloadURL(a.S3Key, a.MimeType, h.urlCache, h.urlExpiry)
	if err != nil {
		c.Logger().Errorf("Failed to presign download for attachment %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDownloadLinkFail)
	}

	return c.JSON(http.StatusOK, DownloadURLResponse{
		URL:       url,
		ExpiresIn: int64(h.urlExpiry.Seconds()),
	})
}

func (h *AttachmentHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	ctx := c.Request().Context()
	a, err := h.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	if err := h.store.Delete(a.S3Key); err != nil {
		// The row is the source of truth; a stray blob is recoverable.
		c.Logger().Errorf("Failed to delete blob %s for attachment %s: %v", a.S3Key, id, err)
	}

	if err := h.attachmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgAttachmentNotFound)
		}
		c.Logger().Errorf("Failed to delete attachment %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteAttachmentFail)
	}

	return respondMessage(c, http.StatusOK, msgAttachmentDeleted)
}
