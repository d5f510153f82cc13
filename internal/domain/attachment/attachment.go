package attachment

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID             uuid.UUID
	TaskID         uuid.UUID
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	Name           string
	S3Key          string
	SizeBytes      int64
	MimeType       string
	UploadedBy     uuid.UUID
	CreatedAt      time.Time
}

type CreateAttachmentInput struct {
	TaskID         uuid.UUID
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	Name           string
	S3Key          string
	SizeBytes      int64
	MimeType       string
	UploadedBy     uuid.UUID
}
