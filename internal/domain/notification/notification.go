package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindAssigned  = "task_assigned"
	KindMentioned = "mentioned"
	KindApproval  = "approval_requested"
)

type Notification struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	RecipientID    uuid.UUID
	Kind           string
	TaskID         *uuid.UUID
	Body           string
	ReadAt         *time.Time
	CreatedAt      time.Time
}

type CreateNotificationInput struct {
	OrganizationID uuid.UUID
	RecipientID    uuid.UUID
	Kind           string
	TaskID         *uuid.UUID
	Body           string
}

type ListNotificationsFilter struct {
	RecipientID uuid.UUID
	UnreadOnly  bool
	Limit       int
	Offset      int
}
