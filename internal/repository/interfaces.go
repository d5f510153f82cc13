package repository

import (
	"context"
	"task-service/internal/domain/attachment"
	"task-service/internal/domain/comment"
	"task-service/internal/domain/department"
	"task-service/internal/domain/material"
	"task-service/internal/domain/notification"
	"task-service/internal/domain/organization"
	"task-service/internal/domain/task"
	"task-service/internal/domain/user"
	"task-service/internal/domain/vendor"

	"github.com/google/uuid"
)

// Consumer-side interfaces for the auth and policy middleware packages.
// Concrete implementations live in postgres/.

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*department.Department, error)
}

type TaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
}

type AttachmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error)
}

type CommentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
}

type VendorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error)
}

type MaterialRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*material.Material, error)
}

type NotificationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error)
}
