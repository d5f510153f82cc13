package handler

import (
	"context"
	"io"
	"task-service/internal/domain/attachment"
	"task-service/internal/domain/comment"
	"task-service/internal/domain/department"
	"task-service/internal/domain/material"
	"task-service/internal/domain/notification"
	"task-service/internal/domain/organization"
	"task-service/internal/domain/task"
	"task-service/internal/domain/user"
	"task-service/internal/domain/vendor"
	"task-service/internal/infra/cache"
	"time"

	"github.com/google/uuid"
)

// Consumer-side interfaces defined by handlers.
// Each interface contains only the methods needed by the specific handler.

type TenantBootstrapper interface {
	BootstrapTenant(ctx context.Context, orgInput organization.CreateOrganizationInput, adminInput user.CreateUserInput) (*organization.Organization, *user.User, error)
}

type TokenGenerator interface {
	Generate(userID, organizationID uuid.UUID, email string) (string, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, input organization.CreateOrganizationInput) (*organization.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error)
	List(ctx context.Context, limit, offset int) ([]*organization.Organization, error)
	Update(ctx context.Context, id uuid.UUID, input organization.UpdateOrganizationInput) (*organization.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DepartmentRepository interface {
	Create(ctx context.Context, input department.CreateDepartmentInput) (*department.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*department.Department, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*department.Department, error)
	Update(ctx context.Context, id uuid.UUID, input department.UpdateDepartmentInput) (*department.Department, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context, filter user.ListUsersFilter) ([]*user.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) (*user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskRepository interface {
	Create(ctx context.Context, input task.CreateTaskInput) (*task.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	List(ctx context.Context, filter task.ListTasksFilter) ([]*task.Task, error)
	Update(ctx context.Context, id uuid.UUID, input task.UpdateTaskInput) (*task.Task, error)
	SetAssignees(ctx context.Context, id uuid.UUID, assignees []uuid.UUID) (*task.Task, error)
	SetApproval(ctx context.Context, id uuid.UUID, state string, approvedBy uuid.UUID) (*task.Task, error)
	MarkOrdered(ctx context.Context, id uuid.UUID, orderedAt time.Time) (*task.Task, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, input attachment.CreateAttachmentInput) (*attachment.Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*attachment.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, input comment.CreateCommentInput) (*comment.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]*comment.Comment, error)
	Update(ctx context.Context, id uuid.UUID, input comment.UpdateCommentInput) (*comment.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VendorRepository interface {
	Create(ctx context.Context, input vendor.CreateVendorInput) (*vendor.Vendor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*vendor.Vendor, error)
	Update(ctx context.Context, id uuid.UUID, input vendor.UpdateVendorInput) (*vendor.Vendor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MaterialRepository interface {
	Create(ctx context.Context, input material.CreateMaterialInput) (*material.Material, error)
	GetByID(ctx context.Context, id uuid.UUID) (*material.Material, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*material.Material, error)
	Update(ctx context.Context, id uuid.UUID, input material.UpdateMaterialInput) (*material.Material, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error)
	List(ctx context.Context, filter notification.ListNotificationsFilter) ([]*notification.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*notification.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttachmentStore abstracts the blob store behind attachment upload/download
type AttachmentStore interface {
	Upload(src io.Reader, objectKey string) error
	DownloadURL(objectKey, mimeType string, urlCache *cache.URLCache, expiry time.Duration) (string, error)
	Delete(objectKey string) error
}

// TaskNotifier fans out task events
type TaskNotifier interface {
	TaskAssigned(ctx context.Context, t *task.Task, actor *user.User, assignees []uuid.UUID)
	Mentioned(ctx context.Context, orgID uuid.UUID, taskID *uuid.UUID, mentions []uuid.UUID, body string)
	ApprovalRequested(ctx context.Context, t *task.Task, actor *user.User, approverID uuid.UUID)
}
