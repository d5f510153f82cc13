package task

import (
	"time"

	"github.com/google/uuid"
)

// Task subtypes. The three variants share one table; the Type discriminator
// drives subtype-specific policy rules and validation.
const (
	TypeStandard    = "standard"
	TypeApproval    = "approval"
	TypeProcurement = "procurement"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Task struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	Type           string
	Title          string
	Description    string
	Status         string
	ManagerID      *uuid.UUID
	CreatedBy      uuid.UUID
	Assignees      []uuid.UUID
	Watchers       []uuid.UUID
	Mentions       []uuid.UUID
	DueDate        *time.Time

	// Approval-type tasks
	ApprovalState string
	ApprovedBy    *uuid.UUID

	// Procurement-type tasks
	VendorID   *uuid.UUID
	MaterialID *uuid.UUID
	OrderedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type CreateTaskInput struct {
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	Type           string
	Title          string
	Description    string
	ManagerID      *uuid.UUID
	CreatedBy      uuid.UUID
	Assignees      []uuid.UUID
	Watchers       []uuid.UUID
	Mentions       []uuid.UUID
	DueDate        *time.Time
	VendorID       *uuid.UUID
	MaterialID     *uuid.UUID
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	ManagerID   *uuid.UUID
	DueDate     *time.Time
	Watchers    []uuid.UUID
	Mentions    []uuid.UUID
}

type ListTasksFilter struct {
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	Type           *string
	Status         *string
	AssigneeID     *uuid.UUID
	Limit          int
	Offset         int
}

// ValidType reports whether t names one of the task variants
func ValidType(t string) bool {
	switch t {
	case TypeStandard, TypeApproval, TypeProcurement:
		return true
	default:
		return false
	}
}
