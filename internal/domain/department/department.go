package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	ManagerID      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateDepartmentInput struct {
	OrganizationID uuid.UUID
	Name           string
	ManagerID      *uuid.UUID
}

type UpdateDepartmentInput struct {
	Name      *string
	ManagerID *uuid.UUID
}
