package material

import (
	"time"

	"github.com/google/uuid"
)

type Material struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	Name           string
	Unit           string
	UnitPriceCents int64
	VendorID       *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateMaterialInput struct {
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	Name           string
	Unit           string
	UnitPriceCents int64
	VendorID       *uuid.UUID
}

type UpdateMaterialInput struct {
	Name           *string
	Unit           *string
	UnitPriceCents *int64
	VendorID       *uuid.UUID
}
