package organization

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant. The platform organization hosts the operator's
// own staff; its users may act across tenant boundaries where policy allows.
type Organization struct {
	ID         uuid.UUID
	Name       string
	IsPlatform bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreateOrganizationInput struct {
	Name       string
	IsPlatform bool
}

type UpdateOrganizationInput struct {
	Name *string
}
