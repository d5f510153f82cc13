package comment

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID             uuid.UUID
	TaskID         uuid.UUID
	OrganizationID uuid.UUID
	Body           string
	CreatedBy      uuid.UUID
	Mentions       []uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateCommentInput struct {
	TaskID         uuid.UUID
	OrganizationID uuid.UUID
	Body           string
	CreatedBy      uuid.UUID
	Mentions       []uuid.UUID
}

type UpdateCommentInput struct {
	Body     *string
	Mentions []uuid.UUID
}
