package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	Email          string
	Name           string
	PasswordHash   string
	Role           string
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	IsHod          bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateUserInput struct {
	Email          string
	Name           string
	PasswordHash   string
	Role           string
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	IsHod          bool
}

type UpdateUserInput struct {
	Email        *string
	Name         *string
	PasswordHash *string
	Role         *string
	DepartmentID *uuid.UUID
	IsHod        *bool
}

type ListUsersFilter struct {
	OrganizationID uuid.UUID
	DepartmentID   *uuid.UUID
	Limit          int
	Offset         int
}
