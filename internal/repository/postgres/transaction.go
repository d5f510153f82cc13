package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/organization"
	"task-service/internal/domain/user"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
)

// BootstrapTenant creates an organization and its first admin user atomically.
// Either both rows land or neither does.
func (db *DB) BootstrapTenant(ctx context.Context, orgInput organization.CreateOrganizationInput, adminInput user.CreateUserInput) (*organization.Organization, *user.User, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf(errFailedStartTransactionFmt, err)
	}
	defer tx.Rollback(ctx)

	orgID := uuid.New()

	var createdOrg organization.Organization

	orgQuery := `
		INSERT INTO organizations (id, name, is_platform)
		VALUES ($1, $2, $3)
		RETURNING id, name, is_platform, created_at, updated_at
	`

	err = tx.QueryRow(ctx, orgQuery, orgID, orgInput.Name, orgInput.IsPlatform).Scan(
		&createdOrg.ID,
		&createdOrg.Name,
		&createdOrg.IsPlatform,
		&createdOrg.CreatedAt,
		&createdOrg.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, apperrors.Conflict("organization with this name already exists")
		}
		return nil, nil, fmt.Errorf(errFailedCreateOrgFmt, err)
	}

	var createdUser user.User

	userQuery := `
		INSERT INTO users (email, name, password_hash, role, organization_id, department_id, is_hod)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	err = tx.QueryRow(ctx, userQuery,
		adminInput.Email,
		adminInput.Name,
		adminInput.PasswordHash,
		adminInput.Role,
		orgID,
		adminInput.DepartmentID,
		adminInput.IsHod,
	).Scan(
		&createdUser.ID,
		&createdUser.Email,
		&createdUser.Name,
		&createdUser.PasswordHash,
		&createdUser.Role,
		&createdUser.OrganizationID,
		&createdUser.DepartmentID,
		&createdUser.IsHod,
		&createdUser.CreatedAt,
		&createdUser.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, apperrors.ErrEmailExists
		}
		return nil, nil, fmt.Errorf(errFailedCreateUserFmt, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf(errFailedCommitTransactionFmt, err)
	}

	return &createdOrg, &createdUser, nil
}
