package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/organization"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrganizationRepository struct {
	db *DB
}

func NewOrganizationRepository(db *DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, input organization.CreateOrganizationInput) (*organization.Organization, error) {
	query := `
		INSERT INTO organizations (name, is_platform)
		VALUES ($1, $2)
		RETURNING id, name, is_platform, created_at, updated_at
	`

	o := &organization.Organization{}
	err := r.db.Pool.QueryRow(ctx, query, input.Name, input.IsPlatform).Scan(
		&o.ID,
		&o.Name,
		&o.IsPlatform,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("organization with this name already exists")
		}
		return nil, fmt.Errorf(errFailedCreateOrgFmt, err)
	}

	return o, nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	query := `
		SELECT id, name, is_platform, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	o := &organization.Organization{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.Name,
		&o.IsPlatform,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errOrganizationNotFound)
		}
		return nil, fmt.Errorf(errFailedGetOrgFmt, err)
	}

	return o, nil
}

func (r *OrganizationRepository) List(ctx context.Context, limit, offset int) ([]*organization.Organization, error) {
	query := `
		SELECT id, name, is_platform, created_at, updated_at
		FROM organizations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf(errFailedListOrgsFmt, err)
	}
	defer rows.Close()

	var orgs []*organization.Organization
	for rows.Next() {
		o := &organization.Organization{}
		if err := rows.Scan(&o.ID, &o.Name, &o.IsPlatform, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf(errFailedListOrgsFmt, err)
		}
		orgs = append(orgs, o)
	}

	return orgs, rows.Err()
}

func (r *OrganizationRepository) Update(ctx context.Context, id uuid.UUID, input organization.UpdateOrganizationInput) (*organization.Organization, error) {
	query := `
		UPDATE organizations
		SET name = COALESCE($2, name), updated_at = now()
		WHERE id = $1
		RETURNING id, name, is_platform, created_at, updated_at
	`

	o := &organization.Organization{}
	err := r.db.Pool.QueryRow(ctx, query, id, input.Name).Scan(
		&o.ID,
		&o.Name,
		&o.IsPlatform,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errOrganizationNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateOrgFmt, err)
	}

	return o, nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteOrgFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errOrganizationNotFound)
	}
	return nil
}
