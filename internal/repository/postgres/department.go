package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/department"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DepartmentRepository struct {
	db *DB
}

func NewDepartmentRepository(db *DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, input department.CreateDepartmentInput) (*department.Department, error) {
	query := `
		INSERT INTO departments (organization_id, name, manager_id)
		VALUES ($1, $2, $3)
		RETURNING id, organization_id, name, manager_id, created_at, updated_at
	`

	d := &department.Department{}
	err := r.db.Pool.QueryRow(ctx, query, input.OrganizationID, input.Name, input.ManagerID).Scan(
		&d.ID,
		&d.OrganizationID,
		&d.Name,
		&d.ManagerID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("department with this name already exists")
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.NotFound(errOrganizationNotFound)
		}
		return nil, fmt.Errorf(errFailedCreateDeptFmt, err)
	}

	return d, nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*department.Department, error) {
	query := `
		SELECT id, organization_id, name, manager_id, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	d := &department.Department{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.OrganizationID,
		&d.Name,
		&d.ManagerID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errDepartmentNotFound)
		}
		return nil, fmt.Errorf(errFailedGetDeptFmt, err)
	}

	return d, nil
}

func (r *DepartmentRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*department.Department, error) {
	query := `
		SELECT id, organization_id, name, manager_id, created_at, updated_at
		FROM departments
		WHERE organization_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, orgID, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf(errFailedListDeptsFmt, err)
	}
	defer rows.Close()

	var depts []*department.Department
	for rows.Next() {
		d := &department.Department{}
		if err := rows.Scan(&d.ID, &d.OrganizationID, &d.Name, &d.ManagerID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf(errFailedListDeptsFmt, err)
		}
		depts = append(depts, d)
	}

	return depts, rows.Err()
}

func (r *DepartmentRepository) Update(ctx context.Context, id uuid.UUID, input department.UpdateDepartmentInput) (*department.Department, error) {
	query := `
		UPDATE departments
		SET name = COALESCE($2, name),
		    manager_id = COALESCE($3, manager_id),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, organization_id, name, manager_id, created_at, updated_at
	`

	d := &department.Department{}
	err := r.db.Pool.QueryRow(ctx, query, id, input.Name, input.ManagerID).Scan(
		&d.ID,
		&d.OrganizationID,
		&d.Name,
		&d.ManagerID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errDepartmentNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateDeptFmt, err)
	}

	return d, nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteDeptFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errDepartmentNotFound)
	}
	return nil
}
