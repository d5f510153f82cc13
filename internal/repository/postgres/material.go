package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/material"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MaterialRepository struct {
	db *DB
}

func NewMaterialRepository(db *DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

const materialColumns = `id, organization_id, department_id, name, unit, unit_price_cents, vendor_id, created_at, updated_at`

func scanMaterial(row pgx.Row) (*material.Material, error) {
	m := &material.Material{}
	err := row.Scan(
		&m.ID,
		&m.OrganizationID,
		&m.DepartmentID,
		&m.Name,
		&m.Unit,
		&m.UnitPriceCents,
		&m.VendorID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MaterialRepository) Create(ctx context.Context, input material.CreateMaterialInput) (*material.Material, error) {
	query := `
		INSERT INTO materials (organization_id, department_id, name, unit, unit_price_cents, vendor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + materialColumns

	m, err := scanMaterial(r.db.Pool.QueryRow(ctx, query,
		input.OrganizationID,
		input.DepartmentID,
		input.Name,
		input.Unit,
		input.UnitPriceCents,
		input.VendorID,
	))

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.NotFound(errVendorNotFound)
		}
		return nil, fmt.Errorf(errFailedCreateMaterialFmt, err)
	}

	return m, nil
}

func (r *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*material.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`

	m, err := scanMaterial(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errMaterialNotFound)
		}
		return nil, fmt.Errorf(errFailedGetMaterialFmt, err)
	}

	return m, nil
}

func (r *MaterialRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*material.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE organization_id = $1 ORDER BY name LIMIT $2 OFFSET $3`

	rows, err := r.db.Pool.Query(ctx, query, orgID, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf(errFailedListMaterialsFmt, err)
	}
	defer rows.Close()

	var materials []*material.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedListMaterialsFmt, err)
		}
		materials = append(materials, m)
	}

	return materials, rows.Err()
}

func (r *MaterialRepository) Update(ctx context.Context, id uuid.UUID, input material.UpdateMaterialInput) (*material.Material, error) {
	query := `
		UPDATE materials
		SET name = COALESCE($2, name),
		    unit = COALESCE($3, unit),
		    unit_price_cents = COALESCE($4, unit_price_cents),
		    vendor_id = COALESCE($5, vendor_id),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + materialColumns

	m, err := scanMaterial(r.db.Pool.QueryRow(ctx, query,
		id,
		input.Name,
		input.Unit,
		input.UnitPriceCents,
		input.VendorID,
	))

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errMaterialNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateMaterialFmt, err)
	}

	return m, nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteMaterialFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errMaterialNotFound)
	}
	return nil
}
