package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/vendor"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VendorRepository struct {
	db *DB
}

func NewVendorRepository(db *DB) *VendorRepository {
	return &VendorRepository{db: db}
}

const vendorColumns = `id, organization_id, name, contact_email, created_at, updated_at`

func scanVendor(row pgx.Row) (*vendor.Vendor, error) {
	v := &vendor.Vendor{}
	err := row.Scan(
		&v.ID,
		&v.OrganizationID,
		&v.Name,
		&v.ContactEmail,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VendorRepository) Create(ctx context.Context, input vendor.CreateVendorInput) (*vendor.Vendor, error) {
	query := `
		INSERT INTO vendors (organization_id, name, contact_email)
		VALUES ($1, $2, $3)
		RETURNING ` + vendorColumns

	v, err := scanVendor(r.db.Pool.QueryRow(ctx, query, input.OrganizationID, input.Name, input.ContactEmail))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("vendor with this name already exists")
		}
		return nil, fmt.Errorf(errFailedCreateVendorFmt, err)
	}

	return v, nil
}

func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*vendor.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	v, err := scanVendor(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errVendorNotFound)
		}
		return nil, fmt.Errorf(errFailedGetVendorFmt, err)
	}

	return v, nil
}

func (r *VendorRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*vendor.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE organization_id = $1 ORDER BY name LIMIT $2 OFFSET $3`

	rows, err := r.db.Pool.Query(ctx, query, orgID, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf(errFailedListVendorsFmt, err)
	}
	defer rows.Close()

	var vendors []*vendor.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedListVendorsFmt, err)
		}
		vendors = append(vendors, v)
	}

	return vendors, rows.Err()
}

func (r *VendorRepository) Update(ctx context.Context, id uuid.UUID, input vendor.UpdateVendorInput) (*vendor.Vendor, error) {
	query := `
		UPDATE vendors
		SET name = COALESCE($2, name),
		    contact_email = COALESCE($3, contact_email),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + vendorColumns

	v, err := scanVendor(r.db.Pool.QueryRow(ctx, query, id, input.Name, input.ContactEmail))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errVendorNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateVendorFmt, err)
	}

	return v, nil
}

func (r *VendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteVendorFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errVendorNotFound)
	}
	return nil
}
