package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/user"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, organization_id, department_id, is_hod, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.OrganizationID,
		&u.DepartmentID,
		&u.IsHod,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (email, name, password_hash, role, organization_id, department_id, is_hod)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	u, err := scanUser(r.db.Pool.QueryRow(ctx, query,
		input.Email,
		input.Name,
		input.PasswordHash,
		input.Role,
		input.OrganizationID,
		input.DepartmentID,
		input.IsHod,
	))

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("user with this email already exists")
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.BadRequest("organization or department does not exist")
		}
		return nil, fmt.Errorf(errFailedCreateUserFmt, err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, fmt.Errorf(errFailedGetUserFmt, err)
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, fmt.Errorf(errFailedGetUserFmt, err)
	}

	return u, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListUsersFilter) ([]*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE organization_id = $1
		  AND ($2::uuid IS NULL OR department_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Pool.Query(ctx, query, filter.OrganizationID, filter.DepartmentID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, fmt.Errorf(errFailedListUsersFmt, err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedScanUserFmt, err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) (*user.User, error) {
	query := `
		UPDATE users
		SET email = COALESCE($2, email),
		    name = COALESCE($3, name),
		    password_hash = COALESCE($4, password_hash),
		    role = COALESCE($5, role),
		    department_id = COALESCE($6, department_id),
		    is_hod = COALESCE($7, is_hod),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.Pool.QueryRow(ctx, query,
		id,
		input.Email,
		input.Name,
		input.PasswordHash,
		input.Role,
		input.DepartmentID,
		input.IsHod,
	))

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf(errFailedUpdateUserFmt, err)
	}

	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteUserFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errUserNotFound)
	}
	return nil
}
