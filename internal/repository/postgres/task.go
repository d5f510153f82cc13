package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/task"
	apperrors "task-service/pkg/errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TaskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, organization_id, department_id, type, title, description, status,
	manager_id, created_by, assignees, watchers, mentions, due_date,
	approval_state, approved_by, vendor_id, material_id, ordered_at,
	created_at, updated_at, deleted_at`

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.OrganizationID,
		&t.DepartmentID,
		&t.Type,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.ManagerID,
		&t.CreatedBy,
		&t.Assignees,
		&t.Watchers,
		&t.Mentions,
		&t.DueDate,
		&t.ApprovalState,
		&t.ApprovedBy,
		&t.VendorID,
		&t.MaterialID,
		&t.OrderedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, input task.CreateTaskInput) (*task.Task, error) {
	approvalState := ""
	if input.Type == task.TypeApproval {
		approvalState = task.ApprovalPending
	}

	query := `
		INSERT INTO tasks (organization_id, department_id, type, title, description, status,
			manager_id, created_by, assignees, watchers, mentions, due_date,
			approval_state, vendor_id, material_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.Pool.QueryRow(ctx, query,
		input.OrganizationID,
		input.DepartmentID,
		input.Type,
		input.Title,
		input.Description,
		task.StatusOpen,
		input.ManagerID,
		input.CreatedBy,
		input.Assignees,
		input.Watchers,
		input.Mentions,
		input.DueDate,
		approvalState,
		input.VendorID,
		input.MaterialID,
	))

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.BadRequest("referenced organization, department, vendor or material does not exist")
		}
		return nil, fmt.Errorf(errFailedCreateTaskFmt, err)
	}

	return t, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND deleted_at IS NULL`

	t, err := scanTask(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errTaskNotFound)
		}
		return nil, fmt.Errorf(errFailedGetTaskFmt, err)
	}

	return t, nil
}

func (r *TaskRepository) List(ctx context.Context, filter task.ListTasksFilter) ([]*task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE organization_id = $1
		  AND deleted_at IS NULL
		  AND ($2::uuid IS NULL OR department_id = $2)
		  AND ($3::text IS NULL OR type = $3)
		  AND ($4::text IS NULL OR status = $4)
		  AND ($5::uuid IS NULL OR $5 = ANY(assignees))
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7
	`

	rows, err := r.db.Pool.Query(ctx, query,
		filter.OrganizationID,
		filter.DepartmentID,
		filter.Type,
		filter.Status,
		filter.AssigneeID,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf(errFailedListTasksFmt, err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedScanTaskFmt, err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, input task.UpdateTaskInput) (*task.Task, error) {
	query := `
		UPDATE tasks
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    status = COALESCE($4, status),
		    manager_id = COALESCE($5, manager_id),
		    due_date = COALESCE($6, due_date),
		    watchers = COALESCE($7, watchers),
		    mentions = COALESCE($8, mentions),
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.Pool.QueryRow(ctx, query,
		id,
		input.Title,
		input.Description,
		input.Status,
		input.ManagerID,
		input.DueDate,
		input.Watchers,
		input.Mentions,
	))

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errTaskNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateTaskFmt, err)
	}

	return t, nil
}

func (r *TaskRepository) SetAssignees(ctx context.Context, id uuid.UUID, assignees []uuid.UUID) (*task.Task, error) {
	query := `
		UPDATE tasks
		SET assignees = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.Pool.QueryRow(ctx, query, id, assignees))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errTaskNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateTaskFmt, err)
	}

	return t, nil
}

func (r *TaskRepository) SetApproval(ctx context.Context, id uuid.UUID, state string, approvedBy uuid.UUID) (*task.Task, error) {
	query := `
		UPDATE tasks
		SET approval_state = $2, approved_by = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL AND type = $4
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.Pool.QueryRow(ctx, query, id, state, approvedBy, task.TypeApproval))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errTaskNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateTaskFmt, err)
	}

	return t, nil
}

func (r *TaskRepository) MarkOrdered(ctx context.Context, id uuid.UUID, orderedAt time.Time) (*task.Task, error) {
	query := `
		UPDATE tasks
		SET ordered_at = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL AND type = $3
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.Pool.QueryRow(ctx, query, id, orderedAt, task.TypeProcurement))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errTaskNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateTaskFmt, err)
	}

	return t, nil
}

// SoftDelete stamps deleted_at; the row survives for bookkeeping and is
// excluded from reads.
func (r *TaskRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE tasks SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteTaskFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errTaskNotFound)
	}
	return nil
}
