package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/attachment"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AttachmentRepository struct {
	db *DB
}

func NewAttachmentRepository(db *DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

const attachmentColumns = `id, task_id, organization_id, department_id, name, s3_key, size_bytes, mime_type, uploaded_by, created_at`

func scanAttachment(row pgx.Row) (*attachment.Attachment, error) {
	a := &attachment.Attachment{}
	err := row.Scan(
		&a.ID,
		&a.TaskID,
		&a.OrganizationID,
		&a.DepartmentID,
		&a.Name,
		&a.S3Key,
		&a.SizeBytes,
		&a.MimeType,
		&a.UploadedBy,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AttachmentRepository) Create(ctx context.Context, input attachment.CreateAttachmentInput) (*attachment.Attachment, error) {
	query := `
		INSERT INTO attachments (task_id, organization_id, department_id, name, s3_key, size_bytes, mime_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attachmentColumns

	a, err := scanAttachment(r.db.Pool.QueryRow(ctx, query,
		input.TaskID,
		input.OrganizationID,
		input.DepartmentID,
		input.Name,
		input.S3Key,
		input.SizeBytes,
		input.MimeType,
		input.UploadedBy,
	))

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.NotFound(errTaskNotFound)
		}
		return nil, fmt.Errorf(errFailedCreateAttachmentFmt, err)
	}

	return a, nil
}

func (r *AttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*attachment.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`

	a, err := scanAttachment(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errAttachmentNotFound)
		}
		return nil, fmt.Errorf(errFailedGetAttachmentFmt, err)
	}

	return a, nil
}

func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*attachment.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE task_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf(errFailedListAttachmentsFmt, err)
	}
	defer rows.Close()

	var attachments []*attachment.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedListAttachmentsFmt, err)
		}
		attachments = append(attachments, a)
	}

	return attachments, rows.Err()
}

func (r *AttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteAttachmentFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errAttachmentNotFound)
	}
	return nil
}
