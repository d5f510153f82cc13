package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/comment"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CommentRepository struct {
	db *DB
}

func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, task_id, organization_id, body, created_by, mentions, created_at, updated_at`

func scanComment(row pgx.Row) (*comment.Comment, error) {
	c := &comment.Comment{}
	err := row.Scan(
		&c.ID,
		&c.TaskID,
		&c.OrganizationID,
		&c.Body,
		&c.CreatedBy,
		&c.Mentions,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, input comment.CreateCommentInput) (*comment.Comment, error) {
	query := `
		INSERT INTO comments (task_id, organization_id, body, created_by, mentions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + commentColumns

	c, err := scanComment(r.db.Pool.QueryRow(ctx, query,
		input.TaskID,
		input.OrganizationID,
		input.Body,
		input.CreatedBy,
		input.Mentions,
	))

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.NotFound(errTaskNotFound)
		}
		return nil, fmt.Errorf(errFailedCreateCommentFmt, err)
	}

	return c, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	c, err := scanComment(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errCommentNotFound)
		}
		return nil, fmt.Errorf(errFailedGetCommentFmt, err)
	}

	return c, nil
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID, limit, offset int) ([]*comment.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE task_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`

	rows, err := r.db.Pool.Query(ctx, query, taskID, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf(errFailedListCommentsFmt, err)
	}
	defer rows.Close()

	var comments []*comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedListCommentsFmt, err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, id uuid.UUID, input comment.UpdateCommentInput) (*comment.Comment, error) {
	query := `
		UPDATE comments
		SET body = COALESCE($2, body),
		    mentions = COALESCE($3, mentions),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + commentColumns

	c, err := scanComment(r.db.Pool.QueryRow(ctx, query, id, input.Body, input.Mentions))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errCommentNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateCommentFmt, err)
	}

	return c, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteCommentFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errCommentNotFound)
	}
	return nil
}
