package postgres

import (
	"context"
	"fmt"
	"task-service/internal/domain/notification"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NotificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, organization_id, recipient_id, kind, task_id, body, read_at, created_at`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	n := &notification.Notification{}
	err := row.Scan(
		&n.ID,
		&n.OrganizationID,
		&n.RecipientID,
		&n.Kind,
		&n.TaskID,
		&n.Body,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) Create(ctx context.Context, input notification.CreateNotificationInput) (*notification.Notification, error) {
	query := `
		INSERT INTO notifications (organization_id, recipient_id, kind, task_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + notificationColumns

	n, err := scanNotification(r.db.Pool.QueryRow(ctx, query,
		input.OrganizationID,
		input.RecipientID,
		input.Kind,
		input.TaskID,
		input.Body,
	))

	if err != nil {
		return nil, fmt.Errorf(errFailedCreateNotifFmt, err)
	}

	return n, nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errNotificationNotFound)
		}
		return nil, fmt.Errorf(errFailedGetNotifFmt, err)
	}

	return n, nil
}

func (r *NotificationRepository) List(ctx context.Context, filter notification.ListNotificationsFilter) ([]*notification.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE recipient_id = $1
		  AND ($2::bool IS FALSE OR read_at IS NULL)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Pool.Query(ctx, query, filter.RecipientID, filter.UnreadOnly, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, fmt.Errorf(errFailedListNotifsFmt, err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf(errFailedListNotifsFmt, err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	query := `
		UPDATE notifications
		SET read_at = COALESCE(read_at, now())
		WHERE id = $1
		RETURNING ` + notificationColumns

	n, err := scanNotification(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errNotificationNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateNotifFmt, err)
	}

	return n, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf(errFailedDeleteNotifFmt, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errNotificationNotFound)
	}
	return nil
}
