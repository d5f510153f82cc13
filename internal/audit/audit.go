package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"task-service/pkg/logger"
)

// ActorType represents the type of entity performing an action
type ActorType string

const (
	ActorTypeUser   ActorType = "user"
	ActorTypeSystem ActorType = "system"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

const logWriteTimeout = 2 * time.Second

// Event represents an audit event. Resource and Action carry the same names
// the policy layer uses, so denied decisions line up with the rule matrix.
type Event struct {
	ID           uuid.UUID
	EventType    string
	ActorType    ActorType
	ActorID      *uuid.UUID
	Resource     string
	ResourceID   *uuid.UUID
	Action       string
	Status       Status
	IPAddress    string
	UserAgent    string
	RequestID    string
	Metadata     map[string]any
	ErrorMessage string
	CreatedAt    time.Time
}

// Logger handles audit logging
type Logger struct {
	pool *pgxpool.Pool
}

// NewLogger creates a new audit logger
func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

// Log records an audit event
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var metadataJSON []byte
	var err error
	if event.Metadata != nil {
		// Metadata is persisted as JSONB; never let credentials through.
		metadataJSON, err = json.Marshal(logger.SanitizeMap(event.Metadata))
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_events (
			id, event_type, actor_type, actor_id, resource, resource_id,
			action, status, ip_address, user_agent, request_id, metadata, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = l.pool.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.ActorType,
		event.ActorID,
		event.Resource,
		event.ResourceID,
		event.Action,
		event.Status,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		metadataJSON,
		event.ErrorMessage,
		event.CreatedAt,
	)

	return err
}

// LogFromContext creates and logs an audit event from an Echo context
// asynchronously. The request is never blocked on the audit write.
func (l *Logger) LogFromContext(c echo.Context, resource string, resourceID *uuid.UUID, action string, status Status, metadata map[string]any) error {
	event := &Event{
		EventType:  action + "_" + resource,
		Resource:   resource,
		ResourceID: resourceID,
		Action:     action,
		Status:     status,
		IPAddress:  c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
		RequestID:  c.Response().Header().Get(echo.HeaderXRequestID),
		Metadata:   metadata,
	}

	l.setActor(c, event)
	l.logAsync(c, event)

	return nil
}

// LogError logs a failed action with error details asynchronously
func (l *Logger) LogError(c echo.Context, resource string, resourceID *uuid.UUID, action string, err error) error {
	event := &Event{
		EventType:    action + "_" + resource,
		Resource:     resource,
		ResourceID:   resourceID,
		Action:       action,
		Status:       StatusFailure,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		Metadata:     map[string]any{"error": err.Error()},
		ErrorMessage: err.Error(),
	}

	l.setActor(c, event)
	l.logAsync(c, event)

	return nil
}

func (l *Logger) setActor(c echo.Context, event *Event) {
	if userID := c.Get("user_id"); userID != nil {
		if uid, ok := userID.(uuid.UUID); ok {
			event.ActorType = ActorTypeUser
			event.ActorID = &uid
			return
		}
	}
	event.ActorType = ActorTypeSystem
}

func (l *Logger) logAsync(c echo.Context, event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			fmt.Fprintf(c.Logger().Output(), "audit log failed: %v\n", err)
		}
	}()
}

// QueryFilter narrows an audit event query
type QueryFilter struct {
	ActorID    *uuid.UUID
	Resource   *string
	ResourceID *uuid.UUID
	Action     *string
	Status     *Status
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Offset     int
}

// Query retrieves audit events
func (l *Logger) Query(ctx context.Context, filter QueryFilter) ([]*Event, error) {
	query := `
		SELECT id, event_type, actor_type, actor_id, resource, resource_id,
		       action, status, ip_address, user_agent, request_id, metadata, error_message, created_at
		FROM audit_events
		WHERE 1=1
	`
	args := []any{}
	argCount := 1

	if filter.ActorID != nil {
		query += fmt.Sprintf(" AND actor_id = $%d", argCount)
		args = append(args, filter.ActorID)
		argCount++
	}

	if filter.Resource != nil {
		query += fmt.Sprintf(" AND resource = $%d", argCount)
		args = append(args, filter.Resource)
		argCount++
	}

	if filter.ResourceID != nil {
		query += fmt.Sprintf(" AND resource_id = $%d", argCount)
		args = append(args, filter.ResourceID)
		argCount++
	}

	if filter.Action != nil {
		query += fmt.Sprintf(" AND action = $%d", argCount)
		args = append(args, filter.Action)
		argCount++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filter.Status)
		argCount++
	}

	if filter.StartTime != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, filter.StartTime)
		argCount++
	}

	if filter.EndTime != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argCount)
		args = append(args, filter.EndTime)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	} else {
		query += " LIMIT 100"
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*Event{}
	for rows.Next() {
		event := &Event{}
		var metadataJSON []byte

		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.ActorType,
			&event.ActorID,
			&event.Resource,
			&event.ResourceID,
			&event.Action,
			&event.Status,
			&event.IPAddress,
			&event.UserAgent,
			&event.RequestID,
			&metadataJSON,
			&event.ErrorMessage,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	return events, rows.Err()
}
