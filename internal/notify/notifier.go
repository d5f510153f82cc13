package notify

import (
	"context"
	"fmt"
	"task-service/internal/domain/notification"
	"task-service/internal/domain/task"
	"task-service/internal/domain/user"
	"task-service/pkg/mailer"

	"github.com/google/uuid"
)

const dueDateFormat = "2006-01-02"

type NotificationCreator interface {
	Create(ctx context.Context, input notification.CreateNotificationInput) (*notification.Notification, error)
}

type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Notifier fans task events out to in-app notifications and, when a mail
// service is configured, to email. Delivery is best effort; a failed
// notification never fails the triggering request.
type Notifier struct {
	notifications NotificationCreator
	users         UserGetter
	mail          *mailer.EmailService

	taskAssignedTmpl      *mailer.Template
	approvalRequestedTmpl *mailer.Template
}

func New(notifications NotificationCreator, users UserGetter, mail *mailer.EmailService) *Notifier {
	return &Notifier{
		notifications:         notifications,
		users:                 users,
		mail:                  mail,
		taskAssignedTmpl:      mailer.MustTaskAssignedTemplate(),
		approvalRequestedTmpl: mailer.MustApprovalRequestedTemplate(),
	}
}

// TaskAssigned notifies each assignee of the task
func (n *Notifier) TaskAssigned(ctx context.Context, t *task.Task, actor *user.User, assignees []uuid.UUID) {
	for _, assigneeID := range assignees {
		if actor != nil && assigneeID == actor.ID {
			continue
		}

		taskID := t.ID
		n.create(ctx, notification.CreateNotificationInput{
			OrganizationID: t.OrganizationID,
			RecipientID:    assigneeID,
			Kind:           notification.KindAssigned,
			TaskID:         &taskID,
			Body:           fmt.Sprintf("You were assigned to %q", t.Title),
		})

		if n.mail != nil {
			n.mailTaskAssigned(ctx, t, actor, assigneeID)
		}
	}
}

// Mentioned notifies each user mentioned in a task or comment body
func (n *Notifier) Mentioned(ctx context.Context, orgID uuid.UUID, taskID *uuid.UUID, mentions []uuid.UUID, body string) {
	for _, userID := range mentions {
		n.create(ctx, notification.CreateNotificationInput{
			OrganizationID: orgID,
			RecipientID:    userID,
			Kind:           notification.KindMentioned,
			TaskID:         taskID,
			Body:           body,
		})
	}
}

// ApprovalRequested notifies the department head that an approval task awaits
// a verdict.
func (n *Notifier) ApprovalRequested(ctx context.Context, t *task.Task, actor *user.User, approverID uuid.UUID) {
	taskID := t.ID
	n.create(ctx, notification.CreateNotificationInput{
		OrganizationID: t.OrganizationID,
		RecipientID:    approverID,
		Kind:           notification.KindApproval,
		TaskID:         &taskID,
		Body:           fmt.Sprintf("Approval requested on %q", t.Title),
	})

	if n.mail == nil {
		return
	}

	recipient, err := n.users.GetByID(ctx, approverID)
	if err != nil {
		return
	}

	actorName := ""
	if actor != nil {
		actorName = actor.Name
	}

	go n.mail.SendTemplate(n.approvalRequestedTmpl, mailer.ApprovalRequestedContext{
		RecipientName: recipient.Name,
		TaskTitle:     t.Title,
		RequestedBy:   actorName,
	}, &mailer.EmailData{
		To:      []string{recipient.Email},
		Subject: fmt.Sprintf("Approval requested: %s", t.Title),
	})
}

func (n *Notifier) create(ctx context.Context, input notification.CreateNotificationInput) {
	// Best effort: the caller's operation already succeeded.
	_, _ = n.notifications.Create(ctx, input)
}

func (n *Notifier) mailTaskAssigned(ctx context.Context, t *task.Task, actor *user.User, assigneeID uuid.UUID) {
	recipient, err := n.users.GetByID(ctx, assigneeID)
	if err != nil {
		return
	}

	actorName := ""
	if actor != nil {
		actorName = actor.Name
	}

	dueDate := ""
	if t.DueDate != nil {
		dueDate = t.DueDate.Format(dueDateFormat)
	}

	go n.mail.SendTemplate(n.taskAssignedTmpl, mailer.TaskAssignedContext{
		RecipientName: recipient.Name,
		TaskTitle:     t.Title,
		AssignedBy:    actorName,
		DueDate:       dueDate,
	}, &mailer.EmailData{
		To:      []string{recipient.Email},
		Subject: fmt.Sprintf("Task assigned: %s", t.Title),
	})
}
