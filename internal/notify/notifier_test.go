package notify

import (
	"context"
	"task-service/internal/domain/notification"
	"task-service/internal/domain/task"
	"task-service/internal/domain/user"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type creatorStub struct {
	created []notification.CreateNotificationInput
}

func (s *creatorStub) Create(_ context.Context, input notification.CreateNotificationInput) (*notification.Notification, error) {
	s.created = append(s.created, input)
	return &notification.Notification{ID: uuid.New()}, nil
}

type userGetterStub struct {
	user *user.User
	err  error
}

func (s *userGetterStub) GetByID(_ context.Context, _ uuid.UUID) (*user.User, error) {
	return s.user, s.err
}

func TestTaskAssigned_CreatesNotificationPerAssignee(t *testing.T) {
	creator := &creatorStub{}
	n := New(creator, &userGetterStub{}, nil)

	tk := &task.Task{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Title:          "Pour foundation",
	}
	assignees := []uuid.UUID{uuid.New(), uuid.New()}

	n.TaskAssigned(context.Background(), tk, nil, assignees)

	assert.Len(t, creator.created, 2)
	for i, input := range creator.created {
		assert.Equal(t, assignees[i], input.RecipientID)
		assert.Equal(t, notification.KindAssigned, input.Kind)
		assert.Equal(t, tk.OrganizationID, input.OrganizationID)
		assert.Equal(t, tk.ID, *input.TaskID)
	}
}

func TestTaskAssigned_SkipsSelfAssignment(t *testing.T) {
	creator := &creatorStub{}
	n := New(creator, &userGetterStub{}, nil)

	actor := &user.User{ID: uuid.New(), Name: "Pat"}
	other := uuid.New()
	tk := &task.Task{ID: uuid.New(), OrganizationID: uuid.New(), Title: "Pour foundation"}

	n.TaskAssigned(context.Background(), tk, actor, []uuid.UUID{actor.ID, other})

	assert.Len(t, creator.created, 1)
	assert.Equal(t, other, creator.created[0].RecipientID)
}

func TestMentioned_CreatesNotificationPerMention(t *testing.T) {
	creator := &creatorStub{}
	n := New(creator, &userGetterStub{}, nil)

	orgID := uuid.New()
	taskID := uuid.New()
	mentions := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	n.Mentioned(context.Background(), orgID, &taskID, mentions, "see thread")

	assert.Len(t, creator.created, 3)
	for _, input := range creator.created {
		assert.Equal(t, notification.KindMentioned, input.Kind)
		assert.Equal(t, orgID, input.OrganizationID)
	}
}

func TestApprovalRequested_NotifiesApprover(t *testing.T) {
	creator := &creatorStub{}
	n := New(creator, &userGetterStub{}, nil)

	approver := uuid.New()
	tk := &task.Task{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Type:           task.TypeApproval,
		Title:          "Replace scaffolding",
	}

	n.ApprovalRequested(context.Background(), tk, nil, approver)

	assert.Len(t, creator.created, 1)
	assert.Equal(t, approver, creator.created[0].RecipientID)
	assert.Equal(t, notification.KindApproval, creator.created[0].Kind)
}
