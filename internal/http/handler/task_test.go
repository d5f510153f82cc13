package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/task"
	"task-service/internal/domain/user"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type taskRepoStub struct {
	task    *task.Task
	updated *task.Task
	err     error
}

func (s *taskRepoStub) Create(_ context.Context, _ task.CreateTaskInput) (*task.Task, error) {
	return s.task, s.err
}

func (s *taskRepoStub) GetByID(_ context.Context, _ uuid.UUID) (*task.Task, error) {
	return s.task, s.err
}

func (s *taskRepoStub) List(_ context.Context, _ task.ListTasksFilter) ([]*task.Task, error) {
	if s.task == nil {
		return nil, s.err
	}
	return []*task.Task{s.task}, s.err
}

func (s *taskRepoStub) Update(_ context.Context, _ uuid.UUID, _ task.UpdateTaskInput) (*task.Task, error) {
	return s.result(), s.err
}

func (s *taskRepoStub) SetAssignees(_ context.Context, _ uuid.UUID, _ []uuid.UUID) (*task.Task, error) {
	return s.result(), s.err
}

func (s *taskRepoStub) SetApproval(_ context.Context, _ uuid.UUID, _ string, _ uuid.UUID) (*task.Task, error) {
	return s.result(), s.err
}

func (s *taskRepoStub) MarkOrdered(_ context.Context, _ uuid.UUID, _ time.Time) (*task.Task, error) {
	return s.result(), s.err
}

func (s *taskRepoStub) SoftDelete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func (s *taskRepoStub) result() *task.Task {
	if s.updated != nil {
		return s.updated
	}
	return s.task
}

type notifierStub struct {
	assigned  [][]uuid.UUID
	mentioned [][]uuid.UUID
	approvals []uuid.UUID
}

func (s *notifierStub) TaskAssigned(_ context.Context, _ *task.Task, _ *user.User, assignees []uuid.UUID) {
	s.assigned = append(s.assigned, assignees)
}

func (s *notifierStub) Mentioned(_ context.Context, _ uuid.UUID, _ *uuid.UUID, mentions []uuid.UUID, _ string) {
	s.mentioned = append(s.mentioned, mentions)
}

func (s *notifierStub) ApprovalRequested(_ context.Context, _ *task.Task, _ *user.User, approverID uuid.UUID) {
	s.approvals = append(s.approvals, approverID)
}

func newTaskActionContext(taskID uuid.UUID, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tasks/:id")
	c.SetParamNames("id")
	c.SetParamValues(taskID.String())
	c.Set(auth.ContextKeyUserID, uuid.New())
	c.Set(auth.ContextKeyOrganizationID, uuid.New())
	return c, rec
}

func approvalTask(state string) *task.Task {
	return &task.Task{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Type:           task.TypeApproval,
		Title:          "Replace scaffolding",
		Status:         task.StatusOpen,
		ApprovalState:  state,
		CreatedBy:      uuid.New(),
	}
}

func TestApprove_RecordsVerdict(t *testing.T) {
	pending := approvalTask(task.ApprovalPending)
	approved := approvalTask(task.ApprovalApproved)
	repo := &taskRepoStub{task: pending, updated: approved}
	h := NewTaskHandler(repo, &userRepoStub{}, &notifierStub{})

	c, rec := newTaskActionContext(pending.ID, `{"verdict":"approved"}`)

	err := h.Approve(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApprove_RejectsInvalidVerdict(t *testing.T) {
	pending := approvalTask(task.ApprovalPending)
	h := NewTaskHandler(&taskRepoStub{task: pending}, &userRepoStub{}, &notifierStub{})

	c, rec := newTaskActionContext(pending.ID, `{"verdict":"maybe"}`)

	err := h.Approve(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApprove_OnlyApprovalTasks(t *testing.T) {
	standard := approvalTask(task.ApprovalPending)
	standard.Type = task.TypeStandard
	h := NewTaskHandler(&taskRepoStub{task: standard}, &userRepoStub{}, &notifierStub{})

	c, rec := newTaskActionContext(standard.ID, `{"verdict":"approved"}`)

	err := h.Approve(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestApprove_VerdictIsFinal(t *testing.T) {
	decided := approvalTask(task.ApprovalApproved)
	h := NewTaskHandler(&taskRepoStub{task: decided}, &userRepoStub{}, &notifierStub{})

	c, rec := newTaskActionContext(decided.ID, `{"verdict":"rejected"}`)

	err := h.Approve(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrder_OnlyProcurementTasks(t *testing.T) {
	standard := approvalTask("")
	standard.Type = task.TypeStandard
	h := NewTaskHandler(&taskRepoStub{task: standard}, &userRepoStub{}, &notifierStub{})

	c, rec := newTaskActionContext(standard.ID, `{}`)

	err := h.Order(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOrder_AlreadyOrderedConflicts(t *testing.T) {
	orderedAt := time.Now().UTC()
	procurement := &task.Task{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Type:           task.TypeProcurement,
		Title:          "Order rebar",
		Status:         task.StatusInProgress,
		OrderedAt:      &orderedAt,
		CreatedBy:      uuid.New(),
	}
	h := NewTaskHandler(&taskRepoStub{task: procurement}, &userRepoStub{}, &notifierStub{})

	c, rec := newTaskActionContext(procurement.ID, `{}`)

	err := h.Order(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAssign_NotifiesOnlyNewAssignees(t *testing.T) {
	existing := uuid.New()
	added := uuid.New()
	before := &task.Task{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Type:           task.TypeStandard,
		Title:          "Pour foundation",
		Status:         task.StatusOpen,
		Assignees:      []uuid.UUID{existing},
		CreatedBy:      uuid.New(),
	}
	after := *before
	after.Assignees = []uuid.UUID{existing, added}

	notifier := &notifierStub{}
	repo := &taskRepoStub{task: before, updated: &after}
	h := NewTaskHandler(repo, &userRepoStub{}, notifier)

	c, rec := newTaskActionContext(before.ID,
		`{"assignees":["`+existing.String()+`","`+added.String()+`"]}`)

	err := h.Assign(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Len(t, notifier.assigned, 1)
	assert.Equal(t, []uuid.UUID{added}, notifier.assigned[0])
}

func TestNewMentions(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name   string
		before []uuid.UUID
		after  []uuid.UUID
		want   int
	}{
		{"No change", []uuid.UUID{a}, []uuid.UUID{a}, 0},
		{"One added", []uuid.UUID{a}, []uuid.UUID{a, b}, 1},
		{"All new", nil, []uuid.UUID{a, b, c}, 3},
		{"Removed only", []uuid.UUID{a, b}, []uuid.UUID{a}, 0},
		{"Both empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newMentions(tt.before, tt.after)
			assert.Len(t, got, tt.want)
		})
	}
}
