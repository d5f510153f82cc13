package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"task-service/internal/domain/task"
	"task-service/internal/domain/user"
	"task-service/internal/policy"
	"task-service/internal/policy/presets"
	apperrors "task-service/pkg/errors"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type taskRepoStub struct {
	task *task.Task
	err  error
}

func (s *taskRepoStub) GetByID(_ context.Context, _ uuid.UUID) (*task.Task, error) {
	return s.task, s.err
}

type userRepoStub struct {
	user *user.User
	err  error
}

func (s *userRepoStub) GetByID(_ context.Context, _ uuid.UUID) (*user.User, error) {
	return s.user, s.err
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func newTaskContext(e *echo.Echo, taskID string, principal *policy.Principal) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tasks/:id")
	c.SetParamNames("id")
	c.SetParamValues(taskID)
	if principal != nil {
		c.Set(ContextKeyPrincipal, principal)
	}
	return c, rec
}

func TestPolicyMiddleware_MissingPrincipal(t *testing.T) {
	e := echo.New()
	m := NewPolicyMiddleware(nil, PolicyRepos{Tasks: &taskRepoStub{}})

	c, rec := newTaskContext(e, uuid.NewString(), nil)

	err := m.RequireTask(presets.OpRead)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPolicyMiddleware_AllowsAdminInOwnOrg(t *testing.T) {
	e := echo.New()
	orgID := uuid.New()
	loaded := &task.Task{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Type:           task.TypeStandard,
		CreatedBy:      uuid.New(),
	}
	m := NewPolicyMiddleware(nil, PolicyRepos{Tasks: &taskRepoStub{task: loaded}})

	principal := &policy.Principal{
		ID:             uuid.NewString(),
		Role:           presets.RoleAdmin,
		OrganizationID: orgID.String(),
	}

	c, rec := newTaskContext(e, loaded.ID.String(), principal)

	err := m.RequireTask(presets.OpRead)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	decision, ok := GetDecision(c)
	assert.True(t, ok)
	assert.True(t, decision.Allowed)
	assert.Equal(t, presets.ResourceTask, decision.Resource)
}

func TestPolicyMiddleware_DeniesUserOutsideDepartment(t *testing.T) {
	e := echo.New()
	orgID := uuid.New()
	deptID := uuid.New()
	loaded := &task.Task{
		ID:             uuid.New(),
		OrganizationID: orgID,
		DepartmentID:   &deptID,
		Type:           task.TypeStandard,
		CreatedBy:      uuid.New(),
	}
	m := NewPolicyMiddleware(nil, PolicyRepos{Tasks: &taskRepoStub{task: loaded}})

	principal := &policy.Principal{
		ID:             uuid.NewString(),
		Role:           presets.RoleUser,
		OrganizationID: orgID.String(),
		DepartmentID:   uuid.NewString(),
	}

	c, rec := newTaskContext(e, loaded.ID.String(), principal)

	err := m.RequireTask(presets.OpRead)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPolicyMiddleware_ResolverErrorPropagates(t *testing.T) {
	e := echo.New()
	notFound := apperrors.NotFound("task not found")
	m := NewPolicyMiddleware(nil, PolicyRepos{Tasks: &taskRepoStub{err: notFound}})

	principal := &policy.Principal{
		ID:             uuid.NewString(),
		Role:           presets.RoleAdmin,
		OrganizationID: uuid.NewString(),
	}

	c, _ := newTaskContext(e, uuid.NewString(), principal)

	err := m.RequireTask(presets.OpRead)(okHandler)(c)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestPolicyMiddleware_InvalidIDRejected(t *testing.T) {
	e := echo.New()
	m := NewPolicyMiddleware(nil, PolicyRepos{Tasks: &taskRepoStub{}})

	principal := &policy.Principal{
		ID:             uuid.NewString(),
		Role:           presets.RoleAdmin,
		OrganizationID: uuid.NewString(),
	}

	c, _ := newTaskContext(e, "not-a-uuid", principal)

	err := m.RequireTask(presets.OpRead)(okHandler)(c)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestPolicyMiddleware_SelfUserReadViaParamAlias(t *testing.T) {
	e := echo.New()
	orgID := uuid.New()
	selfID := uuid.New()
	loaded := &user.User{
		ID:             selfID,
		OrganizationID: orgID,
		Role:           string(presets.RoleUser),
	}
	m := NewPolicyMiddleware(nil, PolicyRepos{Users: &userRepoStub{user: loaded}})

	principal := &policy.Principal{
		ID:             selfID.String(),
		Role:           presets.RoleUser,
		OrganizationID: orgID.String(),
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:id")
	c.SetParamNames("id")
	c.SetParamValues(selfID.String())
	c.Set(ContextKeyPrincipal, principal)

	err := m.RequireUser(presets.OpRead)(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPolicyMiddleware_UnconfiguredOperationDenies(t *testing.T) {
	e := echo.New()
	m := NewPolicyMiddleware(nil, PolicyRepos{})

	principal := &policy.Principal{
		ID:             uuid.NewString(),
		Role:           presets.RoleSuperAdmin,
		OrganizationID: uuid.NewString(),
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyPrincipal, principal)

	guard := m.Require(presets.ResourceVendor, policy.Operation("archive"))

	err := guard(okHandler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
