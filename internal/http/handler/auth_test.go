package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/organization"
	"task-service/internal/domain/user"
	"task-service/internal/policy/presets"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/password"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "k9f2Lm8xQp4Rv7Tz1Wc5Yb3Ne6Hj0Gd2"

type userRepoStub struct {
	user *user.User
	err  error
}

func (s *userRepoStub) Create(_ context.Context, _ user.CreateUserInput) (*user.User, error) {
	return s.user, s.err
}

func (s *userRepoStub) GetByID(_ context.Context, _ uuid.UUID) (*user.User, error) {
	return s.user, s.err
}

func (s *userRepoStub) GetByEmail(_ context.Context, _ string) (*user.User, error) {
	return s.user, s.err
}

func (s *userRepoStub) List(_ context.Context, _ user.ListUsersFilter) ([]*user.User, error) {
	if s.user == nil {
		return nil, s.err
	}
	return []*user.User{s.user}, s.err
}

func (s *userRepoStub) Update(_ context.Context, _ uuid.UUID, _ user.UpdateUserInput) (*user.User, error) {
	return s.user, s.err
}

func (s *userRepoStub) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

type bootstrapperStub struct {
	org  *organization.Organization
	user *user.User
	err  error

	gotOrgInput  organization.CreateOrganizationInput
	gotUserInput user.CreateUserInput
}

func (s *bootstrapperStub) BootstrapTenant(_ context.Context, orgInput organization.CreateOrganizationInput, adminInput user.CreateUserInput) (*organization.Organization, *user.User, error) {
	s.gotOrgInput = orgInput
	s.gotUserInput = adminInput
	return s.org, s.user, s.err
}

func newJSONContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignup_CreatesTenantAndReturnsToken(t *testing.T) {
	orgID := uuid.New()
	userID := uuid.New()
	db := &bootstrapperStub{
		org: &organization.Organization{ID: orgID, Name: "Acme Builders"},
		user: &user.User{
			ID:             userID,
			Email:          "owner@acme.example",
			Name:           "Pat Owner",
			Role:           string(presets.RoleAdmin),
			OrganizationID: orgID,
		},
	}
	h := NewAuthHandler(&userRepoStub{}, db, auth.NewJWTService(testJWTSecret, time.Hour))

	c, rec := newJSONContext(http.MethodPost,
		`{"organization_name":"Acme Builders","name":"Pat Owner","email":"owner@acme.example","password":"longenough"}`)

	err := h.Signup(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp SignupResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp.UserID)
	assert.Equal(t, orgID.String(), resp.OrganizationID)
	assert.NotEmpty(t, resp.Token)

	assert.Equal(t, "Acme Builders", db.gotOrgInput.Name)
	assert.Equal(t, string(presets.RoleAdmin), db.gotUserInput.Role)
	assert.NotEqual(t, "longenough", db.gotUserInput.PasswordHash)
}

func TestSignup_RejectsInvalidEmail(t *testing.T) {
	h := NewAuthHandler(&userRepoStub{}, &bootstrapperStub{}, auth.NewJWTService(testJWTSecret, time.Hour))

	c, rec := newJSONContext(http.MethodPost,
		`{"organization_name":"Acme","name":"Pat","email":"not-an-email","password":"longenough"}`)

	err := h.Signup(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_ConflictOnExistingEmail(t *testing.T) {
	db := &bootstrapperStub{err: apperrors.ErrEmailExists}
	h := NewAuthHandler(&userRepoStub{}, db, auth.NewJWTService(testJWTSecret, time.Hour))

	c, rec := newJSONContext(http.MethodPost,
		`{"organization_name":"Acme","name":"Pat","email":"owner@acme.example","password":"longenough"}`)

	err := h.Signup(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignup_RejectsUnknownFields(t *testing.T) {
	h := NewAuthHandler(&userRepoStub{}, &bootstrapperStub{}, auth.NewJWTService(testJWTSecret, time.Hour))

	c, rec := newJSONContext(http.MethodPost,
		`{"organization_name":"Acme","name":"Pat","email":"owner@acme.example","password":"longenough","role":"super_admin"}`)

	err := h.Signup(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	hash, err := password.Hash("longenough")
	assert.NoError(t, err)

	repo := &userRepoStub{user: &user.User{
		ID:             uuid.New(),
		Email:          "owner@acme.example",
		PasswordHash:   hash,
		OrganizationID: uuid.New(),
	}}
	h := NewAuthHandler(repo, &bootstrapperStub{}, auth.NewJWTService(testJWTSecret, time.Hour))

	c, rec := newJSONContext(http.MethodPost,
		`{"email":"owner@acme.example","password":"longenough"}`)

	err = h.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := password.Hash("longenough")
	assert.NoError(t, err)

	repo := &userRepoStub{user: &user.User{
		ID:           uuid.New(),
		Email:        "owner@acme.example",
		PasswordHash: hash,
	}}
	h := NewAuthHandler(repo, &bootstrapperStub{}, auth.NewJWTService(testJWTSecret, time.Hour))

	c, rec := newJSONContext(http.MethodPost,
		`{"email":"owner@acme.example","password":"wrong-password"}`)

	err = h.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &userRepoStub{err: apperrors.ErrNotFound}
	h := NewAuthHandler(repo, &bootstrapperStub{}, auth.NewJWTService(testJWTSecret, time.Hour))

	c, rec := newJSONContext(http.MethodPost,
		`{"email":"ghost@acme.example","password":"longenough"}`)

	err := h.Login(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
