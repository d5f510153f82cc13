package handler

import (
	"errors"
	"net/http"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/organization"
	"task-service/internal/domain/user"
	"task-service/internal/policy/presets"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/password"
	"task-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant; comparing against it keeps unknown-email
// and wrong-password responses on the same clock.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

type AuthHandler struct {
	userRepo   UserRepository
	db         TenantBootstrapper
	jwtService *auth.JWTService
}

func NewAuthHandler(userRepo UserRepository, db TenantBootstrapper, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		db:         db,
		jwtService: jwtService,
	}
}

type SignupRequest struct {
	OrganizationName string `json:"organization_name"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

type SignupResponse struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	OrganizationID string `json:"organization_id"`
	Token          string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Signup creates a tenant organization together with its first Admin user
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Email(req.Email); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if err := validator.Password(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	req.OrganizationName = strings.TrimSpace(req.OrganizationName)
	if err := validator.Name(req.OrganizationName); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	org, u, err := h.db.BootstrapTenant(c.Request().Context(),
		organization.CreateOrganizationInput{Name: req.OrganizationName},
		user.CreateUserInput{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: passwordHash,
			Role:         string(presets.RoleAdmin),
		})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		return respondError(c, http.StatusInternalServerError, msgCreateAccountFail)
	}

	token, err := h.jwtService.Generate(u.ID, org.ID, u.Email)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		UserID:         u.ID.String(),
		Email:          u.Email,
		OrganizationID: org.ID.String(),
		Token:          token,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		password.Verify("", dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	u, err := h.userRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "user not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking email existence.
		password.Verify(req.Password, dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.jwtService.Generate(u.ID, u.OrganizationID, u.Email)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
	})
}
