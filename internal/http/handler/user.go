package handler

import (
	"errors"
	"net/http"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/user"
	"task-service/internal/policy"
	"task-service/internal/policy/presets"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/password"
	"task-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userRepo UserRepository
}

func NewUserHandler(userRepo UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type CreateUserRequest struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"department_id"`
	IsHod        bool    `json:"is_hod"`
}

type UpdateUserRequest struct {
	Email        *string `json:"email"`
	Name         *string `json:"name"`
	Password     *string `json:"password"`
	Role         *string `json:"role"`
	DepartmentID *string `json:"department_id"`
	IsHod        *bool   `json:"is_hod"`
}

// UserResponse omits the password hash
type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	OrganizationID string  `json:"organization_id"`
	DepartmentID   *string `json:"department_id"`
	IsHod          bool    `json:"is_hod"`
}

func toUserResponse(u *user.User) UserResponse {
	resp := UserResponse{
		ID:             u.ID.String(),
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		OrganizationID: u.OrganizationID.String(),
		IsHod:          u.IsHod,
	}
	if u.DepartmentID != nil {
		deptID := u.DepartmentID.String()
		resp.DepartmentID = &deptID
	}
	return resp
}

func toUserResponses(users []*user.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses
}

func validRole(role string) bool {
	switch policy.Role(role) {
	case presets.RoleSuperAdmin, presets.RoleAdmin, presets.RoleHod, presets.RoleUser:
		return true
	default:
		return false
	}
}

func (h *UserHandler) Create(c echo.Context) error {
	orgID, err := auth.GetOrganizationID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateUserRequest
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

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if !validRole(req.Role) {
		return respondError(c, http.StatusBadRequest, msgInvalidRole)
	}

	deptID, err := parseOptionalUUID(req.DepartmentID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	u, err := h.userRepo.Create(c.Request().Context(), user.CreateUserInput{
		Email:          req.Email,
		Name:           req.Name,
		PasswordHash:   passwordHash,
		Role:           req.Role,
		OrganizationID: orgID,
		DepartmentID:   deptID,
		IsHod:          req.IsHod,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) || errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgDeptNotFound)
		}
		c.Logger().Errorf("Failed to create user: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateUserFail)
	}

	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	u, err := h.userRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) List(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	orgID, err := auth.GetOrganizationID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}
	if raw := c.QueryParam(queryOrg); raw != "" && principal.IsPlatformOrgUser {
		orgID, err = uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidOrgID)
		}
	}

	var deptID *uuid.UUID
	if raw := c.QueryParam(queryDepartment); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
		}
		deptID = &parsed
	}

	users, err := h.userRepo.List(c.Request().Context(), user.ListUsersFilter{
		OrganizationID: orgID,
		DepartmentID:   deptID,
		Limit:          queryInt(c, queryLimit, 0),
		Offset:         queryInt(c, queryOffset, 0),
	})
	if err != nil {
		c.Logger().Errorf("Failed to list users for organization %s: %v", orgID, err)
		return respondError(c, http.StatusInternalServerError, msgListUsersFail)
	}

	return c.JSON(http.StatusOK, toUserResponses(users))
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	var req UpdateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := validator.Email(lowered); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Email = &lowered
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.Name(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Name = &trimmed
	}

	if req.Role != nil && !validRole(*req.Role) {
		return respondError(c, http.StatusBadRequest, msgInvalidRole)
	}

	var passwordHash *string
	if req.Password != nil {
		if err := validator.Password(*req.Password); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
		}
		passwordHash = &hashed
	}

	deptID, err := parseOptionalUUID(req.DepartmentID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
	}

	u, err := h.userRepo.Update(c.Request().Context(), id, user.UpdateUserInput{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Role:         req.Role,
		DepartmentID: deptID,
		IsHod:        req.IsHod,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgUserNotFound)
		}
		if errors.Is(err, apperrors.ErrEmailExists) || errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		c.Logger().Errorf("Failed to update user %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateUserFail)
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	if err := h.userRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgUserNotFound)
		}
		c.Logger().Errorf("Failed to delete user %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteUserFail)
	}

	return respondMessage(c, http.StatusOK, msgUserDeleted)
}
