package handler

import (
	"errors"
	"net/http"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/department"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type DepartmentHandler struct {
	deptRepo DepartmentRepository
}

func NewDepartmentHandler(deptRepo DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{deptRepo: deptRepo}
}

type CreateDepartmentRequest struct {
	OrganizationID string  `json:"organization_id"`
	Name           string  `json:"name"`
	ManagerID      *string `json:"manager_id"`
}

type UpdateDepartmentRequest struct {
	Name      *string `json:"name"`
	ManagerID *string `json:"manager_id"`
}

func (h *DepartmentHandler) Create(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateDepartmentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	// Departments land in the caller's organization unless a platform user
	// provisions one for another tenant.
	orgID, err := auth.GetOrganizationID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}
	if req.OrganizationID != "" && principal.IsPlatformOrgUser {
		orgID, err = uuid.Parse(req.OrganizationID)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidOrgID)
		}
	}

	managerID, err := parseOptionalUUID(req.ManagerID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	dept, err := h.deptRepo.Create(c.Request().Context(), department.CreateDepartmentInput{
		OrganizationID: orgID,
		Name:           req.Name,
		ManagerID:      managerID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgOrgNotFound)
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		c.Logger().Errorf("Failed to create department: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateDeptFail)
	}

	return c.JSON(http.StatusCreated, dept)
}

func (h *DepartmentHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
	}

	dept, err := h.deptRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, dept)
}

func (h *DepartmentHandler) List(c echo.Context) error {
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

	limit := queryInt(c, queryLimit, 0)
	offset := queryInt(c, queryOffset, 0)

	depts, err := h.deptRepo.ListByOrganization(c.Request().Context(), orgID, limit, offset)
	if err != nil {
		c.Logger().Errorf("Failed to list departments for organization %s: %v", orgID, err)
		return respondError(c, http.StatusInternalServerError, msgListDeptsFail)
	}

	return c.JSON(http.StatusOK, depts)
}

func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
	}

	var req UpdateDepartmentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.Name(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Name = &trimmed
	}

	managerID, err := parseOptionalUUID(req.ManagerID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidUserID)
	}

	dept, err := h.deptRepo.Update(c.Request().Context(), id, department.UpdateDepartmentInput{
		Name:      req.Name,
		ManagerID: managerID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgDeptNotFound)
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		c.Logger().Errorf("Failed to update department %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateDeptFail)
	}

	return c.JSON(http.StatusOK, dept)
}

func (h *DepartmentHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
	}

	if err := h.deptRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgDeptNotFound)
		}
		c.Logger().Errorf("Failed to delete department %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteDeptFail)
	}

	return respondMessage(c, http.StatusOK, msgDeptDeleted)
}
