package handler

import (
	"errors"
	"net/http"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/material"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type MaterialHandler struct {
	materialRepo MaterialRepository
}

func NewMaterialHandler(materialRepo MaterialRepository) *MaterialHandler {
	return &MaterialHandler{materialRepo: materialRepo}
}

type CreateMaterialRequest struct {
	DepartmentID   *string `json:"department_id"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	VendorID       *string `json:"vendor_id"`
}

type UpdateMaterialRequest struct {
	Name           *string `json:"name"`
	Unit           *string `json:"unit"`
	UnitPriceCents *int64  `json:"unit_price_cents"`
	VendorID       *string `json:"vendor_id"`
}

func (h *MaterialHandler) Create(c echo.Context) error {
	orgID, err := auth.GetOrganizationID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateMaterialRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	deptID, err := parseOptionalUUID(req.DepartmentID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDeptID)
	}

	vendorID, err := parseOptionalUUID(req.VendorID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	m, err := h.materialRepo.Create(c.Request().Context(), material.CreateMaterialInput{
		OrganizationID: orgID,
		DepartmentID:   deptID,
		Name:           req.Name,
		Unit:           req.Unit,
		UnitPriceCents: req.UnitPriceCents,
		VendorID:       vendorID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgVendorNotFound)
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		c.Logger().Errorf("Failed to create material: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateMaterialFail)
	}

	return c.JSON(http.StatusCreated, m)
}

func (h *MaterialHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	m, err := h.materialRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, m)
}

func (h *MaterialHandler) List(c echo.Context) error {
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

	materials, err := h.materialRepo.ListByOrganization(c.Request().Context(), orgID,
		queryInt(c, queryLimit, 0), queryInt(c, queryOffset, 0))
	if err != nil {
		c.Logger().Errorf("Failed to list materials for organization %s: %v", orgID, err)
		return respondError(c, http.StatusInternalServerError, msgListMaterialsFail)
	}

	return c.JSON(http.StatusOK, materials)
}

func (h *MaterialHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateMaterialRequest
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

	vendorID, err := parseOptionalUUID(req.VendorID)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	m, err := h.materialRepo.Update(c.Request().Context(), id, material.UpdateMaterialInput{
		Name:           req.Name,
		Unit:           req.Unit,
		UnitPriceCents: req.UnitPriceCents,
		VendorID:       vendorID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgMaterialNotFound)
		}
		c.Logger().Errorf("Failed to update material %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateMaterialFail)
	}

	return c.JSON(http.StatusOK, m)
}

func (h *MaterialHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.materialRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgMaterialNotFound)
		}
		c.Logger().Errorf("Failed to delete material %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteMaterialFail)
	}

	return respondMessage(c, http.StatusOK, msgMaterialDeleted)
}
