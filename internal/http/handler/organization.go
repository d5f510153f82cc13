package handler

import (
	"errors"
	"net/http"
	"strings"
	"task-service/internal/domain/organization"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OrganizationHandler struct {
	orgRepo OrganizationRepository
}

func NewOrganizationHandler(orgRepo OrganizationRepository) *OrganizationHandler {
	return &OrganizationHandler{orgRepo: orgRepo}
}

type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

type UpdateOrganizationRequest struct {
	Name *string `json:"name"`
}

func (h *OrganizationHandler) Create(c echo.Context) error {
	var req CreateOrganizationRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	org, err := h.orgRepo.Create(c.Request().Context(), organization.CreateOrganizationInput{
		Name: req.Name,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		c.Logger().Errorf("Failed to create organization: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateOrgFail)
	}

	return c.JSON(http.StatusCreated, org)
}

func (h *OrganizationHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidOrgID)
	}

	org, err := h.orgRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandler) List(c echo.Context) error {
	limit := queryInt(c, queryLimit, 0)
	offset := queryInt(c, queryOffset, 0)

	orgs, err := h.orgRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		c.Logger().Errorf("Failed to list organizations: %v", err)
		return respondError(c, http.StatusInternalServerError, msgListOrgsFail)
	}

	return c.JSON(http.StatusOK, orgs)
}

func (h *OrganizationHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidOrgID)
	}

	var req UpdateOrganizationRequest
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

	org, err := h.orgRepo.Update(c.Request().Context(), id, organization.UpdateOrganizationInput{
		Name: req.Name,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgOrgNotFound)
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		c.Logger().Errorf("Failed to update organization %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateOrgFail)
	}

	return c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidOrgID)
	}

	if err := h.orgRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgOrgNotFound)
		}
		c.Logger().Errorf("Failed to delete organization %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteOrgFail)
	}

	return respondMessage(c, http.StatusOK, msgOrgDeleted)
}
