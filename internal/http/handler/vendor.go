package handler

import (
	"errors"
	"net/http"
	"strings"
	"task-service/internal/auth"
	"task-service/internal/domain/vendor"
	apperrors "task-service/pkg/errors"
	"task-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type VendorHandler struct {
	vendorRepo VendorRepository
}

func NewVendorHandler(vendorRepo VendorRepository) *VendorHandler {
	return &VendorHandler{vendorRepo: vendorRepo}
}

type CreateVendorRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

type UpdateVendorRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email"`
}

func (h *VendorHandler) Create(c echo.Context) error {
	orgID, err := auth.GetOrganizationID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateVendorRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	req.ContactEmail = strings.ToLower(strings.TrimSpace(req.ContactEmail))
	if req.ContactEmail != "" {
		if err := validator.Email(req.ContactEmail); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}

	v, err := h.vendorRepo.Create(c.Request().Context(), vendor.CreateVendorInput{
		OrganizationID: orgID,
		Name:           req.Name,
		ContactEmail:   req.ContactEmail,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		c.Logger().Errorf("Failed to create vendor: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateVendorFail)
	}

	return c.JSON(http.StatusCreated, v)
}

func (h *VendorHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	v, err := h.vendorRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, v)
}

func (h *VendorHandler) List(c echo.Context) error {
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

	vendors, err := h.vendorRepo.ListByOrganization(c.Request().Context(), orgID,
		queryInt(c, queryLimit, 0), queryInt(c, queryOffset, 0))
	if err != nil {
		c.Logger().Errorf("Failed to list vendors for organization %s: %v", orgID, err)
		return respondError(c, http.StatusInternalServerError, msgListVendorsFail)
	}

	return c.JSON(http.StatusOK, vendors)
}

func (h *VendorHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateVendorRequest
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

	if req.ContactEmail != nil && *req.ContactEmail != "" {
		lowered := strings.ToLower(strings.TrimSpace(*req.ContactEmail))
		if err := validator.Email(lowered); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.ContactEmail = &lowered
	}

	v, err := h.vendorRepo.Update(c.Request().Context(), id, vendor.UpdateVendorInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgVendorNotFound)
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return respondError(c, http.StatusConflict, err.Error())
		}
		c.Logger().Errorf("Failed to update vendor %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateVendorFail)
	}

	return c.JSON(http.StatusOK, v)
}

func (h *VendorHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.vendorRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgVendorNotFound)
		}
		c.Logger().Errorf("Failed to delete vendor %s: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteVendorFail)
	}

	return respondMessage(c, http.StatusOK, msgVendorDeleted)
}
