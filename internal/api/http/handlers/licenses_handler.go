package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/license-service/internal/api/dto"
	"github.com/spec-kit/license-service/internal/auth"
	"github.com/spec-kit/license-service/internal/service"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// LicensesHandler manages the driving license endpoints. All routes
// require an authenticated caller; the license is always resolved through
// the caller's identity, never a client-supplied id.
type LicensesHandler struct {
	service *service.LicenseService
}

// NewLicensesHandler constructs handler.
func NewLicensesHandler(licenseService *service.LicenseService) *LicensesHandler {
	return &LicensesHandler{service: licenseService}
}

// Create POST /drivingLicense/create.
func (h *LicensesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.LicenseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.LicenseCreateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		VehicleType: req.VehicleType,
		VehicleMake: req.VehicleMake,
		Address:     req.Address,
	}
	license, err := h.service.Create(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK("Driving license created successfully", dto.NewLicenseResponse(license)))
}

// GetDetails GET /drivingLicense/getLicenseDetails.
func (h *LicensesHandler) GetDetails(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	license, err := h.service.Get(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Driving license retrieved successfully", dto.NewLicenseResponse(license)))
}

// UpdateStatus POST /drivingLicense/updateStatus?status=S.
func (h *LicensesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	// query strings alias fasthttp's reusable request buffer; copy before
	// anything downstream can retain them
	license, err := h.service.UpdateStatus(c.Context(), principal.User.ID, utils.CopyString(c.Query("status")))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Driving license status updated successfully", dto.NewLicenseResponse(license)))
}

// UpdateInfo POST /drivingLicense/updateLicenseInfo.
func (h *LicensesHandler) UpdateInfo(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.LicenseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.LicenseUpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		VehicleType: req.VehicleType,
		VehicleMake: req.VehicleMake,
		Address:     req.Address,
		Status:      req.LicenseStatus,
	}
	license, err := h.service.UpdateInfo(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Driving license info updated successfully", dto.NewLicenseResponse(license)))
}

// ChangeAddress POST /drivingLicense/changeAddress?address=A.
func (h *LicensesHandler) ChangeAddress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	license, err := h.service.ChangeAddress(c.Context(), principal.User.ID, utils.CopyString(c.Query("address")))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Driving license address changed successfully", dto.NewLicenseResponse(license)))
}

// Renew POST /drivingLicense/renewLicense.
func (h *LicensesHandler) Renew(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	license, err := h.service.Renew(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Driving license renewed successfully", dto.NewLicenseResponse(license)))
}
