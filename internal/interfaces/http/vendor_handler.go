package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gharkeseva/gharseva-api/internal/application/auth"
	"github.com/gharkeseva/gharseva-api/internal/application/booking"
	"github.com/gharkeseva/gharseva-api/internal/application/dto"
)

// VendorHandler vendor-facing profile and job endpoints.
type VendorHandler struct {
	authUC    *auth.UseCase
	bookingUC *booking.UseCase
}

// NewVendorHandler builds the vendor handler.
func NewVendorHandler(authUC *auth.UseCase, bookingUC *booking.UseCase) *VendorHandler {
	return &VendorHandler{authUC: authUC, bookingUC: bookingUC}
}

// Profile GET /vendor/profile/:vendorId
func (h *VendorHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.authUC.VendorProfile(c.Context(), c.Params("vendorId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "vendor": profile})
}

// Jobs GET /vendor/jobs/:vendorId
//
// Returns the job pool: bookings assigned to this vendor plus unassigned
// pending ones, across every category.
func (h *VendorHandler) Jobs(c *fiber.Ctx) error {
	list, err := h.bookingUC.ListForVendor(c.Context(), c.Params("vendorId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "bookings": booking.ToResponses(list)})
}

// UpdateJob PUT /vendor/update-job/:bookingId
func (h *VendorHandler) UpdateJob(c *fiber.Ctx) error {
	var patch dto.VendorJobPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	b, err := h.bookingUC.UpdateByVendor(c.Context(), c.Params("bookingId"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "booking": booking.ToResponse(b)})
}

// History GET /vendor/history/:vendorId
func (h *VendorHandler) History(c *fiber.Ctx) error {
	list, err := h.bookingUC.History(c.Context(), c.Params("vendorId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "bookings": booking.ToResponses(list)})
}
