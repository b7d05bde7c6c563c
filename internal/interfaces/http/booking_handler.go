package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gharkeseva/gharseva-api/internal/application/booking"
	"github.com/gharkeseva/gharseva-api/internal/application/dto"
)

// BookingHandler customer-facing booking endpoints.
type BookingHandler struct {
	uc *booking.UseCase
}

// NewBookingHandler builds the booking handler.
func NewBookingHandler(uc *booking.UseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Create POST /bookings/create
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	b, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateBookingResponse{Success: true, BookingID: b.CustomBookingID})
}

// ForCustomer GET /bookings/user/:userId
func (h *BookingHandler) ForCustomer(c *fiber.Ctx) error {
	list, err := h.uc.ListForCustomer(c.Context(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "bookings": booking.ToResponses(list)})
}
