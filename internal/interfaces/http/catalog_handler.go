package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/gharkeseva/gharseva-api/internal/application/catalog"
	"github.com/gharkeseva/gharseva-api/internal/application/dto"
)

// decodeParam URL-decodes a path parameter. Category labels carry spaces
// ("House Maid"), which arrive percent-encoded.
func decodeParam(c *fiber.Ctx, name string) (string, error) {
	return url.PathUnescape(c.Params(name))
}

// CatalogHandler service-package catalog endpoints.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler builds the catalog handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// AddPackage POST /admin/services/add
func (h *CatalogHandler) AddPackage(c *fiber.Ctx) error {
	var in dto.CreatePackageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	p, err := h.uc.AddPackage(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatePackageResponse{Success: true, ServiceID: p.CustomServiceID})
}

// ListByCategory GET /services/:category
func (h *CatalogHandler) ListByCategory(c *fiber.Ctx) error {
	label, err := decodeParam(c, "category")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "bad category parameter"})
	}
	list, err := h.uc.ListByCategory(c.Context(), label)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "services": list})
}
