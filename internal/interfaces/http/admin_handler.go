package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gharkeseva/gharseva-api/internal/application/auth"
	"github.com/gharkeseva/gharseva-api/internal/application/dashboard"
	"github.com/gharkeseva/gharseva-api/internal/application/directory"
	"github.com/gharkeseva/gharseva-api/internal/application/dto"
)

// AdminHandler admin listing and dashboard endpoints.
type AdminHandler struct {
	resolver    *directory.Resolver
	dashboardUC *dashboard.UseCase
}

// NewAdminHandler builds the admin handler.
func NewAdminHandler(resolver *directory.Resolver, dashboardUC *dashboard.UseCase) *AdminHandler {
	return &AdminHandler{resolver: resolver, dashboardUC: dashboardUC}
}

// Vendors GET /admin/vendors
//
// Concatenates every category partition in registry order.
func (h *AdminHandler) Vendors(c *fiber.Ctx) error {
	vendors, err := h.resolver.AllVendors(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.VendorProfile, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, auth.ToVendorProfile(v))
	}
	return c.JSON(fiber.Map{"success": true, "vendors": out})
}

// Stats GET /admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboardUC.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
