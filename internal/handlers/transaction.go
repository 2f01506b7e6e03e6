package handlers

import (
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Transactions lists the role's transaction history, optionally filtered
// by type.
func (h *DashboardHandler) Transactions(c *fiber.Ctx) error {
	svc, r := h.service(c)
	page, err := svc.Transactions(r.ctx, c.Query("type"), utils.PageParam(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, page)
}
