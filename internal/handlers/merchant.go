package handlers

import (
	"orusweb/internal/services/merchant"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// MerchantHandler is the seller back office.
type MerchantHandler struct {
	deps *Deps
}

func NewMerchantHandler(deps *Deps) *MerchantHandler {
	return &MerchantHandler{deps: deps}
}

func (h *MerchantHandler) service(c *fiber.Ctx) (*merchant.Service, call) {
	api, _, r := h.deps.seller(c)
	return merchant.NewService(api, r.n, h.deps.Logger), r
}

func (h *MerchantHandler) Orders(c *fiber.Ctx) error {
	svc, r := h.service(c)
	page, err := svc.Orders(r.ctx, c.Query("status"), utils.PageParam(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, page)
}

// UpdateOrderStatus moves the order in the path. The body names the status
// the seller saw and the one to move to.
func (h *MerchantHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := utils.IDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid order id")
	}
	var change merchant.StatusChange
	if !parse(c, &change) {
		return badBody(c)
	}
	change.ID = id
	svc, r := h.service(c)
	snap, err := svc.UpdateStatus(r.ctx, change)
	if err != nil {
		return utils.FailWith(c, err, snap)
	}
	return utils.Success(c, fiber.Map{"flow": snap, "next": merchant.Next(change.To)})
}

func (h *MerchantHandler) Products(c *fiber.Ctx) error {
	svc, r := h.service(c)
	page, err := svc.Products(r.ctx, utils.PageParam(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, page)
}
