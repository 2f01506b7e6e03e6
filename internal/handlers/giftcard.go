package handlers

import (
	"orusweb/internal/services/giftcard"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type GiftCardHandler struct {
	deps *Deps
}

func NewGiftCardHandler(deps *Deps) *GiftCardHandler {
	return &GiftCardHandler{deps: deps}
}

func (h *GiftCardHandler) service(c *fiber.Ctx) (*giftcard.Service, call) {
	api, _, r := h.deps.user(c)
	return giftcard.NewService(api, r.sid, r.n, h.deps.Wallet), r
}

// Load lists the cards on sale and the ones the user owns.
func (h *GiftCardHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *GiftCardHandler) Preview(c *fiber.Ctx) error {
	var f giftcard.BuyForm
	if !parse(c, &f) {
		return badBody(c)
	}
	svc, r := h.service(c)
	q, err := svc.Preview(r.ctx, f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, q)
}

func (h *GiftCardHandler) Buy(c *fiber.Ctx) error {
	var f giftcard.BuyForm
	if !parse(c, &f) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Buy(r.ctx, f)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}

func (h *GiftCardHandler) Redeem(c *fiber.Ctx) error {
	var f giftcard.RedeemForm
	if !parse(c, &f) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Redeem(r.ctx, f)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}
