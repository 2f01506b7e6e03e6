package handlers

import (
	"orusweb/internal/services/paymentlink"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentLinkHandler struct {
	deps *Deps
}

func NewPaymentLinkHandler(deps *Deps) *PaymentLinkHandler {
	return &PaymentLinkHandler{deps: deps}
}

func (h *PaymentLinkHandler) service(c *fiber.Ctx) (*paymentlink.Service, call) {
	api, _, r := h.deps.user(c)
	return paymentlink.NewService(api, r.n), r
}

func (h *PaymentLinkHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *PaymentLinkHandler) Create(c *fiber.Ctx) error {
	var f paymentlink.Form
	if !parse(c, &f) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Create(r.ctx, f)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Created(c, res)
}

func (h *PaymentLinkHandler) Delete(c *fiber.Ctx) error {
	id, ok := utils.IDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid link id")
	}
	svc, r := h.service(c)
	if err := svc.Delete(r.ctx, id); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, nil)
}
