package handlers

import (
	"orusweb/internal/services/card"
	"orusweb/internal/services/checkout"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler runs review -> details -> confirmation over the cart of
// the browser session. The draft lives in storage between steps.
type CheckoutHandler struct {
	deps *Deps
}

func NewCheckoutHandler(deps *Deps) *CheckoutHandler {
	return &CheckoutHandler{deps: deps}
}

func (h *CheckoutHandler) service(c *fiber.Ctx) (*checkout.Service, call) {
	api, _, r := h.deps.user(c)
	return checkout.NewService(api, r.sid, h.deps.Repo, r.n, r.fx, h.deps.Checkout), r
}

func (h *CheckoutHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

// Next takes the step's values as a flat string map.
func (h *CheckoutHandler) Next(c *fiber.Ctx) error {
	values := map[string]string{}
	if len(c.Body()) > 0 && !parse(c, &values) {
		return badBody(c)
	}
	svc, r := h.service(c)
	view, err := svc.Next(r.ctx, values)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Back(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	svc, r := h.service(c)
	if err := svc.Cancel(r.ctx); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, nil)
}

// Submit places the order. Card payments send the card with this request
// only; it is tokenized before anything leaves the process.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var in struct {
		Card *card.Input `json:"card"`
	}
	if len(c.Body()) > 0 && !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Submit(r.ctx, in.Card)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}

// Orders is the user's order history.
func (h *CheckoutHandler) Orders(c *fiber.Ctx) error {
	svc, r := h.service(c)
	page, err := svc.Orders(r.ctx, utils.PageParam(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, page)
}
