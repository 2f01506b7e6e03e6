package handlers

import (
	"errors"

	"orusweb/internal/services/payment"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler is make payment to a merchant.
type PaymentHandler struct {
	deps *Deps
}

func NewPaymentHandler(deps *Deps) *PaymentHandler {
	return &PaymentHandler{deps: deps}
}

func (h *PaymentHandler) service(c *fiber.Ctx) (payment.Service, call) {
	api, _, r := h.deps.user(c)
	return payment.NewService(api, r.sid, r.n, r.fx, h.deps.Payment), r
}

func (h *PaymentHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

// Scan reads the frames the browser camera decoded. Codes naming a user
// redirect to send money.
func (h *PaymentHandler) Scan(c *fiber.Ctx) error {
	var in struct {
		Frames []string `json:"frames"`
	}
	if !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	scanned, err := svc.Scan(r.ctx, in.Frames)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.Success(c, scanned)
}

func (h *PaymentHandler) Merchant(c *fiber.Ctx) error {
	svc, r := h.service(c)
	m, err := svc.Merchant(r.ctx, c.Params("uid"))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.Success(c, m)
}

func (h *PaymentHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, payment.ErrMerchantNotFound) {
		return utils.NotFound(c, payment.ErrMerchantNotFound.Message)
	}
	return utils.Fail(c, err)
}

func (h *PaymentHandler) Preview(c *fiber.Ctx) error {
	var f payment.Form
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

func (h *PaymentHandler) Submit(c *fiber.Ctx) error {
	var f payment.Form
	if !parse(c, &f) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Submit(r.ctx, f)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}
