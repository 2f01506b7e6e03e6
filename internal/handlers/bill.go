package handlers

import (
	"orusweb/internal/services/bill"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type BillHandler struct {
	deps *Deps
}

func NewBillHandler(deps *Deps) *BillHandler {
	return &BillHandler{deps: deps}
}

func (h *BillHandler) service(c *fiber.Ctx) (*bill.Service, call) {
	api, _, r := h.deps.user(c)
	return bill.NewService(api, r.sid, h.deps.Repo, r.n, h.deps.Wallet), r
}

func (h *BillHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *BillHandler) Preview(c *fiber.Ctx) error {
	var f bill.Form
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

func (h *BillHandler) Submit(c *fiber.Ctx) error {
	var f bill.Form
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
