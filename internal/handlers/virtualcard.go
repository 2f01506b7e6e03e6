package handlers

import (
	"orusweb/internal/services/virtualcard"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type VirtualCardHandler struct {
	deps *Deps
}

func NewVirtualCardHandler(deps *Deps) *VirtualCardHandler {
	return &VirtualCardHandler{deps: deps}
}

func (h *VirtualCardHandler) service(c *fiber.Ctx) (*virtualcard.Service, call) {
	api, _, r := h.deps.user(c)
	return virtualcard.NewService(api, r.sid, r.n, h.deps.Wallet), r
}

func (h *VirtualCardHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

// Preview prices a funding amount, for a new card or a top-up.
func (h *VirtualCardHandler) Preview(c *fiber.Ctx) error {
	var f virtualcard.TopUpForm
	if !parse(c, &f) {
		return badBody(c)
	}
	svc, r := h.service(c)
	q, err := svc.Preview(r.ctx, f.Amount, f.Currency)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, q)
}

func (h *VirtualCardHandler) Create(c *fiber.Ctx) error {
	var f virtualcard.CreateForm
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

func (h *VirtualCardHandler) TopUp(c *fiber.Ctx) error {
	id, ok := utils.IDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid card id")
	}
	var f virtualcard.TopUpForm
	if !parse(c, &f) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.TopUp(r.ctx, id, f)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}

func (h *VirtualCardHandler) Freeze(c *fiber.Ctx) error {
	return h.setStatus(c, true)
}

func (h *VirtualCardHandler) Unfreeze(c *fiber.Ctx) error {
	return h.setStatus(c, false)
}

func (h *VirtualCardHandler) setStatus(c *fiber.Ctx, freeze bool) error {
	id, ok := utils.IDParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "invalid card id")
	}
	svc, r := h.service(c)
	var err error
	if freeze {
		err = svc.Freeze(r.ctx, id)
	} else {
		err = svc.Unfreeze(r.ctx, id)
	}
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.Map{"frozen": freeze})
}
