package handlers

import (
	"errors"

	"orusweb/internal/services/limit"
	"orusweb/internal/services/transfer"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler is send money.
type TransferHandler struct {
	deps *Deps
}

func NewTransferHandler(deps *Deps) *TransferHandler {
	return &TransferHandler{deps: deps}
}

func (h *TransferHandler) service(c *fiber.Ctx) (transfer.Service, call) {
	api, sess, r := h.deps.user(c)
	return transfer.NewService(api, sess, r.n, h.deps.Transfer), r
}

func (h *TransferHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

// Search looks recipients up as the user types. A keystroke overtaken by a
// newer one answers 409 and the browser drops it.
func (h *TransferHandler) Search(c *fiber.Ctx) error {
	svc, r := h.service(c)
	recipients, err := svc.Search(r.ctx, c.Query("q"))
	if errors.Is(err, limit.ErrSuperseded) {
		return c.Status(fiber.StatusConflict).JSON(utils.Envelope{Error: err.Error(), Effects: r.fx.Snapshot()})
	}
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, recipients)
}

func (h *TransferHandler) Preview(c *fiber.Ctx) error {
	var f transfer.Form
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

func (h *TransferHandler) Submit(c *fiber.Ctx) error {
	var f transfer.Form
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
