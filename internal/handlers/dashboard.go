package handlers

import (
	"orusweb/internal/services/dashboard"
	"orusweb/internal/session"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the landing page of a signed-in role.
type DashboardHandler struct {
	deps *Deps
	role session.Role
}

func NewDashboardHandler(deps *Deps, role session.Role) *DashboardHandler {
	return &DashboardHandler{deps: deps, role: role}
}

func (h *DashboardHandler) service(c *fiber.Ctx) (dashboard.Service, call) {
	acc, sess, r := h.deps.account(c, h.role)
	return dashboard.NewService(acc, sess, r.n, h.deps.Wallet), r
}

func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, view)
}

// SelectCurrency switches the wallet's display currency.
func (h *DashboardHandler) SelectCurrency(c *fiber.Ctx) error {
	var in struct {
		Currency string `json:"currency"`
	}
	if !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	view, err := svc.SelectCurrency(r.ctx, in.Currency)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, view)
}
