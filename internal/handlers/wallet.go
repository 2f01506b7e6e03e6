package handlers

import (
	"errors"

	"orusweb/internal/services/deposit"
	"orusweb/internal/services/withdraw"
	"orusweb/internal/session"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// DepositHandler is add money for users.
type DepositHandler struct {
	deps *Deps
}

func NewDepositHandler(deps *Deps) *DepositHandler {
	return &DepositHandler{deps: deps}
}

func (h *DepositHandler) service(c *fiber.Ctx) (*deposit.Service, call) {
	api, _, r := h.deps.user(c)
	return deposit.NewService(api, r.sid, h.deps.Repo, r.n, r.fx, h.deps.Deposit), r
}

func (h *DepositHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

// Preview prices the amount as it is typed.
func (h *DepositHandler) Preview(c *fiber.Ctx) error {
	var f deposit.Form
	if !parse(c, &f) {
		return badBody(c)
	}
	svc, r := h.service(c)
	p, err := svc.Preview(r.ctx, f)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, p)
}

// Submit confirms the deposit. The redirect in effects is the gateway
// handoff.
func (h *DepositHandler) Submit(c *fiber.Ctx) error {
	var f deposit.Form
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

// WithdrawHandler runs the multi-step withdraw of one role. The draft
// survives between requests.
type WithdrawHandler struct {
	deps *Deps
	role session.Role
}

func NewWithdrawHandler(deps *Deps, role session.Role) *WithdrawHandler {
	return &WithdrawHandler{deps: deps, role: role}
}

func (h *WithdrawHandler) service(c *fiber.Ctx) (*withdraw.Service, call) {
	acc, _, r := h.deps.account(c, h.role)
	return withdraw.NewService(acc, h.role, r.sid, h.deps.Repo, r.n, r.fx, h.deps.Withdraw), r
}

func (h *WithdrawHandler) Load(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.Load(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, view)
	}
	return utils.Success(c, view)
}

func (h *WithdrawHandler) Preview(c *fiber.Ctx) error {
	var f withdraw.Form
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

// stepInput is one step's post: the form's own values and, on the details
// step, the method's manual fields.
type stepInput struct {
	Values map[string]string `json:"values"`
	Fields map[string]string `json:"fields"`
}

func (in stepInput) merged() map[string]string {
	out := make(map[string]string, len(in.Values)+len(in.Fields))
	for k, v := range in.Values {
		out[k] = v
	}
	for k, v := range withdraw.FieldValues(in.Fields) {
		out[k] = v
	}
	return out
}

func (h *WithdrawHandler) Next(c *fiber.Ctx) error {
	var in stepInput
	if !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	step, err := svc.Next(r.ctx, in.merged())
	if err != nil {
		return utils.FailWith(c, err, step)
	}
	return utils.Success(c, step)
}

func (h *WithdrawHandler) Back(c *fiber.Ctx) error {
	svc, r := h.service(c)
	step, err := svc.Back(r.ctx)
	if err != nil {
		return utils.FailWith(c, err, step)
	}
	return utils.Success(c, step)
}

func (h *WithdrawHandler) Cancel(c *fiber.Ctx) error {
	svc, r := h.service(c)
	if err := svc.Cancel(r.ctx); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, nil)
}

// Submit confirms the draft. File fields of the method arrive as multipart
// uploads with this request.
func (h *WithdrawHandler) Submit(c *fiber.Ctx) error {
	_, files, err := multipartForm(c)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			return utils.BadRequest(c, "each document must be 5MB or smaller")
		}
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Submit(r.ctx, files)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}
