package handlers

import (
	"orusweb/internal/client"
	"orusweb/internal/services/auth"
	"orusweb/internal/session"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler signs one role in and out. A user and a seller sign in
// independently from the same browser.
type AuthHandler struct {
	deps *Deps
	role session.Role
}

func NewAuthHandler(deps *Deps, role session.Role) *AuthHandler {
	return &AuthHandler{deps: deps, role: role}
}

type codeInput struct {
	Code string `json:"code"`
}

func (h *AuthHandler) service(c *fiber.Ctx) (auth.Service, call) {
	acc, sess, r := h.deps.account(c, h.role)
	return auth.NewService(acc, sess, r.n, r.fx, h.deps.Logger), r
}

// Login handles a role's login form. A 2FA challenge comes back with
// requires_2fa set and a redirect to the code page.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var cred client.Credentials
	if !parse(c, &cred) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Login(r.ctx, cred)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var reg client.Registration
	if !parse(c, &reg) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Register(r.ctx, reg)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Created(c, res)
}

func (h *AuthHandler) VerifyTwoFactor(c *fiber.Ctx) error {
	var in codeInput
	if !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.VerifyTwoFactor(r.ctx, in.Code)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	if err := svc.ForgotPassword(r.ctx, in.Email); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, nil)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	svc, r := h.service(c)
	if err := svc.Logout(r.ctx); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, nil)
}

// TwoFactorSetup returns the authenticator enrollment with its QR image.
func (h *AuthHandler) TwoFactorSetup(c *fiber.Ctx) error {
	svc, r := h.service(c)
	enrollment, err := svc.TwoFactorSetup(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, enrollment)
}

func (h *AuthHandler) EnableTwoFactor(c *fiber.Ctx) error {
	return h.toggleTwoFactor(c, true)
}

func (h *AuthHandler) DisableTwoFactor(c *fiber.Ctx) error {
	return h.toggleTwoFactor(c, false)
}

func (h *AuthHandler) toggleTwoFactor(c *fiber.Ctx, enable bool) error {
	var in codeInput
	if !parse(c, &in) {
		return badBody(c)
	}
	svc, r := h.service(c)
	var err error
	if enable {
		err = svc.EnableTwoFactor(r.ctx, in.Code)
	} else {
		err = svc.DisableTwoFactor(r.ctx, in.Code)
	}
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.Map{"two_factor": enable})
}
