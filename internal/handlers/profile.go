package handlers

import (
	"errors"

	"orusweb/internal/client"
	"orusweb/internal/services/profile"
	"orusweb/internal/session"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler serves the account page of one role.
type ProfileHandler struct {
	deps *Deps
	role session.Role
}

func NewProfileHandler(deps *Deps, role session.Role) *ProfileHandler {
	return &ProfileHandler{deps: deps, role: role}
}

func (h *ProfileHandler) service(c *fiber.Ctx) (*profile.Service, call) {
	acc, sess, r := h.deps.account(c, h.role)
	return profile.NewService(acc, sess, r.n, r.fx, h.deps.Logger), r
}

func (h *ProfileHandler) Profile(c *fiber.Ctx) error {
	svc, r := h.service(c)
	p, err := svc.Load(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, p)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var upd client.ProfileUpdate
	if !parse(c, &upd) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.Update(r.ctx, upd)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}

func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var pc client.PasswordChange
	if !parse(c, &pc) {
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.ChangePassword(r.ctx, pc)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}

// KYC returns the verification status and, while it can still be filled
// in, the form the platform configured.
func (h *ProfileHandler) KYC(c *fiber.Ctx) error {
	svc, r := h.service(c)
	view, err := svc.KYC(r.ctx)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, view)
}

// SubmitKYC takes the verification form as multipart data.
func (h *ProfileHandler) SubmitKYC(c *fiber.Ctx) error {
	values, files, err := multipartForm(c)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			return utils.BadRequest(c, "each document must be 5MB or smaller")
		}
		return badBody(c)
	}
	svc, r := h.service(c)
	res, err := svc.SubmitKYC(r.ctx, values, files)
	if err != nil {
		return utils.FailWith(c, err, res)
	}
	return utils.Success(c, res)
}
