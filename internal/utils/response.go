package utils

import (
	"errors"
	"net/http"

	apperr "orusweb/internal/errors"
	"orusweb/internal/notify"
	"orusweb/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the middleware.
const (
	LocalSID     = "sid"
	LocalEffects = "effects"
	LocalSession = "session"
)

// Envelope is the body of every API response. Effects always travel with
// it, whether the call succeeded or not.
type Envelope struct {
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Effects notify.View       `json:"effects"`
}

// Effects returns the side-effect recorder of the request.
func Effects(c *fiber.Ctx) *notify.Effects {
	if fx, ok := c.Locals(LocalEffects).(*notify.Effects); ok {
		return fx
	}
	fx := notify.NewEffects()
	c.Locals(LocalEffects, fx)
	return fx
}

// SID returns the browser session id.
func SID(c *fiber.Ctx) string {
	sid, _ := c.Locals(LocalSID).(string)
	return sid
}

// Respond sends data wrapped in the envelope with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Envelope{Data: data, Effects: Effects(c).Snapshot()})
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a JSON response with status 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

func errorResponse(c *fiber.Ctx, status int, message, code string, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Data:    data,
		Error:   message,
		Code:    code,
		Effects: Effects(c).Snapshot(),
	})
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusBadRequest, message, "", nil)
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusNotFound, message, "", nil)
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusInternalServerError, message, "", nil)
}

// Fail maps a service error to a response.
func Fail(c *fiber.Ctx, err error) error {
	return FailWith(c, err, nil)
}

// FailWith is Fail that still sends data, usually the flow snapshot with
// the fields as the user typed them.
func FailWith(c *fiber.Ctx, err error, data interface{}) error {
	var fields validation.Errors
	if errors.As(err, &fields) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(Envelope{
			Data:    data,
			Error:   apperr.ErrValidation.Message,
			Code:    apperr.ErrValidation.Code,
			Errors:  fields,
			Effects: Effects(c).Snapshot(),
		})
	}
	status, code := Status(err)
	return errorResponse(c, status, apperr.FirstMessage(err), code, data)
}

// Status picks the HTTP status and error code for err.
func Status(err error) (int, string) {
	var apiErr *apperr.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= http.StatusInternalServerError {
			return fiber.StatusBadGateway, ""
		}
		return apiErr.Status, ""
	}

	var domainErr *apperr.DomainError
	if !errors.As(err, &domainErr) {
		return fiber.StatusInternalServerError, ""
	}
	switch {
	case errors.Is(err, apperr.ErrMissingToken), errors.Is(err, apperr.ErrSessionExpired),
		errors.Is(err, apperr.ErrInvalidSession):
		return fiber.StatusUnauthorized, domainErr.Code
	case errors.Is(err, apperr.ErrTwoFactorPending):
		return fiber.StatusForbidden, domainErr.Code
	case errors.Is(err, apperr.ErrBusy):
		return fiber.StatusConflict, domainErr.Code
	case errors.Is(err, apperr.ErrMalformedResponse):
		return fiber.StatusBadGateway, domainErr.Code
	}
	return fiber.StatusBadRequest, domainErr.Code
}
