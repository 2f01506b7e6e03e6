package auth

import (
	"orusweb/internal/models"
	"orusweb/internal/services/flow"
)

// qrSize is the edge of the enrollment QR image in pixels.
const qrSize = 200

type codeForm struct {
	Code string `json:"code" validate:"required,numeric,len=6"`
}

type emailForm struct {
	Email string `json:"email" validate:"required,email"`
}

// Result tells the browser where to go after an auth step.
type Result struct {
	Profile           *models.Profile `json:"profile,omitempty"`
	RequiresTwoFactor bool            `json:"requires_2fa"`
	Route             string          `json:"route"`
	Flow              flow.Snapshot   `json:"flow"`
}

// Enrollment is what the 2FA setup page shows. QRCode is a PNG data URI of
// the otpauth key.
type Enrollment struct {
	Secret  string `json:"secret"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
	URL     string `json:"url"`
	QRCode  string `json:"qr_code"`
}
