package models

import "time"

// KYC statuses reported on the profile.
const (
	KYCUnverified = "unverified"
	KYCPending    = "pending"
	KYCVerified   = "verified"
	KYCRejected   = "rejected"
)

// Profile is the logged-in user's or seller's account.
type Profile struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Phone     string    `json:"mobile"`
	Country   string    `json:"country"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Zip       string    `json:"zip"`
	KYCStatus string    `json:"kyc_status"`
	TwoFactor bool      `json:"two_factor"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is what login and register return.
type AuthResult struct {
	Token     string   `json:"access_token"`
	TokenType string   `json:"token_type"`
	User      *Profile `json:"user"`
	// RequiresTwoFactor is set when a second step is needed before the token is valid.
	RequiresTwoFactor bool `json:"requires_2fa"`
}

// Recipient is a user found by username, email or mobile for a transfer.
type Recipient struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Image    string `json:"image"`
}

// Merchant receives payments from users.
type Merchant struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Business string `json:"business_name"`
	Image    string `json:"image"`
}

// TwoFactorSetup is the authenticator enrollment the backend hands out.
// URL is an otpauth:// key URI.
type TwoFactorSetup struct {
	Secret string `json:"secret"`
	URL    string `json:"qr_code_url"`
}
