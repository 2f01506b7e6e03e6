package qr

import "github.com/shopspring/decimal"

type Kind string

const (
	// KindUser pays another wallet user.
	KindUser Kind = "user"
	// KindMerchant pays a merchant.
	KindMerchant Kind = "merchant"
)

// Payload is what a scanned code asks for.
type Payload struct {
	Kind     Kind            `json:"kind"`
	UID      string          `json:"uid"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
	// Fixed is true when the code carries an amount the payer may not change.
	Fixed bool `json:"fixed"`
}
