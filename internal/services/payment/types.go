package payment

import (
	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/qr"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
)

const (
	Feature = string(wallet.FeaturePayment)

	// transferRoute receives codes that name a user instead of a merchant.
	transferRoute = "/user/transfer"
)

// Deps are shared by every request.
type Deps struct {
	Wallet wallet.Deps
	Parser *qr.Parser
}

type Form struct {
	Merchant string `json:"merchant" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency"`
	Remark   string `json:"remark" validate:"max=255"`
}

func (f Form) Fields() map[string]string {
	return map[string]string{
		"merchant": f.Merchant,
		"amount":   f.Amount,
		"currency": f.Currency,
		"remark":   f.Remark,
	}
}

type View struct {
	Wallet store.WalletState `json:"wallet"`
	Flow   flow.Snapshot     `json:"flow"`
}

// Scanned is a read code. Merchant is set for merchant codes; user codes
// carry a Route to send money instead.
type Scanned struct {
	Payload  *qr.Payload      `json:"payload"`
	Merchant *models.Merchant `json:"merchant,omitempty"`
	Route    string           `json:"route,omitempty"`
	Flow     flow.Snapshot    `json:"flow"`
}

type Result struct {
	Receipt *client.Receipt `json:"receipt,omitempty"`
	Flow    flow.Snapshot   `json:"flow"`
}
