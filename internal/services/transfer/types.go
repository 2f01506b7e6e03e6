package transfer

import (
	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/limit"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
)

const (
	Feature = string(wallet.FeatureTransfer)

	// MinQueryLength is the shortest query sent to the recipient search.
	MinQueryLength = 3
)

// Deps are shared by every request.
type Deps struct {
	Wallet wallet.Deps
	Search *limit.Registry[string, []models.Recipient]
}

type Form struct {
	Recipient string `json:"recipient" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	Currency  string `json:"currency"`
	Remark    string `json:"remark" validate:"max=255"`
}

func (f Form) Fields() map[string]string {
	return map[string]string{
		"recipient": f.Recipient,
		"amount":    f.Amount,
		"currency":  f.Currency,
		"remark":    f.Remark,
	}
}

type View struct {
	Wallet store.WalletState `json:"wallet"`
	Flow   flow.Snapshot     `json:"flow"`
}

type Result struct {
	Receipt *client.Receipt `json:"receipt,omitempty"`
	Flow    flow.Snapshot   `json:"flow"`
}
