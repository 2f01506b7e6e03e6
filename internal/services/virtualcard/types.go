package virtualcard

import (
	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
)

const (
	Feature      = string(wallet.FeatureVirtualCard)
	TopUpFeature = "virtual-card-top-up"
)

type CreateForm struct {
	NameOnCard string `json:"name_on_card" validate:"required,max=26"`
	Amount     string `json:"amount" validate:"required"`
	Currency   string `json:"currency"`
}

func (f CreateForm) Fields() map[string]string {
	return map[string]string{"name_on_card": f.NameOnCard, "amount": f.Amount, "currency": f.Currency}
}

type TopUpForm struct {
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency"`
}

type View struct {
	Cards  []models.VirtualCard `json:"cards"`
	Wallet store.WalletState    `json:"wallet"`
	Flow   flow.Snapshot        `json:"flow"`
}

type Result struct {
	Receipt *client.Receipt `json:"receipt,omitempty"`
	Flow    flow.Snapshot   `json:"flow"`
}
