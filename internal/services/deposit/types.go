package deposit

import (
	"strconv"
	"time"

	"orusweb/internal/models"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/gateway"
	"orusweb/internal/services/preview"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
)

const (
	Feature      = "add-money"
	gatewaysTTL  = 5 * time.Minute
	defaultRoute = "/user/deposit"
)

// Deps are shared by every request.
type Deps struct {
	Wallet  wallet.Deps
	Decoder *gateway.Decoder
	// Route is the page the manual and crypto outcomes hang off.
	Route string
}

// Form is the add money form.
type Form struct {
	GatewayID      uint   `json:"gateway_id" validate:"required"`
	CurrencyID     uint   `json:"currency_id" validate:"required"`
	Amount         string `json:"amount" validate:"required"`
	WalletCurrency string `json:"wallet_currency"`
}

func (f Form) Fields() map[string]string {
	return map[string]string{
		"gateway_id":      strconv.FormatUint(uint64(f.GatewayID), 10),
		"currency_id":     strconv.FormatUint(uint64(f.CurrencyID), 10),
		"amount":          f.Amount,
		"wallet_currency": f.WalletCurrency,
	}
}

type View struct {
	Gateways []models.Gateway  `json:"gateways"`
	Wallet   store.WalletState `json:"wallet"`
	Flow     flow.Snapshot     `json:"flow"`
}

type Preview struct {
	Gateway   string                    `json:"gateway"`
	Currency  models.Currency           `json:"currency"`
	Quote     preview.Display           `json:"quote"`
	Remaining *preview.RemainingDisplay `json:"remaining,omitempty"`
}

// Result is where the browser goes after a confirmed deposit.
type Result struct {
	Kind    gateway.Kind    `json:"kind"`
	Route   string          `json:"route"`
	Outcome gateway.Outcome `json:"outcome"`
	Flow    flow.Snapshot   `json:"flow"`
}
