package checkout

import (
	"strconv"
	"time"

	"orusweb/internal/models"
	"orusweb/internal/services/card"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/gateway"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
)

const (
	Feature = "checkout"

	StepReview       = "review"
	StepDetails      = "details"
	StepConfirmation = "confirmation"

	MethodWallet  = "wallet"
	MethodGateway = "gateway"
	MethodCard    = "card"

	gatewaysTTL  = 5 * time.Minute
	defaultRoute = "/user/checkout"
	ordersRoute  = "/user/orders"
)

var steps = []string{StepReview, StepDetails, StepConfirmation}

// Deps are shared by every request.
type Deps struct {
	Wallet    wallet.Deps
	Carts     *store.Hub[*store.Cart]
	Decoder   *gateway.Decoder
	Tokenizer card.Tokenizer
	Drafts    *flow.Drafts
	// Route is the page gateway outcomes hang off.
	Route string
}

// Details is the address and payment step. Card numbers are never part of
// it; they arrive with the confirmation only.
type Details struct {
	Address    models.Address `json:"address"`
	Method     string         `json:"payment_method" validate:"required,oneof=wallet gateway card"`
	GatewayID  uint           `json:"gateway_id" validate:"required_if=Method gateway"`
	CurrencyID uint           `json:"currency_id" validate:"required_if=Method gateway"`
}

func (d Details) Values() map[string]string {
	return map[string]string{
		"name":           d.Address.Name,
		"phone":          d.Address.Phone,
		"address":        d.Address.Line,
		"city":           d.Address.City,
		"state":          d.Address.State,
		"zip":            d.Address.Zip,
		"country":        d.Address.Country,
		"payment_method": d.Method,
		"gateway_id":     strconv.FormatUint(uint64(d.GatewayID), 10),
		"currency_id":    strconv.FormatUint(uint64(d.CurrencyID), 10),
	}
}

func detailsFrom(values map[string]string) Details {
	return Details{
		Address: models.Address{
			Name:    values["name"],
			Phone:   values["phone"],
			Line:    values["address"],
			City:    values["city"],
			State:   values["state"],
			Zip:     values["zip"],
			Country: values["country"],
		},
		Method:     values["payment_method"],
		GatewayID:  parseID(values["gateway_id"]),
		CurrencyID: parseID(values["currency_id"]),
	}
}

func parseID(s string) uint {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

type View struct {
	Cart     store.CartState   `json:"cart"`
	Total    string            `json:"total"`
	Gateways []models.Gateway  `json:"gateways"`
	Wallet   store.WalletState `json:"wallet"`
	Step     string            `json:"step"`
	Flow     flow.Snapshot     `json:"flow"`
}

// Result is where the browser goes after the order is placed.
type Result struct {
	Order   *models.Order   `json:"order,omitempty"`
	Outcome gateway.Outcome `json:"outcome,omitempty"`
	Card    *card.Token     `json:"card,omitempty"`
	Route   string          `json:"route,omitempty"`
	Flow    flow.Snapshot   `json:"flow"`
}
