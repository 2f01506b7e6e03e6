package models

import "github.com/shopspring/decimal"

// Gateway types as reported by the backend.
const (
	GatewayAutomatic = "automatic"
	GatewayManual    = "manual"
)

// Gateway is a deposit, withdraw or checkout payment method.
type Gateway struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	Alias        string        `json:"alias"`
	Identify     string        `json:"identify"`
	Image        string        `json:"image"`
	Type         string        `json:"gateway_type"`
	Instructions string        `json:"instructions,omitempty"`
	Fields       []ManualField `json:"fields,omitempty"`
	Currencies   []Currency    `json:"currencies"`
}

// Currency is one currency a gateway accepts, with its fee schedule.
// Charges and limits are expressed in this currency's own unit.
type Currency struct {
	ID            uint            `json:"id"`
	Code          string          `json:"currency_code"`
	Alias         string          `json:"alias"`
	Symbol        string          `json:"symbol"`
	Rate          decimal.Decimal `json:"rate"`
	FixedCharge   decimal.Decimal `json:"fixed_charge"`
	PercentCharge decimal.Decimal `json:"percent_charge"`
	MinLimit      decimal.Decimal `json:"min_limit"`
	MaxLimit      decimal.Decimal `json:"max_limit"`
	DailyLimit    decimal.Decimal `json:"daily_limit"`
	MonthlyLimit  decimal.Decimal `json:"monthly_limit"`
}

// ManualField describes one input a manual gateway asks for.
type ManualField struct {
	Label      string   `json:"label"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Validation string   `json:"validation"`
	Options    []string `json:"options,omitempty"`
}

// Currency returns the gateway currency with the given id.
func (g *Gateway) Currency(id uint) (Currency, bool) {
	for _, c := range g.Currencies {
		if c.ID == id {
			return c, true
		}
	}
	return Currency{}, false
}

// FindGateway looks a gateway up by id.
func FindGateway(gateways []Gateway, id uint) (*Gateway, bool) {
	for i := range gateways {
		if gateways[i].ID == id {
			return &gateways[i], true
		}
	}
	return nil, false
}
