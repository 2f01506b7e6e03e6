package bill

import (
	"strconv"
	"time"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
)

const (
	Feature     = string(wallet.FeatureBill)
	servicesTTL = 10 * time.Minute
	fieldPrefix = "field."
)

type Form struct {
	ServiceID uint              `json:"service_id" validate:"required"`
	Amount    string            `json:"amount" validate:"required"`
	Currency  string            `json:"currency"`
	Fields    map[string]string `json:"fields"`
}

func (f Form) Values() map[string]string {
	out := map[string]string{
		"service_id": strconv.FormatUint(uint64(f.ServiceID), 10),
		"amount":     f.Amount,
		"currency":   f.Currency,
	}
	for k, v := range f.Fields {
		out[fieldPrefix+k] = v
	}
	return out
}

type View struct {
	Services []models.BillService `json:"services"`
	Wallet   store.WalletState    `json:"wallet"`
	Flow     flow.Snapshot        `json:"flow"`
}

type Result struct {
	Receipt *client.Receipt `json:"receipt,omitempty"`
	Flow    flow.Snapshot   `json:"flow"`
}
