package withdraw

import (
	"strconv"
	"strings"
	"time"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
)

const (
	Feature = "withdraw"

	StepMethod  = "method"
	StepDetails = "details"
	StepConfirm = "confirm"

	methodsTTL  = 5 * time.Minute
	fieldPrefix = "field."
)

var steps = []string{StepMethod, StepDetails, StepConfirm}

// Deps are shared by every request.
type Deps struct {
	Wallet wallet.Deps
	Drafts *flow.Drafts
}

// Form is the whole withdraw draft. Each step posts its own part of it.
type Form struct {
	MethodID       uint              `json:"method_id" validate:"required"`
	CurrencyID     uint              `json:"currency_id" validate:"required"`
	Amount         string            `json:"amount" validate:"required"`
	WalletCurrency string            `json:"wallet_currency"`
	Fields         map[string]string `json:"fields"`
}

// Values flattens the form into draft fields. Manual field values are
// prefixed so they never collide with the form's own names.
func (f Form) Values() map[string]string {
	out := map[string]string{
		"method_id":       strconv.FormatUint(uint64(f.MethodID), 10),
		"currency_id":     strconv.FormatUint(uint64(f.CurrencyID), 10),
		"amount":          f.Amount,
		"wallet_currency": f.WalletCurrency,
	}
	for k, v := range f.Fields {
		out[fieldPrefix+k] = v
	}
	return out
}

// FieldValues prefixes manual field values for a details step post.
func FieldValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[fieldPrefix+k] = v
	}
	return out
}

func formFrom(values map[string]string) Form {
	f := Form{
		MethodID:       parseID(values["method_id"]),
		CurrencyID:     parseID(values["currency_id"]),
		Amount:         values["amount"],
		WalletCurrency: values["wallet_currency"],
		Fields:         make(map[string]string),
	}
	for k, v := range values {
		if name, ok := strings.CutPrefix(k, fieldPrefix); ok {
			f.Fields[name] = v
		}
	}
	return f
}

func parseID(s string) uint {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

type View struct {
	Methods []models.Gateway  `json:"methods"`
	Wallet  store.WalletState `json:"wallet"`
	Step    *StepView         `json:"step"`
}

// StepView is what the current step renders.
type StepView struct {
	Name   string          `json:"name"`
	Method *models.Gateway `json:"method,omitempty"`
	Quote  *wallet.Quote   `json:"quote,omitempty"`
	Flow   flow.Snapshot   `json:"flow"`
}

type Result struct {
	Receipt *client.WithdrawReceipt `json:"receipt,omitempty"`
	Route   string                  `json:"route,omitempty"`
	Flow    flow.Snapshot           `json:"flow"`
}
