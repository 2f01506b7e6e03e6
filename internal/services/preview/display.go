package preview

import (
	"orusweb/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultPlaces is used for fiat amounts.
const DefaultPlaces = 2

const ratePlaces = 8

// Display is the string form rendered in the preview panel.
type Display struct {
	ExchangeRate string `json:"exchange_rate"`
	Amount       string `json:"amount"`
	Converted    string `json:"converted"`
	Fee          string `json:"fee"`
	TotalPayable string `json:"total_payable"`
	Receivable   string `json:"receivable"`
	MinLimit     string `json:"min_limit"`
	MaxLimit     string `json:"max_limit"`
	DailyLimit   string `json:"daily_limit"`
	MonthlyLimit string `json:"monthly_limit"`
}

// Display formats the quote with places decimals for money.
func (q Quote) Display(places int32) Display {
	if places <= 0 {
		places = DefaultPlaces
	}
	f := func(d decimal.Decimal) string { return d.StringFixed(places) }
	return Display{
		ExchangeRate: q.ExchangeRate.StringFixed(ratePlaces),
		Amount:       f(q.Amount),
		Converted:    f(q.Converted),
		Fee:          f(q.Fee),
		TotalPayable: f(q.TotalPayable),
		Receivable:   f(q.Receivable),
		MinLimit:     f(q.MinLimit),
		MaxLimit:     f(q.MaxLimit),
		DailyLimit:   f(q.DailyLimit),
		MonthlyLimit: f(q.MonthlyLimit),
	}
}

// RemainingDisplay is the formatted server allowance.
type RemainingDisplay struct {
	DailyLimit   string `json:"daily_limit"`
	MonthlyLimit string `json:"monthly_limit"`
}

func FormatRemaining(r models.RemainingLimit, places int32) RemainingDisplay {
	if places <= 0 {
		places = DefaultPlaces
	}
	return RemainingDisplay{
		DailyLimit:   r.DailyLimit.StringFixed(places),
		MonthlyLimit: r.MonthlyLimit.StringFixed(places),
	}
}
