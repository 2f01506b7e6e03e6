package models

import "github.com/shopspring/decimal"

// RemainingLimit is the allowance the backend reports for a transaction.
type RemainingLimit struct {
	DailyLimit   decimal.Decimal `json:"dailyLimit"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
}

// LimitQuery identifies one remaining-limit lookup.
type LimitQuery struct {
	Type      string `json:"type"`
	Attribute string `json:"attribute"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	ChargeID  uint   `json:"charge_id"`
}
