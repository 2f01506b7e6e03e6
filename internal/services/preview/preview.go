// Package preview computes the fee and limit preview shown while a user
// types an amount. Everything here is a pure function of server-supplied
// rates and charges; nothing is originated locally.
//
// Units: Source is the currency that carries the fee schedule (a gateway
// currency, or the charge currency of a wallet feature). Target is the
// wallet display currency. ExchangeRate = Target.Rate / Source.Rate is the
// number of source units one target unit is worth. The entered amount is in
// target units, so Converted is in source units and limits (source units)
// are divided by ExchangeRate for display.
//
// The fixed charge is always in source units. It is added unchanged when
// the fee joins a source-unit total (deposit) and divided by ExchangeRate
// when the fee joins a target-unit total (withdraw).
package preview

import (
	"regexp"
	"strings"

	apperr "orusweb/internal/errors"
	"orusweb/internal/models"

	"github.com/shopspring/decimal"
)

type Direction int

const (
	// Deposit: money enters through a gateway. Fee and total are in source units.
	Deposit Direction = iota
	// Withdraw: money leaves the wallet. Fee and total are in target units.
	Withdraw
)

var hundred = decimal.NewFromInt(100)

type Input struct {
	Amount    string
	Source    models.Currency
	Target    models.Currency
	Direction Direction
}

// Quote holds the computed figures. A zero Quote is the safe default.
type Quote struct {
	Valid        bool
	Direction    Direction
	ExchangeRate decimal.Decimal
	Amount       decimal.Decimal
	Converted    decimal.Decimal
	Fee          decimal.Decimal
	TotalPayable decimal.Decimal
	Receivable   decimal.Decimal
	MinLimit     decimal.Decimal
	MaxLimit     decimal.Decimal
	DailyLimit   decimal.Decimal
	MonthlyLimit decimal.Decimal
}

// ZeroQuote is returned for any incomplete or invalid input.
func ZeroQuote() Quote {
	return Quote{}
}

// amountRegex accepts plain decimals only. Exponents, signs and more digits
// than any wallet holds are rejected before they reach decimal.
var amountRegex = regexp.MustCompile(`^[0-9]{1,15}(\.[0-9]{1,8})?$`)

// ParseAmount reads a user-typed amount. Empty, malformed, zero and negative
// input all report false.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if !amountRegex.MatchString(raw) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// ExchangeRate returns target/source, or false when either rate is unusable.
func ExchangeRate(source, target models.Currency) (decimal.Decimal, bool) {
	if !source.Rate.IsPositive() || !target.Rate.IsPositive() {
		return decimal.Zero, false
	}
	return target.Rate.Div(source.Rate), true
}

// Calculate builds the preview. It never panics and never divides by zero.
func Calculate(in Input) Quote {
	amount, ok := ParseAmount(in.Amount)
	if !ok {
		return ZeroQuote()
	}
	rate, ok := ExchangeRate(in.Source, in.Target)
	if !ok {
		return ZeroQuote()
	}

	q := Quote{
		Valid:        true,
		Direction:    in.Direction,
		ExchangeRate: rate,
		Amount:       amount,
		Converted:    Convert(amount, rate),
		MinLimit:     ConvertBack(in.Source.MinLimit, rate),
		MaxLimit:     ConvertBack(in.Source.MaxLimit, rate),
		DailyLimit:   ConvertBack(in.Source.DailyLimit, rate),
		MonthlyLimit: ConvertBack(in.Source.MonthlyLimit, rate),
	}

	switch in.Direction {
	case Withdraw:
		q.Fee = ConvertBack(in.Source.FixedCharge, rate).
			Add(amount.Mul(in.Source.PercentCharge).Div(hundred))
		q.TotalPayable = amount.Add(q.Fee)
		q.Receivable = q.Converted
	default:
		q.Fee = in.Source.FixedCharge.
			Add(q.Converted.Mul(in.Source.PercentCharge).Div(hundred))
		q.TotalPayable = q.Converted.Add(q.Fee)
		q.Receivable = amount
	}
	return q
}

// Convert turns a target-unit amount into source units.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// ConvertBack turns a source-unit amount into target units. A non-positive
// rate yields zero.
func ConvertBack(amount, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(rate)
}

// ConvertRemaining expresses a server-reported allowance in display units.
func ConvertRemaining(limit *models.RemainingLimit, rate decimal.Decimal) models.RemainingLimit {
	if limit == nil {
		return models.RemainingLimit{}
	}
	return models.RemainingLimit{
		DailyLimit:   ConvertBack(limit.DailyLimit, rate),
		MonthlyLimit: ConvertBack(limit.MonthlyLimit, rate),
	}
}

// Check compares the amount with the quote's limits and the remaining
// allowance (already in display units). Zero limits mean "no limit".
func Check(q Quote, remaining *models.RemainingLimit) error {
	if !q.Valid {
		return apperr.ErrInvalidAmount
	}
	if q.MinLimit.IsPositive() && q.Amount.LessThan(q.MinLimit) {
		return apperr.ErrBelowMinimum
	}
	if q.MaxLimit.IsPositive() && q.Amount.GreaterThan(q.MaxLimit) {
		return apperr.ErrAboveMaximum
	}
	if remaining != nil {
		if q.Amount.GreaterThan(remaining.DailyLimit) || q.Amount.GreaterThan(remaining.MonthlyLimit) {
			return apperr.ErrLimitExhausted
		}
	}
	return nil
}
