// Package card turns card details typed at checkout into a Stripe token.
package card

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperr "orusweb/internal/errors"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
	"go.uber.org/zap"
)

type Tokenizer interface {
	Tokenize(in Input) (*Token, error)
}

// tokenAPI is the part of the Stripe token client we call.
type tokenAPI interface {
	New(params *stripe.TokenParams) (*stripe.Token, error)
}

type StripeTokenizer struct {
	api    tokenAPI
	now    func() time.Time
	logger *zap.Logger
}

// NewStripeTokenizer uses the publishable key; card data goes to Stripe
// directly.
func NewStripeTokenizer(publishableKey string, logger *zap.Logger) *StripeTokenizer {
	return &StripeTokenizer{
		api:    token.Client{B: stripe.GetBackend(stripe.APIBackend), Key: publishableKey},
		now:    time.Now,
		logger: logger,
	}
}

func (t *StripeTokenizer) Tokenize(in Input) (*Token, error) {
	number := digits(in.Number)

	if strings.HasPrefix(in.Number, "tok_") {
		return &Token{ID: in.Number, Brand: brandFromToken(in.Number), Expiry: expiry(in)}, nil
	}
	if len(number) < 12 || len(number) > 19 || !luhn(number) {
		return nil, ErrInvalidNumber
	}
	if err := t.checkExpiry(in.ExpiryMonth, in.ExpiryYear); err != nil {
		return nil, err
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(number),
			ExpMonth: stripe.String(in.ExpiryMonth),
			ExpYear:  stripe.String(in.ExpiryYear),
			CVC:      stripe.String(in.CVC),
		},
	}
	if in.Name != "" {
		params.Card.Name = stripe.String(in.Name)
	}

	tok, err := t.api.New(params)
	if err != nil {
		t.logger.Warn("stripe tokenization failed", zap.Error(err))
		if se, ok := err.(*stripe.Error); ok && se.Msg != "" {
			return nil, apperr.Wrap(&apperr.DomainError{Code: ErrTokenization.Code, Message: se.Msg}, err)
		}
		return nil, apperr.Wrap(ErrTokenization, err)
	}

	out := &Token{ID: tok.ID, Expiry: expiry(in), LastFour: number[len(number)-4:]}
	if tok.Card != nil {
		out.Brand = string(tok.Card.Brand)
		if tok.Card.Last4 != "" {
			out.LastFour = tok.Card.Last4
		}
	}
	return out, nil
}

func (t *StripeTokenizer) checkExpiry(m, y string) error {
	month, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil || month < 1 || month > 12 {
		return ErrInvalidExpiry
	}
	year, err := strconv.Atoi(strings.TrimSpace(y))
	if err != nil {
		return ErrInvalidExpiry
	}
	if year < 100 {
		year += 2000
	}
	now := t.now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return ErrCardExpired
	}
	return nil
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// luhn expects digits only.
func luhn(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func brandFromToken(tok string) string {
	switch {
	case strings.HasPrefix(tok, "tok_visa"):
		return "visa"
	case strings.HasPrefix(tok, "tok_mastercard"):
		return "mastercard"
	case tok == "tok_amex":
		return "amex"
	case tok == "tok_discover":
		return "discover"
	default:
		return "unknown"
	}
}

func expiry(in Input) string {
	if in.ExpiryMonth == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", in.ExpiryMonth, in.ExpiryYear)
}
