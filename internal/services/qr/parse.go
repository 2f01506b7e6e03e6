package qr

import (
	"net/url"
	"regexp"
	"strings"

	"orusweb/internal/services/preview"
)

var uidRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{4,64}$`)

// Parser reads codes issued by the platform: "<scheme>://pay?uid=..&amount=.."
// or a bare user id.
type Parser struct {
	scheme string
}

func NewParser(scheme string) *Parser {
	return &Parser{scheme: strings.ToLower(scheme)}
}

func (p *Parser) Parse(text string) (*Payload, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidPayload
	}
	if !strings.Contains(text, "://") {
		if !uidRegex.MatchString(text) {
			return nil, ErrInvalidPayload
		}
		return &Payload{Kind: KindUser, UID: text}, nil
	}

	u, err := url.Parse(text)
	if err != nil || strings.ToLower(u.Scheme) != p.scheme || u.Host != "pay" {
		return nil, ErrInvalidPayload
	}
	q := u.Query()

	out := &Payload{Kind: Kind(strings.ToLower(q.Get("type"))), UID: q.Get("uid"), Currency: q.Get("currency")}
	if out.Kind == "" {
		out.Kind = KindUser
	}
	if out.Kind != KindUser && out.Kind != KindMerchant {
		return nil, ErrInvalidPayload
	}
	if !uidRegex.MatchString(out.UID) {
		return nil, ErrInvalidPayload
	}
	if raw := q.Get("amount"); raw != "" {
		amount, ok := preview.ParseAmount(raw)
		if !ok {
			return nil, ErrInvalidPayload
		}
		out.Amount = amount
		out.Fixed = true
	}
	return out, nil
}

// Encode builds the text of a code, the inverse of Parse.
func (p *Parser) Encode(pl Payload) string {
	q := url.Values{}
	q.Set("uid", pl.UID)
	if pl.Kind != "" {
		q.Set("type", string(pl.Kind))
	}
	if pl.Amount.IsPositive() {
		q.Set("amount", pl.Amount.String())
	}
	if pl.Currency != "" {
		q.Set("currency", pl.Currency)
	}
	return p.scheme + "://pay?" + q.Encode()
}
