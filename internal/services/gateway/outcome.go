// Package gateway decodes the response of a confirm call that hands the
// user over to a payment gateway. The loosely shaped payload is turned into
// one of three outcomes at the network boundary.
package gateway

import (
	"encoding/json"
	"net/url"
	"strings"

	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
)

type Kind string

const (
	KindAutomatic Kind = "automatic"
	KindManual    Kind = "manual"
	KindCrypto    Kind = "crypto"
)

// Outcome is one of AutomaticRedirect, ManualPayment or CryptoPayment.
type Outcome interface {
	Kind() Kind
	// Route is where the browser goes next. base is the feature route,
	// e.g. "/user/deposit".
	Route(base string) string
}

// AutomaticRedirect sends the browser to the gateway's hosted page.
type AutomaticRedirect struct {
	TransactionID string            `json:"trx,omitempty"`
	URL           string            `json:"url"`
	Method        string            `json:"method"`
	Params        map[string]string `json:"params,omitempty"`
}

func (AutomaticRedirect) Kind() Kind { return KindAutomatic }

func (a AutomaticRedirect) Route(string) string {
	if a.Method != "GET" || len(a.Params) == 0 {
		return a.URL
	}
	u, err := url.Parse(a.URL)
	if err != nil {
		return a.URL
	}
	q := u.Query()
	for k, v := range a.Params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ManualPayment shows the instructions page and collects proof fields.
type ManualPayment struct {
	TransactionID string               `json:"trx"`
	Gateway       string               `json:"gateway,omitempty"`
	Instructions  string               `json:"instructions,omitempty"`
	Fields        []models.ManualField `json:"fields,omitempty"`
}

func (ManualPayment) Kind() Kind { return KindManual }

func (m ManualPayment) Route(base string) string {
	return strings.TrimRight(base, "/") + "/manual/" + url.PathEscape(m.TransactionID)
}

// CryptoPayment shows the deposit address and QR code.
type CryptoPayment struct {
	TransactionID string `json:"trx"`
	Gateway       string `json:"gateway"`
	Address       string `json:"address"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	QRCode        string `json:"qr_code,omitempty"`
}

func (CryptoPayment) Kind() Kind { return KindCrypto }

func (c CryptoPayment) Route(base string) string {
	return strings.TrimRight(base, "/") + "/crypto/" + url.PathEscape(c.TransactionID)
}

type payload struct {
	GatewayType  string               `json:"gateway_type"`
	Identify     string               `json:"identify"`
	Trx          string               `json:"trx"`
	RedirectURL  string               `json:"redirect_url"`
	Method       string               `json:"method"`
	Params       map[string]any       `json:"params"`
	Instructions string               `json:"instructions"`
	Fields       []models.ManualField `json:"fields"`
	Address      string               `json:"address"`
	Amount       json.Number          `json:"amount"`
	Currency     string               `json:"currency"`
	QRCode       string               `json:"qr_code"`
}

// Decoder knows which gateway identifiers are crypto processors.
type Decoder struct {
	crypto map[string]struct{}
}

func NewDecoder(cryptoIdentifiers []string) *Decoder {
	set := make(map[string]struct{}, len(cryptoIdentifiers))
	for _, id := range cryptoIdentifiers {
		set[strings.ToLower(strings.TrimSpace(id))] = struct{}{}
	}
	return &Decoder{crypto: set}
}

func (d *Decoder) IsCrypto(identify string) bool {
	_, ok := d.crypto[strings.ToLower(identify)]
	return ok
}

// Decode returns the outcome or ErrMalformedResponse.
func (d *Decoder) Decode(body []byte) (Outcome, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, apperr.Wrap(apperr.ErrMalformedResponse, err)
	}

	switch strings.ToLower(p.GatewayType) {
	case models.GatewayAutomatic:
		if d.IsCrypto(p.Identify) {
			return p.crypto()
		}
		return p.automatic()
	case models.GatewayManual:
		return p.manual()
	default:
		return nil, malformed("unknown gateway_type %q", p.GatewayType)
	}
}

func (p payload) automatic() (Outcome, error) {
	u, err := url.Parse(p.RedirectURL)
	if p.RedirectURL == "" || err != nil || !u.IsAbs() {
		return nil, malformed("automatic gateway without a usable redirect_url")
	}
	method := strings.ToUpper(p.Method)
	if method == "" {
		method = "GET"
	}
	if method != "GET" && method != "POST" {
		return nil, malformed("unsupported redirect method %q", p.Method)
	}
	var params map[string]string
	if len(p.Params) > 0 {
		params = make(map[string]string, len(p.Params))
		for k, v := range p.Params {
			params[k] = scalar(v)
		}
	}
	return AutomaticRedirect{TransactionID: p.Trx, URL: p.RedirectURL, Method: method, Params: params}, nil
}

func (p payload) manual() (Outcome, error) {
	if p.Trx == "" {
		return nil, malformed("manual gateway without trx")
	}
	return ManualPayment{
		TransactionID: p.Trx,
		Gateway:       p.Identify,
		Instructions:  p.Instructions,
		Fields:        p.Fields,
	}, nil
}

func (p payload) crypto() (Outcome, error) {
	if p.Trx == "" || p.Address == "" {
		return nil, malformed("crypto gateway without trx or address")
	}
	return CryptoPayment{
		TransactionID: p.Trx,
		Gateway:       p.Identify,
		Address:       p.Address,
		Amount:        p.Amount.String(),
		Currency:      p.Currency,
		QRCode:        p.QRCode,
	}, nil
}
