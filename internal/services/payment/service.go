// Package payment is make payment: identify a merchant by uid or QR code,
// price the amount with the make-payment charges and confirm.
package payment

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/qr"
	"orusweb/internal/services/wallet"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

type service struct {
	api     API
	wallet  *wallet.Service
	deps    Deps
	n       notify.Notifier
	nav     notify.Navigator
	machine *flow.Machine
}

func NewService(api API, sid string, n notify.Notifier, nav notify.Navigator, deps Deps) Service {
	if deps.Wallet.Logger == nil {
		deps.Wallet.Logger = zap.NewNop()
	}
	if deps.Parser == nil {
		deps.Parser = qr.NewParser("orus")
	}
	return &service{
		api:     api,
		wallet:  wallet.NewService(api, sid, deps.Wallet),
		deps:    deps,
		n:       n,
		nav:     nav,
		machine: flow.New(Feature, n),
	}
}

func (s *service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := s.machine.Load(ctx, func(ctx context.Context) error {
		st, err := s.wallet.Refresh(ctx)
		view.Wallet = st
		return err
	})
	view.Flow = s.machine.Snapshot()
	return view, err
}

func (s *service) Scan(ctx context.Context, frames []string) (*Scanned, error) {
	scanner := qr.NewScanner(qr.NewFrames(frames...), s.deps.Parser, s.deps.Wallet.Logger)
	payload, err := scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := &Scanned{Payload: payload}
	if payload.Kind == qr.KindUser {
		q := url.Values{"recipient": {payload.UID}}
		if payload.Amount.IsPositive() {
			q.Set("amount", payload.Amount.String())
		}
		out.Route = transferRoute + "?" + q.Encode()
		s.nav.Navigate(out.Route)
		return out, nil
	}

	m, err := s.Merchant(ctx, payload.UID)
	if err != nil {
		return nil, err
	}
	out.Merchant = m
	s.machine.Edit("merchant", payload.UID)
	if payload.Amount.IsPositive() {
		s.machine.Edit("amount", payload.Amount.String())
	}
	if payload.Currency != "" {
		s.machine.Edit("currency", payload.Currency)
	}
	out.Flow = s.machine.Snapshot()
	return out, nil
}

// Merchant looks a merchant up. A 404 becomes ErrMerchantNotFound.
func (s *service) Merchant(ctx context.Context, uid string) (*models.Merchant, error) {
	m, err := s.api.FindMerchant(ctx, strings.TrimSpace(uid))
	var apiErr *apperr.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil, ErrMerchantNotFound
	}
	return m, err
}

func (s *service) Preview(ctx context.Context, f Form) (*wallet.Quote, error) {
	q, err := s.wallet.Quote(ctx, wallet.FeaturePayment, f.Amount, f.Currency)
	if err != nil {
		return nil, validation.Field("currency", err)
	}
	if !q.Calc.Valid {
		return q, nil
	}
	if _, err := s.wallet.Remaining(ctx, q); err != nil && client.IsAuthError(err) {
		return nil, err
	}
	return q, nil
}

func (s *service) Submit(ctx context.Context, f Form) (*Result, error) {
	s.machine.EditAll(f.Fields())

	validate := func(map[string]string) error {
		if err := validation.Struct(f); err != nil {
			return err
		}
		if _, err := s.Merchant(ctx, f.Merchant); err != nil {
			return validation.Field("merchant", err)
		}
		q, err := s.wallet.Quote(ctx, wallet.FeaturePayment, f.Amount, f.Currency)
		if err != nil {
			return validation.Field("currency", err)
		}
		return validation.Field("amount", s.wallet.Authorize(ctx, q))
	}

	receipt, err := flow.Submit(ctx, s.machine, validate, func(ctx context.Context, _ map[string]string) (*client.Receipt, error) {
		cur, err := s.wallet.Currency(ctx, f.Currency)
		if err != nil {
			return nil, err
		}
		return s.api.ConfirmPayment(ctx, client.PaymentRequest{
			Merchant: strings.TrimSpace(f.Merchant),
			Amount:   f.Amount,
			Currency: cur.Code,
			Remark:   f.Remark,
		})
	})
	if err != nil {
		return &Result{Flow: s.machine.Snapshot()}, err
	}
	if receipt == nil {
		receipt = &client.Receipt{}
	}
	s.wallet.Settled(ctx, s.n, receipt.Message, "payment successful")
	return &Result{Receipt: receipt, Flow: s.machine.Snapshot()}, nil
}
