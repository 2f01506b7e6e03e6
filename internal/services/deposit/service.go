// Package deposit is the add money feature: pick a gateway and currency,
// preview the fee, confirm, and hand the browser over to the gateway.
package deposit

import (
	"context"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/preview"
	"orusweb/internal/services/wallet"
	"orusweb/internal/store"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	api     API
	sid     string
	repo    repositories.Store
	wallet  *wallet.Service
	deps    Deps
	nav     notify.Navigator
	machine *flow.Machine
}

// NewService binds add money to one request.
func NewService(api API, sid string, repo repositories.Store, n notify.Notifier, nav notify.Navigator, deps Deps) *Service {
	if deps.Route == "" {
		deps.Route = defaultRoute
	}
	if deps.Wallet.Logger == nil {
		deps.Wallet.Logger = zap.NewNop()
	}
	return &Service{
		api:     api,
		sid:     sid,
		repo:    repo,
		wallet:  wallet.NewService(api, sid, deps.Wallet),
		deps:    deps,
		nav:     nav,
		machine: flow.New(Feature, n),
	}
}

func (s *Service) gateways(ctx context.Context) ([]models.Gateway, error) {
	key := repositories.Key(s.sid, "user", "gateways", Feature)
	return store.Cached(ctx, s.repo, key, gatewaysTTL, s.api.DepositGateways)
}

// Load fetches the gateways and the wallet.
func (s *Service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := s.machine.Load(ctx, func(ctx context.Context) error {
		gws, err := s.gateways(ctx)
		if err != nil {
			return err
		}
		st, err := s.wallet.Refresh(ctx)
		if err != nil {
			return err
		}
		view.Gateways, view.Wallet = gws, st
		return nil
	})
	view.Flow = s.machine.Snapshot()
	return view, err
}

func (s *Service) resolve(ctx context.Context, f Form) (*models.Gateway, models.Currency, models.WalletCurrency, error) {
	gws, err := s.gateways(ctx)
	if err != nil {
		return nil, models.Currency{}, models.WalletCurrency{}, err
	}
	gw, ok := models.FindGateway(gws, f.GatewayID)
	if !ok {
		return nil, models.Currency{}, models.WalletCurrency{}, validation.Field("gateway_id", apperr.ErrGatewayNotFound)
	}
	cur, ok := gw.Currency(f.CurrencyID)
	if !ok {
		return nil, models.Currency{}, models.WalletCurrency{}, validation.Field("currency_id", apperr.ErrCurrencyNotFound)
	}
	wc, err := s.wallet.Currency(ctx, f.WalletCurrency)
	if err != nil {
		return nil, models.Currency{}, models.WalletCurrency{}, validation.Field("wallet_currency", err)
	}
	return gw, cur, wc, nil
}

func quote(f Form, cur models.Currency, wc models.WalletCurrency) preview.Quote {
	return preview.Calculate(preview.Input{
		Amount:    f.Amount,
		Source:    cur,
		Target:    wc.AsCurrency(),
		Direction: preview.Deposit,
	})
}

func limitQuery(f Form, calc preview.Quote, cur models.Currency) models.LimitQuery {
	return models.LimitQuery{
		Type:      Feature,
		Attribute: "gateway",
		Amount:    calc.Amount.String(),
		Currency:  cur.Code,
		ChargeID:  cur.ID,
	}
}

// Preview prices the typed amount. The remaining limit is looked up with
// the keystroke debounce; a superseded keystroke gets the quote only.
func (s *Service) Preview(ctx context.Context, f Form) (*Preview, error) {
	gw, cur, wc, err := s.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
	calc := quote(f, cur, wc)
	out := &Preview{Gateway: gw.Name, Currency: cur, Quote: calc.Display(preview.DefaultPlaces)}
	if !calc.Valid {
		return out, nil
	}

	left, err := s.wallet.RemainingLimit(ctx, limitQuery(f, calc, cur), calc.ExchangeRate)
	if err == nil {
		shown := preview.FormatRemaining(*left, preview.DefaultPlaces)
		out.Remaining = &shown
	} else if client.IsAuthError(err) {
		return nil, err
	}
	return out, nil
}

// Submit confirms the deposit and navigates to the gateway outcome.
func (s *Service) Submit(ctx context.Context, f Form) (*Result, error) {
	s.machine.EditAll(f.Fields())

	validate := func(map[string]string) error {
		if err := validation.Struct(f); err != nil {
			return err
		}
		_, cur, wc, err := s.resolve(ctx, f)
		if err != nil {
			return err
		}
		calc := quote(f, cur, wc)
		return validation.Field("amount", s.wallet.CheckLimits(ctx, calc, limitQuery(f, calc, cur)))
	}

	res, err := flow.Submit(ctx, s.machine, validate, func(ctx context.Context, _ map[string]string) (*Result, error) {
		payload, err := s.api.ConfirmDeposit(ctx, client.DepositRequest{
			GatewayID:  f.GatewayID,
			CurrencyID: f.CurrencyID,
			Amount:     f.Amount,
			Wallet:     f.WalletCurrency,
		})
		if err != nil {
			return nil, err
		}
		outcome, err := s.deps.Decoder.Decode(payload)
		if err != nil {
			s.deps.Wallet.Logger.Error("undecodable deposit handoff", zap.Error(err))
			return nil, err
		}
		return &Result{Kind: outcome.Kind(), Route: outcome.Route(s.deps.Route), Outcome: outcome}, nil
	})
	if err != nil {
		return &Result{Flow: s.machine.Snapshot()}, err
	}

	s.nav.Navigate(res.Route)
	res.Flow = s.machine.Snapshot()
	return res, nil
}
