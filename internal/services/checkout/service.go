// Package checkout turns the cart into an order:
//
//	review -> details (address and payment) -> confirmation
//
// An order is paid from the wallet, through a gateway (which hands the
// browser over like add money does) or with a card tokenized here.
package checkout

import (
	"context"
	"encoding/json"
	"errors"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/card"
	"orusweb/internal/services/flow"
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
	n       notify.Notifier
	nav     notify.Navigator
	machine *flow.Machine
}

func NewService(api API, sid string, repo repositories.Store, n notify.Notifier, nav notify.Navigator, deps Deps) *Service {
	if deps.Wallet.Logger == nil {
		deps.Wallet.Logger = zap.NewNop()
	}
	if deps.Drafts == nil {
		deps.Drafts = flow.NewDrafts(repo)
	}
	if deps.Route == "" {
		deps.Route = defaultRoute
	}
	return &Service{
		api:     api,
		sid:     sid,
		repo:    repo,
		wallet:  wallet.NewService(api, sid, deps.Wallet),
		deps:    deps,
		n:       n,
		nav:     nav,
		machine: flow.New(Feature, n, steps...),
	}
}

func (s *Service) logger() *zap.Logger {
	return s.deps.Wallet.Logger
}

func (s *Service) cart(ctx context.Context) (*store.Cart, error) {
	return s.deps.Carts.Get(ctx, s.sid)
}

func (s *Service) gateways(ctx context.Context) ([]models.Gateway, error) {
	key := repositories.Key(s.sid, "user", "gateways", Feature)
	return store.Cached(ctx, s.repo, key, gatewaysTTL, s.api.CheckoutGateways)
}

func (s *Service) restore(ctx context.Context) error {
	return s.deps.Drafts.Load(ctx, s.sid, "user", s.machine)
}

func (s *Service) save(ctx context.Context) {
	if err := s.deps.Drafts.Save(ctx, s.sid, "user", s.machine); err != nil {
		s.logger().Warn("failed to save checkout draft", zap.Error(err))
	}
}

func (s *Service) view(ctx context.Context) *View {
	_, step := s.machine.Step()
	v := &View{Step: step, Flow: s.machine.Snapshot()}
	if c, err := s.cart(ctx); err == nil {
		v.Cart = c.Get()
		v.Total = v.Cart.Total().StringFixed(2)
	}
	return v
}

// Load resumes the draft and fetches what the details step offers.
func (s *Service) Load(ctx context.Context) (*View, error) {
	var (
		gws []models.Gateway
		st  store.WalletState
	)
	err := s.machine.Load(ctx, func(ctx context.Context) error {
		if err := s.restore(ctx); err != nil {
			return err
		}
		var err error
		if gws, err = s.gateways(ctx); err != nil {
			return err
		}
		st, err = s.wallet.Refresh(ctx)
		return err
	})
	v := s.view(ctx)
	v.Gateways, v.Wallet = gws, st
	return v, err
}

// Orders is the signed-in user's order history.
func (s *Service) Orders(ctx context.Context, page int) (*models.Page[models.Order], error) {
	if page < 1 {
		page = 1
	}
	return s.api.Orders(ctx, page)
}

func (s *Service) checkCart(ctx context.Context) (store.CartState, error) {
	c, err := s.cart(ctx)
	if err != nil {
		return store.CartState{}, err
	}
	st := c.Get()
	if len(st.Items) == 0 {
		return st, apperr.ErrEmptyCart
	}
	return st, nil
}

func (s *Service) checkDetails(ctx context.Context, d Details, cart store.CartState) error {
	v := validation.New()
	v.Struct(d)
	for field, value := range map[string]string{
		"name":    d.Address.Name,
		"phone":   d.Address.Phone,
		"address": d.Address.Line,
		"city":    d.Address.City,
		"country": d.Address.Country,
	} {
		v.Required(field, value)
	}
	if !v.Valid() {
		return v.Err()
	}

	switch d.Method {
	case MethodGateway:
		gws, err := s.gateways(ctx)
		if err != nil {
			return err
		}
		gw, ok := models.FindGateway(gws, d.GatewayID)
		if !ok {
			return validation.Field("gateway_id", apperr.ErrGatewayNotFound)
		}
		if _, ok := gw.Currency(d.CurrencyID); !ok {
			return validation.Field("currency_id", apperr.ErrCurrencyNotFound)
		}
	case MethodWallet:
		st, err := s.wallet.Current(ctx)
		if err != nil {
			return err
		}
		if cart.Total().GreaterThan(st.Balance) {
			return validation.Field("payment_method", ErrWalletBalance)
		}
	}
	return nil
}

// Next stores values and moves past the current step when it is complete.
func (s *Service) Next(ctx context.Context, values map[string]string) (*View, error) {
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	s.machine.EditAll(values)

	_, step := s.machine.Step()
	err := s.machine.Next(func(fields map[string]string) error {
		cart, err := s.checkCart(ctx)
		if err != nil {
			return err
		}
		if step == StepDetails {
			return s.checkDetails(ctx, detailsFrom(fields), cart)
		}
		return nil
	})
	var fe validation.Errors
	if err != nil && !errors.As(err, &fe) && !client.IsAuthError(err) {
		s.n.Toast(notify.LevelError, apperr.FirstMessage(err))
	}
	s.save(ctx)
	return s.view(ctx), err
}

func (s *Service) Back(ctx context.Context) (*View, error) {
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	err := s.machine.Back()
	s.save(ctx)
	return s.view(ctx), err
}

// Cancel drops the draft. The cart is kept.
func (s *Service) Cancel(ctx context.Context) error {
	return s.deps.Drafts.Discard(ctx, s.sid, "user", Feature)
}

// Submit places the order. in carries the card for card payments and is
// ignored otherwise.
func (s *Service) Submit(ctx context.Context, in *card.Input) (*Result, error) {
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	if _, step := s.machine.Step(); step != StepConfirmation {
		return &Result{Flow: s.machine.Snapshot()}, apperr.ErrInvalidStep
	}

	var cart store.CartState
	validate := func(fields map[string]string) error {
		var err error
		if cart, err = s.checkCart(ctx); err != nil {
			return err
		}
		d := detailsFrom(fields)
		if err := s.checkDetails(ctx, d, cart); err != nil {
			return err
		}
		if d.Method == MethodCard {
			if in == nil {
				return validation.Errors{"card_number": "card details are required"}
			}
			return validation.Struct(*in)
		}
		return nil
	}

	res, err := flow.Submit(ctx, s.machine, validate, func(ctx context.Context, fields map[string]string) (*Result, error) {
		d := detailsFrom(fields)
		order := client.OrderRequest{
			Items:   cart.Items,
			Address: d.Address,
			Method:  d.Method,
		}
		out := &Result{}
		switch d.Method {
		case MethodGateway:
			order.GatewayID, order.Currency = d.GatewayID, d.CurrencyID
		case MethodCard:
			tok, err := s.deps.Tokenizer.Tokenize(*in)
			if err != nil {
				return nil, cardError(err)
			}
			order.CardToken, out.Card = tok.ID, tok
		}

		payload, err := s.api.PlaceOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		return s.settle(d, payload, out)
	})
	if err != nil {
		s.save(ctx)
		return &Result{Flow: s.machine.Snapshot()}, err
	}

	s.finish(ctx)
	s.nav.Navigate(res.Route)
	res.Flow = s.machine.Snapshot()
	return res, nil
}

// settle reads the order response. Gateway orders carry a handoff.
func (s *Service) settle(d Details, payload json.RawMessage, out *Result) (*Result, error) {
	if d.Method == MethodGateway {
		outcome, err := s.deps.Decoder.Decode(payload)
		if err != nil {
			s.logger().Error("undecodable checkout handoff", zap.Error(err))
			return nil, err
		}
		out.Outcome, out.Route = outcome, outcome.Route(s.deps.Route)
		return out, nil
	}

	var order models.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, apperr.Wrap(apperr.ErrMalformedResponse, err)
	}
	out.Order = &order
	out.Route = ordersRoute
	if order.OrderNo != "" {
		out.Route += "/" + order.OrderNo
	}
	return out, nil
}

func (s *Service) finish(ctx context.Context) {
	if c, err := s.cart(ctx); err == nil {
		if _, err := c.Clear(); err != nil {
			s.logger().Warn("failed to clear cart", zap.Error(err))
		}
	}
	if err := s.Cancel(ctx); err != nil {
		s.logger().Warn("failed to discard checkout draft", zap.Error(err))
	}
	s.wallet.Settled(ctx, s.n, "", "order placed")
}

// cardError puts a tokenizer rejection next to the card field it concerns.
func cardError(err error) error {
	switch {
	case errors.Is(err, card.ErrInvalidExpiry), errors.Is(err, card.ErrCardExpired):
		return validation.Field("expiry_month", err)
	case errors.Is(err, card.ErrInvalidNumber):
		return validation.Field("card_number", err)
	}
	return err
}
