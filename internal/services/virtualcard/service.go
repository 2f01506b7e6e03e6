// Package virtualcard issues wallet-funded virtual cards, tops them up and
// freezes or unfreezes them.
package virtualcard

import (
	"context"
	"strings"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	api    API
	wallet *wallet.Service
	n      notify.Notifier
	create *flow.Machine
	topUp  *flow.Machine
}

func NewService(api API, sid string, n notify.Notifier, deps wallet.Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		api:    api,
		wallet: wallet.NewService(api, sid, deps),
		n:      n,
		create: flow.New(Feature, n),
		topUp:  flow.New(TopUpFeature, n),
	}
}

func (s *Service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := s.create.Load(ctx, func(ctx context.Context) error {
		cards, err := s.api.VirtualCards(ctx)
		if err != nil {
			return err
		}
		st, err := s.wallet.Refresh(ctx)
		view.Cards, view.Wallet = cards, st
		return err
	})
	view.Flow = s.create.Snapshot()
	return view, err
}

// Preview prices the opening balance of a new card or a top-up.
func (s *Service) Preview(ctx context.Context, amount, currency string) (*wallet.Quote, error) {
	q, err := s.wallet.Quote(ctx, wallet.FeatureVirtualCard, amount, currency)
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

func (s *Service) authorize(ctx context.Context, amount, currency string) error {
	q, err := s.wallet.Quote(ctx, wallet.FeatureVirtualCard, amount, currency)
	if err != nil {
		return validation.Field("currency", err)
	}
	return validation.Field("amount", s.wallet.Authorize(ctx, q))
}

func (s *Service) Create(ctx context.Context, f CreateForm) (*Result, error) {
	f.NameOnCard = strings.ToUpper(strings.TrimSpace(f.NameOnCard))
	s.create.EditAll(f.Fields())

	validate := func(map[string]string) error {
		if err := validation.Struct(f); err != nil {
			return err
		}
		return s.authorize(ctx, f.Amount, f.Currency)
	}

	receipt, err := flow.Submit(ctx, s.create, validate, func(ctx context.Context, _ map[string]string) (*client.Receipt, error) {
		cur, err := s.wallet.Currency(ctx, f.Currency)
		if err != nil {
			return nil, err
		}
		return s.api.CreateVirtualCard(ctx, client.VirtualCardRequest{NameOnCard: f.NameOnCard, Amount: f.Amount, Currency: cur.Code})
	})
	if err != nil {
		return &Result{Flow: s.create.Snapshot()}, err
	}
	if receipt == nil {
		receipt = &client.Receipt{}
	}
	s.wallet.Settled(ctx, s.n, receipt.Message, "virtual card created")
	return &Result{Receipt: receipt, Flow: s.create.Snapshot()}, nil
}

func (s *Service) find(ctx context.Context, id uint) (*models.VirtualCard, error) {
	cards, err := s.api.VirtualCards(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].ID == id {
			return &cards[i], nil
		}
	}
	return nil, ErrCardNotFound
}

// TopUp moves wallet funds onto an active card.
func (s *Service) TopUp(ctx context.Context, id uint, f TopUpForm) (*Result, error) {
	s.topUp.EditAll(map[string]string{"amount": f.Amount, "currency": f.Currency})

	validate := func(map[string]string) error {
		if err := validation.Struct(f); err != nil {
			return err
		}
		card, err := s.find(ctx, id)
		if err != nil {
			return validation.Field("card", err)
		}
		if card.Status == models.CardFrozen {
			return validation.Field("card", ErrCardFrozen)
		}
		return s.authorize(ctx, f.Amount, f.Currency)
	}

	receipt, err := flow.Submit(ctx, s.topUp, validate, func(ctx context.Context, _ map[string]string) (*client.Receipt, error) {
		cur, err := s.wallet.Currency(ctx, f.Currency)
		if err != nil {
			return nil, err
		}
		return s.api.TopUpVirtualCard(ctx, id, f.Amount, cur.Code)
	})
	if err != nil {
		return &Result{Flow: s.topUp.Snapshot()}, err
	}
	if receipt == nil {
		receipt = &client.Receipt{}
	}
	s.wallet.Settled(ctx, s.n, receipt.Message, "card topped up")
	return &Result{Receipt: receipt, Flow: s.topUp.Snapshot()}, nil
}

// Freeze and Unfreeze toggle the card status. Asking for the status the
// card already has is a no-op.
func (s *Service) Freeze(ctx context.Context, id uint) error {
	return s.setStatus(ctx, id, models.CardFrozen, "card frozen")
}

func (s *Service) Unfreeze(ctx context.Context, id uint) error {
	return s.setStatus(ctx, id, models.CardActive, "card unfrozen")
}

func (s *Service) setStatus(ctx context.Context, id uint, status, message string) error {
	card, err := s.find(ctx, id)
	if err != nil {
		s.toast(err)
		return err
	}
	if card.Status == status {
		return nil
	}
	if err := s.api.SetVirtualCardStatus(ctx, id, status); err != nil {
		s.toast(err)
		return err
	}
	s.n.Toast(notify.LevelSuccess, message)
	return nil
}

func (s *Service) toast(err error) {
	if client.IsAuthError(err) {
		return
	}
	s.n.Toast(notify.LevelError, apperr.FirstMessage(err))
}
