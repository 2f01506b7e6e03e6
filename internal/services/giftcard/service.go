// Package giftcard buys gift cards from the wallet and redeems codes into it.
package giftcard

import (
	"context"
	"regexp"
	"strings"

	"orusweb/internal/client"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/preview"
	"orusweb/internal/services/wallet"
	"orusweb/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{4}(-?[A-Z0-9]{4}){1,7}$`)

type Service struct {
	api    API
	wallet *wallet.Service
	n      notify.Notifier
	buy    *flow.Machine
	redeem *flow.Machine
}

func NewService(api API, sid string, n notify.Notifier, deps wallet.Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		api:    api,
		wallet: wallet.NewService(api, sid, deps),
		n:      n,
		buy:    flow.New(Feature, n),
		redeem: flow.New(RedeemFeature, n),
	}
}

func (s *Service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := s.buy.Load(ctx, func(ctx context.Context) error {
		cards, err := s.api.GiftCards(ctx)
		if err != nil {
			return err
		}
		mine, err := s.api.MyGiftCards(ctx)
		if err != nil {
			return err
		}
		st, err := s.wallet.Refresh(ctx)
		view.Cards, view.Mine, view.Wallet = cards, mine, st
		return err
	})
	view.Flow = s.buy.Snapshot()
	return view, err
}

func (s *Service) card(ctx context.Context, id uint) (*models.GiftCard, error) {
	cards, err := s.api.GiftCards(ctx)
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

// denomination checks amount against the card's fixed values, when it has
// any.
func denomination(card *models.GiftCard, amount string) error {
	if len(card.Values) == 0 {
		return nil
	}
	v, ok := preview.ParseAmount(amount)
	if !ok {
		return ErrInvalidDenomination
	}
	for _, allowed := range card.Values {
		if allowed.Equal(v) {
			return nil
		}
	}
	return ErrInvalidDenomination
}

// quote prices the whole order: amount times quantity.
func (s *Service) quote(ctx context.Context, card *models.GiftCard, f BuyForm) (*wallet.Quote, error) {
	wc, err := s.wallet.Currency(ctx, f.Currency)
	if err != nil {
		return nil, validation.Field("currency", err)
	}
	total := f.Amount
	if v, ok := preview.ParseAmount(f.Amount); ok && f.Quantity > 1 {
		total = v.Mul(decimal.NewFromInt(int64(f.Quantity))).String()
	}
	return s.wallet.QuoteWith(wallet.FeatureGiftCard, total, wc, card.Currency), nil
}

func (s *Service) Preview(ctx context.Context, f BuyForm) (*wallet.Quote, error) {
	card, err := s.card(ctx, f.GiftCardID)
	if err != nil {
		return nil, validation.Field("gift_card_id", err)
	}
	q, err := s.quote(ctx, card, f)
	if err != nil {
		return nil, err
	}
	if !q.Calc.Valid {
		return q, nil
	}
	if _, err := s.wallet.Remaining(ctx, q); err != nil && client.IsAuthError(err) {
		return nil, err
	}
	return q, nil
}

func (s *Service) Buy(ctx context.Context, f BuyForm) (*Result, error) {
	s.buy.EditAll(f.Fields())

	validate := func(map[string]string) error {
		if err := validation.Struct(f); err != nil {
			return err
		}
		card, err := s.card(ctx, f.GiftCardID)
		if err != nil {
			return validation.Field("gift_card_id", err)
		}
		if err := denomination(card, f.Amount); err != nil {
			return validation.Field("amount", err)
		}
		q, err := s.quote(ctx, card, f)
		if err != nil {
			return err
		}
		return validation.Field("amount", s.wallet.Authorize(ctx, q))
	}

	receipt, err := flow.Submit(ctx, s.buy, validate, func(ctx context.Context, _ map[string]string) (*client.Receipt, error) {
		cur, err := s.wallet.Currency(ctx, f.Currency)
		if err != nil {
			return nil, err
		}
		return s.api.BuyGiftCard(ctx, client.GiftCardPurchase{
			GiftCardID: f.GiftCardID,
			Amount:     f.Amount,
			Quantity:   f.Quantity,
			Currency:   cur.Code,
			Recipient:  strings.TrimSpace(f.Recipient),
		})
	})
	if err != nil {
		return &Result{Flow: s.buy.Snapshot()}, err
	}
	if receipt == nil {
		receipt = &client.Receipt{}
	}
	s.wallet.Settled(ctx, s.n, receipt.Message, "gift card purchased")
	return &Result{Receipt: receipt, Flow: s.buy.Snapshot()}, nil
}

// NormalizeCode upper-cases a typed code and drops spaces.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

// Redeem credits a gift card code to the wallet.
func (s *Service) Redeem(ctx context.Context, f RedeemForm) (*Result, error) {
	code := NormalizeCode(f.Code)
	s.redeem.Edit("code", code)

	validate := func(map[string]string) error {
		if err := validation.Struct(RedeemForm{Code: code}); err != nil {
			return err
		}
		if !codeRegex.MatchString(code) {
			return validation.Field("code", ErrInvalidCode)
		}
		return nil
	}

	receipt, err := flow.Submit(ctx, s.redeem, validate, func(ctx context.Context, _ map[string]string) (*client.Receipt, error) {
		return s.api.RedeemGiftCard(ctx, code)
	})
	if err != nil {
		return &Result{Flow: s.redeem.Snapshot()}, err
	}
	if receipt == nil {
		receipt = &client.Receipt{}
	}
	s.wallet.Settled(ctx, s.n, receipt.Message, "gift card redeemed")
	return &Result{Receipt: receipt, Flow: s.redeem.Snapshot()}, nil
}
