// Package dashboard is the landing page of a signed-in user or seller:
// balance in the selected currency, the latest transactions and the cached
// profile. It also serves the paginated transaction history.
package dashboard

import (
	"context"
	"strings"

	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/services/flow"
	"orusweb/internal/services/wallet"
	"orusweb/internal/session"
	"orusweb/internal/store"
	"orusweb/internal/validation"

	"golang.org/x/sync/errgroup"
)

const recentCount = 5

// Transaction filters accepted by the history page.
var txTypes = map[string]bool{
	"": true, "deposit": true, "withdraw": true, "transfer": true, "payment": true,
	"bill": true, "gift_card": true, "virtual_card": true, "order": true,
}

type API interface {
	wallet.API
	Transactions(ctx context.Context, txType string, page int) (*models.Page[models.Transaction], error)
}

type Service interface {
	Load(ctx context.Context) (*View, error)
	Transactions(ctx context.Context, txType string, page int) (*models.Page[models.Transaction], error)
	SelectCurrency(ctx context.Context, code string) (*View, error)
}

type service struct {
	api    API
	sess   *session.Session
	wallet *wallet.Service
	n      notify.Notifier
}

// View is the dashboard. Balance is shown in the selected currency.
type View struct {
	Profile  *models.Profile      `json:"profile,omitempty"`
	Wallet   store.WalletState    `json:"wallet"`
	Balance  string               `json:"balance"`
	Currency string               `json:"currency"`
	Recent   []models.Transaction `json:"recent"`
}

func NewService(api API, sess *session.Session, n notify.Notifier, deps wallet.Deps) Service {
	return &service{
		api:    api,
		sess:   sess,
		wallet: wallet.NewRoleService(api, sess.ID(), sess.Role(), deps),
		n:      n,
	}
}

func display(st store.WalletState) (string, string) {
	cur, ok := st.Currency()
	if !ok {
		return st.Balance.StringFixed(2), ""
	}
	return wallet.DisplayBalance(st.Balance, cur).StringFixed(2), cur.Code
}

// Load fetches the wallet and the latest transactions side by side.
func (s *service) Load(ctx context.Context) (*View, error) {
	view := &View{}
	err := flow.New("dashboard", s.n).Load(ctx, func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			st, err := s.wallet.Refresh(ctx)
			view.Wallet = st
			return err
		})
		g.Go(func() error {
			page, err := s.api.Transactions(ctx, "", 1)
			if err != nil {
				return err
			}
			recent := page.Data
			if len(recent) > recentCount {
				recent = recent[:recentCount]
			}
			view.Recent = recent
			return nil
		})
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}
	view.Balance, view.Currency = display(view.Wallet)
	if p, err := s.sess.Profile(ctx); err == nil {
		view.Profile = p
	}
	return view, nil
}

func (s *service) Transactions(ctx context.Context, txType string, page int) (*models.Page[models.Transaction], error) {
	txType = strings.ToLower(strings.TrimSpace(txType))
	if !txTypes[txType] {
		return nil, validation.Errors{"type": "unknown transaction type"}
	}
	if page < 1 {
		page = 1
	}
	return s.api.Transactions(ctx, txType, page)
}

// SelectCurrency switches the display currency of the wallet.
func (s *service) SelectCurrency(ctx context.Context, code string) (*View, error) {
	st, err := s.wallet.Select(ctx, code)
	if err != nil {
		return nil, validation.Field("currency", err)
	}
	view := &View{Wallet: st}
	view.Balance, view.Currency = display(st)
	return view, nil
}
