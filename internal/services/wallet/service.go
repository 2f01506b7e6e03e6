package wallet

import (
	"context"
	"errors"

	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/limit"
	"orusweb/internal/services/preview"
	"orusweb/internal/session"
	"orusweb/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service struct {
	api  API
	sid  string
	deps Deps
}

// NewService binds the user wallet of one browser session to the request's
// client.
func NewService(api API, sid string, deps Deps) *Service {
	return NewRoleService(api, sid, session.RoleUser, deps)
}

// NewRoleService is NewService for either role. User and seller wallets of
// the same browser are kept apart.
func NewRoleService(api API, sid string, role session.Role, deps Deps) *Service {
	if api == nil {
		panic("api is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{api: api, sid: repositories.Key(sid, string(role)), deps: deps}
}

// NewDeps wires the per-session wallet stores and limit lookups.
func NewDeps(repo repositories.Store, limits *limit.Registry[models.LimitQuery, *models.RemainingLimit], logger *zap.Logger) Deps {
	wallets := store.NewHub(defaultIdle, func(ctx context.Context, sid string) (*store.Wallet, error) {
		return store.OpenWallet(ctx, repo, repositories.Key(sid, "wallet"), logger)
	})
	return Deps{Wallets: wallets, Limits: limits, Logger: logger}
}

func (s *Service) state(ctx context.Context) (*store.Wallet, error) {
	return s.deps.Wallets.Get(ctx, s.sid)
}

// Refresh fetches the wallet and publishes it to the session's store.
func (s *Service) Refresh(ctx context.Context) (store.WalletState, error) {
	w, err := s.state(ctx)
	if err != nil {
		return store.WalletState{}, err
	}
	fetched, err := s.api.Wallet(ctx)
	if err != nil {
		return w.Get(), err
	}
	return w.Apply(fetched)
}

// Current returns the cached wallet, fetching it on first use.
func (s *Service) Current(ctx context.Context) (store.WalletState, error) {
	w, err := s.state(ctx)
	if err != nil {
		return store.WalletState{}, err
	}
	if st := w.Get(); st.Loaded {
		return st, nil
	}
	return s.Refresh(ctx)
}

func (s *Service) Select(ctx context.Context, code string) (store.WalletState, error) {
	if _, err := s.Current(ctx); err != nil {
		return store.WalletState{}, err
	}
	w, err := s.state(ctx)
	if err != nil {
		return store.WalletState{}, err
	}
	return w.Select(code)
}

// Currency resolves a display currency; empty means the selected one.
func (s *Service) Currency(ctx context.Context, code string) (models.WalletCurrency, error) {
	st, err := s.Current(ctx)
	if err != nil {
		return models.WalletCurrency{}, err
	}
	if !st.Loaded {
		return models.WalletCurrency{}, ErrWalletNotLoaded
	}
	if code == "" {
		code = st.Selected
	}
	for _, c := range st.Currencies {
		if c.Code == code {
			return c, nil
		}
	}
	return models.WalletCurrency{}, apperr.ErrCurrencyNotFound
}

// Quote prices amount for feature in the given display currency.
func (s *Service) Quote(ctx context.Context, feature Feature, amount, code string) (*Quote, error) {
	cur, err := s.Currency(ctx, code)
	if err != nil {
		return nil, err
	}
	charges, err := s.api.Charges(ctx, string(feature), cur.Code)
	if err != nil {
		return nil, err
	}
	return s.QuoteWith(feature, amount, cur, *charges), nil
}

// QuoteWith prices amount against a charge schedule the caller already has.
func (s *Service) QuoteWith(feature Feature, amount string, cur models.WalletCurrency, charges models.Currency) *Quote {
	calc := preview.Calculate(preview.Input{
		Amount:    amount,
		Source:    charges,
		Target:    cur.AsCurrency(),
		Direction: preview.Withdraw,
	})
	return &Quote{
		Feature:  feature,
		Currency: cur,
		Charges:  charges,
		Preview:  calc.Display(preview.DefaultPlaces),
		Calc:     calc,
	}
}

// Remaining looks up the allowance for q while the user is typing.
func (s *Service) Remaining(ctx context.Context, q *Quote) (*models.RemainingLimit, error) {
	left, err := s.RemainingLimit(ctx, q.LimitQuery(), q.Calc.ExchangeRate)
	if err != nil {
		return nil, err
	}
	shown := preview.FormatRemaining(*left, preview.DefaultPlaces)
	q.Limit = &shown
	return left, nil
}

// RemainingLimit is the debounced lookup shared by every amount input. Only
// the newest keystroke of the session and feature reaches the backend; the
// answer is converted to display units with rate.
func (s *Service) RemainingLimit(ctx context.Context, q models.LimitQuery, rate decimal.Decimal) (*models.RemainingLimit, error) {
	key := repositories.Key(s.sid, "limit", q.Type)
	res, err := s.deps.Limits.Get(key).AwaitWith(ctx, q, s.api.RemainingLimit)
	if err != nil {
		return nil, err
	}
	converted := preview.ConvertRemaining(res.Value, rate)
	return &converted, nil
}

// CheckLimits fetches the allowance for q directly and checks calc against
// it. An unavailable limit endpoint only skips the allowance check.
func (s *Service) CheckLimits(ctx context.Context, calc preview.Quote, q models.LimitQuery) error {
	if !calc.Valid {
		return apperr.ErrInvalidAmount
	}
	var remaining *models.RemainingLimit
	left, err := s.api.RemainingLimit(ctx, q)
	switch {
	case err == nil:
		r := preview.ConvertRemaining(left, calc.ExchangeRate)
		remaining = &r
	case errors.Is(err, apperr.ErrSessionExpired), errors.Is(err, apperr.ErrMissingToken):
		return err
	default:
		s.deps.Logger.Warn("remaining limit unavailable", zap.String("type", q.Type), zap.Error(err))
	}
	return preview.Check(calc, remaining)
}

// Authorize runs the checks a submit needs: limits, remaining allowance and
// balance. The remaining limit is fetched directly, not debounced.
func (s *Service) Authorize(ctx context.Context, q *Quote) error {
	if err := s.CheckLimits(ctx, q.Calc, q.LimitQuery()); err != nil {
		return err
	}

	st, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if !q.Currency.Rate.IsPositive() {
		return nil
	}
	if q.Calc.TotalPayable.GreaterThan(DisplayBalance(st.Balance, q.Currency)) {
		return ErrInsufficientFunds
	}
	return nil
}

// DisplayBalance expresses a base-unit balance in a display currency. A
// currency's rate is the base value of one of its units.
func DisplayBalance(balance decimal.Decimal, cur models.WalletCurrency) decimal.Decimal {
	return preview.ConvertBack(balance, cur.Rate)
}

// Settled runs after a wallet-funded confirm: it toasts the backend's
// message (or fallback) and refreshes the balance.
func (s *Service) Settled(ctx context.Context, n notify.Notifier, message, fallback string) {
	if message == "" {
		message = fallback
	}
	if n != nil {
		n.Toast(notify.LevelSuccess, message)
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.deps.Logger.Warn("wallet refresh after confirm failed", zap.Error(err))
	}
}
