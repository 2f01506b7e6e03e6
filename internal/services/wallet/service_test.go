package wallet

import (
	"context"
	"testing"
	"time"

	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/repositories"
	"orusweb/internal/services/limit"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Wallet(ctx context.Context) (*models.Wallet, error) {
	args := m.Called(ctx)
	w, _ := args.Get(0).(*models.Wallet)
	return w, args.Error(1)
}

func (m *MockAPI) Charges(ctx context.Context, feature, currency string) (*models.Currency, error) {
	args := m.Called(ctx, feature, currency)
	c, _ := args.Get(0).(*models.Currency)
	return c, args.Error(1)
}

func (m *MockAPI) RemainingLimit(ctx context.Context, q models.LimitQuery) (*models.RemainingLimit, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).(*models.RemainingLimit)
	return r, args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testWallet() *models.Wallet {
	return &models.Wallet{
		Balance:  dec("100"),
		Currency: "USD",
		Currencies: []models.WalletCurrency{
			{ID: 1, Code: "USD", Rate: dec("1")},
			{ID: 2, Code: "EUR", Rate: dec("1.25")},
		},
	}
}

func testDeps() Deps {
	limits := limit.NewRegistry[models.LimitQuery, *models.RemainingLimit](time.Millisecond, time.Minute)
	return NewDeps(repositories.NewMemoryStore(), limits, zap.NewNop())
}

func TestQuote(t *testing.T) {
	api := new(MockAPI)
	api.On("Wallet", mock.Anything).Return(testWallet(), nil).Once()
	api.On("Charges", mock.Anything, "send-money", "USD").
		Return(&models.Currency{ID: 9, Code: "USD", Rate: dec("1"), FixedCharge: dec("2"), PercentCharge: dec("1")}, nil)

	svc := NewService(api, "sid", testDeps())
	q, err := svc.Quote(context.Background(), FeatureTransfer, "100", "")
	require.NoError(t, err)

	assert.Equal(t, "3.00", q.Preview.Fee)
	assert.Equal(t, "103.00", q.Preview.TotalPayable)
	assert.Equal(t, models.LimitQuery{Type: "send-money", Attribute: "wallet", Amount: "100", Currency: "USD", ChargeID: 9}, q.LimitQuery())

	// the wallet is cached for the session
	_, err = svc.Quote(context.Background(), FeatureTransfer, "10", "USD")
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestAuthorize(t *testing.T) {
	charges := models.Currency{ID: 9, Code: "USD", Rate: dec("1"), FixedCharge: dec("2"), PercentCharge: dec("1"), MinLimit: dec("5")}

	tests := []struct {
		name      string
		amount    string
		remaining *models.RemainingLimit
		limitErr  error
		wantErr   error
	}{
		{name: "ok", amount: "50", remaining: &models.RemainingLimit{DailyLimit: dec("500"), MonthlyLimit: dec("900")}},
		{name: "below minimum", amount: "1", remaining: &models.RemainingLimit{DailyLimit: dec("500"), MonthlyLimit: dec("900")}, wantErr: apperr.ErrBelowMinimum},
		{name: "daily limit used up", amount: "50", remaining: &models.RemainingLimit{DailyLimit: dec("20"), MonthlyLimit: dec("900")}, wantErr: apperr.ErrLimitExhausted},
		{name: "balance too low", amount: "99", remaining: &models.RemainingLimit{DailyLimit: dec("500"), MonthlyLimit: dec("900")}, wantErr: ErrInsufficientFunds},
		{name: "limit lookup down is not fatal", amount: "50", limitErr: &apperr.APIError{Status: 500}},
		{name: "expired session stops", amount: "50", limitErr: apperr.ErrSessionExpired, wantErr: apperr.ErrSessionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			api.On("Wallet", mock.Anything).Return(testWallet(), nil).Maybe()
			api.On("RemainingLimit", mock.Anything, mock.Anything).Return(tt.remaining, tt.limitErr)

			svc := NewService(api, "sid", testDeps())
			cur, err := svc.Currency(context.Background(), "USD")
			require.NoError(t, err)

			err = svc.Authorize(context.Background(), svc.QuoteWith(FeatureTransfer, tt.amount, cur, charges))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRemainingConvertsForDisplay(t *testing.T) {
	api := new(MockAPI)
	api.On("Wallet", mock.Anything).Return(testWallet(), nil)
	api.On("RemainingLimit", mock.Anything, mock.MatchedBy(func(q models.LimitQuery) bool { return q.Amount == "40" })).
		Return(&models.RemainingLimit{DailyLimit: dec("1000"), MonthlyLimit: dec("4000")}, nil)

	svc := NewService(api, "sid", testDeps())
	cur, err := svc.Currency(context.Background(), "USD")
	require.NoError(t, err)

	// gateway-side unit worth half a wallet unit: two source units per wallet unit
	q := svc.QuoteWith(FeatureGiftCard, "40", cur, models.Currency{ID: 3, Rate: dec("0.5")})
	left, err := svc.Remaining(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "500", left.DailyLimit.String())
	require.NotNil(t, q.Limit)
	assert.Equal(t, "2000.00", q.Limit.MonthlyLimit)
}

func TestSelect(t *testing.T) {
	api := new(MockAPI)
	api.On("Wallet", mock.Anything).Return(testWallet(), nil).Once()
	deps := testDeps()

	svc := NewService(api, "sid", deps)
	st, err := svc.Select(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", st.Selected)

	_, err = svc.Select(context.Background(), "GBP")
	assert.ErrorIs(t, err, apperr.ErrCurrencyNotFound)

	cur, err := NewService(api, "sid", deps).Currency(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "EUR", cur.Code)
	assert.Equal(t, "80", DisplayBalance(dec("100"), cur).String())
}
