package giftcard

import (
	"context"
	"testing"
	"time"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/limit"
	"orusweb/internal/services/wallet"

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

func (m *MockAPI) GiftCards(ctx context.Context) ([]models.GiftCard, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.GiftCard)
	return c, args.Error(1)
}

func (m *MockAPI) MyGiftCards(ctx context.Context) ([]models.OwnedGiftCard, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.OwnedGiftCard)
	return c, args.Error(1)
}

func (m *MockAPI) BuyGiftCard(ctx context.Context, gp client.GiftCardPurchase) (*client.Receipt, error) {
	args := m.Called(ctx, gp)
	r, _ := args.Get(0).(*client.Receipt)
	return r, args.Error(1)
}

func (m *MockAPI) RedeemGiftCard(ctx context.Context, code string) (*client.Receipt, error) {
	args := m.Called(ctx, code)
	r, _ := args.Get(0).(*client.Receipt)
	return r, args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func baseMock() *MockAPI {
	api := new(MockAPI)
	api.On("Wallet", mock.Anything).Return(&models.Wallet{
		Balance:    dec("100"),
		Currency:   "USD",
		Currencies: []models.WalletCurrency{{ID: 1, Code: "USD", Rate: dec("1")}},
	}, nil).Maybe()
	api.On("RemainingLimit", mock.Anything, mock.Anything).
		Return(&models.RemainingLimit{DailyLimit: dec("1000"), MonthlyLimit: dec("1000")}, nil).Maybe()
	api.On("GiftCards", mock.Anything).Return([]models.GiftCard{{
		ID:       1,
		Name:     "Game Store",
		Values:   []decimal.Decimal{dec("10"), dec("25"), dec("50")},
		Currency: models.Currency{ID: 9, Code: "USD", Rate: dec("1"), PercentCharge: dec("2")},
	}}, nil).Maybe()
	api.On("MyGiftCards", mock.Anything).Return([]models.OwnedGiftCard{}, nil).Maybe()
	return api
}

func newService(api *MockAPI, fx *notify.Effects) *Service {
	repo := repositories.NewMemoryStore()
	limits := limit.NewRegistry[models.LimitQuery, *models.RemainingLimit](time.Millisecond, time.Minute)
	return NewService(api, "sid", fx, wallet.NewDeps(repo, limits, zap.NewNop()))
}

func TestPreview_MultipliesQuantity(t *testing.T) {
	svc := newService(baseMock(), notify.NewEffects())

	q, err := svc.Preview(context.Background(), BuyForm{GiftCardID: 1, Amount: "25", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "75.00", q.Preview.Amount)
	assert.Equal(t, "1.50", q.Preview.Fee)
	assert.Equal(t, "76.50", q.Preview.TotalPayable)
}

func TestBuy(t *testing.T) {
	tests := []struct {
		name       string
		form       BuyForm
		wantErrors map[string]string
	}{
		{
			name: "buys",
			form: BuyForm{GiftCardID: 1, Amount: "25", Quantity: 2, Recipient: "friend@example.com"},
		},
		{
			name:       "value not offered",
			form:       BuyForm{GiftCardID: 1, Amount: "30", Quantity: 1},
			wantErrors: map[string]string{"amount": ErrInvalidDenomination.Message},
		},
		{
			name:       "order above balance",
			form:       BuyForm{GiftCardID: 1, Amount: "50", Quantity: 2},
			wantErrors: map[string]string{"amount": wallet.ErrInsufficientFunds.Message},
		},
		{
			name:       "bad recipient email",
			form:       BuyForm{GiftCardID: 1, Amount: "10", Quantity: 1, Recipient: "friend"},
			wantErrors: map[string]string{"recipient_email": "must be a valid email address"},
		},
		{
			name:       "unknown card",
			form:       BuyForm{GiftCardID: 2, Amount: "10", Quantity: 1},
			wantErrors: map[string]string{"gift_card_id": ErrCardNotFound.Message},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := baseMock()
			if tt.wantErrors == nil {
				api.On("BuyGiftCard", mock.Anything, client.GiftCardPurchase{
					GiftCardID: 1, Amount: "25", Quantity: 2, Currency: "USD", Recipient: "friend@example.com",
				}).Return(&client.Receipt{TrxID: "G1"}, nil).Once()
			}
			fx := notify.NewEffects()
			svc := newService(api, fx)

			res, err := svc.Buy(context.Background(), tt.form)
			if tt.wantErrors != nil {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				assert.Equal(t, tt.wantErrors, res.Flow.Errors)
				api.AssertNotCalled(t, "BuyGiftCard", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "G1", res.Receipt.TrxID)
			api.AssertExpectations(t)
		})
	}
}

func TestRedeem(t *testing.T) {
	t.Run("normalizes the code", func(t *testing.T) {
		api := baseMock()
		api.On("RedeemGiftCard", mock.Anything, "ABCD-EFGH-1234").
			Return(&client.Receipt{Message: "25 USD added to your wallet"}, nil).Once()
		fx := notify.NewEffects()
		svc := newService(api, fx)

		_, err := svc.Redeem(context.Background(), RedeemForm{Code: " abcd-efgh -1234 "})
		require.NoError(t, err)
		require.Len(t, fx.Snapshot().Toasts, 1)
		assert.Equal(t, "25 USD added to your wallet", fx.Snapshot().Toasts[0].Message)
		api.AssertExpectations(t)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		api := baseMock()
		svc := newService(api, notify.NewEffects())

		res, err := svc.Redeem(context.Background(), RedeemForm{Code: "12"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, map[string]string{"code": ErrInvalidCode.Message}, res.Flow.Errors)
		api.AssertNotCalled(t, "RedeemGiftCard", mock.Anything, mock.Anything)
	})

	t.Run("server rejection is toasted", func(t *testing.T) {
		api := baseMock()
		api.On("RedeemGiftCard", mock.Anything, "ABCD1234").
			Return(nil, &apperr.APIError{Status: 422, Messages: []string{"Code already redeemed"}}).Once()
		fx := notify.NewEffects()
		svc := newService(api, fx)

		_, err := svc.Redeem(context.Background(), RedeemForm{Code: "abcd1234"})
		require.Error(t, err)
		assert.Equal(t, "Code already redeemed", fx.Snapshot().Toasts[0].Message)
	})
}
