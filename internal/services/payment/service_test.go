package payment

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
	"orusweb/internal/services/qr"
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

func (m *MockAPI) FindMerchant(ctx context.Context, uid string) (*models.Merchant, error) {
	args := m.Called(ctx, uid)
	r, _ := args.Get(0).(*models.Merchant)
	return r, args.Error(1)
}

func (m *MockAPI) ConfirmPayment(ctx context.Context, pr client.PaymentRequest) (*client.Receipt, error) {
	args := m.Called(ctx, pr)
	r, _ := args.Get(0).(*client.Receipt)
	return r, args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func baseMock() *MockAPI {
	api := new(MockAPI)
	api.On("Wallet", mock.Anything).Return(&models.Wallet{
		Balance:    dec("200"),
		Currency:   "USD",
		Currencies: []models.WalletCurrency{{ID: 1, Code: "USD", Rate: dec("1")}},
	}, nil).Maybe()
	api.On("Charges", mock.Anything, "make-payment", "USD").Return(&models.Currency{
		ID: 3, Code: "USD", Rate: dec("1"), PercentCharge: dec("0.5"),
	}, nil).Maybe()
	api.On("RemainingLimit", mock.Anything, mock.Anything).
		Return(&models.RemainingLimit{DailyLimit: dec("1000"), MonthlyLimit: dec("1000")}, nil).Maybe()
	api.On("FindMerchant", mock.Anything, "shop_42").
		Return(&models.Merchant{ID: 42, Username: "shop_42", Business: "Corner Shop"}, nil).Maybe()
	api.On("FindMerchant", mock.Anything, mock.Anything).
		Return(nil, &apperr.APIError{Status: 404, Messages: []string{"Not Found"}}).Maybe()
	return api
}

func newService(api *MockAPI, fx *notify.Effects) Service {
	repo := repositories.NewMemoryStore()
	limits := limit.NewRegistry[models.LimitQuery, *models.RemainingLimit](time.Millisecond, time.Minute)
	return NewService(api, "sid", fx, fx, Deps{
		Wallet: wallet.NewDeps(repo, limits, zap.NewNop()),
		Parser: qr.NewParser("orus"),
	})
}

func TestScan(t *testing.T) {
	tests := []struct {
		name         string
		frames       []string
		wantErr      error
		wantMerchant string
		wantAmount   string
		wantRoute    string
	}{
		{
			name:         "merchant code with amount",
			frames:       []string{"", "??", "orus://pay?type=merchant&uid=shop_42&amount=12.5"},
			wantMerchant: "Corner Shop",
			wantAmount:   "12.5",
		},
		{
			name:      "user code goes to send money",
			frames:    []string{"orus://pay?uid=bob_1&amount=5"},
			wantRoute: "/user/transfer?amount=5&recipient=bob_1",
		},
		{
			name:    "unknown merchant",
			frames:  []string{"orus://pay?type=merchant&uid=nobody"},
			wantErr: ErrMerchantNotFound,
		},
		{
			name:    "no readable code",
			frames:  []string{"", "not a code!"},
			wantErr: apperr.ErrInvalidQR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := notify.NewEffects()
			svc := newService(baseMock(), fx)

			out, err := svc.Scan(context.Background(), tt.frames)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantRoute != "" {
				assert.Equal(t, tt.wantRoute, out.Route)
				assert.Equal(t, tt.wantRoute, fx.Snapshot().Redirect)
				assert.Nil(t, out.Merchant)
				return
			}
			require.NotNil(t, out.Merchant)
			assert.Equal(t, tt.wantMerchant, out.Merchant.Business)
			assert.Equal(t, tt.wantAmount, out.Flow.Fields["amount"])
			assert.True(t, out.Payload.Fixed)
		})
	}
}

func TestSubmit(t *testing.T) {
	t.Run("pays the merchant", func(t *testing.T) {
		api := baseMock()
		api.On("ConfirmPayment", mock.Anything, client.PaymentRequest{Merchant: "shop_42", Amount: "100", Currency: "USD"}).
			Return(&client.Receipt{TrxID: "P1"}, nil).Once()
		fx := notify.NewEffects()
		svc := newService(api, fx)

		res, err := svc.Submit(context.Background(), Form{Merchant: "shop_42", Amount: "100"})
		require.NoError(t, err)
		assert.Equal(t, "P1", res.Receipt.TrxID)
		require.Len(t, fx.Snapshot().Toasts, 1)
		assert.Equal(t, "payment successful", fx.Snapshot().Toasts[0].Message)
		api.AssertExpectations(t)
	})

	t.Run("unknown merchant is a field error", func(t *testing.T) {
		api := baseMock()
		svc := newService(api, notify.NewEffects())

		res, err := svc.Submit(context.Background(), Form{Merchant: "ghost", Amount: "10"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, map[string]string{"merchant": ErrMerchantNotFound.Message}, res.Flow.Errors)
		api.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything)
	})

	t.Run("server rejection keeps the form", func(t *testing.T) {
		api := baseMock()
		api.On("ConfirmPayment", mock.Anything, mock.Anything).
			Return(nil, &apperr.APIError{Status: 422, Messages: []string{"Merchant is not accepting payments"}})
		fx := notify.NewEffects()
		svc := newService(api, fx)

		res, err := svc.Submit(context.Background(), Form{Merchant: "shop_42", Amount: "10"})
		require.Error(t, err)
		assert.Equal(t, "10", res.Flow.Fields["amount"])
		require.Len(t, fx.Snapshot().Toasts, 1)
		assert.Equal(t, notify.LevelError, fx.Snapshot().Toasts[0].Level)
		assert.Equal(t, "Merchant is not accepting payments", fx.Snapshot().Toasts[0].Message)
	})
}
