package virtualcard

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

func (m *MockAPI) VirtualCards(ctx context.Context) ([]models.VirtualCard, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.VirtualCard)
	return c, args.Error(1)
}

func (m *MockAPI) CreateVirtualCard(ctx context.Context, vr client.VirtualCardRequest) (*client.Receipt, error) {
	args := m.Called(ctx, vr)
	r, _ := args.Get(0).(*client.Receipt)
	return r, args.Error(1)
}

func (m *MockAPI) TopUpVirtualCard(ctx context.Context, id uint, amount, currency string) (*client.Receipt, error) {
	args := m.Called(ctx, id, amount, currency)
	r, _ := args.Get(0).(*client.Receipt)
	return r, args.Error(1)
}

func (m *MockAPI) SetVirtualCardStatus(ctx context.Context, id uint, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func baseMock() *MockAPI {
	api := new(MockAPI)
	api.On("Wallet", mock.Anything).Return(&models.Wallet{
		Balance:    dec("150"),
		Currency:   "USD",
		Currencies: []models.WalletCurrency{{ID: 1, Code: "USD", Rate: dec("1")}},
	}, nil).Maybe()
	api.On("Charges", mock.Anything, "virtual-card", "USD").Return(&models.Currency{
		ID: 4, Code: "USD", Rate: dec("1"), FixedCharge: dec("3"), MinLimit: dec("10"),
	}, nil).Maybe()
	api.On("RemainingLimit", mock.Anything, mock.Anything).Return(nil, &apperr.APIError{Status: 500}).Maybe()
	api.On("VirtualCards", mock.Anything).Return([]models.VirtualCard{
		{ID: 1, LastFour: "4242", Status: models.CardActive},
		{ID: 2, LastFour: "1881", Status: models.CardFrozen},
	}, nil).Maybe()
	return api
}

func newService(api *MockAPI, fx *notify.Effects) *Service {
	repo := repositories.NewMemoryStore()
	limits := limit.NewRegistry[models.LimitQuery, *models.RemainingLimit](time.Millisecond, time.Minute)
	return NewService(api, "sid", fx, wallet.NewDeps(repo, limits, zap.NewNop()))
}

func TestCreate(t *testing.T) {
	t.Run("issues a card", func(t *testing.T) {
		api := baseMock()
		api.On("CreateVirtualCard", mock.Anything, client.VirtualCardRequest{NameOnCard: "JANE DOE", Amount: "50", Currency: "USD"}).
			Return(&client.Receipt{TrxID: "V1"}, nil).Once()
		fx := notify.NewEffects()
		svc := newService(api, fx)

		res, err := svc.Create(context.Background(), CreateForm{NameOnCard: " jane doe ", Amount: "50"})
		require.NoError(t, err)
		assert.Equal(t, "V1", res.Receipt.TrxID)
		assert.Equal(t, "virtual card created", fx.Snapshot().Toasts[0].Message)
		api.AssertExpectations(t)
	})

	t.Run("name too long", func(t *testing.T) {
		api := baseMock()
		svc := newService(api, notify.NewEffects())

		res, err := svc.Create(context.Background(), CreateForm{NameOnCard: "ABCDEFGHIJKLMNOPQRSTUVWXYZA", Amount: "50"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, map[string]string{"name_on_card": "must not be more than 26 characters long"}, res.Flow.Errors)
	})

	t.Run("fee counts against the balance", func(t *testing.T) {
		api := baseMock()
		svc := newService(api, notify.NewEffects())

		res, err := svc.Create(context.Background(), CreateForm{NameOnCard: "JANE", Amount: "148"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, map[string]string{"amount": wallet.ErrInsufficientFunds.Message}, res.Flow.Errors)
		api.AssertNotCalled(t, "CreateVirtualCard", mock.Anything, mock.Anything)
	})
}

func TestTopUp(t *testing.T) {
	tests := []struct {
		name       string
		id         uint
		wantErrors map[string]string
	}{
		{name: "active card", id: 1},
		{name: "frozen card", id: 2, wantErrors: map[string]string{"card": ErrCardFrozen.Message}},
		{name: "missing card", id: 3, wantErrors: map[string]string{"card": ErrCardNotFound.Message}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := baseMock()
			api.On("TopUpVirtualCard", mock.Anything, tt.id, "20", "USD").Return(&client.Receipt{TrxID: "TU"}, nil).Maybe()
			svc := newService(api, notify.NewEffects())

			res, err := svc.TopUp(context.Background(), tt.id, TopUpForm{Amount: "20"})
			if tt.wantErrors != nil {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				assert.Equal(t, tt.wantErrors, res.Flow.Errors)
				api.AssertNotCalled(t, "TopUpVirtualCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "TU", res.Receipt.TrxID)
		})
	}
}

func TestFreezeUnfreeze(t *testing.T) {
	api := baseMock()
	api.On("SetVirtualCardStatus", mock.Anything, uint(1), models.CardFrozen).Return(nil).Once()
	api.On("SetVirtualCardStatus", mock.Anything, uint(2), models.CardActive).Return(nil).Once()
	fx := notify.NewEffects()
	svc := newService(api, fx)
	ctx := context.Background()

	require.NoError(t, svc.Freeze(ctx, 1))
	require.NoError(t, svc.Unfreeze(ctx, 2))
	// already frozen: nothing to send
	require.NoError(t, svc.Freeze(ctx, 2))

	assert.ErrorIs(t, svc.Freeze(ctx, 9), ErrCardNotFound)
	toasts := fx.Snapshot().Toasts
	require.Len(t, toasts, 3)
	assert.Equal(t, "card frozen", toasts[0].Message)
	assert.Equal(t, "card unfrozen", toasts[1].Message)
	assert.Equal(t, ErrCardNotFound.Message, toasts[2].Message)
	api.AssertExpectations(t)
}
