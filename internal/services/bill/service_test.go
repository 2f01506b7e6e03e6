package bill

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

func (m *MockAPI) BillServices(ctx context.Context) ([]models.BillService, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]models.BillService)
	return s, args.Error(1)
}

func (m *MockAPI) PayBill(ctx context.Context, br client.BillRequest) (*client.Receipt, error) {
	args := m.Called(ctx, br)
	r, _ := args.Get(0).(*client.Receipt)
	return r, args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func baseMock() *MockAPI {
	api := new(MockAPI)
	api.On("Wallet", mock.Anything).Return(&models.Wallet{
		Balance:    dec("300"),
		Currency:   "EUR",
		Currencies: []models.WalletCurrency{{ID: 1, Code: "EUR", Rate: dec("1")}},
	}, nil).Maybe()
	api.On("RemainingLimit", mock.Anything, mock.Anything).
		Return(&models.RemainingLimit{DailyLimit: dec("1000"), MonthlyLimit: dec("5000")}, nil).Maybe()
	api.On("BillServices", mock.Anything).Return([]models.BillService{{
		ID:       5,
		Name:     "City Power",
		Category: "electricity",
		Fields: []models.ManualField{
			{Label: "Meter number", Name: "meter", Type: "number", Validation: "required"},
			{Label: "Note", Name: "note", Type: "text", Validation: "nullable"},
		},
		Currency: models.Currency{ID: 50, Code: "EUR", Rate: dec("1"), FixedCharge: dec("0.5"), MinLimit: dec("5")},
	}}, nil).Once()
	return api
}

func newService(api *MockAPI, fx *notify.Effects) *Service {
	repo := repositories.NewMemoryStore()
	limits := limit.NewRegistry[models.LimitQuery, *models.RemainingLimit](time.Millisecond, time.Minute)
	return NewService(api, "sid", repo, fx, wallet.NewDeps(repo, limits, zap.NewNop()))
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name       string
		form       Form
		wantErrors map[string]string
	}{
		{
			name: "pays the bill",
			form: Form{ServiceID: 5, Amount: "40", Fields: map[string]string{"meter": "12345"}},
		},
		{
			name:       "meter must be a number",
			form:       Form{ServiceID: 5, Amount: "40", Fields: map[string]string{"meter": "12a"}},
			wantErrors: map[string]string{"field.meter": "Meter number must be a number"},
		},
		{
			name:       "meter is required",
			form:       Form{ServiceID: 5, Amount: "40"},
			wantErrors: map[string]string{"field.meter": "Meter number is required"},
		},
		{
			name:       "unknown biller",
			form:       Form{ServiceID: 6, Amount: "40"},
			wantErrors: map[string]string{"service_id": ErrServiceNotFound.Message},
		},
		{
			name:       "below minimum",
			form:       Form{ServiceID: 5, Amount: "1", Fields: map[string]string{"meter": "1"}},
			wantErrors: map[string]string{"amount": apperr.ErrBelowMinimum.Message},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := baseMock()
			if tt.wantErrors == nil {
				api.On("PayBill", mock.Anything, client.BillRequest{
					ServiceID: 5, Amount: "40", Currency: "EUR", Fields: map[string]string{"meter": "12345"},
				}).Return(&client.Receipt{TrxID: "B1"}, nil).Once()
			}
			fx := notify.NewEffects()
			svc := newService(api, fx)

			res, err := svc.Submit(context.Background(), tt.form)
			if tt.wantErrors != nil {
				assert.ErrorIs(t, err, apperr.ErrValidation)
				assert.Equal(t, tt.wantErrors, res.Flow.Errors)
				api.AssertNotCalled(t, "PayBill", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "B1", res.Receipt.TrxID)
			assert.Equal(t, "bill paid", fx.Snapshot().Toasts[0].Message)
			api.AssertExpectations(t)
		})
	}
}

func TestPreview_UsesBillerCharges(t *testing.T) {
	api := baseMock()
	svc := newService(api, notify.NewEffects())

	q, err := svc.Preview(context.Background(), Form{ServiceID: 5, Amount: "40"})
	require.NoError(t, err)
	assert.Equal(t, "0.50", q.Preview.Fee)
	assert.Equal(t, "40.50", q.Preview.TotalPayable)
	api.AssertNotCalled(t, "Charges", mock.Anything, mock.Anything, mock.Anything)
}
