package withdraw

import (
	"context"
	"errors"
	"testing"
	"time"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/services/limit"
	"orusweb/internal/services/wallet"
	"orusweb/internal/session"

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

func (m *MockAPI) WithdrawMethods(ctx context.Context) ([]models.Gateway, error) {
	args := m.Called(ctx)
	g, _ := args.Get(0).([]models.Gateway)
	return g, args.Error(1)
}

func (m *MockAPI) ConfirmWithdraw(ctx context.Context, wr client.WithdrawRequest) (*client.WithdrawReceipt, error) {
	args := m.Called(ctx, wr)
	r, _ := args.Get(0).(*client.WithdrawReceipt)
	return r, args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func methods() []models.Gateway {
	usd := models.Currency{ID: 11, Code: "USD", Rate: dec("1"), FixedCharge: dec("1"), PercentCharge: dec("2"),
		MinLimit: dec("10"), MaxLimit: dec("5000")}
	return []models.Gateway{
		{ID: 1, Name: "Bank transfer", Type: "manual", Currencies: []models.Currency{usd}, Fields: []models.ManualField{
			{Label: "Account number", Name: "account_number", Type: "text", Validation: "required"},
			{Label: "ID card", Name: "id_card", Type: "file", Validation: "required"},
		}},
		{ID: 2, Name: "Instant payout", Type: "automatic", Currencies: []models.Currency{usd}},
	}
}

type fixture struct {
	api  *MockAPI
	repo *repositories.MemoryStore
	deps Deps
}

func newFixture() *fixture {
	api := new(MockAPI)
	api.On("WithdrawMethods", mock.Anything).Return(methods(), nil).Maybe()
	api.On("Wallet", mock.Anything).Return(&models.Wallet{
		Balance:    dec("1000"),
		Currency:   "USD",
		Currencies: []models.WalletCurrency{{ID: 1, Code: "USD", Rate: dec("1")}},
	}, nil).Maybe()
	api.On("RemainingLimit", mock.Anything, mock.Anything).Return(nil, errors.New("limit service down")).Maybe()

	repo := repositories.NewMemoryStore()
	limits := limit.NewRegistry[models.LimitQuery, *models.RemainingLimit](time.Millisecond, time.Minute)
	return &fixture{
		api:  api,
		repo: repo,
		deps: Deps{Wallet: wallet.NewDeps(repo, limits, zap.NewNop())},
	}
}

// request builds the service the way one browser request would.
func (f *fixture) request(fx *notify.Effects) *Service {
	return NewService(f.api, session.RoleSeller, "sid", f.repo, fx, fx, f.deps)
}

func TestWithdraw_ManualStepsAcrossRequests(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	form := Form{MethodID: 1, CurrencyID: 11, Amount: "100"}

	view, err := f.request(notify.NewEffects()).Load(ctx)
	require.NoError(t, err)
	require.Len(t, view.Methods, 2)
	assert.Equal(t, StepMethod, view.Step.Name)

	step, err := f.request(notify.NewEffects()).Next(ctx, form.Values())
	require.NoError(t, err)
	assert.Equal(t, StepDetails, step.Name)
	require.NotNil(t, step.Quote)
	assert.Equal(t, "3.00", step.Quote.Preview.Fee)
	assert.Equal(t, "103.00", step.Quote.Preview.TotalPayable)

	step, err = f.request(notify.NewEffects()).Next(ctx, FieldValues(map[string]string{"account_number": " "}))
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, StepDetails, step.Name)
	assert.Equal(t, map[string]string{"field.account_number": "Account number is required"}, step.Flow.Errors)

	step, err = f.request(notify.NewEffects()).Next(ctx, FieldValues(map[string]string{"account_number": "DE44"}))
	require.NoError(t, err)
	assert.Equal(t, StepConfirm, step.Name)

	// the upload is required at confirm time
	_, err = f.request(notify.NewEffects()).Submit(ctx, nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	f.api.AssertNotCalled(t, "ConfirmWithdraw", mock.Anything, mock.Anything)

	files := []models.KYCFile{{Field: "id_card", FileName: "id.png", Content: []byte("png")}}
	f.api.On("ConfirmWithdraw", mock.Anything, client.WithdrawRequest{
		MethodID:   1,
		CurrencyID: 11,
		Amount:     "100",
		Fields:     map[string]string{"account_number": "DE44"},
		Files:      files,
	}).Return(&client.WithdrawReceipt{TrxID: "W1", Status: "pending"}, nil).Once()

	fx := notify.NewEffects()
	res, err := f.request(fx).Submit(ctx, files)
	require.NoError(t, err)
	assert.Equal(t, "W1", res.Receipt.TrxID)
	assert.Equal(t, "/seller/withdraw/history", res.Route)
	assert.Equal(t, "/seller/withdraw/history", fx.Snapshot().Redirect)
	require.Len(t, fx.Snapshot().Toasts, 1)
	assert.Equal(t, notify.LevelSuccess, fx.Snapshot().Toasts[0].Level)

	// the draft is gone
	view, err = f.request(notify.NewEffects()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepMethod, view.Step.Name)
	f.api.AssertExpectations(t)
}

func TestWithdraw_MethodWithoutFieldsSkipsDetails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	form := Form{MethodID: 2, CurrencyID: 11, Amount: "50"}

	step, err := f.request(notify.NewEffects()).Next(ctx, form.Values())
	require.NoError(t, err)
	assert.Equal(t, StepConfirm, step.Name)

	step, err = f.request(notify.NewEffects()).Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepMethod, step.Name)
	assert.Equal(t, "50", step.Flow.Fields["amount"])
}

func TestWithdraw_MethodStepChecks(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want map[string]string
	}{
		{
			name: "insufficient balance",
			form: Form{MethodID: 2, CurrencyID: 11, Amount: "2000"},
			want: map[string]string{"amount": wallet.ErrInsufficientFunds.Message},
		},
		{
			name: "below minimum",
			form: Form{MethodID: 2, CurrencyID: 11, Amount: "5"},
			want: map[string]string{"amount": apperr.ErrBelowMinimum.Message},
		},
		{
			name: "unknown method",
			form: Form{MethodID: 9, CurrencyID: 11, Amount: "50"},
			want: map[string]string{"method_id": ErrMethodNotFound.Message},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			step, err := f.request(notify.NewEffects()).Next(context.Background(), tt.form.Values())
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, StepMethod, step.Name)
			assert.Equal(t, tt.want, step.Flow.Errors)
		})
	}
}

func TestWithdraw_SubmitBeforeConfirmStep(t *testing.T) {
	f := newFixture()
	_, err := f.request(notify.NewEffects()).Submit(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidStep)
	f.api.AssertNotCalled(t, "ConfirmWithdraw", mock.Anything, mock.Anything)
}

func TestFormFromValues(t *testing.T) {
	in := Form{MethodID: 3, CurrencyID: 4, Amount: "12.5", Fields: map[string]string{"iban": "X"}}
	out := formFrom(in.Values())
	assert.Equal(t, in, out)
}
