package flow

import (
	"context"
	"net/http"
	"testing"

	apperr "orusweb/internal/errors"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAmount(fields map[string]string) error {
	v := validation.New()
	v.Required("amount", fields["amount"])
	return v.Err()
}

func TestMachine_Load(t *testing.T) {
	fx := notify.NewEffects()
	m := New("deposit", fx)
	assert.Equal(t, StateLoading, m.State())

	err := m.Load(context.Background(), func(context.Context) error {
		return &apperr.APIError{Status: http.StatusInternalServerError, Messages: []string{"gateways unavailable"}}
	})
	assert.Error(t, err)
	assert.Equal(t, StateReady, m.State())
	require.Len(t, fx.Snapshot().Toasts, 1)
	assert.Equal(t, "gateways unavailable", fx.Snapshot().Toasts[0].Message)
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		result     error
		wantCalled bool
		wantErr    error
		wantState  State
		wantToast  string
	}{
		{
			name:       "success",
			fields:     map[string]string{"amount": "50"},
			wantCalled: true,
			wantState:  StateSuccess,
		},
		{
			name:      "required field blocks the network call",
			fields:    map[string]string{"amount": ""},
			wantErr:   apperr.ErrValidation,
			wantState: StateReady,
		},
		{
			name:       "server error keeps fields and toasts",
			fields:     map[string]string{"amount": "50", "note": "rent"},
			result:     &apperr.APIError{Status: 422, Messages: []string{"Insufficient balance"}},
			wantCalled: true,
			wantState:  StateReady,
			wantToast:  "Insufficient balance",
		},
		{
			name:       "expired session is not toasted twice",
			fields:     map[string]string{"amount": "50"},
			result:     apperr.ErrSessionExpired,
			wantCalled: true,
			wantErr:    apperr.ErrSessionExpired,
			wantState:  StateReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := notify.NewEffects()
			m := New("transfer", fx)
			require.NoError(t, m.Load(context.Background(), func(context.Context) error { return nil }))
			m.EditAll(tt.fields)

			called := false
			out, err := Submit(context.Background(), m, requireAmount, func(_ context.Context, f map[string]string) (string, error) {
				called = true
				assert.Equal(t, StateSubmitting, m.State())
				return "trx-" + f["amount"], tt.result
			})

			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantState, m.State())
			if called {
				assert.Equal(t, tt.result, m.LastError())
			} else {
				assert.NoError(t, m.LastError())
			}
			assert.Equal(t, tt.fields, m.Fields())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.result != nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, "trx-50", out)
			}

			toasts := fx.Snapshot().Toasts
			if tt.wantToast == "" {
				assert.Empty(t, toasts)
			} else {
				require.Len(t, toasts, 1)
				assert.Equal(t, notify.LevelError, toasts[0].Level)
				assert.Equal(t, tt.wantToast, toasts[0].Message)
			}
		})
	}
}

func TestSubmit_ValidationSetsFieldErrors(t *testing.T) {
	m := New("transfer", nil)
	_, err := Submit(context.Background(), m, requireAmount, func(context.Context, map[string]string) (int, error) {
		t.Fatal("network call must not happen")
		return 0, nil
	})
	require.Error(t, err)
	assert.Equal(t, validation.Errors{"amount": "this field is required"}, m.Errors())

	m.Edit("amount", "10")
	assert.Nil(t, m.Errors())
}

func TestSubmit_Busy(t *testing.T) {
	m := New("bill", nil)
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _ = Submit(context.Background(), m, nil, func(context.Context, map[string]string) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()
	<-started

	_, err := Submit(context.Background(), m, nil, func(context.Context, map[string]string) (int, error) { return 2, nil })
	assert.ErrorIs(t, err, apperr.ErrBusy)
	close(release)
}

func TestSteps(t *testing.T) {
	m := New("checkout", nil, "review", "address", "confirmation")

	idx, name := m.Step()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "review", name)
	assert.ErrorIs(t, m.Back(), apperr.ErrInvalidStep)

	require.NoError(t, m.Next(nil))
	err := m.Next(func(f map[string]string) error {
		v := validation.New()
		v.Required("address", f["address"])
		return v.Err()
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, name = m.Step()
	assert.Equal(t, "address", name)

	m.Edit("address", "1 Main St")
	require.NoError(t, m.Next(nil))
	assert.True(t, m.LastStep())
	assert.ErrorIs(t, m.Next(nil), apperr.ErrInvalidStep)

	require.NoError(t, m.Back())
	_, name = m.Step()
	assert.Equal(t, "address", name)
}

func TestDrafts(t *testing.T) {
	ctx := context.Background()
	drafts := NewDrafts(repositories.NewMemoryStore())

	m := New("withdraw", nil, "method", "details", "confirm")
	m.Edit("method_id", "3")
	require.NoError(t, m.Next(nil))
	require.NoError(t, drafts.Save(ctx, "sid", "user", m))

	restored := New("withdraw", nil, "method", "details", "confirm")
	require.NoError(t, drafts.Load(ctx, "sid", "user", restored))
	idx, _ := restored.Step()
	assert.Equal(t, 1, idx)
	assert.Equal(t, "3", restored.Value("method_id"))
	assert.Equal(t, StateReady, restored.State())

	other := New("withdraw", nil, "method", "details", "confirm")
	require.NoError(t, drafts.Load(ctx, "sid", "seller", other))
	assert.Empty(t, other.Value("method_id"))

	require.NoError(t, drafts.Discard(ctx, "sid", "user", "withdraw"))
	fresh := New("withdraw", nil, "method", "details", "confirm")
	require.NoError(t, drafts.Load(ctx, "sid", "user", fresh))
	assert.Empty(t, fresh.Fields())
}
