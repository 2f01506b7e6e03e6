package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	calls   *int64
	store   *repositories.MemoryStore
	effects *notify.Effects
	user    *UserClient
	seller  *SellerClient
	front   *FrontendClient
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := repositories.NewMemoryStore()
	effects := notify.NewEffects()
	b := NewBackendsFrom(
		NewTransport(NameFrontend, Options{BaseURL: srv.URL + "/frontend"}),
		NewTransport(NameUser, Options{BaseURL: srv.URL + "/user"}),
		NewTransport(NameSeller, Options{BaseURL: srv.URL + "/seller"}),
	)
	return &fixture{
		calls:   &calls,
		store:   store,
		effects: effects,
		user:    b.User(session.New(store, "sid", session.RoleUser), effects, effects),
		seller:  b.Seller(session.New(store, "sid", session.RoleSeller), effects, effects),
		front:   b.Frontend(),
	}
}

func TestMissingTokenSkipsNetwork(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	_, err := f.user.Wallet(ctx)
	assert.ErrorIs(t, err, apperr.ErrMissingToken)
	_, err = f.user.ConfirmDeposit(ctx, DepositRequest{Amount: "10"})
	assert.ErrorIs(t, err, apperr.ErrMissingToken)
	err = f.user.SubmitKYC(ctx, map[string]string{"name": "x"}, nil)
	assert.ErrorIs(t, err, apperr.ErrMissingToken)
	_, err = f.seller.Orders(ctx, "", 1)
	assert.ErrorIs(t, err, apperr.ErrMissingToken)

	assert.Equal(t, int64(0), atomic.LoadInt64(f.calls))
}

func TestBearerTokenAndEnvelope(t *testing.T) {
	var gotAuth string
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/user/wallet", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"balance":"125.50","currency":"USD","currencies":[{"code":"USD","rate":1}]}}`)
	})
	ctx := context.Background()
	require.NoError(t, f.user.Session().SetToken(ctx, "abc", "Bearer"))

	wallet, err := f.user.Wallet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "125.5", wallet.Balance.String())
	assert.Equal(t, "USD", wallet.Currency)
}

func TestUserUnauthorizedClearsOnlyUserSession(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Unauthenticated."}`)
	})
	ctx := context.Background()
	userSess := f.user.Session()
	sellerSess := f.seller.Session()
	require.NoError(t, userSess.SetToken(ctx, "u", "Bearer"))
	require.NoError(t, userSess.SetProfile(ctx, &models.Profile{Username: "ada"}))
	require.NoError(t, userSess.SetRemember(ctx, true))
	require.NoError(t, sellerSess.SetToken(ctx, "s", "Bearer"))

	_, err := f.user.Profile(ctx)
	assert.ErrorIs(t, err, apperr.ErrSessionExpired)

	for _, k := range userSess.Keys() {
		_, ok, _ := f.store.Get(ctx, k)
		assert.False(t, ok, "user key %s should be removed", k)
	}
	tok, err := sellerSess.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s", tok)

	view := f.effects.Snapshot()
	assert.Equal(t, "/user/auth/login", view.Redirect)
	require.Len(t, view.Toasts, 1)
	assert.Equal(t, notify.LevelError, view.Toasts[0].Level)
}

func TestSellerUnauthorizedLeavesUserKeys(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ctx := context.Background()
	require.NoError(t, f.user.Session().SetToken(ctx, "u", "Bearer"))
	require.NoError(t, f.user.Session().SetProfile(ctx, &models.Profile{Username: "ada"}))
	require.NoError(t, f.seller.Session().SetToken(ctx, "s", "Bearer"))

	_, err := f.seller.Products(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrSessionExpired)

	for _, name := range []string{session.KeyToken, session.KeyTokenType, session.KeyProfile} {
		_, ok, _ := f.store.Get(ctx, repositories.Key("sid", "user", name))
		assert.True(t, ok, "user key %s must survive", name)
	}
	assert.Equal(t, "/seller/auth/login", f.effects.Snapshot().Redirect)
}

func TestAnonymous401IsAnAPIError(t *testing.T) {
	tests := []struct {
		name string
		call func(ctx context.Context, f *fixture) error
	}{
		{
			name: "login",
			call: func(ctx context.Context, f *fixture) error {
				_, err := f.user.Login(ctx, Credentials{Username: "ada", Password: "wrong"})
				return err
			},
		},
		{
			name: "forgot password",
			call: func(ctx context.Context, f *fixture) error {
				return f.user.ForgotPassword(ctx, "ada@example.com")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Empty(t, r.Header.Get("Authorization"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"message":{"error":["Invalid credentials"]}}`)
			})
			ctx := context.Background()
			require.NoError(t, f.user.Session().SetRemember(ctx, true))

			err := tt.call(ctx, f)
			require.Error(t, err)
			assert.NotErrorIs(t, err, apperr.ErrSessionExpired)
			var apiErr *apperr.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
			assert.Equal(t, []string{"Invalid credentials"}, apiErr.Messages)

			_, ok, _ := f.store.Get(ctx, repositories.Key("sid", "user", session.KeyRemember))
			assert.True(t, ok, "remember flag must survive")
			view := f.effects.Snapshot()
			assert.Empty(t, view.Redirect)
			assert.Empty(t, view.Toasts)
		})
	}
}

func TestAPIErrorSurfacesFirstMessage(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":{"error":["Insufficient balance","other"]}}`)
	})
	ctx := context.Background()
	require.NoError(t, f.user.Session().SetToken(ctx, "u", "Bearer"))

	_, err := f.user.ConfirmTransfer(ctx, TransferRequest{Recipient: "bob", Amount: "10"})
	require.Error(t, err)
	assert.Equal(t, "Insufficient balance", apperr.FirstMessage(err))
}

func TestFrontendIsPublic(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Len(t, r.Header.Get("X-Request-ID"), 26)
		assert.Equal(t, "shoes", r.URL.Query().Get("search"))
		_, _ = io.WriteString(w, `{"data":{"data":[{"id":1,"name":"Runner","price":"40"}],"current_page":1,"total":1}}`)
	})

	page, err := f.front.Products(context.Background(), ProductQuery{Search: "shoes"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Runner", page.Data[0].Name)
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "wrapped", body: `{"data":{"id":1}}`, want: `{"id":1}`},
		{name: "bare paginator", body: `{"data":[{"id":1}],"current_page":2}`, want: `{"data":[{"id":1}],"current_page":2}`},
		{name: "null data", body: `{"data":null,"id":3}`, want: `{"data":null,"id":3}`},
		{name: "array", body: `[1,2]`, want: `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, string(unwrap([]byte(tt.body))))
		})
	}
}

func TestMultipartKYC(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "Ada", r.FormValue("full_name"))
		file, header, err := r.FormFile("passport")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		assert.Equal(t, "passport.png", header.Filename)
		_, _ = io.WriteString(w, `{"message":"submitted"}`)
	})
	ctx := context.Background()
	require.NoError(t, f.user.Session().SetToken(ctx, "u", "Bearer"))

	err := f.user.SubmitKYC(ctx, map[string]string{"full_name": "Ada"}, []models.KYCFile{
		{Field: "passport", FileName: "passport.png", Content: []byte("png")},
	})
	assert.NoError(t, err)
}

func TestMalformedPayload(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":"not-an-object"}`)
	})
	ctx := context.Background()
	require.NoError(t, f.user.Session().SetToken(ctx, "u", "Bearer"))

	_, err := f.user.Wallet(ctx)
	assert.ErrorIs(t, err, apperr.ErrMalformedResponse)
}
