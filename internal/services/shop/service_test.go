package shop

import (
	"context"
	"testing"
	"time"

	"orusweb/internal/client"
	apperr "orusweb/internal/errors"
	"orusweb/internal/models"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"
	"orusweb/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Home(ctx context.Context) (*models.HomeData, error) {
	args := m.Called(ctx)
	h, _ := args.Get(0).(*models.HomeData)
	return h, args.Error(1)
}

func (m *MockAPI) Products(ctx context.Context, q client.ProductQuery) (*models.Page[models.Product], error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(*models.Page[models.Product])
	return p, args.Error(1)
}

func (m *MockAPI) Product(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *MockAPI) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.Category)
	return c, args.Error(1)
}

func (m *MockAPI) Settings(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(*models.Settings)
	return st, args.Error(1)
}

var mug = &models.Product{ID: 5, Slug: "mug", Name: "Mug", Price: decimal.RequireFromString("12.50"), Stock: 3}

func newDeps(t *testing.T) Deps {
	t.Helper()
	repo := repositories.NewMemoryStore()
	carts := store.NewCarts(repo, time.Minute, zap.NewNop())
	wishlists := store.NewWishlists(repo, time.Minute, zap.NewNop())
	t.Cleanup(carts.Close)
	t.Cleanup(wishlists.Close)
	return Deps{
		Home:      store.NewHome(time.Minute),
		Carts:     carts,
		Wishlists: wishlists,
		Repo:      repo,
	}
}

func baseMock() *MockAPI {
	api := new(MockAPI)
	api.On("Product", mock.Anything, "mug").Return(mug, nil).Maybe()
	api.On("Product", mock.Anything, "ghost").
		Return(nil, &apperr.APIError{Status: 404, Messages: []string{"Not Found"}}).Maybe()
	return api
}

func TestAddToCart(t *testing.T) {
	api := baseMock()
	deps := newDeps(t)
	ctx := context.Background()

	fx := notify.NewEffects()
	view, err := NewService(api, "sid", fx, deps).AddToCart(ctx, "mug", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "25.00", view.Total)
	assert.Equal(t, "Mug added to cart", fx.Snapshot().Toasts[0].Message)

	fx = notify.NewEffects()
	view, err = NewService(api, "sid", fx, deps).AddToCart(ctx, "mug", 2)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, notify.LevelError, fx.Snapshot().Toasts[0].Level)

	_, err = NewService(api, "sid", notify.NewEffects(), deps).AddToCart(ctx, "ghost", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// the product was fetched once and served from cache afterwards
	api.AssertNumberOfCalls(t, "Product", 2)
}

func TestCartIsPerBrowser(t *testing.T) {
	api := baseMock()
	deps := newDeps(t)
	ctx := context.Background()

	_, err := NewService(api, "a", notify.NewEffects(), deps).AddToCart(ctx, "mug", 1)
	require.NoError(t, err)

	other, err := NewService(api, "b", notify.NewEffects(), deps).Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, other.Items)
	assert.Equal(t, "0.00", other.Total)
}

func TestSetQuantity(t *testing.T) {
	api := baseMock()
	deps := newDeps(t)
	ctx := context.Background()
	svc := NewService(api, "sid", notify.NewEffects(), deps)

	_, err := svc.AddToCart(ctx, "mug", 1)
	require.NoError(t, err)

	view, err := svc.SetQuantity(ctx, mug.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, "37.50", view.Total)

	_, err = svc.SetQuantity(ctx, 99, 1)
	assert.ErrorIs(t, err, ErrNotInCart)

	view, err = svc.RemoveFromCart(ctx, mug.ID)
	require.NoError(t, err)
	assert.Zero(t, view.Count)
}

func TestToggleWishlist(t *testing.T) {
	api := baseMock()
	deps := newDeps(t)
	ctx := context.Background()
	svc := NewService(api, "sid", notify.NewEffects(), deps)

	st, err := svc.ToggleWishlist(ctx, "mug")
	require.NoError(t, err)
	assert.True(t, st.Has(mug.ID))

	view, err := svc.Product(ctx, "mug")
	require.NoError(t, err)
	assert.True(t, view.Wished)

	st, err = svc.ToggleWishlist(ctx, "mug")
	require.NoError(t, err)
	assert.False(t, st.Has(mug.ID))
}

func TestHome_SharedAcrossBrowsers(t *testing.T) {
	api := baseMock()
	api.On("Home", mock.Anything).Return(&models.HomeData{Banners: []string{"sale.png"}}, nil).Once()
	deps := newDeps(t)
	ctx := context.Background()

	for _, sid := range []string{"a", "b"} {
		view, err := NewService(api, sid, notify.NewEffects(), deps).Home(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"sale.png"}, view.Data.Banners)
	}
	api.AssertExpectations(t)
}

func TestProducts_NormalizesQuery(t *testing.T) {
	api := baseMock()
	api.On("Products", mock.Anything, client.ProductQuery{Search: "mug", Page: 1}).
		Return(&models.Page[models.Product]{Data: []models.Product{*mug}, Total: 1}, nil).Once()

	page, err := NewService(api, "sid", notify.NewEffects(), newDeps(t)).Products(context.Background(), client.ProductQuery{Search: "  mug "})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	api.AssertExpectations(t)
}

func TestCategories_Cached(t *testing.T) {
	api := baseMock()
	api.On("Categories", mock.Anything).Return([]models.Category{{ID: 1, Slug: "kitchen"}}, nil).Once()
	deps := newDeps(t)

	for _, sid := range []string{"a", "b"} {
		cats, err := NewService(api, sid, notify.NewEffects(), deps).Categories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "kitchen", cats[0].Slug)
	}
	api.AssertExpectations(t)
}
