package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"orusweb/internal/client"
	"orusweb/internal/config"
	"orusweb/internal/handlers"
	"orusweb/internal/middleware"
	"orusweb/internal/notify"
	"orusweb/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Errors  map[string]string `json:"errors"`
	Effects notify.View       `json:"effects"`
}

type fixture struct {
	app    *fiber.App
	hits   atomic.Int32
	cookie *http.Cookie
}

// newFixture serves the frontend API at /, the user API at /user and the
// seller API at /seller from one test server.
func newFixture(t *testing.T, backend http.HandlerFunc) *fixture {
	t.Helper()
	f := &fixture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		backend(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{
		AllowOrigins:   "http://localhost:5173",
		FrontendAPIURL: srv.URL,
		UserAPIURL:     srv.URL + "/user",
		SellerAPIURL:   srv.URL + "/seller",
		HTTPTimeout:    5 * time.Second,
		SessionSecret:  "test-secret",
		SessionTTL:     time.Hour,
		LimitDebounce:  time.Millisecond,
		SearchDebounce: time.Millisecond,
	}
	log := zap.NewNop()
	deps := handlers.NewDeps(cfg, repositories.NewMemoryStore(), client.NewBackends(cfg, log), log)
	t.Cleanup(deps.Close)

	f.app = NewApp(deps)
	return f
}

// do sends a request with the fixture's browser cookie and keeps any new
// cookie the app hands out.
func (f *fixture) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}

	resp, err := f.app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CookieName {
			f.cookie = c
		}
	}

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func userBackend(t *testing.T, walletStatus *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/login":
			_, _ = io.WriteString(w, `{"data":{"access_token":"tok","token_type":"Bearer","user":{"username":"ada"}}}`)
		case "/user/wallet":
			if code := walletStatus.Load(); code != 0 {
				w.WriteHeader(int(code))
				_, _ = io.WriteString(w, `{"message":"Unauthenticated."}`)
				return
			}
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"data":{"balance":"100","currency":"USD","currencies":[{"id":1,"code":"USD","rate":"1"}]}}`)
		case "/user/transactions":
			_, _ = io.WriteString(w, `{"data":[{"id":1}],"current_page":1,"total":1}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Not Found"}`)
		}
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	status, env := f.do(t, http.MethodGet, "/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, env.Error)
}

func TestGate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		redirect string
	}{
		{name: "user", path: "/api/user/dashboard", redirect: "/user/auth/login"},
		{name: "seller", path: "/api/seller/orders", redirect: "/seller/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})

			status, env := f.do(t, http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "MISSING_TOKEN", env.Code)
			assert.Equal(t, tt.redirect, env.Effects.Redirect)
			assert.Zero(t, f.hits.Load())
		})
	}
}

func TestLogin_ValidationSkipsBackend(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	status, env := f.do(t, http.MethodPost, "/api/auth/user/login", `{"username":"ada"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "password")
	assert.Zero(t, f.hits.Load())
}

func TestLogin_OpensOnlyThatRole(t *testing.T) {
	var walletStatus atomic.Int32
	f := newFixture(t, userBackend(t, &walletStatus))

	status, env := f.do(t, http.MethodPost, "/api/auth/user/login", `{"username":"ada","password":"secret"}`)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "/user/dashboard", env.Effects.Redirect)
	require.NotNil(t, f.cookie)

	status, env = f.do(t, http.MethodGet, "/api/user/dashboard", "")
	require.Equal(t, http.StatusOK, status, env.Error)
	var view struct {
		Balance  string `json:"balance"`
		Currency string `json:"currency"`
		Recent   []struct {
			ID uint `json:"id"`
		} `json:"recent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "100.00", view.Balance)
	assert.Equal(t, "USD", view.Currency)
	assert.Len(t, view.Recent, 1)

	status, env = f.do(t, http.MethodGet, "/api/seller/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "/seller/auth/login", env.Effects.Redirect)
}

func TestBackend401EndsSession(t *testing.T) {
	var walletStatus atomic.Int32
	f := newFixture(t, userBackend(t, &walletStatus))

	status, _ := f.do(t, http.MethodPost, "/api/auth/user/login", `{"username":"ada","password":"secret"}`)
	require.Equal(t, http.StatusOK, status)

	walletStatus.Store(http.StatusUnauthorized)
	status, env := f.do(t, http.MethodGet, "/api/user/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "/user/auth/login", env.Effects.Redirect)
	require.NotEmpty(t, env.Effects.Toasts)

	before := f.hits.Load()
	status, env = f.do(t, http.MethodGet, "/api/user/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", env.Code)
	assert.Equal(t, before, f.hits.Load())
}

func TestStorefrontHome(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		if r.URL.Path != "/home" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"banners":["sale.png"]}}`)
	})

	for i := 0; i < 2; i++ {
		status, env := f.do(t, http.MethodGet, "/api/home", "")
		require.Equal(t, http.StatusOK, status, env.Error)
		var view struct {
			Data struct {
				Banners []string `json:"banners"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &view))
		assert.Equal(t, []string{"sale.png"}, view.Data.Banners)
	}
	assert.Equal(t, int32(1), f.hits.Load())
}
