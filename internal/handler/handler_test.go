package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/token"
	"storefront/internal/logging"
	"storefront/internal/session"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// helper
// =====================

type testApp struct {
	e     *echo.Echo
	store *session.Store
	kv    *infraRepo.MemoryKVStore
}

func newTestApp(t *testing.T, loadingDelay time.Duration) *testApp {
	t.Helper()

	cfg := config.Config{JWTSecret: "test-secret", AccessTokenTTL: 15 * time.Minute}
	log := logging.Discard()
	kv := infraRepo.NewMemoryKVStore()

	store := session.NewStore(context.Background(), kv, session.Options{LoadingDelay: loadingDelay, Logger: log})
	t.Cleanup(store.Close)

	catalog := infraRepo.NewStaticCatalogRepository(nil)
	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	v := validator.NewAuthValidator()

	e := echo.New()
	handler.NewSessionHandler(store).RegisterRoutes(e)
	handler.NewMenuHandler(usecase.NewMenuUsecase(catalog)).RegisterRoutes(e)
	handler.NewCartHandler(usecase.NewCartUsecase(store, catalog, log)).RegisterRoutes(e, store)
	handler.NewAuthHandler(
		auth.NewRegisterUserUsecase(store, v, issuer, auth.UUIDGenerator{}, auth.RealClock{}),
		auth.NewLoginUsecase(store, v, issuer, auth.UUIDGenerator{}, auth.RealClock{}),
		auth.NewLogoutUsecase(store),
		store,
		log,
	).RegisterRoutes(e, cfg)

	return &testApp{e: e, store: store, kv: kv}
}

func (a *testApp) do(t *testing.T, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

type cartBody struct {
	Items []struct {
		ID       string  `json:"id"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	} `json:"items"`
	ItemCount   int     `json:"item_count"`
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

type loginBody struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	} `json:"token"`
}

type errorBody struct {
	Error string `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

// =====================
// Menu
// =====================

func TestMenu_List(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodGet, "/menu", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[usecase.MenuListOutput](t, rec)
	assert.Equal(t, 11, body.Total)
	assert.Equal(t, "All", body.Categories[0])

	rec = app.do(t, http.MethodGet, "/menu?category=Burger&q=smash", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[usecase.MenuListOutput](t, rec)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "b1", body.Items[0].ID)

	rec = app.do(t, http.MethodGet, "/menu?category=Soup", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMenu_Detail(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodGet, "/menu/d1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"d1","name":"Citrus Nebula Soda","category":"Drink","price":4.99,
		"description":"Blood orange, yuzu and sparkling water.","calories":120,"prepTime":"2 min","rating":4.4}`, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/menu/zz", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decode[errorBody](t, rec).Error)
}

// =====================
// Cart
// =====================

func TestCart_Flow(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/cart", `{"food_id":"b1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodPost, "/cart", `{"food_id":"b1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decode[cartBody](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 14.99, cart.Items[0].Price)
	assert.Equal(t, 29.98, cart.Subtotal)
	assert.Equal(t, 5.99, cart.DeliveryFee)
	assert.Equal(t, 35.97, cart.Total)

	rec = app.do(t, http.MethodPatch, "/cart/b1", `{"delta":-5}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[cartBody](t, rec).ItemCount)

	rec = app.do(t, http.MethodPatch, "/cart/b1", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodDelete, "/cart/b1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartBody](t, rec).Items)

	rec = app.do(t, http.MethodGet, "/cart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"item_count":0,"subtotal":0,"delivery_fee":5.99,"total":5.99}`, rec.Body.String())
}

func TestCart_PatchHugeDelta(t *testing.T) {
	app := newTestApp(t, 0)

	app.do(t, http.MethodPost, "/cart", `{"food_id":"b1"}`, "")
	app.do(t, http.MethodPost, "/cart", `{"food_id":"b1"}`, "")

	for _, body := range []string{
		`{"delta":9223372036854775807}`,
		`{"delta":4611686018427387903}`,
		`{"delta":-100}`,
		`{"delta":1e30}`,
	} {
		rec := app.do(t, http.MethodPatch, "/cart/b1", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := app.do(t, http.MethodGet, "/cart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[cartBody](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 29.98, cart.Subtotal)
	assert.Equal(t, 35.97, cart.Total)

	rec = app.do(t, http.MethodPatch, "/cart/b1", `{"delta":99}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartBody](t, rec)
	assert.Equal(t, 99, cart.Items[0].Quantity)
	assert.Equal(t, 1484.01, cart.Subtotal)
	assert.Equal(t, 0.0, cart.DeliveryFee)
}

func TestCart_UnknownFood(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/cart", `{"food_id":"nope"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_Clear(t *testing.T) {
	app := newTestApp(t, 0)

	app.do(t, http.MethodPost, "/cart", `{"food_id":"s1"}`, "")
	app.do(t, http.MethodPost, "/cart", `{"food_id":"d1"}`, "")

	rec := app.do(t, http.MethodDelete, "/cart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[cartBody](t, rec).ItemCount)

	raw, err := app.kv.Get(context.Background(), session.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, raw)
}

func TestCart_LoadingReturns503(t *testing.T) {
	app := newTestApp(t, time.Hour)

	rec := app.do(t, http.MethodGet, "/cart", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "loading", decode[errorBody](t, rec).Error)

	// /session と /menu は読み込み中でも返る
	rec = app.do(t, http.MethodGet, "/session", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"loading":true,"user":null,"item_count":0}`, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/menu", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// Auth
// =====================

func TestAuth_LoginMeLogout(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/auth/login", `{"email":"john@example.com","password":"password1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	login := decode[loginBody](t, rec)
	assert.Equal(t, "john", login.User.Name)
	assert.Equal(t, 900, login.Token.ExpiresIn)
	require.NotEmpty(t, login.Token.AccessToken)

	rec = app.do(t, http.MethodGet, "/auth/me", "", login.Token.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), login.User.ID)

	rec = app.do(t, http.MethodGet, "/session", "", "")
	assert.Contains(t, rec.Body.String(), `"email":"john@example.com"`)

	rec = app.do(t, http.MethodPost, "/auth/logout", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// ログアウト後は同じトークンでも401
	rec = app.do(t, http.MethodGet, "/auth/me", "", login.Token.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, ok := app.store.User().Get()
	assert.False(t, ok)
}

func TestAuth_SignupAndValidation(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/auth/signup", `{"name":"Jane","email":"jane@example.com","password":"password1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jane", decode[loginBody](t, rec).User.Name)

	rec = app.do(t, http.MethodPost, "/auth/signup", `{"email":"jane@example.com","password":"password1"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorBody](t, rec).Error)

	rec = app.do(t, http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_MeWithoutToken(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
