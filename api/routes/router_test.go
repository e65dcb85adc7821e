package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iphycodes/odg/api/middleware"
	"github.com/Iphycodes/odg/internal/buynow"
	"github.com/Iphycodes/odg/internal/cart"
	"github.com/Iphycodes/odg/internal/catalog"
	checkoutsvc "github.com/Iphycodes/odg/internal/checkout"
	"github.com/Iphycodes/odg/internal/saved"
	"github.com/Iphycodes/odg/pkg/config"
	"github.com/Iphycodes/odg/pkg/events"
	"github.com/Iphycodes/odg/pkg/logger"
	"github.com/Iphycodes/odg/pkg/paystack"
	"github.com/Iphycodes/odg/pkg/types"
)

type memoryKV struct {
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	value, ok := m.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryKV) Ping(context.Context) error { return nil }

func (m *memoryKV) CartKey(sessionID string) string   { return "odg:cart:" + sessionID }
func (m *memoryKV) BuyNowKey(sessionID string) string { return "odg:buynow:" + sessionID }
func (m *memoryKV) SavedKey(sessionID string) string  { return "odg:saved:" + sessionID }

type okGateway struct{}

func (okGateway) InitializeTransaction(_ context.Context, req paystack.InitializeRequest) (*paystack.Transaction, error) {
	return &paystack.Transaction{
		AuthorizationURL: "https://checkout.paystack.com/test",
		AccessCode:       "test",
		Reference:        req.Reference,
	}, nil
}

func (okGateway) VerifyTransaction(_ context.Context, reference string) (*paystack.VerifyResult, error) {
	return &paystack.VerifyResult{Status: "success", Reference: reference}, nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	kv := newMemoryKV()
	bus := events.NewBus()
	catalogStore := catalog.NewStore(catalog.Seed())

	cartService, err := cart.NewService(cart.ServiceParams{
		Logger: logg, Store: kv, Catalog: catalogStore, Events: bus,
	})
	require.NoError(t, err)
	buyNowService, err := buynow.NewService(buynow.ServiceParams{
		Logger: logg, Store: kv, Catalog: catalogStore, TTL: time.Hour,
	})
	require.NoError(t, err)
	savedService, err := saved.NewService(saved.ServiceParams{
		Logger: logg, Store: kv, Events: bus,
	})
	require.NoError(t, err)
	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Logger: logg, Cart: cartService, BuyNow: buyNowService, Gateway: okGateway{},
	})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	return NewRouter(RouterParams{
		Config:          cfg,
		Logger:          logg,
		Redis:           kv,
		Catalog:         catalogStore,
		CartService:     cartService,
		BuyNowService:   buyNowService,
		SavedService:    savedService,
		CheckoutService: checkoutService,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path, sessionID string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		r.Header.Set(middleware.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	var envelope types.SuccessEnvelope
	if w.Code < 400 && w.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	}
	data, _ := envelope.Data.(map[string]any)
	return w, data
}

func TestHealthEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	w, _ := doJSON(t, handler, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", w.Header().Get("X-Odogwu-Env"))

	w, _ = doJSON(t, handler, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	w, data := doJSON(t, handler, http.MethodGet, "/api/v1/catalog/items", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, data["count"])

	w, _ = doJSON(t, handler, http.MethodGet, "/api/v1/catalog/items/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHeaderMinted(t *testing.T) {
	handler := newTestHandler(t)

	w, _ := doJSON(t, handler, http.MethodGet, "/api/v1/cart/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.SessionHeader))
}

func TestCartFlow(t *testing.T) {
	handler := newTestHandler(t)
	session := "3b9af32e-55dc-4d5f-8b65-3b2c1a0f9d11"

	w, data := doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", session, map[string]string{"item_id": "1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, data["added"])

	doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", session, map[string]string{"item_id": "1"})

	_, data = doJSON(t, handler, http.MethodGet, "/api/v1/cart/", session, nil)
	assert.EqualValues(t, 2, data["count"])
	assert.EqualValues(t, 2*14500000, data["total"])

	// another session sees an empty cart
	_, data = doJSON(t, handler, http.MethodGet, "/api/v1/cart/", "9f0f8d7c-90ab-4b69-a8be-31dc1c0f8a22", nil)
	assert.EqualValues(t, 0, data["count"])

	w, _ = doJSON(t, handler, http.MethodDelete, "/api/v1/cart/", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = doJSON(t, handler, http.MethodGet, "/api/v1/cart/", session, nil)
	assert.EqualValues(t, 0, data["count"])
}

func TestCheckoutFlow(t *testing.T) {
	handler := newTestHandler(t)
	session := "3b9af32e-55dc-4d5f-8b65-3b2c1a0f9d11"

	doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", session, map[string]string{"item_id": "1"})

	w, data := doJSON(t, handler, http.MethodPost, "/api/v1/checkout/", session, map[string]string{"mode": "cart"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "info", data["step"])

	info := map[string]string{
		"full_name": "Ifeanyi Onuoha",
		"email":     "ifeanyi@example.com",
		"phone":     "08030000000",
		"whatsapp":  "08030000000",
		"address":   "12 Allen Avenue",
		"city":      "Ikeja",
		"state":     "Lagos",
	}
	w, data = doJSON(t, handler, http.MethodPost, "/api/v1/checkout/info", session, info)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "review", data["step"])
	assert.EqualValues(t, 14500000+800000, data["total"])

	w, data = doJSON(t, handler, http.MethodPost, "/api/v1/checkout/pay", session, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reference, _ := data["reference"].(string)
	require.NotEmpty(t, reference)

	w, data = doJSON(t, handler, http.MethodPost, "/api/v1/checkout/confirm", session, map[string]string{"reference": reference})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "success", data["step"])

	_, data = doJSON(t, handler, http.MethodGet, "/api/v1/cart/", session, nil)
	assert.EqualValues(t, 0, data["count"], "cart should be empty after checkout")
}

func TestCheckoutInfoValidationError(t *testing.T) {
	handler := newTestHandler(t)
	session := "3b9af32e-55dc-4d5f-8b65-3b2c1a0f9d11"

	doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", session, map[string]string{"item_id": "1"})
	doJSON(t, handler, http.MethodPost, "/api/v1/checkout/", session, map[string]string{"mode": "cart"})

	w, _ := doJSON(t, handler, http.MethodPost, "/api/v1/checkout/info", session, map[string]string{"full_name": "Ifeanyi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuyNowEndpoints(t *testing.T) {
	handler := newTestHandler(t)
	session := "3b9af32e-55dc-4d5f-8b65-3b2c1a0f9d11"

	w, data := doJSON(t, handler, http.MethodPost, "/api/v1/buynow/", session, map[string]string{"item_id": "2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2", data["id"])
	assert.EqualValues(t, 1, data["quantity"])

	w, _ = doJSON(t, handler, http.MethodPost, "/api/v1/buynow/", session, map[string]string{"item_id": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, handler, http.MethodDelete, "/api/v1/buynow/", session, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSavedEndpoints(t *testing.T) {
	handler := newTestHandler(t)
	session := "3b9af32e-55dc-4d5f-8b65-3b2c1a0f9d11"

	w, data := doJSON(t, handler, http.MethodPost, "/api/v1/saved/toggle", session, map[string]string{"item_id": "3"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, data["saved"])

	_, data = doJSON(t, handler, http.MethodGet, "/api/v1/saved/", session, nil)
	assert.EqualValues(t, 1, data["count"])
}

func TestDeliveryQuoteEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	_, data := doJSON(t, handler, http.MethodGet, "/api/v1/delivery/quote?region=Kaduna+State", "", nil)
	assert.EqualValues(t, 300000, data["fee"])
	assert.Equal(t, "₦3,000", data["fee_display"])
}
