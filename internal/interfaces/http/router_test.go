package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/auth"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/dto"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/storefront"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/shop"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/kv"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/memory"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/infrastructure/persistence"
	apphttp "github.com/EmiliaOsaba/Entregable2-Osaba/internal/interfaces/http"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/logger"
)

type stubPDF struct{}

func (stubPDF) GenerateReceiptPDF(_ context.Context, r *entity.Receipt) ([]byte, error) {
	return []byte("%PDF-1.3 " + r.ID), nil
}

type brokenState struct{}

func (brokenState) Load(context.Context, string) (shop.Snapshot, error) {
	return shop.Snapshot{}, errors.New("backend caído")
}

func (brokenState) Save(context.Context, string, shop.Snapshot) error { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	state := persistence.NewStateStore(kv.NewMemoryStore(), persistence.Keys{Products: "e2_products", Cart: "e2_cart"}, nil)
	svc := storefront.NewService(state, memory.NewReceiptRepository(), stubPDF{}, storefront.Config{}, nil)
	return newAppWith(svc)
}

func newAppWith(svc *storefront.Service) *fiber.App {
	sessionUC := auth.NewSessionUseCase(svc, auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin})
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		SessionUC:   sessionUC,
		Storefront:  svc,
		JWTSecret:   testJWTSecret,
		ServiceName: "mini-tienda-test",
	})
	return app
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func newSession(t *testing.T, app *fiber.App) *client {
	t.Helper()
	c := &client{t: t, app: app}
	resp := c.do(http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	s := decode[dto.SessionResponse](t, resp)
	require.NotEmpty(t, s.Token)
	c.token = s.Token
	return c
}

func findProduct(t *testing.T, products []dto.ProductResponse, name string) dto.ProductResponse {
	t.Helper()
	for _, p := range products {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("producto %q no encontrado", name)
	return dto.ProductResponse{}
}

func TestHealth(t *testing.T) {
	c := &client{t: t, app: newTestApp(t)}
	resp := c.do(http.MethodGet, "/health", nil)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	c := &client{t: t, app: newTestApp(t)}
	resp := c.do(http.MethodGet, "/api/cart", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFlujoCompleto(t *testing.T) {
	c := newSession(t, newTestApp(t))

	list := decode[dto.ProductListResponse](t, c.do(http.MethodGet, "/api/products?sort=priceAsc", nil))
	require.Equal(t, 4, list.Total)
	assert.Equal(t, "Gorra", list.Items[0].Name)
	camisa := findProduct(t, list.Items, "Camisa")
	assert.Equal(t, "$ 1.500,00", camisa.PriceLabel)

	// tres altas: qty 3, stock 9
	var mut dto.MutationResponse
	for i := 0; i < 3; i++ {
		resp := c.do(http.MethodPost, "/api/cart/items/"+camisa.ID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		mut = decode[dto.MutationResponse](t, resp)
		assert.True(t, mut.Applied)
	}
	assert.Equal(t, 3, mut.Cart.Lines[0].Qty)
	assert.Equal(t, 9, findProduct(t, mut.Products, "Camisa").Stock)

	mut = decode[dto.MutationResponse](t, c.do(http.MethodPost, "/api/cart/items/"+camisa.ID+"/increment", nil))
	assert.Equal(t, 4, mut.Cart.Items)
	mut = decode[dto.MutationResponse](t, c.do(http.MethodPost, "/api/cart/items/"+camisa.ID+"/decrement", nil))
	assert.Equal(t, 3, mut.Cart.Items)

	// quitar devuelve todo el stock
	mut = decode[dto.MutationResponse](t, c.do(http.MethodDelete, "/api/cart/items/"+camisa.ID, nil))
	assert.True(t, mut.Cart.Empty)
	assert.Equal(t, 12, findProduct(t, mut.Products, "Camisa").Stock)

	// repetir es no-op
	mut = decode[dto.MutationResponse](t, c.do(http.MethodDelete, "/api/cart/items/"+camisa.ID, nil))
	assert.False(t, mut.Applied)

	// checkout vacío
	resp := c.do(http.MethodPost, "/api/cart/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "EMPTY_CART", errBody.Code)
	assert.Equal(t, "Agregá productos para continuar.", errBody.Message)

	gorra := findProduct(t, list.Items, "Gorra")
	c.do(http.MethodPost, "/api/cart/items/"+camisa.ID, nil).Body.Close()
	c.do(http.MethodPost, "/api/cart/items/"+gorra.ID, nil).Body.Close()

	resp = c.do(http.MethodPost, "/api/cart/checkout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	checkout := decode[dto.CheckoutResponse](t, resp)
	assert.Equal(t, "Monto total a pagar $ 2.300,00. ¡Gracias!", checkout.Message)
	assert.True(t, checkout.Cart.Empty)

	cart := decode[dto.CartResponse](t, c.do(http.MethodGet, "/api/cart", nil))
	assert.True(t, cart.Empty)

	rec := decode[dto.ReceiptResponse](t, c.do(http.MethodGet, "/api/receipts/"+checkout.ReceiptID, nil))
	assert.Equal(t, 2, rec.Items)

	recs := decode[dto.ReceiptListResponse](t, c.do(http.MethodGet, "/api/receipts", nil))
	assert.Len(t, recs.Items, 1)

	resp = c.do(http.MethodGet, "/api/receipts/"+checkout.ReceiptID+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestClearCart(t *testing.T) {
	c := newSession(t, newTestApp(t))
	list := decode[dto.ProductListResponse](t, c.do(http.MethodGet, "/api/products", nil))
	for _, p := range list.Items {
		c.do(http.MethodPost, "/api/cart/items/"+p.ID, nil).Body.Close()
	}

	mut := decode[dto.MutationResponse](t, c.do(http.MethodDelete, "/api/cart", nil))
	assert.True(t, mut.Applied)
	assert.True(t, mut.Cart.Empty)
	assert.Equal(t, 12, findProduct(t, mut.Products, "Camisa").Stock)

	mut = decode[dto.MutationResponse](t, c.do(http.MethodDelete, "/api/cart", nil))
	assert.False(t, mut.Applied)
}

func TestCrearProducto(t *testing.T) {
	c := newSession(t, newTestApp(t))

	resp := c.do(http.MethodPost, "/api/products", map[string]any{"name": "Bufanda", "price": 0, "stock": 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "El precio debe ser un número mayor a 0.", errBody.Message)

	resp = c.do(http.MethodPost, "/api/products", map[string]any{"name": "Bufanda", "price": "990.5", "stock": "3", "category": "Invierno"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Invierno", p.Category)

	list := decode[dto.ProductListResponse](t, c.do(http.MethodGet, "/api/products?q=INVIERNO", nil))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, p.ID, list.Items[0].ID)
}

func TestSesionesAisladas(t *testing.T) {
	app := newTestApp(t)
	a := newSession(t, app)
	b := newSession(t, app)

	list := decode[dto.ProductListResponse](t, a.do(http.MethodGet, "/api/products", nil))
	camisa := findProduct(t, list.Items, "Camisa")
	a.do(http.MethodPost, "/api/cart/items/"+camisa.ID, nil).Body.Close()

	// el id de otra sesión no existe en b: no-op
	mut := decode[dto.MutationResponse](t, b.do(http.MethodPost, "/api/cart/items/"+camisa.ID, nil))
	assert.False(t, mut.Applied)

	checkout := decode[dto.CheckoutResponse](t, a.do(http.MethodPost, "/api/cart/checkout", nil))
	resp := b.do(http.MethodGet, "/api/receipts/"+checkout.ReceiptID, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestErrorInterno(t *testing.T) {
	svc := storefront.NewService(brokenState{}, memory.NewReceiptRepository(), nil, storefront.Config{}, nil)
	c := &client{t: t, app: newAppWith(svc)}

	resp := c.do(http.MethodPost, "/api/sessions", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
}
