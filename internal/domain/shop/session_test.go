package shop_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/shop"
)

func newTestSession(t *testing.T) *shop.Session {
	t.Helper()
	return shop.NewSession("s1", shop.Snapshot{
		Products: []entity.Product{
			{ID: "camisa", Name: "Camisa", Price: decimal.NewFromInt(1500), Stock: 12, Category: "Ropa"},
			{ID: "gorra", Name: "Gorra", Price: decimal.NewFromInt(800), Stock: 25, Category: "Accesorio"},
			{ID: "agotado", Name: "Bufanda", Price: decimal.NewFromInt(600), Stock: 0, Category: "Accesorio"},
		},
	})
}

func stockOf(t *testing.T, s *shop.Session, id string) int {
	t.Helper()
	p, ok := s.Inventory().FindByID(id)
	require.True(t, ok, "producto %s debe existir", id)
	return p.Stock
}

func qtyOf(s *shop.Session, id string) (int, bool) {
	l, ok := s.Cart().FindByProductID(id)
	return l.Qty, ok
}

func TestAddToCart_TresVecesReservaTresUnidades(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 3; i++ {
		assert.True(t, s.AddToCart("camisa"))
	}
	qty, ok := qtyOf(s, "camisa")
	require.True(t, ok)
	assert.Equal(t, 3, qty)
	assert.Equal(t, 9, stockOf(t, s, "camisa"))
}

func TestAddToCart_SnapshotDelPrecio(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.AddToCart("gorra"))
	line, ok := s.Cart().FindByProductID("gorra")
	require.True(t, ok)
	assert.Equal(t, "Gorra", line.Name)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(800)))
}

func TestAddToCart_SinStockNoModificaNada(t *testing.T) {
	s := newTestSession(t)
	before := s.Snapshot()
	assert.False(t, s.AddToCart("agotado"))
	assert.Equal(t, before, s.Snapshot())
	_, ok := qtyOf(s, "agotado")
	assert.False(t, ok)
	assert.Equal(t, 0, stockOf(t, s, "agotado"))
}

func TestAddToCart_ProductoInexistente(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.AddToCart("no-existe"))
	assert.Equal(t, 0, s.Cart().Len())
}

func TestAddToCart_ReglaStockMenosCantidad(t *testing.T) {
	s := shop.NewSession("s", shop.Snapshot{Products: []entity.Product{
		{ID: "p", Name: "Pocas", Price: decimal.NewFromInt(10), Stock: 3},
	}})
	// 1ª: stock 3 -> 2, qty 1. 2ª: 2-1 > 0 -> stock 1, qty 2. 3ª: 1-2 <= 0 -> rechazada.
	assert.True(t, s.AddToCart("p"))
	assert.True(t, s.AddToCart("p"))
	assert.False(t, s.AddToCart("p"))
	qty, _ := qtyOf(s, "p")
	assert.Equal(t, 2, qty)
	assert.Equal(t, 1, stockOf(t, s, "p"))
}

func TestChangeQuantity_DecrementoTotalEliminaLinea(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 3; i++ {
		require.True(t, s.AddToCart("camisa"))
	}
	assert.True(t, s.ChangeQuantity("camisa", -3))
	_, ok := qtyOf(s, "camisa")
	assert.False(t, ok, "la línea debe eliminarse, no quedar en cero")
	assert.Equal(t, 12, stockOf(t, s, "camisa"))

	// Repetir sobre una línea inexistente no hace nada.
	before := s.Snapshot()
	assert.False(t, s.ChangeQuantity("camisa", -3))
	assert.Equal(t, before, s.Snapshot())
}

func TestChangeQuantity_IncrementoYDecremento(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.AddToCart("gorra"))
	assert.True(t, s.ChangeQuantity("gorra", 1))
	qty, _ := qtyOf(s, "gorra")
	assert.Equal(t, 2, qty)
	assert.Equal(t, 23, stockOf(t, s, "gorra"))

	assert.True(t, s.ChangeQuantity("gorra", -1))
	qty, _ = qtyOf(s, "gorra")
	assert.Equal(t, 1, qty)
	assert.Equal(t, 24, stockOf(t, s, "gorra"))
}

func TestChangeQuantity_IncrementoSinStockNoAplica(t *testing.T) {
	s := shop.NewSession("s", shop.Snapshot{
		Products: []entity.Product{{ID: "p", Name: "Única", Price: decimal.NewFromInt(10), Stock: 0}},
		Cart:     []entity.CartLine{{ProductID: "p", Name: "Única", UnitPrice: decimal.NewFromInt(10), Qty: 1}},
	})
	before := s.Snapshot()
	assert.False(t, s.ChangeQuantity("p", 1))
	assert.Equal(t, before, s.Snapshot())
}

func TestChangeQuantity_DeltaMayorAlStockNoDejaNegativo(t *testing.T) {
	s := shop.NewSession("s", shop.Snapshot{
		Products: []entity.Product{{ID: "p", Name: "Par", Price: decimal.NewFromInt(10), Stock: 2}},
		Cart:     []entity.CartLine{{ProductID: "p", Name: "Par", UnitPrice: decimal.NewFromInt(10), Qty: 1}},
	})
	assert.False(t, s.ChangeQuantity("p", 3))
	assert.Equal(t, 2, stockOf(t, s, "p"))
	assert.True(t, s.ChangeQuantity("p", 2))
	assert.Equal(t, 0, stockOf(t, s, "p"))
}

func TestChangeQuantity_DeltaCeroEsNoOp(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.AddToCart("gorra"))
	assert.False(t, s.ChangeQuantity("gorra", 0))
}

func TestRemoveLine_DevuelveTodoElStock(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 4; i++ {
		require.True(t, s.AddToCart("gorra"))
	}
	assert.True(t, s.RemoveLine("gorra"))
	assert.Equal(t, 25, stockOf(t, s, "gorra"))
	assert.False(t, s.RemoveLine("gorra"))
}

func TestRemoveLine_ProductoDesaparecidoNoAplica(t *testing.T) {
	s := shop.NewSession("s", shop.Snapshot{
		Cart: []entity.CartLine{{ProductID: "huerfano", Name: "X", UnitPrice: decimal.NewFromInt(1), Qty: 2}},
	})
	assert.False(t, s.RemoveLine("huerfano"))
	assert.Equal(t, 1, s.Cart().Len())
}

func TestClearCart_Idempotente(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.AddToCart("camisa"))
	require.True(t, s.AddToCart("gorra"))
	require.True(t, s.AddToCart("gorra"))

	assert.True(t, s.ClearCart())
	once := s.Snapshot()
	assert.False(t, s.ClearCart())
	assert.Equal(t, once, s.Snapshot())
	assert.Equal(t, 12, stockOf(t, s, "camisa"))
	assert.Equal(t, 25, stockOf(t, s, "gorra"))
}

func TestClearCart_OmiteProductosInexistentes(t *testing.T) {
	s := shop.NewSession("s", shop.Snapshot{
		Products: []entity.Product{{ID: "p", Name: "P", Price: decimal.NewFromInt(1), Stock: 1}},
		Cart: []entity.CartLine{
			{ProductID: "p", Name: "P", UnitPrice: decimal.NewFromInt(1), Qty: 2},
			{ProductID: "borrado", Name: "B", UnitPrice: decimal.NewFromInt(1), Qty: 5},
		},
	})
	assert.True(t, s.ClearCart())
	assert.Equal(t, 0, s.Cart().Len())
	assert.Equal(t, 3, stockOf(t, s, "p"))
}

func TestCheckout_TotalYCarritoVacio(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.AddToCart("camisa"))
	require.True(t, s.AddToCart("camisa"))
	require.True(t, s.AddToCart("gorra"))
	expected := s.Cart().Total()

	summary, err := s.Checkout(false)
	require.NoError(t, err)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(2*1500+800)))
	assert.True(t, summary.Total.Equal(expected))
	assert.Equal(t, 3, summary.Items)
	assert.Len(t, summary.Lines, 2)
	assert.Equal(t, 0, s.Cart().Len())
	// Sin restock las unidades se consideran vendidas.
	assert.Equal(t, 10, stockOf(t, s, "camisa"))
	assert.Equal(t, 24, stockOf(t, s, "gorra"))
}

func TestCheckout_ConRestockDevuelveUnidades(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.AddToCart("camisa"))
	summary, err := s.Checkout(true)
	require.NoError(t, err)
	assert.True(t, summary.Restocked)
	assert.Equal(t, 12, stockOf(t, s, "camisa"))
}

func TestCheckout_CarritoVacio(t *testing.T) {
	s := newTestSession(t)
	before := s.Snapshot()
	_, err := s.Checkout(false)
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))
	assert.Equal(t, before, s.Snapshot())
}

func TestCreateProduct_AgregaAlFinal(t *testing.T) {
	s := newTestSession(t)
	p, err := s.CreateProduct("nuevo", shop.ProductDraft{Name: "  Medias ", Price: "350", Stock: "40"})
	require.NoError(t, err)
	assert.Equal(t, "Medias", p.Name)
	assert.Equal(t, entity.DefaultCategory, p.Category)

	products := s.Inventory().Products()
	require.Len(t, products, 4)
	assert.Equal(t, "nuevo", products[3].ID)

	_, err = s.CreateProduct("nuevo", shop.ProductDraft{Name: "Otra", Price: "1", Stock: "1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_InvalidoNoAgrega(t *testing.T) {
	s := newTestSession(t)
	_, err := s.CreateProduct("x", shop.ProductDraft{Name: "A", Price: "10", Stock: "1"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 3, s.Inventory().Len())
}

// totals registra stock + reservado por producto.
func totals(s *shop.Session) map[string]int {
	out := make(map[string]int)
	for _, p := range s.Inventory().Products() {
		out[p.ID] = p.Stock + s.Reserved(p.ID)
	}
	return out
}

func TestConservacion_SecuenciaAleatoria(t *testing.T) {
	s := newTestSession(t)
	want := totals(s)
	ids := []string{"camisa", "gorra", "agotado", "no-existe"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(5) {
		case 0, 1:
			s.AddToCart(id)
		case 2:
			s.ChangeQuantity(id, rng.Intn(7)-3)
		case 3:
			s.RemoveLine(id)
		case 4:
			if rng.Intn(10) == 0 {
				s.ClearCart()
			}
		}
		require.Equal(t, want, totals(s), "paso %d", i)
		for _, p := range s.Inventory().Products() {
			require.GreaterOrEqual(t, p.Stock, 0, "stock negativo en paso %d", i)
		}
		for _, l := range s.Cart().Lines() {
			require.Greater(t, l.Qty, 0, "línea con cantidad no positiva en paso %d", i)
		}
	}
}

func TestSnapshot_ConservaOrdenDeInsercion(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.AddToCart("gorra"))
	require.True(t, s.AddToCart("camisa"))
	require.True(t, s.AddToCart("gorra"))

	restored := shop.NewSession("s1", s.Snapshot())
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	lines := restored.Cart().Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "gorra", lines[0].ProductID)
	assert.Equal(t, "camisa", lines[1].ProductID)
}
