// Package storefront expone las intenciones de la tienda sobre sesiones aisladas.
//
// Cada sesión se carga una vez desde el StateRepository y queda en memoria. Las
// intenciones sobre una misma sesión se ejecutan de a una; tras cada mutación
// aplicada se guardan ambos registros completos. Si el guardado falla la sesión se
// descarta de la caché y la próxima intención recarga lo último persistido.
package storefront

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/application/dto"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/repository"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/shop"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/logger"
	"github.com/EmiliaOsaba/Entregable2-Osaba/pkg/money"
)

// Config comportamiento configurable del servicio.
type Config struct {
	// RestockOnCheckout devuelve al stock las unidades compradas (comportamiento de la demo).
	RestockOnCheckout bool
}

// Service casos de uso de la tienda.
type Service struct {
	state    StateRepository
	receipts repository.ReceiptRepository
	pdf      ReceiptPDFGenerator
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
	newID    func() string

	mu       sync.Mutex
	sessions map[string]*slot
}

// slot guarda la sesión cargada; mu serializa las intenciones sobre ella.
type slot struct {
	mu      sync.Mutex
	session *shop.Session
}

// NewService construye el servicio. pdf y log pueden ser nil.
func NewService(state StateRepository, receipts repository.ReceiptRepository, pdf ReceiptPDFGenerator, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		state:    state,
		receipts: receipts,
		pdf:      pdf,
		cfg:      cfg,
		log:      log.Component("storefront"),
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]*slot),
	}
}

func (s *Service) slotFor(sessionID string) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.sessions[sessionID]
	if !ok {
		sl = &slot{}
		s.sessions[sessionID] = sl
	}
	return sl
}

// withSession ejecuta fn con la sesión cargada y bloqueada. fn informa si mutó el estado;
// si mutó y no hubo error se persiste, si mutó y hubo error la sesión se descarta.
// fn que persiste por su cuenta devuelve false.
func (s *Service) withSession(ctx context.Context, sessionID string, fn func(sess *shop.Session) (bool, error)) error {
	sl := s.slotFor(sessionID)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.session == nil {
		snap, err := s.state.Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("cargar sesión: %w", err)
		}
		sess := shop.NewSession(sessionID, snap)
		// fija los ids del catálogo inicial y normaliza lo leído
		if err := s.state.Save(ctx, sessionID, sess.Snapshot()); err != nil {
			return fmt.Errorf("guardar sesión: %w", err)
		}
		sl.session = sess
	}

	changed, err := fn(sl.session)
	if err != nil {
		if changed {
			sl.session = nil
		}
		return err
	}
	if !changed {
		return nil
	}
	if err := s.save(ctx, sl.session); err != nil {
		sl.session = nil
		return err
	}
	return nil
}

func (s *Service) save(ctx context.Context, sess *shop.Session) error {
	if err := s.state.Save(ctx, sess.ID(), sess.Snapshot()); err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID()).Msg("no se pudo persistir la sesión; se descarta de memoria")
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// StartSession crea una sesión nueva con el catálogo inicial y la persiste.
func (s *Service) StartSession(ctx context.Context) (string, error) {
	id := s.newID()
	if err := s.withSession(ctx, id, func(*shop.Session) (bool, error) { return false, nil }); err != nil {
		return "", err
	}
	s.log.Info().Str("session_id", id).Msg("sesión creada")
	return id, nil
}

// Catalog devuelve los productos filtrados por término (nombre o categoría) y ordenados.
// Una clave de orden desconocida conserva el orden de inserción.
func (s *Service) Catalog(ctx context.Context, sessionID, term, sort string) (*dto.ProductListResponse, error) {
	var out *dto.ProductListResponse
	err := s.withSession(ctx, sessionID, func(sess *shop.Session) (bool, error) {
		items := shop.FilterAndSort(sess.Inventory().Products(), shop.CatalogQuery{
			Term: term,
			Sort: shop.SortKey(strings.TrimSpace(sort)),
		})
		out = &dto.ProductListResponse{Items: toProductResponses(items), Total: len(items)}
		return false, nil
	})
	return out, err
}

// Cart devuelve el carrito actual.
func (s *Service) Cart(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	var out dto.CartResponse
	err := s.withSession(ctx, sessionID, func(sess *shop.Session) (bool, error) {
		out = toCartResponse(sess.Cart())
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, op func(sess *shop.Session) bool) (*dto.MutationResponse, error) {
	var out *dto.MutationResponse
	err := s.withSession(ctx, sessionID, func(sess *shop.Session) (bool, error) {
		applied := op(sess)
		out = toMutationResponse(applied, sess)
		return applied, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddToCart reserva una unidad del producto.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID string) (*dto.MutationResponse, error) {
	return s.mutate(ctx, sessionID, func(sess *shop.Session) bool { return sess.AddToCart(productID) })
}

// Increment suma una unidad a la línea del producto.
func (s *Service) Increment(ctx context.Context, sessionID, productID string) (*dto.MutationResponse, error) {
	return s.mutate(ctx, sessionID, func(sess *shop.Session) bool { return sess.ChangeQuantity(productID, 1) })
}

// Decrement resta una unidad; en cero la línea desaparece.
func (s *Service) Decrement(ctx context.Context, sessionID, productID string) (*dto.MutationResponse, error) {
	return s.mutate(ctx, sessionID, func(sess *shop.Session) bool { return sess.ChangeQuantity(productID, -1) })
}

// Remove quita la línea completa.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*dto.MutationResponse, error) {
	return s.mutate(ctx, sessionID, func(sess *shop.Session) bool { return sess.RemoveLine(productID) })
}

// Clear vacía el carrito devolviendo el stock.
func (s *Service) Clear(ctx context.Context, sessionID string) (*dto.MutationResponse, error) {
	return s.mutate(ctx, sessionID, func(sess *shop.Session) bool { return sess.ClearCart() })
}

// CreateProduct valida el formulario y agrega el producto al catálogo de la sesión.
func (s *Service) CreateProduct(ctx context.Context, sessionID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := s.withSession(ctx, sessionID, func(sess *shop.Session) (bool, error) {
		p, err := sess.CreateProduct(s.newID(), shop.ProductDraft{
			Name:     in.Name,
			Price:    string(in.Price),
			Stock:    string(in.Stock),
			Category: in.Category,
		})
		if err != nil {
			return false, err
		}
		out = toProductResponse(p)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Checkout cobra el carrito, guarda el comprobante y persiste el carrito vacío.
// Con el carrito vacío devuelve domain.ErrEmptyCart. Si el estado no se puede
// persistir el comprobante se borra y el carrito queda como estaba guardado.
func (s *Service) Checkout(ctx context.Context, sessionID string) (*dto.CheckoutResponse, error) {
	var out *dto.CheckoutResponse
	err := s.withSession(ctx, sessionID, func(sess *shop.Session) (bool, error) {
		summary, err := sess.Checkout(s.cfg.RestockOnCheckout)
		if err != nil {
			return false, err
		}
		receipt := &entity.Receipt{
			ID:        s.newID(),
			SessionID: sessionID,
			Lines:     summary.Lines,
			Items:     summary.Items,
			Total:     summary.Total,
			Restocked: summary.Restocked,
			CreatedAt: s.now().UTC(),
		}
		if err := s.receipts.Create(ctx, receipt); err != nil {
			return true, fmt.Errorf("guardar comprobante: %w", err)
		}
		// el guardado va acá y no en withSession para poder revertir el comprobante
		if err := s.save(ctx, sess); err != nil {
			if derr := s.receipts.Delete(context.WithoutCancel(ctx), receipt.ID); derr != nil {
				s.log.Error().Err(derr).Str("receipt_id", receipt.ID).Msg("no se pudo revertir el comprobante")
			}
			return true, err
		}
		s.log.Info().
			Str("session_id", sessionID).
			Str("receipt_id", receipt.ID).
			Int("items", receipt.Items).
			Str("total", receipt.Total.StringFixed(2)).
			Bool("restocked", receipt.Restocked).
			Msg("checkout")
		out = &dto.CheckoutResponse{
			ReceiptID:  receipt.ID,
			Items:      receipt.Items,
			Total:      receipt.Total,
			TotalLabel: money.Label(receipt.Total),
			Message:    CheckoutMessage(receipt.Total),
			Restocked:  receipt.Restocked,
			Cart:       toCartResponse(sess.Cart()),
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CheckoutMessage texto de confirmación: "Monto total a pagar $ 1.500,00. ¡Gracias!".
func CheckoutMessage(total decimal.Decimal) string {
	return "Monto total a pagar " + money.Label(total) + ". ¡Gracias!"
}

// Receipt devuelve un comprobante de la sesión.
func (s *Service) Receipt(ctx context.Context, sessionID, receiptID string) (*dto.ReceiptResponse, error) {
	r, err := s.ownedReceipt(ctx, sessionID, receiptID)
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(r), nil
}

// Receipts lista los comprobantes de la sesión.
func (s *Service) Receipts(ctx context.Context, sessionID string, limit int) (*dto.ReceiptListResponse, error) {
	list, err := s.receipts.ListBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("listar comprobantes: %w", err)
	}
	out := &dto.ReceiptListResponse{Items: make([]dto.ReceiptResponse, 0, len(list))}
	for _, r := range list {
		out.Items = append(out.Items, *toReceiptResponse(r))
	}
	return out, nil
}

// ReceiptPDF genera el PDF de un comprobante de la sesión.
func (s *Service) ReceiptPDF(ctx context.Context, sessionID, receiptID string) ([]byte, error) {
	if s.pdf == nil {
		return nil, fmt.Errorf("generador de PDF no configurado")
	}
	r, err := s.ownedReceipt(ctx, sessionID, receiptID)
	if err != nil {
		return nil, err
	}
	return s.pdf.GenerateReceiptPDF(ctx, r)
}

func (s *Service) ownedReceipt(ctx context.Context, sessionID, receiptID string) (*entity.Receipt, error) {
	r, err := s.receipts.GetByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("obtener comprobante: %w", err)
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.SessionID != sessionID {
		return nil, domain.ErrForbidden
	}
	return r, nil
}
