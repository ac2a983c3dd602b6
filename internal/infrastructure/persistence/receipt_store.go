package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptStore)(nil)

const receiptIndexBase = "receipts"

type receiptRecord struct {
	ID        string       `json:"id"`
	SessionID string       `json:"sessionId"`
	Lines     []cartRecord `json:"lines"`
	Items     int          `json:"items"`
	Total     json.Number  `json:"total"`
	Restocked bool         `json:"restocked"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ReceiptStore guarda comprobantes en un repository.KVStore (drivers file y redis).
// Cada comprobante es un registro "receipt:<id>" y cada sesión tiene un índice
// "<session>:receipts" con sus ids en orden de creación. El índice de una sesión lo
// escribe una intención a la vez (storefront.Service serializa por sesión).
type ReceiptStore struct {
	kv repository.KVStore
}

// NewReceiptStore construye el repositorio.
func NewReceiptStore(kv repository.KVStore) *ReceiptStore {
	return &ReceiptStore{kv: kv}
}

func receiptKey(id string) string { return "receipt:" + id }

func receiptIndexKey(sessionID string) string {
	if sessionID == "" {
		return receiptIndexBase
	}
	return sessionID + ":" + receiptIndexBase
}

// Create guarda el comprobante y lo agrega al índice de la sesión en una sola escritura.
func (s *ReceiptStore) Create(ctx context.Context, receipt *entity.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	existing, err := s.GetByID(ctx, receipt.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("receipt %s: %w", receipt.ID, domain.ErrDuplicate)
	}

	ids, err := s.index(ctx, receipt.SessionID)
	if err != nil {
		return err
	}
	rec, err := json.Marshal(toReceiptRecord(receipt))
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}
	idx, err := json.Marshal(append(ids, receipt.ID))
	if err != nil {
		return fmt.Errorf("encode receipt index: %w", err)
	}
	err = s.kv.SetMany(ctx, map[string][]byte{
		receiptKey(receipt.ID):             rec,
		receiptIndexKey(receipt.SessionID): idx,
	})
	if err != nil {
		return fmt.Errorf("save receipt: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (s *ReceiptStore) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	raw, err := s.kv.Get(ctx, receiptKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	var rec receiptRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode receipt %s: %w", id, err)
	}
	return fromReceiptRecord(rec)
}

// ListBySession devuelve los comprobantes de la sesión, más recientes primero.
// Ids del índice sin registro se ignoran.
func (s *ReceiptStore) ListBySession(ctx context.Context, sessionID string, limit int) ([]*entity.Receipt, error) {
	if limit <= 0 {
		limit = 20
	}
	ids, err := s.index(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Receipt, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		r, err := s.GetByID(ctx, ids[i])
		if err != nil {
			return nil, err
		}
		if r != nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete borra el comprobante y lo quita del índice de su sesión.
func (s *ReceiptStore) Delete(ctx context.Context, id string) error {
	r, err := s.GetByID(ctx, id)
	if err != nil || r == nil {
		return err
	}
	if err := s.kv.Delete(ctx, receiptKey(id)); err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}

	ids, err := s.index(ctx, r.SessionID)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	idx, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("encode receipt index: %w", err)
	}
	if err := s.kv.SetMany(ctx, map[string][]byte{receiptIndexKey(r.SessionID): idx}); err != nil {
		return fmt.Errorf("save receipt index: %w", err)
	}
	return nil
}

func (s *ReceiptStore) index(ctx context.Context, sessionID string) ([]string, error) {
	raw, err := s.kv.Get(ctx, receiptIndexKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("get receipt index: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode receipt index: %w", err)
	}
	return ids, nil
}

func toReceiptRecord(r *entity.Receipt) receiptRecord {
	return receiptRecord{
		ID:        r.ID,
		SessionID: r.SessionID,
		Lines:     toCartRecords(r.Lines),
		Items:     r.Items,
		Total:     json.Number(r.Total.String()),
		Restocked: r.Restocked,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func fromReceiptRecord(rec receiptRecord) (*entity.Receipt, error) {
	total, err := decimal.NewFromString(rec.Total.String())
	if err != nil {
		return nil, fmt.Errorf("decode receipt %s total: %w", rec.ID, err)
	}
	return &entity.Receipt{
		ID:        rec.ID,
		SessionID: rec.SessionID,
		Lines:     fromCartRecords(rec.Lines),
		Items:     rec.Items,
		Total:     total,
		Restocked: rec.Restocked,
		CreatedAt: rec.CreatedAt,
	}, nil
}
