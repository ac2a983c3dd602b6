package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/entity"
	"github.com/EmiliaOsaba/Entregable2-Osaba/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre receipts / receipt_lines.
type ReceiptRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewReceiptRepository construye el adaptador.
func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepo {
	return &ReceiptRepo{pool: pool, tx: NewTxRunner(pool)}
}

// Create persiste cabecera y líneas en una transacción.
func (r *ReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	return r.tx.Run(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `
			INSERT INTO receipts (id, session_id, items, total, restocked, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			receipt.ID, receipt.SessionID, receipt.Items, receipt.Total, receipt.Restocked, receipt.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("receipt %s: %w", receipt.ID, domain.ErrDuplicate)
			}
			return fmt.Errorf("insert receipt: %w", err)
		}
		for i, l := range receipt.Lines {
			_, err := q.Exec(ctx, `
				INSERT INTO receipt_lines (receipt_id, position, product_id, name, unit_price, qty)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				receipt.ID, i, l.ProductID, l.Name, l.UnitPrice, l.Qty,
			)
			if err != nil {
				return fmt.Errorf("insert receipt line: %w", err)
			}
		}
		return nil
	})
}

// GetByID devuelve el comprobante con sus líneas, o (nil, nil) si no existe.
func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var rec entity.Receipt
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, session_id, items, total, restocked, created_at
		FROM receipts WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.SessionID, &rec.Items, &rec.Total, &rec.Restocked, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	lines, err := r.lines(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Lines = lines
	return &rec, nil
}

// ListBySession devuelve los comprobantes de la sesión, más recientes primero.
func (r *ReceiptRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]*entity.Receipt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, session_id, items, total, restocked, created_at
		FROM receipts WHERE session_id = $1
		ORDER BY created_at DESC LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Receipt
	for rows.Next() {
		var rec entity.Receipt
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Items, &rec.Total, &rec.Restocked, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	for _, rec := range out {
		lines, err := r.lines(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Lines = lines
	}
	return out, nil
}

// Delete borra el comprobante; las líneas se borran en cascada.
func (r *ReceiptRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	return nil
}

func (r *ReceiptRepo) lines(ctx context.Context, receiptID string) ([]entity.CartLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, name, unit_price, qty
		FROM receipt_lines WHERE receipt_id = $1 ORDER BY position`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("get receipt lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.UnitPrice, &l.Qty); err != nil {
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
