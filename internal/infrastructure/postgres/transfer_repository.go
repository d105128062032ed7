package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-bodegas/internal/domain"
	"github.com/jhoicas/pos-bodegas/internal/domain/entity"
	"github.com/jhoicas/pos-bodegas/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementa TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste cabecera y líneas del traslado (estado inicial PENDING).
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	ctx := context.Background()
	query := `
		INSERT INTO transfers (id, number, company_id, from_warehouse_id, to_warehouse_id, status, notes, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.Number, transfer.CompanyID,
		transfer.FromWarehouseID, transfer.ToWarehouseID, transfer.Status,
		transfer.Notes, transfer.RequestedBy, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}

	itemQuery := `
		INSERT INTO transfer_items (id, transfer_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, item := range transfer.Items {
		_, err := r.q.Exec(ctx, itemQuery, item.ID, item.TransferID, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el traslado completo o nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera del traslado (SELECT FOR UPDATE) y la
// devuelve con sus líneas, o nil si no existe.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.get(id, true)
}

func (r *TransferRepo) get(id string, forUpdate bool) (*entity.Transfer, error) {
	ctx := context.Background()
	query := `
		SELECT id, number, company_id, from_warehouse_id, to_warehouse_id, status, notes, requested_by, approved_by, approved_at, created_at, updated_at
		FROM transfers WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	transfer, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil || transfer == nil {
		return transfer, err
	}

	items, err := r.itemsFor(ctx, transfer.ID)
	if err != nil {
		return nil, err
	}
	transfer.Items = items
	return transfer, nil
}

// UpdateStatus transiciona el estado del traslado y registra aprobador/fecha.
// Solo procede desde PENDING: cero filas afectadas significa que otra
// transacción ya lo resolvió.
func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	query := `
		UPDATE transfers SET status = $2, approved_by = $3, approved_at = $4, updated_at = $5
		WHERE id = $1 AND status = $6`
	tag, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status, transfer.ApprovedBy, transfer.ApprovedAt,
		transfer.UpdatedAt, entity.TransferStatusPending,
	)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

// List lista traslados con filtros de estado, bodega y dirección, del más
// reciente al más antiguo, sin líneas.
func (r *TransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.Transfer, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, number, company_id, from_warehouse_id, to_warehouse_id, status, notes, requested_by, approved_by, approved_at, created_at, updated_at
		FROM transfers WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		switch filter.Direction {
		case "incoming":
			query += fmt.Sprintf(" AND to_warehouse_id = $%d", len(args))
		case "outgoing":
			query += fmt.Sprintf(" AND from_warehouse_id = $%d", len(args))
		default:
			query += fmt.Sprintf(" AND (from_warehouse_id = $%d OR to_warehouse_id = $%d)", len(args), len(args))
		}
	}
	query += " ORDER BY created_at DESC"
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*entity.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}
	return transfers, rows.Err()
}

func (r *TransferRepo) itemsFor(ctx context.Context, transferID string) ([]entity.TransferItem, error) {
	query := `
		SELECT id, transfer_id, product_id, quantity
		FROM transfer_items WHERE transfer_id = $1`
	rows, err := r.q.Query(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()

	var items []entity.TransferItem
	for rows.Next() {
		var item entity.TransferItem
		if err := rows.Scan(&item.ID, &item.TransferID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var approvedBy *string
	err := row.Scan(
		&t.ID, &t.Number, &t.CompanyID, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.Status, &t.Notes, &t.RequestedBy, &approvedBy, &t.ApprovedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	if approvedBy != nil {
		t.ApprovedBy = *approvedBy
	}
	return &t, nil
}
