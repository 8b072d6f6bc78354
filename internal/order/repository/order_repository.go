package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"radagast/internal/domain"
	"radagast/internal/errors"
)

type MySQLOrderRepository struct {
	db       *sql.DB
	itemRepo *MySQLOrderItemRepository
}

func NewMySQLOrderRepository(db *sql.DB, itemRepo *MySQLOrderItemRepository) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db, itemRepo: itemRepo}
}

// Create persists the order and its items in one transaction. The first save
// assigns the order id.
func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) (uint, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO Orders (userId, shippingAddressId, transactionId, status, subtotal, shippingCost, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		order.UserID, order.ShippingAddressID, order.TransactionID,
		order.Status.String(), order.Subtotal, order.ShippingCost, order.Total,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	orderID := uint(lastInsertID)

	for i := range order.Items {
		order.Items[i].OrderID = orderID
		itemID, err := r.itemRepo.Insert(ctx, tx, order.Items[i])
		if err != nil {
			return 0, err
		}
		order.Items[i].ID = itemID
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing order: %w", err)
	}

	order.ID = orderID
	return orderID, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `
		SELECT id, userId, shippingAddressId, transactionId, status,
		       subtotal, shippingCost, total, createdAt, updatedAt
		FROM Orders
		WHERE id = ?
	`

	var order domain.Order
	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.ShippingAddressID, &order.TransactionID, &status,
		&order.Subtotal, &order.ShippingCost, &order.Total,
		&order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.itemRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, userId, shippingAddressId, transactionId, status,
		       subtotal, shippingCost, total, createdAt, updatedAt
		FROM Orders
		ORDER BY createdAt DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	return r.scanOrders(ctx, rows)
}

func (r *MySQLOrderRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	query := `
		SELECT id, userId, shippingAddressId, transactionId, status,
		       subtotal, shippingCost, total, createdAt, updatedAt
		FROM Orders
		WHERE createdAt >= ? AND createdAt < ?
		ORDER BY createdAt DESC
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying orders by date range: %w", err)
	}
	defer rows.Close()

	return r.scanOrders(ctx, rows)
}

// UpdateStatus applies an optimistic write: the row is only updated when its
// current status still matches what the caller read. A lost race surfaces as
// ConcurrentModificationError instead of a silent overwrite.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.OrderStatus) error {
	query := `UPDATE Orders SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, to.String(), id, from.String())
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var current string
		err := r.db.QueryRowContext(ctx, `SELECT status FROM Orders WHERE id = ?`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
		}
		if err != nil {
			return fmt.Errorf("re-reading order status: %w", err)
		}
		return errors.NewConcurrentModificationError(
			fmt.Sprintf("order %d changed from %s to %s while updating", id, from, current))
	}

	return nil
}

func (r *MySQLOrderRepository) UpdateTransactionID(ctx context.Context, id uint, transactionID string) error {
	query := `UPDATE Orders SET transactionId = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, transactionID, id)
	if err != nil {
		return fmt.Errorf("updating order transaction id: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) scanOrders(ctx context.Context, rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var status string
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.ShippingAddressID, &order.TransactionID, &status,
			&order.Subtotal, &order.ShippingCost, &order.Total,
			&order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	for i := range orders {
		items, err := r.itemRepo.FindByOrderID(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}
