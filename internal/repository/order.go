package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
)

// OrderRepository handles order data access.
type OrderRepository struct {
	store *database.Store
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(store *database.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Create inserts a new order and fills in the store-assigned fields.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	now := time.Now().UTC()
	if order.Quantity <= 0 {
		order.Quantity = 1
	}

	query, args, err := sb.Insert("orders").
		Columns("customer_id", "product_id", "quantity", "created_on").
		Values(order.CustomerID, order.ProductID, order.Quantity, formatTime(now)).
		ToSql()
	if err != nil {
		return mapError(err)
	}

	res, err := r.store.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return mapError(err)
	}

	order.ID = id
	order.CreatedOn = now
	return nil
}

// GetByID retrieves an order by ID. Returns database.ErrNotFound when no
// row matches.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query, args, err := sb.Select("id", "customer_id", "product_id", "quantity", "created_on").
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, mapError(err)
	}

	var (
		order     model.Order
		createdOn string
	)
	if err := r.store.DB.QueryRowContext(ctx, query, args...).Scan(
		&order.ID, &order.CustomerID, &order.ProductID, &order.Quantity, &createdOn); err != nil {
		return nil, mapError(err)
	}
	order.CreatedOn = parseTime(createdOn)
	return &order, nil
}
