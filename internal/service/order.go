package service

import (
	"context"
	"errors"

	"github.com/shopworks/storefront/internal/model"
)

// ErrInvalidQuantity is returned when an order's quantity is negative.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// OrderRepository defines the interface for order storage.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
}

// OrderService handles order placement and lookup.
type OrderService struct {
	repo OrderRepository
}

// NewOrderService creates a new order service.
func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// Create stores a new order. A zero quantity defaults to 1.
func (s *OrderService) Create(ctx context.Context, order *model.Order) error {
	if order.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if order.Quantity == 0 {
		order.Quantity = 1
	}
	return s.repo.Create(ctx, order)
}

// Get retrieves one order by ID.
func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	return s.repo.GetByID(ctx, id)
}
