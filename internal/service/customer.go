package service

import (
	"context"
	"strings"

	"github.com/shopworks/storefront/internal/model"
)

// CustomerRepository defines the interface for customer storage.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Update(ctx context.Context, id int64, customer *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id int64) (*model.Customer, error)
	SearchByName(ctx context.Context, term string) ([]*model.Customer, error)
}

// CustomerService handles customer operations. Each operation is one store
// call; store errors propagate to the handler unchanged.
type CustomerService struct {
	repo CustomerRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// Create stores a new customer.
func (s *CustomerService) Create(ctx context.Context, customer *model.Customer) error {
	return s.repo.Create(ctx, customer)
}

// Get retrieves one customer by ID.
func (s *CustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all customers.
func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	return s.repo.List(ctx)
}

// Update overwrites a customer's fields.
func (s *CustomerService) Update(ctx context.Context, id int64, customer *model.Customer) (*model.Customer, error) {
	return s.repo.Update(ctx, id, customer)
}

// Delete removes a customer, returning the deleted record.
func (s *CustomerService) Delete(ctx context.Context, id int64) (*model.Customer, error) {
	return s.repo.Delete(ctx, id)
}

// Search returns customers whose first or last name contains the term.
func (s *CustomerService) Search(ctx context.Context, term string) ([]*model.Customer, error) {
	return s.repo.SearchByName(ctx, strings.TrimSpace(term))
}
