package service

import (
	"context"
	"strings"

	"github.com/shopworks/storefront/internal/model"
)

// ProductRepository defines the interface for product storage.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, id int64, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) (*model.Product, error)
	SearchByTerm(ctx context.Context, term string) ([]*model.Product, error)
}

// ProductService handles product operations.
type ProductService struct {
	repo ProductRepository
}

// NewProductService creates a new product service.
func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, product *model.Product) error {
	return s.repo.Create(ctx, product)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]*model.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Update(ctx context.Context, id int64, product *model.Product) (*model.Product, error) {
	return s.repo.Update(ctx, id, product)
}

func (s *ProductService) Delete(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.Delete(ctx, id)
}

// Search returns products whose name or category contains the term.
func (s *ProductService) Search(ctx context.Context, term string) ([]*model.Product, error) {
	return s.repo.SearchByTerm(ctx, strings.TrimSpace(term))
}
