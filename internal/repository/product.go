package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
)

// ProductRepository handles product data access.
type ProductRepository struct {
	store *database.Store
}

// NewProductRepository creates a new product repository.
func NewProductRepository(store *database.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// Create inserts a new product and fills in the store-assigned fields.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	now := time.Now().UTC()

	query, args, err := sb.Insert("products").
		Columns("name", "category", "price", "created_on", "updated_on").
		Values(product.Name, product.Category, product.Price, formatTime(now), formatTime(now)).
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

	product.ID = id
	product.CreatedOn = now
	product.UpdatedOn = now
	return nil
}

// GetByID retrieves a product by ID. Returns database.ErrNotFound when no
// row matches.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query, args, err := productSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, mapError(err)
	}
	return scanProductRow(r.store.DB.QueryRowContext(ctx, query, args...))
}

// List returns every product. No pagination is applied.
func (r *ProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	query, args, err := productSelect().OrderBy("id").ToSql()
	if err != nil {
		return nil, mapError(err)
	}
	return r.queryProducts(ctx, query, args...)
}

// Update overwrites a product's fields and returns the updated record.
func (r *ProductRepository) Update(ctx context.Context, id int64, product *model.Product) (*model.Product, error) {
	now := time.Now().UTC()

	query, args, err := sb.Update("products").
		Set("name", product.Name).
		Set("category", product.Category).
		Set("price", product.Price).
		Set("updated_on", formatTime(now)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, mapError(err)
	}

	res, err := r.store.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, mapError(err)
	}
	if affected == 0 {
		return nil, database.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes a product and returns the deleted record.
func (r *ProductRepository) Delete(ctx context.Context, id int64) (*model.Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query, args, err := sb.Delete("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := r.store.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// SearchByTerm returns products whose name or category contains the term.
func (r *ProductRepository) SearchByTerm(ctx context.Context, term string) ([]*model.Product, error) {
	pattern := likePattern(term)
	query, args, err := productSelect().
		Where(sq.Or{
			sq.Like{"name": pattern},
			sq.Like{"category": pattern},
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, mapError(err)
	}
	return r.queryProducts(ctx, query, args...)
}

func productSelect() sq.SelectBuilder {
	return sb.Select("id", "name", "category", "price", "created_on", "updated_on").
		From("products")
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*model.Product, error) {
	rows, err := r.store.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*model.Product, 0)
	for rows.Next() {
		product, err := scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

func scanProductRow(row rowScanner) (*model.Product, error) {
	var (
		product   model.Product
		createdOn string
		updatedOn string
	)
	if err := row.Scan(&product.ID, &product.Name, &product.Category,
		&product.Price, &createdOn, &updatedOn); err != nil {
		return nil, mapError(err)
	}
	product.CreatedOn = parseTime(createdOn)
	product.UpdatedOn = parseTime(updatedOn)
	return &product, nil
}
