package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
)

// CustomerRepository handles customer data access.
type CustomerRepository struct {
	store *database.Store
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(store *database.Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

// Create inserts a new customer and fills in the store-assigned fields.
func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	now := time.Now().UTC()

	query, args, err := sb.Insert("customers").
		Columns("firstname", "lastname", "email", "city", "created_on", "updated_on").
		Values(customer.Firstname, customer.Lastname, customer.Email, customer.City, formatTime(now), formatTime(now)).
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

	customer.ID = id
	customer.CreatedOn = now
	customer.UpdatedOn = now
	return nil
}

// GetByID retrieves a customer by ID. Returns database.ErrNotFound when no
// row matches.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query, args, err := customerSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, mapError(err)
	}
	return scanCustomerRow(r.store.DB.QueryRowContext(ctx, query, args...))
}

// List returns every customer. No pagination is applied.
func (r *CustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	query, args, err := customerSelect().OrderBy("id").ToSql()
	if err != nil {
		return nil, mapError(err)
	}
	return r.queryCustomers(ctx, query, args...)
}

// Update overwrites a customer's fields and returns the updated record.
func (r *CustomerRepository) Update(ctx context.Context, id int64, customer *model.Customer) (*model.Customer, error) {
	now := time.Now().UTC()

	query, args, err := sb.Update("customers").
		Set("firstname", customer.Firstname).
		Set("lastname", customer.Lastname).
		Set("email", customer.Email).
		Set("city", customer.City).
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

// Delete removes a customer and returns the deleted record.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query, args, err := sb.Delete("customers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := r.store.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, mapError(err)
	}
	return customer, nil
}

// SearchByName returns customers whose first or last name contains the term.
func (r *CustomerRepository) SearchByName(ctx context.Context, term string) ([]*model.Customer, error) {
	pattern := likePattern(term)
	query, args, err := customerSelect().
		Where(sq.Or{
			sq.Like{"firstname": pattern},
			sq.Like{"lastname": pattern},
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, mapError(err)
	}
	return r.queryCustomers(ctx, query, args...)
}

func customerSelect() sq.SelectBuilder {
	return sb.Select("id", "firstname", "lastname", "email", "city", "created_on", "updated_on").
		From("customers")
}

func (r *CustomerRepository) queryCustomers(ctx context.Context, query string, args ...interface{}) ([]*model.Customer, error) {
	rows, err := r.store.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomerRow(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return customers, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomerRow(row rowScanner) (*model.Customer, error) {
	var (
		customer  model.Customer
		createdOn string
		updatedOn string
	)
	if err := row.Scan(&customer.ID, &customer.Firstname, &customer.Lastname,
		&customer.Email, &customer.City, &createdOn, &updatedOn); err != nil {
		return nil, mapError(err)
	}
	customer.CreatedOn = parseTime(createdOn)
	customer.UpdatedOn = parseTime(updatedOn)
	return &customer, nil
}
