package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
)

// UserRepository handles user data access.
type UserRepository struct {
	store *database.Store
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store *database.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new user. A duplicate email yields database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()

	query, args, err := sb.Insert("users").
		Columns("email", "hash", "firstname", "lastname", "created_on", "updated_on").
		Values(user.Email, user.Hash, user.Firstname, user.Lastname, formatTime(now), formatTime(now)).
		ToSql()
	if err != nil {
		return mapError(err)
	}

	res, err := r.store.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return mapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return mapError(err)
	}

	user.ID = id
	user.CreatedOn = now
	user.UpdatedOn = now
	return nil
}

// GetByID retrieves a user by ID. Returns nil (no error) when no row matches.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByEmail retrieves a user by email. Returns nil (no error) when no row
// matches, so the caller can distinguish "absent" from a store failure.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, pred interface{}) (*model.User, error) {
	query, args, err := sb.Select("id", "email", "hash", "firstname", "lastname", "created_on", "updated_on").
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, mapError(err)
	}

	var (
		user      model.User
		createdOn string
		updatedOn string
	)
	err = r.store.DB.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Hash, &user.Firstname, &user.Lastname, &createdOn, &updatedOn)
	if err != nil {
		if errors.Is(mapError(err), database.ErrNotFound) {
			return nil, nil
		}
		return nil, mapError(err)
	}
	user.CreatedOn = parseTime(createdOn)
	user.UpdatedOn = parseTime(updatedOn)
	return &user, nil
}
