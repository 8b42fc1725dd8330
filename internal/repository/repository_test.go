package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
)

// newTestStore opens a migrated store backed by a throwaway database file.
func newTestStore(t *testing.T) *database.Store {
	t.Helper()

	ctx := context.Background()
	store, err := database.Open(ctx, database.Config{
		Path: filepath.Join(t.TempDir(), "storefront-test.db"),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate store: %v", err)
	}
	return store
}

func strPtr(s string) *string { return &s }

// ============================================================================
// Customer repository
// ============================================================================

func TestCustomerRepository_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCustomerRepository(newTestStore(t))

	customer := &model.Customer{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     strPtr("ada@example.com"),
		City:      strPtr("London"),
	}
	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if customer.ID == 0 {
		t.Error("expected store-assigned ID")
	}
	if customer.CreatedOn.IsZero() || customer.UpdatedOn.IsZero() {
		t.Error("expected timestamps to be set on create")
	}

	got, err := repo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if got.Firstname != "Ada" || got.Lastname != "Lovelace" {
		t.Errorf("got %s %s, want Ada Lovelace", got.Firstname, got.Lastname)
	}
	if got.Email == nil || *got.Email != "ada@example.com" {
		t.Errorf("email round-trip failed: %v", got.Email)
	}

	got.City = strPtr("Cambridge")
	updated, err := repo.Update(ctx, got.ID, got)
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if updated.City == nil || *updated.City != "Cambridge" {
		t.Errorf("city not updated: %v", updated.City)
	}
	if updated.UpdatedOn.Before(updated.CreatedOn) {
		t.Error("updated_on should not precede created_on")
	}

	deleted, err := repo.Delete(ctx, customer.ID)
	if err != nil {
		t.Fatalf("delete customer: %v", err)
	}
	if deleted.ID != customer.ID {
		t.Errorf("delete returned ID %d, want %d", deleted.ID, customer.ID)
	}

	if _, err := repo.GetByID(ctx, customer.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("get after delete: got %v, want ErrNotFound", err)
	}
}

func TestCustomerRepository_GetMissing(t *testing.T) {
	t.Parallel()

	repo := NewCustomerRepository(newTestStore(t))
	if _, err := repo.GetByID(context.Background(), 9999); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCustomerRepository_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCustomerRepository(newTestStore(t))

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list empty store: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty list, got %d", len(all))
	}

	for _, name := range []string{"Grace", "Alan", "Edsger"} {
		if err := repo.Create(ctx, &model.Customer{Firstname: name, Lastname: "Test"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	all, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(all))
	}
	// Ordered by ID.
	if all[0].Firstname != "Grace" || all[2].Firstname != "Edsger" {
		t.Errorf("unexpected order: %s..%s", all[0].Firstname, all[2].Firstname)
	}
}

func TestCustomerRepository_SearchByName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewCustomerRepository(newTestStore(t))

	seed := []*model.Customer{
		{Firstname: "Ada", Lastname: "Lovelace"},
		{Firstname: "Grace", Lastname: "Hopper"},
		{Firstname: "Alan", Lastname: "Adamson"},
	}
	for _, c := range seed {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create %s: %v", c.Firstname, err)
		}
	}

	// "ada" matches Ada (firstname) and Adamson (lastname).
	matches, err := repo.SearchByName(ctx, "ada")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "ada", len(matches))
	}

	matches, err = repo.SearchByName(ctx, "zzz")
	if err != nil {
		t.Fatalf("search no-match: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for %q, got %d", "zzz", len(matches))
	}
}

// ============================================================================
// Product repository
// ============================================================================

func TestProductRepository_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewProductRepository(newTestStore(t))

	product := &model.Product{Name: "Widget", Category: "Tools", Price: 9.99}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.ID == 0 {
		t.Error("expected store-assigned ID")
	}

	got, err := repo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != "Widget" || got.Category != "Tools" || got.Price != 9.99 {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	got.Price = 12.50
	updated, err := repo.Update(ctx, got.ID, got)
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Price != 12.50 {
		t.Errorf("price not updated: %v", updated.Price)
	}

	if _, err := repo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if _, err := repo.GetByID(ctx, product.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("get after delete: got %v, want ErrNotFound", err)
	}
}

func TestProductRepository_SearchByTerm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewProductRepository(newTestStore(t))

	seed := []*model.Product{
		{Name: "Widget", Category: "Tools", Price: 9.99},
		{Name: "Gadget", Category: "Tools", Price: 19.99},
		{Name: "Lamp", Category: "Lighting", Price: 34.00},
	}
	for _, p := range seed {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.Name, err)
		}
	}

	matches, err := repo.SearchByTerm(ctx, "wid")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Widget" {
		t.Fatalf("expected Widget for %q, got %d results", "wid", len(matches))
	}

	// Category is searched as well.
	matches, err = repo.SearchByTerm(ctx, "tool")
	if err != nil {
		t.Fatalf("search category: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches on category, got %d", len(matches))
	}
}

// ============================================================================
// Order repository
// ============================================================================

func TestOrderRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderRepository(newTestStore(t))

	order := &model.Order{CustomerID: 1, ProductID: 2, Quantity: 3}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}

	got, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.CustomerID != 1 || got.ProductID != 2 || got.Quantity != 3 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestOrderRepository_DefaultQuantity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewOrderRepository(newTestStore(t))

	order := &model.Order{CustomerID: 1, ProductID: 2}
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", order.Quantity)
	}
}

// ============================================================================
// User repository
// ============================================================================

func TestUserRepository_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	user := &model.User{Email: "dup@example.com", Hash: "x"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	err := repo.Create(ctx, &model.User{Email: "dup@example.com", Hash: "y"})
	if !errors.Is(err, database.ErrDuplicate) {
		t.Errorf("got %v, want ErrDuplicate", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository(newTestStore(t))

	user := &model.User{Email: "ada@example.com", Hash: "h", Firstname: strPtr("Ada")}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("unexpected user: %+v", got)
	}

	// Absent rows come back as nil without an error.
	got, err = repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("get absent email: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent email, got %+v", got)
	}
}

// ============================================================================
// Session repository
// ============================================================================

func TestSessionRepository_RevokeAndSweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSessionRepository(newTestStore(t))

	now := time.Now().UTC()
	live := &model.Session{
		ID:        "sess-live",
		UserID:    1,
		TokenHash: "hash-live",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	stale := &model.Session{
		ID:        "sess-stale",
		UserID:    1,
		TokenHash: "hash-stale",
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}
	for _, s := range []*model.Session{live, stale} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create session %s: %v", s.ID, err)
		}
	}

	if err := repo.Revoke(ctx, live.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	got, err := repo.GetByID(ctx, live.ID)
	if err != nil {
		t.Fatalf("get revoked session: %v", err)
	}
	if got == nil || !got.Revoked {
		t.Error("expected session to be revoked")
	}

	// Revoking again or revoking a missing session is fine.
	if err := repo.Revoke(ctx, live.ID); err != nil {
		t.Errorf("second revoke: %v", err)
	}
	if err := repo.Revoke(ctx, "no-such-session"); err != nil {
		t.Errorf("revoke missing: %v", err)
	}

	deleted, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	got, err = repo.GetByID(ctx, stale.ID)
	if err != nil {
		t.Fatalf("get swept session: %v", err)
	}
	if got != nil {
		t.Error("expected stale session to be gone")
	}
}

func TestSessionRepository_GetMissing(t *testing.T) {
	t.Parallel()

	repo := NewSessionRepository(newTestStore(t))
	got, err := repo.GetByID(context.Background(), "absent")
	if err != nil {
		t.Fatalf("get missing session: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
