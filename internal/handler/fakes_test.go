package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/service"
	"github.com/shopworks/storefront/pkg/token"
)

// ============================================================================
// In-memory repositories
// ============================================================================

type fakeCustomerRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Customer
	// err forces every call to fail, for exercising the 500 path.
	err error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{byID: make(map[int64]*model.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	c.CreatedOn = time.Now()
	c.UpdatedOn = c.CreatedOn
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*model.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]*model.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Customer, 0, len(r.byID))
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.byID[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, id int64, c *model.Customer) (*model.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	c.ID = id
	c.CreatedOn = existing.CreatedOn
	c.UpdatedOn = time.Now()
	cp := *c
	r.byID[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id int64) (*model.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	delete(r.byID, id)
	return c, nil
}

func (r *fakeCustomerRepo) SearchByName(_ context.Context, term string) ([]*model.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(term)
	var out []*model.Customer
	for id := int64(1); id <= r.nextID; id++ {
		c, ok := r.byID[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(c.Firstname), needle) ||
			strings.Contains(strings.ToLower(c.Lastname), needle) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Product
	err    error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[int64]*model.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedOn = time.Now()
	p.UpdatedOn = p.CreatedOn
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Product, 0, len(r.byID))
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.byID[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, id int64, p *model.Product) (*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.ID = id
	p.CreatedOn = existing.CreatedOn
	p.UpdatedOn = time.Now()
	cp := *p
	r.byID[id] = &cp
	out := cp
	return &out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) (*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	delete(r.byID, id)
	return p, nil
}

func (r *fakeProductRepo) SearchByTerm(_ context.Context, term string) ([]*model.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(term)
	var out []*model.Product
	for id := int64(1); id <= r.nextID; id++ {
		p, ok := r.byID[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: make(map[int64]*model.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	o.ID = r.nextID
	o.CreatedOn = time.Now()
	cp := *o
	r.byID[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return database.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedOn = time.Now()
	user.UpdatedOn = user.CreatedOn
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	mu   sync.Mutex
	byID map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: make(map[string]*model.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.byID[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byID[id]; ok {
		s.Revoked = true
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.UserID == userID {
			s.Revoked = true
		}
	}
	return nil
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	tokens, err := token.NewService(token.Config{
		Secret:     "handler-test-secret-key",
		Issuer:     "storefront-test",
		Expiration: time.Hour,
	})
	if err != nil {
		t.Fatalf("token.NewService() error = %v", err)
	}
	return service.NewAuthService(service.AuthServiceConfig{
		UserRepo:    newFakeUserRepo(),
		SessionRepo: newFakeSessionRepo(),
		Tokens:      tokens,
	})
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

func decodeData(t *testing.T, body []byte, v interface{}) {
	t.Helper()
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		t.Fatalf("failed to parse response envelope: %v", err)
	}
	if err := json.Unmarshal(wrapper.Data, v); err != nil {
		t.Fatalf("failed to parse response data: %v", err)
	}
}
