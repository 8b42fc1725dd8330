package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/service"
)

func newProductHandler(repo *fakeProductRepo) *ProductHandler {
	return NewProductHandler(service.NewProductService(repo))
}

func seedProduct(t *testing.T, repo *fakeProductRepo, name, category string, price float64) *model.Product {
	t.Helper()
	p := &model.Product{Name: name, Category: category, Price: price}
	require.NoError(t, repo.Create(t.Context(), p))
	return p
}

func TestProductCreate_Valid_Returns201(t *testing.T) {
	t.Parallel()
	h := newProductHandler(newFakeProductRepo())

	req := makeJSONRequest(http.MethodPost, "/v1/products", ProductRequest{
		Name:     "Widget",
		Category: "Tools",
		Price:    9.99,
	})
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var got model.Product
	decodeData(t, rr.Body.Bytes(), &got)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, "Tools", got.Category)
	assert.Equal(t, 9.99, got.Price)
}

func TestProductCreate_MissingFields_Returns422(t *testing.T) {
	t.Parallel()
	h := newProductHandler(newFakeProductRepo())

	req := makeJSONRequest(http.MethodPost, "/v1/products", ProductRequest{Price: 1})
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	problem := parseErrorResponse(t, rr.Body.Bytes())
	assert.Len(t, problem.Errors, 2)
}

func TestProductGet_NonNumericID_Returns400(t *testing.T) {
	t.Parallel()
	h := newProductHandler(newFakeProductRepo())

	req := httptest.NewRequest(http.MethodGet, "/v1/products/widget", nil)
	req.SetPathValue("id", "widget")
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	problem := parseErrorResponse(t, rr.Body.Bytes())
	assert.Contains(t, problem.Detail, "numeric")
}

func TestProductUpdate_Found_Returns200(t *testing.T) {
	t.Parallel()
	repo := newFakeProductRepo()
	seedProduct(t, repo, "Widget", "Tools", 9.99)
	h := newProductHandler(repo)

	req := makeJSONRequest(http.MethodPut, "/v1/products/1", ProductRequest{
		Name:     "Widget",
		Category: "Tools",
		Price:    12.50,
	})
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got model.Product
	decodeData(t, rr.Body.Bytes(), &got)
	assert.Equal(t, 12.50, got.Price)
}

func TestProductDelete_ReturnsDeletedRecord(t *testing.T) {
	t.Parallel()
	repo := newFakeProductRepo()
	seeded := seedProduct(t, repo, "Widget", "Tools", 9.99)
	h := newProductHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/v1/products/1", nil)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got model.Product
	decodeData(t, rr.Body.Bytes(), &got)
	assert.Equal(t, seeded.ID, got.ID)

	req = httptest.NewRequest(http.MethodGet, "/v1/products/1", nil)
	req.SetPathValue("id", "1")
	rr = httptest.NewRecorder()
	h.Get(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProductSearch_Match_Returns200(t *testing.T) {
	t.Parallel()
	repo := newFakeProductRepo()
	seedProduct(t, repo, "Widget", "Tools", 9.99)
	seedProduct(t, repo, "Lamp", "Lighting", 34.00)
	h := newProductHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/products/q/wid", nil)
	req.SetPathValue("term", "wid")
	rr := httptest.NewRecorder()
	h.Search(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []*model.Product
	decodeData(t, rr.Body.Bytes(), &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Widget", got[0].Name)
}

func TestProductSearch_NoMatch_Returns404(t *testing.T) {
	t.Parallel()
	repo := newFakeProductRepo()
	seedProduct(t, repo, "Widget", "Tools", 9.99)
	h := newProductHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/products/q/zzz", nil)
	req.SetPathValue("term", "zzz")
	rr := httptest.NewRecorder()
	h.Search(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
