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

func newOrderHandler() *OrderHandler {
	return NewOrderHandler(service.NewOrderService(newFakeOrderRepo()))
}

func TestOrderCreate_Valid_Returns201(t *testing.T) {
	t.Parallel()
	h := newOrderHandler()

	req := makeJSONRequest(http.MethodPost, "/v1/orders", OrderRequest{
		CustomerID: 1,
		ProductID:  2,
		Quantity:   3,
	})
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var got model.Order
	decodeData(t, rr.Body.Bytes(), &got)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 3, got.Quantity)
}

func TestOrderCreate_ZeroQuantity_DefaultsToOne(t *testing.T) {
	t.Parallel()
	h := newOrderHandler()

	req := makeJSONRequest(http.MethodPost, "/v1/orders", OrderRequest{
		CustomerID: 1,
		ProductID:  2,
	})
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var got model.Order
	decodeData(t, rr.Body.Bytes(), &got)
	assert.Equal(t, 1, got.Quantity)
}

func TestOrderCreate_NegativeQuantity_Returns422(t *testing.T) {
	t.Parallel()
	h := newOrderHandler()

	req := makeJSONRequest(http.MethodPost, "/v1/orders", OrderRequest{
		CustomerID: 1,
		ProductID:  2,
		Quantity:   -1,
	})
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestOrderCreate_MissingReferences_Returns422(t *testing.T) {
	t.Parallel()
	h := newOrderHandler()

	req := makeJSONRequest(http.MethodPost, "/v1/orders", OrderRequest{})
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	problem := parseErrorResponse(t, rr.Body.Bytes())
	assert.Len(t, problem.Errors, 2)
}

func TestOrderGet_Missing_Returns404(t *testing.T) {
	t.Parallel()
	h := newOrderHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/7", nil)
	req.SetPathValue("id", "7")
	rr := httptest.NewRecorder()
	h.Get(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
