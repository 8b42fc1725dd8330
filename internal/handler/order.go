package handler

import (
	"net/http"

	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/service"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// OrderRequest is the write payload for orders.
type OrderRequest struct {
	CustomerID int64 `json:"customer_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

// Create handles POST /v1/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	var fieldErrors []model.FieldError
	if req.CustomerID == 0 {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "customer_id",
			Message: "customer_id is required",
		})
	}
	if req.ProductID == 0 {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "product_id",
			Message: "product_id is required",
		})
	}
	if len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	order := &model.Order{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	}
	if err := h.orderService.Create(r.Context(), order); err != nil {
		WriteError(w, MapServiceError(err, "order"))
		return
	}

	WriteData(w, http.StatusCreated, order, nil)
}

// Get handles GET /v1/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err, "order"))
		return
	}

	WriteData(w, http.StatusOK, order, nil)
}
