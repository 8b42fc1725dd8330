package handler

import (
	"net/http"

	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/service"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ProductRequest is the write payload for products.
type ProductRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

func (req *ProductRequest) validate() []model.FieldError {
	var fieldErrors []model.FieldError
	if req.Name == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if req.Price < 0 {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "price",
			Message: "price must not be negative",
		})
	}
	return fieldErrors
}

func (req *ProductRequest) toModel() *model.Product {
	return &model.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
	}
}

// Create handles POST /v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	product := req.toModel()
	if err := h.productService.Create(r.Context(), product); err != nil {
		WriteError(w, MapServiceError(err, "product"))
		return
	}

	WriteData(w, http.StatusCreated, product, nil)
}

// Get handles GET /v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err, "product"))
		return
	}

	WriteData(w, http.StatusOK, product, nil)
}

// List handles GET /v1/products - returns every product
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err, "product"))
		return
	}

	WriteCollection(w, http.StatusOK, products, nil)
}

// Update handles PUT /v1/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	product, err := h.productService.Update(r.Context(), id, req.toModel())
	if err != nil {
		WriteError(w, MapServiceError(err, "product"))
		return
	}

	WriteData(w, http.StatusOK, product, nil)
}

// Delete handles DELETE /v1/products/{id} - returns the deleted record
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err, "product"))
		return
	}

	WriteData(w, http.StatusOK, product, nil)
}

// Search handles GET /v1/products/q/{term} - substring match on name or
// category. No matches is a 404, not an empty collection.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.PathValue("term")

	products, err := h.productService.Search(r.Context(), term)
	if err != nil {
		WriteError(w, MapServiceError(err, "product"))
		return
	}
	if len(products) == 0 {
		WriteError(w, model.NewNotFoundError("product"))
		return
	}

	WriteCollection(w, http.StatusOK, products, nil)
}
