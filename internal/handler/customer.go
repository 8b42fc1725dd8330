package handler

import (
	"net/http"

	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/service"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CustomerRequest is the write payload for customers.
type CustomerRequest struct {
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Email     *string `json:"email"`
	City      *string `json:"city"`
}

func (req *CustomerRequest) validate() []model.FieldError {
	var fieldErrors []model.FieldError
	if req.Firstname == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "firstname",
			Message: "firstname is required",
		})
	}
	if req.Lastname == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "lastname",
			Message: "lastname is required",
		})
	}
	return fieldErrors
}

func (req *CustomerRequest) toModel() *model.Customer {
	return &model.Customer{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		City:      req.City,
	}
}

// Create handles POST /v1/customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	customer := req.toModel()
	if err := h.customerService.Create(r.Context(), customer); err != nil {
		WriteError(w, MapServiceError(err, "customer"))
		return
	}

	WriteData(w, http.StatusCreated, customer, nil)
}

// Get handles GET /v1/customers/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	customer, err := h.customerService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err, "customer"))
		return
	}

	WriteData(w, http.StatusOK, customer, nil)
}

// List handles GET /v1/customers - returns every customer
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err, "customer"))
		return
	}

	WriteCollection(w, http.StatusOK, customers, nil)
}

// Update handles PUT /v1/customers/{id}
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req CustomerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if fieldErrors := req.validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, req.toModel())
	if err != nil {
		WriteError(w, MapServiceError(err, "customer"))
		return
	}

	WriteData(w, http.StatusOK, customer, nil)
}

// Delete handles DELETE /v1/customers/{id} - returns the deleted record
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	customer, err := h.customerService.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err, "customer"))
		return
	}

	WriteData(w, http.StatusOK, customer, nil)
}

// Search handles GET /v1/customers/q/{term} - substring match on first or
// last name. No matches is a 404, not an empty collection.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.PathValue("term")

	customers, err := h.customerService.Search(r.Context(), term)
	if err != nil {
		WriteError(w, MapServiceError(err, "customer"))
		return
	}
	if len(customers) == 0 {
		WriteError(w, model.NewNotFoundError("customer"))
		return
	}

	WriteCollection(w, http.StatusOK, customers, nil)
}
