package handler

import (
	"net/http"

	"github.com/shopworks/storefront/internal/middleware"
	"github.com/shopworks/storefront/internal/model"
)

// apiVersions are the URL prefixes the surface is mounted under. v2 mirrors
// v1 until the surfaces diverge.
var apiVersions = []string{"/v1", "/v2"}

// Routes wires handlers and per-route middleware into a ServeMux. Requests
// pass the rate limiter before authentication, so unauthenticated floods
// burn their IP budget instead of hammering the session store.
type Routes struct {
	Customers *CustomerHandler
	Products  *ProductHandler
	Orders    *OrderHandler
	Auth      *AuthHandler
	Health    *HealthHandler

	Authenticate middleware.Middleware
	RateLimit    middleware.Middleware
}

// Register mounts every route on mux, once per API version.
func (rt *Routes) Register(mux *http.ServeMux) {
	for _, prefix := range apiVersions {
		rt.register(mux, prefix)
	}

	mux.HandleFunc("GET /health", rt.Health.Health)

	// Anything the mux cannot match lands here. Without this catch-all the
	// mux would answer with a plain-text 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewNotFoundError("route"))
	})
}

func (rt *Routes) register(mux *http.ServeMux, prefix string) {
	public := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, rt.RateLimit)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, rt.RateLimit, rt.Authenticate)
	}

	// Auth
	mux.Handle("POST "+prefix+"/users", public(rt.Auth.Register))
	mux.Handle("POST "+prefix+"/login", public(rt.Auth.Login))
	mux.Handle("POST "+prefix+"/logout", public(rt.Auth.Logout))
	mux.Handle("GET "+prefix+"/me", protected(rt.Auth.Me))

	// Customers
	mux.Handle("POST "+prefix+"/customers", protected(rt.Customers.Create))
	mux.Handle("GET "+prefix+"/customers", protected(rt.Customers.List))
	mux.Handle("GET "+prefix+"/customers/{id}", protected(rt.Customers.Get))
	mux.Handle("PUT "+prefix+"/customers/{id}", protected(rt.Customers.Update))
	mux.Handle("DELETE "+prefix+"/customers/{id}", protected(rt.Customers.Delete))
	mux.Handle("GET "+prefix+"/customers/q/{term}", protected(rt.Customers.Search))

	// Products
	mux.Handle("POST "+prefix+"/products", protected(rt.Products.Create))
	mux.Handle("GET "+prefix+"/products", protected(rt.Products.List))
	mux.Handle("GET "+prefix+"/products/{id}", protected(rt.Products.Get))
	mux.Handle("PUT "+prefix+"/products/{id}", protected(rt.Products.Update))
	mux.Handle("DELETE "+prefix+"/products/{id}", protected(rt.Products.Delete))
	mux.Handle("GET "+prefix+"/products/q/{term}", protected(rt.Products.Search))

	// Orders
	mux.Handle("POST "+prefix+"/orders", protected(rt.Orders.Create))
	mux.Handle("GET "+prefix+"/orders/{id}", protected(rt.Orders.Get))
}
