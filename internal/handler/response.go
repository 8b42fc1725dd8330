package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopworks/storefront/internal/model"
)

// DataResponse wraps a successful single-record response
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// CollectionResponse wraps a collection response. Collections are returned
// whole; there is no pagination on this API.
type CollectionResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, DataResponse{
		Data:  data,
		Links: links,
	})
}

// WriteCollection writes a collection response
func WriteCollection(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, CollectionResponse{
		Data:  data,
		Links: links,
	})
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
