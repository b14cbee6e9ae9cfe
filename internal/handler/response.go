package handler

import (
	"encoding/json"
	"net/http"

	"github.com/playforge/miniapp-api/internal/model"
)

// ResultResponse wraps a single resource.
type ResultResponse struct {
	Result interface{} `json:"result"`
}

// ResultsResponse wraps a collection with pagination metadata.
type ResultsResponse struct {
	Results    interface{}       `json:"results"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteResult writes a single resource inside the result envelope
func WriteResult(w http.ResponseWriter, status int, result interface{}) {
	WriteJSON(w, status, ResultResponse{Result: result})
}

// WriteResults writes a collection inside the results envelope
func WriteResults(w http.ResponseWriter, status int, results interface{}, pagination *model.Pagination) {
	WriteJSON(w, status, ResultsResponse{Results: results, Pagination: pagination})
}

// WriteError writes the uniform error envelope
func WriteError(w http.ResponseWriter, err *model.ErrorResponse) {
	err.WriteJSON(w)
}
