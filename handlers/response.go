package handlers

import (
	"encoding/json"
	"net/http"

	"gymAPI/internal/types/pagination"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// envelope is the shape of every API response.
type envelope struct {
	Status     string                 `json:"status"`
	Data       any                    `json:"data,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Pagination *pagination.Pagination `json:"pagination,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","message":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithData(w http.ResponseWriter, code int, data any) {
	respondWithJSON(w, code, envelope{Status: statusSuccess, Data: data})
}

func respondWithDataMessage(w http.ResponseWriter, code int, data any, message string) {
	respondWithJSON(w, code, envelope{Status: statusSuccess, Data: data, Message: message})
}

func respondWithMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, envelope{Status: statusSuccess, Message: message})
}

func respondWithPage[T any](w http.ResponseWriter, page pagination.Page[T]) {
	respondWithJSON(w, http.StatusOK, envelope{Status: statusSuccess, Data: page.Items, Pagination: &page.Pagination})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, envelope{Status: statusError, Message: message})
}
