package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response body used by every endpoint.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// WriteSuccess writes a success envelope with the given status (200 or 202).
func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// WriteError writes an error envelope. Auth rejections use 400 or 401.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{
		Status:  status,
		Message: message,
		Data:    nil,
	})
}
