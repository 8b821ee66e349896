package responses

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape of every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// WriteSuccess emits the success envelope with an optional data payload.
func WriteSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	WriteJSON(w, code, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}
