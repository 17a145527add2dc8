package utils

import (
	"net/http"

	"mitienda-backend/internal/domain"

	"github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, domain.Response{Success: false, Message: message})
}

// WriteDomainError maps tagged error kinds to HTTP statuses while keeping
// the display message intact.
func WriteDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNoRates:
		status = http.StatusNotFound
	case domain.KindUpstream:
		status = http.StatusBadGateway
	}
	WriteError(w, status, err.Error())
}
