package handlers

import (
	"net/http"

	"github.com/ndewijer/Market-Data-Simulator/internal/api/response"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// respondError sends an error body with err's message as details.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	var details interface{}
	if err != nil {
		details = err.Error()
	}
	response.RespondError(w, status, message, details)
}
