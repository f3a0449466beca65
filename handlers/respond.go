package handlers

import (
	"encoding/json"
	"net/http"

	"projectboard/backend/outcome"
)

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func statusFor(code outcome.Code) int {
	switch code {
	case outcome.OK:
		return http.StatusOK
	case outcome.NotFound:
		return http.StatusNotFound
	case outcome.Forbidden:
		return http.StatusForbidden
	case outcome.BadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// writeError maps a service error onto its HTTP status. Errors without an
// outcome code answer 500 with a generic message so nothing internal leaks.
func writeError(w http.ResponseWriter, err error) {
	code := outcome.CodeOf(err)
	message := err.Error()
	if code == outcome.Internal {
		message = "something went wrong"
	}
	writeJSON(w, statusFor(code), Response{Success: false, Message: message})
}
