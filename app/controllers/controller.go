package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hootroost/app/middleware"
	"hootroost/app/models"
	"hootroost/app/services"
)

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func sendError(w http.ResponseWriter, message string, status int) {
	middleware.WriteError(w, status, message)
}

// handleError maps a service error onto a status code. Anything that is not a
// known kind is logged and reported as a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		sendError(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		var nf *services.NotFoundError
		if errors.As(err, &nf) {
			sendError(w, nf.Error(), http.StatusNotFound)
			return
		}
		sendError(w, "not found", http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		sendError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, services.ErrUnauthenticated):
		sendError(w, "unauthorized", http.StatusUnauthorized)
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
