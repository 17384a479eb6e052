package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"hootroost/app/middleware"
	"hootroost/app/models"
	"hootroost/app/services"
)

// HootController handles HTTP requests for hoots
type HootController struct {
	hootService *services.HootService
	presenter   *services.Presenter
}

// NewHootController creates a new HootController
func NewHootController(hootService *services.HootService, presenter *services.Presenter) *HootController {
	return &HootController{hootService: hootService, presenter: presenter}
}

// Index handles listing all hoots
func (hc *HootController) Index(w http.ResponseWriter, r *http.Request) {
	hoots, err := hc.hootService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	views, err := hc.presenter.Hoots(r.Context(), hoots)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, views)
}

// Show handles displaying a single hoot
func (hc *HootController) Show(w http.ResponseWriter, r *http.Request) {
	hoot, err := hc.hootService.Get(r.Context(), mux.Vars(r)["hootId"])
	if err != nil {
		handleError(w, r, err)
		return
	}
	hc.sendHoot(w, r, http.StatusOK, hoot)
}

// Create handles creating a new hoot
func (hc *HootController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.HootCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	hoot, err := hc.hootService.Create(r.Context(), middleware.UserFromContext(r.Context()), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	hc.sendHoot(w, r, http.StatusCreated, hoot)
}

// Update handles editing an existing hoot
func (hc *HootController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.HootUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	hoot, err := hc.hootService.Update(r.Context(), middleware.UserFromContext(r.Context()), mux.Vars(r)["hootId"], req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	hc.sendHoot(w, r, http.StatusOK, hoot)
}

// Delete handles deleting a hoot and returns it as it was
func (hc *HootController) Delete(w http.ResponseWriter, r *http.Request) {
	hoot, err := hc.hootService.Delete(r.Context(), middleware.UserFromContext(r.Context()), mux.Vars(r)["hootId"])
	if err != nil {
		handleError(w, r, err)
		return
	}
	hc.sendHoot(w, r, http.StatusOK, hoot)
}

func (hc *HootController) sendHoot(w http.ResponseWriter, r *http.Request, status int, hoot *models.Hoot) {
	view, err := hc.presenter.Hoot(r.Context(), hoot)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, status, view)
}
