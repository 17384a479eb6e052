package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"hootroost/app/middleware"
	"hootroost/app/models"
	"hootroost/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	presenter      *services.Presenter
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, presenter *services.Presenter) *CommentController {
	return &CommentController{commentService: commentService, presenter: presenter}
}

// Create handles adding a comment to a hoot
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.Add(r.Context(), middleware.UserFromContext(r.Context()), mux.Vars(r)["hootId"], req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	view, err := cc.presenter.Comment(r.Context(), comment)
	if err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, view)
}

// Update handles editing the text of a comment
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	if _, err := cc.commentService.Edit(r.Context(), middleware.UserFromContext(r.Context()), vars["hootId"], vars["commentId"], req); err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"message": "comment updated"})
}

// Delete handles removing a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := cc.commentService.Remove(r.Context(), middleware.UserFromContext(r.Context()), vars["hootId"], vars["commentId"]); err != nil {
		handleError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
